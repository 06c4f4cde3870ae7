package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
)

func Test_Strings_Literals(t *testing.T) {
	cases := []struct{ src, want string }{
		{`"plain"`, `"plain"`},
		{`''`, `""`},
		{`'it\'s'`, `"it's"`},
		{`"aé"`, `"aé"`},
		{`%q(a (b) c)`, `"a (b) c"`},
		{`%Q[x\ny]`, `"x\ny"`},
		{`?a`, `"a"`},
		{`"a#{1}b"`, `(InterpolatedString "a" (EmbeddedStatements 1) "b")`},
		{`"#@x"`, `(InterpolatedString (EmbeddedVariable (InstanceVariableRead)))`},
		{`"a" "b"`, `(StringConcat "a" "b")`},
		{"`ls`", `(XString)`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}
}

func Test_Strings_Locations(t *testing.T) {
	s := single(t, `"abc"`).(*ast.StringNode)
	if s.OpeningLoc != ast.Loc(0, 1) || s.ContentLoc != ast.Loc(1, 4) || s.ClosingLoc != ast.Loc(4, 5) {
		t.Fatalf("unexpected locations\n%s", ast.Dump(s))
	}
}

func Test_Strings_Frozen_Literal_Option(t *testing.T) {
	s := statements(t, `"a"`, WithFrozenStringLiteral(true))[0]
	if !s.Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("want frozen flag\n%s", ast.Dump(s))
	}
	s = single(t, `"a"`)
	if s.Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("strings are not frozen by default")
	}
}

func Test_Strings_Unterminated(t *testing.T) {
	res := Parse([]byte(`"abc`))
	errs := res.Errors()
	if len(errs) != 1 {
		t.Fatalf("want exactly one error, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, "unterminated") {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func Test_Heredoc_Plain_And_Dash(t *testing.T) {
	res := mustParse(t, "x = <<EOS\nhello\nEOS\n")
	w := res.Program.Statements.Body[0].(*ast.LocalVariableWriteNode)
	s, ok := w.Value.(*ast.StringNode)
	if !ok {
		t.Fatalf("want a string value\n%s", ast.Dump(w))
	}
	if got := string(s.Unescaped); got != "hello\n" {
		t.Fatalf("heredoc body = %q", got)
	}
	if s.Location != ast.Loc(4, 9) {
		t.Fatalf("heredoc node should cover the opener only, got %s", s.Location)
	}

	res = mustParse(t, "x = <<-EOS\n  hi\n  EOS\n")
	s = res.Program.Statements.Body[0].(*ast.LocalVariableWriteNode).Value.(*ast.StringNode)
	if got := string(s.Unescaped); got != "  hi\n" {
		t.Fatalf("dash heredoc keeps indentation, got %q", got)
	}
}

func Test_Heredoc_Squiggly_Dedent(t *testing.T) {
	res := mustParse(t, "x = <<~EOS\n    one\n      two\n\n    three\nEOS\n")
	want := []string{"one\n", "  two\n", "\n", "three\n"}
	if diff := cmp.Diff(want, heredocLines(t, res)); diff != "" {
		t.Fatalf("dedented lines (-want +got):\n%s", diff)
	}
}

func Test_Heredoc_Squiggly_Lines_Are_Parts(t *testing.T) {
	res := mustParse(t, "<<~END\n  a\n    b\nEND\n")
	if diff := cmp.Diff([]string{"a\n", "  b\n"}, heredocLines(t, res)); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}

	res = mustParse(t, "<<~END\n  a #{b}\n  c\nEND\n")
	n := res.Program.Statements.Body[0].(*ast.InterpolatedStringNode)
	wantTypes := []ast.NodeType{ast.StringNodeType, ast.EmbeddedStatementsNodeType, ast.StringNodeType, ast.StringNodeType}
	var got []ast.NodeType
	for _, part := range n.Parts {
		got = append(got, part.Type())
	}
	if diff := cmp.Diff(wantTypes, got); diff != "" {
		t.Fatalf("part types (-want +got):\n%s", diff)
	}
}

// heredocLines returns the text of each part of the first statement's
// heredoc, which must be made of plain lines.
func heredocLines(t *testing.T, res *Result) []string {
	t.Helper()
	n := res.Program.Statements.Body[0]
	if w, ok := n.(*ast.LocalVariableWriteNode); ok {
		n = w.Value
	}
	is, ok := n.(*ast.InterpolatedStringNode)
	if !ok {
		t.Fatalf("want an interpolated string, got\n%s", ast.Dump(n))
	}
	var out []string
	for _, part := range is.Parts {
		s, ok := part.(*ast.StringNode)
		if !ok {
			t.Fatalf("non-text part %s", part.Type())
		}
		out = append(out, string(s.Unescaped))
	}
	return out
}

func Test_Heredoc_Followed_By_Code(t *testing.T) {
	res := mustParse(t, "foo(<<~A, 2)\n  body\nA\nbar\n")
	body := res.Program.Statements.Body
	if len(body) != 2 {
		t.Fatalf("want 2 statements, got %d\n%s", len(body), ast.Dump(res.Program))
	}
	if got := sexp(body[0]); got != `(foo "body\n" 2)` {
		t.Fatalf("got %s", got)
	}
	if got := sexp(body[1]); got != "bar" {
		t.Fatalf("got %s", got)
	}
}

func Test_Heredoc_Single_Quoted_Is_Raw(t *testing.T) {
	res := mustParse(t, "x = <<~'EOS'\n  a\\n#{b}\nEOS\n")
	s := res.Program.Statements.Body[0].(*ast.LocalVariableWriteNode).Value.(*ast.StringNode)
	if got := string(s.Unescaped); got != "a\\n#{b}\n" {
		t.Fatalf("raw heredoc = %q", got)
	}
}

func Test_Heredoc_Unterminated(t *testing.T) {
	res := Parse([]byte("x = <<~EOS\nabc\n"))
	if res.OK() {
		t.Fatalf("expected an unterminated heredoc error")
	}
	found := false
	for _, d := range res.Errors() {
		if strings.Contains(d.Message, "unterminated heredoc") {
			found = true
		}
	}
	if !found {
		t.Fatalf("want an unterminated heredoc error, got %v", res.Errors())
	}
}

func Test_Symbols(t *testing.T) {
	cases := []struct{ src, want string }{
		{":abc", ":abc"},
		{":@iv", ":@iv"},
		{":+", ":+"},
		{":[]", ":[]"},
		{`:"a b"`, ":a b"},
		{`%s(x y)`, ":x y"},
		{`:"a#{1}"`, `(InterpolatedSymbol "a" (EmbeddedStatements 1))`},
		{"{a: 1}", "(Hash (Assoc :a 1))"},
		{`{"k": 1}`, "(Hash (Assoc :k 1))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}
}

func Test_Regexp(t *testing.T) {
	n := single(t, `/a\d+/im`)
	re, ok := n.(*ast.RegularExpressionNode)
	if !ok {
		t.Fatalf("want a regexp\n%s", ast.Dump(n))
	}
	if got := string(re.Unescaped); got != `a\d+` {
		t.Fatalf("regexp source = %q", got)
	}
	if !re.HasFlag(ast.RegexpIgnoreCase) || !re.HasFlag(ast.RegexpMultiLine) || re.HasFlag(ast.RegexpExtended) {
		t.Fatalf("flags = %v", ast.FlagNames(re))
	}

	n = single(t, `%r{a/b}`)
	re = n.(*ast.RegularExpressionNode)
	if got := string(re.Unescaped); got != "a/b" {
		t.Fatalf("%%r source = %q", got)
	}

	wantType(t, single(t, `/a#{1}/`), ast.InterpolatedRegularExpressionNodeType)
}

func Test_Regexp_Named_Captures_Write_Locals(t *testing.T) {
	res := mustParse(t, "/(?<year>\\d+)-(?<mon>\\d+)/ =~ s\nyear")
	body := res.Program.Statements.Body
	mw, ok := body[0].(*ast.MatchWriteNode)
	if !ok {
		t.Fatalf("want MatchWriteNode\n%s", ast.Dump(body[0]))
	}
	if len(mw.Targets) != 2 {
		t.Fatalf("want 2 targets, got %d", len(mw.Targets))
	}
	if mw.Call.Name != "=~" {
		t.Fatalf("call name = %q", mw.Call.Name)
	}
	wantType(t, body[1], ast.LocalVariableReadNodeType)

	// Only a regexp literal on the left declares locals.
	res = mustParse(t, "s =~ /(?<year>\\d+)/\nyear")
	wantType(t, res.Program.Statements.Body[0], ast.CallNodeType)
	last := res.Program.Statements.Body[1].(*ast.CallNode)
	if !last.HasFlag(ast.CallVariableCall) {
		t.Fatalf("year must stay a method call")
	}
}

func Test_Word_Lists(t *testing.T) {
	cases := []struct{ src, want string }{
		{"%w[a b  c]", `(Array "a" "b" "c")`},
		{"%w[]", `(Array)`},
		{"%i[a b]", `(Array :a :b)`},
		{`%w[a\ b]`, `(Array "a b")`},
		{"%W[a#{1} b]", `(Array (InterpolatedString "a" (EmbeddedStatements 1)) "b")`},
		{"%w(\n  x\n  y\n)", `(Array "x" "y")`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}
}

func Test_Numbers(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1r", "(Rational 1)"},
		{"2i", "(Imaginary 2)"},
		{"3ri", "(Imaginary (Rational 3))"},
		{"1.5r", "(Rational 1.5)"},
		{"1e3", "1000"},
		{"-1.5", "-1.5"},
		{"12345678901234567890123", "12345678901234567890123"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}

	n := single(t, "0x10").(*ast.IntegerNode)
	if !n.HasFlag(ast.IntegerHexadecimal) {
		t.Fatalf("want hexadecimal flag, got %v", ast.FlagNames(n))
	}
}

func Test_Numbers_Negative_Location(t *testing.T) {
	n := single(t, "-42")
	if n.Loc() != ast.Loc(0, 3) {
		t.Fatalf("negative literal should include the sign, got %s", n.Loc())
	}
}

func Test_Numbers_Float_Out_Of_Range(t *testing.T) {
	res := Parse([]byte("1e400"))
	ws := res.Warnings()
	if len(ws) != 1 || !strings.Contains(ws[0].Message, "out of range") {
		t.Fatalf("want an out of range warning, got %v", res.Diagnostics)
	}
}

func Test_Numbers_Lexer_Errors(t *testing.T) {
	mustFailParseContains(t, "1__2", "underscore")
	mustFailParseContains(t, "0x", "numeric literal without digits")
	mustFailParseContains(t, "1e", "missing digits after exponent")
}
