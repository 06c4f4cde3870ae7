// parser_test.go
package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
)

// --- helpers ---------------------------------------------------------------

// mustParse parses src and fails on any error diagnostic.
func mustParse(t *testing.T, src string, opts ...Option) *Result {
	t.Helper()
	res := Parse([]byte(src), opts...)
	if errs := res.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v\nsource:\n%s\ntree:\n%s", errs, src, ast.Dump(res.Program))
	}
	return res
}

// statements returns the top-level statements of a clean parse.
func statements(t *testing.T, src string, opts ...Option) []ast.Node {
	t.Helper()
	res := mustParse(t, src, opts...)
	if res.Program.Statements == nil {
		return nil
	}
	return res.Program.Statements.Body
}

// single returns the one top-level statement of src.
func single(t *testing.T, src string) ast.Node {
	t.Helper()
	body := statements(t, src)
	if len(body) != 1 {
		t.Fatalf("want 1 statement, got %d\nsource:\n%s", len(body), src)
	}
	return body[0]
}

func wantType(t *testing.T, n ast.Node, want ast.NodeType) {
	t.Helper()
	if ast.IsNil(n) {
		t.Fatalf("want %s, got nil", want)
	}
	if n.Type() != want {
		t.Fatalf("want %s, got %s\ntree:\n%s", want, n.Type(), ast.Dump(n))
	}
}

func mustFailParseContains(t *testing.T, src, substr string) *Result {
	t.Helper()
	res := Parse([]byte(src))
	for _, d := range res.Errors() {
		if strings.Contains(d.Message, substr) {
			return res
		}
	}
	t.Fatalf("expected an error containing %q, got %v\nsource:\n%s", substr, res.Errors(), src)
	return nil
}

// sexp renders a compact outline of n for comparisons. Calls print as
// (name receiver args... block), variable calls and locals as bare names
// and nodes without a special case as (Type children...).
func sexp(n ast.Node) string {
	if ast.IsNil(n) {
		return "nil"
	}
	switch v := n.(type) {
	case *ast.IntegerNode:
		return v.Value.String()
	case *ast.FloatNode:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *ast.StringNode:
		return strconv.Quote(string(v.Unescaped))
	case *ast.SymbolNode:
		return ":" + string(v.Unescaped)
	case *ast.NilNode:
		return "nil"
	case *ast.TrueNode:
		return "true"
	case *ast.FalseNode:
		return "false"
	case *ast.LocalVariableReadNode:
		return localName(v.Name, v.Depth)
	case *ast.LocalVariableTargetNode:
		return localName(v.Name, v.Depth)
	case *ast.ConstantReadNode:
		return v.Name
	case *ast.LocalVariableWriteNode:
		return "(= " + localName(v.Name, v.Depth) + " " + sexp(v.Value) + ")"
	case *ast.StatementsNode:
		parts := make([]string, len(v.Body))
		for i, c := range v.Body {
			parts[i] = sexp(c)
		}
		return strings.Join(parts, "; ")
	case *ast.ArgumentsNode:
		parts := make([]string, len(v.Arguments))
		for i, c := range v.Arguments {
			parts[i] = sexp(c)
		}
		return strings.Join(parts, " ")
	case *ast.CallNode:
		if v.HasFlag(ast.CallVariableCall) {
			return v.Name
		}
		parts := []string{v.Name}
		for _, c := range v.Children() {
			parts = append(parts, sexp(c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	parts := []string{strings.TrimSuffix(n.Type().String(), "Node")}
	for _, c := range n.Children() {
		parts = append(parts, sexp(c))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func localName(name string, depth int) string {
	if depth > 0 {
		return name + "@" + strconv.Itoa(depth)
	}
	return name
}

func wantSexp(t *testing.T, src, want string) {
	t.Helper()
	res := mustParse(t, src)
	if got := sexp(res.Program.Statements); got != want {
		t.Fatalf("source %q\nwant %s\ngot  %s\ntree:\n%s", src, want, got, ast.Dump(res.Program))
	}
}

// --- tests -----------------------------------------------------------------

func Test_Parser_Literals(t *testing.T) {
	cases := []struct{ src, want string }{
		{"42", "42"},
		{"1_000", "1000"},
		{"0x1f", "31"},
		{"0b101", "5"},
		{"0o17", "15"},
		{"017", "15"},
		{"1.5", "1.5"},
		{"nil", "nil"},
		{"true", "true"},
		{"false", "false"},
		{"self", "(Self)"},
		{":sym", ":sym"},
		{"'a\\nb'", `"a\\nb"`},
		{`"a\tb"`, `"a\tb"`},
		{"[1, 2]", "(Array 1 2)"},
		{"{}", "(Hash)"},
		{"@a", "(InstanceVariableRead)"},
		{"$stdout", "(GlobalVariableRead)"},
		{"Foo", "Foo"},
		{"Foo::Bar", "(ConstantPath Foo Bar)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}
}

func Test_Parser_Operator_Precedence(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"-2 ** 2", "(-@ (** 2 2))"},
		{"-2", "-2"},
		{"!true", "(! true)"},
		{"1 < 2 == true", "(== (< 1 2) true)"},
		{"a || b && c", "(Or a (And b c))"},
		{"a and b or c", "(Or (And a b) c)"},
		{"not a", "(! a)"},
		{"1..2", "(Range 1 2)"},
		{"(1 + 2) * 3", "(* (Parentheses (+ 1 2)) 3)"},
		{"a ? 1 : 2", "(If a 1 (Else 2))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}
}

func Test_Parser_Range_Flags(t *testing.T) {
	n := single(t, "1...2")
	wantType(t, n, ast.RangeNodeType)
	if !n.Base().HasFlag(ast.RangeExcludeEnd) {
		t.Fatalf("want exclude_end on 1...2")
	}
	n = single(t, "1..2")
	if n.Base().HasFlag(ast.RangeExcludeEnd) {
		t.Fatalf("1..2 must include its end")
	}
}

func Test_Parser_NonAssociative_Comparison(t *testing.T) {
	mustFailParseContains(t, "1 == 2 == 3", "non-associative operator")
}

func Test_Parser_Locals_And_Variable_Calls(t *testing.T) {
	res := mustParse(t, "x = 1\nx\ny")
	body := res.Program.Statements.Body
	if len(body) != 3 {
		t.Fatalf("want 3 statements, got %d", len(body))
	}
	wantType(t, body[0], ast.LocalVariableWriteNodeType)
	wantType(t, body[1], ast.LocalVariableReadNodeType)
	call, ok := body[2].(*ast.CallNode)
	if !ok || !call.HasFlag(ast.CallVariableCall) || call.Name != "y" {
		t.Fatalf("want variable call y, got %s", ast.Dump(body[2]))
	}
	if diff := cmp.Diff([]string{"x"}, res.Program.Locals); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}

func Test_Parser_Local_Depth_In_Blocks(t *testing.T) {
	res := mustParse(t, "x = 1\n[1].each { |y| x + y }")
	reads := ast.FindAll(res.Program, ast.LocalVariableReadNodeType)
	got := make([]string, len(reads))
	for i, r := range reads {
		lv := r.(*ast.LocalVariableReadNode)
		got[i] = localName(lv.Name, lv.Depth)
	}
	if diff := cmp.Diff([]string{"x@1", "y"}, got); diff != "" {
		t.Fatalf("reads mismatch (-want +got):\n%s", diff)
	}
	blocks := ast.FindAll(res.Program, ast.BlockNodeType)
	if len(blocks) != 1 {
		t.Fatalf("want one block, got %d", len(blocks))
	}
	if diff := cmp.Diff([]string{"y"}, blocks[0].(*ast.BlockNode).Locals); diff != "" {
		t.Fatalf("block locals mismatch (-want +got):\n%s", diff)
	}
}

func Test_Parser_Def_Hides_Outer_Locals(t *testing.T) {
	res := mustParse(t, "x = 1\ndef m\n  x\nend")
	def := ast.FindAll(res.Program, ast.DefNodeType)[0].(*ast.DefNode)
	if len(ast.FindAll(def, ast.LocalVariableReadNodeType)) != 0 {
		t.Fatalf("x inside def must not resolve to the outer local\n%s", ast.Dump(def))
	}
	calls := ast.FindAll(def, ast.CallNodeType)
	if len(calls) != 1 || !calls[0].Base().HasFlag(ast.CallVariableCall) {
		t.Fatalf("want x as a variable call\n%s", ast.Dump(def))
	}
}

func Test_Parser_Eval_Scopes(t *testing.T) {
	res := mustParse(t, "a", WithScopes([]string{"a"}))
	n := res.Program.Statements.Body[0]
	lv, ok := n.(*ast.LocalVariableReadNode)
	if !ok {
		t.Fatalf("want a local read, got %s", ast.Dump(n))
	}
	if lv.Depth != 1 {
		t.Fatalf("want depth 1 for an enclosing eval scope, got %d", lv.Depth)
	}
}

func Test_Parser_Ambiguous_Minus(t *testing.T) {
	res := Parse([]byte("foo -1"))
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	if got := sexp(res.Program.Statements); got != "(foo -1)" {
		t.Fatalf("want (foo -1), got %s", got)
	}
	if len(res.Warnings()) != 1 || !strings.Contains(res.Warnings()[0].Message, "ambiguous first argument") {
		t.Fatalf("want one ambiguity warning, got %v", res.Warnings())
	}

	wantSexp(t, "x = 1; x - 1", "(= x 1); (- x 1)")

	res = Parse([]byte("x = 1; x -1"))
	if got := sexp(res.Program.Statements); got != "(= x 1); (x -1)" {
		t.Fatalf("want (x -1), got %s", got)
	}
	if len(res.Warnings()) == 0 {
		t.Fatalf("want an ambiguity warning for x -1")
	}
}

func Test_Parser_Method_Calls(t *testing.T) {
	cases := []struct{ src, want string }{
		{"foo(1, 2)", "(foo 1 2)"},
		{"foo 1, 2", "(foo 1 2)"},
		{"a.b", "(b a)"},
		{"a.b(1)", "(b a 1)"},
		{"a[1]", "([] a 1)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			wantSexp(t, tc.src, tc.want)
		})
	}

	n := single(t, "a&.b")
	if !n.Base().HasFlag(ast.CallSafeNavigation) {
		t.Fatalf("want safe navigation flag\n%s", ast.Dump(n))
	}
}

func Test_Parser_Def_Parameters(t *testing.T) {
	n := single(t, "def foo(a, b = 1, *r, c, d:, e: 2, **k, &blk); end")
	def := n.(*ast.DefNode)
	if def.Name != "foo" {
		t.Fatalf("want name foo, got %q", def.Name)
	}
	ps := def.Parameters
	if ps == nil {
		t.Fatalf("missing parameters\n%s", ast.Dump(def))
	}
	names := func(ns []ast.Node) []string {
		out := []string{}
		for _, n := range ns {
			switch v := n.(type) {
			case *ast.RequiredParameterNode:
				out = append(out, v.Name)
			case *ast.OptionalParameterNode:
				out = append(out, v.Name)
			case *ast.KeywordParameterNode:
				out = append(out, v.Name)
			default:
				out = append(out, n.Type().String())
			}
		}
		return out
	}
	if diff := cmp.Diff([]string{"a"}, names(ps.Requireds)); diff != "" {
		t.Fatalf("requireds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, names(ps.Optionals)); diff != "" {
		t.Fatalf("optionals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, names(ps.Posts)); diff != "" {
		t.Fatalf("posts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d", "e"}, names(ps.Keywords)); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
	wantType(t, ps.Rest, ast.RestParameterNodeType)
	wantType(t, ps.KeywordRest, ast.KeywordRestParameterNodeType)
	if ps.Block == nil || ps.Block.Name != "blk" {
		t.Fatalf("want block parameter blk\n%s", ast.Dump(ps))
	}
	if diff := cmp.Diff([]string{"a", "b", "r", "c", "d", "e", "k", "blk"}, def.Locals); diff != "" {
		t.Fatalf("locals (-want +got):\n%s", diff)
	}
}

func Test_Parser_Required_After_Optional_Is_Post(t *testing.T) {
	def := single(t, "def m(a = 1, b); end").(*ast.DefNode)
	if len(def.Parameters.Optionals) != 1 || len(def.Parameters.Posts) != 1 {
		t.Fatalf("want one optional and one post\n%s", ast.Dump(def))
	}
}

func Test_Parser_Parameter_Errors(t *testing.T) {
	mustFailParseContains(t, "def m(a, a); end", "duplicated argument name")
	mustFailParseContains(t, "def m(**a, b); end", "unexpected parameter order")
	mustFailParseContains(t, "def m(*a, *b); end", "unexpected multiple `*` splat parameters")
	mustFailParseContains(t, "def m(@a); end", "formal argument cannot be")

	// Underscore names may repeat.
	mustParse(t, "def m(_, _); end")
}

func Test_Parser_Recovery_Empty_Parameter(t *testing.T) {
	src := "def foo(,); end"
	res := Parse([]byte(src))
	errs := res.Errors()
	if len(errs) != 1 {
		t.Fatalf("want exactly one error, got %v", errs)
	}
	if errs[0].Message != "unexpected ','; expected a parameter" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Location != ast.Loc(8, 9) {
		t.Fatalf("want error at the comma (8...9), got %s", errs[0].Location)
	}
	defs := ast.FindAll(res.Program, ast.DefNodeType)
	if len(defs) != 1 {
		t.Fatalf("want a def node despite the error\n%s", ast.Dump(res.Program))
	}
	ps := defs[0].(*ast.DefNode).Parameters
	if ps == nil || len(ps.Requireds) != 1 {
		t.Fatalf("want one placeholder parameter\n%s", ast.Dump(defs[0]))
	}
	wantType(t, ps.Requireds[0], ast.MissingNodeType)
}

func Test_Parser_Missing_End(t *testing.T) {
	res := Parse([]byte("def foo\n  1\n"))
	if res.OK() {
		t.Fatalf("expected an error for a def without end")
	}
	if len(ast.FindAll(res.Program, ast.DefNodeType)) != 1 {
		t.Fatalf("want the def kept in the tree\n%s", ast.Dump(res.Program))
	}
}

func Test_Parser_Totality(t *testing.T) {
	inputs := []string{
		"",
		"(",
		")",
		"def",
		"class",
		"1 +",
		"foo(1,",
		"[1, 2",
		"{a: ",
		"\"abc",
		"'abc",
		"%w[a b",
		"/re",
		"<<~EOS\nabc",
		"x = ",
		"case x\nin [",
		"a, b",
		"->(x",
		"if true\n",
		"begin\nrescue =>\n",
		"@",
		"$",
		"def foo(a, ",
		"end",
		"}",
		"]",
		"1..",
		"::",
		"a.",
		"alias",
		"undef",
		"yield(",
		"`cmd",
		":\"sym",
		"\x00trailing",
		"x = 1 rescue",
		"while",
		"for a in",
		"=begin\nnever closed",
		"(#{",
		"{\n;",
		"..(\\",
		"[1, 2",
		"{a: 1,",
		"A::",
		"Foo::(",
		"case x\nwhen",
		"case x\nin",
		"a ? b",
		"a ? : c",
		"(a; b",
		"((",
		"[{",
	}
	for _, src := range inputs {
		t.Run(strconv.Quote(src), func(t *testing.T) {
			res := Parse([]byte(src))
			if res.Program == nil {
				t.Fatalf("nil program")
			}
			if got, want := res.Program.Loc(), ast.Loc(0, len(src)); got != want {
				t.Fatalf("program location %s, want %s", got, want)
			}
			for _, n := range collect(res.Program) {
				if !n.Loc().Valid(len(src)) {
					t.Fatalf("%s has location %s outside the source", n.Type(), n.Loc())
				}
			}
			if problems := VerifyLocations(res.Program, res.Source); len(problems) > 0 {
				t.Fatalf("location problems:\n%s\ntree:\n%s", strings.Join(problems, "\n"), ast.Dump(res.Program))
			}
		})
	}
}

func collect(root ast.Node) []ast.Node {
	var out []ast.Node
	ast.Walk(root, func(n ast.Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

func Test_Parser_Locations_Nest(t *testing.T) {
	inputs := []string{
		"x = 1 + 2 * 3",
		"def foo(a, b = 1, *c, d:, **e, &f)\n  a + b\nend",
		"class Foo < Bar\n  def self.baz = 1\nend",
		"module M; end",
		"[1, [2, 3], {a: 1, 'b' => 2}]",
		"foo(1, *a, **h, &b)",
		"a.b&.c[1] ||= 2",
		"x = \"a#{1 + 2}b\"",
		"if a then b elsif c then d else e end",
		"case x\nwhen 1, 2 then :a\nelse :b\nend",
		"case v\nin [a, *r] then a\nin {k: Integer => n} then n\nend",
		"begin\n  1\nrescue Foo => e\n  2\nelse\n  3\nensure\n  4\nend",
		"[1].map { |x| x * 2 }",
		"[1].each do |x|\n  p x\nend",
		"->(a) { a }",
		"a, *b = 1, 2, 3",
		"%w[a b c]",
		"%i[a b]",
		"/a(?<n>b)/ =~ s",
		"x = <<~EOS\n  one\n    two\nEOS\ny = 1",
		"while x < 10\n  x += 1\nend",
		"for i in 1..3 do p i end",
		"alias foo bar",
		"defined?(x)",
		"BEGIN { 1 }",
		"1 if true",
		"x = 1 rescue 2",
		":\"a#{1}\"",
		"`ls`",
	}
	for _, src := range inputs {
		t.Run(strconv.Quote(src), func(t *testing.T) {
			res := mustParse(t, src)
			if problems := VerifyLocations(res.Program, res.Source); len(problems) > 0 {
				t.Fatalf("location problems:\n%s\ntree:\n%s", strings.Join(problems, "\n"), ast.Dump(res.Program))
			}
		})
	}
}

func Test_Parser_Stacks_Unwind(t *testing.T) {
	inputs := []string{
		"",
		"x = \"a#{[1, {b: 2}]}c\"\n",
		"def m(a, *r) = a\nclass A; def b; [1].each { |x| x }; end; end\n",
		"case v\nin [a, *] then a\nend\n",
		"y = <<~EOS\n  #{1}\nEOS\n",
		"def foo\n",
		"foo(1,\n",
	}
	for _, src := range inputs {
		p := New([]byte(src))
		p.Parse()
		if open := p.openStacks(); len(open) > 0 {
			t.Fatalf("%q left stacks open: %s", src, strings.Join(open, "; "))
		}
	}
}

func Test_Parser_Parse_Is_Cached(t *testing.T) {
	p := New([]byte("1"))
	a := p.Parse()
	b := p.Parse()
	if a != b {
		t.Fatalf("second Parse must return the same Result")
	}
}

func Test_Parser_Result_Fields(t *testing.T) {
	res := Parse([]byte("# hello\n1\n__END__\ndata"), WithFilepath("x.rb"))
	if res.Filepath != "x.rb" {
		t.Fatalf("filepath = %q", res.Filepath)
	}
	if len(res.Comments) != 1 || res.Comments[0].Location != ast.Loc(0, 7) {
		t.Fatalf("comments = %v", res.Comments)
	}
	if got := string(res.DataLoc.Slice(res.Source)); got != "data" {
		t.Fatalf("data section = %q", got)
	}
	if res.TokenCount == 0 {
		t.Fatalf("token count not recorded")
	}
}

func Test_Parser_LineColumn(t *testing.T) {
	res := Parse([]byte("a\nbc\n"), WithLine(10))
	line, col := res.LineColumn(3)
	if line != 11 || col != 1 {
		t.Fatalf("LineColumn(3) = %d:%d, want 11:1", line, col)
	}
}

func Test_Parser_Source_File(t *testing.T) {
	res := mustParse(t, "__FILE__", WithFilepath("lib/a.rb"))
	f, ok := res.Program.Statements.Body[0].(*ast.SourceFileNode)
	if !ok || f.Filepath != "lib/a.rb" {
		t.Fatalf("want SourceFileNode for lib/a.rb\n%s", ast.Dump(res.Program))
	}
}
