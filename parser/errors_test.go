package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
)

func Test_Errors_FormatDiagnostic_Layout(t *testing.T) {
	res := Parse([]byte("a = 1\nb = 2\nc = 3\n"), WithFilepath("t.rb"))
	d := Diagnostic{Location: ast.Loc(10, 11), Message: "boom", Severity: SeverityError}
	want := "error in t.rb at 2:5: boom\n\n" +
		"   1 | a = 1\n" +
		"   2 | b = 2\n" +
		"     |     ^\n" +
		"   3 | c = 3\n"
	if diff := cmp.Diff(want, res.FormatDiagnostic(d)); diff != "" {
		t.Fatalf("snippet (-want +got):\n%s", diff)
	}
}

func Test_Errors_FormatDiagnostic_First_Line_And_Range(t *testing.T) {
	res := Parse([]byte("foo bar\n"))
	d := Diagnostic{Location: ast.Loc(4, 7), Message: "here", Severity: SeverityWarning}
	want := "warning at 1:5: here\n\n" +
		"   1 | foo bar\n" +
		"     |     ^~~\n"
	if diff := cmp.Diff(want, res.FormatDiagnostic(d)); diff != "" {
		t.Fatalf("snippet (-want +got):\n%s", diff)
	}
}

func Test_Errors_FormatDiagnostic_Counts_Characters(t *testing.T) {
	res := Parse([]byte("é = x\n"))
	d := Diagnostic{Location: ast.Loc(5, 6), Message: "m", Severity: SeverityError}
	got := res.FormatDiagnostic(d)
	if !strings.HasPrefix(got, "error at 1:5: m") {
		t.Fatalf("column must count characters, got:\n%s", got)
	}
	if !strings.Contains(got, "     |     ^\n") {
		t.Fatalf("caret misplaced:\n%s", got)
	}
}

func Test_Errors_FormatDiagnostic_Start_Line(t *testing.T) {
	res := Parse([]byte("x\ny\n"), WithLine(41))
	d := Diagnostic{Location: ast.Loc(2, 3), Message: "m", Severity: SeverityError}
	if got := res.FormatDiagnostic(d); !strings.HasPrefix(got, "error at 42:1: m") {
		t.Fatalf("line numbers must start at the configured line:\n%s", got)
	}
}

func Test_Errors_FormatDiagnostics_Joins_All(t *testing.T) {
	res := Parse([]byte("def foo(,); end\n1 == 2 == 3\n"))
	out := res.FormatDiagnostics()
	if strings.Count(out, "error at") != len(res.Diagnostics) {
		t.Fatalf("want one snippet per diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "expected a parameter") || !strings.Contains(out, "non-associative") {
		t.Fatalf("missing messages:\n%s", out)
	}
}

func Test_Errors_VerifyLocations_Reports_Escapes(t *testing.T) {
	src := []byte("abc")
	child := &ast.NilNode{}
	child.SetLoc(1, 5)
	stmts := &ast.StatementsNode{Body: []ast.Node{child}}
	stmts.SetLoc(0, 2)
	prog := &ast.ProgramNode{Statements: stmts}
	prog.SetLoc(0, 3)

	problems := VerifyLocations(prog, src)
	if len(problems) != 2 {
		t.Fatalf("want an out-of-range and an escape report, got %v", problems)
	}
	if !strings.Contains(problems[0], "outside") || !strings.Contains(problems[1], "escapes parent") {
		t.Fatalf("unexpected reports: %v", problems)
	}
}

func Test_Errors_Incomplete(t *testing.T) {
	incomplete := []string{
		"def foo\n",
		"class A\n  def b\n",
		"foo(1,\n",
		"x = \"abc\n",
		"[1, 2,\n",
		"x = <<~EOS\n  body\n",
		"=begin\n",
	}
	for _, src := range incomplete {
		if res := Parse([]byte(src)); !res.Incomplete() {
			t.Fatalf("%q should be incomplete, errors: %v", src, res.Errors())
		}
	}
	complete := []string{
		"x = 1\n",
		"def (\nend\n",
		"1 == 2 == 3\n",
	}
	for _, src := range complete {
		if res := Parse([]byte(src)); res.Incomplete() {
			t.Fatalf("%q should not be incomplete, errors: %v", src, res.Errors())
		}
	}
}
