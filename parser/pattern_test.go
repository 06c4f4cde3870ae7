package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
)

// patternOf parses "v = 1" followed by src and returns the pattern of the
// match in the second statement.
func patternOf(t *testing.T, src string) (ast.Node, *Result) {
	t.Helper()
	res := mustParse(t, "v = 1\n"+src)
	switch m := res.Program.Statements.Body[1].(type) {
	case *ast.MatchRequiredNode:
		return m.Pattern, res
	case *ast.MatchPredicateNode:
		return m.Pattern, res
	}
	t.Fatalf("want a match node\n%s", ast.Dump(res.Program))
	return nil, nil
}

func Test_Pattern_Array(t *testing.T) {
	pat, res := patternOf(t, "v => [a, *rest, b]")
	ap, ok := pat.(*ast.ArrayPatternNode)
	if !ok {
		t.Fatalf("want ArrayPatternNode\n%s", ast.Dump(pat))
	}
	if got := sexp(ap); got != "(ArrayPattern a (Splat rest) b)" {
		t.Fatalf("got %s", got)
	}
	if len(ap.Requireds) != 1 || len(ap.Posts) != 1 {
		t.Fatalf("want one required and one post\n%s", ast.Dump(ap))
	}
	if diff := cmp.Diff([]string{"v", "a", "rest", "b"}, res.Program.Locals); diff != "" {
		t.Fatalf("locals (-want +got):\n%s", diff)
	}
}

func Test_Pattern_Top_Level_List(t *testing.T) {
	pat, _ := patternOf(t, "v in a, b")
	ap, ok := pat.(*ast.ArrayPatternNode)
	if !ok || len(ap.Requireds) != 2 {
		t.Fatalf("want a bracketless array pattern\n%s", ast.Dump(pat))
	}
	if present(ap.OpeningLoc) {
		t.Fatalf("bracketless pattern has no opening")
	}
}

func Test_Pattern_Find(t *testing.T) {
	pat, _ := patternOf(t, "v in [*, 1, *post]")
	fp, ok := pat.(*ast.FindPatternNode)
	if !ok {
		t.Fatalf("want FindPatternNode\n%s", ast.Dump(pat))
	}
	if len(fp.Requireds) != 1 {
		t.Fatalf("want one inner element\n%s", ast.Dump(fp))
	}
}

func Test_Pattern_Hash(t *testing.T) {
	pat, res := patternOf(t, "v in {name: String => n, age:, **rest}")
	hp, ok := pat.(*ast.HashPatternNode)
	if !ok {
		t.Fatalf("want HashPatternNode\n%s", ast.Dump(pat))
	}
	if got := sexp(hp); got != "(HashPattern (Assoc :name (CapturePattern String n)) (Assoc :age) (AssocSplat rest))" {
		t.Fatalf("got %s", got)
	}
	if diff := cmp.Diff([]string{"v", "n", "age", "rest"}, res.Program.Locals); diff != "" {
		t.Fatalf("locals (-want +got):\n%s", diff)
	}
}

func Test_Pattern_Hash_No_Keywords(t *testing.T) {
	pat, _ := patternOf(t, "v in {a: 1, **nil}")
	hp := pat.(*ast.HashPatternNode)
	wantType(t, hp.Rest, ast.NoKeywordsParameterNodeType)
}

func Test_Pattern_Constants(t *testing.T) {
	cases := []struct{ src, want string }{
		{"v in Integer", "Integer"},
		{"v in Point(x, y)", "(ArrayPattern Point x y)"},
		{"v in Point[x:]", "(HashPattern Point (Assoc :x))"},
		{"v in Foo::Bar", "(ConstantPath Foo Bar)"},
		{"v in 1..5", "(Range 1 5)"},
		{"v in ..5", "(Range 5)"},
		{"v in 1 | 2", "(AlternationPattern 1 2)"},
		{"v in :a | nil", "(AlternationPattern :a nil)"},
		{"v in [Integer => x]", "(ArrayPattern (CapturePattern Integer x))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			pat, _ := patternOf(t, tc.src)
			if got := sexp(pat); got != tc.want {
				t.Fatalf("want %s\ngot  %s", tc.want, got)
			}
		})
	}
}

func Test_Pattern_Pin(t *testing.T) {
	res := mustParse(t, "w = 2\nv = 1\nv in ^w")
	m := res.Program.Statements.Body[2].(*ast.MatchPredicateNode)
	pin, ok := m.Pattern.(*ast.PinnedVariableNode)
	if !ok {
		t.Fatalf("want PinnedVariableNode\n%s", ast.Dump(m))
	}
	wantType(t, pin.Variable, ast.LocalVariableReadNodeType)

	res = mustParse(t, "v = 1\nv in ^(1 + 2)")
	m = res.Program.Statements.Body[1].(*ast.MatchPredicateNode)
	wantType(t, m.Pattern, ast.PinnedExpressionNodeType)

	mustFailParseContains(t, "v = 1\nv in ^nope", "nope: no such local variable")
}

func Test_Pattern_Errors(t *testing.T) {
	mustFailParseContains(t, "v = 1\nv in [a, a]", "duplicated variable name")
	mustFailParseContains(t, "v = 1\nv in a | 2", "illegal variable in alternative pattern (a)")
	mustFailParseContains(t, "v = 1\nv in [*a, *b, *c]", "unexpected multiple `*` splats in the pattern")
	mustFailParseContains(t, "v = 1\nv in {**a, **b}", "unexpected multiple `**` splats")

	// Underscore names are exempt from both checks.
	mustParse(t, "v = 1\nv in [_, _]")
	mustParse(t, "v = 1\nv in [_x] | [_x, 1]")
}

func Test_Pattern_Case_In(t *testing.T) {
	src := "case [1, 2]\nin [Integer => a, Integer]\n  a\nin {k:} then k\nelse\n  0\nend"
	res := mustParse(t, src)
	c, ok := res.Program.Statements.Body[0].(*ast.CaseNode)
	if !ok {
		t.Fatalf("want CaseNode\n%s", ast.Dump(res.Program))
	}
	if len(c.Conditions) != 2 {
		t.Fatalf("want two in clauses, got %d", len(c.Conditions))
	}
	for _, cond := range c.Conditions {
		wantType(t, cond, ast.InNodeType)
	}
	if c.Consequent == nil {
		t.Fatalf("want an else clause")
	}
	in := c.Conditions[0].(*ast.InNode)
	wantType(t, in.Pattern, ast.ArrayPatternNodeType)
	reads := ast.FindAll(in, ast.LocalVariableReadNodeType)
	if len(reads) != 1 {
		t.Fatalf("a should read the bound local\n%s", ast.Dump(in))
	}
}

func Test_Pattern_Names_Are_Scoped_Per_Pattern(t *testing.T) {
	// The same name in two separate patterns is not a duplicate.
	mustParse(t, "v = 1\nv in [a]\nv in [a]")
}
