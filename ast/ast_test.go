package ast

import (
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sample builds the tree for `x = [1, 2.5]`.
func sample() *ProgramNode {
	one := &IntegerNode{NodeBase: NodeBase{Location: Loc(5, 6), Flags: IntegerDecimal}, Value: big.NewInt(1)}
	half := &FloatNode{NodeBase: NodeBase{Location: Loc(8, 11)}, Value: 2.5}
	arr := &ArrayNode{
		NodeBase:   NodeBase{Location: Loc(4, 12)},
		OpeningLoc: Loc(4, 5),
		Elements:   []Node{one, half},
		ClosingLoc: Loc(11, 12),
	}
	write := &LocalVariableWriteNode{
		NodeBase:    NodeBase{Location: Loc(0, 12)},
		Name:        "x",
		NameLoc:     Loc(0, 1),
		OperatorLoc: Loc(2, 3),
		Value:       arr,
	}
	return &ProgramNode{
		NodeBase:   NodeBase{Location: Loc(0, 12)},
		Locals:     []string{"x"},
		Statements: &StatementsNode{NodeBase: NodeBase{Location: Loc(0, 12)}, Body: []Node{write}},
	}
}

func types(ns []Node) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.Type().String())
	}
	return out
}

func Test_AST_Dump(t *testing.T) {
	want := `ProgramNode (0...12)
  locals: ["x"]
  statements:
    StatementsNode (0...12)
      body:
        - LocalVariableWriteNode (0...12)
          name: "x"
          depth: 0
          name_loc: (0...1)
          operator_loc: (2...3)
          value:
            ArrayNode (4...12)
              opening_loc: (4...5)
              elements:
                - IntegerNode (5...6) [decimal]
                  value: 1
                - FloatNode (8...11)
                  value: 2.5
              closing_loc: (11...12)
`
	if diff := cmp.Diff(want, Dump(sample())); diff != "" {
		t.Fatalf("dump (-want +got):\n%s", diff)
	}
}

func Test_AST_Walk_Orders(t *testing.T) {
	root := sample()
	var pre, post []Node
	Walk(root, func(n Node) bool { pre = append(pre, n); return true })
	WalkPost(root, func(n Node) { post = append(post, n) })

	wantPre := []string{"ProgramNode", "StatementsNode", "LocalVariableWriteNode", "ArrayNode", "IntegerNode", "FloatNode"}
	wantPost := []string{"IntegerNode", "FloatNode", "ArrayNode", "LocalVariableWriteNode", "StatementsNode", "ProgramNode"}
	if diff := cmp.Diff(wantPre, types(pre)); diff != "" {
		t.Fatalf("pre-order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantPost, types(post)); diff != "" {
		t.Fatalf("post-order (-want +got):\n%s", diff)
	}

	var pruned []Node
	Walk(root, func(n Node) bool {
		pruned = append(pruned, n)
		return n.Type() != ArrayNodeType
	})
	if len(pruned) != 4 {
		t.Fatalf("returning false should skip children, visited %v", types(pruned))
	}
}

func Test_AST_Find_And_Count(t *testing.T) {
	root := sample()
	if n := Count(root); n != 6 {
		t.Fatalf("count = %d", n)
	}
	hit := Find(root, func(n Node) bool { return n.Loc().Start >= 5 })
	if hit == nil || hit.Type() != IntegerNodeType {
		t.Fatalf("find returned %v", hit)
	}
	if got := FindAll(root, FloatNodeType); len(got) != 1 {
		t.Fatalf("findall = %v", types(got))
	}
	if Find(root, func(Node) bool { return false }) != nil {
		t.Fatalf("find without match should be nil")
	}
}

func Test_AST_Inspect_Depth(t *testing.T) {
	depth, deepest := 0, 0
	Inspect(sample(), func(n Node) bool {
		if n == nil {
			depth--
			return false
		}
		depth++
		deepest = max(deepest, depth)
		return true
	})
	if depth != 0 || deepest != 5 {
		t.Fatalf("depth %d, deepest %d", depth, deepest)
	}
}

func Test_AST_Children_Within_Parent(t *testing.T) {
	Walk(sample(), func(n Node) bool {
		for _, c := range n.Children() {
			if !n.Loc().Contains(c.Loc()) {
				t.Fatalf("%s %s escapes %s %s", c.Type(), c.Loc(), n.Type(), n.Loc())
			}
		}
		return true
	})
}

func Test_AST_Location(t *testing.T) {
	l := Loc(2, 5)
	if l.Len() != 3 || l.IsEmpty() || !l.Valid(5) || l.Valid(4) {
		t.Fatalf("bad range predicates for %s", l)
	}
	if got := string(l.Slice([]byte("abcdef"))); got != "cde" {
		t.Fatalf("slice = %q", got)
	}
	if l.Slice([]byte("ab")) != nil {
		t.Fatalf("out of range slice should be nil")
	}
	if j := l.Join(Loc(0, 3)); j != Loc(0, 5) {
		t.Fatalf("join = %s", j)
	}
	if !Loc(0, 10).Contains(l) || l.Contains(Loc(0, 10)) {
		t.Fatalf("contains")
	}
}

func Test_AST_IsNil(t *testing.T) {
	var stmts *StatementsNode
	var n Node = stmts
	if n == nil || !IsNil(n) {
		t.Fatalf("typed nil should be nil")
	}
	if IsNil(&NilNode{}) {
		t.Fatalf("NilNode is a real node")
	}
}

func Test_AST_Snake(t *testing.T) {
	cases := map[string]string{
		"Name":            "name",
		"OpeningLoc":      "opening_loc",
		"CallOperatorLoc": "call_operator_loc",
		"Value":           "value",
	}
	for in, want := range cases {
		if got := Snake(in); got != want {
			t.Fatalf("Snake(%q) = %q, want %q", in, got, want)
		}
	}
}

func Test_AST_ToJSON(t *testing.T) {
	root := sample()
	one := FindAll(root, IntegerNodeType)[0]
	got, err := ToJSON(one, "")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"IntegerNode","location":[5,6],"flags":["decimal"],"value":1}`
	if string(got) != want {
		t.Fatalf("json:\n got %s\nwant %s", got, want)
	}
	pretty, err := ToJSON(root, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pretty), "\n  \"locals\": [\n    \"x\"\n  ]") {
		t.Fatalf("indented json:\n%s", pretty)
	}
}

func Test_AST_ToYAML(t *testing.T) {
	one := FindAll(sample(), IntegerNodeType)[0]
	got, err := ToYAML(one)
	if err != nil {
		t.Fatal(err)
	}
	want := "type: IntegerNode\nlocation: [5, 6]\nflags: [decimal]\nvalue: 1\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("yaml (-want +got):\n%s", diff)
	}
}

func Test_AST_NewNode_Covers_All_Types(t *testing.T) {
	for ty := NodeType(1); ; ty++ {
		n := NewNode(ty)
		if n == nil {
			if ty <= YieldNodeType {
				t.Fatalf("no constructor for %s", ty)
			}
			break
		}
		if n.Type() != ty {
			t.Fatalf("NewNode(%s) built %s", ty, n.Type())
		}
	}
	if NewNode(UnknownNodeType) != nil {
		t.Fatalf("unknown type should have no node")
	}
}

func Test_AST_SetFields(t *testing.T) {
	src := FindAll(sample(), LocalVariableWriteNodeType)[0]
	dst := NewNode(LocalVariableWriteNodeType)
	if err := SetFields(dst, Fields(src)); err != nil {
		t.Fatalf("set: %v", err)
	}
	dst.Base().Location = src.Loc()
	if diff := cmp.Diff(Dump(src), Dump(dst)); diff != "" {
		t.Fatalf("copy (-want +got):\n%s", diff)
	}

	prog := NewNode(ProgramNodeType)
	bad := []Field{
		{Name: "locals", Kind: FieldStrings},
		{Name: "statements", Kind: FieldNode, Node: &IntegerNode{}},
	}
	if err := SetFields(prog, bad); err == nil {
		t.Fatalf("integer accepted as statements")
	}
	if err := SetFields(prog, bad[:1]); err == nil {
		t.Fatalf("short field list accepted")
	}
	bad[1] = Field{Name: "statements", Kind: FieldInt}
	if err := SetFields(prog, bad); err == nil {
		t.Fatalf("kind mismatch accepted")
	}
}
