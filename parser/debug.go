// debug.go: debugging-only checks over finished trees
//
// DebuggingMode is read once from RBPARSEDEBUG at process start. When it is
// set, Parse runs VerifyLocations on every tree, checks that its stacks
// unwound, and logs what it finds as warnings. Tests call VerifyLocations directly.
//
// Heredocs are the one place where a node does not contain its children:
// the literal covers only the opening "<<~ID" while its parts live on the
// following lines. Their parts are checked against the buffer only.
package parser

import (
	"fmt"
	"os"

	"github.com/ruby/ruby-sub004/ast"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// DebuggingMode enables location verification after every parse. Hosts and
// tests may set it directly.
var DebuggingMode = os.Getenv("RBPARSEDEBUG") != ""

// VerifyLocations walks the tree rooted at root and returns one message per
// broken location: a range outside src, a start after its end, or a child
// that escapes its parent. An empty result means the tree is consistent.
func VerifyLocations(root ast.Node, src []byte) []string {
	v := &locVerifier{src: src}
	if !ast.IsNil(root) {
		v.check(root, nil, false)
	}
	return v.problems
}

//// END_OF_PUBLIC

// openStacks lists the parser stacks a finished parse left unbalanced. The
// lex-mode stack returns to its single default mode; the context and scope
// stacks return to empty.
func (p *Parser) openStacks() []string {
	var out []string
	if len(p.modes) != 1 || p.modes[0].kind != modeDefault {
		out = append(out, fmt.Sprintf("lex-mode stack has %d entries", len(p.modes)))
	}
	if len(p.contexts) != 0 {
		out = append(out, fmt.Sprintf("context stack has %d entries", len(p.contexts)))
	}
	if len(p.scopes) != 0 {
		out = append(out, fmt.Sprintf("scope stack has %d entries", len(p.scopes)))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
//                               PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

type locVerifier struct {
	src      []byte
	problems []string
}

func (v *locVerifier) report(n ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	v.problems = append(v.problems, fmt.Sprintf("%s%s: %s", n.Type(), n.Loc(), msg))
}

// check validates n and recurses. detached is set below a heredoc, where
// containment in the parent does not hold.
func (v *locVerifier) check(n, parent ast.Node, detached bool) {
	l := n.Loc()
	if !l.Valid(len(v.src)) {
		v.report(n, "range outside the %d byte source", len(v.src))
	}
	if parent != nil && !detached && !parent.Loc().Contains(l) {
		v.report(n, "escapes parent %s%s", parent.Type(), parent.Loc())
	}
	below := detached || isHeredoc(n, v.src)
	for _, c := range n.Children() {
		v.check(c, n, below)
	}
}

// isHeredoc reports whether n is a heredoc literal, recognized by its
// opening "<<" token.
func isHeredoc(n ast.Node, src []byte) bool {
	var open ast.Location
	switch s := n.(type) {
	case *ast.StringNode:
		open = s.OpeningLoc
	case *ast.InterpolatedStringNode:
		open = s.OpeningLoc
	case *ast.XStringNode:
		open = s.OpeningLoc
	case *ast.InterpolatedXStringNode:
		open = s.OpeningLoc
	default:
		return false
	}
	b := open.Slice(src)
	return len(b) > 2 && b[0] == '<' && b[1] == '<'
}
