package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   LOCATION PLUMBING
   =========================== */

func nodeStart(n ast.Node) int { return n.Loc().Start }
func nodeEnd(n ast.Node) int   { return n.Loc().End }

func setLoc(n ast.Node, start, end int) { n.Base().Location = ast.Location{Start: start, End: end} }

// extend grows n so that it ends no earlier than end.
func extend(n ast.Node, end int) {
	if b := n.Base(); end > b.Location.End {
		b.Location.End = end
	}
}

// maxEnd returns the largest End among the given locations. Absent
// locations are the zero value and never win over a real one.
func maxEnd(at int, locs ...ast.Location) int {
	for _, l := range locs {
		if l.End > at {
			at = l.End
		}
	}
	return at
}

func present(l ast.Location) bool { return l != ast.Location{} }

// endOf returns the largest of at and the ends of the given nodes. A
// closing token that recovery synthesized can sit before a child that was
// already parsed, so builders take the child into account as well.
func endOf(at int, nodes ...ast.Node) int {
	for _, n := range nodes {
		if !ast.IsNil(n) && n.Loc().End > at {
			at = n.Loc().End
		}
	}
	return at
}

// lastOf returns the final element of nodes, or nil.
func lastOf(nodes []ast.Node) ast.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

// coverChildren widens every node below root so that it contains its
// children. On well-formed input nothing changes. Heredoc literals cover
// only their opener and keep that range.
func (p *Parser) coverChildren(root ast.Node) {
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		kids := n.Children()
		for _, c := range kids {
			if !ast.IsNil(c) {
				visit(c)
			}
		}
		if isHeredoc(n, p.src) {
			return
		}
		b := n.Base()
		for _, c := range kids {
			if ast.IsNil(c) {
				continue
			}
			l := c.Loc()
			if l.Start < b.Location.Start {
				b.Location.Start = l.Start
			}
			if l.End > b.Location.End {
				b.Location.End = l.End
			}
		}
	}
	visit(root)
}

/* ===========================
   COMMON NODES
   =========================== */

// missing records msg at the current token and returns a zero-width
// placeholder. The parser enters recovery until the next statement.
func (p *Parser) missing(format string, args ...any) *ast.MissingNode {
	at := p.current.Start
	if p.current.Type == EOF {
		at = p.previous.End
	}
	p.errorAt(p.current.Start, p.current.End, format, args...)
	if !p.recovering {
		p.logger.Debug("recovering", "parse_id", p.parseID, "at", at, "token", p.current.Type.String())
	}
	p.recovering = true
	n := &ast.MissingNode{}
	setLoc(n, at, at)
	return n
}

func isMissing(n ast.Node) bool {
	_, ok := n.(*ast.MissingNode)
	return ok
}

func newStatements(at int) *ast.StatementsNode {
	s := &ast.StatementsNode{Body: []ast.Node{}}
	setLoc(s, at, at)
	return s
}

func addStatement(s *ast.StatementsNode, n ast.Node) {
	if len(s.Body) == 0 {
		setLoc(s, nodeStart(n), nodeEnd(n))
	} else {
		extend(s, nodeEnd(n))
		if st := nodeStart(n); st < s.Location.Start {
			s.Location.Start = st
		}
	}
	s.Body = append(s.Body, n)
}

// statementsOf wraps a single node.
func statementsOf(n ast.Node) *ast.StatementsNode {
	s := newStatements(nodeStart(n))
	addStatement(s, n)
	return s
}

// asNode converts an optional statements list into a Node field value
// without producing a typed nil.
func asNode(s *ast.StatementsNode) ast.Node {
	if s == nil {
		return nil
	}
	return s
}

func addArgument(a *ast.ArgumentsNode, n ast.Node) {
	if len(a.Arguments) == 0 {
		setLoc(a, nodeStart(n), nodeEnd(n))
	} else {
		extend(a, nodeEnd(n))
	}
	a.Arguments = append(a.Arguments, n)
}

// arguments collects what follows a method name: the optional
// parentheses, the argument list and the block.
type arguments struct {
	opening ast.Location
	args    *ast.ArgumentsNode
	closing ast.Location
	block   ast.Node // *ast.BlockNode or *ast.BlockArgumentNode
}

func (a *arguments) add(n ast.Node) {
	if a.args == nil {
		a.args = &ast.ArgumentsNode{Arguments: []ast.Node{}}
	}
	addArgument(a.args, n)
}

func (a *arguments) empty() bool {
	return !present(a.opening) && a.args == nil && a.block == nil
}

// callNode assembles a call. operator and message may be the zero
// Location when absent.
func (p *Parser) callNode(recv ast.Node, operator, message ast.Location, name string, a arguments) *ast.CallNode {
	c := &ast.CallNode{
		Receiver:        recv,
		CallOperatorLoc: operator,
		MessageLoc:      message,
		OpeningLoc:      a.opening,
		ClosingLoc:      a.closing,
		Name:            name,
	}
	if a.args != nil {
		c.Arguments = a.args
	}
	if a.block != nil {
		c.Block = a.block
	}
	start := -1
	switch {
	case recv != nil:
		start = nodeStart(recv)
	case present(message):
		start = message.Start
	case present(a.opening):
		start = a.opening.Start
	case a.args != nil:
		start = a.args.Location.Start
	}
	end := maxEnd(0, operator, message, a.opening, a.closing)
	if recv != nil && nodeEnd(recv) > end {
		end = nodeEnd(recv)
	}
	if a.args != nil && a.args.Location.End > end {
		end = a.args.Location.End
	}
	if a.block != nil && nodeEnd(a.block) > end {
		end = nodeEnd(a.block)
	}
	if start < 0 {
		start = end
	}
	setLoc(c, start, end)
	return c
}

// binaryCall builds "left op right" as a call of op on left.
func (p *Parser) binaryCall(left ast.Node, op Token, right ast.Node) *ast.CallNode {
	var a arguments
	a.add(right)
	return p.callNode(left, ast.Location{}, p.loc(op), p.text(op), a)
}

// unaryCall builds a prefix operator call such as -x or !x.
func (p *Parser) unaryCall(op Token, name string, recv ast.Node) *ast.CallNode {
	c := p.callNode(recv, ast.Location{}, p.loc(op), name, arguments{})
	setLoc(c, op.Start, maxEnd(op.End, recv.Loc()))
	return c
}

func isVariableCall(n ast.Node) bool {
	c, ok := n.(*ast.CallNode)
	return ok && c.HasFlag(ast.CallVariableCall)
}

// isLabelSymbol reports whether n is a symbol written as a hash key label,
// either "name:" or "\"name\":".
func (p *Parser) isLabelSymbol(n ast.Node) bool {
	switch s := n.(type) {
	case *ast.SymbolNode:
		return present(s.ClosingLoc) && p.byteAt(s.ClosingLoc.End-1) == ':'
	case *ast.InterpolatedSymbolNode:
		return present(s.ClosingLoc) && p.byteAt(s.ClosingLoc.End-1) == ':'
	}
	return false
}
