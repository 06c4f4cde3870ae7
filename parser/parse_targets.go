package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

// isTargetable reports whether n may appear on the left of a multiple
// assignment.
func isTargetable(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.LocalVariableReadNode, *ast.InstanceVariableReadNode, *ast.ClassVariableReadNode,
		*ast.GlobalVariableReadNode, *ast.ConstantReadNode, *ast.ConstantPathNode, *ast.SplatNode:
		return true
	case *ast.MultiWriteNode:
		return n.Value == nil
	case *ast.CallNode:
		return isVariableCall(n) || isAttributeCall(n) || isIndexCall(n)
	}
	return false
}

// isAttributeCall matches "recv.name" with no arguments, parentheses or
// block, the form that "recv.name = v" turns into a setter call.
func isAttributeCall(c *ast.CallNode) bool {
	if c.Receiver == nil || c.Arguments != nil || c.Block != nil || present(c.OpeningLoc) || !present(c.MessageLoc) {
		return false
	}
	if c.Name == "" {
		return false
	}
	switch c.Name[len(c.Name)-1] {
	case '?', '!', '=':
		return false
	}
	first := c.Name[0]
	return first == '_' || first >= 0x80 || isAlpha(first)
}

func isIndexCall(c *ast.CallNode) bool {
	return c.Name == "[]" && c.Receiver != nil && c.Block == nil && !present(c.MessageLoc)
}

// parseTarget converts a parsed expression into the node that binds it in
// a multiple assignment, for-loop index, rescue reference or operator
// assignment. Variable calls declare a local. Anything else is reported
// and returned unchanged.
func (p *Parser) parseTarget(n ast.Node) ast.Node {
	start, end := nodeStart(n), nodeEnd(n)
	switch t := n.(type) {
	case *ast.MissingNode, *ast.MultiWriteNode:
		return n
	case *ast.LocalVariableReadNode:
		out := &ast.LocalVariableTargetNode{Name: t.Name, Depth: t.Depth}
		setLoc(out, start, end)
		return out
	case *ast.InstanceVariableReadNode:
		out := &ast.InstanceVariableTargetNode{Name: t.Name}
		setLoc(out, start, end)
		return out
	case *ast.ClassVariableReadNode:
		out := &ast.ClassVariableTargetNode{Name: t.Name}
		setLoc(out, start, end)
		return out
	case *ast.GlobalVariableReadNode:
		out := &ast.GlobalVariableTargetNode{Name: t.Name}
		setLoc(out, start, end)
		return out
	case *ast.BackReferenceReadNode, *ast.NumberedReferenceReadNode:
		p.errorNode(n, "Can't set variable %s", p.src[start:end])
		out := &ast.GlobalVariableTargetNode{Name: string(p.src[start:end])}
		setLoc(out, start, end)
		return out
	case *ast.ConstantReadNode:
		p.checkConstantWrite(n)
		out := &ast.ConstantTargetNode{Name: t.Name}
		setLoc(out, start, end)
		return out
	case *ast.ConstantPathNode:
		p.checkConstantWrite(n)
		out := &ast.ConstantPathTargetNode{Parent: t.Parent, DelimiterLoc: t.DelimiterLoc, Child: t.Child}
		setLoc(out, start, end)
		return out
	case *ast.SplatNode:
		if t.Expression != nil {
			t.Expression = p.parseTarget(t.Expression)
		}
		return t
	case *ast.CallNode:
		switch {
		case isVariableCall(t):
			p.localAdd(t.Name)
			out := &ast.LocalVariableTargetNode{Name: t.Name, Depth: 0}
			setLoc(out, start, end)
			return out
		case isAttributeCall(t):
			t.Name += "="
			return t
		case isIndexCall(t):
			t.Name = "[]="
			return t
		}
	}
	p.errorNode(n, "unexpected write target")
	return n
}

func (p *Parser) checkConstantWrite(n ast.Node) {
	if p.inContext(ctxDef, true) {
		p.errorNode(n, "dynamic constant assignment")
	}
}

// parseWrite builds "target = value" for every assignable form.
func (p *Parser) parseWrite(target ast.Node, op Token, value ast.Node) ast.Node {
	start, end := nodeStart(target), maxEnd(op.End, value.Loc())
	opLoc := p.loc(op)
	nameLoc := target.Loc()

	switch t := target.(type) {
	case *ast.MissingNode:
		return target
	case *ast.LocalVariableReadNode:
		n := &ast.LocalVariableWriteNode{Name: t.Name, Depth: t.Depth, NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.InstanceVariableReadNode:
		n := &ast.InstanceVariableWriteNode{Name: t.Name, NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.ClassVariableReadNode:
		n := &ast.ClassVariableWriteNode{Name: t.Name, NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.GlobalVariableReadNode:
		n := &ast.GlobalVariableWriteNode{Name: t.Name, NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.BackReferenceReadNode, *ast.NumberedReferenceReadNode:
		p.errorNode(target, "Can't set variable %s", p.src[nameLoc.Start:nameLoc.End])
		n := &ast.GlobalVariableWriteNode{Name: string(p.src[nameLoc.Start:nameLoc.End]), NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.ConstantReadNode:
		p.checkConstantWrite(target)
		n := &ast.ConstantWriteNode{Name: t.Name, NameLoc: nameLoc, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.ConstantPathNode:
		p.checkConstantWrite(target)
		n := &ast.ConstantPathWriteNode{Target: t, OperatorLoc: opLoc, Value: value}
		setLoc(n, start, end)
		return n
	case *ast.MultiWriteNode:
		t.OperatorLoc = opLoc
		t.Value = value
		extend(t, end)
		return t
	case *ast.CallNode:
		switch {
		case isVariableCall(t):
			p.localAdd(t.Name)
			n := &ast.LocalVariableWriteNode{Name: t.Name, Depth: 0, NameLoc: t.MessageLoc, OperatorLoc: opLoc, Value: value}
			setLoc(n, start, end)
			return n
		case isAttributeCall(t):
			t.Name += "="
			t.Arguments = &ast.ArgumentsNode{Arguments: []ast.Node{}}
			addArgument(t.Arguments, value)
			extend(t, end)
			return t
		case isIndexCall(t):
			t.Name = "[]="
			if t.Arguments == nil {
				t.Arguments = &ast.ArgumentsNode{Arguments: []ast.Node{}}
			}
			addArgument(t.Arguments, value)
			extend(t, end)
			return t
		}
	}
	p.errorNode(target, "unexpected write target")
	return target
}

/* ===========================
   MULTIPLE ASSIGNMENT
   =========================== */

// wrapMultiTarget handles "*a = v", a splat that is the only target.
func (p *Parser) wrapMultiTarget(splat ast.Node) ast.Node {
	mw := &ast.MultiWriteNode{Targets: []ast.Node{p.parseTarget(splat)}}
	setLoc(mw, nodeStart(splat), nodeEnd(splat))
	return mw
}

// parseMultiTargets parses ", b, *c" after the first target of a multiple
// assignment. The value is filled in when "=" follows.
func (p *Parser) parseMultiTargets(first ast.Node) ast.Node {
	mw := &ast.MultiWriteNode{Targets: []ast.Node{p.parseTarget(first)}}
	splats := 0
	if isSplat(first) {
		splats++
	}
	end := nodeEnd(first)

	for p.accept(COMMA) {
		end = p.previous.End
		var t ast.Node
		switch {
		case p.match(USTAR):
			splats++
			if splats > 1 {
				p.errorTok(p.current, "multiple splats in multiple assignment")
			}
			t = p.parseTarget(p.parseSplat(bpIndex))
		case p.match(PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES):
			t = p.parseTarget(p.nestedTarget(p.parseParentheses()))
		case tokenBeginsExpression(p.current.Type):
			t = p.parseTarget(p.parseExpression(bpIndex, "expected a target after `,`"))
		default:
			// "a, = v" leaves the rest implicit.
			setLoc(mw, nodeStart(first), end)
			return mw
		}
		mw.Targets = append(mw.Targets, t)
		end = nodeEnd(t)
		if isMissing(t) {
			break
		}
	}
	setLoc(mw, nodeStart(first), end)
	return mw
}

// nestedTarget turns "(a)" in a target list into a one element
// destructuring group.
func (p *Parser) nestedTarget(n ast.Node) ast.Node {
	paren, ok := n.(*ast.ParenthesesNode)
	if !ok {
		return n
	}
	mw := &ast.MultiWriteNode{LparenLoc: paren.OpeningLoc, RparenLoc: paren.ClosingLoc, Targets: []ast.Node{}}
	if s, ok := paren.Body.(*ast.StatementsNode); ok {
		for _, st := range s.Body {
			mw.Targets = append(mw.Targets, p.parseTarget(st))
		}
	}
	setLoc(mw, paren.Location.Start, paren.Location.End)
	return mw
}
