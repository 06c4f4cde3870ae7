package parser

import (
	"strings"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/namedcapture"
)

// parseInfixLoop extends node with operators whose left binding power is at
// least min.
func (p *Parser) parseInfixLoop(node ast.Node, min bindingPower) ast.Node {
	for {
		if min == bpStatement {
			switch {
			case p.match(COMMA) && isTargetable(node):
				node = p.parseMultiTargets(node)
			case p.match(EQUAL) && isSplat(node):
				node = p.wrapMultiTarget(node)
			}
		}

		bp := lbp(p.current.Type)
		if !bp.binary || bp.left < min {
			return node
		}
		op := p.current
		node = p.parseInfix(node, op, bp, min)

		if bp.nonassoc {
			if next := lbp(p.current.Type); next.binary && next.left == bp.left {
				p.errorTok(p.current, "unexpected %s; %s is a non-associative operator", p.current.Type.Human(), op.Type.Human())
			}
		}
	}
}

func (p *Parser) parseInfix(left ast.Node, op Token, bp bindingPowers, min bindingPower) ast.Node {
	switch op.Type {
	case EQUAL:
		p.lex()
		if isVariableCall(left) {
			p.localAdd(left.(*ast.CallNode).Name)
		}
		value := p.parseAssignmentValue(min, bp.right, true)
		return p.parseWrite(left, op, value)

	case PIPE_PIPE_EQUAL, AMPERSAND_AMPERSAND_EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, STAR_STAR_EQUAL,
		SLASH_EQUAL, PERCENT_EQUAL, CARET_EQUAL, AMPERSAND_EQUAL, PIPE_EQUAL, LESS_LESS_EQUAL, GREATER_GREATER_EQUAL:
		p.lex()
		return p.parseOperatorWrite(left, op, bp, min)

	case AMPERSAND_AMPERSAND, KEYWORD_AND:
		p.lex()
		right := p.parseExpression(bp.right, "expected an expression after the operator")
		n := &ast.AndNode{Left: left, OperatorLoc: p.loc(op), Right: right}
		setLoc(n, nodeStart(left), maxEnd(op.End, right.Loc()))
		return n
	case PIPE_PIPE, KEYWORD_OR:
		p.lex()
		right := p.parseExpression(bp.right, "expected an expression after the operator")
		n := &ast.OrNode{Left: left, OperatorLoc: p.loc(op), Right: right}
		setLoc(n, nodeStart(left), maxEnd(op.End, right.Loc()))
		return n

	case EQUAL_TILDE:
		p.lex()
		right := p.parseValue(bp.right, "expected an expression after the operator")
		return p.matchWrite(left, p.binaryCall(left, op, right))

	case PLUS, MINUS, STAR, SLASH, PERCENT, STAR_STAR,
		EQUAL_EQUAL, EQUAL_EQUAL_EQUAL, BANG_EQUAL, BANG_TILDE, LESS_EQUAL_GREATER,
		LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		PIPE, CARET, AMPERSAND, LESS_LESS, GREATER_GREATER:
		p.lex()
		right := p.parseValue(bp.right, "expected an expression after the operator")
		return p.binaryCall(left, op, right)

	case QUESTION_MARK:
		return p.parseTernary(left)

	case DOT_DOT, DOT_DOT_DOT:
		p.lex()
		var right ast.Node
		if tokenBeginsExpression(p.current.Type) {
			right = p.parseValue(bp.right, "expected a value after the range operator")
		}
		return p.rangeNode(left, op, right)

	case KEYWORD_IF_MODIFIER, KEYWORD_UNLESS_MODIFIER, KEYWORD_WHILE_MODIFIER, KEYWORD_UNTIL_MODIFIER:
		p.lex()
		return p.parseModifier(left, op, bp)

	case KEYWORD_RESCUE_MODIFIER:
		p.lex()
		rescue := p.parseExpression(bp.right, "expected a value after the `rescue` modifier")
		return p.rescueModifier(left, op, rescue)

	case EQUAL_GREATER, KEYWORD_IN:
		p.lexState = stateBEG | stateLABEL
		p.commandStart = false
		p.lex()
		pattern := p.parsePatternTop("expected a pattern after `" + p.text(op) + "`")
		if op.Type == EQUAL_GREATER {
			n := &ast.MatchRequiredNode{Value: left, OperatorLoc: p.loc(op), Pattern: pattern}
			setLoc(n, nodeStart(left), maxEnd(op.End, pattern.Loc()))
			return n
		}
		n := &ast.MatchPredicateNode{Value: left, OperatorLoc: p.loc(op), Pattern: pattern}
		setLoc(n, nodeStart(left), maxEnd(op.End, pattern.Loc()))
		return n

	case DOT, AMPERSAND_DOT:
		p.lex()
		return p.parseCallMessage(left, op)
	case COLON_COLON:
		p.lex()
		return p.parseConstantPathChild(left, op)
	case BRACKET_LEFT:
		return p.parseIndex(left)
	}

	// Every binary token in the power table is handled above.
	p.lex()
	p.errorTok(op, "unexpected %s", op.Type.Human())
	return left
}

/* ===========================
   ASSIGNMENT
   =========================== */

// parseAssignmentValue parses the right side of an assignment. At statement
// level a list of values becomes an array and a rescue modifier applies to
// the value rather than the whole assignment.
func (p *Parser) parseAssignmentValue(min, right bindingPower, allowList bool) ast.Node {
	value := p.parseValue(right, "expected a value after the assignment operator")
	if min != bpStatement {
		return value
	}
	if allowList && (p.match(COMMA) || isSplat(value)) {
		arr := &ast.ArrayNode{Elements: []ast.Node{value}}
		for p.accept(COMMA) {
			var el ast.Node
			if p.match(USTAR) {
				el = p.parseSplat(bpDefined)
			} else {
				el = p.parseValue(right, "expected a value after the `,`")
			}
			arr.Elements = append(arr.Elements, el)
			if isMissing(el) {
				break
			}
		}
		setLoc(arr, nodeStart(value), nodeEnd(arr.Elements[len(arr.Elements)-1]))
		value = arr
	}
	if p.match(KEYWORD_RESCUE_MODIFIER) {
		kw := p.current
		p.lex()
		rescue := p.parseExpression(lbp(KEYWORD_RESCUE_MODIFIER).right, "expected a value after the `rescue` modifier")
		value = p.rescueModifier(value, kw, rescue)
	}
	return value
}

func (p *Parser) rescueModifier(expr ast.Node, kw Token, rescue ast.Node) ast.Node {
	n := &ast.RescueModifierNode{Expression: expr, KeywordLoc: p.loc(kw), RescueExpression: rescue}
	setLoc(n, nodeStart(expr), maxEnd(kw.End, rescue.Loc()))
	return n
}

func (p *Parser) parseOperatorWrite(left ast.Node, op Token, bp bindingPowers, min bindingPower) ast.Node {
	if _, ok := left.(*ast.MultiWriteNode); ok {
		p.errorTok(op, "unexpected operator assignment to multiple targets")
	}
	if isVariableCall(left) {
		p.localAdd(left.(*ast.CallNode).Name)
	}
	target := p.parseTarget(left)
	value := p.parseAssignmentValue(min, bp.right, false)
	start, end := nodeStart(target), maxEnd(op.End, value.Loc())

	switch op.Type {
	case PIPE_PIPE_EQUAL:
		n := &ast.OrWriteNode{Target: target, OperatorLoc: p.loc(op), Value: value}
		setLoc(n, start, end)
		return n
	case AMPERSAND_AMPERSAND_EQUAL:
		n := &ast.AndWriteNode{Target: target, OperatorLoc: p.loc(op), Value: value}
		setLoc(n, start, end)
		return n
	}
	n := &ast.OperatorWriteNode{
		Target:      target,
		OperatorLoc: p.loc(op),
		Operator:    strings.TrimSuffix(p.text(op), "="),
		Value:       value,
	}
	setLoc(n, start, end)
	return n
}

// matchWrite turns "/(?<name>..)/ =~ x" into a MatchWriteNode that binds
// each named group as a local. Interpolated regexps bind nothing.
func (p *Parser) matchWrite(left ast.Node, call *ast.CallNode) ast.Node {
	re, ok := left.(*ast.RegularExpressionNode)
	if !ok {
		return call
	}
	var targets []ast.Node
	for _, name := range namedcapture.Names(re.Unescaped) {
		if !namedcapture.IsLocalName(name) {
			continue
		}
		depth := p.localDepth(name)
		if depth < 0 {
			p.localAdd(name)
			depth = 0
		}
		t := &ast.LocalVariableTargetNode{Name: name, Depth: depth}
		setLoc(t, re.Location.Start, re.Location.End)
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return call
	}
	n := &ast.MatchWriteNode{Call: call, Targets: targets}
	setLoc(n, call.Location.Start, call.Location.End)
	return n
}

/* ===========================
   OTHER OPERATORS
   =========================== */

func (p *Parser) parseTernary(pred ast.Node) ast.Node {
	q := p.current
	p.lex()
	then := p.parseExpression(bpTernary, "expected a value after `?` in the ternary operator")
	p.expect("expected `:` after the true branch of a ternary operator", COLON)
	colon := p.previous
	otherwise := p.parseExpression(bpTernary, "expected a value after `:` in the ternary operator")

	els := &ast.ElseNode{ElseKeywordLoc: p.loc(colon), Statements: statementsOf(otherwise)}
	setLoc(els, colon.Start, maxEnd(colon.End, otherwise.Loc()))
	n := &ast.IfNode{Predicate: pred, Statements: statementsOf(then), Consequent: els}
	setLoc(n, nodeStart(pred), endOf(maxEnd(q.End, els.Location), then))
	return n
}

// parseModifier builds "stmt if cond" and its unless, while and until
// forms. A begin block before while or until runs at least once.
func (p *Parser) parseModifier(stmt ast.Node, kw Token, bp bindingPowers) ast.Node {
	pred := p.parseValue(bp.right, "expected a predicate expression for the `"+p.text(kw)+"` statement")
	start, end := nodeStart(stmt), maxEnd(kw.End, pred.Loc())
	body := statementsOf(stmt)

	switch kw.Type {
	case KEYWORD_IF_MODIFIER:
		n := &ast.IfNode{IfKeywordLoc: p.loc(kw), Predicate: pred, Statements: body}
		setLoc(n, start, end)
		return n
	case KEYWORD_UNLESS_MODIFIER:
		n := &ast.UnlessNode{KeywordLoc: p.loc(kw), Predicate: pred, Statements: body}
		setLoc(n, start, end)
		return n
	case KEYWORD_WHILE_MODIFIER:
		n := &ast.WhileNode{KeywordLoc: p.loc(kw), Predicate: pred, Statements: body}
		setLoc(n, start, end)
		if isBeginBlock(stmt) {
			n.SetFlag(ast.LoopBeginModifier)
		}
		return n
	}
	n := &ast.UntilNode{KeywordLoc: p.loc(kw), Predicate: pred, Statements: body}
	setLoc(n, start, end)
	if isBeginBlock(stmt) {
		n.SetFlag(ast.LoopBeginModifier)
	}
	return n
}

func isBeginBlock(n ast.Node) bool {
	b, ok := n.(*ast.BeginNode)
	return ok && present(b.BeginKeywordLoc)
}

// operatorMethod reports whether t, written after "." or "def", names an
// operator method.
func operatorMethod(t TokenType) bool {
	switch t {
	case PLUS, MINUS, STAR, SLASH, PERCENT, STAR_STAR, BANG, TILDE, UPLUS, UMINUS,
		EQUAL_EQUAL, EQUAL_EQUAL_EQUAL, EQUAL_TILDE, BANG_EQUAL, BANG_TILDE, LESS_EQUAL_GREATER,
		LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, LESS_LESS, GREATER_GREATER,
		AMPERSAND, PIPE, CARET, BRACKET_LEFT_RIGHT, BRACKET_LEFT_RIGHT_EQUAL, BACKTICK:
		return true
	}
	return false
}

// parseCallMessage parses what follows "." or "&." on recv.
func (p *Parser) parseCallMessage(recv ast.Node, op Token) ast.Node {
	var message ast.Location
	var name string
	switch {
	case p.match(IDENTIFIER, CONSTANT, METHOD_NAME) || operatorMethod(p.current.Type):
		msg := p.current
		message = p.loc(msg)
		name = p.text(msg)
		switch msg.Type {
		case UPLUS:
			name = "+@"
		case UMINUS:
			name = "-@"
		}
		p.lex()
	case p.match(PARENTHESIS_LEFT):
		// recv.() is shorthand for recv.call()
		name = "call"
	default:
		p.errorAt(op.End, op.End, "expected a message after `%s`", p.text(op))
		p.recovering = true
		c := p.callNode(recv, p.loc(op), ast.Location{}, "", arguments{})
		if op.Type == AMPERSAND_DOT {
			c.SetFlag(ast.CallSafeNavigation)
		}
		return c
	}

	var a arguments
	p.parseArgumentsList(&a, true)
	c := p.callNode(recv, p.loc(op), message, name, a)
	if op.Type == AMPERSAND_DOT {
		c.SetFlag(ast.CallSafeNavigation)
	}
	return c
}

// parseIndex parses recv[args].
func (p *Parser) parseIndex(recv ast.Node) ast.Node {
	open := p.current
	p.lex()
	a := arguments{opening: p.loc(open)}
	p.accept(NEWLINE)
	if !p.match(BRACKET_RIGHT) {
		p.acceptsBlockStack.push(true)
		p.parseArguments(&a, false, BRACKET_RIGHT)
		p.acceptsBlockStack.pop()
		p.accept(NEWLINE)
	}
	p.expect("expected a `]` to close the index", BRACKET_RIGHT)
	a.closing = p.loc(p.previous)
	if p.match(BRACE_LEFT) {
		p.attachBlock(&a, p.parseBlock())
	}
	return p.callNode(recv, ast.Location{}, ast.Location{}, "[]", a)
}
