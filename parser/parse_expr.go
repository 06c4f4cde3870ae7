package parser

import (
	"strconv"

	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   EXPRESSIONS
   =========================== */

// parseExpression parses one expression whose operators all bind at least
// as tightly as min. msg is reported when no expression starts here.
func (p *Parser) parseExpression(min bindingPower, msg string) ast.Node {
	node := p.parsePrefix(min, msg)
	if isMissing(node) {
		return node
	}
	node = p.parseInfixLoop(node, min)
	if mw, ok := node.(*ast.MultiWriteNode); ok && mw.Value == nil && p.currentContext() != ctxParens {
		p.errorNode(mw, "expected `=` after the multiple assignment targets")
	}
	return node
}

// parseValue is parseExpression for operands that must produce a value:
// statements such as return or class definitions are reported.
func (p *Parser) parseValue(min bindingPower, msg string) ast.Node {
	n := p.parseExpression(min, msg)
	switch n.(type) {
	case *ast.ReturnNode, *ast.BreakNode, *ast.NextNode, *ast.RedoNode, *ast.RetryNode:
		p.errorNode(n, "void value expression")
	}
	return n
}

// parsePrefix dispatches on the token that starts an expression.
func (p *Parser) parsePrefix(min bindingPower, msg string) ast.Node {
	tok := p.current
	switch tok.Type {
	case IDENTIFIER:
		return p.parseIdentifier(min)
	case METHOD_NAME:
		p.lex()
		var a arguments
		p.parseArgumentsList(&a, true)
		return p.callNode(nil, ast.Location{}, p.loc(tok), p.text(tok), a)
	case CONSTANT:
		return p.parseConstant(min)
	case UCOLON_COLON:
		p.lex()
		return p.parseConstantPathChild(nil, tok)

	case INSTANCE_VARIABLE:
		p.lex()
		n := &ast.InstanceVariableReadNode{Name: p.text(tok)}
		setLoc(n, tok.Start, tok.End)
		return n
	case CLASS_VARIABLE:
		p.lex()
		n := &ast.ClassVariableReadNode{Name: p.text(tok)}
		setLoc(n, tok.Start, tok.End)
		return n
	case GLOBAL_VARIABLE:
		p.lex()
		n := &ast.GlobalVariableReadNode{Name: p.text(tok)}
		setLoc(n, tok.Start, tok.End)
		return n
	case BACK_REFERENCE:
		p.lex()
		n := &ast.BackReferenceReadNode{Name: p.text(tok)}
		setLoc(n, tok.Start, tok.End)
		return n
	case NUMBERED_REFERENCE:
		p.lex()
		num, err := strconv.Atoi(p.text(tok)[1:])
		if err != nil {
			p.warnAt(tok.Start, tok.End, "`%s' is too big for a number variable, always nil", p.text(tok))
			num = 0
		}
		n := &ast.NumberedReferenceReadNode{Number: num}
		setLoc(n, tok.Start, tok.End)
		return n

	case KEYWORD_NIL:
		p.lex()
		return leaf(&ast.NilNode{}, tok)
	case KEYWORD_TRUE:
		p.lex()
		return leaf(&ast.TrueNode{}, tok)
	case KEYWORD_FALSE:
		p.lex()
		return leaf(&ast.FalseNode{}, tok)
	case KEYWORD_SELF:
		p.lex()
		return leaf(&ast.SelfNode{}, tok)
	case KEYWORD_REDO:
		p.lex()
		return leaf(&ast.RedoNode{}, tok)
	case KEYWORD_RETRY:
		p.lex()
		if !p.inContext(ctxRescue, true) {
			p.errorTok(tok, "Invalid retry without rescue")
		}
		return leaf(&ast.RetryNode{}, tok)
	case KEYWORD___FILE__:
		p.lex()
		n := &ast.SourceFileNode{Filepath: p.filepath}
		setLoc(n, tok.Start, tok.End)
		return n
	case KEYWORD___LINE__:
		p.lex()
		return leaf(&ast.SourceLineNode{}, tok)
	case KEYWORD___ENCODING__:
		p.lex()
		return leaf(&ast.SourceEncodingNode{}, tok)

	case INTEGER, INTEGER_RATIONAL, INTEGER_IMAGINARY, INTEGER_RATIONAL_IMAGINARY,
		FLOAT, FLOAT_RATIONAL, FLOAT_IMAGINARY, FLOAT_RATIONAL_IMAGINARY:
		return p.parseNumber()

	case STRING_BEGIN, HEREDOC_START, CHARACTER_LITERAL:
		return p.parseStrings()
	case SYMBOL_BEGIN:
		return p.parseSymbol()
	case REGEXP_BEGIN:
		return p.parseRegexp()
	case BACKTICK, PERCENT_LOWER_X:
		return p.parseXString()
	case PERCENT_LOWER_W, PERCENT_UPPER_W, PERCENT_LOWER_I, PERCENT_UPPER_I:
		return p.parseWordList()

	case PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES:
		return p.parseParentheses()
	case BRACKET_LEFT_ARRAY:
		return p.parseArray()
	case BRACE_LEFT:
		return p.parseHash()
	case MINUS_GREATER:
		return p.parseLambda()

	case BANG, TILDE, UMINUS, UPLUS:
		p.lex()
		name := p.text(tok)
		switch tok.Type {
		case UMINUS:
			name = "-@"
		case UPLUS:
			name = "+@"
		}
		recv := p.parseExpression(lbp(tok.Type).right, "expected a receiver for unary `"+p.text(tok)+"`")
		return p.unaryCall(tok, name, recv)
	case UMINUS_NUM:
		return p.parseNegativeNumber()
	case KEYWORD_NOT:
		p.lex()
		recv := p.parseExpression(lbp(tok.Type).right, "expected an expression after `not`")
		return p.unaryCall(tok, "!", recv)
	case KEYWORD_DEFINED:
		return p.parseDefined()

	case UDOT_DOT, UDOT_DOT_DOT:
		p.lex()
		right := p.parseExpression(lbp(tok.Type).right, "expected a value after the range operator")
		return p.rangeNode(nil, tok, right)
	case USTAR:
		// At statement level this can only start a destructuring target.
		if min == bpStatement {
			return p.parseSplat(bpIndex)
		}
		return p.parseSplat(bpDefined)

	case KEYWORD_IF, KEYWORD_UNLESS:
		return p.parseConditional()
	case KEYWORD_WHILE, KEYWORD_UNTIL:
		return p.parseLoop()
	case KEYWORD_FOR:
		return p.parseFor()
	case KEYWORD_CASE:
		return p.parseCase()
	case KEYWORD_BEGIN:
		return p.parseBegin()
	case KEYWORD_BEGIN_UPCASE, KEYWORD_END_UPCASE:
		return p.parsePrePostExecution()
	case KEYWORD_DEF:
		return p.parseDef()
	case KEYWORD_CLASS:
		return p.parseClass()
	case KEYWORD_MODULE:
		return p.parseModule()
	case KEYWORD_ALIAS:
		return p.parseAlias()
	case KEYWORD_UNDEF:
		return p.parseUndef()
	case KEYWORD_RETURN, KEYWORD_BREAK, KEYWORD_NEXT:
		return p.parseJump()
	case KEYWORD_YIELD:
		return p.parseYield()
	case KEYWORD_SUPER:
		return p.parseSuper()

	case LABEL:
		return p.missing("unexpected label")
	}
	return p.missing("unexpected %s; %s", tok.Type.Human(), msg)
}

func leaf(n ast.Node, t Token) ast.Node {
	setLoc(n, t.Start, t.End)
	return n
}

/* ===========================
   IDENTIFIERS AND CONSTANTS
   =========================== */

// parseIdentifier resolves a bare identifier. A declared local becomes a
// read, anything else a call that may take arguments or a block. An
// identifier that is neither followed by arguments nor declared is a
// variable call.
func (p *Parser) parseIdentifier(min bindingPower) ast.Node {
	tok := p.current
	name := p.text(tok)
	p.lex()

	if p.match(PARENTHESIS_LEFT) {
		var a arguments
		p.parseArgumentsList(&a, true)
		return p.callNode(nil, ast.Location{}, p.loc(tok), name, a)
	}

	if depth := p.localDepth(name); depth >= 0 {
		if min <= bpAssignment && p.localTakesArguments(tok) {
			var a arguments
			p.parseArgumentsList(&a, true)
			return p.callNode(nil, ast.Location{}, p.loc(tok), name, a)
		}
		n := &ast.LocalVariableReadNode{Name: name, Depth: depth}
		setLoc(n, tok.Start, tok.End)
		return n
	}

	var a arguments
	if p.parseArgumentsList(&a, true) {
		return p.callNode(nil, ast.Location{}, p.loc(tok), name, a)
	}
	c := p.callNode(nil, ast.Location{}, p.loc(tok), name, arguments{})
	c.SetFlag(ast.CallVariableCall)
	return c
}

// localTakesArguments decides whether a local variable name is used as a
// method call with arguments. "x -1" is lexed as subtraction because x is
// a local, but a space before the minus and none after it reads as a
// negative argument; the token is retagged.
func (p *Parser) localTakesArguments(ident Token) bool {
	if p.match(MINUS) && p.current.Start > ident.End && isDigit(p.byteAt(p.current.End)) {
		p.current.Type = UMINUS_NUM
		p.warnAt(p.current.Start, p.current.End, "ambiguous first argument; put parentheses or a space even after `-` operator")
		return true
	}
	if p.match(BRACE_LEFT) {
		return false
	}
	return tokenBeginsExpression(p.current.Type) || p.match(USTAR, USTAR_STAR, UAMPERSAND)
}

func (p *Parser) parseConstant(min bindingPower) ast.Node {
	tok := p.current
	p.lex()
	if p.match(PARENTHESIS_LEFT) ||
		(min <= bpAssignment && (tokenBeginsExpression(p.current.Type) || p.match(USTAR, USTAR_STAR, UAMPERSAND))) {
		var a arguments
		p.parseArgumentsList(&a, true)
		return p.callNode(nil, ast.Location{}, p.loc(tok), p.text(tok), a)
	}
	n := &ast.ConstantReadNode{Name: p.text(tok)}
	setLoc(n, tok.Start, tok.End)
	return n
}

// parseConstantPathChild parses what follows "::". parent is nil for a
// top-level path such as ::Foo. A lowercase name or an argument list makes
// a method call instead.
func (p *Parser) parseConstantPathChild(parent ast.Node, delim Token) ast.Node {
	switch p.current.Type {
	case CONSTANT:
		name := p.current
		p.lex()
		if p.match(PARENTHESIS_LEFT) {
			var a arguments
			p.parseArgumentsList(&a, true)
			return p.callNode(parent, p.loc(delim), p.loc(name), p.text(name), a)
		}
		child := &ast.ConstantReadNode{Name: p.text(name)}
		setLoc(child, name.Start, name.End)
		n := &ast.ConstantPathNode{Parent: parent, DelimiterLoc: p.loc(delim), Child: child}
		start := delim.Start
		if parent != nil {
			start = nodeStart(parent)
		}
		setLoc(n, start, name.End)
		return n
	case IDENTIFIER, METHOD_NAME:
		if parent == nil {
			break
		}
		return p.parseCallMessage(parent, delim)
	}
	child := p.missing("expected a constant after the `::` operator")
	n := &ast.ConstantPathNode{Parent: parent, DelimiterLoc: p.loc(delim), Child: child}
	start := delim.Start
	if parent != nil {
		start = nodeStart(parent)
	}
	setLoc(n, start, endOf(delim.End, child))
	return n
}

/* ===========================
   GROUPING AND COLLECTIONS
   =========================== */

func (p *Parser) parseParentheses() ast.Node {
	open := p.current
	p.lex()
	p.acceptTerminators()
	if p.accept(PARENTHESIS_RIGHT) {
		n := &ast.ParenthesesNode{OpeningLoc: p.loc(open), ClosingLoc: p.loc(p.previous)}
		setLoc(n, open.Start, p.previous.End)
		return n
	}

	p.acceptsBlockStack.push(true)
	stmts := p.parseStatements(ctxParens)
	p.acceptsBlockStack.pop()
	p.expect("expected a matching `)`", PARENTHESIS_RIGHT)
	closing := p.previous

	// "(a, b)" on its own is a nested destructuring target.
	if len(stmts.Body) == 1 {
		if mw, ok := stmts.Body[0].(*ast.MultiWriteNode); ok && mw.Value == nil && !present(mw.LparenLoc) {
			mw.LparenLoc = p.loc(open)
			mw.RparenLoc = p.loc(closing)
			setLoc(mw, open.Start, endOf(closing.End, stmts))
			return mw
		}
	}
	n := &ast.ParenthesesNode{OpeningLoc: p.loc(open), Body: stmts, ClosingLoc: p.loc(closing)}
	setLoc(n, open.Start, endOf(closing.End, stmts))
	return n
}

func (p *Parser) parseArray() ast.Node {
	open := p.current
	p.lex()
	arr := &ast.ArrayNode{OpeningLoc: p.loc(open), Elements: []ast.Node{}}
	p.accept(NEWLINE)

	needComma := false
	bareHash := false
	for !p.match(BRACKET_RIGHT, EOF) {
		if needComma {
			p.expect("expected a `,` separator for the array elements", COMMA)
			p.accept(NEWLINE)
			if p.match(BRACKET_RIGHT) {
				break
			}
		}
		needComma = true

		var el ast.Node
		switch p.current.Type {
		case USTAR:
			el = p.parseSplat(bpDefined)
		case LABEL, USTAR_STAR:
			if bareHash {
				p.errorTok(p.current, "unexpected bare hash in array")
			}
			var comma bool
			el, comma = p.parseBareHash(nil, BRACKET_RIGHT)
			needComma = !comma
			bareHash = true
		default:
			el = p.parseValue(bpDefined, "expected an element for the array")
			if p.isLabelSymbol(el) || p.match(EQUAL_GREATER) {
				if bareHash {
					p.errorNode(el, "unexpected bare hash in array")
				}
				var comma bool
				el, comma = p.parseBareHash(el, BRACKET_RIGHT)
				needComma = !comma
				bareHash = true
			}
		}
		arr.Elements = append(arr.Elements, el)
		p.accept(NEWLINE)
		if isMissing(el) || p.recovering {
			break
		}
	}
	p.accept(NEWLINE)
	p.expect("expected a `]` to close the array", BRACKET_RIGHT)
	arr.ClosingLoc = p.loc(p.previous)
	setLoc(arr, open.Start, endOf(p.previous.End, lastOf(arr.Elements)))
	return arr
}

func (p *Parser) parseHash() ast.Node {
	open := p.current
	p.lex()
	h := &ast.HashNode{OpeningLoc: p.loc(open), Elements: []ast.Node{}}
	p.accept(NEWLINE)
	if !p.match(BRACE_RIGHT) {
		h.Elements, _ = p.parseAssocs(nil, nil, BRACE_RIGHT)
		p.accept(NEWLINE)
	}
	p.expect("expected a `}` to close the hash literal", BRACE_RIGHT)
	h.ClosingLoc = p.loc(p.previous)
	setLoc(h, open.Start, endOf(p.previous.End, lastOf(h.Elements)))
	return h
}

// parseSplat parses "*expr", or an anonymous "*".
func (p *Parser) parseSplat(bp bindingPower) ast.Node {
	op := p.current
	p.lex()
	n := &ast.SplatNode{OperatorLoc: p.loc(op)}
	end := op.End
	if tokenBeginsExpression(p.current.Type) {
		n.Expression = p.parseExpression(bp, "expected an expression after `*`")
		end = nodeEnd(n.Expression)
	}
	setLoc(n, op.Start, end)
	return n
}

func isSplat(n ast.Node) bool {
	_, ok := n.(*ast.SplatNode)
	return ok
}

func (p *Parser) rangeNode(left ast.Node, op Token, right ast.Node) *ast.RangeNode {
	n := &ast.RangeNode{Left: left, OperatorLoc: p.loc(op), Right: right}
	if op.Type == DOT_DOT_DOT || op.Type == UDOT_DOT_DOT {
		n.SetFlag(ast.RangeExcludeEnd)
	}
	start, end := op.Start, op.End
	if left != nil {
		start = nodeStart(left)
	}
	if right != nil {
		end = nodeEnd(right)
	}
	setLoc(n, start, end)
	return n
}
