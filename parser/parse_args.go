package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   ARGUMENT LISTS
   =========================== */

// parseArgumentsList parses the arguments after a method name, either in
// parentheses or as a command, and a trailing block when acceptsBlock is
// set. It reports whether anything was found.
func (p *Parser) parseArgumentsList(a *arguments, acceptsBlock bool) bool {
	found := false
	switch {
	case p.match(PARENTHESIS_LEFT):
		found = true
		open := p.current
		p.lex()
		a.opening = p.loc(open)
		p.accept(NEWLINE)
		if !p.match(PARENTHESIS_RIGHT) {
			p.acceptsBlockStack.push(true)
			p.parseArguments(a, true, PARENTHESIS_RIGHT)
			p.acceptsBlockStack.pop()
			p.accept(NEWLINE)
		}
		p.expect("expected a `)` to close the arguments", PARENTHESIS_RIGHT)
		a.closing = p.loc(p.previous)

	case !p.match(BRACE_LEFT) && (tokenBeginsExpression(p.current.Type) || p.match(USTAR, USTAR_STAR, UAMPERSAND)):
		found = true
		p.acceptsBlockStack.push(false)
		p.parseArguments(a, false, EOF)
		p.acceptsBlockStack.pop()
	}

	if !acceptsBlock {
		return found
	}
	switch {
	case p.match(BRACE_LEFT):
		p.attachBlock(a, p.parseBlock())
		found = true
	case p.match(KEYWORD_DO) && p.acceptsBlock():
		p.attachBlock(a, p.parseBlock())
		found = true
	}
	return found
}

func (p *Parser) attachBlock(a *arguments, b *ast.BlockNode) {
	if arg, ok := a.block.(*ast.BlockArgumentNode); ok {
		p.errorNode(arg, "both block arg and actual block given")
	}
	a.block = b
}

// parseArguments parses a comma separated argument list. terminator is the
// closing token, or EOF for command arguments that end at the first token
// that cannot continue the list.
func (p *Parser) parseArguments(a *arguments, forwarding bool, terminator TokenType) {
	bareHash := false
	blockArg := false
	for !p.match(terminator, EOF) {
		if blockArg {
			p.errorTok(p.current, "unexpected argument after block argument")
		}

		var arg ast.Node
		hashComma := false
		switch p.current.Type {
		case LABEL, USTAR_STAR:
			if bareHash {
				p.errorTok(p.current, "unexpected bare hash argument")
			}
			arg, hashComma = p.parseBareHash(nil, terminator)
			bareHash = true
		case UAMPERSAND:
			arg = p.parseBlockArgument()
			a.block = arg
			blockArg = true
		case USTAR:
			op := p.current
			arg = p.parseSplat(bpDefined)
			if arg.(*ast.SplatNode).Expression == nil && !p.forwardingScope().anonRest && !p.forwardingScope().forwardAll {
				p.errorTok(op, "no anonymous rest parameter")
			}
		case UDOT_DOT_DOT:
			if forwarding && terminator == PARENTHESIS_RIGHT && p.peekCloses() {
				tok := p.current
				p.lex()
				if !p.forwardingScope().forwardAll {
					p.errorTok(tok, "unexpected ... when the parent method is not forwarding")
				}
				arg = leaf(&ast.ForwardingArgumentsNode{}, tok)
				break
			}
			arg = p.parseValue(bpDefined, "expected an argument")
		default:
			arg = p.parseValue(bpDefined, "expected an argument")
			if p.isLabelSymbol(arg) || p.match(EQUAL_GREATER) {
				if bareHash {
					p.errorNode(arg, "unexpected bare hash argument")
				}
				arg, hashComma = p.parseBareHash(arg, terminator)
				bareHash = true
			}
		}

		if !blockArg || arg != a.block {
			a.add(arg)
		}
		if isMissing(arg) || p.recovering {
			break
		}
		if hashComma {
			if p.match(terminator) {
				break
			}
			continue
		}
		if terminator != EOF {
			p.accept(NEWLINE)
		}
		if !p.accept(COMMA) {
			break
		}
		if terminator != EOF {
			p.accept(NEWLINE)
			if p.match(terminator) {
				break
			}
		}
	}
}

// peekCloses reports whether the byte after the current token, skipping
// blanks, is a closing parenthesis. It tells "foo(...)" from "foo(...1)".
func (p *Parser) peekCloses() bool {
	i := p.current.End
	for p.byteAt(i) == ' ' || p.byteAt(i) == '\t' || p.byteAt(i) == '\n' {
		i++
	}
	return p.byteAt(i) == ')'
}

func (p *Parser) parseBlockArgument() ast.Node {
	op := p.current
	p.lex()
	n := &ast.BlockArgumentNode{OperatorLoc: p.loc(op)}
	end := op.End
	if tokenBeginsExpression(p.current.Type) {
		n.Expression = p.parseValue(bpDefined, "expected an argument after `&`")
		end = nodeEnd(n.Expression)
	} else if s := p.forwardingScope(); !s.anonBlock && !s.forwardAll {
		p.errorTok(op, "no anonymous block parameter")
	}
	setLoc(n, op.Start, end)
	return n
}

/* ===========================
   HASHES
   =========================== */

// parseBareHash parses keyword arguments written without braces. first is
// an already parsed key, or nil. The second result is set when a trailing
// comma was consumed.
func (p *Parser) parseBareHash(first ast.Node, terminator TokenType) (ast.Node, bool) {
	h := &ast.KeywordHashNode{}
	var comma bool
	h.Elements, comma = p.parseAssocs(nil, first, terminator)
	setLoc(h, nodeStart(h.Elements[0]), nodeEnd(h.Elements[len(h.Elements)-1]))
	return h, comma
}

// parseAssocs parses hash elements into elements. It stops at terminator,
// or for bare hashes at the first element that cannot be a hash element,
// and reports whether it consumed a comma that the caller must not expect
// again.
func (p *Parser) parseAssocs(elements []ast.Node, first ast.Node, terminator TokenType) ([]ast.Node, bool) {
	if elements == nil {
		elements = []ast.Node{}
	}
	for {
		var el ast.Node
		switch {
		case first != nil:
			el = p.parseAssocValue(first)
			first = nil
		case p.match(USTAR_STAR):
			op := p.current
			p.lex()
			n := &ast.AssocSplatNode{OperatorLoc: p.loc(op)}
			end := op.End
			if tokenBeginsExpression(p.current.Type) {
				n.Value = p.parseValue(bpDefined, "expected an expression after `**` in a hash")
				end = nodeEnd(n.Value)
			} else if s := p.forwardingScope(); !s.anonKwRest && !s.forwardAll {
				p.errorTok(op, "no anonymous keyword rest parameter")
			}
			setLoc(n, op.Start, end)
			el = n
		case p.match(LABEL):
			el = p.parseAssocValue(p.parseLabel())
		default:
			key := p.parseValue(bpDefined, "expected a key in the hash literal")
			el = p.parseAssocValue(key)
		}
		elements = append(elements, el)
		if isMissing(el) || p.recovering {
			return elements, false
		}

		if terminator != EOF {
			p.accept(NEWLINE)
		}
		if !p.accept(COMMA) {
			return elements, false
		}
		if terminator != EOF {
			p.accept(NEWLINE)
		}
		switch {
		case p.match(LABEL, USTAR_STAR):
		case p.match(terminator):
			return elements, true
		case terminator != BRACE_RIGHT && !tokenBeginsExpression(p.current.Type):
			return elements, true
		}
	}
}

// parseLabel consumes a LABEL token as a symbol without its colon.
func (p *Parser) parseLabel() ast.Node {
	tok := p.current
	p.lex()
	n := &ast.SymbolNode{
		ValueLoc:   p.locRange(tok.Start, tok.End-1),
		ClosingLoc: p.locRange(tok.End-1, tok.End),
		Unescaped:  append([]byte(nil), p.src[tok.Start:tok.End-1]...),
	}
	setLoc(n, tok.Start, tok.End)
	return n
}

func (p *Parser) parseAssocValue(key ast.Node) ast.Node {
	if p.isLabelSymbol(key) {
		n := &ast.AssocNode{Key: key}
		end := nodeEnd(key)
		// "{x:}" takes its value from x.
		if tokenBeginsExpression(p.current.Type) {
			n.Value = p.parseValue(bpDefined, "expected a value in the hash literal")
			end = nodeEnd(n.Value)
		}
		setLoc(n, nodeStart(key), end)
		return n
	}
	p.expect("expected a `=>` between the hash key and value", EQUAL_GREATER)
	op := p.previous
	value := p.parseValue(bpDefined, "expected a value in the hash literal")
	n := &ast.AssocNode{Key: key, Value: value}
	if op.Type != MISSING {
		n.OperatorLoc = p.loc(op)
	}
	setLoc(n, nodeStart(key), maxEnd(op.End, value.Loc()))
	return n
}

/* ===========================
   BLOCKS
   =========================== */

// parseBlock parses "{ |params| body }" or "do |params| body end". The
// current token is the opener.
func (p *Parser) parseBlock() *ast.BlockNode {
	open := p.current
	braces := open.Type == BRACE_LEFT
	p.lex()
	p.accept(NEWLINE)

	p.acceptsBlockStack.push(true)
	p.pushScope(false)

	var params *ast.BlockParametersNode
	if p.match(PIPE, PIPE_PIPE) {
		params = p.parseBlockParameters()
	}

	var body ast.Node
	var closing Token
	if braces {
		body = asNode(p.parseOptionalStatements(ctxBlockBraces))
		p.expect("expected a block beginning with `{` to end with `}`", BRACE_RIGHT)
		closing = p.previous
	} else {
		body = p.parseBodyWithRescues(ctxBlockKeywords)
		p.expect("expected a block beginning with `do` to end with `end`", KEYWORD_END)
		closing = p.previous
	}

	locals := p.popScope()
	p.acceptsBlockStack.pop()

	b := &ast.BlockNode{
		Locals:     locals,
		OpeningLoc: p.loc(open),
		Parameters: params,
		Body:       body,
		ClosingLoc: p.loc(closing),
	}
	setLoc(b, open.Start, closing.End)
	return b
}
