package parser

import (
	"strings"

	"github.com/ruby/ruby-sub004/ast"
)

// paramState tracks which kinds of parameter may still follow. Kinds must
// appear in this order; required parameters after optionals or a rest
// are posts.
type paramState uint8

const (
	paramRequired paramState = iota
	paramOptional
	paramRest
	paramPost
	paramKeyword
	paramKeywordRest
	paramBlock
)

type paramList struct {
	node  *ast.ParametersNode
	state paramState
	start int
	end   int
}

func (l *paramList) grow(n ast.Node) {
	if l.start < 0 || nodeStart(n) < l.start {
		l.start = nodeStart(n)
	}
	if nodeEnd(n) > l.end {
		l.end = nodeEnd(n)
	}
}

// order moves the list to state s, reporting kinds that come too late.
func (p *Parser) order(l *paramList, s paramState, n ast.Node) {
	if l.state > s {
		p.errorNode(n, "unexpected parameter order")
		return
	}
	l.state = s
}

// declareParam adds a parameter name to the current scope. Repeating a
// name is an error unless it starts with an underscore.
func (p *Parser) declareParam(name string, at ast.Location) {
	if name == "" {
		return
	}
	if p.currentScope().has(name) && !strings.HasPrefix(name, "_") {
		p.errorAt(at.Start, at.End, "duplicated argument name")
	}
	p.localAdd(name)
}

// parseParameters parses a def, block or lambda parameter list up to
// terminator. Default values are parsed at bp so that a block's closing
// pipe is not taken as an operator. It returns nil for an empty list.
func (p *Parser) parseParameters(terminator TokenType, allowForwarding bool, bp bindingPower) *ast.ParametersNode {
	l := &paramList{
		node: &ast.ParametersNode{
			Requireds: []ast.Node{},
			Optionals: []ast.Node{},
			Posts:     []ast.Node{},
			Keywords:  []ast.Node{},
		},
		start: -1,
	}
	params := l.node

	for !p.match(terminator, EOF) {
		var n ast.Node
		switch p.current.Type {
		case PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES:
			n = p.parseDestructuredParameter()
			p.addRequired(l, n)

		case IDENTIFIER:
			tok := p.current
			name := p.text(tok)
			p.declareParam(name, p.loc(tok))
			p.lex()
			if p.match(EQUAL) {
				op := p.current
				p.lex()
				value := p.parseValue(bp, "expected a default value for the parameter")
				opt := &ast.OptionalParameterNode{Name: name, NameLoc: p.loc(tok), OperatorLoc: p.loc(op), Value: value}
				setLoc(opt, tok.Start, maxEnd(op.End, value.Loc()))
				p.order(l, paramOptional, opt)
				params.Optionals = append(params.Optionals, opt)
				n = opt
				break
			}
			req := &ast.RequiredParameterNode{Name: name}
			setLoc(req, tok.Start, tok.End)
			n = req
			p.addRequired(l, n)

		case LABEL:
			tok := p.current
			name := p.text(tok)
			name = name[:len(name)-1]
			nameLoc := p.locRange(tok.Start, tok.End-1)
			p.declareParam(name, nameLoc)
			p.lex()
			kw := &ast.KeywordParameterNode{Name: name, NameLoc: nameLoc}
			end := tok.End
			if tokenBeginsExpression(p.current.Type) && !p.match(terminator) {
				kw.Value = p.parseValue(bp, "expected a default value for the keyword parameter")
				end = nodeEnd(kw.Value)
			}
			setLoc(kw, tok.Start, end)
			p.order(l, paramKeyword, kw)
			params.Keywords = append(params.Keywords, kw)
			n = kw

		case USTAR, STAR:
			op := p.current
			p.lex()
			rest := &ast.RestParameterNode{OperatorLoc: p.loc(op)}
			end := op.End
			if p.match(IDENTIFIER) {
				rest.Name = p.text(p.current)
				rest.NameLoc = p.loc(p.current)
				p.declareParam(rest.Name, rest.NameLoc)
				end = p.current.End
				p.lex()
			} else {
				p.forwardingScope().anonRest = true
			}
			setLoc(rest, op.Start, end)
			if params.Rest != nil || l.state >= paramRest {
				p.errorNode(rest, "unexpected multiple `*` splat parameters")
			} else {
				p.order(l, paramRest, rest)
				params.Rest = rest
			}
			n = rest

		case USTAR_STAR, STAR_STAR:
			op := p.current
			p.lex()
			if p.match(KEYWORD_NIL) {
				kw := p.current
				p.lex()
				nk := &ast.NoKeywordsParameterNode{OperatorLoc: p.loc(op), KeywordLoc: p.loc(kw)}
				setLoc(nk, op.Start, kw.End)
				n = nk
			} else {
				kr := &ast.KeywordRestParameterNode{OperatorLoc: p.loc(op)}
				end := op.End
				if p.match(IDENTIFIER) {
					kr.Name = p.text(p.current)
					kr.NameLoc = p.loc(p.current)
					p.declareParam(kr.Name, kr.NameLoc)
					end = p.current.End
					p.lex()
				} else {
					p.forwardingScope().anonKwRest = true
				}
				setLoc(kr, op.Start, end)
				n = kr
			}
			if params.KeywordRest != nil {
				p.errorNode(n, "unexpected multiple `**` splat parameters")
			} else {
				p.order(l, paramKeywordRest, n)
				params.KeywordRest = n
			}

		case UAMPERSAND, AMPERSAND:
			op := p.current
			p.lex()
			b := &ast.BlockParameterNode{OperatorLoc: p.loc(op)}
			end := op.End
			if p.match(IDENTIFIER) {
				b.Name = p.text(p.current)
				b.NameLoc = p.loc(p.current)
				p.declareParam(b.Name, b.NameLoc)
				end = p.current.End
				p.lex()
			} else {
				p.forwardingScope().anonBlock = true
			}
			setLoc(b, op.Start, end)
			if params.Block != nil {
				p.errorNode(b, "unexpected multiple block parameters")
			} else {
				p.order(l, paramBlock, b)
				params.Block = b
			}
			n = b

		case UDOT_DOT_DOT, DOT_DOT_DOT:
			tok := p.current
			p.lex()
			fwd := leaf(&ast.ForwardingParameterNode{}, tok)
			if !allowForwarding {
				p.errorTok(tok, "unexpected ... in block argument")
			}
			p.forwardingScope().forwardAll = true
			if params.KeywordRest != nil || params.Block != nil {
				p.errorNode(fwd, "unexpected parameter order")
			} else {
				p.order(l, paramKeywordRest, fwd)
				params.KeywordRest = fwd
				l.state = paramBlock
			}
			n = fwd

		case COMMA:
			// An empty slot, as in "def foo(,)". A placeholder keeps the
			// list shape and parsing continues after the comma.
			p.errorTok(p.current, "unexpected ','; expected a parameter")
			m := &ast.MissingNode{}
			setLoc(m, p.current.Start, p.current.Start)
			params.Requireds = append(params.Requireds, m)
			n = m

		default:
			if p.match(CONSTANT, INSTANCE_VARIABLE, CLASS_VARIABLE, GLOBAL_VARIABLE) {
				p.errorTok(p.current, "formal argument cannot be a %s", p.current.Type.Human())
				p.lex()
				if !p.accept(COMMA) {
					return p.finishParameters(l)
				}
				continue
			}
			return p.finishParameters(l)
		}

		l.grow(n)
		if !p.accept(COMMA) {
			break
		}
		if p.match(terminator) {
			break
		}
	}
	return p.finishParameters(l)
}

func (p *Parser) addRequired(l *paramList, n ast.Node) {
	switch {
	case l.state == paramRequired:
		l.node.Requireds = append(l.node.Requireds, n)
	case l.state <= paramPost:
		l.state = paramPost
		l.node.Posts = append(l.node.Posts, n)
	default:
		p.errorNode(n, "unexpected parameter order")
		l.node.Posts = append(l.node.Posts, n)
	}
}

func (p *Parser) finishParameters(l *paramList) *ast.ParametersNode {
	if l.start < 0 {
		return nil
	}
	setLoc(l.node, l.start, l.end)
	return l.node
}

// parseDestructuredParameter parses "(a, (b, c), *d)" in a parameter list.
func (p *Parser) parseDestructuredParameter() ast.Node {
	open := p.current
	p.lex()
	n := &ast.RequiredDestructuredParameterNode{OpeningLoc: p.loc(open), Parameters: []ast.Node{}}
	splat := false
	for !p.match(PARENTHESIS_RIGHT, EOF) {
		var param ast.Node
		switch p.current.Type {
		case PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES:
			param = p.parseDestructuredParameter()
		case IDENTIFIER:
			tok := p.current
			p.declareParam(p.text(tok), p.loc(tok))
			p.lex()
			param = leaf(&ast.RequiredParameterNode{Name: p.text(tok)}, tok)
		case USTAR, STAR:
			op := p.current
			p.lex()
			s := &ast.SplatNode{OperatorLoc: p.loc(op)}
			end := op.End
			if p.match(IDENTIFIER) {
				tok := p.current
				p.declareParam(p.text(tok), p.loc(tok))
				p.lex()
				s.Expression = leaf(&ast.RequiredParameterNode{Name: p.text(tok)}, tok)
				end = tok.End
			}
			setLoc(s, op.Start, end)
			if splat {
				p.errorNode(s, "unexpected multiple `*` splat parameters")
			}
			splat = true
			param = s
		default:
			p.errorTok(p.current, "expected a parameter in the destructured list")
		}
		if param == nil {
			break
		}
		n.Parameters = append(n.Parameters, param)
		if !p.accept(COMMA) {
			break
		}
	}
	p.expect("expected a `)` to close the destructured parameter", PARENTHESIS_RIGHT)
	n.ClosingLoc = p.loc(p.previous)
	setLoc(n, open.Start, p.previous.End)
	return n
}

// parseBlockParameters parses "|a, b; c|". The current token is the
// opening pipe, or "||" for an explicitly empty list.
func (p *Parser) parseBlockParameters() *ast.BlockParametersNode {
	open := p.current
	p.lex()
	n := &ast.BlockParametersNode{Locals: []ast.Node{}}
	if open.Type == PIPE_PIPE {
		n.OpeningLoc = p.locRange(open.Start, open.Start+1)
		n.ClosingLoc = p.locRange(open.Start+1, open.End)
		setLoc(n, open.Start, open.End)
		return n
	}
	n.OpeningLoc = p.loc(open)

	if !p.match(PIPE, SEMICOLON) {
		n.Parameters = p.parseParameters(PIPE, false, bpIndex)
	}
	if p.accept(SEMICOLON) {
		p.parseBlockLocals(n)
	}
	p.commandStart = true
	p.expect("expected the block parameters to end with `|`", PIPE)
	n.ClosingLoc = p.loc(p.previous)
	setLoc(n, open.Start, p.previous.End)
	return n
}

// parseBlockLocals parses the block-local names after ";".
func (p *Parser) parseBlockLocals(n *ast.BlockParametersNode) {
	for p.match(IDENTIFIER) {
		tok := p.current
		p.declareParam(p.text(tok), p.loc(tok))
		p.lex()
		n.Locals = append(n.Locals, leaf(&ast.BlockLocalVariableNode{Name: p.text(tok)}, tok))
		if !p.accept(COMMA) {
			return
		}
	}
	if len(n.Locals) == 0 {
		p.errorTok(p.current, "expected a local variable name in the block parameters")
	}
}
