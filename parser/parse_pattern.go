package parser

import (
	"strings"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/namedcapture"
)

/* ===========================
   PATTERN MATCHING
   =========================== */

// parsePatternTop parses the pattern after "in" or "=>". Outside brackets
// a comma separated list is an array pattern and labels start a hash
// pattern.
func (p *Parser) parsePatternTop(msg string) ast.Node {
	saved := p.patternNames
	p.patternNames = map[string]bool{}
	defer func() { p.patternNames = saved }()

	if p.match(USTAR_STAR) {
		n := p.parseHashPatternElements(nil, EOF)
		spanPattern(n)
		return n
	}
	first := p.parsePatternElement(msg)
	switch {
	case isMissing(first):
		return first
	case p.isLabelSymbol(first):
		n := p.parseHashPatternElements(first, EOF)
		spanPattern(n)
		return n
	case p.match(COMMA) || isSplat(first):
		n := p.parseArrayPatternElements(first, EOF)
		spanPattern(n)
		return n
	}
	return first
}

// patternValueStart reports whether t starts a literal usable as a value
// pattern.
func patternValueStart(t TokenType) bool {
	switch t {
	case INTEGER, INTEGER_RATIONAL, INTEGER_IMAGINARY, INTEGER_RATIONAL_IMAGINARY,
		FLOAT, FLOAT_RATIONAL, FLOAT_IMAGINARY, FLOAT_RATIONAL_IMAGINARY, UMINUS_NUM,
		STRING_BEGIN, HEREDOC_START, CHARACTER_LITERAL, SYMBOL_BEGIN, REGEXP_BEGIN,
		BACKTICK, PERCENT_LOWER_X, PERCENT_LOWER_W, PERCENT_UPPER_W, PERCENT_LOWER_I, PERCENT_UPPER_I,
		KEYWORD_NIL, KEYWORD_TRUE, KEYWORD_FALSE, KEYWORD_SELF,
		KEYWORD___FILE__, KEYWORD___LINE__, KEYWORD___ENCODING__, MINUS_GREATER:
		return true
	}
	return false
}

func patternStart(t TokenType) bool {
	switch t {
	case IDENTIFIER, CONSTANT, UCOLON_COLON, CARET, LABEL,
		BRACKET_LEFT_ARRAY, BRACE_LEFT, PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES,
		UDOT_DOT, UDOT_DOT_DOT:
		return true
	}
	return patternValueStart(t)
}

func (p *Parser) parsePatternElement(msg string) ast.Node {
	if p.match(USTAR) {
		return p.parsePatternSplat()
	}
	return p.parsePattern(msg)
}

// parsePattern parses alternatives and captures, as in "A | B => x".
func (p *Parser) parsePattern(msg string) ast.Node {
	n := p.parsePatternPrimary(msg)
	if isMissing(n) || p.isLabelSymbol(n) {
		return n
	}
	alternation := false
	for p.match(PIPE) {
		op := p.current
		p.lex()
		right := p.parsePatternPrimary("expected a pattern after `|`")
		alt := &ast.AlternationPatternNode{Left: n, OperatorLoc: p.loc(op), Right: right}
		setLoc(alt, nodeStart(n), maxEnd(op.End, right.Loc()))
		n = alt
		alternation = true
		if isMissing(right) {
			return n
		}
	}
	if alternation {
		p.checkAlternation(n)
	}
	for p.match(EQUAL_GREATER) {
		op := p.current
		p.lex()
		var target ast.Node
		if p.match(IDENTIFIER) {
			tok := p.current
			p.lex()
			target = p.bindPatternName(p.text(tok), p.loc(tok))
		} else {
			target = p.missing("expected an identifier after the `=>` operator")
		}
		c := &ast.CapturePatternNode{Value: n, OperatorLoc: p.loc(op), Target: target}
		setLoc(c, nodeStart(n), maxEnd(op.End, target.Loc()))
		n = c
	}
	return n
}

// checkAlternation reports variables bound inside an alternative, which
// could be left unset. Names starting with "_" are exempt.
func (p *Parser) checkAlternation(n ast.Node) {
	ast.Walk(n, func(x ast.Node) bool {
		switch t := x.(type) {
		case *ast.PinnedExpressionNode, *ast.PinnedVariableNode:
			return false
		case *ast.LocalVariableTargetNode:
			if !strings.HasPrefix(t.Name, "_") {
				p.errorNode(t, "illegal variable in alternative pattern (%s)", t.Name)
			}
		}
		return true
	})
}

func (p *Parser) parsePatternPrimary(msg string) ast.Node {
	tok := p.current
	switch tok.Type {
	case IDENTIFIER:
		p.lex()
		return p.bindPatternName(p.text(tok), p.loc(tok))
	case CARET:
		return p.parsePin()
	case LABEL:
		return p.parseLabel()
	case BRACKET_LEFT_ARRAY:
		return p.parseBracketedPattern(nil, BRACKET_RIGHT)
	case BRACE_LEFT:
		return p.parseBracketedPattern(nil, BRACE_RIGHT)
	case PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES:
		p.lex()
		p.accept(NEWLINE)
		inner := p.parsePattern("expected a pattern in the parentheses")
		p.accept(NEWLINE)
		p.expect("expected a `)` to close the pattern expression", PARENTHESIS_RIGHT)
		return inner
	case CONSTANT, UCOLON_COLON:
		c := p.parsePatternConstant()
		switch p.current.Type {
		case PARENTHESIS_LEFT:
			return p.parseBracketedPattern(c, PARENTHESIS_RIGHT)
		case BRACKET_LEFT:
			return p.parseBracketedPattern(c, BRACKET_RIGHT)
		}
		return p.patternRange(c)
	case UDOT_DOT, UDOT_DOT_DOT:
		p.lex()
		right := p.parsePatternValue("expected a value after the range operator")
		return p.rangeNode(nil, tok, right)
	}
	if patternValueStart(tok.Type) {
		v := p.parsePatternValue(msg)
		if p.isLabelSymbol(v) {
			return v
		}
		return p.patternRange(v)
	}
	return p.missing("%s", msg)
}

// patternRange parses an optional ".." or "..." after a value. The upper
// bound may be left off.
func (p *Parser) patternRange(left ast.Node) ast.Node {
	if !p.match(DOT_DOT, DOT_DOT_DOT) {
		return left
	}
	op := p.current
	p.lex()
	var right ast.Node
	if patternValueStart(p.current.Type) || p.match(CONSTANT, UCOLON_COLON) {
		right = p.parsePatternValue("expected a value after the range operator")
	}
	return p.rangeNode(left, op, right)
}

func (p *Parser) parsePatternValue(msg string) ast.Node {
	if p.match(CONSTANT, UCOLON_COLON) {
		return p.parsePatternConstant()
	}
	if !patternValueStart(p.current.Type) {
		return p.missing("%s", msg)
	}
	return p.parsePrefix(bpMax, msg)
}

// parsePatternConstant parses Foo, ::Foo and Foo::Bar. A following "(" or
// "[" belongs to the pattern, not a call.
func (p *Parser) parsePatternConstant() ast.Node {
	var n ast.Node
	if p.match(UCOLON_COLON) {
		delim := p.current
		p.lex()
		n = p.constantSegment(nil, delim)
	} else {
		tok := p.current
		p.lex()
		n = leaf(&ast.ConstantReadNode{Name: p.text(tok)}, tok)
	}
	for p.match(COLON_COLON) && !isMissing(n) {
		delim := p.current
		p.lex()
		n = p.constantSegment(n, delim)
	}
	return n
}

func (p *Parser) constantSegment(parent ast.Node, delim Token) ast.Node {
	start := delim.Start
	if parent != nil {
		start = nodeStart(parent)
	}
	var child ast.Node
	if p.match(CONSTANT) {
		tok := p.current
		p.lex()
		child = leaf(&ast.ConstantReadNode{Name: p.text(tok)}, tok)
	} else {
		child = p.missing("expected a constant after the `::` operator")
	}
	n := &ast.ConstantPathNode{Parent: parent, DelimiterLoc: p.loc(delim), Child: child}
	setLoc(n, start, maxEnd(delim.End, child.Loc()))
	return n
}

// bindPatternName binds a local from a pattern. An existing local in an
// enclosing block is reused. Binding one name twice in a pattern is an
// error unless it starts with "_".
func (p *Parser) bindPatternName(name string, at ast.Location) ast.Node {
	if p.patternNames[name] && !strings.HasPrefix(name, "_") {
		p.errorAt(at.Start, at.End, "duplicated variable name")
	}
	p.patternNames[name] = true
	depth := p.localDepth(name)
	if depth < 0 {
		p.localAdd(name)
		depth = 0
	}
	n := &ast.LocalVariableTargetNode{Name: name, Depth: depth}
	setLoc(n, at.Start, at.End)
	return n
}

// parsePin parses "^name", "^@ivar" and "^(expr)".
func (p *Parser) parsePin() ast.Node {
	op := p.current
	p.lex()
	tok := p.current
	switch tok.Type {
	case IDENTIFIER:
		p.lex()
		name := p.text(tok)
		depth := p.localDepth(name)
		if depth < 0 {
			p.errorTok(tok, "%s: no such local variable", name)
			depth = 0
		}
		v := leaf(&ast.LocalVariableReadNode{Name: name, Depth: depth}, tok)
		n := &ast.PinnedVariableNode{OperatorLoc: p.loc(op), Variable: v}
		setLoc(n, op.Start, tok.End)
		return n
	case INSTANCE_VARIABLE, CLASS_VARIABLE, GLOBAL_VARIABLE:
		v := p.parsePrefix(bpMax, "expected a variable after `^`")
		n := &ast.PinnedVariableNode{OperatorLoc: p.loc(op), Variable: v}
		setLoc(n, op.Start, nodeEnd(v))
		return n
	case PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES:
		p.lex()
		p.pushContext(ctxParens)
		p.accept(NEWLINE)
		expr := p.parseValue(bpStatement, "expected an expression after `^(`")
		p.accept(NEWLINE)
		p.popContext()
		p.expect("expected a `)` to close the pinned expression", PARENTHESIS_RIGHT)
		n := &ast.PinnedExpressionNode{OperatorLoc: p.loc(op), LparenLoc: p.loc(tok), Expression: expr, RparenLoc: p.loc(p.previous)}
		setLoc(n, op.Start, p.previous.End)
		return n
	}
	return p.missing("expected a variable or a parenthesized expression after `^`")
}

func (p *Parser) parsePatternSplat() ast.Node {
	op := p.current
	p.lex()
	n := &ast.SplatNode{OperatorLoc: p.loc(op)}
	end := op.End
	if p.match(IDENTIFIER) {
		tok := p.current
		p.lex()
		n.Expression = p.bindPatternName(p.text(tok), p.loc(tok))
		end = tok.End
	}
	setLoc(n, op.Start, end)
	return n
}

/* ===========================
   COLLECTION PATTERNS
   =========================== */

// parseBracketedPattern parses "[...]", "{...}", "Const(...)" and
// "Const[...]". The current token is the opener.
func (p *Parser) parseBracketedPattern(constant ast.Node, closer TokenType) ast.Node {
	open := p.current
	p.lex()
	p.accept(NEWLINE)

	var n ast.Node
	switch {
	case p.match(closer):
		if closer == BRACE_RIGHT {
			n = &ast.HashPatternNode{Elements: []ast.Node{}}
		} else {
			n = &ast.ArrayPatternNode{Requireds: []ast.Node{}, Posts: []ast.Node{}}
		}
	case closer == BRACE_RIGHT || p.match(USTAR_STAR):
		n = p.parseHashPatternElements(nil, closer)
	default:
		first := p.parsePatternElement("expected a pattern")
		if p.isLabelSymbol(first) {
			n = p.parseHashPatternElements(first, closer)
		} else {
			n = p.parseArrayPatternElements(first, closer)
		}
	}

	p.accept(NEWLINE)
	switch closer {
	case BRACKET_RIGHT:
		p.expect("expected a `]` to close the pattern", closer)
	case BRACE_RIGHT:
		p.expect("expected a `}` to close the pattern", closer)
	default:
		p.expect("expected a `)` to close the pattern", closer)
	}
	closing := p.previous

	start := open.Start
	if constant != nil {
		start = nodeStart(constant)
	}
	switch t := n.(type) {
	case *ast.ArrayPatternNode:
		t.Constant, t.OpeningLoc, t.ClosingLoc = constant, p.loc(open), p.loc(closing)
	case *ast.FindPatternNode:
		t.Constant, t.OpeningLoc, t.ClosingLoc = constant, p.loc(open), p.loc(closing)
	case *ast.HashPatternNode:
		t.Constant, t.OpeningLoc, t.ClosingLoc = constant, p.loc(open), p.loc(closing)
	}
	setLoc(n, start, closing.End)
	return n
}

// parseArrayPatternElements parses the rest of a list after its first
// element and sorts the elements into an array or find pattern.
func (p *Parser) parseArrayPatternElements(first ast.Node, closer TokenType) ast.Node {
	elems := []ast.Node{first}
	for !isMissing(elems[len(elems)-1]) && p.accept(COMMA) {
		if closer != EOF {
			p.accept(NEWLINE)
		}
		if p.match(closer) || !(p.match(USTAR) || patternStart(p.current.Type)) {
			break
		}
		elems = append(elems, p.parsePatternElement("expected a pattern after `,`"))
	}

	var splats []int
	for i, e := range elems {
		if isSplat(e) {
			splats = append(splats, i)
		}
	}
	if len(elems) >= 3 && len(splats) == 2 && splats[0] == 0 && splats[1] == len(elems)-1 {
		return &ast.FindPatternNode{Left: elems[0], Requireds: elems[1 : len(elems)-1], Right: elems[len(elems)-1]}
	}

	n := &ast.ArrayPatternNode{Requireds: []ast.Node{}, Posts: []ast.Node{}}
	for _, e := range elems {
		switch {
		case isSplat(e) && n.Rest == nil:
			n.Rest = e
		case isSplat(e):
			p.errorNode(e, "unexpected multiple `*` splats in the pattern")
			n.Posts = append(n.Posts, e)
		case n.Rest == nil:
			n.Requireds = append(n.Requireds, e)
		default:
			n.Posts = append(n.Posts, e)
		}
	}
	return n
}

// parseHashPatternElements parses "key: pattern" pairs and an optional
// "**rest". A key without a value binds a local of the same name.
func (p *Parser) parseHashPatternElements(first ast.Node, closer TokenType) *ast.HashPatternNode {
	n := &ast.HashPatternNode{Elements: []ast.Node{}}
	for {
		if p.match(USTAR_STAR) && first == nil {
			rest := p.parsePatternKeywordRest()
			if n.Rest != nil {
				p.errorNode(rest, "unexpected multiple `**` splats in the hash pattern")
			} else {
				n.Rest = rest
			}
		} else {
			key := first
			first = nil
			switch {
			case key != nil:
			case p.match(LABEL):
				key = p.parseLabel()
			case p.match(STRING_BEGIN):
				key = p.parseStringLiteral()
			default:
				p.errorTok(p.current, "expected a label as the key in the hash pattern")
				return n
			}
			if !p.isLabelSymbol(key) {
				p.errorNode(key, "expected a label as the key in the hash pattern")
			}
			if n.Rest != nil {
				p.errorNode(key, "unexpected key after the `**` rest in the hash pattern")
			}
			n.Elements = append(n.Elements, p.parseHashPatternPair(key))
		}

		if !p.accept(COMMA) {
			return n
		}
		if closer != EOF {
			p.accept(NEWLINE)
		}
		if p.match(closer) || !p.match(LABEL, STRING_BEGIN, USTAR_STAR) {
			return n
		}
	}
}

func (p *Parser) parseHashPatternPair(key ast.Node) ast.Node {
	a := &ast.AssocNode{Key: key}
	end := nodeEnd(key)
	if patternStart(p.current.Type) && !p.match(LABEL) {
		a.Value = p.parsePattern("expected a pattern after the key")
		end = nodeEnd(a.Value)
	} else if sym, ok := key.(*ast.SymbolNode); ok {
		name := string(sym.Unescaped)
		if namedcapture.IsLocalName(name) {
			p.bindPatternName(name, sym.ValueLoc)
		} else {
			p.errorNode(key, "key must be valid as local variables")
		}
	} else {
		p.errorNode(key, "symbol literal with interpolation is not allowed")
	}
	setLoc(a, nodeStart(key), end)
	return a
}

// parsePatternKeywordRest parses "**name", "**" and "**nil".
func (p *Parser) parsePatternKeywordRest() ast.Node {
	op := p.current
	p.lex()
	switch {
	case p.match(KEYWORD_NIL):
		kw := p.current
		p.lex()
		n := &ast.NoKeywordsParameterNode{OperatorLoc: p.loc(op), KeywordLoc: p.loc(kw)}
		setLoc(n, op.Start, kw.End)
		return n
	case p.match(IDENTIFIER):
		tok := p.current
		p.lex()
		n := &ast.AssocSplatNode{OperatorLoc: p.loc(op), Value: p.bindPatternName(p.text(tok), p.loc(tok))}
		setLoc(n, op.Start, tok.End)
		return n
	}
	n := &ast.AssocSplatNode{OperatorLoc: p.loc(op)}
	setLoc(n, op.Start, op.End)
	return n
}

// spanPattern sets the location of a pattern written without brackets to
// cover its children.
func spanPattern(n ast.Node) {
	kids := n.Children()
	if len(kids) == 0 {
		return
	}
	setLoc(n, nodeStart(kids[0]), nodeEnd(kids[len(kids)-1]))
}
