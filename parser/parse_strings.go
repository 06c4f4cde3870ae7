package parser

import (
	"bytes"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/unescape"
)

/* ===========================
   STRING-LIKE LITERALS
   =========================== */

// literal says how the content of one string-like literal is decoded.
type literal struct {
	mode unescape.Mode
	opts unescape.Options
}

// literalFor derives the decoding of a literal from its opening token. The
// delimiter is always the last byte of the opener.
func (p *Parser) literalFor(open Token, mode unescape.Mode) literal {
	l := literal{mode: mode}
	if text := p.src[open.Start:open.End]; len(text) > 0 {
		l.opts.Incrementor, l.opts.Terminator = terminatorFor(text[len(text)-1])
	}
	return l
}

// contentPart decodes one STRING_CONTENT token. Escape errors are
// reported at their position in the source.
func (p *Parser) contentPart(tok Token, lit literal) *ast.StringNode {
	out, errs := unescape.Unescape(p.src[tok.Start:tok.End], tok.Start, lit.mode, lit.opts)
	for _, e := range errs {
		p.errorAt(e.Offset, e.Offset+e.Length, "%s", e.Msg)
	}
	if out == nil {
		out = []byte{}
	}
	n := &ast.StringNode{ContentLoc: p.loc(tok), Unescaped: out}
	setLoc(n, tok.Start, tok.End)
	return n
}

// parseStringPart parses one piece of literal content: a run of text, an
// interpolated expression or an interpolated variable. It reports false,
// consuming nothing, when the current token is none of these.
func (p *Parser) parseStringPart(lit literal) (ast.Node, bool) {
	switch p.current.Type {
	case STRING_CONTENT:
		tok := p.current
		p.lex()
		return p.contentPart(tok, lit), true
	case EMBEXPR_BEGIN:
		return p.parseEmbeddedStatements(), true
	case EMBVAR:
		return p.parseEmbeddedVariable(), true
	}
	return nil, false
}

// parseStringParts parses content up to one of closers. Content tokens are
// kept apart; see mergeContent.
func (p *Parser) parseStringParts(lit literal, closers ...TokenType) []ast.Node {
	parts := []ast.Node{}
	for !p.match(closers...) && !p.match(EOF) {
		part, ok := p.parseStringPart(lit)
		if !ok {
			p.errorTok(p.current, "unexpected %s in a string literal", p.current.Type.Human())
			break
		}
		parts = append(parts, part)
	}
	return parts
}

func (p *Parser) parseEmbeddedStatements() ast.Node {
	open := p.current
	p.lex()
	n := &ast.EmbeddedStatementsNode{OpeningLoc: p.loc(open)}
	n.Statements = p.parseOptionalStatements(ctxEmbexpr)
	p.expect("expected a `}` to close the embedded expression", EMBEXPR_END)
	n.ClosingLoc = p.loc(p.previous)
	setLoc(n, open.Start, p.previous.End)
	return n
}

// parseEmbeddedVariable parses "#@ivar", "#@@cvar" and "#$gvar".
func (p *Parser) parseEmbeddedVariable() ast.Node {
	op := p.current
	p.lex()
	n := &ast.EmbeddedVariableNode{OperatorLoc: p.loc(op)}
	switch p.current.Type {
	case INSTANCE_VARIABLE, CLASS_VARIABLE, GLOBAL_VARIABLE, BACK_REFERENCE, NUMBERED_REFERENCE:
		n.Variable = p.parsePrefix(bpMax, "expected an embedded variable")
	default:
		p.errorTok(p.current, "expected an embedded variable")
		m := &ast.MissingNode{}
		setLoc(m, op.End, op.End)
		n.Variable = m
	}
	setLoc(n, op.Start, nodeEnd(n.Variable))
	return n
}

// mergeContent joins content parts that touch in the source, so text split
// by the lexer at line ends reads as one part.
func mergeContent(parts []ast.Node) []ast.Node {
	out := parts[:0]
	for _, part := range parts {
		if s, ok := part.(*ast.StringNode); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*ast.StringNode); ok && prev.ContentLoc.End == s.ContentLoc.Start {
				prev.Unescaped = append(prev.Unescaped, s.Unescaped...)
				prev.ContentLoc.End = s.ContentLoc.End
				prev.Location.End = s.Location.End
				continue
			}
		}
		out = append(out, part)
	}
	return out
}

// soleContent returns the only part when it is plain text, or empty text
// at `at` when there are no parts.
func soleContent(parts []ast.Node, at int) (*ast.StringNode, bool) {
	switch len(parts) {
	case 0:
		s := &ast.StringNode{ContentLoc: ast.Loc(at, at), Unescaped: []byte{}}
		setLoc(s, at, at)
		return s, true
	case 1:
		s, ok := parts[0].(*ast.StringNode)
		return s, ok
	}
	return nil, false
}

// closeLiteral consumes the closing token of a literal. At the end of the
// input the lexer has already reported the literal as unterminated.
func (p *Parser) closeLiteral(msg string, closer TokenType) Token {
	if p.match(EOF) {
		return Token{Type: MISSING, Start: p.previous.End, End: p.previous.End}
	}
	p.expect(msg, closer)
	return p.previous
}

func (p *Parser) freeze(s *ast.StringNode) *ast.StringNode {
	if p.frozenStringLiteral {
		s.SetFlag(ast.StringFrozen)
	}
	return s
}

func (p *Parser) stringNode(open, closing ast.Location, parts []ast.Node, start, end int) ast.Node {
	if s, ok := soleContent(parts, closing.Start); ok {
		s.OpeningLoc, s.ClosingLoc = open, closing
		setLoc(s, start, end)
		return p.freeze(s)
	}
	n := &ast.InterpolatedStringNode{OpeningLoc: open, Parts: parts, ClosingLoc: closing}
	setLoc(n, start, end)
	return n
}

func (p *Parser) symbolNode(open, closing ast.Location, parts []ast.Node, start, end int) ast.Node {
	if s, ok := soleContent(parts, closing.Start); ok {
		n := &ast.SymbolNode{OpeningLoc: open, ValueLoc: s.ContentLoc, ClosingLoc: closing, Unescaped: s.Unescaped}
		setLoc(n, start, end)
		return n
	}
	n := &ast.InterpolatedSymbolNode{OpeningLoc: open, Parts: parts, ClosingLoc: closing}
	setLoc(n, start, end)
	return n
}

func (p *Parser) xstringNode(open, closing ast.Location, parts []ast.Node, start, end int) ast.Node {
	if s, ok := soleContent(parts, closing.Start); ok {
		n := &ast.XStringNode{OpeningLoc: open, ContentLoc: s.ContentLoc, ClosingLoc: closing, Unescaped: s.Unescaped}
		setLoc(n, start, end)
		return n
	}
	n := &ast.InterpolatedXStringNode{OpeningLoc: open, Parts: parts, ClosingLoc: closing}
	setLoc(n, start, end)
	return n
}

/* ===========================
   STRINGS
   =========================== */

// parseStrings parses a string literal and any literals directly after it,
// which concatenate.
func (p *Parser) parseStrings() ast.Node {
	n := p.parseStringLiteral()
	for p.match(STRING_BEGIN) && !p.isLabelSymbol(n) {
		right := p.parseStringLiteral()
		if p.isLabelSymbol(right) {
			p.errorNode(right, "unexpected label after a string literal")
		}
		c := &ast.StringConcatNode{Left: n, Right: right}
		setLoc(c, nodeStart(n), nodeEnd(right))
		n = c
	}
	return n
}

func (p *Parser) parseStringLiteral() ast.Node {
	open := p.current
	switch open.Type {
	case CHARACTER_LITERAL:
		p.lex()
		body := Token{Type: STRING_CONTENT, Start: open.Start + 1, End: open.End}
		s := p.contentPart(body, literal{mode: unescape.All})
		s.OpeningLoc = p.locRange(open.Start, open.Start+1)
		setLoc(s, open.Start, open.End)
		return p.freeze(s)
	case HEREDOC_START:
		return p.parseHeredoc()
	}

	text := p.src[open.Start:open.End]
	mode := unescape.All
	if text[0] == '\'' || bytes.HasPrefix(text, []byte("%q")) {
		mode = unescape.Minimal
	}
	lit := p.literalFor(open, mode)
	p.lex()
	parts := mergeContent(p.parseStringParts(lit, STRING_END, LABEL_END))

	if p.match(LABEL_END) {
		closing := p.current
		p.lex()
		return p.symbolNode(p.loc(open), p.loc(closing), parts, open.Start, closing.End)
	}
	closing := p.closeLiteral("expected a closing delimiter for the string literal", STRING_END)
	return p.stringNode(p.loc(open), p.loc(closing), parts, open.Start, closing.End)
}

/* ===========================
   HEREDOCS
   =========================== */

// parseHeredoc parses a heredoc. The node covers only the opening token;
// the body and terminator lie on later lines and are recorded as the
// content and closing locations.
func (p *Parser) parseHeredoc() ast.Node {
	open := p.current
	text := p.src[open.Start:open.End]
	lit := literal{mode: unescape.All}
	if bytes.IndexByte(text, '\'') >= 0 {
		lit.mode = unescape.None
	}
	p.lex()
	parts := p.parseStringParts(lit, HEREDOC_END)
	closing := p.closeLiteral("expected the heredoc terminator", HEREDOC_END)

	// Squiggly heredocs keep one part per line after dedenting.
	if len(text) > 2 && text[2] == '~' {
		p.dedentHeredoc(parts)
	} else {
		parts = mergeContent(parts)
	}

	if bytes.IndexByte(text, '`') >= 0 {
		return p.xstringNode(p.loc(open), p.loc(closing), parts, open.Start, open.End)
	}
	return p.stringNode(p.loc(open), p.loc(closing), parts, open.Start, open.End)
}

// dedentHeredoc strips the common leading whitespace from a squiggly
// heredoc. Only text that starts a line counts, and lines holding nothing
// but whitespace are ignored when measuring.
func (p *Parser) dedentHeredoc(parts []ast.Node) {
	width := -1
	for _, part := range parts {
		s, ok := part.(*ast.StringNode)
		if !ok || !p.atLineStart(s.ContentLoc.Start) {
			continue
		}
		raw := p.src[s.ContentLoc.Start:s.ContentLoc.End]
		col, n := indentation(raw, -1)
		if rest := raw[n:]; len(rest) > 0 && (rest[0] == '\n' || bytes.HasPrefix(rest, []byte("\r\n"))) {
			continue
		}
		if width < 0 || col < width {
			width = col
		}
	}
	if width <= 0 {
		return
	}
	for _, part := range parts {
		s, ok := part.(*ast.StringNode)
		if !ok || !p.atLineStart(s.ContentLoc.Start) {
			continue
		}
		_, n := indentation(s.Unescaped, width)
		s.Unescaped = s.Unescaped[n:]
	}
}

// indentation measures the blanks that start b. Tabs advance to the next
// multiple of eight. A non-negative limit stops before the column would
// pass it. It returns the column reached and the bytes used.
func indentation(b []byte, limit int) (col, n int) {
	for n < len(b) {
		next := col
		switch b[n] {
		case ' ':
			next++
		case '\t':
			next = (col/8 + 1) * 8
		default:
			return col, n
		}
		if limit >= 0 && next > limit {
			return col, n
		}
		col = next
		n++
	}
	return col, n
}

/* ===========================
   SYMBOLS, REGEXPS, XSTRINGS
   =========================== */

// symbolName reports whether t can follow ":" in a symbol literal.
func symbolName(t TokenType) bool {
	switch t {
	case INSTANCE_VARIABLE, CLASS_VARIABLE, GLOBAL_VARIABLE, BACK_REFERENCE, NUMBERED_REFERENCE:
		return true
	}
	return defName(t)
}

// parseSymbol parses ":name", ":\"...\"" and "%s(...)".
func (p *Parser) parseSymbol() ast.Node {
	open := p.current
	text := p.src[open.Start:open.End]
	p.lex()

	if len(text) == 1 {
		tok := p.current
		if !symbolName(tok.Type) {
			p.errorAt(open.Start, open.End, "expected a symbol name after `:`")
			n := &ast.SymbolNode{OpeningLoc: p.loc(open), Unescaped: []byte{}}
			setLoc(n, open.Start, open.End)
			return n
		}
		p.lex()
		n := &ast.SymbolNode{OpeningLoc: p.loc(open), ValueLoc: p.loc(tok), Unescaped: []byte(p.text(tok))}
		setLoc(n, open.Start, tok.End)
		return n
	}

	mode := unescape.All
	if text[len(text)-1] == '\'' || bytes.HasPrefix(text, []byte("%s")) {
		mode = unescape.Minimal
	}
	lit := p.literalFor(open, mode)
	parts := mergeContent(p.parseStringParts(lit, STRING_END))
	closing := p.closeLiteral("expected a closing delimiter for the symbol", STRING_END)
	return p.symbolNode(p.loc(open), p.loc(closing), parts, open.Start, closing.End)
}

// regexpFlags decodes the option letters after a regexp's closing
// delimiter.
func regexpFlags(closing []byte) ast.NodeFlags {
	var f ast.NodeFlags
	if len(closing) == 0 {
		return f
	}
	for _, c := range closing[1:] {
		switch c {
		case 'i':
			f |= ast.RegexpIgnoreCase
		case 'x':
			f |= ast.RegexpExtended
		case 'm':
			f |= ast.RegexpMultiLine
		case 'o':
			f |= ast.RegexpOnce
		case 'e':
			f |= ast.RegexpEUCJP
		case 'n':
			f |= ast.RegexpASCII8BIT
		case 's':
			f |= ast.RegexpWindows31J
		case 'u':
			f |= ast.RegexpUTF8
		}
	}
	return f
}

func (p *Parser) parseRegexp() ast.Node {
	open := p.current
	p.lex()
	lit := p.literalFor(open, unescape.Regexp)
	parts := mergeContent(p.parseStringParts(lit, REGEXP_END))
	closing := p.closeLiteral("expected a closing delimiter for the regular expression", REGEXP_END)
	flags := regexpFlags(p.src[closing.Start:closing.End])

	if s, ok := soleContent(parts, closing.Start); ok {
		n := &ast.RegularExpressionNode{OpeningLoc: p.loc(open), ContentLoc: s.ContentLoc, ClosingLoc: p.loc(closing), Unescaped: s.Unescaped}
		setLoc(n, open.Start, closing.End)
		n.SetFlag(flags)
		return n
	}
	n := &ast.InterpolatedRegularExpressionNode{OpeningLoc: p.loc(open), Parts: parts, ClosingLoc: p.loc(closing)}
	setLoc(n, open.Start, closing.End)
	n.SetFlag(flags)
	return n
}

// parseXString parses backtick and %x literals.
func (p *Parser) parseXString() ast.Node {
	open := p.current
	p.lex()
	lit := p.literalFor(open, unescape.All)
	parts := mergeContent(p.parseStringParts(lit, STRING_END))
	closing := p.closeLiteral("expected a closing delimiter for the `%x` or backtick literal", STRING_END)
	return p.xstringNode(p.loc(open), p.loc(closing), parts, open.Start, closing.End)
}

/* ===========================
   WORD LISTS
   =========================== */

// parseWordList parses %w, %W, %i and %I into an array of strings or
// symbols. Whitespace separates elements; parts that touch form one.
func (p *Parser) parseWordList() ast.Node {
	open := p.current
	symbols := open.Type == PERCENT_LOWER_I || open.Type == PERCENT_UPPER_I
	mode := unescape.Minimal
	if open.Type == PERCENT_UPPER_W || open.Type == PERCENT_UPPER_I {
		mode = unescape.All
	}
	lit := p.literalFor(open, mode)
	lit.opts.List = true
	p.lex()

	arr := &ast.ArrayNode{OpeningLoc: p.loc(open), Elements: []ast.Node{}}
	var word []ast.Node
	flush := func() {
		if len(word) > 0 {
			arr.Elements = append(arr.Elements, p.wordNode(mergeContent(word), symbols))
			word = nil
		}
	}

	for !p.match(STRING_END, EOF) {
		if p.accept(WORDS_SEP) {
			flush()
			continue
		}
		part, ok := p.parseStringPart(lit)
		if !ok {
			p.errorTok(p.current, "unexpected %s in a word list", p.current.Type.Human())
			break
		}
		word = append(word, part)
	}
	flush()

	closing := p.closeLiteral("expected a closing delimiter for the word list", STRING_END)
	arr.ClosingLoc = p.loc(closing)
	setLoc(arr, open.Start, closing.End)
	return arr
}

func (p *Parser) wordNode(parts []ast.Node, symbols bool) ast.Node {
	start, end := nodeStart(parts[0]), nodeEnd(parts[len(parts)-1])
	if s, ok := soleContent(parts, start); ok {
		if symbols {
			n := &ast.SymbolNode{ValueLoc: s.ContentLoc, Unescaped: s.Unescaped}
			setLoc(n, start, end)
			return n
		}
		return p.freeze(s)
	}
	if symbols {
		n := &ast.InterpolatedSymbolNode{Parts: parts}
		setLoc(n, start, end)
		return n
	}
	n := &ast.InterpolatedStringNode{Parts: parts}
	setLoc(n, start, end)
	return n
}
