package parser

import "bytes"

// lexHeredocStart is called with "<<" consumed. It reads the identifier
// with its optional "-" or "~" and quotes, then moves the cursor to the
// body. The rest of the opening line is lexed after the body ends, from
// the mode's nextStart. When no identifier follows it restores the cursor
// and reports false.
func (p *Parser) lexHeredocStart(start int) (Token, bool) {
	save := p.pos
	i := p.pos
	indent := indentNone
	switch p.byteAt(i) {
	case '-':
		indent = indentDash
		i++
	case '~':
		indent = indentTilde
		i++
	}

	quote := quoteNone
	var identStart, identEnd int
	switch c := p.byteAt(i); c {
	case '\'', '"', '`':
		switch c {
		case '\'':
			quote = quoteSingle
		case '"':
			quote = quoteDouble
		default:
			quote = quoteBacktick
		}
		identStart = i + 1
		j := identStart
		for j < len(p.src) && p.src[j] != c && p.src[j] != '\n' {
			j++
		}
		if j >= len(p.src) || p.src[j] != c {
			p.errorAt(start, j, "unterminated here document identifier")
			p.pos = save
			return Token{}, false
		}
		identEnd = j
		p.pos = j + 1
	default:
		if p.identChar(i) == 0 {
			p.pos = save
			return Token{}, false
		}
		j := i
		for w := p.identChar(j); w > 0; w = p.identChar(j) {
			j += w
		}
		identStart, identEnd = i, j
		p.pos = j
	}

	body := p.heredocEnd
	p.heredocEnd = 0
	if body == 0 {
		if nl := bytes.IndexByte(p.src[p.pos:], '\n'); nl >= 0 {
			body = p.pos + nl + 1
		} else {
			body = len(p.src)
		}
	}
	p.pushMode(lexMode{
		kind:          modeHeredoc,
		interpolation: quote != quoteSingle,
		identStart:    identStart,
		identEnd:      identEnd,
		quote:         quote,
		indent:        indent,
		nextStart:     p.pos,
	})
	t := p.tok(HEREDOC_START, start)
	p.pos = body
	return t, true
}

// heredocTerminator reports whether the line starting at i closes the
// heredoc m, and where that line ends, newline included.
func (p *Parser) heredocTerminator(i int, m *lexMode) (int, bool) {
	if i >= len(p.src) && i > 0 && p.src[i-1] != '\n' {
		return 0, false
	}
	j := i
	if m.indent != indentNone {
		for p.byteAt(j) == ' ' || p.byteAt(j) == '\t' {
			j++
		}
	}
	ident := p.src[m.identStart:m.identEnd]
	if !bytes.HasPrefix(p.src[j:], ident) {
		return 0, false
	}
	k := j + len(ident)
	switch {
	case k == len(p.src):
		return k, true
	case p.src[k] == '\n':
		return k + 1, true
	case p.src[k] == '\r' && p.byteAt(k+1) == '\n':
		return k + 2, true
	}
	return 0, false
}

// lexHeredoc scans heredoc body lines. Squiggly heredocs produce one
// content token per line so the parser can strip common indentation.
func (p *Parser) lexHeredoc() Token {
	m := p.mode()
	start := p.pos

	if p.pos >= len(p.src) {
		p.errorAt(m.identStart, m.identEnd, "unterminated heredoc; can't find string \"%s\" anywhere before EOF",
			p.src[m.identStart:m.identEnd])
		next := m.nextStart
		p.popMode()
		p.heredocEnd = len(p.src)
		p.pos = next
		return Token{Type: HEREDOC_END, Start: len(p.src), End: len(p.src)}
	}

	if p.atLineStart(start) {
		if end, ok := p.heredocTerminator(start, m); ok {
			next := m.nextStart
			p.pos = end
			t := p.tok(HEREDOC_END, start)
			p.popMode()
			p.heredocEnd = end
			p.pos = next
			p.lexState = stateEND
			return t
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\n' || (c == '\\' && m.quote != quoteSingle && p.byteAt(p.pos+1) == '\n'):
			if c == '\\' {
				p.pos++
			}
			p.pos++
			if p.heredocEnd > 0 {
				t := p.tok(STRING_CONTENT, start)
				p.afterLineBreak()
				return t
			}
			if m.indent == indentTilde {
				return p.tok(STRING_CONTENT, start)
			}
			if _, ok := p.heredocTerminator(p.pos, m); ok {
				return p.tok(STRING_CONTENT, start)
			}
		case c == '\\' && m.quote != quoteSingle:
			p.skipEscaped()
		case c == '#' && m.interpolation:
			typ, n := p.interpolationAt(p.pos)
			if n == 0 {
				p.pos++
				continue
			}
			if p.pos > start {
				return p.tok(STRING_CONTENT, start)
			}
			return p.startInterpolation(typ, n, start)
		default:
			p.pos++
		}
	}
	return p.tok(STRING_CONTENT, start)
}
