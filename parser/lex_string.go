package parser

import "strings"

// globalPunct lists the characters that form a global variable on their
// own, as in $; or $".
const globalPunct = "~*$?!@/\\;,.=:<>\"&`'+"

// interpolationAt recognizes "#{", "#@ivar", "#@@cvar" and "#$gvar" at i.
// It returns the token the interpolation starts with and its length, or a
// zero length when the '#' is literal.
func (p *Parser) interpolationAt(i int) (TokenType, int) {
	switch p.byteAt(i + 1) {
	case '{':
		return EMBEXPR_BEGIN, 2
	case '@':
		j := i + 2
		if p.byteAt(j) == '@' {
			j++
		}
		if p.identStart(j) > 0 {
			return EMBVAR, 1
		}
	case '$':
		c := p.byteAt(i + 2)
		if c == '-' {
			if p.identStart(i+3) > 0 || isDigit(p.byteAt(i+3)) {
				return EMBVAR, 1
			}
			return 0, 0
		}
		if isDigit(c) || (c != 0 && strings.IndexByte(globalPunct, c) >= 0) || p.identStart(i+2) > 0 {
			return EMBVAR, 1
		}
	}
	return 0, 0
}

// startInterpolation consumes the opener found by interpolationAt and
// switches into the matching mode.
func (p *Parser) startInterpolation(typ TokenType, n, start int) Token {
	p.pos += n
	if typ == EMBEXPR_BEGIN {
		p.pushMode(lexMode{kind: modeEmbexpr})
		p.enclosureNesting++
		p.doLoopStack.push(false)
		p.commandStart = true
	} else {
		p.pushMode(lexMode{kind: modeEmbvar})
	}
	p.lexState = stateBEG
	return p.tok(typ, start)
}

// skipEscaped steps over a backslash and the character it escapes. What the
// escape means is decided later, when the content is unescaped.
func (p *Parser) skipEscaped() {
	p.pos++
	if p.pos < len(p.src) {
		w := p.encoding.CharWidth(p.src[p.pos:])
		if w == 0 {
			w = 1
		}
		p.pos += w
	}
}

// unterminated reports a literal that runs into the end of the input and
// leaves its mode, so the parser sees EOF exactly once more.
func (p *Parser) unterminated(start int, what string) Token {
	p.errorAt(start, start, "unterminated %s meets end of file", what)
	p.popMode()
	return p.tok(EOF, start)
}

// lexString scans the body of a quoted string, symbol or xstring.
func (p *Parser) lexString() Token {
	m := p.mode()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case m.incrementor != 0 && c == m.incrementor:
			m.nesting++
			p.pos++
		case c == m.terminator:
			if m.nesting > 0 {
				m.nesting--
				p.pos++
				continue
			}
			if p.pos > start {
				return p.tok(STRING_CONTENT, start)
			}
			p.pos++
			if m.labelAllowed && p.peekByte(0) == ':' && p.peekByte(1) != ':' {
				p.pos++
				p.popMode()
				p.lexState = stateARG | stateLABELED
				return p.tok(LABEL_END, start)
			}
			p.popMode()
			p.lexState = stateEND
			return p.tok(STRING_END, start)
		case c == '\\':
			nl := p.byteAt(p.pos+1) == '\n'
			p.skipEscaped()
			if nl && p.heredocEnd > 0 {
				t := p.tok(STRING_CONTENT, start)
				p.afterLineBreak()
				return t
			}
		case c == '\n':
			p.pos++
			if p.heredocEnd > 0 {
				t := p.tok(STRING_CONTENT, start)
				p.afterLineBreak()
				return t
			}
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
	if p.pos > start {
		return p.tok(STRING_CONTENT, start)
	}
	return p.unterminated(start, "string")
}

// lexList scans the body of %w, %W, %i and %I literals. Runs of whitespace
// separate elements and come out as WORDS_SEP.
func (p *Parser) lexList() Token {
	m := p.mode()
	start := p.pos
	if p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
			nl := p.src[p.pos] == '\n'
			p.pos++
			if nl && p.heredocEnd > 0 {
				t := p.tok(WORDS_SEP, start)
				p.afterLineBreak()
				return t
			}
		}
		return p.tok(WORDS_SEP, start)
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case isSpace(c):
			return p.tok(STRING_CONTENT, start)
		case m.incrementor != 0 && c == m.incrementor:
			m.nesting++
			p.pos++
		case c == m.terminator:
			if m.nesting > 0 {
				m.nesting--
				p.pos++
				continue
			}
			if p.pos > start {
				return p.tok(STRING_CONTENT, start)
			}
			p.pos++
			p.popMode()
			p.lexState = stateEND
			return p.tok(STRING_END, start)
		case c == '\\':
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
	if p.pos > start {
		return p.tok(STRING_CONTENT, start)
	}
	return p.unterminated(start, "list")
}

// regexpOptions are the flag letters accepted after a closing delimiter.
const regexpOptions = "imxonesu"

// lexRegexp scans a regular expression body. The closing token includes
// the option letters.
func (p *Parser) lexRegexp() Token {
	m := p.mode()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case m.incrementor != 0 && c == m.incrementor:
			m.nesting++
			p.pos++
		case c == m.terminator:
			if m.nesting > 0 {
				m.nesting--
				p.pos++
				continue
			}
			if p.pos > start {
				return p.tok(STRING_CONTENT, start)
			}
			p.pos++
			optStart := p.pos
			for isAlpha(p.peekByte(0)) {
				p.pos++
			}
			for i := optStart; i < p.pos; i++ {
				if strings.IndexByte(regexpOptions, p.src[i]) < 0 {
					p.errorAt(optStart, p.pos, "unknown regexp option: %s", p.src[optStart:p.pos])
					break
				}
			}
			p.popMode()
			p.lexState = stateEND
			return p.tok(REGEXP_END, start)
		case c == '\\':
			nl := p.byteAt(p.pos+1) == '\n'
			p.skipEscaped()
			if nl && p.heredocEnd > 0 {
				t := p.tok(STRING_CONTENT, start)
				p.afterLineBreak()
				return t
			}
		case c == '\n':
			p.pos++
			if p.heredocEnd > 0 {
				t := p.tok(STRING_CONTENT, start)
				p.afterLineBreak()
				return t
			}
		case c == '#':
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
	if p.pos > start {
		return p.tok(STRING_CONTENT, start)
	}
	return p.unterminated(start, "regexp")
}
