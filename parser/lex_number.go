package parser

// lexNumber scans a numeric literal whose first digit is at `at` and
// returns its token type. Malformed literals are reported but still
// produce a token covering what was read.
func (p *Parser) lexNumber(at int) TokenType {
	p.pos = at
	typ := INTEGER

	if p.src[p.pos] == '0' {
		p.pos++
		switch c := p.peekByte(0); c {
		case 'd', 'D':
			p.pos++
			p.digitRun(isDigit)
		case 'b', 'B':
			p.pos++
			p.digitRun(func(c byte) bool { return c == '0' || c == '1' })
		case 'o', 'O':
			p.pos++
			p.digitRun(isOctal)
		case 'x', 'X':
			p.pos++
			p.digitRun(isHexDigit)
		case '_', '0', '1', '2', '3', '4', '5', '6', '7':
			p.digitTail(isOctal)
			if isDigit(p.peekByte(0)) {
				s := p.pos
				for isDigit(p.peekByte(0)) {
					p.pos++
				}
				p.errorAt(s, p.pos, "Invalid octal digit")
			}
		case '8', '9':
			s := p.pos
			for isDigit(p.peekByte(0)) {
				p.pos++
			}
			p.errorAt(s, p.pos, "Invalid octal digit")
		default:
			typ = p.lexFraction()
		}
	} else {
		p.pos++
		p.digitTail(isDigit)
		typ = p.lexFraction()
	}
	return p.lexNumberSuffix(typ)
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

// digitRun reads digits after a radix prefix; at least one is required.
func (p *Parser) digitRun(ok func(byte) bool) {
	if !ok(p.peekByte(0)) {
		p.errorAt(p.pos, p.pos, "numeric literal without digits")
		if p.peekByte(0) == '_' {
			p.digitTail(ok)
		}
		return
	}
	p.pos++
	p.digitTail(ok)
}

// digitTail reads digits separated by single underscores.
func (p *Parser) digitTail(ok func(byte) bool) {
	for {
		c := p.peekByte(0)
		switch {
		case ok(c):
			p.pos++
		case c == '_':
			if p.peekByte(1) == '_' {
				p.errorAt(p.pos, p.pos+2, "invalid underscore placement in number")
				p.pos += 2
				continue
			}
			if !ok(p.peekByte(1)) {
				p.pos++
				p.errorAt(p.pos-1, p.pos, "trailing '_' in number")
				return
			}
			p.pos++
		default:
			return
		}
	}
}

// lexFraction reads an optional ".digits" and exponent after the integer
// part of a decimal literal.
func (p *Parser) lexFraction() TokenType {
	typ := INTEGER
	if p.peekByte(0) == '.' && isDigit(p.peekByte(1)) {
		p.pos += 2
		p.digitTail(isDigit)
		typ = FLOAT
	}
	if c := p.peekByte(0); c == 'e' || c == 'E' {
		n := p.peekByte(1)
		if isDigit(n) || ((n == '+' || n == '-') && isDigit(p.peekByte(2))) {
			p.pos += 2
			p.digitTail(isDigit)
			return FLOAT
		}
		if n == '+' || n == '-' || n == '_' || n == 0 || isSpace(n) {
			p.pos++
			if n == '+' || n == '-' {
				p.pos++
			}
			p.errorAt(p.pos, p.pos, "missing digits after exponent")
			return FLOAT
		}
	}
	return typ
}

// lexNumberSuffix applies r, i and ri suffixes unless they run into an
// identifier, as in 1if.
func (p *Parser) lexNumberSuffix(typ TokenType) TokenType {
	end := p.pos
	rational := p.matchByte('r')
	imaginary := p.matchByte('i')
	if !rational && !imaginary {
		return typ
	}
	if c := p.peekByte(0); c >= 0x80 || isAlnum(c) || c == '_' {
		p.pos = end
		return typ
	}
	switch {
	case typ == INTEGER && rational && imaginary:
		return INTEGER_RATIONAL_IMAGINARY
	case typ == INTEGER && rational:
		return INTEGER_RATIONAL
	case typ == INTEGER:
		return INTEGER_IMAGINARY
	case rational && imaginary:
		return FLOAT_RATIONAL_IMAGINARY
	case rational:
		return FLOAT_RATIONAL
	}
	return FLOAT_IMAGINARY
}
