package parser

import (
	"bytes"
	"fmt"
)

/* ===========================
   BYTE-LEVEL HELPERS
   =========================== */

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }
func isAlpha(c byte) bool    { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool    { return isAlpha(c) || isDigit(c) }

// peekByte returns the byte n positions past the cursor, or 0 past the end.
func (p *Parser) peekByte(n int) byte {
	if i := p.pos + n; i >= 0 && i < len(p.src) {
		return p.src[i]
	}
	return 0
}

func (p *Parser) byteAt(i int) byte {
	if i >= 0 && i < len(p.src) {
		return p.src[i]
	}
	return 0
}

// matchByte consumes c if it is next.
func (p *Parser) matchByte(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// identStart is the width of a character that may begin an identifier at
// i, or 0.
func (p *Parser) identStart(i int) int {
	if i >= len(p.src) {
		return 0
	}
	c := p.src[i]
	if c == '_' || isAlpha(c) {
		return 1
	}
	if c < 0x80 {
		return 0
	}
	return p.encoding.AlphaChar(p.src[i:])
}

// identChar is the width of a character that may continue an identifier at
// i, or 0.
func (p *Parser) identChar(i int) int {
	if i >= len(p.src) {
		return 0
	}
	c := p.src[i]
	if c == '_' || isAlnum(c) {
		return 1
	}
	if c < 0x80 {
		return 0
	}
	return p.encoding.AlnumChar(p.src[i:])
}

func (p *Parser) isUpperAt(i int) bool {
	if i >= len(p.src) {
		return false
	}
	c := p.src[i]
	if c < 0x80 {
		return c >= 'A' && c <= 'Z'
	}
	return p.encoding.IsUpperChar(p.src[i:])
}

// atLineStart reports whether i is the first byte of a line.
func (p *Parser) atLineStart(i int) bool { return i == 0 || p.src[i-1] == '\n' }

func (p *Parser) tok(t TokenType, start int) Token { return Token{Type: t, Start: start, End: p.pos} }

// trivia reports a token the parser never sees: comments, ignored newlines,
// embedded documents and the __END__ marker.
func (p *Parser) trivia(t Token) {
	if p.onToken != nil {
		p.onToken(t)
	}
}

/* ===========================
   DRIVER
   =========================== */

// lex advances to the next token: previous becomes the old current.
func (p *Parser) lex() {
	p.previous = p.current
	var t Token
	switch p.mode().kind {
	case modeString:
		t = p.lexString()
	case modeList:
		t = p.lexList()
	case modeRegexp:
		t = p.lexRegexp()
	case modeHeredoc:
		t = p.lexHeredoc()
	case modeEmbvar:
		p.popMode()
		t = p.lexDefault()
	default:
		t = p.lexDefault()
	}
	if t.Type != EOF && t.Type != NEWLINE {
		p.seenContent = true
	}
	p.current = t
	p.tokenCount++
	if p.onToken != nil {
		p.onToken(t)
	}
}

/* ===========================
   DEFAULT MODE
   =========================== */

// lexDefault tokenizes code. Whitespace, comments, ignored newlines and
// embedded documents are consumed in a loop; the loop keeps the command
// start flag of the token being produced.
func (p *Parser) lexDefault() Token {
	cmdState := p.commandStart
	p.commandStart = false
	spaceSeen := false

	for {
		spaceSeen = p.skipSpace() || spaceSeen
		start := p.pos
		if p.pos >= len(p.src) {
			return p.tok(EOF, start)
		}
		c := p.src[p.pos]
		p.pos++

		switch c {
		case 0, 0x04, 0x1a:
			// NUL, ^D and ^Z end the program.
			p.pos = start
			return p.tok(EOF, start)

		case '#':
			p.lexComment(start)
			continue

		case '\n', '\r':
			if c == '\r' {
				p.pos++
			}
			if t, ok := p.lexNewline(start); ok {
				return t
			}
			spaceSeen = false
			continue

		case '*':
			return p.lexStar(start, spaceSeen)

		case '!':
			if p.afterOperator() {
				p.lexState = stateARG
				if p.matchByte('@') {
					return p.tok(BANG, start)
				}
			} else {
				p.lexState = stateBEG
			}
			if p.matchByte('=') {
				return p.tok(BANG_EQUAL, start)
			}
			if p.matchByte('~') {
				return p.tok(BANG_TILDE, start)
			}
			return p.tok(BANG, start)

		case '=':
			if p.atLineStart(start) && bytes.HasPrefix(p.src[p.pos:], []byte("begin")) &&
				(p.pos+5 == len(p.src) || isSpace(p.src[p.pos+5])) {
				p.lexEmbdoc(start)
				continue
			}
			p.lexState = p.operatorState()
			switch {
			case p.matchByte('>'):
				return p.tok(EQUAL_GREATER, start)
			case p.matchByte('~'):
				return p.tok(EQUAL_TILDE, start)
			case p.matchByte('='):
				if p.matchByte('=') {
					return p.tok(EQUAL_EQUAL_EQUAL, start)
				}
				return p.tok(EQUAL_EQUAL, start)
			}
			return p.tok(EQUAL, start)

		case '<':
			if p.matchByte('<') {
				if !p.lexState.has(stateDOT|stateCLASS) && !p.stateEnd() &&
					(!p.stateArg() || p.lexState.has(stateLABELED) || spaceSeen) {
					if t, ok := p.lexHeredocStart(start); ok {
						return t
					}
				}
				if p.matchByte('=') {
					p.lexState = stateBEG
					return p.tok(LESS_LESS_EQUAL, start)
				}
				if p.afterOperator() {
					p.lexState = stateARG
				} else {
					if p.lexState.has(stateCLASS) {
						p.commandStart = true
					}
					p.lexState = stateBEG
				}
				return p.tok(LESS_LESS, start)
			}
			if p.afterOperator() {
				p.lexState = stateARG
			} else {
				if p.lexState.has(stateCLASS) {
					p.commandStart = true
				}
				p.lexState = stateBEG
			}
			if p.matchByte('=') {
				if p.matchByte('>') {
					return p.tok(LESS_EQUAL_GREATER, start)
				}
				return p.tok(LESS_EQUAL, start)
			}
			return p.tok(LESS, start)

		case '>':
			p.lexState = p.operatorState()
			if p.matchByte('>') {
				if p.matchByte('=') {
					p.lexState = stateBEG
					return p.tok(GREATER_GREATER_EQUAL, start)
				}
				return p.tok(GREATER_GREATER, start)
			}
			if p.matchByte('=') {
				return p.tok(GREATER_EQUAL, start)
			}
			return p.tok(GREATER, start)

		case '"':
			p.pushString(true, p.labelPossible(cmdState), '"')
			return p.tok(STRING_BEGIN, start)

		case '\'':
			p.pushString(false, p.labelPossible(cmdState), '\'')
			return p.tok(STRING_BEGIN, start)

		case '`':
			if p.lexState.has(stateFNAME) {
				p.lexState = stateENDFN
				return p.tok(BACKTICK, start)
			}
			if p.lexState.has(stateDOT) {
				if cmdState {
					p.lexState = stateCMDARG
				} else {
					p.lexState = stateARG
				}
				return p.tok(BACKTICK, start)
			}
			p.pushString(true, false, '`')
			return p.tok(BACKTICK, start)

		case '?':
			return p.lexQuestionMark(start, spaceSeen)

		case '&':
			if p.matchByte('&') {
				p.lexState = stateBEG
				if p.matchByte('=') {
					return p.tok(AMPERSAND_AMPERSAND_EQUAL, start)
				}
				return p.tok(AMPERSAND_AMPERSAND, start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(AMPERSAND_EQUAL, start)
			}
			if p.matchByte('.') {
				p.lexState = stateDOT
				return p.tok(AMPERSAND_DOT, start)
			}
			typ := AMPERSAND
			if p.stateSpcarg(spaceSeen) {
				if p.peekByte(0) != ':' {
					p.warnAt(start, p.pos, "`&` interpreted as argument prefix")
				}
				typ = UAMPERSAND
			} else if p.stateBeg() {
				typ = UAMPERSAND
			}
			p.lexState = p.operatorState()
			return p.tok(typ, start)

		case '|':
			if p.matchByte('|') {
				if p.matchByte('=') {
					p.lexState = stateBEG
					return p.tok(PIPE_PIPE_EQUAL, start)
				}
				if p.lexState.has(stateBEG) {
					// "||" opening empty block parameters is two pipes.
					p.pos--
					return p.tok(PIPE, start)
				}
				p.lexState = stateBEG
				return p.tok(PIPE_PIPE, start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(PIPE_EQUAL, start)
			}
			if p.afterOperator() {
				p.lexState = stateARG
			} else {
				p.lexState = stateBEG | stateLABEL
			}
			return p.tok(PIPE, start)

		case '+':
			next := p.peekByte(0)
			if p.afterOperator() {
				p.lexState = stateARG
				if p.matchByte('@') {
					return p.tok(UPLUS, start)
				}
				return p.tok(PLUS, start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(PLUS_EQUAL, start)
			}
			spcarg := p.stateSpcarg(spaceSeen)
			if spcarg {
				p.warnAt(start, p.pos, "ambiguous first argument; put parentheses or a space even after `+` operator")
			}
			if p.stateBeg() || spcarg {
				p.lexState = stateBEG
				if isDigit(next) {
					typ := p.lexNumber(p.pos)
					p.lexState = stateEND
					return p.tok(typ, start)
				}
				return p.tok(UPLUS, start)
			}
			p.lexState = stateBEG
			return p.tok(PLUS, start)

		case '-':
			if p.afterOperator() {
				p.lexState = stateARG
				if p.matchByte('@') {
					return p.tok(UMINUS, start)
				}
				return p.tok(MINUS, start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(MINUS_EQUAL, start)
			}
			if p.matchByte('>') {
				p.lexState = stateENDFN
				return p.tok(MINUS_GREATER, start)
			}
			spcarg := p.stateSpcarg(spaceSeen)
			isBeg := p.stateBeg()
			if !isBeg && spcarg {
				p.warnAt(start, p.pos, "ambiguous first argument; put parentheses or a space even after `-` operator")
			}
			if isBeg || spcarg {
				p.lexState = stateBEG
				if isDigit(p.peekByte(0)) {
					return p.tok(UMINUS_NUM, start)
				}
				return p.tok(UMINUS, start)
			}
			p.lexState = stateBEG
			return p.tok(MINUS, start)

		case '.':
			if p.matchByte('.') {
				if p.matchByte('.') {
					if !p.inContext(ctxDefaultParams, false) && p.inContext(ctxDefParams, false) {
						if p.lexState.has(stateBEG) {
							p.lexState = stateENDARG
						} else {
							p.lexState = stateBEG
						}
						return p.tok(UDOT_DOT_DOT, start)
					}
					typ := DOT_DOT_DOT
					if p.stateBeg() {
						typ = UDOT_DOT_DOT
					}
					p.lexState = stateBEG
					return p.tok(typ, start)
				}
				typ := DOT_DOT
				if p.stateBeg() {
					typ = UDOT_DOT
				}
				p.lexState = stateBEG
				return p.tok(typ, start)
			}
			p.lexState = stateDOT
			return p.tok(DOT, start)

		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			typ := p.lexNumber(start)
			p.lexState = stateEND
			return p.tok(typ, start)

		case ':':
			if p.peekByte(0) == ':' {
				p.pos++
				if p.stateBeg() || p.lexState.has(stateCLASS) || (p.stateArg() && spaceSeen) {
					p.lexState = stateBEG
					return p.tok(UCOLON_COLON, start)
				}
				p.lexState = stateDOT
				return p.tok(COLON_COLON, start)
			}
			if next := p.peekByte(0); p.stateEnd() || isSpace(next) || next == '#' || p.pos >= len(p.src) {
				p.lexState = stateBEG
				return p.tok(COLON, start)
			}
			if next := p.peekByte(0); next == '"' || next == '\'' {
				p.pushString(next == '"', false, next)
				p.pos++
			}
			p.lexState = stateFNAME
			return p.tok(SYMBOL_BEGIN, start)

		case '/':
			if p.stateBeg() {
				p.pushRegexp('/')
				return p.tok(REGEXP_BEGIN, start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(SLASH_EQUAL, start)
			}
			if p.stateSpcarg(spaceSeen) {
				p.warnAt(start, p.pos, "ambiguous first argument; put parentheses or a space even after `/` operator")
				p.pushRegexp('/')
				return p.tok(REGEXP_BEGIN, start)
			}
			p.lexState = p.operatorState()
			return p.tok(SLASH, start)

		case '^':
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(CARET_EQUAL, start)
			}
			p.lexState = p.operatorState()
			return p.tok(CARET, start)

		case '~':
			if p.afterOperator() {
				p.matchByte('@')
				p.lexState = stateARG
			} else {
				p.lexState = stateBEG
			}
			return p.tok(TILDE, start)

		case '(':
			typ := PARENTHESIS_LEFT
			if spaceSeen && (p.stateArg() || p.lexState == stateEND|stateLABEL) {
				typ = PARENTHESIS_LEFT_PARENTHESES
			}
			p.enclosureNesting++
			p.lexState = stateBEG | stateLABEL
			p.doLoopStack.push(false)
			return p.tok(typ, start)

		case ')':
			p.enclosureNesting--
			p.lexState = stateENDFN
			p.doLoopStack.pop()
			return p.tok(PARENTHESIS_RIGHT, start)

		case '[':
			p.enclosureNesting++
			if p.afterOperator() {
				if p.matchByte(']') {
					p.enclosureNesting--
					p.lexState = stateARG
					if p.matchByte('=') {
						return p.tok(BRACKET_LEFT_RIGHT_EQUAL, start)
					}
					return p.tok(BRACKET_LEFT_RIGHT, start)
				}
				p.lexState = stateARG | stateLABEL
				p.doLoopStack.push(false)
				return p.tok(BRACKET_LEFT, start)
			}
			typ := BRACKET_LEFT
			if p.stateBeg() || (p.stateArg() && (spaceSeen || p.lexState.has(stateLABELED))) {
				typ = BRACKET_LEFT_ARRAY
			}
			p.lexState = stateBEG | stateLABEL
			p.doLoopStack.push(false)
			return p.tok(typ, start)

		case ']':
			p.enclosureNesting--
			p.lexState = stateEND
			p.doLoopStack.pop()
			return p.tok(BRACKET_RIGHT, start)

		case '{':
			typ := BRACE_LEFT
			switch {
			case p.enclosureNesting == p.lambdaEnclosureNesting:
				p.commandStart = true
				p.lexState = stateBEG
				typ = LAMBDA_BEGIN
			case p.lexState.has(stateLABELED):
				p.lexState = stateBEG | stateLABEL
			case p.lexState.has(stateARG_ANY | stateEND | stateENDFN | stateENDARG):
				p.commandStart = true
				p.lexState = stateBEG
			default:
				p.lexState = stateBEG | stateLABEL
			}
			p.enclosureNesting++
			p.braceNesting++
			p.doLoopStack.push(false)
			return p.tok(typ, start)

		case '}':
			p.enclosureNesting--
			p.doLoopStack.pop()
			if p.mode().kind == modeEmbexpr && p.braceNesting == 0 {
				p.popMode()
				p.lexState = stateEND
				return p.tok(EMBEXPR_END, start)
			}
			p.braceNesting--
			p.lexState = stateEND
			return p.tok(BRACE_RIGHT, start)

		case '%':
			if p.stateBeg() {
				return p.lexPercent(start)
			}
			if p.matchByte('=') {
				p.lexState = stateBEG
				return p.tok(PERCENT_EQUAL, start)
			}
			if p.stateSpcarg(spaceSeen) || (p.lexState.has(stateFITEM) && p.peekByte(0) == 's') {
				return p.lexPercent(start)
			}
			p.lexState = p.operatorState()
			return p.tok(PERCENT, start)

		case '$':
			return p.lexGlobal(start)

		case '@':
			return p.lexInstanceVariable(start)

		case ';':
			p.lexState = stateBEG
			p.commandStart = true
			return p.tok(SEMICOLON, start)

		case ',':
			p.lexState = stateBEG | stateLABEL
			return p.tok(COMMA, start)

		default:
			p.pos = start
			if c == '_' && p.atLineStart(start) && p.lexDataEnd(start) {
				return p.tok(EOF, p.pos)
			}
			if p.identStart(start) == 0 {
				w := p.encoding.CharWidth(p.src[start:])
				if w == 0 {
					w = 1
				}
				p.pos = start + w
				p.errorAt(start, p.pos, "invalid character %s", describeBytes(p.src[start:p.pos]))
				continue
			}
			return p.lexIdentifier(start, cmdState)
		}
	}
}

func describeBytes(b []byte) string {
	if len(b) == 1 && b[0] >= 0x20 && b[0] < 0x7f {
		return fmt.Sprintf("`%c`", b[0])
	}
	return fmt.Sprintf("%q", b)
}

// skipSpace consumes blanks and backslash-newline continuations.
func (p *Parser) skipSpace() bool {
	seen := false
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			p.pos++
		case c == '\r' && p.peekByte(1) != '\n':
			p.pos++
		case c == '\\' && p.peekByte(1) == '\n':
			p.pos += 2
			p.afterLineBreak()
		case c == '\\' && p.peekByte(1) == '\r' && p.peekByte(2) == '\n':
			p.pos += 3
			p.afterLineBreak()
		default:
			return seen
		}
		seen = true
	}
	return seen
}

// afterLineBreak jumps over heredoc bodies that started on the line just
// finished.
func (p *Parser) afterLineBreak() {
	if p.heredocEnd > 0 {
		p.pos = p.heredocEnd
		p.heredocEnd = 0
	}
}

// lexNewline handles a line break ending at p.pos. It reports false when
// the newline is insignificant and was consumed as trivia.
func (p *Parser) lexNewline(start int) (Token, bool) {
	nl := p.tok(NEWLINE, start)
	p.afterLineBreak()

	ignored := (p.lexState.has(stateBEG|stateCLASS|stateFNAME|stateDOT) && !p.lexState.has(stateLABELED)) ||
		p.lexState.hasAll(stateARG|stateLABELED)
	if !ignored && p.nextLineContinuesCall() {
		ignored = true
	}
	if ignored {
		nl.Type = IGNORED_NEWLINE
		p.trivia(nl)
		return Token{}, false
	}
	p.lexState = stateBEG
	p.commandStart = true
	return nl, true
}

// nextLineContinuesCall looks past blank space and comment lines for a
// leading "." or "&." that continues a method chain.
func (p *Parser) nextLineContinuesCall() bool {
	i := p.pos
	for i < len(p.src) {
		switch c := p.src[i]; c {
		case ' ', '\t', '\f', '\v', '\r':
			i++
		case '#':
			for i < len(p.src) && p.src[i] != '\n' {
				i++
			}
			if i < len(p.src) {
				i++
			}
		case '.':
			return p.byteAt(i+1) != '.'
		case '&':
			return p.byteAt(i+1) == '.'
		default:
			return false
		}
	}
	return false
}

func (p *Parser) lexStar(start int, spaceSeen bool) Token {
	if p.matchByte('*') {
		if p.matchByte('=') {
			p.lexState = stateBEG
			return p.tok(STAR_STAR_EQUAL, start)
		}
		typ := STAR_STAR
		if p.stateSpcarg(spaceSeen) {
			p.warnAt(start, p.pos, "`**` interpreted as argument prefix")
			typ = USTAR_STAR
		} else if p.stateBeg() {
			typ = USTAR_STAR
		}
		p.lexState = p.operatorState()
		return p.tok(typ, start)
	}
	if p.matchByte('=') {
		p.lexState = stateBEG
		return p.tok(STAR_EQUAL, start)
	}
	typ := STAR
	if p.stateSpcarg(spaceSeen) {
		p.warnAt(start, p.pos, "`*` interpreted as argument prefix")
		typ = USTAR
	} else if p.stateBeg() {
		typ = USTAR
	}
	p.lexState = p.operatorState()
	return p.tok(typ, start)
}

// lexComment consumes "# ..." up to, not including, the line break.
func (p *Parser) lexComment(start int) {
	end := bytes.IndexByte(p.src[start:], '\n')
	if end < 0 {
		end = len(p.src)
	} else {
		end += start
	}
	if end > start && p.src[end-1] == '\r' {
		end--
	}
	p.pos = end
	t := Token{Type: COMMENT, Start: start, End: end}
	p.comments = append(p.comments, Comment{Type: CommentInline, Location: p.loc(t)})
	p.trivia(t)
	p.magicComment(start, end)
}

// lexEmbdoc consumes an =begin ... =end block that starts at the beginning
// of a line.
func (p *Parser) lexEmbdoc(start int) {
	lineEnd := func(i int) int {
		j := bytes.IndexByte(p.src[i:], '\n')
		if j < 0 {
			return len(p.src)
		}
		return i + j + 1
	}
	p.pos = lineEnd(start)
	p.trivia(Token{Type: EMBDOC_BEGIN, Start: start, End: p.pos})
	for p.pos < len(p.src) {
		ls := p.pos
		le := lineEnd(ls)
		line := p.src[ls:le]
		if bytes.HasPrefix(line, []byte("=end")) && (len(line) == 4 || isSpace(line[4])) {
			p.pos = le
			p.trivia(Token{Type: EMBDOC_END, Start: ls, End: le})
			p.comments = append(p.comments, Comment{Type: CommentEmbdoc, Location: p.locRange(start, le)})
			return
		}
		p.pos = le
		p.trivia(Token{Type: EMBDOC_LINE, Start: ls, End: le})
	}
	p.errorAt(start, start+6, "embedded document meets end of file")
	p.comments = append(p.comments, Comment{Type: CommentEmbdoc, Location: p.locRange(start, len(p.src))})
}

// lexDataEnd recognizes "__END__" alone on a line. Everything after it is
// data, not code.
func (p *Parser) lexDataEnd(start int) bool {
	const marker = "__END__"
	rest := p.src[start:]
	if !bytes.HasPrefix(rest, []byte(marker)) {
		return false
	}
	after := start + len(marker)
	switch {
	case after == len(p.src):
	case p.src[after] == '\n':
		after++
	case p.src[after] == '\r' && p.byteAt(after+1) == '\n':
		after += 2
	default:
		return false
	}
	p.trivia(Token{Type: DATA_END, Start: start, End: len(p.src)})
	p.dataLoc = p.locRange(after, len(p.src))
	p.pos = len(p.src)
	return true
}

func (p *Parser) lexQuestionMark(start int, spaceSeen bool) Token {
	if p.stateEnd() {
		p.lexState = stateBEG
		return p.tok(QUESTION_MARK, start)
	}
	if p.pos >= len(p.src) {
		p.errorAt(start, p.pos, "incomplete character syntax")
		p.lexState = stateBEG
		return p.tok(QUESTION_MARK, start)
	}
	c := p.src[p.pos]
	if isSpace(c) {
		p.lexState = stateBEG
		return p.tok(QUESTION_MARK, start)
	}
	if (isAlnum(c) || c == '_') && p.identChar(p.pos+1) > 0 {
		// "a ?b : c" style ternary.
		if spaceSeen {
			p.warnAt(start, p.pos, "`?` just followed by an identifier is interpreted as a conditional operator, put a space after `?`")
		}
		p.lexState = stateBEG
		return p.tok(QUESTION_MARK, start)
	}
	if c == '\\' {
		p.pos = p.escapeEnd(p.pos + 1)
	} else {
		w := p.encoding.CharWidth(p.src[p.pos:])
		if w == 0 {
			w = 1
		}
		p.pos += w
	}
	p.lexState = stateEND
	return p.tok(CHARACTER_LITERAL, start)
}

// escapeEnd returns the offset just past the escape sequence whose body
// starts at i (the byte after the backslash).
func (p *Parser) escapeEnd(i int) int {
	if i >= len(p.src) {
		return i
	}
	switch c := p.src[i]; c {
	case 'u':
		i++
		if p.byteAt(i) == '{' {
			for i < len(p.src) && p.src[i] != '}' && p.src[i] != '\n' {
				i++
			}
			if p.byteAt(i) == '}' {
				i++
			}
			return i
		}
		for n := 0; n < 4 && isHexDigit(p.byteAt(i)); n++ {
			i++
		}
		return i
	case 'x':
		i++
		for n := 0; n < 2 && isHexDigit(p.byteAt(i)); n++ {
			i++
		}
		return i
	case '0', '1', '2', '3', '4', '5', '6', '7':
		i++
		for n := 0; n < 2 && p.byteAt(i) >= '0' && p.byteAt(i) <= '7'; n++ {
			i++
		}
		return i
	case 'c':
		return p.escapeOperand(i + 1)
	case 'C', 'M':
		if p.byteAt(i+1) == '-' {
			return p.escapeOperand(i + 2)
		}
		return i + 1
	default:
		w := p.encoding.CharWidth(p.src[i:])
		if w == 0 {
			w = 1
		}
		return i + w
	}
}

func (p *Parser) escapeOperand(i int) int {
	if p.byteAt(i) == '\\' {
		return p.escapeEnd(i + 1)
	}
	if i < len(p.src) {
		return i + 1
	}
	return i
}

func (p *Parser) lexGlobal(start int) Token {
	lastState := p.lexState
	p.lexState = stateEND
	if p.pos >= len(p.src) {
		p.errorAt(start, p.pos, "`$` without identifiers is not allowed as a global variable name")
		return p.tok(GLOBAL_VARIABLE, start)
	}
	c := p.src[p.pos]
	switch c {
	case '_':
		if p.identChar(p.pos+1) > 0 {
			break
		}
		p.pos++
		return p.tok(GLOBAL_VARIABLE, start)
	case '~', '*', '$', '?', '!', '@', '/', '\\', ';', ',', '.', '=', ':', '<', '>', '"', '0':
		p.pos++
		return p.tok(GLOBAL_VARIABLE, start)
	case '-':
		p.pos++
		if w := p.identChar(p.pos); w > 0 {
			p.pos += w
		} else {
			p.errorAt(start, p.pos, "`$-` is not allowed as a global variable name")
		}
		return p.tok(GLOBAL_VARIABLE, start)
	case '&', '`', '\'', '+':
		p.pos++
		if lastState.has(stateFNAME) {
			return p.tok(GLOBAL_VARIABLE, start)
		}
		return p.tok(BACK_REFERENCE, start)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for isDigit(p.peekByte(0)) {
			p.pos++
		}
		if lastState.has(stateFNAME) {
			return p.tok(GLOBAL_VARIABLE, start)
		}
		return p.tok(NUMBERED_REFERENCE, start)
	}
	if p.identStart(p.pos) == 0 {
		if p.pos < len(p.src) && !isSpace(c) {
			p.pos++
			p.errorAt(start, p.pos, "`%s` is not allowed as a global variable name", p.src[start:p.pos])
		} else {
			p.errorAt(start, p.pos, "`$` without identifiers is not allowed as a global variable name")
		}
		return p.tok(GLOBAL_VARIABLE, start)
	}
	for w := p.identChar(p.pos); w > 0; w = p.identChar(p.pos) {
		p.pos += w
	}
	return p.tok(GLOBAL_VARIABLE, start)
}

func (p *Parser) lexInstanceVariable(start int) Token {
	typ := INSTANCE_VARIABLE
	if p.matchByte('@') {
		typ = CLASS_VARIABLE
	}
	if p.lexState.has(stateFNAME) {
		p.lexState = stateENDFN
	} else {
		p.lexState = stateEND
	}
	kind := "an instance"
	if typ == CLASS_VARIABLE {
		kind = "a class"
	}
	switch {
	case isDigit(p.peekByte(0)):
		for p.identChar(p.pos) > 0 {
			p.pos++
		}
		p.errorAt(start, p.pos, "`%s` is not allowed as %s variable name", p.src[start:p.pos], kind)
		return p.tok(typ, start)
	case p.identStart(p.pos) == 0:
		p.errorAt(start, p.pos, "`%s` without identifiers is not allowed as %s variable name", p.src[start:p.pos], kind)
		return p.tok(typ, start)
	}
	for w := p.identChar(p.pos); w > 0; w = p.identChar(p.pos) {
		p.pos += w
	}
	return p.tok(typ, start)
}

func (p *Parser) lexIdentifier(start int, cmdState bool) Token {
	lastState := p.lexState
	for w := p.identChar(p.pos); w > 0; w = p.identChar(p.pos) {
		p.pos += w
	}
	typ := IDENTIFIER
	if p.isUpperAt(start) {
		typ = CONSTANT
	}

	if c := p.peekByte(0); c == '!' || c == '?' {
		n1, n2 := p.peekByte(1), p.peekByte(2)
		if n1 != '=' || n2 == '~' || n2 == '=' || n2 == '>' {
			p.pos++
			typ = METHOD_NAME
		}
	} else if lastState.has(stateFNAME) && c == '=' {
		n1, n2 := p.peekByte(1), p.peekByte(2)
		if n1 != '~' && n1 != '>' && (n1 != '=' || n2 == '>') {
			p.pos++
			typ = METHOD_NAME
		}
	}
	word := p.src[start:p.pos]

	if p.labelPossible(cmdState) && p.peekByte(0) == ':' && p.peekByte(1) != ':' {
		p.pos++
		p.lexState = stateARG | stateLABELED
		return p.tok(LABEL, start)
	}

	if !lastState.has(stateDOT) {
		if kw, ok := lookupKeyword(word); ok {
			if lastState.has(stateFNAME) {
				p.lexState = stateENDFN
				return p.tok(kw.typ, start)
			}
			p.lexState = kw.state
			if p.lexState.has(stateBEG) {
				p.commandStart = true
			}
			if kw.typ == KEYWORD_DO {
				switch {
				case p.lambdaEnclosureNesting == p.enclosureNesting:
					return p.tok(KEYWORD_DO, start)
				case p.doLoopStack.top():
					return p.tok(KEYWORD_DO_LOOP, start)
				}
				return p.tok(KEYWORD_DO, start)
			}
			if lastState.has(stateBEG | stateLABELED | stateCLASS) {
				return p.tok(kw.typ, start)
			}
			if kw.modifier != kw.typ {
				p.lexState = stateBEG | stateLABEL
			}
			return p.tok(kw.modifier, start)
		}
	}

	switch {
	case p.lexState.has(stateBEG_ANY | stateARG_ANY | stateDOT):
		if cmdState {
			p.lexState = stateCMDARG
		} else {
			p.lexState = stateARG
		}
	case p.lexState == stateFNAME:
		p.lexState = stateENDFN
	default:
		p.lexState = stateEND
	}
	if typ == IDENTIFIER && !lastState.has(stateDOT|stateFNAME) && p.localDepth(string(word)) >= 0 {
		p.lexState = stateEND | stateLABEL
	}
	return p.tok(typ, start)
}

func (p *Parser) lexPercent(start int) Token {
	if p.pos >= len(p.src) {
		p.errorAt(start, p.pos, "unterminated quoted string meets end of file")
		return p.tok(PERCENT, start)
	}
	c := p.src[p.pos]
	if !isAlnum(c) {
		p.pos++
		p.pushString(true, false, c)
		return p.tok(STRING_BEGIN, start)
	}
	p.pos++
	if p.pos >= len(p.src) || isAlnum(p.src[p.pos]) || isSpace(p.src[p.pos]) && c != 'w' && c != 'W' && c != 'i' && c != 'I' {
		p.errorAt(start, p.pos, "unknown type of %%string")
		p.lexState = stateBEG
		return p.tok(PERCENT, start)
	}
	delim := p.src[p.pos]
	p.pos++
	switch c {
	case 'w':
		p.pushList(false, delim)
		return p.tok(PERCENT_LOWER_W, start)
	case 'W':
		p.pushList(true, delim)
		return p.tok(PERCENT_UPPER_W, start)
	case 'i':
		p.pushList(false, delim)
		return p.tok(PERCENT_LOWER_I, start)
	case 'I':
		p.pushList(true, delim)
		return p.tok(PERCENT_UPPER_I, start)
	case 'q':
		p.pushString(false, false, delim)
		return p.tok(STRING_BEGIN, start)
	case 'Q':
		p.pushString(true, false, delim)
		return p.tok(STRING_BEGIN, start)
	case 'r':
		p.pushRegexp(delim)
		return p.tok(REGEXP_BEGIN, start)
	case 's':
		p.pushString(false, false, delim)
		p.lexState = stateFNAME | stateFITEM
		return p.tok(SYMBOL_BEGIN, start)
	case 'x':
		p.pushString(true, false, delim)
		return p.tok(PERCENT_LOWER_X, start)
	}
	p.errorAt(start, p.pos, "unknown type of %%string")
	p.pushString(true, false, delim)
	return p.tok(STRING_BEGIN, start)
}
