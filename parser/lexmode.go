package parser

type lexModeKind uint8

const (
	modeDefault lexModeKind = iota
	modeEmbexpr
	modeEmbvar
	modeHeredoc
	modeList
	modeRegexp
	modeString
)

func (k lexModeKind) String() string {
	return [...]string{"default", "embexpr", "embvar", "heredoc", "list", "regexp", "string"}[k]
}

type heredocQuote uint8

const (
	quoteNone heredocQuote = iota
	quoteSingle
	quoteDouble
	quoteBacktick
)

type heredocIndent uint8

const (
	indentNone heredocIndent = iota
	indentDash
	indentTilde
)

// lexMode is one entry of the lex-mode stack. Which fields are meaningful
// depends on kind.
type lexMode struct {
	kind lexModeKind

	// string, list and regexp literals
	interpolation bool
	labelAllowed  bool
	incrementor   byte
	terminator    byte
	nesting       int

	// heredocs
	identStart, identEnd int
	quote                heredocQuote
	indent               heredocIndent
	nextStart            int

	// embedded expressions: the brace nesting of the enclosing code
	savedBraceNesting int
}

func (p *Parser) mode() *lexMode { return &p.modes[len(p.modes)-1] }

func (p *Parser) pushMode(m lexMode) {
	if m.kind == modeEmbexpr {
		m.savedBraceNesting = p.braceNesting
		p.braceNesting = 0
	}
	p.modes = append(p.modes, m)
}

// popMode never removes the bottom default mode.
func (p *Parser) popMode() {
	if len(p.modes) <= 1 {
		return
	}
	m := p.modes[len(p.modes)-1]
	p.modes = p.modes[:len(p.modes)-1]
	if m.kind == modeEmbexpr {
		p.braceNesting = m.savedBraceNesting
	}
}

// terminatorFor returns the closing delimiter of an opening one and whether
// the pair nests.
func terminatorFor(open byte) (incrementor, terminator byte) {
	switch open {
	case '(':
		return '(', ')'
	case '[':
		return '[', ']'
	case '{':
		return '{', '}'
	case '<':
		return '<', '>'
	}
	return 0, open
}

func (p *Parser) pushString(interp, label bool, open byte) {
	inc, term := terminatorFor(open)
	p.pushMode(lexMode{kind: modeString, interpolation: interp, labelAllowed: label, incrementor: inc, terminator: term})
}

func (p *Parser) pushList(interp bool, open byte) {
	inc, term := terminatorFor(open)
	p.pushMode(lexMode{kind: modeList, interpolation: interp, incrementor: inc, terminator: term})
}

func (p *Parser) pushRegexp(open byte) {
	inc, term := terminatorFor(open)
	p.pushMode(lexMode{kind: modeRegexp, interpolation: true, incrementor: inc, terminator: term})
}
