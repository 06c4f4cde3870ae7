package parser

// context identifies an open syntactic construct. The context stack decides
// which tokens end the current statement list and where error recovery can
// resume.
type context uint8

const (
	ctxMain context = iota
	ctxBegin
	ctxBlockBraces
	ctxBlockKeywords
	ctxCaseWhen
	ctxCaseIn
	ctxClass
	ctxDef
	ctxDefParams
	ctxDefaultParams
	ctxElse
	ctxElsif
	ctxEmbexpr
	ctxEnsure
	ctxFor
	ctxForIndex
	ctxIf
	ctxLambdaBraces
	ctxLambdaDoEnd
	ctxModule
	ctxParens
	ctxPostexe
	ctxPredicate
	ctxPreexe
	ctxRescue
	ctxRescueElse
	ctxSclass
	ctxUnless
	ctxUntil
	ctxWhile
)

var contextNames = [...]string{
	ctxMain: "main", ctxBegin: "begin", ctxBlockBraces: "block braces", ctxBlockKeywords: "block keywords",
	ctxCaseWhen: "case when", ctxCaseIn: "case in", ctxClass: "class", ctxDef: "def", ctxDefParams: "def params",
	ctxDefaultParams: "default params", ctxElse: "else", ctxElsif: "elsif", ctxEmbexpr: "embedded expression",
	ctxEnsure: "ensure", ctxFor: "for", ctxForIndex: "for index", ctxIf: "if", ctxLambdaBraces: "lambda braces",
	ctxLambdaDoEnd: "lambda do", ctxModule: "module", ctxParens: "parentheses", ctxPostexe: "END", ctxPredicate: "predicate",
	ctxPreexe: "BEGIN", ctxRescue: "rescue", ctxRescueElse: "rescue else", ctxSclass: "singleton class",
	ctxUnless: "unless", ctxUntil: "until", ctxWhile: "while",
}

func (c context) String() string { return contextNames[c] }

// terminates reports whether t ends a statement list opened in context c.
func (c context) terminates(t TokenType) bool {
	switch c {
	case ctxMain, ctxDefParams:
		return t == EOF
	case ctxDefaultParams:
		return t == COMMA || t == PARENTHESIS_RIGHT
	case ctxPreexe, ctxPostexe, ctxBlockBraces, ctxLambdaBraces:
		return t == BRACE_RIGHT
	case ctxModule, ctxClass, ctxSclass, ctxLambdaDoEnd, ctxDef, ctxBlockKeywords:
		return t == KEYWORD_END || t == KEYWORD_RESCUE || t == KEYWORD_ENSURE
	case ctxWhile, ctxUntil, ctxElse, ctxFor, ctxEnsure:
		return t == KEYWORD_END
	case ctxForIndex:
		return t == KEYWORD_IN
	case ctxCaseWhen:
		return t == KEYWORD_WHEN || t == KEYWORD_END || t == KEYWORD_ELSE
	case ctxCaseIn:
		return t == KEYWORD_IN || t == KEYWORD_END || t == KEYWORD_ELSE
	case ctxIf, ctxElsif:
		return t == KEYWORD_ELSE || t == KEYWORD_ELSIF || t == KEYWORD_END
	case ctxUnless:
		return t == KEYWORD_ELSE || t == KEYWORD_END
	case ctxEmbexpr:
		return t == EMBEXPR_END
	case ctxParens:
		return t == PARENTHESIS_RIGHT
	case ctxBegin, ctxRescue:
		return t == KEYWORD_ENSURE || t == KEYWORD_RESCUE || t == KEYWORD_ELSE || t == KEYWORD_END
	case ctxRescueElse:
		return t == KEYWORD_ENSURE || t == KEYWORD_END
	case ctxPredicate:
		return t == KEYWORD_THEN || t == NEWLINE || t == SEMICOLON
	}
	return false
}

func (p *Parser) pushContext(c context) { p.contexts = append(p.contexts, c) }

func (p *Parser) popContext() {
	if n := len(p.contexts); n > 0 {
		p.contexts = p.contexts[:n-1]
	}
}

func (p *Parser) currentContext() context {
	if len(p.contexts) == 0 {
		return ctxMain
	}
	return p.contexts[len(p.contexts)-1]
}

// contextRecoverable reports whether any open construct, not only the
// innermost, is terminated by t.
func (p *Parser) contextRecoverable(t TokenType) bool {
	for i := len(p.contexts) - 1; i >= 0; i-- {
		if p.contexts[i].terminates(t) {
			return true
		}
	}
	return false
}

// inContext reports whether c is open anywhere on the stack, stopping at the
// first def, class or module boundary when stopAtDef is set.
func (p *Parser) inContext(c context, stopAtDef bool) bool {
	for i := len(p.contexts) - 1; i >= 0; i-- {
		x := p.contexts[i]
		if x == c {
			return true
		}
		if stopAtDef && (x == ctxDef || x == ctxClass || x == ctxModule || x == ctxSclass) {
			return false
		}
	}
	return false
}
