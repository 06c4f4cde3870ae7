package parser

// keyword describes a reserved word: its token, the modifier token used when
// it follows an expression, and the lex state it leaves behind.
type keyword struct {
	typ      TokenType
	modifier TokenType
	state    LexState
}

// keywords is bucketed by length; lookups only scan words of the right size.
var keywords = [13][]struct {
	name string
	kw   keyword
}{
	2: {
		{"do", keyword{KEYWORD_DO, KEYWORD_DO, stateBEG}},
		{"if", keyword{KEYWORD_IF, KEYWORD_IF_MODIFIER, stateBEG}},
		{"in", keyword{KEYWORD_IN, KEYWORD_IN, stateBEG}},
		{"or", keyword{KEYWORD_OR, KEYWORD_OR, stateBEG}},
	},
	3: {
		{"and", keyword{KEYWORD_AND, KEYWORD_AND, stateBEG}},
		{"def", keyword{KEYWORD_DEF, KEYWORD_DEF, stateFNAME}},
		{"end", keyword{KEYWORD_END, KEYWORD_END, stateEND}},
		{"END", keyword{KEYWORD_END_UPCASE, KEYWORD_END_UPCASE, stateEND}},
		{"for", keyword{KEYWORD_FOR, KEYWORD_FOR, stateBEG}},
		{"nil", keyword{KEYWORD_NIL, KEYWORD_NIL, stateEND}},
		{"not", keyword{KEYWORD_NOT, KEYWORD_NOT, stateARG}},
	},
	4: {
		{"case", keyword{KEYWORD_CASE, KEYWORD_CASE, stateBEG}},
		{"else", keyword{KEYWORD_ELSE, KEYWORD_ELSE, stateBEG}},
		{"next", keyword{KEYWORD_NEXT, KEYWORD_NEXT, stateMID}},
		{"redo", keyword{KEYWORD_REDO, KEYWORD_REDO, stateEND}},
		{"self", keyword{KEYWORD_SELF, KEYWORD_SELF, stateEND}},
		{"then", keyword{KEYWORD_THEN, KEYWORD_THEN, stateBEG}},
		{"true", keyword{KEYWORD_TRUE, KEYWORD_TRUE, stateEND}},
		{"when", keyword{KEYWORD_WHEN, KEYWORD_WHEN, stateBEG}},
	},
	5: {
		{"alias", keyword{KEYWORD_ALIAS, KEYWORD_ALIAS, stateFNAME | stateFITEM}},
		{"begin", keyword{KEYWORD_BEGIN, KEYWORD_BEGIN, stateBEG}},
		{"BEGIN", keyword{KEYWORD_BEGIN_UPCASE, KEYWORD_BEGIN_UPCASE, stateEND}},
		{"break", keyword{KEYWORD_BREAK, KEYWORD_BREAK, stateMID}},
		{"class", keyword{KEYWORD_CLASS, KEYWORD_CLASS, stateCLASS}},
		{"elsif", keyword{KEYWORD_ELSIF, KEYWORD_ELSIF, stateBEG}},
		{"false", keyword{KEYWORD_FALSE, KEYWORD_FALSE, stateEND}},
		{"retry", keyword{KEYWORD_RETRY, KEYWORD_RETRY, stateEND}},
		{"super", keyword{KEYWORD_SUPER, KEYWORD_SUPER, stateARG}},
		{"undef", keyword{KEYWORD_UNDEF, KEYWORD_UNDEF, stateFNAME | stateFITEM}},
		{"until", keyword{KEYWORD_UNTIL, KEYWORD_UNTIL_MODIFIER, stateBEG}},
		{"while", keyword{KEYWORD_WHILE, KEYWORD_WHILE_MODIFIER, stateBEG}},
		{"yield", keyword{KEYWORD_YIELD, KEYWORD_YIELD, stateARG}},
	},
	6: {
		{"ensure", keyword{KEYWORD_ENSURE, KEYWORD_ENSURE, stateBEG}},
		{"module", keyword{KEYWORD_MODULE, KEYWORD_MODULE, stateBEG}},
		{"rescue", keyword{KEYWORD_RESCUE, KEYWORD_RESCUE_MODIFIER, stateMID}},
		{"return", keyword{KEYWORD_RETURN, KEYWORD_RETURN, stateMID}},
		{"unless", keyword{KEYWORD_UNLESS, KEYWORD_UNLESS_MODIFIER, stateBEG}},
	},
	8: {
		{"__FILE__", keyword{KEYWORD___FILE__, KEYWORD___FILE__, stateEND}},
		{"__LINE__", keyword{KEYWORD___LINE__, KEYWORD___LINE__, stateEND}},
		{"defined?", keyword{KEYWORD_DEFINED, KEYWORD_DEFINED, stateARG}},
	},
	12: {
		{"__ENCODING__", keyword{KEYWORD___ENCODING__, KEYWORD___ENCODING__, stateEND}},
	},
}

func lookupKeyword(word []byte) (keyword, bool) {
	if len(word) >= len(keywords) {
		return keyword{}, false
	}
	for _, e := range keywords[len(word)] {
		if e.name == string(word) {
			return e.kw, true
		}
	}
	return keyword{}, false
}

// isKeyword reports whether t is a reserved word token.
func (t TokenType) isKeyword() bool { return t >= KEYWORD_ALIAS && t <= KEYWORD___LINE__ }
