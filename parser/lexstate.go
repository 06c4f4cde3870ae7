package parser

import "strings"

// LexState is the bitset describing the grammatical position the lexer is
// in. It decides how ambiguous characters such as '-', '*', '&', '::', '<<',
// '?' and '%' are tokenized.
type LexState uint16

const (
	stateBEG     LexState = 1 << iota // ignore newline, +/- is a sign
	stateEND                          // newline significant, +/- is an operator
	stateENDARG                       // after a parenthesized argument list
	stateENDFN                        // after a method name or ')'
	stateARG                          // after a method name, before arguments
	stateCMDARG                       // like ARG, for the first command argument
	stateMID                          // after return/break/next
	stateFNAME                        // expecting a method name (def, alias, undef)
	stateDOT                          // after '.' or '::', expecting a method name
	stateCLASS                        // after class, '<<' is a singleton class
	stateLABEL                        // a label is allowed
	stateLABELED                      // just after a label
	stateFITEM                        // symbol literal as method name (alias, undef)

	stateNONE    LexState = 0
	stateBEG_ANY          = stateBEG | stateMID | stateCLASS
	stateARG_ANY          = stateARG | stateCMDARG
	stateEND_ANY          = stateEND | stateENDARG | stateENDFN
)

var stateNames = []string{"BEG", "END", "ENDARG", "ENDFN", "ARG", "CMDARG", "MID", "FNAME", "DOT", "CLASS", "LABEL", "LABELED", "FITEM"}

func (s LexState) String() string {
	if s == stateNONE {
		return "NONE"
	}
	var parts []string
	for i, n := range stateNames {
		if s&(1<<uint(i)) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

func (s LexState) has(f LexState) bool { return s&f != 0 }
func (s LexState) hasAll(f LexState) bool { return s&f == f }

// Predicates over the parser's current lex state.

func (p *Parser) stateBeg() bool {
	return p.lexState.has(stateBEG_ANY) || p.lexState.hasAll(stateARG|stateLABELED)
}

func (p *Parser) stateEnd() bool { return p.lexState.has(stateEND_ANY) }
func (p *Parser) stateArg() bool { return p.lexState.has(stateARG_ANY) }
func (p *Parser) afterOperator() bool { return p.lexState.has(stateFNAME | stateDOT) }

// stateSpcarg is true in argument position when a space precedes the
// current character and none follows it: "foo -1" as opposed to "foo - 1".
func (p *Parser) stateSpcarg(spaceSeen bool) bool {
	return p.stateArg() && spaceSeen && !isSpace(p.peekByte(0))
}

func (p *Parser) labelPossible(cmdState bool) bool {
	return (p.lexState.has(stateLABEL|stateENDFN) && !cmdState) || p.stateArg()
}

// operatorState is the state after an operator token: ARG when the operator
// is being used as a method name, BEG otherwise.
func (p *Parser) operatorState() LexState {
	if p.afterOperator() {
		return stateARG
	}
	return stateBEG
}

// bitStack is a small stack of booleans, used for the do-loop and
// accepts-block flags.
type bitStack []bool

func (b *bitStack) push(v bool) { *b = append(*b, v) }

func (b *bitStack) pop() {
	if n := len(*b); n > 0 {
		*b = (*b)[:n-1]
	}
}

func (b bitStack) top() bool {
	if len(b) == 0 {
		return false
	}
	return b[len(b)-1]
}
