package parser

// bindingPower orders operators from loosest to tightest. The values leave
// a gap of one so that left-associative operators can bind their right
// operand one step tighter.
type bindingPower uint8

const (
	bpUnset          bindingPower = 0
	bpStatement      bindingPower = 2
	bpModifier       bindingPower = 4  // if unless until while
	bpModifierRescue bindingPower = 6  // rescue
	bpComposition    bindingPower = 8  // and or
	bpNot            bindingPower = 10 // not
	bpMatch          bindingPower = 12 // => in
	bpDefined        bindingPower = 14 // defined?
	bpAssignment     bindingPower = 16 // = += -= *= /= ...
	bpTernary        bindingPower = 18 // ?:
	bpRange          bindingPower = 20 // .. ...
	bpLogicalOr      bindingPower = 22 // ||
	bpLogicalAnd     bindingPower = 24 // &&
	bpEquality       bindingPower = 26 // <=> == === != =~ !~
	bpComparison     bindingPower = 28 // > >= < <=
	bpBitwiseOr      bindingPower = 30 // | ^
	bpBitwiseAnd     bindingPower = 32 // &
	bpShift          bindingPower = 34 // << >>
	bpTerm           bindingPower = 36 // + -
	bpFactor         bindingPower = 38 // * / %
	bpUminus         bindingPower = 40 // -@
	bpExponent       bindingPower = 42 // **
	bpUnary          bindingPower = 44 // ! ~ +@
	bpIndex          bindingPower = 46 // [] []=
	bpCall           bindingPower = 48 // :: . &.
	bpMax            bindingPower = 50
)

type bindingPowers struct {
	left     bindingPower
	right    bindingPower
	binary   bool
	nonassoc bool
}

func leftAssoc(p bindingPower) bindingPowers { return bindingPowers{p, p + 1, true, false} }
func rightAssoc(p bindingPower) bindingPowers { return bindingPowers{p, p, true, false} }
func nonAssoc(p bindingPower) bindingPowers { return bindingPowers{p, p + 1, true, true} }
func unaryOp(p bindingPower) bindingPowers { return bindingPowers{p, p, false, false} }

var assignmentPowers = bindingPowers{bpUnary, bpAssignment, true, false}

// bindingPowerTable is indexed by token type. Tokens without an entry have
// bpUnset on both sides and never continue an expression.
var bindingPowerTable = [tokenTypeCount]bindingPowers{
	KEYWORD_RESCUE_MODIFIER: {bpModifierRescue, bpComposition, true, false},

	KEYWORD_IF_MODIFIER:     leftAssoc(bpModifier),
	KEYWORD_UNLESS_MODIFIER: leftAssoc(bpModifier),
	KEYWORD_UNTIL_MODIFIER:  leftAssoc(bpModifier),
	KEYWORD_WHILE_MODIFIER:  leftAssoc(bpModifier),

	KEYWORD_AND: leftAssoc(bpComposition),
	KEYWORD_OR:  leftAssoc(bpComposition),

	EQUAL_GREATER: nonAssoc(bpMatch),
	KEYWORD_IN:    nonAssoc(bpMatch),

	AMPERSAND_AMPERSAND_EQUAL: assignmentPowers,
	AMPERSAND_EQUAL:           assignmentPowers,
	CARET_EQUAL:               assignmentPowers,
	EQUAL:                     assignmentPowers,
	GREATER_GREATER_EQUAL:     assignmentPowers,
	LESS_LESS_EQUAL:           assignmentPowers,
	MINUS_EQUAL:               assignmentPowers,
	PERCENT_EQUAL:             assignmentPowers,
	PIPE_EQUAL:                assignmentPowers,
	PIPE_PIPE_EQUAL:           assignmentPowers,
	PLUS_EQUAL:                assignmentPowers,
	SLASH_EQUAL:               assignmentPowers,
	STAR_EQUAL:                assignmentPowers,
	STAR_STAR_EQUAL:           assignmentPowers,

	QUESTION_MARK: rightAssoc(bpTernary),

	DOT_DOT:      nonAssoc(bpRange),
	DOT_DOT_DOT:  nonAssoc(bpRange),
	UDOT_DOT:     unaryOp(bpLogicalOr),
	UDOT_DOT_DOT: unaryOp(bpLogicalOr),

	PIPE_PIPE:           leftAssoc(bpLogicalOr),
	AMPERSAND_AMPERSAND: leftAssoc(bpLogicalAnd),

	BANG_EQUAL:         nonAssoc(bpEquality),
	BANG_TILDE:         nonAssoc(bpEquality),
	EQUAL_EQUAL:        nonAssoc(bpEquality),
	EQUAL_EQUAL_EQUAL:  nonAssoc(bpEquality),
	EQUAL_TILDE:        nonAssoc(bpEquality),
	LESS_EQUAL_GREATER: nonAssoc(bpEquality),

	GREATER:       leftAssoc(bpComparison),
	GREATER_EQUAL: leftAssoc(bpComparison),
	LESS:          leftAssoc(bpComparison),
	LESS_EQUAL:    leftAssoc(bpComparison),

	CARET:     leftAssoc(bpBitwiseOr),
	PIPE:      leftAssoc(bpBitwiseOr),
	AMPERSAND: leftAssoc(bpBitwiseAnd),

	GREATER_GREATER: leftAssoc(bpShift),
	LESS_LESS:       leftAssoc(bpShift),

	MINUS: leftAssoc(bpTerm),
	PLUS:  leftAssoc(bpTerm),

	PERCENT: leftAssoc(bpFactor),
	SLASH:   leftAssoc(bpFactor),
	STAR:    leftAssoc(bpFactor),
	USTAR:   unaryOp(bpFactor),

	UMINUS:     unaryOp(bpUminus),
	UMINUS_NUM: {bpUminus, bpMax, false, false},

	STAR_STAR:  rightAssoc(bpExponent),
	USTAR_STAR: unaryOp(bpUnary),

	BANG:  unaryOp(bpUnary),
	TILDE: unaryOp(bpUnary),
	UPLUS: unaryOp(bpUnary),

	KEYWORD_DEFINED: unaryOp(bpDefined),
	KEYWORD_NOT:     unaryOp(bpNot),

	BRACKET_LEFT: leftAssoc(bpIndex),

	COLON_COLON:   rightAssoc(bpCall),
	DOT:           rightAssoc(bpCall),
	AMPERSAND_DOT: rightAssoc(bpCall),
}

// lbp returns the binding powers of t.
func lbp(t TokenType) bindingPowers { return bindingPowerTable[t] }

// tokenBeginsExpression reports whether t can start an expression, which
// decides whether an identifier followed by t is a command call.
func tokenBeginsExpression(t TokenType) bool {
	switch t {
	case EQUAL_GREATER, KEYWORD_IN:
		return false
	case BRACE_RIGHT, BRACKET_RIGHT, COLON, COMMA, EMBEXPR_END, EOF, LAMBDA_BEGIN,
		KEYWORD_DO, KEYWORD_DO_LOOP, KEYWORD_END, KEYWORD_ELSE, KEYWORD_ELSIF, KEYWORD_ENSURE,
		KEYWORD_THEN, KEYWORD_RESCUE, KEYWORD_WHEN, NEWLINE, PARENTHESIS_RIGHT, SEMICOLON,
		STRING_END, HEREDOC_END, LABEL_END, REGEXP_END, MISSING, NOT_PROVIDED:
		return false
	case UAMPERSAND:
		return false
	}
	bp := lbp(t)
	return bp.left == bpUnset || !bp.binary
}
