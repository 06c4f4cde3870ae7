package parser

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/ruby/ruby-sub004/ast"
)

func (p *Parser) parseNumber() ast.Node {
	tok := p.current
	p.lex()
	return p.numberNode(tok, tok.Start, false)
}

// parseNegativeNumber parses a minus sign glued to a numeric literal. The
// sign folds into the value, except that "-2 ** 2" is "-(2 ** 2)".
func (p *Parser) parseNegativeNumber() ast.Node {
	op := p.current
	p.lex()
	tok := p.current
	if !isNumber(tok.Type) {
		recv := p.parseExpression(bpUminus, "expected a receiver for unary `-`")
		return p.unaryCall(op, "-@", recv)
	}
	p.lex()
	if p.match(STAR_STAR) {
		power := p.parseInfixLoop(p.numberNode(tok, tok.Start, false), bpExponent)
		return p.unaryCall(op, "-@", power)
	}
	return p.numberNode(tok, op.Start, true)
}

func isNumber(t TokenType) bool {
	switch t {
	case INTEGER, INTEGER_RATIONAL, INTEGER_IMAGINARY, INTEGER_RATIONAL_IMAGINARY,
		FLOAT, FLOAT_RATIONAL, FLOAT_IMAGINARY, FLOAT_RATIONAL_IMAGINARY:
		return true
	}
	return false
}

// numberNode builds the node for a numeric token starting at start, which
// lies before the token when a minus sign was folded in. Rational and
// imaginary suffixes wrap the plain number.
func (p *Parser) numberNode(tok Token, start int, negative bool) ast.Node {
	text := p.text(tok)
	rational, imaginary := false, false
	switch tok.Type {
	case INTEGER_RATIONAL, FLOAT_RATIONAL:
		rational = true
	case INTEGER_IMAGINARY, FLOAT_IMAGINARY:
		imaginary = true
	case INTEGER_RATIONAL_IMAGINARY, FLOAT_RATIONAL_IMAGINARY:
		rational, imaginary = true, true
	}
	digitsEnd := tok.End
	if imaginary {
		digitsEnd--
	}
	if rational {
		digitsEnd--
	}
	digits := text[:digitsEnd-tok.Start]

	var n ast.Node
	switch tok.Type {
	case FLOAT, FLOAT_RATIONAL, FLOAT_IMAGINARY, FLOAT_RATIONAL_IMAGINARY:
		n = p.floatNode(tok, digits, negative)
	default:
		n = integerNode(digits, negative)
	}
	setLoc(n, start, digitsEnd)

	if rational {
		r := &ast.RationalNode{Numeric: n}
		setLoc(r, start, digitsEnd+1)
		n = r
	}
	if imaginary {
		i := &ast.ImaginaryNode{Numeric: n}
		setLoc(i, start, tok.End)
		n = i
	}
	return n
}

// integerNode decodes an integer literal with its radix prefix. Malformed
// digits were reported by the lexer and decode as zero.
func integerNode(digits string, negative bool) *ast.IntegerNode {
	s := strings.ReplaceAll(digits, "_", "")
	base, flag := 10, ast.IntegerDecimal
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, flag, s = 16, ast.IntegerHexadecimal, s[2:]
	case strings.HasPrefix(lower, "0b"):
		base, flag, s = 2, ast.IntegerBinary, s[2:]
	case strings.HasPrefix(lower, "0o"):
		base, flag, s = 8, ast.IntegerOctal, s[2:]
	case strings.HasPrefix(lower, "0d"):
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base, flag, s = 8, ast.IntegerOctal, s[1:]
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		v = new(big.Int)
	}
	if negative {
		v.Neg(v)
	}
	n := &ast.IntegerNode{Value: v}
	n.SetFlag(flag)
	return n
}

func (p *Parser) floatNode(tok Token, digits string, negative bool) *ast.FloatNode {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, "_", ""), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.warnAt(tok.Start, tok.End, "Float %s out of range", digits)
		} else {
			v = 0
		}
	}
	if negative {
		v = -v
	}
	return &ast.FloatNode{Value: v}
}
