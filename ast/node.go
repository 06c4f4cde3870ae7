// Package ast defines the syntax tree produced by the parser.
//
// Every node records the byte range it covers in the source buffer. Ranges
// are half-open: Start is the first byte, End is one past the last. Child
// ranges are always contained in their parent's range.
package ast

import "fmt"

// Location is a half-open byte range [Start, End) into the parsed source.
type Location struct {
	Start int
	End   int
}

// Loc builds a Location.
func Loc(start, end int) Location { return Location{Start: start, End: end} }

func (l Location) Len() int { return l.End - l.Start }
func (l Location) IsEmpty() bool { return l.Start == l.End }

// Valid reports whether the range is well formed for a buffer of size n.
func (l Location) Valid(n int) bool {
	return 0 <= l.Start && l.Start <= l.End && l.End <= n
}

// Contains reports whether o lies entirely within l.
func (l Location) Contains(o Location) bool {
	return l.Start <= o.Start && o.End <= l.End
}

// Join returns the smallest range covering both l and o.
func (l Location) Join(o Location) Location {
	out := l
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// Slice returns the bytes of src covered by l.
func (l Location) Slice(src []byte) []byte {
	if !l.Valid(len(src)) {
		return nil
	}
	return src[l.Start:l.End]
}

func (l Location) String() string { return fmt.Sprintf("(%d...%d)", l.Start, l.End) }

// NodeFlags carries per-node boolean attributes. The same bit means different
// things on different node types; see the constants below.
type NodeFlags uint16

// CallNode flags.
const (
	CallSafeNavigation NodeFlags = 1 << iota
	CallVariableCall
)

// IntegerNode flags.
const (
	IntegerBinary NodeFlags = 1 << iota
	IntegerOctal
	IntegerDecimal
	IntegerHexadecimal
)

// RangeNode flags.
const (
	RangeExcludeEnd NodeFlags = 1 << iota
)

// WhileNode and UntilNode flags.
const (
	LoopBeginModifier NodeFlags = 1 << iota
)

// StringNode flags.
const (
	StringFrozen NodeFlags = 1 << iota
)

// RegularExpressionNode and InterpolatedRegularExpressionNode flags.
const (
	RegexpIgnoreCase NodeFlags = 1 << iota
	RegexpExtended
	RegexpMultiLine
	RegexpOnce
	RegexpEUCJP
	RegexpASCII8BIT
	RegexpWindows31J
	RegexpUTF8
)

// NodeBase is embedded in every concrete node.
type NodeBase struct {
	Location Location
	Flags    NodeFlags
}

func (b *NodeBase) Base() *NodeBase { return b }
func (b *NodeBase) Loc() Location { return b.Location }
func (b *NodeBase) HasFlag(f NodeFlags) bool { return b.Flags&f != 0 }
func (b *NodeBase) SetFlag(f NodeFlags) { b.Flags |= f }
func (b *NodeBase) SetLoc(start, end int) *NodeBase { b.Location = Location{start, end}; return b }

// Node is implemented by every tree node.
type Node interface {
	Type() NodeType
	Base() *NodeBase
	Loc() Location
	// Children returns the direct child nodes in source order. Absent
	// optional children are omitted.
	Children() []Node
}

// IsNil reports whether n is nil or a typed nil pointer wrapped in the
// interface.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *StatementsNode:
		return v == nil
	case *ElseNode:
		return v == nil
	case *ArgumentsNode:
		return v == nil
	case *BlockNode:
		return v == nil
	case *ParametersNode:
		return v == nil
	case *BlockParametersNode:
		return v == nil
	case *RescueNode:
		return v == nil
	case *EnsureNode:
		return v == nil
	case *BlockParameterNode:
		return v == nil
	case *ConstantPathNode:
		return v == nil
	case *CallNode:
		return v == nil
	}
	return false
}
