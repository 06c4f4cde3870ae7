// Package serialize writes a parse result into a compact binary form and
// reads it back.
//
// Layout:
//
//	"YARP" major minor patch
//	encoding name
//	comments, magic comments, data location
//	diagnostics
//	program node
//	0x00
//
// Integers are varints (signed values zig-zag encoded). Strings and byte
// slices are a length followed by the bytes. A node is its type byte, its
// location as start and length, its flags, then its fields in declaration
// order. A nil child is written as a single 0 byte, which no node type uses.
package serialize

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/version"
	"github.com/ruby/ruby-sub004/parser"
)

// Magic opens every serialized tree.
const Magic = "YARP"

// Serialize encodes res. The output depends only on res, so equal inputs
// produce equal bytes.
func Serialize(res *parser.Result) []byte {
	w := &writer{buf: make([]byte, 0, 64+len(res.Source)*2)}
	w.buf = append(w.buf, Magic...)
	w.buf = append(w.buf, version.Major, version.Minor, version.Patch)

	name := ""
	if res.Encoding != nil {
		name = res.Encoding.Name()
	}
	w.str(name)

	w.uint(len(res.Comments))
	for _, c := range res.Comments {
		w.buf = append(w.buf, byte(c.Type))
		w.loc(c.Location)
	}
	w.uint(len(res.MagicComments))
	for _, m := range res.MagicComments {
		w.loc(m.Key)
		w.loc(m.Value)
	}
	w.optLoc(res.DataLoc)

	w.uint(len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		w.str(d.Message)
		w.loc(d.Location)
		w.buf = append(w.buf, byte(d.Severity))
	}

	w.node(res.Program)
	w.buf = append(w.buf, 0)
	return w.buf
}

type writer struct {
	buf []byte
}

func (w *writer) uint(n int) { w.buf = binary.AppendUvarint(w.buf, uint64(n)) }

func (w *writer) int(n int) { w.buf = binary.AppendVarint(w.buf, int64(n)) }

func (w *writer) str(s string) {
	w.uint(len(s))
	w.buf = append(w.buf, s...)
}

func (w *writer) bytes(b []byte) {
	w.uint(len(b))
	w.buf = append(w.buf, b...)
}

func (w *writer) loc(l ast.Location) {
	w.uint(l.Start)
	w.uint(l.Len())
}

func (w *writer) optLoc(l ast.Location) {
	if l == (ast.Location{}) {
		w.buf = append(w.buf, 0)
		return
	}
	w.buf = append(w.buf, 1)
	w.loc(l)
}

func (w *writer) big(v *big.Int) {
	switch {
	case v == nil:
		w.buf = append(w.buf, 0)
		return
	case v.Sign() < 0:
		w.buf = append(w.buf, 2)
	default:
		w.buf = append(w.buf, 1)
	}
	w.bytes(v.Bytes())
}

func (w *writer) node(n ast.Node) {
	if ast.IsNil(n) {
		w.buf = append(w.buf, 0)
		return
	}
	w.buf = append(w.buf, byte(n.Type()))
	w.loc(n.Loc())
	w.uint(int(n.Base().Flags))

	for _, f := range ast.Fields(n) {
		switch f.Kind {
		case ast.FieldNode:
			w.node(f.Node)
		case ast.FieldNodeList:
			w.uint(len(f.Nodes))
			for _, c := range f.Nodes {
				w.node(c)
			}
		case ast.FieldLocation:
			w.optLoc(f.Loc)
		case ast.FieldString:
			w.str(f.Str)
		case ast.FieldBytes:
			w.bytes(f.Bytes)
		case ast.FieldInt:
			w.int(f.Int)
		case ast.FieldStrings:
			w.uint(len(f.Strs))
			for _, s := range f.Strs {
				w.str(s)
			}
		case ast.FieldBigInt:
			w.big(f.Big)
		case ast.FieldFloat:
			w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(f.Float))
		}
	}
}
