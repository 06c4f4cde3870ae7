package serialize

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/version"
	"github.com/ruby/ruby-sub004/parser"
)

// ErrFormat is wrapped by every error Deserialize returns for malformed
// input.
var ErrFormat = errors.New("serialize: malformed input")

// ErrVersion reports a tree written by an incompatible format version.
var ErrVersion = errors.New("serialize: unsupported format version")

// Document is a decoded serialization. Locations refer to the source the
// tree was parsed from, which is not part of the encoding.
type Document struct {
	Major, Minor, Patch byte
	Encoding            string
	Comments            []parser.Comment
	MagicComments       []parser.MagicComment
	DataLoc             ast.Location
	Diagnostics         []parser.Diagnostic
	Program             *ast.ProgramNode
}

// Deserialize decodes the output of Serialize.
func Deserialize(b []byte) (*Document, error) {
	r := &reader{buf: b}
	if len(b) < len(Magic)+3 || string(b[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: missing %q header", ErrFormat, Magic)
	}
	r.pos = len(Magic)
	doc := &Document{Major: r.byte(), Minor: r.byte(), Patch: r.byte()}
	if doc.Major != version.Major || doc.Minor != version.Minor {
		return nil, fmt.Errorf("%w: %d.%d.%d", ErrVersion, doc.Major, doc.Minor, doc.Patch)
	}
	doc.Encoding = r.str()

	for i, n := 0, r.count(); i < n; i++ {
		c := parser.Comment{Type: parser.CommentType(r.byte())}
		c.Location = r.loc()
		doc.Comments = append(doc.Comments, c)
	}
	for i, n := 0, r.count(); i < n; i++ {
		m := parser.MagicComment{Key: r.loc()}
		m.Value = r.loc()
		doc.MagicComments = append(doc.MagicComments, m)
	}
	doc.DataLoc = r.optLoc()

	for i, n := 0, r.count(); i < n; i++ {
		d := parser.Diagnostic{Message: r.str()}
		d.Location = r.loc()
		d.Severity = parser.Severity(r.byte())
		doc.Diagnostics = append(doc.Diagnostics, d)
	}

	root := r.node(0)
	if r.err != nil {
		return nil, r.err
	}
	prog, ok := root.(*ast.ProgramNode)
	if !ok {
		return nil, fmt.Errorf("%w: root is not a program node", ErrFormat)
	}
	doc.Program = prog
	if r.byte() != 0 || r.err != nil {
		return nil, fmt.Errorf("%w: missing terminator", ErrFormat)
	}
	if r.pos != len(b) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrFormat, len(b)-r.pos)
	}
	return doc, nil
}

// maxDepth bounds recursion on hostile input.
const maxDepth = 10000

// reader records the first error and returns zero values afterwards, so
// decoding code reads straight through.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w at byte %d: %s", ErrFormat, r.pos, fmt.Sprintf(format, args...))
	}
}

func (r *reader) byte() byte {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.buf) {
		r.fail("unexpected end of input")
		return 0
	}
	c := r.buf[r.pos]
	r.pos++
	return c
}

func (r *reader) uint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		r.fail("bad varint")
		return 0
	}
	r.pos += n
	return v
}

func (r *reader) int() int {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.buf[r.pos:])
	if n <= 0 {
		r.fail("bad varint")
		return 0
	}
	r.pos += n
	return int(v)
}

// count reads a length and checks it against the bytes left, since every
// element takes at least one byte.
func (r *reader) count() int {
	n := r.uint()
	if n > uint64(len(r.buf)-r.pos) {
		r.fail("length %d exceeds input", n)
		return 0
	}
	return int(n)
}

func (r *reader) raw() []byte {
	n := r.count()
	if r.err != nil {
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) str() string { return string(r.raw()) }

func (r *reader) loc() ast.Location {
	start := int(r.uint())
	length := int(r.uint())
	return ast.Location{Start: start, End: start + length}
}

func (r *reader) optLoc() ast.Location {
	switch r.byte() {
	case 0:
		return ast.Location{}
	case 1:
		return r.loc()
	}
	r.fail("bad location tag")
	return ast.Location{}
}

func (r *reader) big() *big.Int {
	tag := r.byte()
	if tag == 0 {
		return nil
	}
	v := new(big.Int).SetBytes(r.raw())
	switch tag {
	case 1:
	case 2:
		v.Neg(v)
	default:
		r.fail("bad integer tag %d", tag)
	}
	return v
}

func (r *reader) float() float64 {
	if r.err != nil {
		return 0
	}
	if len(r.buf)-r.pos < 8 {
		r.fail("short float")
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v
}

func (r *reader) node(depth int) ast.Node {
	if depth > maxDepth {
		r.fail("nesting too deep")
		return nil
	}
	t := ast.NodeType(r.byte())
	if r.err != nil || t == ast.UnknownNodeType {
		return nil
	}
	n := ast.NewNode(t)
	if n == nil {
		r.fail("unknown node type %d", t)
		return nil
	}
	n.Base().Location = r.loc()
	n.Base().Flags = ast.NodeFlags(r.uint())

	fields := ast.Fields(n)
	for i := range fields {
		f := &fields[i]
		switch f.Kind {
		case ast.FieldNode:
			f.Node = r.node(depth + 1)
		case ast.FieldNodeList:
			f.Nodes = nil
			for j, c := 0, r.count(); j < c; j++ {
				f.Nodes = append(f.Nodes, r.node(depth+1))
			}
		case ast.FieldLocation:
			f.Loc = r.optLoc()
		case ast.FieldString:
			f.Str = r.str()
		case ast.FieldBytes:
			f.Bytes = append([]byte(nil), r.raw()...)
		case ast.FieldInt:
			f.Int = r.int()
		case ast.FieldStrings:
			f.Strs = nil
			for j, c := 0, r.count(); j < c; j++ {
				f.Strs = append(f.Strs, r.str())
			}
		case ast.FieldBigInt:
			f.Big = r.big()
		case ast.FieldFloat:
			f.Float = r.float()
		}
		if r.err != nil {
			return nil
		}
	}
	if err := ast.SetFields(n, fields); err != nil {
		r.fail("%v", err)
		return nil
	}
	return n
}
