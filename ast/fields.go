package ast

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// FieldKind classifies a node field for generic consumers such as the
// dumper and the binary serializer.
type FieldKind uint8

const (
	FieldNode FieldKind = iota
	FieldNodeList
	FieldLocation
	FieldString
	FieldBytes
	FieldInt
	FieldStrings
	FieldBigInt
	FieldFloat
)

// Field is one named attribute of a node, in declaration order.
type Field struct {
	Name  string // snake_case
	Kind  FieldKind
	Node  Node
	Nodes []Node
	Loc   Location
	Str   string
	Bytes []byte
	Int   int
	Strs  []string
	Big   *big.Int
	Float float64
}

var (
	nodeIface  = reflect.TypeOf((*Node)(nil)).Elem()
	locType    = reflect.TypeOf(Location{})
	bigType    = reflect.TypeOf((*big.Int)(nil))
	baseType   = reflect.TypeOf(NodeBase{})
	fieldCache sync.Map // reflect.Type -> []fieldInfo
)

type fieldInfo struct {
	index int
	name  string
	kind  FieldKind
}

func infoFor(t reflect.Type) []fieldInfo {
	if v, ok := fieldCache.Load(t); ok {
		return v.([]fieldInfo)
	}
	var out []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == baseType {
			continue
		}
		fi := fieldInfo{index: i, name: Snake(f.Name)}
		switch {
		case f.Type == locType:
			fi.kind = FieldLocation
		case f.Type == bigType:
			fi.kind = FieldBigInt
		case f.Type.Kind() == reflect.Interface && f.Type == nodeIface:
			fi.kind = FieldNode
		case f.Type.Kind() == reflect.Ptr && f.Type.Implements(nodeIface):
			fi.kind = FieldNode
		case f.Type.Kind() == reflect.Slice && f.Type.Elem() == nodeIface:
			fi.kind = FieldNodeList
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() == reflect.String:
			fi.kind = FieldStrings
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() == reflect.Uint8:
			fi.kind = FieldBytes
		case f.Type.Kind() == reflect.String:
			fi.kind = FieldString
		case f.Type.Kind() == reflect.Int:
			fi.kind = FieldInt
		case f.Type.Kind() == reflect.Float64:
			fi.kind = FieldFloat
		default:
			continue
		}
		out = append(out, fi)
	}
	fieldCache.Store(t, out)
	return out
}

// Fields returns the attributes of n other than its location and flags.
func Fields(n Node) []Field {
	if IsNil(n) {
		return nil
	}
	rv := reflect.ValueOf(n).Elem()
	infos := infoFor(rv.Type())
	out := make([]Field, 0, len(infos))
	for _, fi := range infos {
		v := rv.Field(fi.index)
		f := Field{Name: fi.name, Kind: fi.kind}
		switch fi.kind {
		case FieldNode:
			if !v.IsNil() {
				if nn, ok := v.Interface().(Node); ok && !IsNil(nn) {
					f.Node = nn
				}
			}
		case FieldNodeList:
			f.Nodes = v.Interface().([]Node)
		case FieldLocation:
			f.Loc = v.Interface().(Location)
		case FieldString:
			f.Str = v.String()
		case FieldBytes:
			f.Bytes = v.Bytes()
		case FieldInt:
			f.Int = int(v.Int())
		case FieldStrings:
			f.Strs = v.Interface().([]string)
		case FieldBigInt:
			f.Big, _ = v.Interface().(*big.Int)
		case FieldFloat:
			f.Float = v.Float()
		}
		out = append(out, f)
	}
	return out
}

// SetFields writes fields back into n in the order Fields reports them.
// A node value whose type does not fit the destination field is an error.
func SetFields(n Node, fields []Field) error {
	rv := reflect.ValueOf(n).Elem()
	infos := infoFor(rv.Type())
	if len(fields) != len(infos) {
		return fmt.Errorf("%s: want %d fields, got %d", n.Type(), len(infos), len(fields))
	}
	for i, fi := range infos {
		f := fields[i]
		if f.Kind != fi.kind {
			return fmt.Errorf("%s.%s: kind mismatch", n.Type(), fi.name)
		}
		v := rv.Field(fi.index)
		switch fi.kind {
		case FieldNode:
			if IsNil(f.Node) {
				v.Set(reflect.Zero(v.Type()))
				continue
			}
			nv := reflect.ValueOf(f.Node)
			if !nv.Type().AssignableTo(v.Type()) {
				return fmt.Errorf("%s.%s: cannot hold %s", n.Type(), fi.name, f.Node.Type())
			}
			v.Set(nv)
		case FieldNodeList:
			v.Set(reflect.ValueOf(f.Nodes))
		case FieldLocation:
			v.Set(reflect.ValueOf(f.Loc))
		case FieldString:
			v.SetString(f.Str)
		case FieldBytes:
			v.SetBytes(f.Bytes)
		case FieldInt:
			v.SetInt(int64(f.Int))
		case FieldStrings:
			v.Set(reflect.ValueOf(f.Strs))
		case FieldBigInt:
			v.Set(reflect.ValueOf(f.Big))
		case FieldFloat:
			v.SetFloat(f.Float)
		}
	}
	return nil
}

// Snake converts a Go field name such as "OpeningLoc" to "opening_loc".
func Snake(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || (i+1 < len(rs) && unicode.IsLower(rs[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
