package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump renders the tree rooted at n as an indented outline, one attribute per
// line. Locations are shown as (start...end).
//
//	ProgramNode (0...5)
//	  locals: ["x"]
//	  statements:
//	    StatementsNode (0...5)
//	      body:
//	        - LocalVariableWriteNode (0...5)
//	          name: "x"
func Dump(n Node) string {
	var b strings.Builder
	Fdump(&b, n)
	return b.String()
}

// Fdump writes the outline produced by Dump to w.
func Fdump(w io.Writer, n Node) {
	d := dumper{w: w}
	d.node(n, 0)
}

type dumper struct {
	w io.Writer
}

func (d *dumper) line(indent int, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func (d *dumper) node(n Node, indent int) {
	if IsNil(n) {
		d.line(indent, "nil")
		return
	}
	head := fmt.Sprintf("%s %s", n.Type(), n.Loc())
	if fl := FlagNames(n); len(fl) > 0 {
		head += " [" + strings.Join(fl, ",") + "]"
	}
	d.line(indent, "%s", head)
	d.fields(n, indent+1)
}

func (d *dumper) fields(n Node, indent int) {
	for _, f := range Fields(n) {
		switch f.Kind {
		case FieldNode:
			if f.Node == nil {
				d.line(indent, "%s: nil", f.Name)
				continue
			}
			d.line(indent, "%s:", f.Name)
			d.node(f.Node, indent+1)
		case FieldNodeList:
			if len(f.Nodes) == 0 {
				d.line(indent, "%s: []", f.Name)
				continue
			}
			d.line(indent, "%s:", f.Name)
			for _, c := range f.Nodes {
				if IsNil(c) {
					d.line(indent+1, "- nil")
					continue
				}
				head := fmt.Sprintf("- %s %s", c.Type(), c.Loc())
				if fl := FlagNames(c); len(fl) > 0 {
					head += " [" + strings.Join(fl, ",") + "]"
				}
				d.line(indent+1, "%s", head)
				d.fields(c, indent+2)
			}
		case FieldLocation:
			if f.Loc.IsEmpty() && f.Loc.Start == 0 {
				d.line(indent, "%s: nil", f.Name)
			} else {
				d.line(indent, "%s: %s", f.Name, f.Loc)
			}
		default:
			d.line(indent, "%s: %s", f.Name, ScalarString(f))
		}
	}
}

// ScalarString formats a non-node field value.
func ScalarString(f Field) string {
	switch f.Kind {
	case FieldString:
		return strconv.Quote(f.Str)
	case FieldBytes:
		return strconv.Quote(string(f.Bytes))
	case FieldInt:
		return strconv.Itoa(f.Int)
	case FieldStrings:
		qs := make([]string, len(f.Strs))
		for i, s := range f.Strs {
			qs[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(qs, ", ") + "]"
	case FieldBigInt:
		if f.Big == nil {
			return "nil"
		}
		return f.Big.String()
	case FieldFloat:
		return strconv.FormatFloat(f.Float, 'g', -1, 64)
	case FieldLocation:
		return f.Loc.String()
	}
	return ""
}

// FlagNames lists the flags set on n using names that make sense for its
// type.
func FlagNames(n Node) []string {
	fl := n.Base().Flags
	if fl == 0 {
		return nil
	}
	var table []string
	switch n.Type() {
	case CallNodeType:
		table = []string{"safe_navigation", "variable_call"}
	case IntegerNodeType:
		table = []string{"binary", "octal", "decimal", "hexadecimal"}
	case RangeNodeType:
		table = []string{"exclude_end"}
	case WhileNodeType, UntilNodeType:
		table = []string{"begin_modifier"}
	case StringNodeType:
		table = []string{"frozen"}
	case RegularExpressionNodeType, InterpolatedRegularExpressionNodeType:
		table = []string{"ignore_case", "extended", "multi_line", "once", "euc_jp", "ascii_8bit", "windows_31j", "utf_8"}
	}
	var out []string
	for i, name := range table {
		if fl&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}
