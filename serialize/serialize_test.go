package serialize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/version"
	"github.com/ruby/ruby-sub004/parser"
)

func Test_Serialize_Empty_Program_Layout(t *testing.T) {
	got := Serialize(parser.Parse(nil))
	want := []byte{'Y', 'A', 'R', 'P', version.Major, version.Minor, version.Patch}
	want = append(want, 5, 'U', 'T', 'F', '-', '8')
	want = append(want,
		0, // comments
		0, // magic comments
		0, // no data section
		0, // diagnostics
		byte(ast.ProgramNodeType), 0, 0, 0,
		0, // locals
		byte(ast.StatementsNodeType), 0, 0, 0,
		0, // body
		0, // terminator
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bytes (-want +got):\n%s", diff)
	}
}

func Test_Serialize_Is_Deterministic(t *testing.T) {
	src := []byte("class A\n  def m(x) = x * 2\nend\nA.new.m(21)\n")
	a := Serialize(parser.Parse(src))
	b := Serialize(parser.Parse(src))
	if !bytes.Equal(a, b) {
		t.Fatalf("two serializations of the same source differ")
	}
	if a[len(a)-1] != 0 {
		t.Fatalf("missing trailing NUL")
	}
}

func Test_Serialize_Round_Trip(t *testing.T) {
	inputs := []string{
		"a = 1\nb = a + 2.5\n",
		"# frozen_string_literal: true\n# note\nputs \"hi #{name}\", :sym, 10r, 3i\n",
		"x = 123456789012345678901234567890\ny = -7\nz = 1e400\n",
		"case v\nin [Integer => a, *rest] then a\nin {k:, **nil}\nend\n",
		"def foo(a, b = 1, *c, d:, **e, &f)\n  yield a rescue nil\nend\n",
		"/(?<year>\\d+)/ =~ s\n%w[a b] + %i[c]\n<<~EOS\n  body\nEOS\n",
		"p 1\n__END__\ntrailing data\n",
		"def (\n", // diagnostics and missing nodes
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			res := parser.Parse([]byte(src))
			doc, err := Deserialize(Serialize(res))
			if err != nil {
				t.Fatalf("deserialize: %v", err)
			}
			if doc.Encoding != res.Encoding.Name() {
				t.Fatalf("encoding %q, want %q", doc.Encoding, res.Encoding.Name())
			}
			if diff := cmp.Diff(ast.Dump(res.Program), ast.Dump(doc.Program)); diff != "" {
				t.Fatalf("tree (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(res.Comments, doc.Comments, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("comments (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(res.MagicComments, doc.MagicComments, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("magic comments (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(res.Diagnostics, doc.Diagnostics, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("diagnostics (-want +got):\n%s", diff)
			}
			if doc.DataLoc != res.DataLoc {
				t.Fatalf("data loc %s, want %s", doc.DataLoc, res.DataLoc)
			}
		})
	}
}

func Test_Deserialize_Rejects_Bad_Input(t *testing.T) {
	good := Serialize(parser.Parse([]byte("foo(1, 2)\n")))

	cases := map[string]struct {
		in   []byte
		want error
	}{
		"empty":     {nil, ErrFormat},
		"magic":     {append([]byte("PRAY"), good[4:]...), ErrFormat},
		"truncated": {good[:len(good)-3], ErrFormat},
		"trailing":  {append(append([]byte(nil), good...), 9), ErrFormat},
		"version": {
			append([]byte{'Y', 'A', 'R', 'P', version.Major + 1, 0, 0}, good[7:]...),
			ErrVersion,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Deserialize(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func Test_Deserialize_Unknown_Node_Type(t *testing.T) {
	b := Serialize(parser.Parse(nil))
	// header, "UTF-8", then four empty lists
	const i = 7 + 1 + 5 + 4
	if b[i] != byte(ast.ProgramNodeType) {
		t.Fatalf("layout changed: byte %d is %d", i, b[i])
	}
	b[i] = 0xfe
	if _, err := Deserialize(b); !errors.Is(err, ErrFormat) {
		t.Fatalf("want ErrFormat, got %v", err)
	}
}
