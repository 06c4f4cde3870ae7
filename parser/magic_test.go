package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/encoding"
)

func magicPairs(res *Result) [][2]string {
	var out [][2]string
	for _, m := range res.MagicComments {
		out = append(out, [2]string{string(m.Key.Slice(res.Source)), string(m.Value.Slice(res.Source))})
	}
	return out
}

func Test_Magic_Frozen_String_Literal(t *testing.T) {
	res := mustParse(t, "# frozen_string_literal: true\n'a'\n")
	s := res.Program.Statements.Body[0]
	if !s.Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("want frozen string\n%s", ast.Dump(s))
	}
	if diff := cmp.Diff([][2]string{{"frozen_string_literal", "true"}}, magicPairs(res)); diff != "" {
		t.Fatalf("magic comments (-want +got):\n%s", diff)
	}
}

func Test_Magic_Emacs_Style(t *testing.T) {
	res := mustParse(t, "# -*- frozen-string-literal: true; mode: ruby -*-\n'a'\n")
	if !res.Program.Statements.Body[0].Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("emacs style key should freeze strings")
	}
	want := [][2]string{{"frozen-string-literal", "true"}, {"mode", "ruby"}}
	if diff := cmp.Diff(want, magicPairs(res)); diff != "" {
		t.Fatalf("magic comments (-want +got):\n%s", diff)
	}
}

func Test_Magic_Frozen_After_Code_Is_Ignored(t *testing.T) {
	res := Parse([]byte("x = 1\n# frozen_string_literal: true\n'a'\n"))
	if len(res.Warnings()) != 1 || !strings.Contains(res.Warnings()[0].Message, "ignored after any tokens") {
		t.Fatalf("want one warning, got %v", res.Diagnostics)
	}
	if res.Program.Statements.Body[1].Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("late magic comment must not freeze strings")
	}
}

func Test_Magic_Frozen_Invalid_Value(t *testing.T) {
	res := Parse([]byte("# frozen_string_literal: maybe\n"))
	if len(res.Warnings()) != 1 || !strings.Contains(res.Warnings()[0].Message, "invalid value for frozen_string_literal") {
		t.Fatalf("want one warning, got %v", res.Diagnostics)
	}
}

func Test_Magic_Encoding_Switch(t *testing.T) {
	var changed []string
	p := New([]byte("# encoding: Shift_JIS\nx = 1\n"))
	p.OnEncodingChanged(func(e encoding.Encoding) { changed = append(changed, e.Name()) })
	res := p.Parse()
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	if res.Encoding.Name() != "Shift_JIS" {
		t.Fatalf("encoding = %s", res.Encoding.Name())
	}
	if diff := cmp.Diff([]string{"Shift_JIS"}, changed); diff != "" {
		t.Fatalf("callback (-want +got):\n%s", diff)
	}
}

func Test_Magic_Encoding_Vim_Style(t *testing.T) {
	res := mustParse(t, "# vim: set fileencoding=us-ascii :\n1\n")
	if res.Encoding.Name() != "US-ASCII" {
		t.Fatalf("encoding = %s", res.Encoding.Name())
	}
}

func Test_Magic_Encoding_Only_On_First_Lines(t *testing.T) {
	res := mustParse(t, "x = 1\n\n# encoding: ascii-8bit\n")
	if res.Encoding.Name() != "UTF-8" {
		t.Fatalf("encoding comment on line 3 must be ignored, got %s", res.Encoding.Name())
	}
	res = mustParse(t, "#!/usr/bin/env ruby\n# encoding: ascii-8bit\n")
	if res.Encoding.Name() != "ASCII-8BIT" {
		t.Fatalf("encoding after a shebang applies, got %s", res.Encoding.Name())
	}
}

func Test_Magic_Unknown_Encoding(t *testing.T) {
	mustFailParseContains(t, "# encoding: klingon\n", "unknown or invalid encoding in the magic comment: klingon")

	// A decode callback may supply the encoding instead.
	var asked string
	p := New([]byte("# encoding: klingon\n"))
	p.OnEncodingDecode(func(name string) encoding.Encoding {
		asked = name
		return encoding.ASCII
	})
	res := p.Parse()
	if !res.OK() || asked != "klingon" {
		t.Fatalf("decode callback not used: asked=%q errors=%v", asked, res.Errors())
	}
	if res.Encoding != encoding.ASCII {
		t.Fatalf("encoding = %s", res.Encoding.Name())
	}
}

func Test_Magic_With_Encoding_Option(t *testing.T) {
	res := Parse([]byte("1"), WithEncoding(encoding.Binary))
	if res.Encoding.Name() != "ASCII-8BIT" {
		t.Fatalf("encoding = %s", res.Encoding.Name())
	}
}
