package unescape

import "testing"

func Test_Unescape_All(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"newline", `a\nb`, "a\nb"},
		{"tab_space", `\t\s`, "\t "},
		{"octal", `\101\0`, "A\x00"},
		{"hex", `\x41\x7`, "A\x07"},
		{"unicode4", `\u00e9`, "é"},
		{"unicode_braces", `\u{48 49}`, "HI"},
		{"control", `\cA\C-b`, "\x01\x02"},
		{"meta", `\M-a`, "\xe1"},
		{"meta_control", `\M-\C-a`, "\x81"},
		{"del", `\c?`, "\x7f"},
		{"unknown_is_literal", `\q\"`, `q"`},
		{"line_continuation", "a\\\nb", "ab"},
		{"trailing_backslash", `a\`, `a\`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := Unescape([]byte(tc.in), 0, All, Options{Terminator: '"'})
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if string(got) != tc.want {
				t.Fatalf("Unescape(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func Test_Unescape_Minimal(t *testing.T) {
	got, errs := Unescape([]byte(`a\'b\\c\nd`), 0, Minimal, Options{Terminator: '\''})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if string(got) != `a'b\c\nd` {
		t.Fatalf("got %q", got)
	}
}

func Test_Unescape_MinimalNestedDelimiters(t *testing.T) {
	got, _ := Unescape([]byte(`\(x\)`), 0, Minimal, Options{Terminator: ')', Incrementor: '('})
	if string(got) != "(x)" {
		t.Fatalf("got %q", got)
	}
}

func Test_Unescape_ListWhitespace(t *testing.T) {
	got, _ := Unescape([]byte(`a\ b`), 0, Minimal, Options{Terminator: ']', List: true})
	if string(got) != "a b" {
		t.Fatalf("got %q", got)
	}
}

func Test_Unescape_RegexpKeepsEscapes(t *testing.T) {
	got, _ := Unescape([]byte(`a\/\d\\`), 0, Regexp, Options{Terminator: '/'})
	if string(got) != `a/\d\\` {
		t.Fatalf("got %q", got)
	}
}

func Test_Unescape_None(t *testing.T) {
	in := []byte(`\n`)
	got, _ := Unescape(in, 0, None, Options{})
	if string(got) != `\n` {
		t.Fatalf("got %q", got)
	}
	got[0] = 'x'
	if in[0] != '\\' {
		t.Fatalf("None must copy its input")
	}
}

func Test_Unescape_ErrorsCarryAbsoluteOffsets(t *testing.T) {
	_, errs := Unescape([]byte(`ab\xZZ`), 10, All, Options{})
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if errs[0].Offset != 12 {
		t.Fatalf("offset = %d, want 12", errs[0].Offset)
	}
	if errs[0].Msg != "invalid hex escape" {
		t.Fatalf("msg = %q", errs[0].Msg)
	}
}

func Test_Unescape_BadUnicode(t *testing.T) {
	_, errs := Unescape([]byte(`\u12`), 0, All, Options{})
	if len(errs) == 0 {
		t.Fatalf("expected an error for short \\u escape")
	}
	_, errs = Unescape([]byte(`\u{110000}`), 0, All, Options{})
	if len(errs) == 0 {
		t.Fatalf("expected an error for out-of-range codepoint")
	}
}
