package encoding

import "testing"

func Test_Find_BuiltinNames(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UTF-8", "UTF-8"},
		{"utf-8", "UTF-8"},
		{"us-ascii", "US-ASCII"},
		{"BINARY", "ASCII-8BIT"},
		{"Shift_JIS", "Shift_JIS"},
		{"EUC-JP", "EUC-JP"},
		{"iso-8859-1", "ISO-8859-1"},
		{"Windows-31J", "Windows-31J"},
		{"cp932", "Windows-31J"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, ok := Find(tc.in)
			if !ok {
				t.Fatalf("Find(%q) failed", tc.in)
			}
			if e.Name() != tc.want {
				t.Fatalf("Find(%q).Name() = %q, want %q", tc.in, e.Name(), tc.want)
			}
		})
	}
}

func Test_Find_Unknown(t *testing.T) {
	if _, ok := Find("no-such-encoding"); ok {
		t.Fatalf("expected lookup to fail")
	}
}

func Test_UTF8_Widths(t *testing.T) {
	if w := UTF8.CharWidth([]byte("é!")); w != 2 {
		t.Fatalf("width(é) = %d", w)
	}
	if w := UTF8.AlphaChar([]byte("日本")); w != 3 {
		t.Fatalf("alpha(日) = %d", w)
	}
	if w := UTF8.CharWidth([]byte{0xff, 'a'}); w != 0 {
		t.Fatalf("invalid byte width = %d", w)
	}
	if UTF8.AlnumChar([]byte("7")) != 1 || UTF8.AlphaChar([]byte("7")) != 0 {
		t.Fatalf("digit classification wrong")
	}
	if !UTF8.IsUpperChar([]byte("Ärger")) {
		t.Fatalf("Ä should be upper")
	}
	if UTF8.IsUpperChar([]byte("ärger")) {
		t.Fatalf("ä should not be upper")
	}
}

func Test_ASCII_RejectsHighBytes(t *testing.T) {
	if ASCII.CharWidth([]byte{0xc3, 0xa9}) != 0 {
		t.Fatalf("ascii accepted high byte")
	}
	if Binary.CharWidth([]byte{0xc3}) != 1 {
		t.Fatalf("binary should accept every byte")
	}
}

func Test_ShiftJIS_LeadBytes(t *testing.T) {
	// 0x93FA is 日 in Shift_JIS.
	if w := ShiftJIS.CharWidth([]byte{0x93, 0xfa}); w != 2 {
		t.Fatalf("width = %d, want 2", w)
	}
	if w := ShiftJIS.CharWidth([]byte{0xb1}); w != 1 {
		t.Fatalf("half-width kana width = %d, want 1", w)
	}
	if w := ShiftJIS.CharWidth([]byte{0x93}); w != 0 {
		t.Fatalf("truncated lead byte width = %d, want 0", w)
	}
}

func Test_EUCJP_ThreeByte(t *testing.T) {
	if w := EUCJP.CharWidth([]byte{0xc6, 0xfc}); w != 2 {
		t.Fatalf("width = %d, want 2", w)
	}
}

func Test_SingleByte_Letters(t *testing.T) {
	e, _ := Find("ISO-8859-1")
	// 0xC9 is É, 0xD7 is the multiplication sign.
	if e.AlphaChar([]byte{0xc9}) != 1 || !e.IsUpperChar([]byte{0xc9}) {
		t.Fatalf("É not classified as upper letter")
	}
	if e.AlphaChar([]byte{0xd7}) != 0 {
		t.Fatalf("× classified as letter")
	}
}
