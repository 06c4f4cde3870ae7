package encoding

import (
	"bytes"
	"sync"
	"unicode"
	"unicode/utf8"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// singleByte is an 8-bit encoding whose upper half is described by an
// x/text charmap.
type singleByte struct {
	name string
	cm   *charmap.Charmap
}

func (e *singleByte) Name() string    { return e.name }
func (e *singleByte) Multibyte() bool { return false }

func (e *singleByte) CharWidth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return 1
}

func (e *singleByte) rune(c byte) rune {
	if c < 0x80 {
		return rune(c)
	}
	return e.cm.DecodeByte(c)
}

func (e *singleByte) AlphaChar(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if b[0] < 0x80 {
		if asciiAlpha(b[0]) {
			return 1
		}
		return 0
	}
	if unicode.IsLetter(e.rune(b[0])) {
		return 1
	}
	return 0
}

func (e *singleByte) AlnumChar(b []byte) int {
	if len(b) > 0 && asciiDigit(b[0]) {
		return 1
	}
	return e.AlphaChar(b)
}

func (e *singleByte) IsUpperChar(b []byte) bool {
	return len(b) > 0 && unicode.IsUpper(e.rune(b[0]))
}

// multiByte is a CJK double-byte encoding. Widths come from the lead byte;
// the x/text decoder rejects sequences that do not map to a character.
type multiByte struct {
	name  string
	enc   xenc.Encoding
	width func(b []byte) int

	mu  sync.Mutex
	dec *xenc.Decoder
}

func (e *multiByte) Name() string    { return e.name }
func (e *multiByte) Multibyte() bool { return true }

func (e *multiByte) valid(b []byte) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dec == nil {
		e.dec = e.enc.NewDecoder()
	}
	out, err := e.dec.Bytes(b)
	return err == nil && len(out) > 0 && !bytes.ContainsRune(out, utf8.RuneError)
}

func (e *multiByte) CharWidth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if b[0] < 0x80 {
		return 1
	}
	n := e.width(b)
	if n == 0 || n > len(b) || !e.valid(b[:n]) {
		return 0
	}
	return n
}

func (e *multiByte) AlphaChar(b []byte) int {
	if len(b) > 0 && b[0] < 0x80 {
		if asciiAlpha(b[0]) {
			return 1
		}
		return 0
	}
	if n := e.CharWidth(b); n > 0 {
		return n
	}
	return 0
}

func (e *multiByte) AlnumChar(b []byte) int {
	if len(b) > 0 && asciiDigit(b[0]) {
		return 1
	}
	return e.AlphaChar(b)
}

func (e *multiByte) IsUpperChar(b []byte) bool { return len(b) > 0 && asciiUpper(b[0]) }

func inRange(c, lo, hi byte) bool { return c >= lo && c <= hi }

func shiftJISWidth(b []byte) int {
	c := b[0]
	switch {
	case inRange(c, 0xa1, 0xdf):
		return 1
	case inRange(c, 0x81, 0x9f), inRange(c, 0xe0, 0xfc):
		if len(b) > 1 && inRange(b[1], 0x40, 0xfc) && b[1] != 0x7f {
			return 2
		}
	}
	return 0
}

func eucJPWidth(b []byte) int {
	c := b[0]
	switch {
	case c == 0x8e:
		if len(b) > 1 && inRange(b[1], 0xa1, 0xdf) {
			return 2
		}
	case c == 0x8f:
		if len(b) > 2 && inRange(b[1], 0xa1, 0xfe) && inRange(b[2], 0xa1, 0xfe) {
			return 3
		}
	case inRange(c, 0xa1, 0xfe):
		if len(b) > 1 && inRange(b[1], 0xa1, 0xfe) {
			return 2
		}
	}
	return 0
}

func big5Width(b []byte) int {
	if inRange(b[0], 0x81, 0xfe) && len(b) > 1 && (inRange(b[1], 0x40, 0x7e) || inRange(b[1], 0xa1, 0xfe)) {
		return 2
	}
	return 0
}

func gbkWidth(b []byte) int {
	if inRange(b[0], 0x81, 0xfe) && len(b) > 1 && inRange(b[1], 0x40, 0xfe) && b[1] != 0x7f {
		return 2
	}
	return 0
}

func eucKRWidth(b []byte) int {
	if inRange(b[0], 0xa1, 0xfe) && len(b) > 1 && inRange(b[1], 0xa1, 0xfe) {
		return 2
	}
	return 0
}

// Built-in encodings beyond the three defined in encoding.go.
var (
	ShiftJIS   Encoding = &multiByte{name: "Shift_JIS", enc: japanese.ShiftJIS, width: shiftJISWidth}
	Windows31J Encoding = &multiByte{name: "Windows-31J", enc: japanese.ShiftJIS, width: shiftJISWidth}
	EUCJP      Encoding = &multiByte{name: "EUC-JP", enc: japanese.EUCJP, width: eucJPWidth}
	Big5       Encoding = &multiByte{name: "Big5", enc: traditionalchinese.Big5, width: big5Width}
	GBK        Encoding = &multiByte{name: "GBK", enc: simplifiedchinese.GBK, width: gbkWidth}
	EUCKR      Encoding = &multiByte{name: "EUC-KR", enc: korean.EUCKR, width: eucKRWidth}
)

func sb(name string, cm *charmap.Charmap) Encoding { return &singleByte{name: name, cm: cm} }

// table maps normalized names (see Normalize) to encodings. Names follow
// Ruby's spelling; aliases point at the same value.
var table = map[string]Encoding{
	"ascii":        ASCII,
	"us-ascii":     ASCII,
	"ascii-8bit":   Binary,
	"binary":       Binary,
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"utf-8-mac":    UTF8,
	"utf-8-hfs":    UTF8,
	"shift-jis":    ShiftJIS,
	"sjis":         Windows31J,
	"windows-31j":  Windows31J,
	"cp932":        Windows31J,
	"cswindows31j": Windows31J,
	"euc-jp":       EUCJP,
	"eucjp":        EUCJP,
	"big5":         Big5,
	"gbk":          GBK,
	"cp936":        GBK,
	"euc-kr":       EUCKR,
	"euckr":        EUCKR,
	"iso-8859-1":   sb("ISO-8859-1", charmap.ISO8859_1),
	"iso-8859-2":   sb("ISO-8859-2", charmap.ISO8859_2),
	"iso-8859-3":   sb("ISO-8859-3", charmap.ISO8859_3),
	"iso-8859-4":   sb("ISO-8859-4", charmap.ISO8859_4),
	"iso-8859-5":   sb("ISO-8859-5", charmap.ISO8859_5),
	"iso-8859-6":   sb("ISO-8859-6", charmap.ISO8859_6),
	"iso-8859-7":   sb("ISO-8859-7", charmap.ISO8859_7),
	"iso-8859-8":   sb("ISO-8859-8", charmap.ISO8859_8),
	"iso-8859-9":   sb("ISO-8859-9", charmap.ISO8859_9),
	"iso-8859-10":  sb("ISO-8859-10", charmap.ISO8859_10),
	"iso-8859-13":  sb("ISO-8859-13", charmap.ISO8859_13),
	"iso-8859-14":  sb("ISO-8859-14", charmap.ISO8859_14),
	"iso-8859-15":  sb("ISO-8859-15", charmap.ISO8859_15),
	"iso-8859-16":  sb("ISO-8859-16", charmap.ISO8859_16),
	"koi8-r":       sb("KOI8-R", charmap.KOI8R),
	"koi8-u":       sb("KOI8-U", charmap.KOI8U),
	"windows-1250": sb("Windows-1250", charmap.Windows1250),
	"windows-1251": sb("Windows-1251", charmap.Windows1251),
	"windows-1252": sb("Windows-1252", charmap.Windows1252),
	"windows-1253": sb("Windows-1253", charmap.Windows1253),
	"windows-1254": sb("Windows-1254", charmap.Windows1254),
	"windows-1257": sb("Windows-1257", charmap.Windows1257),
	"cp1251":       sb("Windows-1251", charmap.Windows1251),
	"cp1252":       sb("Windows-1252", charmap.Windows1252),
	"ibm437":       sb("IBM437", charmap.CodePage437),
	"cp437":        sb("IBM437", charmap.CodePage437),
	"ibm866":       sb("IBM866", charmap.CodePage866),
	"cp866":        sb("IBM866", charmap.CodePage866),
	"macroman":     sb("macRoman", charmap.Macintosh),
}

// Find returns the encoding registered under name. Names unknown to the
// built-in table are looked up in the IANA registry; only single-byte
// charsets found there are accepted.
func Find(name string) (Encoding, bool) {
	key := Normalize(name)
	if e, ok := table[key]; ok {
		return e, true
	}
	ie, err := ianaindex.IANA.Encoding(name)
	if err != nil || ie == nil {
		return nil, false
	}
	cm, ok := ie.(*charmap.Charmap)
	if !ok {
		return nil, false
	}
	canon, err := ianaindex.IANA.Name(ie)
	if err != nil {
		canon = name
	}
	return sb(canon, cm), true
}

// Names lists the keys of the built-in table.
func Names() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}
