// Package unescape decodes the escape sequences that appear inside Ruby
// string, symbol, regexp and xstring literals.
package unescape

import (
	"fmt"
	"unicode/utf8"
)

// Mode selects how much of the escape syntax is honoured.
type Mode uint8

const (
	// None copies the content verbatim.
	None Mode = iota
	// Minimal decodes only "\\" and an escaped delimiter, as in '...' and
	// %q literals.
	Minimal
	// All decodes the full double-quoted escape syntax.
	All
	// Regexp decodes only an escaped delimiter; every other escape is left
	// for the regexp engine.
	Regexp
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Minimal:
		return "minimal"
	case All:
		return "all"
	case Regexp:
		return "regexp"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Options describe the literal the content came from.
type Options struct {
	// Terminator and Incrementor are the closing and opening delimiters.
	// Zero means none.
	Terminator  byte
	Incrementor byte
	// List is set for %w and %i literals, where an escaped whitespace
	// character stands for itself.
	List bool
}

// Error is an invalid escape sequence. Offset is absolute: the base passed to
// Unescape plus the position inside the content.
type Error struct {
	Offset int
	Length int
	Msg    string
}

func (e *Error) Error() string { return fmt.Sprintf("%d: %s", e.Offset, e.Msg) }

// Unescape decodes src according to mode. base is the offset of src in the
// full source buffer and is only used to position errors. Decoding never
// stops early: a bad escape is reported and skipped.
func Unescape(src []byte, base int, mode Mode, opts Options) ([]byte, []*Error) {
	if mode == None {
		out := make([]byte, len(src))
		copy(out, src)
		return out, nil
	}
	u := &unescaper{src: src, base: base, mode: mode, opts: opts}
	u.run()
	return u.out, u.errs
}

// String is Unescape for callers that have no use for offsets.
func String(s string, mode Mode, opts Options) (string, error) {
	out, errs := Unescape([]byte(s), 0, mode, opts)
	if len(errs) > 0 {
		return string(out), errs[0]
	}
	return string(out), nil
}

type unescaper struct {
	src  []byte
	base int
	mode Mode
	opts Options
	pos  int
	out  []byte
	errs []*Error
}

func (u *unescaper) fail(start, end int, format string, args ...any) {
	u.errs = append(u.errs, &Error{Offset: u.base + start, Length: end - start, Msg: fmt.Sprintf(format, args...)})
}

func (u *unescaper) isDelimiter(c byte) bool {
	return (u.opts.Terminator != 0 && c == u.opts.Terminator) ||
		(u.opts.Incrementor != 0 && c == u.opts.Incrementor)
}

func isListSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func (u *unescaper) run() {
	u.out = make([]byte, 0, len(u.src))
	for u.pos < len(u.src) {
		c := u.src[u.pos]
		if c != '\\' || u.pos+1 >= len(u.src) {
			u.out = append(u.out, c)
			u.pos++
			continue
		}
		next := u.src[u.pos+1]
		switch u.mode {
		case Minimal:
			if next == '\\' || u.isDelimiter(next) || (u.opts.List && isListSpace(next)) {
				u.out = append(u.out, next)
			} else {
				u.out = append(u.out, '\\', next)
			}
			u.pos += 2
		case Regexp:
			if u.isDelimiter(next) && next != '\\' {
				u.out = append(u.out, next)
			} else {
				u.out = append(u.out, '\\', next)
			}
			u.pos += 2
		default:
			u.escape()
		}
	}
}

// escape decodes one backslash sequence in All mode. u.pos is at the
// backslash.
func (u *unescaper) escape() {
	start := u.pos
	u.pos++
	c := u.src[u.pos]
	switch c {
	case '\n':
		u.pos++
		if u.opts.List {
			u.out = append(u.out, '\n')
		}
		return
	case 'u':
		u.pos++
		u.unicode(start)
		return
	}
	b, ok := u.char(start, 0)
	if ok {
		u.out = append(u.out, b)
	}
}

const (
	flagControl = 1 << iota
	flagMeta
)

func applyFlags(b byte, flags int) byte {
	if flags&flagControl != 0 {
		if b == '?' {
			b = 0x7f
		} else {
			b &= 0x9f
		}
	}
	if flags&flagMeta != 0 {
		b |= 0x80
	}
	return b
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// char decodes a single-byte escape. u.pos is at the character following
// the backslash. flags accumulates \C- and \M- prefixes.
func (u *unescaper) char(start, flags int) (byte, bool) {
	if u.pos >= len(u.src) {
		u.fail(start, u.pos, "invalid escape character syntax")
		return 0, false
	}
	c := u.src[u.pos]
	u.pos++
	switch c {
	case 'a':
		return applyFlags(0x07, flags), true
	case 'b':
		return applyFlags(0x08, flags), true
	case 'e':
		return applyFlags(0x1b, flags), true
	case 'f':
		return applyFlags(0x0c, flags), true
	case 'n':
		return applyFlags('\n', flags), true
	case 'r':
		return applyFlags('\r', flags), true
	case 's':
		return applyFlags(' ', flags), true
	case 't':
		return applyFlags('\t', flags), true
	case 'v':
		return applyFlags(0x0b, flags), true
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && u.pos < len(u.src) && u.src[u.pos] >= '0' && u.src[u.pos] <= '7'; i++ {
			v = v*8 + int(u.src[u.pos]-'0')
			u.pos++
		}
		return applyFlags(byte(v), flags), true
	case 'x':
		var v byte
		n := 0
		for n < 2 && u.pos < len(u.src) {
			h, ok := hexValue(u.src[u.pos])
			if !ok {
				break
			}
			v = v*16 + h
			u.pos++
			n++
		}
		if n == 0 {
			u.fail(start, u.pos, "invalid hex escape")
			return 0, false
		}
		return applyFlags(v, flags), true
	case 'c':
		if flags&flagControl != 0 {
			u.fail(start, u.pos, "duplicate control escape")
		}
		return u.modified(start, flags|flagControl)
	case 'C':
		if u.pos < len(u.src) && u.src[u.pos] == '-' {
			u.pos++
			if flags&flagControl != 0 {
				u.fail(start, u.pos, "duplicate control escape")
			}
			return u.modified(start, flags|flagControl)
		}
		return applyFlags('C', flags), true
	case 'M':
		if u.pos < len(u.src) && u.src[u.pos] == '-' {
			u.pos++
			if flags&flagMeta != 0 {
				u.fail(start, u.pos, "duplicate meta escape")
			}
			return u.modified(start, flags|flagMeta)
		}
		return applyFlags('M', flags), true
	}
	return applyFlags(c, flags), true
}

// modified reads the operand of \c, \C- or \M-, which may itself be an
// escape.
func (u *unescaper) modified(start, flags int) (byte, bool) {
	if u.pos >= len(u.src) {
		u.fail(start, u.pos, "invalid escape character syntax")
		return 0, false
	}
	c := u.src[u.pos]
	if c == '\\' {
		u.pos++
		return u.char(start, flags)
	}
	if c >= 0x80 {
		u.fail(start, u.pos+1, "invalid escape character syntax")
		u.pos++
		return 0, false
	}
	u.pos++
	return applyFlags(c, flags), true
}

// unicode decodes \uXXXX or \u{X ...}. u.pos is just past the 'u'.
func (u *unescaper) unicode(start int) {
	if u.pos < len(u.src) && u.src[u.pos] == '{' {
		u.pos++
		for {
			for u.pos < len(u.src) && (u.src[u.pos] == ' ' || u.src[u.pos] == '\t') {
				u.pos++
			}
			if u.pos >= len(u.src) {
				u.fail(start, u.pos, "unterminated Unicode escape")
				return
			}
			if u.src[u.pos] == '}' {
				u.pos++
				return
			}
			cpStart := u.pos
			var cp rune
			n := 0
			for u.pos < len(u.src) {
				h, ok := hexValue(u.src[u.pos])
				if !ok {
					break
				}
				cp = cp*16 + rune(h)
				u.pos++
				n++
			}
			if n == 0 {
				u.fail(start, u.pos+1, "invalid Unicode escape")
				u.pos++
				continue
			}
			if n > 6 {
				u.fail(cpStart, u.pos, "invalid Unicode codepoint (too large)")
				continue
			}
			u.appendRune(cpStart, cp)
		}
	}
	var cp rune
	n := 0
	for n < 4 && u.pos < len(u.src) {
		h, ok := hexValue(u.src[u.pos])
		if !ok {
			break
		}
		cp = cp*16 + rune(h)
		u.pos++
		n++
	}
	if n < 4 {
		u.fail(start, u.pos, "invalid Unicode escape")
		return
	}
	u.appendRune(start, cp)
}

func (u *unescaper) appendRune(start int, cp rune) {
	if cp > utf8.MaxRune || (cp >= 0xd800 && cp <= 0xdfff) {
		u.fail(start, u.pos, "invalid Unicode codepoint")
		return
	}
	u.out = utf8.AppendRune(u.out, cp)
}
