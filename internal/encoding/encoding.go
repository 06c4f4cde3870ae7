// Package encoding describes the source encodings the lexer understands.
//
// The lexer only needs to answer a few questions about the bytes at a
// position: how wide the next character is, and whether it can appear in an
// identifier or start a constant. Everything else about an encoding is left
// to the caller.
package encoding

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Encoding answers character-class questions for one source encoding. Every
// method looks at the character starting at b[0] and returns 0 when b is
// empty or does not start with a valid character.
type Encoding interface {
	Name() string
	// CharWidth is the byte length of the character at b[0].
	CharWidth(b []byte) int
	// AlphaChar is the width of the character if it may start an
	// identifier.
	AlphaChar(b []byte) int
	// AlnumChar is the width of the character if it may continue an
	// identifier.
	AlnumChar(b []byte) int
	// IsUpperChar reports whether the character starts a constant name.
	IsUpperChar(b []byte) bool
	// Multibyte reports whether characters can span more than one byte.
	Multibyte() bool
}

func asciiAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func asciiDigit(c byte) bool { return c >= '0' && c <= '9' }
func asciiUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// ASCII is US-ASCII. Bytes above 0x7f are invalid.
var ASCII Encoding = asciiEncoding{}

type asciiEncoding struct{}

func (asciiEncoding) Name() string    { return "US-ASCII" }
func (asciiEncoding) Multibyte() bool { return false }

func (asciiEncoding) CharWidth(b []byte) int {
	if len(b) == 0 || b[0] >= 0x80 {
		return 0
	}
	return 1
}

func (asciiEncoding) AlphaChar(b []byte) int {
	if len(b) > 0 && asciiAlpha(b[0]) {
		return 1
	}
	return 0
}

func (asciiEncoding) AlnumChar(b []byte) int {
	if len(b) > 0 && (asciiAlpha(b[0]) || asciiDigit(b[0])) {
		return 1
	}
	return 0
}

func (asciiEncoding) IsUpperChar(b []byte) bool { return len(b) > 0 && asciiUpper(b[0]) }

// Binary is ASCII-8BIT: every byte is a character, only ASCII letters are
// letters.
var Binary Encoding = binaryEncoding{}

type binaryEncoding struct{ asciiEncoding }

func (binaryEncoding) Name() string { return "ASCII-8BIT" }

func (binaryEncoding) CharWidth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return 1
}

// UTF8 is the default source encoding.
var UTF8 Encoding = utf8Encoding{}

type utf8Encoding struct{}

func (utf8Encoding) Name() string    { return "UTF-8" }
func (utf8Encoding) Multibyte() bool { return true }

func decodeUTF8(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	if b[0] < utf8.RuneSelf {
		return rune(b[0]), 1
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return r, 0
	}
	return r, n
}

func (utf8Encoding) CharWidth(b []byte) int {
	_, n := decodeUTF8(b)
	return n
}

func (utf8Encoding) AlphaChar(b []byte) int {
	_, n := decodeUTF8(b)
	if n == 0 {
		return 0
	}
	if n == 1 {
		if asciiAlpha(b[0]) {
			return 1
		}
		return 0
	}
	// Any non-ASCII character may appear in an identifier.
	return n
}

func (e utf8Encoding) AlnumChar(b []byte) int {
	if len(b) > 0 && asciiDigit(b[0]) {
		return 1
	}
	return e.AlphaChar(b)
}

func (utf8Encoding) IsUpperChar(b []byte) bool {
	r, n := decodeUTF8(b)
	if n == 0 {
		return false
	}
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

// Normalize folds an encoding name for lookup: case-insensitive, with '_'
// and '-' treated alike.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
