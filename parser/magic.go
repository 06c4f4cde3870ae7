package parser

import (
	"bytes"
	"strings"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/encoding"
)

// magicComment looks for "key: value" settings in the comment [start,end).
// Both the plain form and the emacs form "-*- key: value; ... -*-" are
// recognized. Only the encoding and frozen_string_literal keys change the
// parse; other keys are recorded.
func (p *Parser) magicComment(start, end int) {
	body := start + 1
	line, _ := lineColumn(p.lines, start)
	encodingLine := line == 1 || (line == 2 && bytes.HasPrefix(p.src, []byte("#!")))

	pairs := p.emacsPairs(body, end)
	if pairs == nil {
		if kv, ok := p.plainPair(body, end); ok {
			pairs = []MagicComment{kv}
		}
	}
	found := false
	for _, kv := range pairs {
		p.magicComments = append(p.magicComments, kv)
		key := strings.ReplaceAll(strings.ToLower(string(kv.Key.Slice(p.src))), "-", "_")
		value := string(kv.Value.Slice(p.src))
		switch key {
		case "coding", "encoding":
			found = true
			if encodingLine {
				p.switchEncoding(value, kv.Value)
			}
		case "frozen_string_literal":
			p.setFrozenStringLiteral(value, kv.Value)
		}
	}
	if !found && encodingLine {
		if loc, ok := p.codingAnywhere(body, end); ok {
			p.switchEncoding(string(loc.Slice(p.src)), loc)
		}
	}
}

func isMagicKeyChar(c byte) bool { return isAlnum(c) || c == '_' || c == '-' }

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// plainPair matches a comment that is exactly "key: value".
func (p *Parser) plainPair(i, end int) (MagicComment, bool) {
	for i < end && isBlank(p.src[i]) {
		i++
	}
	ks := i
	for i < end && isMagicKeyChar(p.src[i]) {
		i++
	}
	ke := i
	if ke == ks {
		return MagicComment{}, false
	}
	for i < end && isBlank(p.src[i]) {
		i++
	}
	if i >= end || p.src[i] != ':' {
		return MagicComment{}, false
	}
	i++
	for i < end && isBlank(p.src[i]) {
		i++
	}
	vs := i
	for i < end && !isSpace(p.src[i]) {
		i++
	}
	ve := i
	for i < end && isSpace(p.src[i]) {
		i++
	}
	if ve == vs || i != end {
		return MagicComment{}, false
	}
	return MagicComment{Key: p.locRange(ks, ke), Value: p.locRange(vs, ve)}, true
}

// emacsPairs returns the pairs of an emacs-style "-*- ... -*-" section, or
// nil when there is none.
func (p *Parser) emacsPairs(i, end int) []MagicComment {
	text := p.src[i:end]
	opening := bytes.Index(text, []byte("-*-"))
	if opening < 0 {
		return nil
	}
	closing := bytes.Index(text[opening+3:], []byte("-*-"))
	if closing < 0 {
		return nil
	}
	from := i + opening + 3
	to := from + closing
	var out []MagicComment
	for from < to {
		segEnd := from + bytes.IndexByte(p.src[from:to], ';')
		if segEnd < from {
			segEnd = to
		}
		j := from
		for j < segEnd && isSpace(p.src[j]) {
			j++
		}
		ks := j
		for j < segEnd && isMagicKeyChar(p.src[j]) {
			j++
		}
		ke := j
		for j < segEnd && isSpace(p.src[j]) {
			j++
		}
		if ke > ks && j < segEnd && p.src[j] == ':' {
			j++
			for j < segEnd && isSpace(p.src[j]) {
				j++
			}
			vs := j
			ve := segEnd
			for ve > vs && isSpace(p.src[ve-1]) {
				ve--
			}
			if ve > vs {
				out = append(out, MagicComment{Key: p.locRange(ks, ke), Value: p.locRange(vs, ve)})
			}
		}
		from = segEnd + 1
	}
	if out == nil {
		out = []MagicComment{}
	}
	return out
}

// codingAnywhere finds "coding: name" or "coding=name" anywhere in the
// comment, as vim modelines write it.
func (p *Parser) codingAnywhere(i, end int) (ast.Location, bool) {
	k := bytes.Index(p.src[i:end], []byte("coding"))
	if k < 0 {
		return ast.Location{}, false
	}
	j := i + k + len("coding")
	if j >= end || (p.src[j] != ':' && p.src[j] != '=') {
		return ast.Location{}, false
	}
	j++
	for j < end && isBlank(p.src[j]) {
		j++
	}
	vs := j
	for j < end && (isAlnum(p.src[j]) || p.src[j] == '-' || p.src[j] == '_' || p.src[j] == '.') {
		j++
	}
	if j == vs {
		return ast.Location{}, false
	}
	return p.locRange(vs, j), true
}

// switchEncoding changes the source encoding mid-parse. Names the built-in
// table does not know go to the decode callback.
func (p *Parser) switchEncoding(name string, at ast.Location) {
	enc, ok := encoding.Find(name)
	if !ok && p.encodingDecode != nil {
		if e := p.encodingDecode(name); e != nil {
			enc, ok = e, true
		}
	}
	if !ok {
		p.errorAt(at.Start, at.End, "unknown or invalid encoding in the magic comment: %s", name)
		return
	}
	p.logger.Debug("encoding switch", "parse_id", p.parseID, "from", p.encoding.Name(), "to", enc.Name())
	p.encoding = enc
	if p.encodingChanged != nil {
		p.encodingChanged(enc)
	}
}

func (p *Parser) setFrozenStringLiteral(value string, at ast.Location) {
	if p.seenContent {
		p.warnAt(at.Start, at.End, "'frozen_string_literal' is ignored after any tokens")
		return
	}
	switch strings.ToLower(value) {
	case "true":
		p.frozenStringLiteral = true
	case "false":
		p.frozenStringLiteral = false
	default:
		p.warnAt(at.Start, at.End, "invalid value for frozen_string_literal: %s", value)
	}
}
