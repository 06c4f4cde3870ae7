// core.go
//
// ROLE: Shared infrastructure for the LSP server: transport helpers, text and
// UTF-16 position math, and diagnostics publishing.
//
// What lives here
//   • Transport helpers for framed stdio (Content-Length) and send/notify
//     wrappers used by handlers.
//   • UTF-16 column math and byte↔position conversions consistent with the
//     protocol (positions are UTF-16 code units).
//   • Mapping parser diagnostics to LSP diagnostics and publishing them.
//
// What does NOT live here
//   • No feature handlers and no parsing; see features.go and analysis.go.

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ruby/ruby-sub004/parser"
)

////////////////////////////////////////////////////////////////////////////////
// Transport (stdio framing) + send/notify
////////////////////////////////////////////////////////////////////////////////

func readMsg(r *bufio.Reader) ([]byte, error) {
	contentLen := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if i := strings.IndexByte(line, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(line[:i]))
			val := strings.TrimSpace(line[i+1:])
			if key == "content-length" {
				n, err := strconv.Atoi(val)
				if err != nil {
					return nil, fmt.Errorf("bad Content-Length %q: %w", val, err)
				}
				contentLen = n
			}
		}
	}
	if contentLen < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	buf := make([]byte, contentLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf, nil
}

func writeMsg(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "Content-Length: %d\r\n\r\n", len(body))
	b.Write(body)
	_, err = w.Write(b.Bytes())
	return err
}

func (s *server) write(v any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if err := writeMsg(s.out, v); err != nil {
		s.log.Error("write failed", "err", err)
	}
}

func (s *server) sendResponse(id json.RawMessage, result any, respErr *ResponseError) {
	if respErr == nil && result == nil {
		s.write(Response{JSONRPC: "2.0", ID: id, Result: json.RawMessage("null")})
		return
	}
	s.write(Response{JSONRPC: "2.0", ID: id, Result: result, Error: respErr})
}

func (s *server) notify(method string, params any) {
	s.write(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

////////////////////////////////////////////////////////////////////////////////
// Text & UTF-16 helpers
////////////////////////////////////////////////////////////////////////////////

// lineOffsets returns the byte offset of each line start. "\r\n" counts as
// one newline; offsets point at the byte after '\n'.
func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

func toU16(r rune) int {
	if r < 0x10000 {
		return 1
	}
	return 2
}

func posToOffset(lines []int, p Position, text string) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(lines) {
		return len(text)
	}
	i := lines[p.Line]
	need := p.Character
	for i < len(text) && need > 0 {
		r, sz := utf8.DecodeRuneInString(text[i:])
		if r == '\r' {
			i += sz
			continue
		}
		if r == '\n' {
			break
		}
		need -= toU16(r)
		i += sz
	}
	return i
}

func offsetToPos(lines []int, off int, text string) Position {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	i, j := 0, len(lines)
	for i+1 < j {
		m := (i + j) / 2
		if lines[m] <= off {
			i = m
		} else {
			j = m
		}
	}
	u16 := 0
	for k := lines[i]; k < off && k < len(text); {
		r, sz := utf8.DecodeRuneInString(text[k:])
		if r == '\r' {
			k += sz
			continue
		}
		if r == '\n' {
			break
		}
		u16 += toU16(r)
		k += sz
	}
	return Position{Line: i, Character: u16}
}

func makeRange(lines []int, start, end int, text string) Range {
	return Range{
		Start: offsetToPos(lines, start, text),
		End:   offsetToPos(lines, end, text),
	}
}

////////////////////////////////////////////////////////////////////////////////
// Diagnostics
////////////////////////////////////////////////////////////////////////////////

func (s *server) lspDiagnostics(doc *docState) []Diagnostic {
	out := []Diagnostic{}
	if doc.res == nil {
		return out
	}
	for _, d := range doc.res.Diagnostics {
		if len(out) >= s.maxDiagnostics {
			break
		}
		sev := 1
		if d.Severity == parser.SeverityWarning {
			sev = 2
		}
		out = append(out, Diagnostic{
			Range:    makeRange(doc.lines, d.Location.Start, d.Location.End, doc.text),
			Severity: sev,
			Source:   "rbparse",
			Message:  d.Message,
		})
	}
	return out
}

func (s *server) publishDiagnostics(doc *docState) {
	v := doc.version
	s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     &v,
		Diagnostics: s.lspDiagnostics(doc),
	})
}

func (s *server) clearDiagnostics(uri string) {
	s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}
