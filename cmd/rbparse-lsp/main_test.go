package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/logging"
	"github.com/ruby/ruby-sub004/parser"
)

// --- helpers ---------------------------------------------------------------

func testServer(out *bytes.Buffer) *server {
	return newServer(out, logging.Discard(), nil)
}

func mustDoc(t *testing.T, uri, src string) *docState {
	t.Helper()
	var out bytes.Buffer
	s := testServer(&out)
	doc := &docState{uri: uri, text: src, lines: lineOffsets(src)}
	s.analyze(doc)
	return doc
}

// frame encodes one JSON-RPC message. A nil id makes a notification.
func frame(t *testing.T, id any, method string, params any) []byte {
	t.Helper()
	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if id != nil {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	var b bytes.Buffer
	if err := writeMsg(&b, msg); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

// wireMsg is the union of responses and notifications.
type wireMsg struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *ResponseError  `json:"error"`
}

func readAllMsgs(t *testing.T, buf *bytes.Buffer) []wireMsg {
	t.Helper()
	var out []wireMsg
	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	for {
		body, err := readMsg(r)
		if err != nil {
			break
		}
		var m wireMsg
		if err := json.Unmarshal(body, &m); err != nil {
			t.Fatalf("bad message %s: %v", body, err)
		}
		out = append(out, m)
	}
	return out
}

func session(t *testing.T, msgs ...[]byte) (int, []wireMsg) {
	t.Helper()
	var out bytes.Buffer
	s := testServer(&out)
	code := s.serve(bytes.NewReader(bytes.Join(msgs, nil)))
	return code, readAllMsgs(t, &out)
}

func openParams(uri, text string) any {
	return map[string]any{"textDocument": map[string]any{"uri": uri, "languageId": "ruby", "version": 1, "text": text}}
}

func docParams(uri string) any {
	return map[string]any{"textDocument": map[string]any{"uri": uri}}
}

// --- tests -----------------------------------------------------------------

func Test_Core_UTF16_Positioning(t *testing.T) {
	text := "a🙂b\n" // 🙂 is 2 UTF-16 code units
	lines := lineOffsets(text)

	pos := Position{Line: 0, Character: 3}
	off := posToOffset(lines, pos, text)
	if got := text[:off]; got != "a🙂" {
		t.Fatalf("posToOffset slice got %q, want %q", got, "a🙂")
	}
	rt := offsetToPos(lines, off, text)
	if rt.Line != 0 || rt.Character != 3 {
		t.Fatalf("offsetToPos roundtrip = (%d,%d), want (0,3)", rt.Line, rt.Character)
	}
	if p := offsetToPos(lines, len(text), text); p.Line != 1 || p.Character != 0 {
		t.Fatalf("end of text = %+v", p)
	}
}

func Test_Core_Framing(t *testing.T) {
	var b bytes.Buffer
	if err := writeMsg(&b, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "Content-Length: 7\r\n\r\n") {
		t.Fatalf("header: %q", b.String())
	}
	body, err := readMsg(bufio.NewReader(&b))
	if err != nil || string(body) != `{"a":1}` {
		t.Fatalf("body %q, err %v", body, err)
	}
	if _, err := readMsg(bufio.NewReader(strings.NewReader("X-Other: 1\r\n\r\n{}"))); err == nil {
		t.Fatalf("missing Content-Length should fail")
	}
}

func Test_Core_Diagnostics_UTF16_Columns(t *testing.T) {
	text := "'🙂' + )\n"
	var out bytes.Buffer
	s := testServer(&out)
	doc := &docState{uri: "file:///u.rb", text: text, lines: lineOffsets(text)}
	doc.res = &parser.Result{Diagnostics: []parser.Diagnostic{
		{Location: ast.Loc(9, 10), Message: "boom", Severity: parser.SeverityError},
		{Location: ast.Loc(0, 6), Message: "meh", Severity: parser.SeverityWarning},
	}}
	got := s.lspDiagnostics(doc)
	want := []Diagnostic{
		{Range: Range{Start: Position{0, 7}, End: Position{0, 8}}, Severity: 1, Source: "rbparse", Message: "boom"},
		{Range: Range{Start: Position{0, 0}, End: Position{0, 4}}, Severity: 2, Source: "rbparse", Message: "meh"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostics (-want +got):\n%s", diff)
	}

	s.maxDiagnostics = 1
	if n := len(s.lspDiagnostics(doc)); n != 1 {
		t.Fatalf("cap not applied: %d", n)
	}
}

const outlineSrc = `# a
# b
module M
  VERSION = 1
  class A < Base
    def run(x)
      x
    end
    def self.build = new
  end
end
def helper; end
`

func Test_Analysis_Document_Symbols(t *testing.T) {
	doc := mustDoc(t, "file:///outline.rb", outlineSrc)
	type sym struct {
		Name, Detail string
		Kind         int
		Children     []sym
	}
	var conv func([]DocumentSymbol) []sym
	conv = func(ds []DocumentSymbol) []sym {
		var out []sym
		for _, d := range ds {
			out = append(out, sym{d.Name, d.Detail, d.Kind, conv(d.Children)})
		}
		return out
	}
	want := []sym{
		{"M", "", symbolModule, []sym{
			{"VERSION", "", symbolConstant, nil},
			{"A", "< Base", symbolClass, []sym{
				{"run", "(x)", symbolMethod, nil},
				{"self.build", "", symbolMethod, nil},
			}},
		}},
		{"helper", "", symbolFunction, nil},
	}
	if diff := cmp.Diff(want, conv(doc.symbols)); diff != "" {
		t.Fatalf("outline (-want +got):\n%s", diff)
	}
	if r := doc.symbols[0].Children[1].SelectionRange; r.Start != (Position{4, 8}) || r.End != (Position{4, 9}) {
		t.Fatalf("class selection range = %+v", r)
	}
}

func Test_Analysis_Folding_Ranges(t *testing.T) {
	doc := mustDoc(t, "file:///fold.rb", outlineSrc)
	comment := "comment"
	want := []FoldingRange{
		{StartLine: 0, EndLine: 1, Kind: &comment},
		{StartLine: 2, EndLine: 10},
		{StartLine: 4, EndLine: 9},
		{StartLine: 5, EndLine: 7},
	}
	if diff := cmp.Diff(want, doc.folds); diff != "" {
		t.Fatalf("folds (-want +got):\n%s", diff)
	}
}

func Test_Server_Lifecycle(t *testing.T) {
	uri := "file:///tmp/a.rb"
	code, msgs := session(t,
		frame(t, 1, "initialize", map[string]any{}),
		frame(t, nil, "initialized", map[string]any{}),
		frame(t, nil, "textDocument/didOpen", openParams(uri, "def foo\n")),
		frame(t, nil, "textDocument/didChange", map[string]any{
			"textDocument":   map[string]any{"uri": uri, "version": 2},
			"contentChanges": []any{map[string]any{"text": "def foo\nend\n"}},
		}),
		frame(t, 2, "textDocument/documentSymbol", docParams(uri)),
		frame(t, 3, "textDocument/foldingRange", docParams(uri)),
		frame(t, 4, "textDocument/hover", map[string]any{
			"textDocument": map[string]any{"uri": uri},
			"position":     map[string]any{"line": 0, "character": 5},
		}),
		frame(t, 5, "textDocument/unknown", docParams(uri)),
		frame(t, nil, "textDocument/didClose", docParams(uri)),
		frame(t, 6, "shutdown", nil),
		frame(t, nil, "exit", nil),
	)
	if code != 0 {
		t.Fatalf("exit after shutdown should be 0, got %d", code)
	}

	var methods []string
	for _, m := range msgs {
		if m.Method != "" {
			methods = append(methods, m.Method)
		} else {
			methods = append(methods, "response "+string(m.ID))
		}
	}
	wantOrder := []string{
		"response 1",
		"textDocument/publishDiagnostics",
		"textDocument/publishDiagnostics",
		"response 2", "response 3", "response 4", "response 5",
		"textDocument/publishDiagnostics",
		"response 6",
	}
	if diff := cmp.Diff(wantOrder, methods); diff != "" {
		t.Fatalf("message order (-want +got):\n%s", diff)
	}

	var init InitializeResult
	if err := json.Unmarshal(msgs[0].Result, &init); err != nil {
		t.Fatal(err)
	}
	if init.Capabilities.TextDocumentSync.Change != 1 || !init.Capabilities.DocumentSymbolProvider || !init.Capabilities.FoldingRangeProvider {
		t.Fatalf("capabilities: %+v", init.Capabilities)
	}

	diags := func(i int) PublishDiagnosticsParams {
		var p PublishDiagnosticsParams
		if err := json.Unmarshal(msgs[i].Params, &p); err != nil {
			t.Fatal(err)
		}
		return p
	}
	if p := diags(1); len(p.Diagnostics) == 0 || p.Diagnostics[0].Severity != 1 || p.URI != uri {
		t.Fatalf("open should report the missing end: %+v", p)
	}
	if p := diags(2); len(p.Diagnostics) != 0 || p.Version == nil || *p.Version != 2 {
		t.Fatalf("fixed document should clear diagnostics: %+v", p)
	}
	if p := diags(7); len(p.Diagnostics) != 0 {
		t.Fatalf("close should clear diagnostics: %+v", p)
	}

	var syms []DocumentSymbol
	if err := json.Unmarshal(msgs[3].Result, &syms); err != nil || len(syms) != 1 || syms[0].Name != "foo" {
		t.Fatalf("symbols %s: %v", msgs[3].Result, err)
	}
	var folds []FoldingRange
	if err := json.Unmarshal(msgs[4].Result, &folds); err != nil || len(folds) != 1 || folds[0].EndLine != 1 {
		t.Fatalf("folds %s: %v", msgs[4].Result, err)
	}
	var hover Hover
	if err := json.Unmarshal(msgs[5].Result, &hover); err != nil || !strings.Contains(hover.Contents.Value, "DefNode") {
		t.Fatalf("hover %s: %v", msgs[5].Result, err)
	}
	if msgs[6].Error == nil || msgs[6].Error.Code != codeMethodNotFound {
		t.Fatalf("unknown request should fail: %+v", msgs[6])
	}
	if string(msgs[8].Result) != "null" {
		t.Fatalf("shutdown result = %s", msgs[8].Result)
	}
}

func Test_Server_Not_Initialized(t *testing.T) {
	code, msgs := session(t,
		frame(t, 1, "textDocument/documentSymbol", docParams("file:///x.rb")),
		frame(t, nil, "exit", nil),
	)
	if code != 1 {
		t.Fatalf("exit without shutdown should be 1, got %d", code)
	}
	if len(msgs) != 1 || msgs[0].Error == nil || msgs[0].Error.Code != codeServerNotInitialized {
		t.Fatalf("want a not-initialized error, got %+v", msgs)
	}
}

func Test_Features_Ranged_Change(t *testing.T) {
	var out bytes.Buffer
	s := testServer(&out)
	s.initialized = true
	raw, _ := json.Marshal(openParams("file:///r.rb", "x = 1\n"))
	s.onDidOpen(raw)
	raw, _ = json.Marshal(map[string]any{
		"textDocument": map[string]any{"uri": "file:///r.rb", "version": 2},
		"contentChanges": []any{map[string]any{
			"range": Range{Start: Position{0, 4}, End: Position{0, 5}},
			"text":  "42",
		}},
	})
	s.onDidChange(raw)
	doc := s.snapshotDoc("file:///r.rb")
	if doc.text != "x = 42\n" || doc.version != 2 {
		t.Fatalf("text %q version %d", doc.text, doc.version)
	}
	if doc.res == nil || !doc.res.OK() {
		t.Fatalf("document not re-analyzed")
	}
}
