// features.go
//
// ROLE: LSP request and notification handlers. Handlers read a snapshot of
// the document taken after analysis and never parse themselves.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ruby/ruby-sub004/internal/version"
)

////////////////////////////////////////////////////////////////////////////////
// Lifecycle
////////////////////////////////////////////////////////////////////////////////

func (s *server) onInitialize(id json.RawMessage, _ json.RawMessage) {
	s.initialized = true
	s.sendResponse(id, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:       TextDocumentSyncOptions{OpenClose: true, Change: 1},
			HoverProvider:          true,
			DocumentSymbolProvider: true,
			FoldingRangeProvider:   true,
		},
		ServerInfo: map[string]string{
			"name":    "rbparse-lsp",
			"version": version.Version,
		},
	}, nil)
}

////////////////////////////////////////////////////////////////////////////////
// Text sync
////////////////////////////////////////////////////////////////////////////////

func (s *server) onDidOpen(raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentItem `json:"textDocument"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		s.log.Warn("bad didOpen params", "err", err)
		return
	}
	doc := &docState{
		uri:     params.TextDocument.URI,
		version: params.TextDocument.Version,
		text:    params.TextDocument.Text,
		lines:   lineOffsets(params.TextDocument.Text),
	}
	s.mu.Lock()
	s.docs[doc.uri] = doc
	s.mu.Unlock()
	s.analyze(doc)
}

func (s *server) onDidChange(raw json.RawMessage) {
	var params struct {
		TextDocument struct {
			URI     string `json:"uri"`
			Version int    `json:"version"`
		} `json:"textDocument"`
		ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		s.log.Warn("bad didChange params", "err", err)
		return
	}

	s.mu.Lock()
	old := s.docs[params.TextDocument.URI]
	if old == nil || len(params.ContentChanges) == 0 {
		s.mu.Unlock()
		return
	}
	text := old.text
	lines := old.lines
	for _, ch := range params.ContentChanges {
		if ch.Range == nil {
			text = ch.Text
		} else {
			// Clients should send full text, but apply ranged edits too.
			start := posToOffset(lines, ch.Range.Start, text)
			end := posToOffset(lines, ch.Range.End, text)
			text = text[:start] + ch.Text + text[end:]
		}
		lines = lineOffsets(text)
	}
	// Analysis works on a fresh docState so snapshots of the old one stay
	// consistent.
	doc := &docState{uri: old.uri, version: params.TextDocument.Version, text: text, lines: lines}
	s.docs[doc.uri] = doc
	s.mu.Unlock()

	s.schedule(doc)
}

// schedule analyzes doc now, or after the debounce delay when one is
// configured. A newer change for the same document replaces a pending one.
func (s *server) schedule(doc *docState) {
	if s.debounce <= 0 {
		s.analyze(doc)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.timers[doc.uri]; t != nil {
		t.Stop()
	}
	s.timers[doc.uri] = time.AfterFunc(s.debounce, func() {
		s.mu.RLock()
		current := s.docs[doc.uri] == doc
		s.mu.RUnlock()
		if current {
			s.analyze(doc)
		}
	})
}

func (s *server) onDidClose(raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return
	}
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	if t := s.timers[params.TextDocument.URI]; t != nil {
		t.Stop()
		delete(s.timers, params.TextDocument.URI)
	}
	s.mu.Unlock()
	s.clearDiagnostics(params.TextDocument.URI)
}

////////////////////////////////////////////////////////////////////////////////
// Document symbols, folding, hover
////////////////////////////////////////////////////////////////////////////////

func (s *server) onDocumentSymbols(id json.RawMessage, raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	_ = json.Unmarshal(raw, &params)
	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.symbols == nil {
		s.sendResponse(id, []DocumentSymbol{}, nil)
		return
	}
	s.sendResponse(id, doc.symbols, nil)
}

func (s *server) onFoldingRange(id json.RawMessage, raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	_ = json.Unmarshal(raw, &params)
	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.folds == nil {
		s.sendResponse(id, []FoldingRange{}, nil)
		return
	}
	s.sendResponse(id, doc.folds, nil)
}

func (s *server) onHover(id json.RawMessage, raw json.RawMessage) {
	var params TextDocumentPositionParams
	_ = json.Unmarshal(raw, &params)
	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.res == nil {
		s.sendResponse(id, nil, nil)
		return
	}
	off := posToOffset(doc.lines, params.Position, doc.text)
	n := nodeAt(doc.res.Program, off)
	if n == nil {
		s.sendResponse(id, nil, nil)
		return
	}
	r := rangeOf(doc, n.Loc())
	s.sendResponse(id, Hover{
		Contents: MarkupContent{Kind: "markdown", Value: fmt.Sprintf("**%s** `%s`", n.Type(), n.Loc())},
		Range:    &r,
	}, nil)
}
