// state.go
//
// ROLE: Server/document data structures and minimal lifecycle helpers.
//
// What lives here
//   • server/doc structs and the mutex guarding the document table.
//   • newServer() to construct the server.
//   • (*server).snapshotDoc() to take a safe, read-only copy of a document.
//
// What does NOT live here
//   • No transport/framing, no analysis, no feature handlers.

package main

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ruby/ruby-sub004/parser"
)

// docState: per-document caches (populated by analysis).
type docState struct {
	uri     string
	version int
	text    string
	lines   []int // line start offsets (byte indices)

	res     *parser.Result
	symbols []DocumentSymbol
	folds   []FoldingRange
	parseID string
}

// server: global state for the LSP server.
type server struct {
	mu   sync.RWMutex
	docs map[string]*docState

	outMu sync.Mutex
	out   io.Writer
	log   *slog.Logger

	opts           []parser.Option
	debounce       time.Duration
	maxDiagnostics int
	timers         map[string]*time.Timer

	initialized bool
	shutdown    bool
}

// newServer constructs a server writing framed messages to out.
func newServer(out io.Writer, log *slog.Logger, opts []parser.Option) *server {
	return &server{
		docs:           make(map[string]*docState),
		timers:         make(map[string]*time.Timer),
		out:            out,
		log:            log,
		opts:           opts,
		maxDiagnostics: 100,
	}
}

// snapshotDoc returns a consistent, read-only snapshot of a document.
// The parse result is shared; readers never mutate it.
func (s *server) snapshotDoc(uri string) *docState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.docs[uri]
	if d == nil {
		return nil
	}
	cp := *d
	if d.lines != nil {
		cp.lines = append([]int(nil), d.lines...)
	}
	if d.symbols != nil {
		cp.symbols = append([]DocumentSymbol(nil), d.symbols...)
	}
	if d.folds != nil {
		cp.folds = append([]FoldingRange(nil), d.folds...)
	}
	return &cp
}
