// main.go
//
// ROLE: Executable entrypoint and JSON-RPC dispatch loop.
//
// What lives here
//   • Process startup: configuration, logging and server construction.
//   • Framed JSON-RPC read loop from stdin and write to stdout.
//   • Method routing: decode → switch on req.Method → delegate to handlers
//     in features.go.
//   • Lifecycle handling (initialize/shutdown/exit).
//
// Logs go to stderr; stdout carries protocol traffic only.

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ruby/ruby-sub004/internal/config"
	"github.com/ruby/ruby-sub004/internal/logging"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rbparse-lsp:", err)
		os.Exit(1)
	}
	lc := cfg.LoggerConfig()
	lc.Output = os.Stderr
	log := logging.NewLogger(lc)

	opts, err := cfg.ParserOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rbparse-lsp:", err)
		os.Exit(1)
	}
	s := newServer(os.Stdout, log, opts)
	s.debounce = cfg.LSP.Debounce.Duration
	s.maxDiagnostics = cfg.LSP.MaxDiagnostics

	os.Exit(s.serve(os.Stdin))
}

// serve runs the read loop until exit or end of input and returns the
// process exit status: 0 after an orderly shutdown, 1 otherwise.
func (s *server) serve(r io.Reader) int {
	in := bufio.NewReader(r)
	for {
		msgBytes, err := readMsg(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Error("read error", "err", err)
			}
			return 1
		}

		var req Request
		if err := json.Unmarshal(msgBytes, &req); err != nil {
			s.log.Warn("malformed message", "err", err)
			continue
		}
		s.log.Debug("request", "method", req.Method)

		isRequest := len(req.ID) > 0
		switch {
		case req.Method == "exit":
			if s.shutdown {
				return 0
			}
			return 1
		case req.Method == "initialize":
			s.onInitialize(req.ID, req.Params)
			continue
		case !s.initialized:
			if isRequest {
				s.sendResponse(req.ID, nil, &ResponseError{Code: codeServerNotInitialized, Message: "server not initialized"})
			}
			continue
		case s.shutdown:
			if isRequest {
				s.sendResponse(req.ID, nil, &ResponseError{Code: codeInvalidRequest, Message: "server is shutting down"})
			}
			continue
		}

		switch req.Method {
		case "initialized":
			// no-op
		case "shutdown":
			s.shutdown = true
			s.sendResponse(req.ID, nil, nil)

		// Text sync
		case "textDocument/didOpen":
			s.onDidOpen(req.Params)
		case "textDocument/didChange":
			s.onDidChange(req.Params)
		case "textDocument/didClose":
			s.onDidClose(req.Params)

		// Language features
		case "textDocument/documentSymbol":
			s.onDocumentSymbols(req.ID, req.Params)
		case "textDocument/foldingRange":
			s.onFoldingRange(req.ID, req.Params)
		case "textDocument/hover":
			s.onHover(req.ID, req.Params)

		default:
			// Requests get MethodNotFound; notifications are ignored.
			if isRequest {
				s.sendResponse(req.ID, nil, &ResponseError{Code: codeMethodNotFound, Message: "method not found"})
			}
		}
	}
}
