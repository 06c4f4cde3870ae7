package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ruby/ruby-sub004/internal/version"
	"github.com/ruby/ruby-sub004/parser"
)

const (
	historyFile = ".rbparse_history"
	promptMain  = "rb> "
	promptCont  = "... "
)

const replHelp = `REPL commands:
  :format sexp|yaml|json   change the tree format
  :tokens                  toggle printing the token stream
  :quit                    exit
`

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse Ruby interactively",
		Long: `Reads Ruby code line by line and prints the tree of each complete input.
Unfinished input (an open def, string or bracket) continues on the next line.
Ctrl+C cancels input, Ctrl+D exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl()
		},
	}
}

// session holds the REPL settings that commands can change.
type session struct {
	a      *app
	format string
	tokens bool
	st     styles
}

func (a *app) repl() error {
	fmt.Fprintf(a.stdout, "rbparse %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", version.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go onSignal(sigc, done, func() {
		ln.Close()
		os.Exit(130)
	})

	s := &session{a: a, format: a.cfg.Output.Format, st: newStyles(a.stdout, a.cfg.Output.Color)}
	for {
		code, ok := s.read(ln.Prompt)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		out, quit := s.eval(code)
		fmt.Fprint(a.stdout, out)
		if quit {
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// read collects lines until they parse as a complete input. prompt is
// liner's Prompt; an aborted line discards what was typed so far.
func (s *session) read(prompt func(string) (string, error)) (string, bool) {
	var b strings.Builder
	for {
		p := promptMain
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if parser.Parse([]byte(src)).Incomplete() {
			continue
		}
		return src, true
	}
}

// eval handles one complete input and returns what to print.
func (s *session) eval(code string) (out string, quit bool) {
	if cmd := strings.TrimSpace(code); strings.HasPrefix(cmd, ":") {
		return s.command(strings.Fields(cmd))
	}

	var b strings.Builder
	opts, err := s.a.parseOptions("")
	if err != nil {
		return fmt.Sprintf("error: %v\n", err), false
	}
	src := []byte(code)
	if s.tokens {
		toks, _ := parser.Lex(src, opts...)
		for _, tok := range toks {
			if tok.Type != parser.WHITESPACE {
				fmt.Fprintf(&b, "%-24s %q\n", tok.Type, tok.Text(src))
			}
		}
	}
	res := parser.Parse(src, opts...)
	tree, err := s.a.render(res.Program, s.format)
	if err != nil {
		return fmt.Sprintf("error: %v\n", err), false
	}
	b.WriteString(tree)
	for _, d := range res.Diagnostics {
		b.WriteString(s.st.diagnostic(res, d))
	}
	return b.String(), false
}

// onSignal runs quit if a signal arrives before done is closed.
func onSignal(sigc <-chan os.Signal, done <-chan struct{}, quit func()) {
	select {
	case <-sigc:
		quit()
	case <-done:
	}
}

func (s *session) command(words []string) (string, bool) {
	switch words[0] {
	case ":quit", ":q", ":exit":
		return "", true
	case ":help":
		return replHelp, false
	case ":tokens":
		s.tokens = !s.tokens
		return fmt.Sprintf("tokens %s\n", map[bool]string{true: "on", false: "off"}[s.tokens]), false
	case ":format":
		if len(words) != 2 {
			return "usage: :format sexp|yaml|json\n", false
		}
		switch words[1] {
		case "sexp", "yaml", "json":
			s.format = words[1]
			return "", false
		}
		return fmt.Sprintf("unknown format %q\n", words[1]), false
	}
	return "unknown command. Type :help for commands.\n", false
}
