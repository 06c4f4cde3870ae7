package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/internal/config"
	"github.com/ruby/ruby-sub004/internal/logging"
	"github.com/ruby/ruby-sub004/serialize"
)

// runCLI executes rbparse with args and returns exit status, stdout and
// stderr. The environment is isolated from user configuration.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeRuby(t *testing.T, name, src string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func Test_CLI_Parse_Sexp(t *testing.T) {
	code, out, errOut := runCLI(t, "", "parse", "-e", "x = 1")
	if code != 0 || errOut != "" {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	for _, want := range []string{"ProgramNode (0...5)", "LocalVariableWriteNode", `name: "x"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func Test_CLI_Parse_Formats(t *testing.T) {
	_, out, _ := runCLI(t, "", "parse", "--format", "json", "-e", "1")
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, "IntegerNode") {
		t.Fatalf("json output:\n%s", out)
	}
	_, out, _ = runCLI(t, "", "parse", "--format", "yaml", "-e", "1")
	if !strings.Contains(out, "IntegerNode") || strings.HasPrefix(out, "{") {
		t.Fatalf("yaml output:\n%s", out)
	}
	code, _, errOut := runCLI(t, "", "parse", "--format", "xml", "-e", "1")
	if code != 1 || !strings.Contains(errOut, "unknown format") {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
}

func Test_CLI_Parse_Stdin_With_Diagnostics(t *testing.T) {
	code, out, errOut := runCLI(t, "def foo(,)\nend\n", "parse")
	if code != 0 {
		t.Fatalf("parse prints trees of broken input, exit %d", code)
	}
	if !strings.Contains(out, "DefNode") {
		t.Fatalf("missing tree:\n%s", out)
	}
	if !strings.Contains(errOut, "expected a parameter") {
		t.Fatalf("missing diagnostic:\n%s", errOut)
	}
}

func Test_CLI_Lex(t *testing.T) {
	_, out, _ := runCLI(t, "", "lex", "-e", "a = 1")
	var want strings.Builder
	for _, tok := range []struct {
		typ, span, text string
	}{{"IDENTIFIER", "0...1", "a"}, {"EQUAL", "2...3", "="}, {"INTEGER", "4...5", "1"}} {
		fmt.Fprintf(&want, "%-24s %s %q\n", tok.typ, tok.span, tok.text)
	}
	if diff := cmp.Diff(want.String(), out); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
	_, out, _ = runCLI(t, "", "lex", "--trivia", "-e", "a = 1")
	if strings.Count(out, "WHITESPACE") != 2 {
		t.Fatalf("want whitespace tokens:\n%s", out)
	}
}

func Test_CLI_Check(t *testing.T) {
	good := writeRuby(t, "good.rb", "puts 1\n")
	bad := writeRuby(t, "bad.rb", "def foo\n")

	code, out, _ := runCLI(t, "", "check", good)
	if code != 0 || !strings.Contains(out, "1 file, 0 errors, 0 warnings") {
		t.Fatalf("exit %d:\n%s", code, out)
	}

	code, out, _ = runCLI(t, "", "check", good, bad)
	if code != 1 {
		t.Fatalf("errors must exit 1, got %d", code)
	}
	if !strings.Contains(out, "error in "+bad) || !strings.Contains(out, "2 files, ") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	code, out, _ = runCLI(t, "", "check", "--quiet", bad)
	if code != 1 || strings.Contains(out, "error in") {
		t.Fatalf("quiet prints only the summary:\n%s", out)
	}
}

func Test_CLI_Check_Werror(t *testing.T) {
	p := writeRuby(t, "w.rb", "foo -1\n")
	if code, _, _ := runCLI(t, "", "check", p); code != 0 {
		t.Fatalf("warnings alone pass, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "check", "--werror", p); code != 1 {
		t.Fatalf("--werror should fail on warnings, got %d", code)
	}
}

func Test_CLI_Check_Missing_File(t *testing.T) {
	code, _, errOut := runCLI(t, "", "check", filepath.Join(t.TempDir(), "nope.rb"))
	if code != 1 || !strings.Contains(errOut, "read ") {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
}

func Test_CLI_Dump(t *testing.T) {
	_, out, _ := runCLI(t, "", "dump", "-e", "a + b")
	doc, err := serialize.Deserialize([]byte(out))
	if err != nil {
		t.Fatalf("dump output does not decode: %v", err)
	}
	if doc.Encoding != "UTF-8" || len(doc.Program.Statements.Body) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}

	dst := filepath.Join(t.TempDir(), "out.bin")
	if code, _, errOut := runCLI(t, "", "dump", "-o", dst, "-e", "1"); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	b, err := os.ReadFile(dst)
	if err != nil || !bytes.HasPrefix(b, []byte(serialize.Magic)) {
		t.Fatalf("output file: %v %q", err, b)
	}
}

func Test_CLI_Config_File(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(cfg, []byte("[output]\nformat = \"json\"\n[parser]\nfrozen_string_literal = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, _ := runCLI(t, "", "--config", cfg, "parse", "-e", "'a'")
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, "frozen") {
		t.Fatalf("config not applied:\n%s", out)
	}

	code, _, errOut := runCLI(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "version")
	if code != 1 || !strings.Contains(errOut, "failed to read config") {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
}

func Test_CLI_Verbose_Logs(t *testing.T) {
	_, _, errOut := runCLI(t, "", "-v", "parse", "-e", "1")
	if !strings.Contains(errOut, "parse done") || !strings.Contains(errOut, "parse_id=") {
		t.Fatalf("want debug logs on stderr:\n%s", errOut)
	}
}

func Test_CLI_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "version")
	if code != 0 || !strings.HasPrefix(out, "rbparse v") || !strings.Contains(out, "Format:") {
		t.Fatalf("exit %d:\n%s", code, out)
	}
}

func newTestSession() *session {
	a := &app{cfg: config.Default(), log: logging.Discard()}
	return &session{a: a, format: "sexp", st: newStyles(io.Discard, "never")}
}

// lines feeds canned input to session.read.
func lines(in ...string) func(string) (string, error) {
	return func(string) (string, error) {
		if len(in) == 0 {
			return "", io.EOF
		}
		l := in[0]
		in = in[1:]
		return l, nil
	}
}

func Test_REPL_Continuation(t *testing.T) {
	s := newTestSession()
	code, ok := s.read(lines("def foo", "  1", "end", "ignored"))
	if !ok || code != "def foo\n  1\nend" {
		t.Fatalf("read %q, %v", code, ok)
	}
	code, ok = s.read(lines("x = 1"))
	if !ok || code != "x = 1" {
		t.Fatalf("read %q, %v", code, ok)
	}
	if _, ok := s.read(lines()); ok {
		t.Fatalf("EOF should end the session")
	}
	// A real syntax error is returned at once rather than continued.
	code, _ = s.read(lines("1 == 2 == 3", "more"))
	if code != "1 == 2 == 3" {
		t.Fatalf("read %q", code)
	}
}

func Test_REPL_Aborted_Line(t *testing.T) {
	s := newTestSession()
	abort := func(string) (string, error) { return "", errors.New("prompt aborted") }
	if code, ok := s.read(abort); !ok || code != "" {
		t.Fatalf("aborted input should yield an empty line, got %q %v", code, ok)
	}
}

func Test_REPL_Commands(t *testing.T) {
	s := newTestSession()
	out, _ := s.eval("x = 1")
	if !strings.Contains(out, "LocalVariableWriteNode") {
		t.Fatalf("eval output:\n%s", out)
	}
	if _, quit := s.eval(":format json"); quit || s.format != "json" {
		t.Fatalf("format not switched")
	}
	if out, _ := s.eval("1"); !strings.HasPrefix(out, "{") {
		t.Fatalf("json output:\n%s", out)
	}
	if out, _ := s.eval(":tokens"); out != "tokens on\n" {
		t.Fatalf("tokens toggle: %q", out)
	}
	if out, _ := s.eval("a"); !strings.Contains(out, "IDENTIFIER") {
		t.Fatalf("want token listing:\n%s", out)
	}
	if out, _ := s.eval(":format xml"); !strings.Contains(out, "unknown format") {
		t.Fatalf("bad format accepted: %q", out)
	}
	if out, _ := s.eval(":bogus"); !strings.Contains(out, "unknown command") {
		t.Fatalf("unknown command: %q", out)
	}
	if _, quit := s.eval(":quit"); !quit {
		t.Fatalf(":quit should end the session")
	}
}

func Test_REPL_Signal_Watcher_Exits(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		onSignal(sigc, done, func() { t.Error("quit called without a signal") })
		close(finished)
	}()
	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("watcher still running after done was closed")
	}

	quit := make(chan struct{})
	sigc <- syscall.SIGTERM
	onSignal(sigc, make(chan struct{}), func() { close(quit) })
	select {
	case <-quit:
	default:
		t.Fatalf("signal did not trigger quit")
	}
}
