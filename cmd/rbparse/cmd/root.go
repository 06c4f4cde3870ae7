// Package cmd implements the rbparse command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruby/ruby-sub004/internal/config"
	"github.com/ruby/ruby-sub004/internal/logging"
	"github.com/ruby/ruby-sub004/parser"
)

// errFailed marks a run that already reported its problems; Execute turns
// it into exit status 1 without printing anything else.
var errFailed = errors.New("failed")

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rbparse",
		Short: "Ruby lexer and parser",
		Long: `rbparse lexes and parses Ruby source and prints the syntax tree,
the token stream, diagnostics or a binary serialization.

Commands:
  parse    print the syntax tree (sexp, yaml or json)
  lex      print the token stream
  check    report diagnostics, exit 1 on errors
  dump     write the binary serialization
  repl     parse interactively`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $RBPARSE_CONFIG, ./rbparse.toml, ~/.config/rbparse/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log parser activity to stderr")

	root.AddCommand(
		newParseCmd(a),
		newLexCmd(a),
		newCheckCmd(a),
		newDumpCmd(a),
		newReplCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	lc := a.cfg.LoggerConfig()
	lc.Output = a.stderr
	if a.verbose {
		lc.Level = "debug"
	}
	a.log = logging.NewLogger(lc)
	if a.cfg.Path != "" {
		a.log.Debug("config loaded", "path", a.cfg.Path)
	}
	return nil
}

// parseOptions combines the configured parser options with the file name.
func (a *app) parseOptions(name string) ([]parser.Option, error) {
	opts, err := a.cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, parser.WithLogger(a.log))
	if name != "" && name != "-" {
		opts = append(opts, parser.WithFilepath(name))
	}
	return opts, nil
}

// source is one input: a file, stdin ("-") or an -e expression.
type source struct {
	name string
	data []byte
}

// readSources collects inputs from -e code or the positional arguments.
// Without either, stdin is read.
func (a *app) readSources(args []string, expr string) ([]source, error) {
	if expr != "" {
		return []source{{name: "-e", data: []byte(expr)}}, nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	out := make([]source, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(a.stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out = append(out, source{name: name, data: data})
	}
	return out, nil
}

func (a *app) parse(src source) (*parser.Result, error) {
	opts, err := a.parseOptions(src.name)
	if err != nil {
		return nil, err
	}
	return parser.Parse(src.data, opts...), nil
}
