package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		expr   string
	)
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the syntax tree",
		Long: `Parses each file (or stdin, or the -e expression) and prints its tree.
Diagnostics go to stderr; the tree is printed even when there are errors.

Examples:
  rbparse parse app.rb
  rbparse parse --format yaml -e 'x = 1 + 2'
  cat app.rb | rbparse parse --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			srcs, err := a.readSources(args, expr)
			if err != nil {
				return err
			}
			st := newStyles(a.stderr, a.cfg.Output.Color)
			for _, src := range srcs {
				res, err := a.parse(src)
				if err != nil {
					return err
				}
				out, err := a.render(res.Program, format)
				if err != nil {
					return err
				}
				fmt.Fprint(a.stdout, out)
				for _, d := range res.Diagnostics {
					fmt.Fprint(a.stderr, st.diagnostic(res, d))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: sexp, yaml or json (default from config)")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this code instead of files")
	return cmd
}

// render formats a tree in one of the supported output formats.
func (a *app) render(n ast.Node, format string) (string, error) {
	switch format {
	case "sexp":
		return ast.Dump(n), nil
	case "yaml":
		b, err := ast.ToYAML(n)
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return string(b), nil
	case "json":
		b, err := ast.ToJSON(n, strings.Repeat(" ", a.cfg.Output.Indent))
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(b) + "\n", nil
	}
	return "", fmt.Errorf("unknown format %q (want sexp, yaml or json)", format)
}

func newLexCmd(a *app) *cobra.Command {
	var (
		expr   string
		trivia bool
	)
	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream",
		Long: `Prints one token per line as TYPE start...end "text".
Whitespace tokens filling the gaps between tokens are hidden unless
--trivia is given; with it the token texts concatenate to the input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.readSources(args, expr)
			if err != nil {
				return err
			}
			src := srcs[0]
			opts, err := a.parseOptions(src.name)
			if err != nil {
				return err
			}
			toks, res := parser.Lex(src.data, opts...)
			for _, tok := range toks {
				if !trivia && tok.Type == parser.WHITESPACE {
					continue
				}
				fmt.Fprintf(a.stdout, "%-24s %d...%d %q\n", tok.Type, tok.Start, tok.End, tok.Text(src.data))
			}
			st := newStyles(a.stderr, a.cfg.Output.Color)
			for _, d := range res.Diagnostics {
				fmt.Fprint(a.stderr, st.diagnostic(res, d))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "lex this code instead of a file")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace tokens")
	return cmd
}
