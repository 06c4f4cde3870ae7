package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/parser"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func Test_Config_Defaults(t *testing.T) {
	c := Default()
	if c.Parser.Encoding != "UTF-8" || c.Parser.StartLine != 1 {
		t.Fatalf("parser defaults: %+v", c.Parser)
	}
	if c.Output.Format != "sexp" || c.Output.Color != "auto" || c.Output.Indent != 2 {
		t.Fatalf("output defaults: %+v", c.Output)
	}
	if c.LSP.Debounce.Duration != 150*time.Millisecond || c.LSP.MaxDiagnostics != 100 {
		t.Fatalf("lsp defaults: %+v", c.LSP)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func Test_Config_Load_TOML(t *testing.T) {
	p := writeFile(t, "rbparse.toml", `
[parser]
encoding = "Shift_JIS"
frozen_string_literal = true
scopes = [["a", "b"]]

[output]
format = "json"
color = "never"

[log]
level = "debug"

[lsp]
debounce = "1s"
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Path != p {
		t.Fatalf("path = %q", c.Path)
	}
	if c.Parser.Encoding != "Shift_JIS" || !c.Parser.FrozenStringLiteral {
		t.Fatalf("parser section: %+v", c.Parser)
	}
	if diff := cmp.Diff([][]string{{"a", "b"}}, c.Parser.Scopes); diff != "" {
		t.Fatalf("scopes (-want +got):\n%s", diff)
	}
	if c.Output.Format != "json" || c.Output.Color != "never" || c.Output.Indent != 2 {
		t.Fatalf("output section: %+v", c.Output)
	}
	if c.Log.Level != "debug" || c.Log.Format != "text" {
		t.Fatalf("log section: %+v", c.Log)
	}
	if c.LSP.Debounce.Duration != time.Second {
		t.Fatalf("debounce = %v", c.LSP.Debounce)
	}
}

func Test_Config_Load_YAML(t *testing.T) {
	p := writeFile(t, "rbparse.yaml", "output:\n  format: yaml\nparser:\n  start_line: 10\n")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Output.Format != "yaml" || c.Parser.StartLine != 10 || c.Parser.Encoding != "UTF-8" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func Test_Config_Load_Errors(t *testing.T) {
	cases := map[string]struct {
		name, body, want string
	}{
		"syntax":   {"a.toml", "[parser\n", "failed to parse config"},
		"unknown":  {"b.toml", "[parser]\nbogus = 1\n", "unknown key parser.bogus"},
		"encoding": {"c.toml", "[parser]\nencoding = \"klingon\"\n", "unknown encoding"},
		"format":   {"d.yml", "output:\n  format: xml\n", "output.format"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.name, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func Test_Config_LoadFromEnv(t *testing.T) {
	p := writeFile(t, "custom.toml", "[output]\nformat = \"yaml\"\n")
	t.Setenv(EnvVar, p)
	c, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Output.Format != "yaml" {
		t.Fatalf("env file not used: %+v", c.Output)
	}

	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	wd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	c, err = LoadFromEnv()
	if err != nil || c.Path != "" || c.Output.Format != "sexp" {
		t.Fatalf("want defaults without any file, got %+v, %v", c, err)
	}
}

func Test_Config_ParserOptions(t *testing.T) {
	c := Default()
	c.Parser.FrozenStringLiteral = true
	c.Parser.Scopes = [][]string{{"x"}}
	opts, err := c.ParserOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	res := parser.Parse([]byte("x\n'a'\n"), opts...)
	body := res.Program.Statements.Body
	if body[0].Type() != ast.LocalVariableReadNodeType {
		t.Fatalf("scope local not applied\n%s", ast.Dump(res.Program))
	}
	if !body[1].Base().HasFlag(ast.StringFrozen) {
		t.Fatalf("frozen option not applied")
	}

	c.Parser.Encoding = "nope"
	if _, err := c.ParserOptions(); err == nil {
		t.Fatalf("unknown encoding should fail")
	}
}
