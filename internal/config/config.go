// Package config loads rbparse settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ruby/ruby-sub004/internal/encoding"
	"github.com/ruby/ruby-sub004/internal/logging"
	"github.com/ruby/ruby-sub004/parser"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "RBPARSE_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	LSP    LSPConfig    `toml:"lsp" yaml:"lsp"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// ParserConfig holds the parse options applied to every file
type ParserConfig struct {
	Encoding            string `toml:"encoding" yaml:"encoding"`
	FrozenStringLiteral bool   `toml:"frozen_string_literal" yaml:"frozen_string_literal"`
	StartLine           int    `toml:"start_line" yaml:"start_line"`
	// Locals visible to the parsed code, innermost scope last, as for eval.
	Scopes [][]string `toml:"scopes" yaml:"scopes"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // sexp, yaml, json
	Color  string `toml:"color" yaml:"color"`   // auto, always, never
	Indent int    `toml:"indent" yaml:"indent"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// LSPConfig holds language server settings
type LSPConfig struct {
	// Debounce delays analysis after a change.
	Debounce Duration `toml:"debounce" yaml:"debounce"`
	// MaxDiagnostics caps the diagnostics published per document.
	MaxDiagnostics int `toml:"max_diagnostics" yaml:"max_diagnostics"`
}

// Duration wraps time.Duration for text decoding ("250ms", "1s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a configuration file. Files ending in .yaml or .yml are YAML,
// everything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("config %s: unknown key %s", path, keys[0])
		}
	}

	cfg.Path = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// SearchPaths lists the files LoadFromEnv tries, in order.
func SearchPaths() []string {
	paths := []string{"./rbparse.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rbparse", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the file named by RBPARSE_CONFIG, or else the first
// existing file from SearchPaths. Without any file the defaults are
// returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Parser.Encoding == "" {
		c.Parser.Encoding = "UTF-8"
	}
	if c.Parser.StartLine == 0 {
		c.Parser.StartLine = 1
	}

	if c.Output.Format == "" {
		c.Output.Format = "sexp"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Indent == 0 {
		c.Output.Indent = 2
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.LSP.Debounce.Duration == 0 {
		c.LSP.Debounce.Duration = 150 * time.Millisecond
	}
	if c.LSP.MaxDiagnostics == 0 {
		c.LSP.MaxDiagnostics = 100
	}
}

// Validate checks enumerated values and the encoding name.
func (c *Config) Validate() error {
	if _, ok := encoding.Find(c.Parser.Encoding); !ok {
		return fmt.Errorf("parser.encoding: unknown encoding %q", c.Parser.Encoding)
	}
	switch c.Output.Format {
	case "sexp", "yaml", "json":
	default:
		return fmt.Errorf("output.format: want sexp, yaml or json, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: want auto, always or never, got %q", c.Output.Color)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: want text or json, got %q", c.Log.Format)
	}
	return nil
}

// ParserOptions converts the parser section into parse options.
func (c *Config) ParserOptions() ([]parser.Option, error) {
	enc, ok := encoding.Find(c.Parser.Encoding)
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", c.Parser.Encoding)
	}
	opts := []parser.Option{
		parser.WithEncoding(enc),
		parser.WithFrozenStringLiteral(c.Parser.FrozenStringLiteral),
		parser.WithLine(c.Parser.StartLine),
	}
	if len(c.Parser.Scopes) > 0 {
		opts = append(opts, parser.WithScopes(c.Parser.Scopes...))
	}
	return opts, nil
}

// LoggerConfig converts the log section for the logging package.
func (c *Config) LoggerConfig() logging.LoggerConfig {
	return logging.LoggerConfig{Level: c.Log.Level, Format: c.Log.Format}
}
