package parser

import (
	"log/slog"

	"github.com/ruby/ruby-sub004/internal/encoding"
)

// Option configures a Parser.
type Option func(*Parser)

// WithFilepath sets the name reported by __FILE__ and in diagnostics.
func WithFilepath(path string) Option { return func(p *Parser) { p.filepath = path } }

// WithLine sets the line number of the first source line. The default is 1.
func WithLine(line int) Option { return func(p *Parser) { p.startLine = line } }

// WithEncoding sets the initial source encoding. A magic comment can still
// switch it.
func WithEncoding(e encoding.Encoding) Option {
	return func(p *Parser) {
		if e != nil {
			p.encoding = e
		}
	}
}

// WithFrozenStringLiteral marks every plain string literal frozen, as the
// frozen_string_literal magic comment does.
func WithFrozenStringLiteral(on bool) Option {
	return func(p *Parser) { p.frozenStringLiteral = on }
}

// WithScopes pre-declares local variables, outermost scope first. Parsing
// then behaves as if the source were evaluated inside those scopes.
func WithScopes(scopes ...[]string) Option {
	return func(p *Parser) { p.evalScopes = scopes }
}

// WithLogger attaches a logger. Parse progress is logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTokenCallback registers fn to be called with every token the lexer
// produces, including comments and ignored newlines, in lexing order.
func WithTokenCallback(fn func(Token)) Option {
	return func(p *Parser) { p.onToken = fn }
}
