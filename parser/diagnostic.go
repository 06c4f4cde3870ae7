package parser

import (
	"fmt"

	"github.com/ruby/ruby-sub004/ast"
)

// Severity distinguishes errors from warnings.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a message attached to a source range. Diagnostics are
// appended in the order they are found and never changed afterwards.
type Diagnostic struct {
	Location ast.Location
	Message  string
	Severity Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Location, d.Message)
}

func (p *Parser) diag(sev Severity, start, end int, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if start > end {
		start, end = end, start
	}
	p.diags = append(p.diags, Diagnostic{Location: ast.Location{Start: start, End: end}, Message: msg, Severity: sev})
}

func (p *Parser) errorAt(start, end int, format string, args ...any) {
	p.diag(SeverityError, start, end, format, args...)
}

func (p *Parser) warnAt(start, end int, format string, args ...any) {
	p.diag(SeverityWarning, start, end, format, args...)
}

func (p *Parser) errorTok(t Token, format string, args ...any) {
	p.errorAt(t.Start, t.End, format, args...)
}

func (p *Parser) errorNode(n ast.Node, format string, args ...any) {
	l := n.Loc()
	p.errorAt(l.Start, l.End, format, args...)
}
