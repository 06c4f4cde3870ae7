package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ruby/ruby-sub004/parser"
)

// styles colours diagnostic snippets. The renderer decides whether escape
// codes are emitted, so "never" and non-terminal output stay plain.
type styles struct {
	err     lipgloss.Style
	warn    lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
	summary lipgloss.Style
}

func newStyles(w io.Writer, mode string) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		err:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		caret:   r.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		summary: r.NewStyle().Bold(true),
	}
}

// diagnostic renders one caret snippet with the header coloured by
// severity and the gutter dimmed.
func (s styles) diagnostic(res *parser.Result, d parser.Diagnostic) string {
	lines := strings.Split(strings.TrimSuffix(res.FormatDiagnostic(d), "\n"), "\n")
	head := s.err
	if d.Severity == parser.SeverityWarning {
		head = s.warn
	}
	for i, ln := range lines {
		switch {
		case i == 0:
			lines[i] = head.Render(ln)
		case len(ln) > 7 && ln[5] == '|' && strings.TrimSpace(ln[:5]) == "":
			lines[i] = s.gutter.Render(ln[:7]) + s.caret.Render(ln[7:])
		case len(ln) > 6 && ln[5] == '|':
			lines[i] = s.gutter.Render(ln[:7]) + ln[7:]
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
