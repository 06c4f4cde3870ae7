// errors.go: caret snippets for diagnostics
//
// FormatDiagnostic renders one diagnostic with the offending line, one line
// of context on either side and a caret run under the reported range:
//
//	error in app.rb at 3:9: expected an `end` to close the `def` statement
//
//	   2 | def foo
//	   3 |   bar(1
//	     |         ^
//	   4 |
//
// Lines are numbered from the parser's first line; columns are 1-based and
// count characters, not bytes. Output is plain text; callers that want
// colour style it themselves.
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

/* ===========================
   PUBLIC API
   =========================== */

// FormatDiagnostic renders d against the parsed source.
func (r *Result) FormatDiagnostic(d Diagnostic) string {
	return formatSnippet(r.Source, r.lines, r.startLine, r.Filepath, d)
}

// FormatDiagnostics renders every diagnostic, errors and warnings in the
// order they were found, separated by blank lines.
func (r *Result) FormatDiagnostics() string {
	parts := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		parts = append(parts, r.FormatDiagnostic(d))
	}
	return strings.Join(parts, "\n")
}

// Incomplete reports whether every error is explained by the input ending
// too early: a literal that meets end of file, or a missing closer reported
// after the last non-blank byte. Interactive front ends use it to ask for a
// continuation line instead of reporting the errors.
func (r *Result) Incomplete() bool {
	errs := r.Errors()
	if len(errs) == 0 {
		return false
	}
	tail := len(strings.TrimRight(string(r.Source), " \t\r\n"))
	for _, d := range errs {
		if d.Location.Start >= tail {
			continue
		}
		if strings.Contains(d.Message, "meets end of file") || strings.Contains(d.Message, "before EOF") {
			continue
		}
		return false
	}
	return true
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: rendering
   =========================== */

func formatSnippet(src []byte, lines []int, startLine int, name string, d Diagnostic) string {
	if len(lines) == 0 {
		lines = lineOffsets(src)
	}
	if startLine == 0 {
		startLine = 1
	}
	start := clamp(d.Location.Start, 0, len(src))
	end := clamp(d.Location.End, start, len(src))

	idx, col := lineColumn(lines, start)
	idx-- // zero-based line index
	lineText := func(i int) string {
		from := lines[i]
		to := len(src)
		if i+1 < len(lines) {
			to = lines[i+1] - 1
		}
		return strings.TrimSuffix(string(src[from:to]), "\r")
	}
	text := lineText(idx)
	prefix := text[:min(col, len(text))]

	var b strings.Builder
	lineNo := idx + startLine
	colNo := utf8.RuneCountInString(prefix) + 1
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", d.Severity, name, lineNo, colNo, d.Message)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", d.Severity, lineNo, colNo, d.Message)
	}
	if idx > 0 {
		fmt.Fprintf(&b, "%4d | %s\n", lineNo-1, lineText(idx-1))
	}
	fmt.Fprintf(&b, "%4d | %s\n", lineNo, text)

	// The caret run stops at the end of the first line.
	width := utf8.RuneCountInString(text[len(prefix):min(col+(end-start), len(text))])
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&b, "     | %s^%s\n", padFor(prefix), strings.Repeat("~", width-1))
	if idx+1 < len(lines) && lines[idx+1] < len(src) {
		fmt.Fprintf(&b, "%4d | %s\n", lineNo+1, lineText(idx+1))
	}
	return b.String()
}

// padFor returns blanks as wide as prefix, keeping tabs so the caret lines
// up in a terminal.
func padFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
