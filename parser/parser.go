// parser.go: entry points and shared state of the Ruby front end.
//
// OVERVIEW
// --------
// The parser turns a byte buffer into an *ast.ProgramNode plus a list of
// diagnostics. It is a single-pass Pratt parser that pulls tokens from a
// stateful lexer one at a time (see lexer.go). Ruby cannot be tokenized
// without knowing where the parser is, so both halves share one struct:
//
//   - the lexer reads lexState, the lex-mode stack and the scope stack
//   - the parser reads the token stream and pushes contexts and scopes
//
// Parsing never fails. Syntax errors are recorded as diagnostics and the
// offending construct is replaced by an ast.MissingNode, so callers always
// get a complete tree whose root spans the whole input.
//
// Files
// -----
//   - lexer.go, lex_*.go: tokenizer, one function per lex mode
//   - parse_*.go: prefix and infix parsing, arguments, parameters, strings,
//     assignment targets, pattern matching
//   - context.go, scope.go: the two stacks used for termination and local
//     variable resolution
//   - errors.go: caret rendering of diagnostics
//
// Limitations
// -----------
// Recursion depth follows the nesting depth of the input. Pathologically
// deep input (tens of thousands of nested brackets) can exhaust the
// goroutine stack; there is no explicit work stack.
package parser

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/internal/encoding"
	"github.com/ruby/ruby-sub004/internal/logging"
)

// CommentType classifies a comment.
type CommentType uint8

const (
	CommentInline CommentType = iota // # ...
	CommentEmbdoc                    // =begin ... =end
)

func (c CommentType) String() string {
	if c == CommentEmbdoc {
		return "embdoc"
	}
	return "inline"
}

// Comment is a comment found while lexing.
type Comment struct {
	Type     CommentType
	Location ast.Location
}

// MagicComment is a "key: value" comment such as "# frozen_string_literal:
// true".
type MagicComment struct {
	Key   ast.Location
	Value ast.Location
}

// Parser holds the state of one parse. A Parser is not safe for concurrent
// use, but independent Parsers share nothing.
type Parser struct {
	src       []byte
	filepath  string
	startLine int
	logger    *slog.Logger
	parseID   string

	// lexer
	pos                    int
	current                Token
	previous               Token
	lexState               LexState
	commandStart           bool
	modes                  []lexMode
	heredocEnd             int
	braceNesting           int
	enclosureNesting       int
	lambdaEnclosureNesting int
	doLoopStack            bitStack
	acceptsBlockStack      bitStack
	tokenCount             int
	onToken                func(Token)

	// parser
	contexts   []context
	scopes     []scope
	evalScopes [][]string
	recovering bool

	// names bound by the pattern being parsed
	patternNames map[string]bool

	// encoding
	encoding            encoding.Encoding
	encodingChanged     func(encoding.Encoding)
	encodingDecode      func(name string) encoding.Encoding
	frozenStringLiteral bool
	seenContent         bool

	// output
	diags         []Diagnostic
	comments      []Comment
	magicComments []MagicComment
	dataLoc       ast.Location
	lines         []int
	result        *Result
}

// New prepares a parser for src. The buffer is not copied and must not be
// modified while the parser or its Result are in use.
func New(src []byte, opts ...Option) *Parser {
	p := &Parser{
		src:                    src,
		startLine:              1,
		encoding:               encoding.UTF8,
		logger:                 logging.Discard(),
		modes:                  []lexMode{{kind: modeDefault}},
		lexState:               stateBEG,
		commandStart:           true,
		lambdaEnclosureNesting: -1,
		lines:                  lineOffsets(src),
	}
	for _, o := range opts {
		o(p)
	}
	p.parseID = uuid.NewString()
	p.skipBOM()
	return p
}

// OnEncodingChanged registers fn to be called whenever a magic comment
// switches the source encoding.
func (p *Parser) OnEncodingChanged(fn func(encoding.Encoding)) { p.encodingChanged = fn }

// OnEncodingDecode registers fn to resolve encoding names the built-in
// table does not know. Returning nil declines, and the magic comment is
// reported as an error.
func (p *Parser) OnEncodingDecode(fn func(name string) encoding.Encoding) { p.encodingDecode = fn }

func (p *Parser) skipBOM() {
	if len(p.src) >= 3 && p.src[0] == 0xef && p.src[1] == 0xbb && p.src[2] == 0xbf {
		p.pos = 3
	}
}

// Result is the outcome of a parse.
type Result struct {
	Program       *ast.ProgramNode
	Comments      []Comment
	MagicComments []MagicComment
	// DataLoc covers the text after __END__, or is empty.
	DataLoc     ast.Location
	Diagnostics []Diagnostic
	Source      []byte
	Encoding    encoding.Encoding
	Filepath    string
	// TokenCount is the number of tokens handed to the parser.
	TokenCount int
	lines      []int
	startLine  int
}

// Errors returns the error diagnostics in order.
func (r *Result) Errors() []Diagnostic { return r.filter(SeverityError) }

// Warnings returns the warning diagnostics in order.
func (r *Result) Warnings() []Diagnostic { return r.filter(SeverityWarning) }

func (r *Result) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// OK reports whether the parse produced no errors.
func (r *Result) OK() bool { return len(r.Errors()) == 0 }

// LineColumn converts a byte offset to a line (starting at the configured
// first line) and a zero-based byte column.
func (r *Result) LineColumn(offset int) (line, col int) {
	l, c := lineColumn(r.lines, offset)
	return l + r.startLine - 1, c
}

// Parse runs the parser. It always returns a tree; a second call returns
// the same Result.
func (p *Parser) Parse() *Result {
	if p.result != nil {
		return p.result
	}
	p.logger.Debug("parse start", "parse_id", p.parseID, "file", p.filepath, "bytes", len(p.src), "encoding", p.encoding.Name())

	program := p.parseProgram()

	p.result = &Result{
		Program:       program,
		Comments:      p.comments,
		MagicComments: p.magicComments,
		DataLoc:       p.dataLoc,
		Diagnostics:   p.diags,
		Source:        p.src,
		Encoding:      p.encoding,
		Filepath:      p.filepath,
		TokenCount:    p.tokenCount,
		lines:         p.lines,
		startLine:     p.startLine,
	}
	if DebuggingMode {
		for _, msg := range VerifyLocations(program, p.src) {
			p.logger.Warn("location invariant", "parse_id", p.parseID, "problem", msg)
		}
		for _, msg := range p.openStacks() {
			p.logger.Warn("stack invariant", "parse_id", p.parseID, "problem", msg)
		}
	}
	p.logger.Debug("parse done", "parse_id", p.parseID, "tokens", p.tokenCount,
		"errors", len(p.result.Errors()), "warnings", len(p.result.Warnings()))
	return p.result
}

// Parse is shorthand for New(src, opts...).Parse().
func Parse(src []byte, opts ...Option) *Result {
	return New(src, opts...).Parse()
}

// Lex parses src and returns every token in source order. Gaps between
// tokens (spaces, line continuations, skipped bytes) are filled with
// WHITESPACE tokens, so concatenating the token texts reproduces src.
func Lex(src []byte, opts ...Option) ([]Token, *Result) {
	var toks []Token
	record := func(t Token) {
		if t.Type == EOF || t.Start == t.End {
			return
		}
		// A rescanned token replaces the one it was scanned from.
		if n := len(toks); n > 0 && toks[n-1].Start == t.Start {
			toks[n-1] = t
			return
		}
		toks = append(toks, t)
	}
	opts = append(opts, WithTokenCallback(record))
	res := Parse(src, opts...)
	return fillGaps(toks, len(src)), res
}

// fillGaps sorts toks by position, drops overlaps and inserts whitespace
// tokens for uncovered bytes.
func fillGaps(toks []Token, n int) []Token {
	sort.SliceStable(toks, func(i, j int) bool { return toks[i].Start < toks[j].Start })
	out := make([]Token, 0, len(toks)+len(toks)/2+1)
	pos := 0
	for _, t := range toks {
		if t.Start < pos {
			continue
		}
		if t.Start > pos {
			out = append(out, Token{Type: WHITESPACE, Start: pos, End: t.Start})
		}
		out = append(out, t)
		pos = t.End
	}
	if pos < n {
		out = append(out, Token{Type: WHITESPACE, Start: pos, End: n})
	}
	return out
}

// lineOffsets returns the offset of the first byte of every line.
func lineOffsets(src []byte) []int {
	lines := []int{0}
	for i, c := range src {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// lineColumn maps offset to a one-based line and zero-based column.
func lineColumn(lines []int, offset int) (int, int) {
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, offset - lines[i]
}

/* ===========================
   TOKEN STREAM HELPERS
   =========================== */

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.current.Type == t {
			return true
		}
	}
	return false
}

// accept consumes the current token if it has one of the given types.
func (p *Parser) accept(types ...TokenType) bool {
	if p.match(types...) {
		p.lex()
		return true
	}
	return false
}

// expect consumes a token of one of the given types. Otherwise it records
// msg and makes previous a zero-width MISSING token at the end of the last
// consumed token, so callers can keep building locations.
func (p *Parser) expect(msg string, types ...TokenType) {
	if p.accept(types...) {
		return
	}
	p.errorAt(p.previous.End, p.previous.End, "%s", msg)
	p.previous = Token{Type: MISSING, Start: p.previous.End, End: p.previous.End}
}

// acceptTerminators skips NEWLINE and SEMICOLON tokens.
func (p *Parser) acceptTerminators() bool {
	found := false
	for p.match(NEWLINE, SEMICOLON) {
		p.lex()
		found = true
	}
	return found
}

func (p *Parser) text(t Token) string { return t.Text(p.src) }

func (p *Parser) loc(t Token) ast.Location { return ast.Location{Start: t.Start, End: t.End} }

func (p *Parser) locRange(start, end int) ast.Location { return ast.Location{Start: start, End: end} }

// optLoc is the location of t, or the empty location for tokens that were
// not provided.
func (p *Parser) optLoc(t Token) ast.Location {
	if t.Type == NOT_PROVIDED {
		return ast.Location{}
	}
	return ast.Location{Start: t.Start, End: t.End}
}

func notProvided(at int) Token { return Token{Type: NOT_PROVIDED, Start: at, End: at} }

func (p *Parser) acceptsBlock() bool { return p.acceptsBlockStack.top() }

// relex discards the current token and scans it again starting in state.
// The grammar uses it where a state change must apply to a token that was
// already read ahead, such as the second name of an alias.
func (p *Parser) relex(state LexState) {
	prev := p.previous
	p.pos = p.current.Start
	p.lexState = state
	p.tokenCount--
	p.lex()
	p.previous = prev
}
