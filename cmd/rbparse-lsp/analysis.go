// analysis.go
//
// ROLE: Parse a document and derive everything the feature handlers serve:
// diagnostics, the document symbol outline and folding ranges.
//
// analyze never fails. Broken input still yields a tree (with missing nodes)
// so outline and folding keep working while the user types.

package main

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/ruby/ruby-sub004/ast"
	"github.com/ruby/ruby-sub004/parser"
)

func (s *server) analyze(doc *docState) {
	id := uuid.NewString()
	opts := append([]parser.Option(nil), s.opts...)
	opts = append(opts, parser.WithLogger(s.log.With("analysis_id", id)))
	if p := uriPath(doc.uri); p != "" {
		opts = append(opts, parser.WithFilepath(p))
	}
	res := parser.Parse([]byte(doc.text), opts...)

	symbols := collectSymbols(res.Program, doc, false)
	folds := foldingRanges(res, doc)

	s.mu.Lock()
	doc.res = res
	doc.symbols = symbols
	doc.folds = folds
	doc.parseID = id
	s.mu.Unlock()

	s.log.Debug("analyzed", "analysis_id", id, "uri", doc.uri, "version", doc.version,
		"errors", len(res.Errors()), "warnings", len(res.Warnings()), "symbols", len(symbols))
	s.publishDiagnostics(doc)
}

// uriPath returns the file system path of a file:// URI, or "".
func uriPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return u.Path
}

////////////////////////////////////////////////////////////////////////////////
// Document symbols
////////////////////////////////////////////////////////////////////////////////

func rangeOf(doc *docState, l ast.Location) Range {
	return makeRange(doc.lines, l.Start, l.End, doc.text)
}

// collectSymbols returns the outline below n. Definitions nested inside a
// class or module become its children; inType marks that methods are
// members rather than top-level functions.
func collectSymbols(n ast.Node, doc *docState, inType bool) []DocumentSymbol {
	var out []DocumentSymbol
	for _, c := range n.Children() {
		if sym, body, ok := symbolFor(c, doc, inType); ok {
			if !ast.IsNil(body) {
				sym.Children = collectSymbols(body, doc, sym.Kind == symbolClass || sym.Kind == symbolModule)
			}
			out = append(out, sym)
			continue
		}
		out = append(out, collectSymbols(c, doc, inType)...)
	}
	return out
}

// symbolFor describes n if it declares something, along with the node
// whose declarations nest under it.
func symbolFor(n ast.Node, doc *docState, inType bool) (DocumentSymbol, ast.Node, bool) {
	src := []byte(doc.text)
	switch n := n.(type) {
	case *ast.ClassNode:
		if ast.IsNil(n.ConstantPath) {
			break
		}
		return DocumentSymbol{
			Name:           string(n.ConstantPath.Loc().Slice(src)),
			Detail:         superclassDetail(n, src),
			Kind:           symbolClass,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.ConstantPath.Loc()),
		}, n.Body, true
	case *ast.ModuleNode:
		if ast.IsNil(n.ConstantPath) {
			break
		}
		return DocumentSymbol{
			Name:           string(n.ConstantPath.Loc().Slice(src)),
			Kind:           symbolModule,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.ConstantPath.Loc()),
		}, n.Body, true
	case *ast.SingletonClassNode:
		if ast.IsNil(n.Expression) {
			break
		}
		return DocumentSymbol{
			Name:           "class << " + string(n.Expression.Loc().Slice(src)),
			Kind:           symbolClass,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.ClassKeywordLoc),
		}, n.Body, true
	case *ast.DefNode:
		kind, name := symbolFunction, n.Name
		if inType {
			kind = symbolMethod
		}
		if !ast.IsNil(n.Receiver) {
			name = string(n.Receiver.Loc().Slice(src)) + "." + name
			kind = symbolMethod
		}
		return DocumentSymbol{
			Name:           name,
			Detail:         paramsDetail(n, src),
			Kind:           kind,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.NameLoc),
		}, nil, n.Name != ""
	case *ast.ConstantWriteNode:
		return DocumentSymbol{
			Name:           n.Name,
			Kind:           symbolConstant,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.NameLoc),
		}, nil, true
	case *ast.ConstantPathWriteNode:
		if n.Target == nil {
			return DocumentSymbol{}, nil, false
		}
		return DocumentSymbol{
			Name:           string(n.Target.Loc().Slice(src)),
			Kind:           symbolConstant,
			Range:          rangeOf(doc, n.Location),
			SelectionRange: rangeOf(doc, n.Target.Loc()),
		}, nil, true
	}
	return DocumentSymbol{}, nil, false
}

func superclassDetail(n *ast.ClassNode, src []byte) string {
	if ast.IsNil(n.Superclass) {
		return ""
	}
	return "< " + string(n.Superclass.Loc().Slice(src))
}

func paramsDetail(n *ast.DefNode, src []byte) string {
	if n.Parameters == nil {
		return ""
	}
	return "(" + string(n.Parameters.Loc().Slice(src)) + ")"
}

////////////////////////////////////////////////////////////////////////////////
// Folding
////////////////////////////////////////////////////////////////////////////////

var foldable = map[ast.NodeType]bool{
	ast.ClassNodeType:          true,
	ast.ModuleNodeType:         true,
	ast.SingletonClassNodeType: true,
	ast.DefNodeType:            true,
	ast.IfNodeType:             true,
	ast.UnlessNodeType:         true,
	ast.WhileNodeType:          true,
	ast.UntilNodeType:          true,
	ast.ForNodeType:            true,
	ast.CaseNodeType:           true,
	ast.BeginNodeType:          true,
	ast.BlockNodeType:          true,
	ast.LambdaNodeType:         true,
	ast.ArrayNodeType:          true,
	ast.HashNodeType:           true,
}

func foldingRanges(res *parser.Result, doc *docState) []FoldingRange {
	out := []FoldingRange{}
	line := func(off int) int { return offsetToPos(doc.lines, off, doc.text).Line }

	// Runs of comments on consecutive lines fold together; an embedded
	// document folds by itself.
	comment := "comment"
	runStart, runEnd := -1, -1
	flush := func() {
		if runStart >= 0 && runEnd > runStart {
			out = append(out, FoldingRange{StartLine: runStart, EndLine: runEnd, Kind: &comment})
		}
		runStart, runEnd = -1, -1
	}
	for _, c := range res.Comments {
		l0 := line(c.Location.Start)
		if c.Type == parser.CommentEmbdoc {
			flush()
			if l1 := line(max(c.Location.End-1, c.Location.Start)); l1 > l0 {
				out = append(out, FoldingRange{StartLine: l0, EndLine: l1, Kind: &comment})
			}
			continue
		}
		if runStart >= 0 && l0 == runEnd+1 {
			runEnd = l0
			continue
		}
		flush()
		runStart, runEnd = l0, l0
	}
	flush()

	ast.Walk(res.Program, func(n ast.Node) bool {
		if foldable[n.Type()] {
			l := n.Loc()
			end := l.End
			if end > l.Start && doc.text[end-1] == '\n' {
				end--
			}
			if s, e := line(l.Start), line(end); e > s {
				out = append(out, FoldingRange{StartLine: s, EndLine: e})
			}
		}
		return true
	})
	return out
}

////////////////////////////////////////////////////////////////////////////////
// Hover
////////////////////////////////////////////////////////////////////////////////

// nodeAt returns the innermost node whose location covers off.
func nodeAt(root ast.Node, off int) ast.Node {
	var hit ast.Node
	ast.Walk(root, func(n ast.Node) bool {
		l := n.Loc()
		if l.Start <= off && off < l.End {
			hit = n
			return true
		}
		return false
	})
	return hit
}
