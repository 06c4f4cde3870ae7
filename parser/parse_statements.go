package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   PROGRAM
   =========================== */

func (p *Parser) parseProgram() *ast.ProgramNode {
	p.acceptsBlockStack.push(true)
	for _, locals := range p.evalScopes {
		p.pushScope(false)
		for _, name := range locals {
			p.localAdd(name)
		}
	}
	p.pushScope(len(p.evalScopes) == 0)

	p.lex()
	stmts := p.parseStatements(ctxMain)
	if !p.match(EOF) {
		p.errorTok(p.current, "unexpected %s, expecting end-of-input", p.current.Type.Human())
	}

	locals := p.popScope()
	for range p.evalScopes {
		p.popScope()
	}
	p.acceptsBlockStack.pop()

	prog := &ast.ProgramNode{Locals: locals, Statements: stmts}
	setLoc(prog, 0, len(p.src))
	p.coverChildren(prog)
	return prog
}

/* ===========================
   STATEMENT LISTS
   =========================== */

// parseStatements parses statements until a token that terminates ctx. It
// always returns a node; an empty list has a zero-width location at the
// terminator.
func (p *Parser) parseStatements(ctx context) *ast.StatementsNode {
	p.pushContext(ctx)
	defer p.popContext()

	p.acceptTerminators()
	stmts := newStatements(p.current.Start)

	for !ctx.terminates(p.current.Type) && !p.match(EOF) {
		node := p.parseExpression(bpStatement, "expected an expression")
		addStatement(stmts, node)
		p.recovering = false

		if ctx.terminates(p.current.Type) {
			break
		}
		if p.acceptTerminators() {
			continue
		}
		if p.match(EOF) {
			break
		}

		// The statement did not end cleanly. A placeholder means the
		// current token could not start an expression: drop it, unless
		// an enclosing construct can resume from it. Anything else just
		// lacks its terminator.
		if isMissing(node) {
			if p.contextRecoverable(p.current.Type) {
				break
			}
			p.lex()
			p.acceptTerminators()
			continue
		}
		p.errorAt(p.previous.End, p.previous.End, "expected a newline or semicolon after the statement")
		if p.contextRecoverable(p.current.Type) {
			break
		}
	}
	return stmts
}

// parseOptionalStatements parses a body unless the current token already
// closes it, in which case the body is absent.
func (p *Parser) parseOptionalStatements(ctx context, stops ...TokenType) *ast.StatementsNode {
	p.acceptTerminators()
	if ctx.terminates(p.current.Type) || p.match(stops...) || p.match(EOF) {
		return nil
	}
	return p.parseStatements(ctx)
}

/* ===========================
   RESCUE / ELSE / ENSURE
   =========================== */

// parseBodyWithRescues parses the body of def, class, module, do-blocks
// and similar constructs. When rescue or ensure clauses follow, the body is
// wrapped in a BeginNode without keywords.
func (p *Parser) parseBodyWithRescues(ctx context) ast.Node {
	stmts := p.parseOptionalStatements(ctx, KEYWORD_RESCUE, KEYWORD_ENSURE, KEYWORD_ELSE)
	if !p.match(KEYWORD_RESCUE, KEYWORD_ENSURE, KEYWORD_ELSE) {
		return asNode(stmts)
	}
	begin := &ast.BeginNode{Statements: stmts}
	start := p.current.Start
	if stmts != nil {
		start = stmts.Location.Start
	}
	setLoc(begin, start, start)
	p.parseRescues(begin)
	return begin
}

// parseRescues fills the rescue, else and ensure clauses of begin. The
// caller consumes the closing end.
func (p *Parser) parseRescues(begin *ast.BeginNode) {
	var last *ast.RescueNode
	for p.match(KEYWORD_RESCUE) {
		r := p.parseRescueClause()
		if last == nil {
			begin.RescueClause = r
		} else {
			last.Consequent = r
		}
		last = r
		extend(begin, nodeEnd(r))
	}
	// Clauses are nested, so every earlier clause must cover its
	// consequents.
	for r := begin.RescueClause; r != nil && r.Consequent != nil; r = r.Consequent {
		extendRescue(r)
	}

	if p.match(KEYWORD_ELSE) {
		if begin.RescueClause == nil {
			p.errorTok(p.current, "else without rescue is useless")
		}
		kw := p.current
		p.lex()
		stmts := p.parseOptionalStatements(ctxRescueElse)
		e := &ast.ElseNode{ElseKeywordLoc: p.loc(kw), Statements: stmts}
		end := kw.End
		if stmts != nil {
			end = stmts.Location.End
		}
		if p.match(KEYWORD_ENSURE, KEYWORD_END) {
			e.EndKeywordLoc = p.loc(p.current)
			end = p.current.End
		}
		setLoc(e, kw.Start, end)
		begin.ElseClause = e
		extend(begin, end)
	}

	if p.match(KEYWORD_ENSURE) {
		kw := p.current
		p.lex()
		stmts := p.parseOptionalStatements(ctxEnsure)
		e := &ast.EnsureNode{EnsureKeywordLoc: p.loc(kw), Statements: stmts}
		end := kw.End
		if stmts != nil {
			end = stmts.Location.End
		}
		if p.match(KEYWORD_END) {
			e.EndKeywordLoc = p.loc(p.current)
			end = p.current.End
		}
		setLoc(e, kw.Start, end)
		begin.EnsureClause = e
		extend(begin, end)
	}
}

func extendRescue(r *ast.RescueNode) {
	if r.Consequent == nil {
		return
	}
	extendRescue(r.Consequent)
	extend(r, r.Consequent.Location.End)
}

func (p *Parser) parseRescueClause() *ast.RescueNode {
	kw := p.current
	p.lex()
	r := &ast.RescueNode{KeywordLoc: p.loc(kw), Exceptions: []ast.Node{}}
	end := kw.End

	if !p.match(EQUAL_GREATER, NEWLINE, SEMICOLON, KEYWORD_THEN) {
		for {
			var ex ast.Node
			if p.match(USTAR) {
				ex = p.parseSplat(bpDefined)
			} else {
				ex = p.parseExpression(bpDefined, "expected a rescued exception class")
			}
			r.Exceptions = append(r.Exceptions, ex)
			end = nodeEnd(ex)
			if isMissing(ex) || !p.accept(COMMA) {
				break
			}
		}
	}
	if p.match(EQUAL_GREATER) {
		op := p.current
		p.lex()
		r.OperatorLoc = p.loc(op)
		ref := p.parseExpression(bpIndex, "expected an exception variable after `=>` in rescue statement")
		r.Reference = p.parseTarget(ref)
		end = nodeEnd(r.Reference)
	}

	if p.accept(KEYWORD_THEN) {
		end = p.previous.End
	}
	r.Statements = p.parseOptionalStatements(ctxRescue)
	if r.Statements != nil {
		end = r.Statements.Location.End
	}
	setLoc(r, kw.Start, end)
	return r
}

/* ===========================
   BEGIN ... END
   =========================== */

func (p *Parser) parseBegin() ast.Node {
	kw := p.current
	p.lex()
	stmts := p.parseOptionalStatements(ctxBegin, KEYWORD_RESCUE, KEYWORD_ENSURE, KEYWORD_ELSE)
	begin := &ast.BeginNode{BeginKeywordLoc: p.loc(kw), Statements: stmts}
	setLoc(begin, kw.Start, kw.End)
	p.parseRescues(begin)
	p.expect("expected `end` to close `begin` statement", KEYWORD_END)
	begin.EndKeywordLoc = p.loc(p.previous)
	extend(begin, p.previous.End)
	return begin
}

// parsePrePostExecution handles BEGIN { ... } and END { ... }.
func (p *Parser) parsePrePostExecution() ast.Node {
	kw := p.current
	p.lex()
	pre := kw.Type == KEYWORD_BEGIN_UPCASE
	if pre && len(p.contexts) > 1 {
		p.errorTok(kw, "BEGIN is permitted only at toplevel")
	}
	ctx := ctxPostexe
	what := "END"
	if pre {
		ctx = ctxPreexe
		what = "BEGIN"
	}
	p.expect("expected `{` after `"+what+"`", BRACE_LEFT)
	opening := p.previous
	stmts := p.parseOptionalStatements(ctx)
	p.expect("expected `}` to close `"+what+"` block", BRACE_RIGHT)
	closing := p.previous
	if stmts == nil {
		stmts = newStatements(closing.Start)
	}
	if pre {
		n := &ast.PreExecutionNode{KeywordLoc: p.loc(kw), OpeningLoc: p.loc(opening), Statements: stmts, ClosingLoc: p.loc(closing)}
		setLoc(n, kw.Start, closing.End)
		return n
	}
	n := &ast.PostExecutionNode{KeywordLoc: p.loc(kw), OpeningLoc: p.loc(opening), Statements: stmts, ClosingLoc: p.loc(closing)}
	setLoc(n, kw.Start, closing.End)
	return n
}
