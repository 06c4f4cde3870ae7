package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   CONDITIONALS
   =========================== */

// parsePredicate parses the condition of if, unless, while, until, elsif
// and case, then the optional "then" or statement terminator.
func (p *Parser) parsePredicate(msg string, then ...TokenType) (ast.Node, ast.Location) {
	p.pushContext(ctxPredicate)
	pred := p.parseValue(bpModifier, msg)
	p.popContext()
	var thenLoc ast.Location
	switch {
	case p.match(then...):
		thenLoc = p.loc(p.current)
		p.lex()
	case p.acceptTerminators():
		if p.match(then...) {
			thenLoc = p.loc(p.current)
			p.lex()
		}
	default:
		if !p.recovering {
			p.errorAt(p.previous.End, p.previous.End, "expected `then` or `;` or '\\n'")
		}
	}
	return pred, thenLoc
}

func (p *Parser) parseConditional() ast.Node {
	kw := p.current
	p.lex()
	if kw.Type == KEYWORD_UNLESS {
		pred, _ := p.parsePredicate("expected a predicate expression for the `unless` statement", KEYWORD_THEN)
		n := &ast.UnlessNode{KeywordLoc: p.loc(kw), Predicate: pred}
		n.Statements = p.parseOptionalStatements(ctxUnless)
		if p.match(KEYWORD_ELSE) {
			n.Consequent = p.parseElse(ctxElse)
		}
		p.expect("expected an `end` to close the `unless` statement", KEYWORD_END)
		n.EndKeywordLoc = p.loc(p.previous)
		if n.Consequent != nil {
			n.Consequent.EndKeywordLoc = n.EndKeywordLoc
			extend(n.Consequent, p.previous.End)
		}
		setLoc(n, kw.Start, p.previous.End)
		return n
	}

	root := p.parseIfClause(kw, ctxIf)
	last := root
	for p.match(KEYWORD_ELSIF) {
		elsif := p.current
		p.lex()
		n := p.parseIfClause(elsif, ctxElsif)
		last.Consequent = n
		last = n
	}
	var els *ast.ElseNode
	if p.match(KEYWORD_ELSE) {
		els = p.parseElse(ctxElse)
		last.Consequent = els
	}
	p.expect("expected an `end` to close the conditional clause", KEYWORD_END)
	endTok := p.previous
	root.EndKeywordLoc = p.loc(endTok)
	if els != nil {
		els.EndKeywordLoc = p.loc(endTok)
		extend(els, endTok.End)
	}
	// Each elsif covers everything after it, up to the shared end.
	for n := root; n != nil; {
		extend(n, endTok.End)
		next, ok := n.Consequent.(*ast.IfNode)
		if !ok {
			break
		}
		n = next
	}
	return root
}

// parseIfClause parses the predicate and body of an if or elsif. kw has
// been consumed.
func (p *Parser) parseIfClause(kw Token, ctx context) *ast.IfNode {
	pred, _ := p.parsePredicate("expected a predicate expression for the `"+p.text(kw)+"` statement", KEYWORD_THEN)
	n := &ast.IfNode{IfKeywordLoc: p.loc(kw), Predicate: pred}
	n.Statements = p.parseOptionalStatements(ctx)
	end := maxEnd(kw.End, pred.Loc())
	if n.Statements != nil {
		end = n.Statements.Location.End
	}
	setLoc(n, kw.Start, end)
	return n
}

func (p *Parser) parseElse(ctx context) *ast.ElseNode {
	kw := p.current
	p.lex()
	stmts := p.parseOptionalStatements(ctx)
	n := &ast.ElseNode{ElseKeywordLoc: p.loc(kw), Statements: stmts}
	end := kw.End
	if stmts != nil {
		end = stmts.Location.End
	}
	setLoc(n, kw.Start, end)
	return n
}

/* ===========================
   LOOPS
   =========================== */

func (p *Parser) parseLoop() ast.Node {
	kw := p.current
	p.lex()
	p.doLoopStack.push(true)
	pred, _ := p.parsePredicate("expected a predicate expression for the `"+p.text(kw)+"` statement", KEYWORD_DO_LOOP)
	p.doLoopStack.pop()

	ctx := ctxWhile
	if kw.Type == KEYWORD_UNTIL {
		ctx = ctxUntil
	}
	stmts := p.parseOptionalStatements(ctx)
	p.expect("expected an `end` to close the `"+p.text(kw)+"` statement", KEYWORD_END)
	closing := p.loc(p.previous)

	if kw.Type == KEYWORD_UNTIL {
		n := &ast.UntilNode{KeywordLoc: p.loc(kw), Predicate: pred, Statements: stmts, ClosingLoc: closing}
		setLoc(n, kw.Start, p.previous.End)
		return n
	}
	n := &ast.WhileNode{KeywordLoc: p.loc(kw), Predicate: pred, Statements: stmts, ClosingLoc: closing}
	setLoc(n, kw.Start, p.previous.End)
	return n
}

func (p *Parser) parseFor() ast.Node {
	kw := p.current
	p.lex()

	var index ast.Node
	p.pushContext(ctxForIndex)
	switch {
	case p.match(USTAR):
		index = p.parseSplat(bpIndex)
	default:
		index = p.parseExpression(bpIndex, "expected an index after `for`")
	}
	if p.match(COMMA) {
		index = p.parseMultiTargets(index)
	} else {
		index = p.parseTarget(index)
	}
	p.popContext()

	p.doLoopStack.push(true)
	p.expect("expected an `in` after the index in a `for` statement", KEYWORD_IN)
	in := p.previous
	collection := p.parseValue(bpStatement, "expected a collection after the `in` in a `for` statement")
	p.doLoopStack.pop()

	var doLoc ast.Location
	if p.match(KEYWORD_DO_LOOP) {
		doLoc = p.loc(p.current)
		p.lex()
	} else if !p.acceptTerminators() {
		p.errorAt(p.previous.End, p.previous.End, "expected a `do` or newline after the collection in a `for` statement")
	}
	stmts := p.parseOptionalStatements(ctxFor)
	p.expect("expected an `end` to close the `for` loop", KEYWORD_END)

	n := &ast.ForNode{
		ForKeywordLoc: p.loc(kw),
		Index:         index,
		InKeywordLoc:  p.loc(in),
		Collection:    collection,
		DoKeywordLoc:  doLoc,
		Statements:    stmts,
		EndKeywordLoc: p.loc(p.previous),
	}
	setLoc(n, kw.Start, p.previous.End)
	return n
}

/* ===========================
   CASE
   =========================== */

func (p *Parser) parseCase() ast.Node {
	kw := p.current
	p.lex()
	n := &ast.CaseNode{CaseKeywordLoc: p.loc(kw), Conditions: []ast.Node{}}

	if !p.acceptTerminators() {
		n.Predicate = p.parseValue(bpModifier, "expected a value after the `case` keyword")
		p.acceptTerminators()
	}

	switch {
	case p.match(KEYWORD_WHEN):
		for p.match(KEYWORD_WHEN) {
			n.Conditions = append(n.Conditions, p.parseWhen())
		}
	case p.match(KEYWORD_IN):
		if n.Predicate == nil {
			p.errorTok(p.current, "expected a predicate for a case matching statement")
		}
		for p.match(KEYWORD_IN) {
			n.Conditions = append(n.Conditions, p.parseIn())
		}
	default:
		p.errorTok(p.current, "expected a `when` or `in` clause after `case`")
	}

	if p.match(KEYWORD_ELSE) {
		ctx := ctxElse
		n.Consequent = p.parseElse(ctx)
	}
	p.expect("expected an `end` to close the `case` statement", KEYWORD_END)
	n.EndKeywordLoc = p.loc(p.previous)
	if n.Consequent != nil {
		n.Consequent.EndKeywordLoc = n.EndKeywordLoc
		extend(n.Consequent, p.previous.End)
	}
	end := endOf(p.previous.End, n.Predicate, lastOf(n.Conditions))
	if n.Consequent != nil {
		end = endOf(end, n.Consequent)
	}
	setLoc(n, kw.Start, end)
	return n
}

func (p *Parser) parseWhen() ast.Node {
	kw := p.current
	p.lex()
	w := &ast.WhenNode{KeywordLoc: p.loc(kw), Conditions: []ast.Node{}}
	end := kw.End
	for {
		var cond ast.Node
		if p.match(USTAR) {
			cond = p.parseSplat(bpDefined)
		} else {
			cond = p.parseValue(bpDefined, "expected a value after the `when` keyword")
		}
		w.Conditions = append(w.Conditions, cond)
		end = nodeEnd(cond)
		if isMissing(cond) || !p.accept(COMMA) {
			break
		}
	}
	switch {
	case p.accept(KEYWORD_THEN):
		end = p.previous.End
	case p.acceptTerminators():
		if p.accept(KEYWORD_THEN) {
			end = p.previous.End
		}
	default:
		p.errorAt(end, end, "expected a delimiter after the predicates of a `when` clause")
	}
	w.Statements = p.parseOptionalStatements(ctxCaseWhen)
	if w.Statements != nil {
		end = w.Statements.Location.End
	}
	setLoc(w, kw.Start, end)
	return w
}

func (p *Parser) parseIn() ast.Node {
	kw := p.current
	p.lexState = stateBEG | stateLABEL
	p.commandStart = false
	p.lex()

	pattern := p.parsePatternTop("expected a pattern after the `in` keyword")
	if p.match(KEYWORD_IF_MODIFIER, KEYWORD_UNLESS_MODIFIER) {
		guard := p.current
		p.lex()
		pred := p.parseValue(bpDefined, "expected a guard expression after `"+p.text(guard)+"`")
		if guard.Type == KEYWORD_IF_MODIFIER {
			g := &ast.IfNode{IfKeywordLoc: p.loc(guard), Predicate: pred, Statements: statementsOf(pattern)}
			setLoc(g, nodeStart(pattern), maxEnd(guard.End, pred.Loc()))
			pattern = g
		} else {
			g := &ast.UnlessNode{KeywordLoc: p.loc(guard), Predicate: pred, Statements: statementsOf(pattern)}
			setLoc(g, nodeStart(pattern), maxEnd(guard.End, pred.Loc()))
			pattern = g
		}
	}

	in := &ast.InNode{InLoc: p.loc(kw), Pattern: pattern}
	end := maxEnd(kw.End, pattern.Loc())
	switch {
	case p.match(KEYWORD_THEN):
		in.ThenLoc = p.loc(p.current)
		end = p.current.End
		p.lex()
	case p.acceptTerminators():
		if p.match(KEYWORD_THEN) {
			in.ThenLoc = p.loc(p.current)
			end = p.current.End
			p.lex()
		}
	default:
		p.errorAt(end, end, "expected a delimiter after the patterns of an `in` clause")
	}
	in.Statements = p.parseOptionalStatements(ctxCaseIn)
	if in.Statements != nil {
		end = in.Statements.Location.End
	}
	setLoc(in, kw.Start, end)
	return in
}

/* ===========================
   JUMPS AND YIELD
   =========================== */

// parseJump parses return, break and next with their optional arguments.
func (p *Parser) parseJump() ast.Node {
	kw := p.current
	p.lex()

	var args *ast.ArgumentsNode
	if tokenBeginsExpression(p.current.Type) || p.match(USTAR, USTAR_STAR) {
		var a arguments
		p.parseArguments(&a, false, EOF)
		args = a.args
		if a.block != nil {
			p.errorNode(a.block, "block argument should not be given")
		}
	}

	end := kw.End
	if args != nil {
		end = args.Location.End
	}
	switch kw.Type {
	case KEYWORD_RETURN:
		n := &ast.ReturnNode{KeywordLoc: p.loc(kw), Arguments: args}
		setLoc(n, kw.Start, end)
		return n
	case KEYWORD_BREAK:
		p.checkJumpContext(kw)
		n := &ast.BreakNode{KeywordLoc: p.loc(kw), Arguments: args}
		setLoc(n, kw.Start, end)
		return n
	}
	p.checkJumpContext(kw)
	n := &ast.NextNode{KeywordLoc: p.loc(kw), Arguments: args}
	setLoc(n, kw.Start, end)
	return n
}

// checkJumpContext reports break or next used where there is no block or
// loop to leave.
func (p *Parser) checkJumpContext(kw Token) {
	for i := len(p.contexts) - 1; i >= 0; i-- {
		switch p.contexts[i] {
		case ctxBlockBraces, ctxBlockKeywords, ctxLambdaBraces, ctxLambdaDoEnd,
			ctxWhile, ctxUntil, ctxFor, ctxPredicate, ctxDefaultParams, ctxDefParams, ctxEmbexpr:
			return
		case ctxDef, ctxClass, ctxModule, ctxSclass:
			p.errorTok(kw, "Invalid %s", p.text(kw))
			return
		}
	}
	if len(p.evalScopes) == 0 {
		p.errorTok(kw, "Invalid %s", p.text(kw))
	}
}

func (p *Parser) parseYield() ast.Node {
	kw := p.current
	p.lex()
	p.checkYieldContext(kw)
	var a arguments
	p.parseArgumentsList(&a, false)
	n := &ast.YieldNode{KeywordLoc: p.loc(kw), LparenLoc: a.opening, Arguments: a.args, RparenLoc: a.closing}
	if a.block != nil {
		p.errorNode(a.block, "block argument should not be given")
	}
	end := maxEnd(kw.End, a.closing)
	if a.args != nil {
		end = maxEnd(end, a.args.Location)
	}
	setLoc(n, kw.Start, end)
	return n
}

// checkYieldContext reports yield in a class or module body, or at the top
// level, where there is no block to yield to.
func (p *Parser) checkYieldContext(kw Token) {
	for i := len(p.contexts) - 1; i >= 0; i-- {
		switch p.contexts[i] {
		case ctxDef, ctxDefParams, ctxDefaultParams:
			return
		case ctxClass, ctxModule, ctxSclass:
			p.errorTok(kw, "Invalid yield")
			return
		}
	}
	if len(p.evalScopes) == 0 {
		p.errorTok(kw, "Invalid yield")
	}
}

// parseSuper parses super. Without arguments or parentheses it forwards the
// current method's arguments.
func (p *Parser) parseSuper() ast.Node {
	kw := p.current
	p.lex()
	var a arguments
	p.parseArgumentsList(&a, true)

	if !present(a.opening) && a.args == nil {
		b, ok := a.block.(*ast.BlockNode)
		if a.block == nil || ok {
			n := &ast.ForwardingSuperNode{Block: b}
			end := kw.End
			if b != nil {
				end = b.Location.End
			}
			setLoc(n, kw.Start, end)
			return n
		}
	}

	n := &ast.SuperNode{KeywordLoc: p.loc(kw), LparenLoc: a.opening, Arguments: a.args, RparenLoc: a.closing}
	if a.block != nil {
		n.Block = a.block
	}
	end := maxEnd(kw.End, a.closing)
	if a.args != nil {
		end = maxEnd(end, a.args.Location)
	}
	if a.block != nil {
		end = maxEnd(end, a.block.Loc())
	}
	setLoc(n, kw.Start, end)
	return n
}

// parseDefined parses "defined?(expr)" and "defined? expr".
func (p *Parser) parseDefined() ast.Node {
	kw := p.current
	p.lex()
	n := &ast.DefinedNode{KeywordLoc: p.loc(kw)}
	if p.match(PARENTHESIS_LEFT) {
		open := p.current
		p.lex()
		p.accept(NEWLINE)
		n.LparenLoc = p.loc(open)
		n.Value = p.parseExpression(bpStatement, "expected an expression after `defined?`")
		p.accept(NEWLINE)
		p.expect("expected a `)` after `defined?`", PARENTHESIS_RIGHT)
		n.RparenLoc = p.loc(p.previous)
		setLoc(n, kw.Start, p.previous.End)
		return n
	}
	n.Value = p.parseExpression(lbp(KEYWORD_DEFINED).right, "expected an expression after `defined?`")
	setLoc(n, kw.Start, maxEnd(kw.End, n.Value.Loc()))
	return n
}
