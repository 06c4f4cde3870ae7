package parser

import (
	"github.com/ruby/ruby-sub004/ast"
)

/* ===========================
   METHOD DEFINITIONS
   =========================== */

// defName reports whether t can name a method after "def".
func defName(t TokenType) bool {
	return t == IDENTIFIER || t == CONSTANT || t == METHOD_NAME || t.isKeyword() || operatorMethod(t)
}

// defReceiver reports whether t can be the receiver in "def recv.name".
func defReceiver(t TokenType) bool {
	switch t {
	case IDENTIFIER, CONSTANT, INSTANCE_VARIABLE, CLASS_VARIABLE, GLOBAL_VARIABLE,
		KEYWORD_SELF, KEYWORD_NIL, KEYWORD_TRUE, KEYWORD_FALSE,
		KEYWORD___FILE__, KEYWORD___LINE__, KEYWORD___ENCODING__:
		return true
	}
	return false
}

// methodName is the name a definition or call token stands for. Unary
// operators carry an "@" suffix; "!" and "~" do not.
func (p *Parser) methodName(t Token) string {
	switch t.Type {
	case UPLUS:
		return "+@"
	case UMINUS:
		return "-@"
	case BANG:
		return "!"
	case TILDE:
		return "~"
	}
	return p.text(t)
}

func (p *Parser) receiverNode(t Token) ast.Node {
	name := p.text(t)
	switch t.Type {
	case KEYWORD_SELF:
		return leaf(&ast.SelfNode{}, t)
	case KEYWORD_NIL:
		return leaf(&ast.NilNode{}, t)
	case KEYWORD_TRUE:
		return leaf(&ast.TrueNode{}, t)
	case KEYWORD_FALSE:
		return leaf(&ast.FalseNode{}, t)
	case KEYWORD___FILE__:
		return leaf(&ast.SourceFileNode{Filepath: p.filepath}, t)
	case KEYWORD___LINE__:
		return leaf(&ast.SourceLineNode{}, t)
	case KEYWORD___ENCODING__:
		return leaf(&ast.SourceEncodingNode{}, t)
	case CONSTANT:
		return leaf(&ast.ConstantReadNode{Name: name}, t)
	case INSTANCE_VARIABLE:
		return leaf(&ast.InstanceVariableReadNode{Name: name}, t)
	case CLASS_VARIABLE:
		return leaf(&ast.ClassVariableReadNode{Name: name}, t)
	case GLOBAL_VARIABLE:
		return leaf(&ast.GlobalVariableReadNode{Name: name}, t)
	}
	if depth := p.localDepth(name); depth >= 0 {
		return leaf(&ast.LocalVariableReadNode{Name: name, Depth: depth}, t)
	}
	c := p.callNode(nil, ast.Location{}, p.loc(t), name, arguments{})
	c.SetFlag(ast.CallVariableCall)
	return c
}

// setterName reports whether name is an attribute writer. Comparison
// operators end in "=" but are not setters.
func setterName(name string) bool {
	switch name {
	case "==", "===", "!=", "<=", ">=", "[]=":
		return false
	}
	return len(name) > 1 && name[len(name)-1] == '='
}

func (p *Parser) parseDef() ast.Node {
	kw := p.current
	p.lex()

	def := &ast.DefNode{DefKeywordLoc: p.loc(kw)}
	var nameTok Token

	switch {
	case p.match(PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES):
		// def (expr).name
		open := p.current
		p.lex()
		expr := p.parseValue(bpStatement, "expected an expression for the singleton method receiver")
		p.accept(NEWLINE)
		p.expect("expected a `)` after the singleton method receiver", PARENTHESIS_RIGHT)
		paren := &ast.ParenthesesNode{OpeningLoc: p.loc(open), Body: expr, ClosingLoc: p.loc(p.previous)}
		setLoc(paren, open.Start, p.previous.End)
		def.Receiver = paren
		if !p.match(DOT, COLON_COLON) {
			p.errorAt(p.previous.End, p.previous.End, "expected a `.` or `::` after the singleton method receiver")
		} else {
			def.OperatorLoc = p.loc(p.current)
			p.lexState = stateFNAME
			p.lex()
		}
		nameTok = p.current
		if defName(nameTok.Type) {
			p.lex()
		}

	case defName(p.current.Type) || defReceiver(p.current.Type):
		first := p.current
		p.lex()
		if p.match(DOT, COLON_COLON) && defReceiver(first.Type) {
			def.Receiver = p.receiverNode(first)
			def.OperatorLoc = p.loc(p.current)
			p.lexState = stateFNAME
			p.lex()
			nameTok = p.current
			if defName(nameTok.Type) {
				p.lex()
			}
		} else {
			nameTok = first
		}

	default:
		nameTok = p.current
	}

	if !defName(nameTok.Type) {
		p.errorTok(nameTok, "unexpected %s; expected a method name", nameTok.Type.Human())
		nameTok = Token{Type: MISSING, Start: nameTok.Start, End: nameTok.Start}
	} else {
		def.Name = p.methodName(nameTok)
	}
	def.NameLoc = p.loc(nameTok)

	p.pushScope(true)
	p.pushContext(ctxDefParams)
	switch {
	case p.match(PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES):
		open := p.current
		p.lex()
		def.LparenLoc = p.loc(open)
		def.Parameters = p.parseParameters(PARENTHESIS_RIGHT, true, bpDefined)
		p.accept(NEWLINE)
		p.lexState = stateBEG
		p.commandStart = true
		p.expect("expected a `)` to close the parameters", PARENTHESIS_RIGHT)
		def.RparenLoc = p.loc(p.previous)
	case !p.match(NEWLINE, SEMICOLON, EQUAL, EOF):
		def.Parameters = p.parseParameters(NEWLINE, true, bpDefined)
	}
	p.popContext()

	end := maxEnd(nameTok.End, def.RparenLoc)
	if def.Parameters != nil {
		end = maxEnd(end, def.Parameters.Location)
	}

	if p.match(EQUAL) {
		// Endless definition: def name(args) = expr
		if setterName(def.Name) {
			p.errorTok(nameTok, "invalid method name; a setter method cannot be defined in an endless method definition")
		}
		eq := p.current
		p.lex()
		def.EqualLoc = p.loc(eq)
		p.pushContext(ctxDef)
		body := p.parseValue(bpDefined, "expected a method body after `=`")
		if p.match(KEYWORD_RESCUE_MODIFIER) {
			rkw := p.current
			p.lex()
			rescue := p.parseExpression(bpDefined, "expected a value after the `rescue` modifier")
			body = p.rescueModifier(body, rkw, rescue)
		}
		p.popContext()
		def.Body = statementsOf(body)
		end = nodeEnd(body)
	} else {
		p.acceptsBlockStack.push(true)
		p.doLoopStack.push(false)
		def.Body = p.parseBodyWithRescues(ctxDef)
		p.doLoopStack.pop()
		p.acceptsBlockStack.pop()
		p.expect("expected an `end` to close the `def` statement", KEYWORD_END)
		def.EndKeywordLoc = p.loc(p.previous)
		end = p.previous.End
	}

	def.Locals = p.popScope()
	setLoc(def, kw.Start, end)
	return def
}

/* ===========================
   CLASSES AND MODULES
   =========================== */

// constantName is the last segment of a class or module path.
func constantName(n ast.Node) (string, bool) {
	switch c := n.(type) {
	case *ast.ConstantReadNode:
		return c.Name, true
	case *ast.ConstantPathNode:
		if r, ok := c.Child.(*ast.ConstantReadNode); ok {
			return r.Name, true
		}
	}
	return "", false
}

func (p *Parser) parseClass() ast.Node {
	kw := p.current
	p.lex()

	if p.match(LESS_LESS) {
		op := p.current
		p.lex()
		expr := p.parseValue(bpNot, "expected an expression after `class <<`")
		p.pushScope(true)
		body := p.parseBodyWithRescues(ctxSclass)
		p.expect("expected an `end` to close the `class` statement", KEYWORD_END)
		n := &ast.SingletonClassNode{
			Locals:          p.popScope(),
			ClassKeywordLoc: p.loc(kw),
			OperatorLoc:     p.loc(op),
			Expression:      expr,
			Body:            body,
			EndKeywordLoc:   p.loc(p.previous),
		}
		setLoc(n, kw.Start, p.previous.End)
		return n
	}

	if p.inContext(ctxDef, true) {
		p.errorTok(kw, "class definition in method body")
	}
	path := p.parseExpression(bpIndex, "expected a constant name after `class`")
	name, ok := constantName(path)
	if !ok && !isMissing(path) {
		p.errorNode(path, "class/module name must be CONSTANT")
	}

	n := &ast.ClassNode{ClassKeywordLoc: p.loc(kw), ConstantPath: path, Name: name}
	if p.match(LESS) {
		op := p.current
		p.lex()
		n.InheritanceOperatorLoc = p.loc(op)
		n.Superclass = p.parseValue(bpIndex, "expected a superclass after `<`")
	}

	p.pushScope(true)
	n.Body = p.parseBodyWithRescues(ctxClass)
	p.expect("expected an `end` to close the `class` statement", KEYWORD_END)
	n.Locals = p.popScope()
	n.EndKeywordLoc = p.loc(p.previous)
	setLoc(n, kw.Start, p.previous.End)
	return n
}

func (p *Parser) parseModule() ast.Node {
	kw := p.current
	p.lex()
	if p.inContext(ctxDef, true) {
		p.errorTok(kw, "module definition in method body")
	}
	path := p.parseExpression(bpIndex, "expected a constant name after `module`")
	name, ok := constantName(path)
	if !ok && !isMissing(path) {
		p.errorNode(path, "class/module name must be CONSTANT")
	}

	p.pushScope(true)
	body := p.parseBodyWithRescues(ctxModule)
	p.expect("expected an `end` to close the `module` statement", KEYWORD_END)
	n := &ast.ModuleNode{
		Locals:           p.popScope(),
		ModuleKeywordLoc: p.loc(kw),
		ConstantPath:     path,
		Body:             body,
		EndKeywordLoc:    p.loc(p.previous),
		Name:             name,
	}
	setLoc(n, kw.Start, p.previous.End)
	return n
}

/* ===========================
   LAMBDAS
   =========================== */

func (p *Parser) parseLambda() ast.Node {
	op := p.current
	saved := p.lambdaEnclosureNesting
	p.lambdaEnclosureNesting = p.enclosureNesting
	p.pushScope(false)
	p.lex()

	var params *ast.BlockParametersNode
	switch {
	case p.match(PARENTHESIS_LEFT, PARENTHESIS_LEFT_PARENTHESES):
		open := p.current
		p.lex()
		params = &ast.BlockParametersNode{OpeningLoc: p.loc(open), Locals: []ast.Node{}}
		if !p.match(PARENTHESIS_RIGHT, SEMICOLON) {
			params.Parameters = p.parseParameters(PARENTHESIS_RIGHT, false, bpDefined)
		}
		if p.accept(SEMICOLON) {
			p.parseBlockLocals(params)
		}
		p.accept(NEWLINE)
		p.expect("expected a `)` to close the lambda parameters", PARENTHESIS_RIGHT)
		params.ClosingLoc = p.loc(p.previous)
		setLoc(params, open.Start, p.previous.End)
	case p.match(IDENTIFIER, USTAR, USTAR_STAR, UAMPERSAND, LABEL, UDOT_DOT_DOT):
		if ps := p.parseParameters(LAMBDA_BEGIN, false, bpIndex); ps != nil {
			params = &ast.BlockParametersNode{Parameters: ps, Locals: []ast.Node{}}
			setLoc(params, ps.Location.Start, ps.Location.End)
		}
	}

	// The opener has been read under the lambda's nesting; what follows
	// it belongs to the body.
	p.lambdaEnclosureNesting = saved
	var open Token
	var body ast.Node
	p.acceptsBlockStack.push(true)
	if p.match(LAMBDA_BEGIN) {
		open = p.current
		p.lex()
		body = asNode(p.parseOptionalStatements(ctxLambdaBraces))
		p.expect("expected a lambda block beginning with `{` to end with `}`", BRACE_RIGHT)
	} else {
		p.expect("expected a `do` keyword or a `{` to open the lambda block", KEYWORD_DO)
		open = p.previous
		body = p.parseBodyWithRescues(ctxLambdaDoEnd)
		p.expect("expected a lambda block beginning with `do` to end with `end`", KEYWORD_END)
	}
	p.acceptsBlockStack.pop()

	n := &ast.LambdaNode{
		Locals:      p.popScope(),
		OperatorLoc: p.loc(op),
		OpeningLoc:  p.loc(open),
		Parameters:  params,
		Body:        body,
		ClosingLoc:  p.loc(p.previous),
	}
	setLoc(n, op.Start, p.previous.End)
	return n
}

/* ===========================
   ALIAS AND UNDEF
   =========================== */

// parseMethodNameItem parses one name after alias or undef: a bare method
// name, an operator, a symbol, or for alias a global variable.
func (p *Parser) parseMethodNameItem(globals bool) ast.Node {
	tok := p.current
	switch {
	case tok.Type == SYMBOL_BEGIN:
		return p.parseSymbol()
	case defName(tok.Type):
		p.lex()
		n := &ast.SymbolNode{ValueLoc: p.loc(tok), Unescaped: []byte(p.methodName(tok))}
		setLoc(n, tok.Start, tok.End)
		return n
	case globals && tok.Type == GLOBAL_VARIABLE:
		p.lex()
		return leaf(&ast.GlobalVariableReadNode{Name: p.text(tok)}, tok)
	case globals && tok.Type == BACK_REFERENCE:
		p.lex()
		return leaf(&ast.BackReferenceReadNode{Name: p.text(tok)}, tok)
	case globals && tok.Type == NUMBERED_REFERENCE:
		p.lex()
		p.errorTok(tok, "can't make alias for the number variables")
		return leaf(&ast.GlobalVariableReadNode{Name: p.text(tok)}, tok)
	}
	return p.missing("unexpected %s; expected a method name", tok.Type.Human())
}

func isGlobalName(n ast.Node) bool {
	switch n.(type) {
	case *ast.GlobalVariableReadNode, *ast.BackReferenceReadNode:
		return true
	}
	return false
}

func (p *Parser) parseAlias() ast.Node {
	kw := p.current
	p.lex()
	newName := p.parseMethodNameItem(true)
	if !isMissing(newName) {
		p.relex(stateFNAME | stateFITEM)
	}
	oldName := p.parseMethodNameItem(true)
	if !isMissing(newName) && !isMissing(oldName) && isGlobalName(newName) != isGlobalName(oldName) {
		p.errorNode(oldName, "invalid argument being passed to `alias`; expected a bare word, symbol, constant, or global variable")
	}
	n := &ast.AliasNode{KeywordLoc: p.loc(kw), NewName: newName, OldName: oldName}
	setLoc(n, kw.Start, maxEnd(kw.End, newName.Loc(), oldName.Loc()))
	return n
}

func (p *Parser) parseUndef() ast.Node {
	kw := p.current
	p.lex()
	n := &ast.UndefNode{KeywordLoc: p.loc(kw), Names: []ast.Node{}}
	end := kw.End
	for {
		name := p.parseMethodNameItem(false)
		n.Names = append(n.Names, name)
		end = maxEnd(end, name.Loc())
		if isMissing(name) || !p.match(COMMA) {
			break
		}
		p.lexState = stateFNAME | stateFITEM
		p.lex()
	}
	setLoc(n, kw.Start, end)
	return n
}
