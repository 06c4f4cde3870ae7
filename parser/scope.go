package parser

// scope holds the local variables declared in one lexical region. A top
// scope (program, def, class, module) hides everything outside it; block
// and lambda scopes see through to their parent.
type scope struct {
	locals []string
	top    bool

	// Parameters that allow anonymous forwarding in the body.
	forwardAll bool // ...
	anonRest   bool // *
	anonKwRest bool // **
	anonBlock  bool // &
}

// pushScope opens a new scope. Scopes are addressed by index into
// p.scopes, never by pointer, so popping cannot leave a dangling reference.
func (p *Parser) pushScope(top bool) {
	p.scopes = append(p.scopes, scope{top: top})
}

// popScope closes the innermost scope and returns its locals in
// declaration order.
func (p *Parser) popScope() []string {
	n := len(p.scopes)
	if n == 0 {
		return nil
	}
	locals := p.scopes[n-1].locals
	p.scopes = p.scopes[:n-1]
	if locals == nil {
		locals = []string{}
	}
	return locals
}

func (p *Parser) currentScope() *scope {
	if len(p.scopes) == 0 {
		p.pushScope(true)
	}
	return &p.scopes[len(p.scopes)-1]
}

func (s *scope) has(name string) bool {
	for _, l := range s.locals {
		if l == name {
			return true
		}
	}
	return false
}

// localDepth returns how many scopes outward name was declared, or -1 if it
// is not visible from the current scope.
func (p *Parser) localDepth(name string) int {
	depth := 0
	for i := len(p.scopes) - 1; i >= 0; i-- {
		s := &p.scopes[i]
		if s.has(name) {
			return depth
		}
		if s.top {
			break
		}
		depth++
	}
	return -1
}

// localAdd declares name in the current scope. Declaring twice is a no-op.
func (p *Parser) localAdd(name string) {
	s := p.currentScope()
	if !s.has(name) {
		s.locals = append(s.locals, name)
	}
}

// localAddAtDepth declares name in the scope depth levels out.
func (p *Parser) localAddAtDepth(name string, depth int) {
	i := len(p.scopes) - 1 - depth
	if i < 0 {
		i = 0
	}
	s := &p.scopes[i]
	if !s.has(name) {
		s.locals = append(s.locals, name)
	}
}

// forwardingScope returns the nearest enclosing def scope, the one whose
// parameters decide what anonymous arguments may be forwarded.
func (p *Parser) forwardingScope() *scope {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i].top {
			return &p.scopes[i]
		}
	}
	return p.currentScope()
}
