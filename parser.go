// parser.go — recursive-descent parser producing the Stmt/Expr trees
// ast.go declares. Grounded on original_source/src/parser/parse.rs for the
// grammar shape (precedence-climbing expression parser, statement dispatch
// on leading keyword, for-loop desugaring into WhileStmt) and on
// daios-ai-msg/parser.go's accumulate-and-synchronize error-recovery
// convention: a syntax error is recorded and parsing resumes at the next
// statement boundary instead of aborting on the first mistake.
package rox

import "fmt"

// Parser consumes a token stream and produces a Stmt slice plus any
// ParseErrors encountered. Every Expr node it builds is tagged with a
// monotonically increasing ExprId, the resolver's side-table key.
type Parser struct {
	tokens  []Token
	pos     int
	nextID  ExprId
	errs    []*ParseError
	loopDepth int
	funcDepth int
}

// NewParser constructs a Parser over a finished token stream (EOF-terminated).
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the entire token stream as a sequence of top-level
// statements (a program or a module body) and returns any ParseErrors
// accumulated along the way.
func (p *Parser) Parse() ([]Stmt, []*ParseError) {
	var stmts []Stmt
	for !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts, p.errs
}

func (p *Parser) newID() ExprId {
	id := p.nextID
	p.nextID++
	return id
}

////////////////////////////////////////////////////////////////////////////
// Token stream primitives
////////////////////////////////////////////////////////////////////////////

func (p *Parser) atEnd() bool     { return p.peek().Kind == EOF }
func (p *Parser) peek() Token     { return p.tokens[p.pos] }
func (p *Parser) previous() Token { return p.tokens[p.pos-1] }

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(k TokenKind) bool {
	if p.atEnd() {
		return k == EOF
	}
	return p.peek().Kind == k
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(k TokenKind, msg string) Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	return p.peek()
}

func (p *Parser) errorAt(t Token, format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)})
}

// synchronize discards tokens until a likely statement boundary, so a
// single syntax error does not cascade into dozens of spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN, TRY, EXPORT:
			return
		}
		p.advance()
	}
}

////////////////////////////////////////////////////////////////////////////
// Statements
////////////////////////////////////////////////////////////////////////////

func (p *Parser) declaration() Stmt {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseBail); ok {
				p.synchronize()
				return
			}
			panic(r)
		}
	}()
	switch {
	case p.match(VAR):
		return p.varDecl()
	case p.match(FUN):
		return p.functionDecl("function")
	case p.match(CLASS):
		return p.classDecl()
	case p.match(EXPORT):
		return p.exportDecl()
	default:
		return p.statement()
	}
}

// parseBail unwinds declaration() to its synchronize point on unrecoverable
// local syntax errors (mirrors daios-ai-msg/parser.go's panic/recover use at
// statement granularity).
type parseBail struct{}

func (p *Parser) bail(t Token, format string, args ...interface{}) {
	p.errorAt(t, format, args...)
	panic(parseBail{})
}

func (p *Parser) varDecl() Stmt {
	name := p.consume(IDENT, "expected variable name")
	var init Expr
	if p.match(ASSIGN) {
		init = p.expression()
	}
	p.consume(SEMICOLON, "expected ';' after variable declaration")
	return &VarStmt{Name: name, Initializer: init}
}

func (p *Parser) functionDecl(kind string) *FunctionStmt {
	name := p.consume(IDENT, fmt.Sprintf("expected %s name", kind))
	p.consume(LPAREN, fmt.Sprintf("expected '(' after %s name", kind))
	params := p.paramList()
	p.consume(LBRACE, fmt.Sprintf("expected '{' before %s body", kind))
	p.funcDepth++
	body := p.block()
	p.funcDepth--
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) paramList() []Token {
	var params []Token
	if !p.check(RPAREN) {
		for {
			params = append(params, p.consume(IDENT, "expected parameter name"))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "expected ')' after parameters")
	return params
}

func (p *Parser) classDecl() Stmt {
	name := p.consume(IDENT, "expected class name")
	var super *VariableExpr
	if p.match(LESS) {
		superName := p.consume(IDENT, "expected superclass name")
		super = &VariableExpr{exprBase{p.newID()}, superName}
	}
	p.consume(LBRACE, "expected '{' before class body")
	var methods []*FunctionStmt
	for !p.check(RBRACE) && !p.atEnd() {
		methods = append(methods, p.functionDecl("method"))
	}
	p.consume(RBRACE, "expected '}' after class body")
	return &ClassStmt{Name: name, Superclass: super, Methods: methods}
}

// exportDecl wraps a top-level var/function declaration. Nested `export` is
// a resolver error, not a parse error (spec.md §9's open question decision
// recorded in SPEC_FULL.md §13), so the parser accepts it here unconditionally.
func (p *Parser) exportDecl() Stmt {
	var decl Stmt
	switch {
	case p.match(VAR):
		decl = p.varDecl()
	case p.match(FUN):
		decl = p.functionDecl("function")
	default:
		p.bail(p.peek(), "expected variable or function declaration after 'export'")
	}
	return &ExportStmt{Decl: decl}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(PRINT):
		return p.printStmt()
	case p.match(LBRACE):
		return &BlockStmt{Statements: p.block()}
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(FOR):
		return p.forStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(BREAK):
		return p.breakStmt()
	case p.match(CONTINUE):
		return p.continueStmt()
	case p.match(TRY):
		return p.tryStmt()
	case p.match(THROW):
		return p.throwStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(RBRACE) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(RBRACE, "expected '}' after block")
	return stmts
}

func (p *Parser) printStmt() Stmt {
	v := p.expression()
	p.consume(SEMICOLON, "expected ';' after value")
	return &PrintStmt{Expression: v}
}

func (p *Parser) exprStmt() Stmt {
	e := p.expression()
	p.consume(SEMICOLON, "expected ';' after expression")
	return &ExprStmt{Expression: e}
}

func (p *Parser) ifStmt() Stmt {
	p.consume(LPAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(RPAREN, "expected ')' after condition")
	then := p.statement()
	var els Stmt
	if p.match(ELSE) {
		els = p.statement()
	}
	return &IfStmt{Condition: cond, Then: then, Else: els}
}

func (p *Parser) whileStmt() Stmt {
	p.consume(LPAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(RPAREN, "expected ')' after condition")
	p.loopDepth++
	body := p.statement()
	p.loopDepth--
	return &WhileStmt{Condition: cond, Body: body}
}

// forStmt desugars `for(init;cond;step)body` into
// `{init; while(cond){body}}`, retaining step on the WhileStmt node so
// `continue` can re-run it before re-checking cond (spec.md §4.1, §4.3).
func (p *Parser) forStmt() Stmt {
	p.consume(LPAREN, "expected '(' after 'for'")

	var init Stmt
	switch {
	case p.match(SEMICOLON):
		// no initializer
	case p.match(VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond = p.expression()
	}
	p.consume(SEMICOLON, "expected ';' after loop condition")

	var step Expr
	if !p.check(RPAREN) {
		step = p.expression()
	}
	p.consume(RPAREN, "expected ')' after for clauses")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if cond == nil {
		cond = &LiteralExpr{exprBase{p.newID()}, BoolVal(true)}
	}
	loop := &WhileStmt{Condition: cond, Body: body, Step: step}

	if init == nil {
		return loop
	}
	return &BlockStmt{Statements: []Stmt{init, loop}}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.previous()
	if p.funcDepth == 0 {
		p.errorAt(keyword, "'return' outside of a function")
	}
	var value Expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, "expected ';' after return value")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStmt() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "'break' outside of a loop")
	}
	p.consume(SEMICOLON, "expected ';' after 'break'")
	return &BreakStmt{}
}

func (p *Parser) continueStmt() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "'continue' outside of a loop")
	}
	p.consume(SEMICOLON, "expected ';' after 'continue'")
	return &ContinueStmt{}
}

func (p *Parser) tryStmt() Stmt {
	p.consume(LBRACE, "expected '{' after 'try'")
	tryBlock := &BlockStmt{Statements: p.block()}
	p.consume(CATCH, "expected 'catch' after try block")
	p.consume(LPAREN, "expected '(' after 'catch'")
	catchName := p.consume(IDENT, "expected identifier in catch clause")
	p.consume(RPAREN, "expected ')' after catch identifier")
	p.consume(LBRACE, "expected '{' after catch clause")
	catchBlock := &BlockStmt{Statements: p.block()}
	return &TryStmt{CatchName: catchName, TryBlock: tryBlock, CatchBlock: catchBlock}
}

func (p *Parser) throwStmt() Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(SEMICOLON, "expected ';' after thrown value")
	return &ThrowStmt{Keyword: keyword, Value: value}
}

////////////////////////////////////////////////////////////////////////////
// Expressions — precedence climbing, lowest to highest:
// assignment > or > and > bitor > bitxor > bitand > equality > comparison
// > additive > multiplicative > unary > call/postfix > primary
////////////////////////////////////////////////////////////////////////////

func (p *Parser) expression() Expr { return p.assignment() }

func (p *Parser) assignment() Expr {
	expr := p.or()

	if op, ok := compoundOpFor(p.peek().Kind); ok {
		p.advance()
		value := p.assignment()
		if !isAssignable(expr) {
			p.bail(p.previous(), "invalid assignment target")
		}
		return &CompoundAssignExpr{exprBase{p.newID()}, op, expr, value}
	}

	if p.match(ASSIGN) {
		value := p.assignment()
		switch t := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{exprBase{p.newID()}, t.Name, value}
		case *GetExpr:
			return &SetExpr{exprBase{p.newID()}, t.Object, t.Name, value}
		case *IndexExpr:
			return &IndexSetExpr{exprBase{p.newID()}, t.Object, t.Bracket, t.Index, value}
		default:
			p.bail(p.previous(), "invalid assignment target")
		}
	}
	return expr
}

func isAssignable(e Expr) bool {
	switch e.(type) {
	case *VariableExpr, *GetExpr, *IndexExpr:
		return true
	default:
		return false
	}
}

func compoundOpFor(k TokenKind) (CompoundOp, bool) {
	switch k {
	case PLUS_EQ:
		return CompoundAdd, true
	case MINUS_EQ:
		return CompoundSub, true
	case STAR_EQ:
		return CompoundMul, true
	case SLASH_EQ:
		return CompoundDiv, true
	case PERCENT_EQ:
		return CompoundMod, true
	case AMP_EQ:
		return CompoundAnd, true
	case PIPE_EQ:
		return CompoundOr, true
	case CARET_EQ:
		return CompoundXor, true
	default:
		return 0, false
	}
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(OR) {
		right := p.and()
		expr = &LogicalExpr{exprBase{p.newID()}, LogicalOr, expr, right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.bitOr()
	for p.match(AND) {
		right := p.bitOr()
		expr = &LogicalExpr{exprBase{p.newID()}, LogicalAnd, expr, right}
	}
	return expr
}

func (p *Parser) bitOr() Expr {
	expr := p.bitXor()
	for p.match(PIPE) {
		right := p.bitXor()
		expr = &BinaryExpr{exprBase{p.newID()}, OpBitOr, expr, right}
	}
	return expr
}

func (p *Parser) bitXor() Expr {
	expr := p.bitAnd()
	for p.match(CARET) {
		right := p.bitAnd()
		expr = &BinaryExpr{exprBase{p.newID()}, OpBitXor, expr, right}
	}
	return expr
}

func (p *Parser) bitAnd() Expr {
	expr := p.equality()
	for p.match(AMP) {
		right := p.equality()
		expr = &BinaryExpr{exprBase{p.newID()}, OpBitAnd, expr, right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for {
		var op BinaryOp
		switch {
		case p.match(EQ):
			op = OpEq
		case p.match(NEQ):
			op = OpNeq
		default:
			return expr
		}
		right := p.comparison()
		expr = &BinaryExpr{exprBase{p.newID()}, op, expr, right}
	}
}

func (p *Parser) comparison() Expr {
	expr := p.additive()
	for {
		var op BinaryOp
		switch {
		case p.match(LESS):
			op = OpLess
		case p.match(LESS_EQ):
			op = OpLessEq
		case p.match(GREATER):
			op = OpGreater
		case p.match(GREATER_EQ):
			op = OpGreaterEq
		default:
			return expr
		}
		right := p.additive()
		expr = &BinaryExpr{exprBase{p.newID()}, op, expr, right}
	}
}

func (p *Parser) additive() Expr {
	expr := p.multiplicative()
	for {
		var op BinaryOp
		switch {
		case p.match(PLUS):
			op = OpAdd
		case p.match(MINUS):
			op = OpSub
		default:
			return expr
		}
		right := p.multiplicative()
		expr = &BinaryExpr{exprBase{p.newID()}, op, expr, right}
	}
}

func (p *Parser) multiplicative() Expr {
	expr := p.unary()
	for {
		var op BinaryOp
		switch {
		case p.match(STAR):
			op = OpMul
		case p.match(SLASH):
			op = OpDiv
		case p.match(PERCENT):
			op = OpMod
		default:
			return expr
		}
		right := p.unary()
		expr = &BinaryExpr{exprBase{p.newID()}, op, expr, right}
	}
}

func (p *Parser) unary() Expr {
	switch {
	case p.match(BANG), p.match(NOT):
		operand := p.unary()
		return &UnaryExpr{exprBase{p.newID()}, UnaryNot, operand}
	case p.match(MINUS):
		operand := p.unary()
		return &UnaryExpr{exprBase{p.newID()}, UnaryNeg, operand}
	default:
		return p.call()
	}
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(LPAREN):
			expr = p.finishCall(expr)
		case p.match(DOT):
			name := p.consume(IDENT, "expected property name after '.'")
			expr = &GetExpr{exprBase{p.newID()}, expr, name}
		case p.match(LBRACKET):
			bracket := p.previous()
			index := p.expression()
			p.consume(RBRACKET, "expected ']' after index")
			expr = &IndexExpr{exprBase{p.newID()}, expr, bracket, index}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RPAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren := p.consume(RPAREN, "expected ')' after arguments")
	return &CallExpr{exprBase{p.newID()}, callee, paren, args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(FALSE):
		return &LiteralExpr{exprBase{p.newID()}, BoolVal(false)}
	case p.match(TRUE):
		return &LiteralExpr{exprBase{p.newID()}, BoolVal(true)}
	case p.match(NIL):
		return &LiteralExpr{exprBase{p.newID()}, Nil}
	case p.match(NUMBER):
		return &LiteralExpr{exprBase{p.newID()}, NumberVal(p.previous().Literal.(float64))}
	case p.match(STRING):
		return &LiteralExpr{exprBase{p.newID()}, StringVal(p.previous().Literal.(string))}
	case p.match(THIS):
		return &ThisExpr{exprBase{p.newID()}, p.previous()}
	case p.match(SUPER):
		keyword := p.previous()
		p.consume(DOT, "expected '.' after 'super'")
		method := p.consume(IDENT, "expected superclass method name")
		return &SuperExpr{exprBase{p.newID()}, keyword, method}
	case p.match(IDENT):
		return &VariableExpr{exprBase{p.newID()}, p.previous()}
	case p.match(LPAREN):
		return p.groupingOrTuple()
	case p.match(LBRACKET):
		return p.listLiteral()
	case p.match(LBRACE):
		return p.dictLiteral()
	case p.match(FUN):
		return p.lambdaLiteral()
	default:
		p.bail(p.peek(), "expected expression")
		return &LiteralExpr{exprBase{p.newID()}, Nil}
	}
}

// groupingOrTuple disambiguates `(expr)` from a tuple literal `(a, b, ...)`;
// a single trailing comma before ')' also forces tuple interpretation so
// `(x,)` is the one-element tuple rather than a grouped expression.
func (p *Parser) groupingOrTuple() Expr {
	if p.check(RPAREN) {
		p.advance()
		return &TupleExpr{exprBase{p.newID()}, nil}
	}
	first := p.expression()
	if !p.match(COMMA) {
		p.consume(RPAREN, "expected ')' after expression")
		return &GroupingExpr{exprBase{p.newID()}, first}
	}
	elems := []Expr{first}
	for !p.check(RPAREN) {
		elems = append(elems, p.expression())
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RPAREN, "expected ')' after tuple elements")
	return &TupleExpr{exprBase{p.newID()}, elems}
}

func (p *Parser) listLiteral() Expr {
	var elems []Expr
	if !p.check(RBRACKET) {
		for {
			elems = append(elems, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RBRACKET, "expected ']' after list elements")
	return &ListExpr{exprBase{p.newID()}, elems}
}

func (p *Parser) dictLiteral() Expr {
	var entries []DictEntry
	if !p.check(RBRACE) {
		for {
			key := p.expression()
			p.consume(COLON, "expected ':' after dict key")
			value := p.expression()
			entries = append(entries, DictEntry{Key: key, Value: value})
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RBRACE, "expected '}' after dict entries")
	return &DictExpr{exprBase{p.newID()}, entries}
}

func (p *Parser) lambdaLiteral() Expr {
	p.consume(LPAREN, "expected '(' after 'fun'")
	params := p.paramList()
	p.consume(LBRACE, "expected '{' before lambda body")
	p.funcDepth++
	body := p.block()
	p.funcDepth--
	return &LambdaExpr{exprBase{p.newID()}, params, body}
}
