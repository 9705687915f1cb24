// resolver.go — the static pass between parsing and evaluation. Walks the
// same tree the evaluator will walk, tracking lexical scopes as a stack of
// declare/define maps, and records for every variable-reference Expr how
// many scopes out its binding lives. Grounded closely on
// original_source/src/resolver/resolve.rs's declare/define/resolve_local
// algorithm and its this/super scope nesting (an outer class scope holds
// "super", an inner one holds "this", and each method adds its own parameter
// scope inside that, so from the top level of a method body `this` resolves
// at distance 1 and `super` at distance 2).
package rox

import "fmt"

// SideTable maps an Expr's id to the number of enclosing-scope hops its
// binding lives at. Absent entries mean "not local" — look it up directly
// in the global environment at evaluation time.
type SideTable map[ExprId]int

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeFunction
	scopeInitializer
	scopeMethod
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver performs the single static pass producing a SideTable and a set
// of ResolveErrors.
type Resolver struct {
	scopes       []map[string]bool
	sideTable    SideTable
	errs         []*ResolveError
	currentFunc  scopeKind
	currentClass classKind
	loopDepth    int
	atModuleTop  bool
}

// NewResolver constructs a Resolver. The atModuleTop field is set but not
// consulted: whether `export` is legal is decided by resolveStmt's atTop
// argument, which is true for every statement of the list passed to
// Resolve, so a script's top level accepts `export` exactly as a module body
// does (a script's Evaluator collects no exports, so there it only declares).
func NewResolver() *Resolver {
	return &Resolver{sideTable: SideTable{}, atModuleTop: true}
}

// Resolve walks stmts (a whole program or module body) and returns the
// accumulated side table and any static errors. The top level is never
// pushed as a tracked scope: its bindings live directly in the global
// environment at evaluation time, so redeclaring a top-level name is not
// an error and references to it from nested scopes fall through to the
// "not local" global lookup rather than an entry in the side table.
func (r *Resolver) Resolve(stmts []Stmt) (SideTable, []*ResolveError) {
	for _, s := range stmts {
		r.resolveStmt(s, true)
	}
	return r.sideTable, r.errs
}

func (r *Resolver) errorf(line, col int, format string, args ...interface{}) {
	r.errs = append(r.errs, &ResolveError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorf(name.Line, name.Col, "%q is already declared in this scope", name.Lexeme)
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(id ExprId, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.sideTable[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any tracked scope: treat as global, no side-table entry.
}

////////////////////////////////////////////////////////////////////////////
// Statements
////////////////////////////////////////////////////////////////////////////

// resolveStmt walks a single statement. atTop is true only for statements
// directly in a module/script body, the one place `export` is legal.
func (r *Resolver) resolveStmt(s Stmt, atTop bool) {
	switch st := s.(type) {
	case *ExprStmt:
		r.resolveExpr(st.Expression)
	case *PrintStmt:
		r.resolveExpr(st.Expression)
	case *VarStmt:
		r.declare(st.Name)
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name)
	case *BlockStmt:
		r.beginScope()
		for _, inner := range st.Statements {
			r.resolveStmt(inner, false)
		}
		r.endScope()
	case *IfStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Then, false)
		if st.Else != nil {
			r.resolveStmt(st.Else, false)
		}
	case *WhileStmt:
		r.resolveExpr(st.Condition)
		r.loopDepth++
		r.resolveStmt(st.Body, false)
		r.loopDepth--
		if st.Step != nil {
			r.resolveExpr(st.Step)
		}
	case *BreakStmt, *ContinueStmt:
		// nothing to resolve; legality already checked by the parser
	case *ReturnStmt:
		if st.Value != nil {
			if r.currentFunc == scopeInitializer {
				r.errorf(st.Keyword.Line, st.Keyword.Col, "cannot return a value from an initializer")
			}
			r.resolveExpr(st.Value)
		}
	case *FunctionStmt:
		r.declare(st.Name)
		r.define(st.Name)
		r.resolveFunction(st.Params, st.Body, scopeFunction)
	case *ClassStmt:
		r.resolveClass(st)
	case *TryStmt:
		r.beginScope()
		for _, inner := range st.TryBlock.Statements {
			r.resolveStmt(inner, false)
		}
		r.endScope()
		r.beginScope()
		r.scopes[len(r.scopes)-1][st.CatchName.Lexeme] = true
		for _, inner := range st.CatchBlock.Statements {
			r.resolveStmt(inner, false)
		}
		r.endScope()
	case *ThrowStmt:
		r.resolveExpr(st.Value)
	case *ExportStmt:
		if !atTop {
			r.errorf(0, 0, "'export' is only allowed at module top level")
		}
		r.resolveStmt(st.Decl, false)
	}
}

func (r *Resolver) resolveFunction(params []Token, body []Stmt, kind scopeKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind
	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	enclosingLoop := r.loopDepth
	r.loopDepth = 0
	for _, s := range body {
		r.resolveStmt(s, false)
	}
	r.loopDepth = enclosingLoop
	r.endScope()
	r.currentFunc = enclosingFunc
}

func (r *Resolver) resolveClass(st *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	r.declare(st.Name)
	r.define(st.Name)

	if st.Superclass != nil {
		if st.Superclass.Name.Lexeme == st.Name.Lexeme {
			r.errorf(st.Superclass.Name.Line, st.Superclass.Name.Col, "a class cannot inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(st.Superclass)
		// Outer scope holding "super" — distance 2 from the top level of a
		// method body (the method's parameter scope is distance 0).
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	// Scope holding "this" — distance 1 from the top level of a method body.
	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range st.Methods {
		kind := scopeMethod
		if m.Name.Lexeme == "init" {
			kind = scopeInitializer
		}
		r.resolveFunction(m.Params, m.Body, kind)
	}

	r.endScope() // this

	if st.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
}

////////////////////////////////////////////////////////////////////////////
// Expressions
////////////////////////////////////////////////////////////////////////////

func (r *Resolver) resolveExpr(e Expr) {
	switch ex := e.(type) {
	case *LiteralExpr:
	case *ListExpr:
		for _, el := range ex.Elements {
			r.resolveExpr(el)
		}
	case *DictExpr:
		for _, entry := range ex.Entries {
			r.resolveExpr(entry.Key)
			r.resolveExpr(entry.Value)
		}
	case *TupleExpr:
		for _, el := range ex.Elements {
			r.resolveExpr(el)
		}
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; ok && !ready {
				r.errorf(ex.Name.Line, ex.Name.Col, "cannot read local variable %q in its own initializer", ex.Name.Lexeme)
			}
		}
		r.resolveLocal(ex.Id(), ex.Name.Lexeme)
	case *AssignExpr:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex.Id(), ex.Name.Lexeme)
	case *CompoundAssignExpr:
		r.resolveExpr(ex.Target)
		r.resolveExpr(ex.Value)
	case *BinaryExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *LogicalExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *UnaryExpr:
		r.resolveExpr(ex.Operand)
	case *GroupingExpr:
		r.resolveExpr(ex.Inner)
	case *CallExpr:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *GetExpr:
		r.resolveExpr(ex.Object)
	case *SetExpr:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *IndexExpr:
		r.resolveExpr(ex.Object)
		r.resolveExpr(ex.Index)
	case *IndexSetExpr:
		r.resolveExpr(ex.Object)
		r.resolveExpr(ex.Index)
		r.resolveExpr(ex.Value)
	case *ThisExpr:
		if r.currentClass == classNone {
			r.errorf(ex.Keyword.Line, ex.Keyword.Col, "'this' is only valid inside a method")
			return
		}
		r.resolveLocal(ex.Id(), "this")
	case *SuperExpr:
		if r.currentClass == classNone {
			r.errorf(ex.Keyword.Line, ex.Keyword.Col, "'super' is only valid inside a method")
		} else if r.currentClass != classSubclass {
			r.errorf(ex.Keyword.Line, ex.Keyword.Col, "'super' is only valid in a class with a superclass")
		}
		r.resolveLocal(ex.Id(), "super")
	case *LambdaExpr:
		r.resolveFunction(ex.Params, ex.Body, scopeFunction)
	}
}
