package rox

import "testing"

func resolveOK(t *testing.T, src string) ([]Stmt, SideTable) {
	t.Helper()
	stmts := parseOK(t, src)
	r := NewResolver()
	sideTable, errs := r.Resolve(stmts)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors for %q: %v", src, errs)
	}
	return stmts, sideTable
}

func resolveErrs(t *testing.T, src string) []*ResolveError {
	t.Helper()
	stmts := parseOK(t, src)
	r := NewResolver()
	_, errs := r.Resolve(stmts)
	return errs
}

func TestResolverLocalVariableDistance(t *testing.T) {
	// 'a' lives at the untracked top level, so it resolves as a plain
	// global lookup (no side-table entry) even when read from a nested
	// block; only 'b', declared inside the block's own tracked scope,
	// gets a distance.
	stmts, table := resolveOK(t, "var a = 1; { var b = 2; print a; print b; }")
	block := stmts[1].(*BlockStmt)
	printA := block.Statements[1].(*PrintStmt).Expression.(*VariableExpr)
	printB := block.Statements[2].(*PrintStmt).Expression.(*VariableExpr)

	if _, ok := table[printA.Id()]; ok {
		t.Fatalf("expected 'a' to have no side-table entry (top-level global)")
	}
	if dist, ok := table[printB.Id()]; !ok || dist != 0 {
		t.Fatalf("expected 'b' at distance 0, got %v ok=%v", dist, ok)
	}
}

func TestResolverDuplicateTopLevelDeclarationIsNotAnError(t *testing.T) {
	errs := resolveErrs(t, "var x = 1; var x = 2; print x;")
	if len(errs) != 0 {
		t.Fatalf("expected no error for redeclaring 'x' at the top level, got %v", errs)
	}
}

func TestResolverSelfInitializationIsAnError(t *testing.T) {
	errs := resolveErrs(t, "{ var a = a; }")
	if len(errs) == 0 {
		t.Fatalf("expected an error reading a local in its own initializer")
	}
}

func TestResolverDuplicateDeclarationIsAnError(t *testing.T) {
	errs := resolveErrs(t, "{ var a = 1; var a = 2; }")
	if len(errs) == 0 {
		t.Fatalf("expected an error for re-declaring 'a' in the same scope")
	}
}

func TestResolverThisOutsideMethodIsAnError(t *testing.T) {
	errs := resolveErrs(t, "print this;")
	if len(errs) == 0 {
		t.Fatalf("expected an error using 'this' outside a method")
	}
}

func TestResolverSuperWithoutSuperclassIsAnError(t *testing.T) {
	errs := resolveErrs(t, "class A { m() { print super.m; } }")
	if len(errs) == 0 {
		t.Fatalf("expected an error using 'super' in a class with no superclass")
	}
}

func TestResolverReturnValueInInitializerIsAnError(t *testing.T) {
	errs := resolveErrs(t, "class A { init() { return 1; } }")
	if len(errs) == 0 {
		t.Fatalf("expected an error returning a value from 'init'")
	}
}

func TestResolverExportOutsideTopLevelIsAnError(t *testing.T) {
	errs := resolveErrs(t, "{ export var a = 1; }")
	if len(errs) == 0 {
		t.Fatalf("expected an error for 'export' inside a nested scope")
	}
}

func TestResolverExportAtTopLevelIsFine(t *testing.T) {
	errs := resolveErrs(t, "export var a = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}
}

func TestResolverClassCannotInheritFromItself(t *testing.T) {
	errs := resolveErrs(t, "class A < A {}")
	if len(errs) == 0 {
		t.Fatalf("expected an error for a class inheriting from itself")
	}
}
