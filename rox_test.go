package rox

import (
	"bytes"
	"testing"
)

// --- helpers -----------------------------------------------------------

// compileAndRun lexes, parses, resolves, and evaluates src against a fresh
// global frame with the standard library installed.
func compileAndRun(src string) (*Evaluator, error) {
	lexer := NewLexer(src)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, lexErrs[0]
	}
	parser := NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	resolver := NewResolver()
	sideTable, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		return nil, resolveErrs[0]
	}

	globals := NewEnv(nil)
	boot := NewEvaluatorForGlobals(globals)
	RegisterGlobals(boot)

	ev := NewEvaluator(sideTable, NewModuleCache(globals), ".")
	ev.Globals = NewEnv(globals)
	return ev, ev.Interpret(stmts)
}

func run(t *testing.T, src string) *Evaluator {
	t.Helper()
	ev, err := compileAndRun(src)
	if err != nil {
		t.Fatalf("interpret error for %q: %v", src, err)
	}
	return ev
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	_, err := compileAndRun(src)
	return err
}

// runCapture runs src and returns everything written via `print`.
func runCapture(t *testing.T, src string) string {
	t.Helper()
	lexer := NewLexer(src)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("lex error for %q: %v", src, lexErrs[0])
	}
	parser := NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("parse error for %q: %v", src, parseErrs[0])
	}
	resolver := NewResolver()
	sideTable, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		t.Fatalf("resolve error for %q: %v", src, resolveErrs[0])
	}

	globals := NewEnv(nil)
	boot := NewEvaluatorForGlobals(globals)
	RegisterGlobals(boot)

	var buf bytes.Buffer
	ev := NewEvaluator(sideTable, NewModuleCache(globals), ".")
	ev.Globals = NewEnv(globals)
	ev.Out = &buf
	if err := ev.Interpret(stmts); err != nil {
		t.Fatalf("interpret error for %q: %v", src, err)
	}
	return buf.String()
}

func mustGlobal(t *testing.T, ev *Evaluator, name string) Value {
	t.Helper()
	v, err := ev.Globals.Get(name)
	if err != nil {
		t.Fatalf("expected global %q: %v", name, err)
	}
	return v
}
