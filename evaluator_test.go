package rox

import (
	"strings"
	"testing"
)

func TestEvaluatorArithmeticAndPrecedence(t *testing.T) {
	out := runCapture(t, "print 1 + 2 * 3;")
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q want %q", out, "7")
	}
}

func TestEvaluatorStringConcatenation(t *testing.T) {
	out := runCapture(t, `print "a" + "b";`)
	if strings.TrimSpace(out) != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestEvaluatorStringPlusNumberStringifies(t *testing.T) {
	out := runCapture(t, `print "x=" + 1;`)
	if strings.TrimSpace(out) != "x=1" {
		t.Fatalf("got %q", out)
	}
}

func TestEvaluatorStrictTypingRejectsBoolArithmetic(t *testing.T) {
	err := runErr(t, "print true - 1;")
	if err == nil {
		t.Fatalf("expected a TypeError for bool - number")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrTypeError {
		t.Fatalf("expected TypeError, got %#v", err)
	}
}

func TestEvaluatorDivisionByZero(t *testing.T) {
	err := runErr(t, "print 1 / 0;")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrDivisionByZero {
		t.Fatalf("expected DivisionByZero, got %#v", err)
	}
}

func TestEvaluatorClosureCounter(t *testing.T) {
	src := `
	fun makeCounter() {
		var count = 0;
		fun inc() {
			count = count + 1;
			return count;
		}
		return inc;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();
	`
	out := runCapture(t, src)
	lines := strings.Fields(out)
	if strings.Join(lines, ",") != "1,2,3" {
		t.Fatalf("got %q want successive counts 1 2 3", out)
	}
}

func TestEvaluatorForLoopWithContinue(t *testing.T) {
	src := `
	var sum = 0;
	for (var i = 0; i < 5; i = i + 1) {
		if (i == 2) { continue; }
		sum = sum + i;
	}
	print sum;
	`
	// 0 + 1 + 3 + 4 = 8 (2 is skipped)
	out := runCapture(t, src)
	if strings.TrimSpace(out) != "8" {
		t.Fatalf("got %q want 8", out)
	}
}

func TestEvaluatorBreakStopsLoop(t *testing.T) {
	src := `
	var i = 0;
	while (true) {
		if (i == 3) { break; }
		i = i + 1;
	}
	print i;
	`
	out := runCapture(t, src)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q want 3", out)
	}
}

func TestEvaluatorListMap(t *testing.T) {
	src := `
	var xs = [1, 2, 3];
	var ys = listMap(xs, fun(x) { return x * 2; });
	print ys[0];
	print ys[1];
	print ys[2];
	`
	out := runCapture(t, src)
	want := "2\n4\n6\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestEvaluatorListIndexOutOfBounds(t *testing.T) {
	err := runErr(t, "var xs = [1,2]; print xs[5];")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrIndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %#v", err)
	}
}

func TestEvaluatorUndefinedGlobalRead(t *testing.T) {
	err := runErr(t, "print undeclared;")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrUndefinedVariable {
		t.Fatalf("expected UndefinedVariable, got %#v", err)
	}
}

func TestEvaluatorUndefinedGlobalAssign(t *testing.T) {
	err := runErr(t, "undeclared = 1;")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrUndefinedVariable {
		t.Fatalf("expected UndefinedVariable, got %#v", err)
	}
}

func TestEvaluatorCallingNonCallableIsATypeError(t *testing.T) {
	err := runErr(t, "var x = 1; x();")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrTypeError {
		t.Fatalf("expected TypeError, got %#v", err)
	}
}

func TestEvaluatorWrongArityIsAnError(t *testing.T) {
	err := runErr(t, "fun f(a, b) { return a + b; } f(1);")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrArityError {
		t.Fatalf("expected ArityError, got %#v", err)
	}
}

func TestEvaluatorTryCatch(t *testing.T) {
	src := `
	try {
		throw "boom";
	} catch (e) {
		print e;
	}
	`
	out := runCapture(t, src)
	if strings.TrimSpace(out) != "boom" {
		t.Fatalf("got %q want boom", out)
	}
}

func TestEvaluatorTryCatchesRuntimeError(t *testing.T) {
	src := `
	try {
		print 1 / 0;
	} catch (e) {
		print "caught";
	}
	`
	out := runCapture(t, src)
	if strings.TrimSpace(out) != "caught" {
		t.Fatalf("got %q want caught", out)
	}
}

func TestEvaluatorTruthiness(t *testing.T) {
	src := `
	if (0) { print "zero is truthy"; } else { print "zero is falsy"; }
	if ("") { print "empty string is truthy"; } else { print "empty string is falsy"; }
	if (nil) { print "nil is truthy"; } else { print "nil is falsy"; }
	`
	out := runCapture(t, src)
	want := "zero is truthy\nempty string is truthy\nnil is falsy\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestEvaluatorDictLiteralAndIndex(t *testing.T) {
	src := `
	var d = {"a": 1, "b": 2};
	print d["a"];
	d["c"] = 3;
	print dictLen(d);
	`
	out := runCapture(t, src)
	want := "1\n3\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestEvaluatorTupleEqualityIsByReferenceNotByValue(t *testing.T) {
	src := `
	print (1, 2) == (1, 2);
	var t = (1, 2);
	print t == t;
	`
	out := runCapture(t, src)
	want := "false\ntrue\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}
