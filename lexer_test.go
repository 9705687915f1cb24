package rox

import "testing"

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	l := NewLexer("(){}[] , . ; : + - * / % & | ^ ! = == != < <= > >=")
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []TokenKind{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		COMMA, DOT, SEMICOLON, COLON,
		PLUS, MINUS, STAR, SLASH, PERCENT, AMP, PIPE, CARET,
		BANG, ASSIGN, EQ, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ, EOF,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexerCompoundAssign(t *testing.T) {
	l := NewLexer("+= -= *= /= %= &= |= ^=")
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []TokenKind{PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ, PERCENT_EQ, AMP_EQ, PIPE_EQ, CARET_EQ, EOF}
	got := kindsOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := NewLexer(`"a\nb\tc\"d\\e"`)
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if tokens[0].Kind != STRING {
		t.Fatalf("expected STRING, got %v", tokens[0].Kind)
	}
	want := "a\nb\tc\"d\\e"
	if tokens[0].Literal.(string) != want {
		t.Fatalf("got %q want %q", tokens[0].Literal, want)
	}
}

func TestLexerUnterminatedStringReportsError(t *testing.T) {
	l := NewLexer(`"unterminated`)
	_, errs := l.ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("expected one lex error, got %d", len(errs))
	}
}

func TestLexerNumbers(t *testing.T) {
	l := NewLexer("42 3.14 0.5")
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []float64{42, 3.14, 0.5}
	for i, w := range want {
		if tokens[i].Literal.(float64) != w {
			t.Fatalf("token %d: got %v want %v", i, tokens[i].Literal, w)
		}
	}
}

func TestLexerKeywordsVsIdentifiers(t *testing.T) {
	l := NewLexer("var class x classy")
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []TokenKind{VAR, CLASS, IDENT, IDENT, EOF}
	got := kindsOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	l := NewLexer("# a comment\n  var\t x \n")
	tokens, _ := l.ScanTokens()
	want := []TokenKind{VAR, IDENT, EOF}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLexerIllegalCharacterResynchronizes(t *testing.T) {
	l := NewLexer("var @ x;")
	tokens, errs := l.ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("expected one lex error, got %d: %v", len(errs), errs)
	}
	// scanning continues past the bad rune instead of aborting
	found := false
	for _, tok := range tokens {
		if tok.Kind == SEMICOLON {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected scanning to continue past the illegal character")
	}
}
