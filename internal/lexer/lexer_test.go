package lexer

import (
	"testing"

	"github.com/tinyscm-go/tinyscm/internal/token"
)

func types(toks []token.Token) []token.Type {
	ts := make([]token.Type, len(toks))
	for i, t := range toks {
		ts[i] = t.Type
	}
	return ts
}

func TestTokenizeAtoms(t *testing.T) {
	toks, warnings, err := Tokenize(`(+ 1 2.5 "hi" foo #t #f nil)`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := []token.Type{
		token.LPAREN, token.SYMBOL, token.INT, token.REAL, token.STRING,
		token.SYMBOL, token.BOOL, token.BOOL, token.NIL, token.RPAREN,
	}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeSymbolLowercased(t *testing.T) {
	toks, _, err := Tokenize("FOO-Bar", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Lexeme != "foo-bar" {
		t.Errorf("got %q, want foo-bar", toks[0].Lexeme)
	}
}

func TestTokenizeQuoteFamily(t *testing.T) {
	toks, _, err := Tokenize("'a `b ,c ,@d", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.QUOTE, token.SYMBOL,
		token.BACKTICK, token.SYMBOL,
		token.COMMA, token.SYMBOL,
		token.COMMA_AT, token.SYMBOL,
	}
	got := types(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, _, err := Tokenize(`"unterminated`, 3)
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, _, err := Tokenize(`"a\nb\"c"`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := toks[0].Literal.(string)
	want := "a\nb\"c"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenizeLongTokenWarns(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	_, warnings, err := Tokenize(long, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
}

func TestTokenizeComment(t *testing.T) {
	toks, _, err := Tokenize("1 ; trailing comment", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 {
		t.Fatalf("expected comment to be dropped, got %d tokens", len(toks))
	}
}

func TestTokenizeNegativeNumber(t *testing.T) {
	toks, _, err := Tokenize("-5", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.INT {
		t.Errorf("got %s, want INT", toks[0].Type)
	}
	if toks[0].Literal.(int64) != -5 {
		t.Errorf("got %d, want -5", toks[0].Literal.(int64))
	}
}

func TestTokenizeBracketsAsParens(t *testing.T) {
	toks, _, err := Tokenize("[foo]", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.LPAREN || toks[2].Type != token.RPAREN {
		t.Errorf("brackets did not classify as parens: %v", toks)
	}
}
