package token_test

import (
	"testing"

	"distress/internal/source"
	"distress/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.LBracket: "[",
		token.RBracket: "]",
		token.Comma:    ",",
		token.Int:      "{integer}",
		token.EOF:      "{eof}",
		token.Invalid:  "{invalid}",
		token.Kind(99): "{unknown}",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsMatchesByKindOnly(t *testing.T) {
	a := token.Token{Kind: token.Int, Value: 3, Text: "3"}
	if !a.Is(token.Int) {
		t.Fatalf("Int token must match Int regardless of value")
	}
	if a.Is(token.Comma) {
		t.Fatalf("Int token must not match Comma")
	}
}

func TestIsPunct(t *testing.T) {
	for _, k := range []token.Kind{token.LBracket, token.RBracket, token.Comma} {
		if !tok(k).IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	for _, k := range []token.Kind{token.Int, token.EOF, token.Invalid} {
		if tok(k).IsPunct() {
			t.Fatalf("%v must NOT be punct", k)
		}
	}
}
