package token

import (
	"distress/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value uint64 // только для Int
}

// Is reports whether the token has kind k. Integers match by kind, not value.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// IsPunct reports whether the token is one of the structural punctuators.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LBracket, RBracket, Comma:
		return true
	default:
		return false
	}
}
