package lexer

import (
	"math"

	"distress/internal/diag"
	"distress/internal/token"
)

// scanNumber съедает максимальный ряд десятичных цифр.
// Без знака и без ограничения на ведущие нули. Значение, не влезающее в
// uint64, превращается в Invalid с текстом всего ряда.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	var value uint64
	overflow := false
	for isDec(lx.cursor.Peek()) {
		d := uint64(lx.cursor.Bump() - '0')
		if value > (math.MaxUint64-d)/10 {
			overflow = true
		}
		value = value*10 + d
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if overflow {
		lx.report(diag.LexIntOverflow, sp, "integer literal `"+text+"` does not fit in 64 bits")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Int, Span: sp, Text: text, Value: value}
}
