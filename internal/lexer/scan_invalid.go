package lexer

import (
	"unicode/utf8"

	"distress/internal/diag"
	"distress/internal/token"
)

// scanInvalid съедает одну руну (или один байт битого UTF-8) и отдаёт Invalid.
// Лексинг не останавливается — решение об остановке за вызывающим.
func (lx *Lexer) scanInvalid() token.Token {
	start := lx.cursor.Mark()
	_, size := utf8.DecodeRune(lx.cursor.Rest())
	if size <= 0 {
		size = 1
	}
	for i := 0; i < size; i++ {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.report(diag.LexUnknownChar, sp, "invalid token `"+text+"`")
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
