package parser

import (
	"slices"

	"distress/internal/token"
)

// advance сдвигает окно: current уходит в previous, из лексера берётся
// следующий токен. Invalid сразу становится ошибкой.
func (p *Parser[N]) advance() (token.Token, error) {
	next := p.lx.Next()
	if next.Kind == token.Invalid {
		return token.Token{}, &InvalidCharacterError{Text: next.Text, Span: next.Span}
	}
	p.previous = p.current
	p.current = next
	p.expected = p.expected[:0]
	return p.previous, nil
}

// at проверяет current и запоминает k среди ожидаемых при промахе.
func (p *Parser[N]) at(k token.Kind) bool {
	if p.current.Is(k) {
		return true
	}
	if !slices.Contains(p.expected, k) {
		p.expected = append(p.expected, k)
	}
	return false
}

// accept съедает current, если он вида k.
func (p *Parser[N]) accept(k token.Kind) (bool, error) {
	if !p.at(k) {
		return false, nil
	}
	_, err := p.advance()
	return err == nil, err
}

// expect съедает current вида k или возвращает UnexpectedTokenError.
func (p *Parser[N]) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.unexpected()
	}
	return p.advance()
}

func (p *Parser[N]) unexpected() error {
	err := &UnexpectedTokenError{
		Expected: slices.Clone(p.expected),
		Found:    p.current.Kind,
		Text:     p.current.Text,
		Span:     p.current.Span,
	}
	if n := len(p.open); n > 0 {
		err.Open = p.open[n-1]
		err.InList = true
	}
	return err
}
