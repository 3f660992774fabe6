package parser

import "distress/internal/token"

// parsePacket: list | integer.
func (p *Parser[N]) parsePacket() (N, error) {
	if p.at(token.LBracket) {
		return p.parseList()
	}
	var zero N
	tok, err := p.expect(token.Int)
	if err != nil {
		return zero, err
	}
	return p.b.Int(tok.Value), nil
}

// parseList: '[' ']' | '[' packet (',' packet)* ']'.
func (p *Parser[N]) parseList() (N, error) {
	var zero N
	lbr, err := p.expect(token.LBracket)
	if err != nil {
		return zero, err
	}
	p.open = append(p.open, lbr.Span)

	closed, err := p.accept(token.RBracket)
	if err != nil {
		return zero, err
	}
	if closed {
		p.open = p.open[:len(p.open)-1]
		return p.b.List(nil), nil
	}

	base := len(p.stack)
	for {
		item, err := p.parsePacket()
		if err != nil {
			return zero, err
		}
		p.stack = append(p.stack, item)

		more, err := p.accept(token.Comma)
		if err != nil {
			return zero, err
		}
		if !more {
			break
		}
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return zero, err
	}

	list := p.b.List(p.stack[base:])
	clear(p.stack[base:])
	p.stack = p.stack[:base]
	p.open = p.open[:len(p.open)-1]
	return list, nil
}
