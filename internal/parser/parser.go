package parser

import (
	"fmt"

	"fortio.org/safecast"

	"distress/internal/diag"
	"distress/internal/lexer"
	"distress/internal/packet"
	"distress/internal/source"
	"distress/internal/token"
)

type Options struct {
	// Reporter получает диагностики лексера; nil — молча.
	Reporter diag.Reporter
}

// Parser — состояние разбора. Один Parser можно переиспользовать для многих
// строк: scratch-стек детей живёт между вызовами.
type Parser[N any] struct {
	lx       *lexer.Lexer
	b        Builder[N]
	opts     Options
	previous token.Token
	current  token.Token
	expected []token.Kind  // виды, проверенные с момента последнего advance
	stack    []N           // дети недостроенных списков
	open     []source.Span // спаны открытых '['
}

// New creates a parser that builds nodes with b.
func New[N any](b Builder[N], opts Options) *Parser[N] {
	return &Parser[N]{b: b, opts: opts}
}

// ParseRange parses the single packet in file.Content[start:end]. Spans in
// errors are file-global.
func (p *Parser[N]) ParseRange(file *source.File, start, end uint32) (N, error) {
	p.reset(lexer.NewRange(file, start, end, lexer.Options{Reporter: p.opts.Reporter}))

	var zero N
	if _, err := p.advance(); err != nil {
		return zero, err
	}
	root, err := p.parseList()
	if err != nil {
		return zero, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return zero, err
	}
	return root, nil
}

func (p *Parser[N]) reset(lx *lexer.Lexer) {
	p.lx = lx
	p.previous = token.Token{}
	p.current = token.Token{}
	p.expected = p.expected[:0]
	clear(p.stack)
	p.stack = p.stack[:0]
	p.open = p.open[:0]
}

// ParseLine parses file.Content[start:end] with a one-shot parser.
func ParseLine[N any](file *source.File, start, end uint32, b Builder[N]) (N, error) {
	return New(b, Options{}).ParseRange(file, start, end)
}

// Parse parses one packet from src into heap-owned values.
func Parse(src string) (packet.Value, error) {
	file, end, err := virtualFile(src)
	if err != nil {
		return packet.Value{}, err
	}
	return ParseLine(file, 0, end, Builder[packet.Value](HeapBuilder{}))
}

// ParseArena parses one packet from src into a.
func ParseArena(a *packet.Arena, src string) (packet.ID, error) {
	file, end, err := virtualFile(src)
	if err != nil {
		return packet.NoID, err
	}
	return ParseLine(file, 0, end, Builder[packet.ID](ArenaBuilder{Arena: a}))
}

func virtualFile(src string) (*source.File, uint32, error) {
	end, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, 0, fmt.Errorf("input too large: %w", err)
	}
	return &source.File{Path: "<input>", Content: []byte(src), Flags: source.FileVirtual}, end, nil
}
