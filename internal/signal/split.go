package signal

import (
	"errors"
	"fmt"

	"distress/internal/source"
)

// ErrMalformedBlock is returned when a block does not hold exactly two
// packet lines.
var ErrMalformedBlock = errors.New("malformed block")

// Line is one non-blank input line.
type Line struct {
	Num  uint32 // 1-based
	Span source.Span
}

// Block is a pair of consecutive packet lines.
type Block struct {
	Left, Right Line
}

// BlockError describes a block that is not a pair.
type BlockError struct {
	Line  uint32 // первая строка блока
	Lines int
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("line %d: block has %d packet lines, want 2", e.Line, e.Lines)
}

func (e *BlockError) Unwrap() error { return ErrMalformedBlock }

// Lines returns every non-blank line of file. A trailing '\r' is not part of
// the span.
func Lines(file *source.File) []Line {
	var out []Line
	forEachLine(file, func(l Line, blank bool) {
		if !blank {
			out = append(out, l)
		}
	})
	return out
}

// Split groups the lines of file into blocks. Runs of blank lines separate
// blocks; blank lines at either end are ignored.
func Split(file *source.File) ([]Block, error) {
	var (
		blocks []Block
		group  []Line
		err    error
	)
	flush := func() {
		if len(group) == 0 || err != nil {
			group = group[:0]
			return
		}
		if len(group) != 2 {
			err = &BlockError{Line: group[0].Num, Lines: len(group)}
		} else {
			blocks = append(blocks, Block{Left: group[0], Right: group[1]})
		}
		group = group[:0]
	}
	forEachLine(file, func(l Line, blank bool) {
		if blank {
			flush()
			return
		}
		group = append(group, l)
	})
	flush()
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func forEachLine(file *source.File, fn func(l Line, blank bool)) {
	n := file.LineCount()
	for num := uint32(1); num <= n; num++ {
		sp, _ := file.LineSpan(num)
		if sp.End > sp.Start && file.Content[sp.End-1] == '\r' {
			sp.End--
		}
		fn(Line{Num: num, Span: sp}, isBlank(file.Content[sp.Start:sp.End]))
	}
}

func isBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}
