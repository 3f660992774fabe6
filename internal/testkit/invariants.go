package testkit

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/source"
	"distress/internal/token"
)

// CheckTokenStream runs the scanner invariants on a full token stream:
// 1) spans are inside the content, non-empty except EOF, and strictly ordered
// 2) Text equals the spanned bytes
// 3) Int tokens carry the value of their text
// 4) the stream ends with exactly one EOF
func CheckTokenStream(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF")
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent || sp.Start > sp.End {
			return fmt.Errorf("token %d: span %v outside content of %d bytes", i, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if tok.Kind == token.EOF {
			if i != len(tokens)-1 {
				return fmt.Errorf("token %d: EOF before end of stream", i)
			}
			if !sp.Empty() {
				return fmt.Errorf("EOF span %v is not empty", sp)
			}
			continue
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s): empty span", i, tok.Kind)
		}
		if got := sf.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q, span covers %q", i, tok.Text, got)
		}
		if tok.Kind == token.Int {
			v, err := strconv.ParseUint(tok.Text, 10, 64)
			if err != nil || v != tok.Value {
				return fmt.Errorf("token %d: value %d does not match text %q", i, tok.Value, tok.Text)
			}
		}
	}
	return nil
}

// CheckRoundTrip verifies that the canonical text of v parses back to v.
func CheckRoundTrip(v packet.Value) error {
	text := packet.Format(v)
	back, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("canonical text %q does not parse: %w", text, err)
	}
	if !packet.Equal(v, back) {
		return fmt.Errorf("round-trip changed %q into %q", text, packet.Format(back))
	}
	if packet.Format(back) != text {
		return fmt.Errorf("canonical text is not stable: %q vs %q", text, packet.Format(back))
	}
	return nil
}

// CheckOrderAxioms verifies that Compare is a total preorder on vals:
// reflexive, antisymmetric in sign and transitive.
func CheckOrderAxioms(vals []packet.Value) error {
	for i, a := range vals {
		if c := packet.Compare(a, a); c != 0 {
			return fmt.Errorf("Compare(%s, %s) = %d", a, a, c)
		}
		for j, b := range vals {
			ab, ba := packet.Compare(a, b), packet.Compare(b, a)
			if ab != -ba {
				return fmt.Errorf("antisymmetry broken for #%d %s and #%d %s: %d vs %d", i, a, j, b, ab, ba)
			}
			for _, c := range vals {
				if ab <= 0 && packet.Compare(b, c) <= 0 && packet.Compare(a, c) > 0 {
					return fmt.Errorf("transitivity broken: %s <= %s <= %s", a, b, c)
				}
			}
		}
	}
	return nil
}

// CheckArenaAgrees verifies that ids in a hold the same trees as vals and
// order them the same way.
func CheckArenaAgrees(a *packet.Arena, ids []packet.ID, vals []packet.Value) error {
	if len(ids) != len(vals) {
		return fmt.Errorf("len mismatch: %d ids, %d values", len(ids), len(vals))
	}
	for i := range ids {
		if !packet.Equal(a.Value(ids[i]), vals[i]) {
			return fmt.Errorf("#%d: arena holds %s, heap holds %s", i, a.String(ids[i]), vals[i])
		}
		for j := range ids {
			if ac, hc := a.Compare(ids[i], ids[j]), packet.Compare(vals[i], vals[j]); ac != hc {
				return fmt.Errorf("Compare(#%d, #%d): arena %d, heap %d", i, j, ac, hc)
			}
		}
	}
	return nil
}
