package parser

import (
	"errors"
	"fmt"
	"strings"

	"distress/internal/diag"
	"distress/internal/source"
	"distress/internal/token"
)

// UnexpectedTokenError reports a token that the grammar does not allow at
// its position. Expected lists every kind that would have been accepted.
type UnexpectedTokenError struct {
	Expected []token.Kind
	Found    token.Kind
	Text     string
	Span     source.Span
	// Open is the span of the innermost '[' still unclosed, if InList.
	Open   source.Span
	InList bool
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected token %s found `%s` at %s", expectedList(e.Expected), e.Found, e.Span)
}

// InvalidCharacterError reports input that is not a token at all: a stray
// character or an integer literal too large for 64 bits.
type InvalidCharacterError struct {
	Text string
	Span source.Span
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid token `%s` at %s", e.Text, e.Span)
}

// Overflow reports whether the invalid token is an over-long integer literal.
func (e *InvalidCharacterError) Overflow() bool {
	return e.Text != "" && isDigits(e.Text)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func expectedList(kinds []token.Kind) string {
	if len(kinds) == 0 {
		return "`{unknown}`"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = "`" + k.String() + "`"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

// Span returns the location of a parse error found anywhere in err's chain.
func Span(err error) (source.Span, bool) {
	var ut *UnexpectedTokenError
	if errors.As(err, &ut) {
		return ut.Span, true
	}
	var ic *InvalidCharacterError
	if errors.As(err, &ic) {
		return ic.Span, true
	}
	return source.Span{}, false
}

// Diagnostic converts a parse error into a diagnostic record.
func Diagnostic(err error) (diag.Diagnostic, bool) {
	var ut *UnexpectedTokenError
	if errors.As(err, &ut) {
		code := diag.SynUnexpectedToken
		switch {
		case ut.Found == token.EOF && ut.InList:
			code = diag.SynUnclosedBracket
		case ut.Found != token.EOF && len(ut.Expected) == 1 && ut.Expected[0] == token.EOF:
			code = diag.SynTrailingTokens
		case !ut.InList && len(ut.Expected) == 1 && ut.Expected[0] == token.LBracket:
			code = diag.SynExpectTopLevelList
		}
		msg := fmt.Sprintf("expected %s, found `%s`", expectedList(ut.Expected), ut.Found)
		d := diag.NewError(code, ut.Span, msg)
		if ut.InList {
			d = d.WithNote(ut.Open, "list opened here")
		}
		return d, true
	}
	var ic *InvalidCharacterError
	if errors.As(err, &ic) {
		if ic.Overflow() {
			return diag.NewError(diag.LexIntOverflow, ic.Span, "integer literal `"+ic.Text+"` does not fit in 64 bits"), true
		}
		return diag.NewError(diag.LexUnknownChar, ic.Span, "invalid token `"+ic.Text+"`"), true
	}
	return diag.Diagnostic{}, false
}
