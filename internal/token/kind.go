package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a character the scanner could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Comma separates list items.
	Comma // ,
	// Int represents a maximal run of decimal digits.
	Int
)

var kindNames = [...]string{
	Invalid:  "{invalid}",
	EOF:      "{eof}",
	LBracket: "[",
	RBracket: "]",
	Comma:    ",",
	Int:      "{integer}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "{unknown}"
}

// Name returns the Go-style identifier of the kind, used by the JSON token dump.
func (k Kind) Name() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Comma:
		return "Comma"
	case Int:
		return "Int"
	default:
		return "Unknown"
	}
}
