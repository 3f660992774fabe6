package driver

import (
	"distress/internal/diag"
	"distress/internal/lexer"
	"distress/internal/source"
	"distress/internal/token"
)

type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize scans the whole file; the final token is always EOF.
func Tokenize(file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		File:   file,
		Tokens: tokens,
		Bag:    bag,
	}
}
