package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexIntOverflow Code = 1002

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedBracket    Code = 2002
	SynTrailingTokens     Code = 2003
	SynExpectTopLevelList Code = 2004

	// Входной файл
	InputInfo           Code = 4000
	InputMalformedBlock Code = 4001
	InputEmpty          Code = 4002
	InputReadFailed     Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexIntOverflow:        "Integer literal overflows 64 bits",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedBracket:    "Unclosed bracket",
	SynTrailingTokens:     "Unexpected tokens after packet",
	SynExpectTopLevelList: "Packet must start with '['",
	InputInfo:             "Input information",
	InputMalformedBlock:   "Block must contain exactly two packets",
	InputEmpty:            "Input contains no packets",
	InputReadFailed:       "Failed to read input",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
