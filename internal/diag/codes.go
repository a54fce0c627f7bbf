package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo          Code = 1000
	LexUnknownChar   Code = 1001
	LexInvalidLexeme Code = 1002

	// Ошибки I/O
	IOLoadFileError   Code = 4001
	IOInvalidEncoding Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:       "Unknown error",
		LexInfo:           "Lexical information",
		LexUnknownChar:    "Unknown character",
		LexInvalidLexeme:  "Invalid lexeme",
		IOLoadFileError:   "I/O load file error",
		IOInvalidEncoding: "Source is not valid UTF-8",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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
