package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexIdentNotNFC              Code = 1005

	// синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectItem        Code = 2002
	SynExpectName        Code = 2003
	SynExpectExpr        Code = 2004
	SynExpectSemicolon   Code = 2005
	SynExpectBlock       Code = 2006
	SynUnclosedBrace     Code = 2007
	SynUnclosedParen     Code = 2008
	SynUnmatchedBrace    Code = 2009
	SynExpectFieldList   Code = 2010
	SynExpectParamList   Code = 2011
	SynErrorLimitReached Code = 2099

	// инварианты дерева
	InvBlockStructure Code = 3001
	InvTreeShape      Code = 3002

	IOLoadFileError Code = 4001

	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexIdentNotNFC:              "Identifier is not in Unicode NFC form",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectItem:               "Expected an item",
	SynExpectName:               "Expected a name",
	SynExpectExpr:               "Expected an expression",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectBlock:              "Expected a block",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnmatchedBrace:           "Unmatched closing brace",
	SynExpectFieldList:          "Expected a field list",
	SynExpectParamList:          "Expected a parameter list",
	SynErrorLimitReached:        "Too many syntax errors",
	InvBlockStructure:           "Block structure invariant violated",
	InvTreeShape:                "Tree shape invariant violated",
	IOLoadFileError:             "I/O error while loading file",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("INV%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
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
