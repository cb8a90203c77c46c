package token

import "fmt"

// Type classifies a Token. The set follows spec §3: identifiers, literals,
// punctuation, keywords, the annotation opener, and a handful of
// MCDOC-specific sigils (percent placeholders, doc comments).
type Type int

const (
	TUnknown Type = iota
	TEOF

	TIdent
	TString
	TInteger
	TFloat
	TPercentIdent // %unknown
	TBracketPlaceholder // [[...]] consumed verbatim

	// Keywords, reclassified from TIdent by exact match.
	TStruct
	TEnum
	TDispatch
	TTo
	TUse
	TAs
	TType
	TSpread // "..."

	// Punctuation, longest-match.
	TLBrace
	TRBrace
	TLBracket
	TRBracket
	TLParen
	TRParen
	TLAngle
	TRAngle
	TComma
	TSemicolon
	TColon
	TColonColon
	TPipe
	TQuestion
	TEquals
	TDot
	TDotDot
	TAt
	TAnnotationOpen // #[
	THash           // bare '#', used for tag-prefixed literals

	TComment
)

var keywords = map[string]Type{
	"struct":   TStruct,
	"enum":     TEnum,
	"dispatch": TDispatch,
	"to":       TTo,
	"use":      TUse,
	"as":       TAs,
	"type":     TType,
}

var typeNames = map[Type]string{
	TUnknown:            "Unknown",
	TEOF:                "EOF",
	TIdent:               "Ident",
	TString:              "String",
	TInteger:             "Integer",
	TFloat:               "Float",
	TPercentIdent:        "PercentIdent",
	TBracketPlaceholder:  "BracketPlaceholder",
	TStruct:              "struct",
	TEnum:                "enum",
	TDispatch:            "dispatch",
	TTo:                  "to",
	TUse:                 "use",
	TAs:                  "as",
	TType:                "type",
	TSpread:              "...",
	TLBrace:              "{",
	TRBrace:              "}",
	TLBracket:            "[",
	TRBracket:            "]",
	TLParen:              "(",
	TRParen:              ")",
	TLAngle:              "<",
	TRAngle:              ">",
	TComma:               ",",
	TSemicolon:           ";",
	TColon:               ":",
	TColonColon:          "::",
	TPipe:                "|",
	TQuestion:            "?",
	TEquals:              "=",
	TDot:                 ".",
	TDotDot:              "..",
	TAt:                  "@",
	TAnnotationOpen:      "#[",
	THash:                "#",
	TComment:             "Comment",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is a single lexical unit. Bytes borrows directly from the source
// buffer passed to [Lex]; no per-token allocation is performed for
// identifiers or literals.
type Token struct {
	Type  Type
	Bytes []byte
	Pos   *Pos
}

func (t Token) String() string {
	return string(t.Bytes)
}

func (t Token) Info() string {
	return fmt.Sprintf("%s %q at %s", t.Type, t.Bytes, t.Pos)
}
