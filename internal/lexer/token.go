package lexer

import (
	"fmt"

	"github.com/mvcisback/pytypedecl/internal/position"
)

// TokenType represents the type of a token.
type TokenType int

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types of the type declaration language.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIndent
	TokenDedent

	// Literals
	TokenName
	TokenNumber
	TokenString

	// Keywords
	TokenClass
	TokenDef
	TokenPass
	TokenAnd
	TokenOr
	TokenNothing
	TokenRaises
	TokenExtends

	// Punctuation
	TokenArrow
	TokenAt
	TokenColon
	TokenColonEquals
	TokenComma
	TokenEllipsis
	TokenQuestion
	TokenLAngle
	TokenRAngle
	TokenLParen
	TokenRParen
)

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Span.Start.Line, t.Span.Start.Column)
}

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:    "EOF",
	TokenIndent: "INDENT",
	TokenDedent: "DEDENT",

	TokenName:   "NAME",
	TokenNumber: "NUMBER",
	TokenString: "STRING",

	TokenClass:   "CLASS",
	TokenDef:     "DEF",
	TokenPass:    "PASS",
	TokenAnd:     "AND",
	TokenOr:      "OR",
	TokenNothing: "NOTHING",
	TokenRaises:  "RAISES",
	TokenExtends: "EXTENDS",

	TokenArrow:       "ARROW",
	TokenAt:          "AT",
	TokenColon:       "COLON",
	TokenColonEquals: "COLONEQUALS",
	TokenComma:       "COMMA",
	TokenEllipsis:    "ELLIPSIS",
	TokenQuestion:    "QUESTIONMARK",
	TokenLAngle:      "LANGLE",
	TokenRAngle:      "RANGLE",
	TokenLParen:      "LPAREN",
	TokenRParen:      "RPAREN",
}

// keywords maps reserved words to their token types. Reserved words can
// still be used as plain names by quoting them in backticks.
var keywords = map[string]TokenType{
	"class":   TokenClass,
	"def":     TokenDef,
	"pass":    TokenPass,
	"and":     TokenAnd,
	"or":      TokenOr,
	"nothing": TokenNothing,
	"raises":  TokenRaises,
	"extends": TokenExtends,
}

// LookupKeyword returns the keyword token type for an identifier, or
// TokenName if the identifier is not reserved.
func LookupKeyword(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenName
}
