package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EXIT      TokenType = iota // "exit"
	INTEGER                    // decimal integer literal
	SEMICOLON                  // ;
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EXIT:      "EXIT",
	INTEGER:   "INTEGER",
	SEMICOLON: "SEMICOLON",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
//
// Only INTEGER tokens carry a literal; it is the exact digit run from the
// source, never normalised.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based column of the first rune
}

// Literal returns the payload of an INTEGER token.
func (t Token) Literal() (string, bool) {
	if t.Type != INTEGER {
		return "", false
	}
	return t.Lexeme, true
}

// describe renders the token the way diagnostics quote it.
func (t Token) describe() string {
	if t.Type == INTEGER {
		return fmt.Sprintf("integer %s", t.Lexeme)
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
