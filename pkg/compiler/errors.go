package compiler

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is wrapped by every SyntaxError raised because the token
// sequence ran out before the statement was complete.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// endOfInput is what a SyntaxError reports as found on premature end.
const endOfInput = "end of input"

// LexicalErrorKind distinguishes the two ways lexing can fail.
type LexicalErrorKind int

const (
	UnexpectedCharacter LexicalErrorKind = iota
	UnknownIdentifier
)

// LexicalError reports source text the lexer could not classify.
type LexicalError struct {
	Kind LexicalErrorKind
	Text string // offending character or identifier run
	Line int
	Col  int
}

func (e *LexicalError) Error() string {
	switch e.Kind {
	case UnknownIdentifier:
		return fmt.Sprintf("line %d:%d: unknown identifier %q", e.Line, e.Col, e.Text)
	default:
		return fmt.Sprintf("line %d:%d: unexpected character %q", e.Line, e.Col, e.Text)
	}
}

// SyntaxError reports a token sequence that does not match the grammar.
// Line and Col are zero when Found is end of input.
type SyntaxError struct {
	Expected string
	Found    string
	Line     int
	Col      int
}

func (e *SyntaxError) Error() string {
	if e.AtEnd() {
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Found)
	}
	return fmt.Sprintf("line %d:%d: expected %s, got %s", e.Line, e.Col, e.Expected, e.Found)
}

// AtEnd reports whether the error was caused by running out of tokens.
func (e *SyntaxError) AtEnd() bool { return e.Found == endOfInput }

func (e *SyntaxError) Unwrap() error {
	if e.AtEnd() {
		return ErrUnexpectedEOF
	}
	return nil
}
