package compiler

import "fmt"

// Result holds every artefact of one compilation, for callers that want to
// inspect more than the final assembly.
type Result struct {
	Tokens   []Token
	Program  *ExitStmt
	Assembly string
}

// Compile runs the full pipeline over src for target.
// Lexical and syntax errors are returned unwrapped so callers can use
// errors.As on *LexicalError and *SyntaxError directly.
func Compile(src string, target Target) (*Result, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	prog, err := Parse(tokens)
	if err != nil {
		return &Result{Tokens: tokens}, err
	}

	assembly, err := Generate(prog, target)
	if err != nil {
		return &Result{Tokens: tokens, Program: prog}, fmt.Errorf("generate %s: %w", target, err)
	}

	return &Result{Tokens: tokens, Program: prog, Assembly: assembly}, nil
}
