package compiler

import "unicode"

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"exit": EXIT,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // 1-based column of the next rune
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// isDigit accepts ASCII digits only; the literal is handed to the assembler
// verbatim and no assembler reads other scripts' digits.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.peek()) {
		l.advance()
	}
}

// scanWord collects a maximal run of letters. Only keywords are legal words.
func (l *Lexer) scanWord() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && unicode.IsLetter(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt, ok := keywords[lexeme]
	if !ok {
		return Token{}, &LexicalError{Kind: UnknownIdentifier, Text: lexeme, Line: line, Col: col}
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}, nil
}

// scanInt collects a maximal run of decimal digits.
// The first digit must still be at l.peek().
func (l *Lexer) scanInt() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: INTEGER, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}
}

// nextToken skips whitespace and returns the next Token.
// ok is false once the input is exhausted.
func (l *Lexer) nextToken() (tok Token, ok bool, err error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{}, false, nil
	}

	ch := l.peek()
	line, col := l.line, l.col

	if unicode.IsLetter(ch) {
		word, err := l.scanWord()
		return word, err == nil, err
	}
	if isDigit(ch) {
		return l.scanInt(), true, nil
	}

	l.advance()
	switch ch {
	case ';':
		return Token{SEMICOLON, ";", line, col}, true, nil
	default:
		return Token{}, false, &LexicalError{Kind: UnexpectedCharacter, Text: string(ch), Line: line, Col: col}
	}
}

// Lex tokenises src. Empty input yields an empty slice and no error.
// On the first illegal character or unknown word it returns a *LexicalError
// and no tokens.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	tokens := []Token{}
	for {
		tok, ok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
