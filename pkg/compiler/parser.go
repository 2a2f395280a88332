package compiler

// Parser walks the flat token slice produced by the Lexer and builds an AST.
// The slice is never modified; pos is the only state that advances.
//
// Grammar:
//
//	program    = statement
//	statement  = "exit" expression ";"
//	expression = INTEGER
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// peek returns the token offset places ahead without consuming it.
// ok is false outside the sequence.
func (p *Parser) peek(offset int) (Token, bool) {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[idx], true
}

// consume returns the current token and advances past it.
func (p *Parser) consume() (Token, bool) {
	tok, ok := p.peek(0)
	if ok {
		p.pos++
	}
	return tok, ok
}

// unexpected builds the error for a present token of the wrong kind.
func unexpected(expected string, tok Token) error {
	return &SyntaxError{Expected: expected, Found: tok.describe(), Line: tok.Line, Col: tok.Col}
}

// prematureEnd builds the error for a required token that is missing.
func prematureEnd(expected string) error {
	return &SyntaxError{Expected: expected, Found: endOfInput}
}

// parseExpression parses the single supported expression form.
func (p *Parser) parseExpression() (Expr, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, prematureEnd("expression")
	}
	lit, isInt := tok.Literal()
	if !isInt {
		return nil, unexpected("expression", tok)
	}
	p.consume()
	return &IntLiteral{Value: lit}, nil
}

// parseStatement parses one statement starting at the current token.
func (p *Parser) parseStatement() (*ExitStmt, error) {
	tok, ok := p.consume()
	if !ok {
		return nil, prematureEnd("exit statement")
	}
	if tok.Type != EXIT {
		return nil, unexpected("exit statement", tok)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	semi, ok := p.consume()
	if !ok {
		return nil, prematureEnd("semicolon")
	}
	if semi.Type != SEMICOLON {
		return nil, unexpected("semicolon", semi)
	}

	return &ExitStmt{Value: expr}, nil
}

// Parse builds the program from tokens. Exactly one statement is accepted;
// anything after it is reported as an illegal second statement.
func Parse(tokens []Token) (*ExitStmt, error) {
	p := NewParser(tokens)
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if extra, ok := p.peek(0); ok {
		return nil, unexpected("end of input", extra)
	}
	return stmt, nil
}
