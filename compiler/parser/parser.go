package parser

import (
	"fmt"

	"github.com/jsonnetlang/jsonnet/compiler/lexer"
)

// Parser transforms a token stream into a Jsonnet AST using precedence
// climbing for expressions, in the style of a hand-rolled recursive-descent
// parser: a token cursor plus check/match/consume helpers.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
	file    string
}

// New creates a new Parser from a token stream.
func New(tokens []lexer.Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file, errors: []ParseError{}}
}

// Parse parses the token stream as a single top-level expression and
// returns the AST along with any errors. Parsing never panics: on
// encountering an unexpected token the parser records an error and
// synchronizes to the next statement-like boundary.
func (p *Parser) Parse() (*Program, []ParseError) {
	if p.isAtEnd() {
		p.addError(ParseError{Message: "empty program", Location: p.here()})
		return nil, p.errors
	}

	startTok := p.peek()
	root := p.parseExpr(PrecNone)

	if !p.isAtEnd() {
		p.addError(ParseError{
			Message:  fmt.Sprintf("unexpected trailing token: %s", p.peek().Lexeme),
			Location: p.here(),
		})
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}

	return &Program{Root: root, Location: TokenToLocation(startTok, p.file)}, nil
}

// TokenToLocation converts a lexer token into a SourceLocation.
func TokenToLocation(t lexer.Token, file string) SourceLocation {
	if t.File != "" {
		file = t.File
	}
	return SourceLocation{File: file, Line: t.Line, Column: t.Column}
}

func (p *Parser) here() SourceLocation {
	return TokenToLocation(p.peek(), p.file)
}

// --- Token cursor helpers ---

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.TOKEN_EOF
	}
	return p.peek().Type == tokenType
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, bool) {
	if p.check(tokenType) {
		return p.advance(), true
	}
	p.addError(ParseError{Message: message, Location: p.here()})
	return lexer.Token{}, false
}

func (p *Parser) addError(err ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize implements panic-mode error recovery: skip tokens until one
// that plausibly starts a new expression, so a single syntax error does not
// cascade into hundreds of spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_LOCAL, lexer.TOKEN_FUNCTION, lexer.TOKEN_IF,
			lexer.TOKEN_IMPORT, lexer.TOKEN_ASSERT, lexer.TOKEN_RBRACE,
			lexer.TOKEN_RBRACKET, lexer.TOKEN_RPAREN:
			return
		}
		p.advance()
	}
}
