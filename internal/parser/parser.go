// Package parser builds an AST from a token stream by recursive
// descent with operator-precedence climbing for expressions.
package parser

import (
	"fmt"

	"github.com/sourcehindi/hindic/internal/ast"
	"github.com/sourcehindi/hindic/internal/lexer"
	"github.com/sourcehindi/hindic/pkg/token"
)

// maxParams bounds the parameter list of a function declaration.
// Grounded on the original implementation's fixed-size parameter array.
const maxParams = 8

// ParseError is one parser diagnostic.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: Error: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALITY    // == !=
	COMPARISON  // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // fn(...)
)

var precedences = map[token.Type]int{
	token.OR_OR:      LOGICAL_OR,
	token.AND_AND:    LOGICAL_AND,
	token.EQ:         EQUALITY,
	token.NOT_EQ:     EQUALITY,
	token.LESS:       COMPARISON,
	token.GREATER:    COMPARISON,
	token.LESS_EQ:    COMPARISON,
	token.GREATER_EQ: COMPARISON,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a recursive-descent, Pratt-precedence parser.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors    []ParseError
	panicMode bool

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierOrCall)
	p.registerPrefix(token.NUMBER, p.parseLiteral)
	p.registerPrefix(token.STRING, p.parseLiteral)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.BANG, p.parseUnary)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, tt := range []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LESS, token.GREATER, token.LESS_EQ, token.GREATER_EQ,
		token.AND_AND, token.OR_OR,
	} {
		p.registerInfix(tt, p.parseBinary)
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tt token.Type, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt token.Type, fn infixParseFn)   { p.infixParseFns[tt] = fn }

// Errors returns the diagnostics accumulated while parsing.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(tt token.Type) bool  { return p.curToken.Type == tt }
func (p *Parser) peekTokenIs(tt token.Type) bool { return p.peekToken.Type == tt }

func (p *Parser) expectPeek(tt token.Type, context string) bool {
	if p.peekTokenIs(tt) {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken.Pos, fmt.Sprintf("Expected %s %s, got %s", tt, context, p.peekToken.Type))
	return false
}

func (p *Parser) addError(pos token.Position, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, ParseError{Pos: pos, Message: msg})
}

func (p *Parser) getPrecedence(tt token.Type) int {
	if pr, ok := precedences[tt]; ok {
		return pr
	}
	return LOWEST
}

func isTypeKeyword(tt token.Type) bool {
	switch tt {
	case token.INT, token.FLOAT, token.CHAR, token.VOID:
		return true
	}
	return false
}

func isControlKeyword(tt token.Type) bool {
	switch tt {
	case token.IF, token.WHILE, token.FOR, token.RETURN, token.LBRACE:
		return true
	}
	return false
}

// synchronize resynchronizes at a statement boundary after a parse
// error: it advances until the previous token was ';' or the current
// token begins a declaration or control-flow statement. It always moves
// past the token it starts on, so a declaration whose header failed is
// not reparsed from the same token.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		p.nextToken()
		if isTypeKeyword(p.curToken.Type) || isControlKeyword(p.curToken.Type) {
			return
		}
	}
}

// ParseProgram parses the full token stream into a Program. Check
// HadError afterward; the tree may be partial if it is true.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		decl := p.parseDeclaration()
		if decl != nil {
			program.Declarations = append(program.Declarations, decl)
		}
		if p.panicMode {
			p.synchronize()
		} else {
			// A successful declaration leaves curToken on its own
			// terminating token (the trailing semicolon, or a block's
			// closing brace); advance past it to the next declaration.
			p.nextToken()
		}
	}
	return program
}

// HadError reports whether any diagnostic was recorded.
func (p *Parser) HadError() bool { return len(p.errors) > 0 }

func (p *Parser) parseDeclaration() ast.Statement {
	if isTypeKeyword(p.curToken.Type) {
		return p.parseVarOrFunctionDecl()
	}
	return p.parseStatement()
}

// parseVarOrFunctionDecl disambiguates TYPE IDENT '(' (function) from
// TYPE IDENT (variable) by peeking one token past the identifier.
func (p *Parser) parseVarOrFunctionDecl() ast.Statement {
	typeTok := p.curToken
	typ := p.curToken.Type
	if !p.expectPeek(token.IDENT, "identifier") {
		return nil
	}
	name := p.curToken

	if p.peekTokenIs(token.LPAREN) {
		return p.parseFunctionDecl(typeTok, typ, name)
	}
	return p.parseVarDecl(typeTok, typ, name)
}

func (p *Parser) parseVarDecl(typeTok token.Token, typ token.Type, name token.Token) ast.Statement {
	decl := &ast.VarDecl{Token: typeTok, Type: typ, Name: name}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Initializer = p.parseExpression(LOWEST)
	}

	if !p.expectPeek(token.SEMICOLON, "after variable declaration") {
		return decl
	}
	return decl
}

func (p *Parser) parseFunctionDecl(typeTok token.Token, typ token.Type, name token.Token) ast.Statement {
	decl := &ast.FunctionDecl{Token: typeTok, ReturnType: typ, Name: name}

	if !p.expectPeek(token.LPAREN, "after function name") {
		return decl
	}

	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		decl.Params = append(decl.Params, p.parseParam())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			param := p.parseParam() // always consume this parameter's tokens, even past the limit
			if len(decl.Params) >= maxParams {
				p.addError(p.curToken.Pos, "Too many parameters (maximum 8)")
				continue
			}
			decl.Params = append(decl.Params, param)
		}
	}

	if !p.expectPeek(token.RPAREN, "to close parameter list") {
		return decl
	}
	if !p.expectPeek(token.LBRACE, "to begin function body") {
		return decl
	}
	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseParam() ast.Param {
	typ := p.curToken.Type
	if !isTypeKeyword(typ) {
		p.addError(p.curToken.Pos, fmt.Sprintf("Expected parameter type, got %s", p.curToken.Type))
	}
	if !p.expectPeek(token.IDENT, "parameter name") {
		return ast.Param{Type: typ}
	}
	return ast.Param{Type: typ, Name: p.curToken}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.panicMode {
			p.synchronize()
		} else {
			// Same invariant as ParseProgram: advance past the
			// statement's own terminating token.
			p.nextToken()
		}
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIf() ast.Statement {
	stmt := &ast.If{Token: p.curToken}
	if !p.expectPeek(token.LPAREN, "after if") {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "to close if condition") {
		return stmt
	}
	p.nextToken()
	stmt.Then = p.parseStatement()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	stmt := &ast.While{Token: p.curToken}
	if !p.expectPeek(token.LPAREN, "after while") {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "to close while condition") {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	stmt := &ast.For{Token: p.curToken}
	if !p.expectPeek(token.LPAREN, "after for") {
		return stmt
	}
	p.nextToken()

	if p.curTokenIs(token.SEMICOLON) {
		// no initializer
	} else if isTypeKeyword(p.curToken.Type) {
		typeTok := p.curToken
		typ := p.curToken.Type
		if !p.expectPeek(token.IDENT, "identifier") {
			return stmt
		}
		stmt.Initializer = p.parseVarDecl(typeTok, typ, p.curToken)
	} else {
		stmt.Initializer = p.parseExpressionStatement()
	}
	// curToken is now the ';' that ends the initializer clause.
	p.nextToken()

	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON, "after for condition") {
			return stmt
		}
	}
	p.nextToken()

	if !p.curTokenIs(token.RPAREN) {
		stmt.Increment = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN, "to close for clause") {
			return stmt
		}
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseReturn() ast.Statement {
	stmt := &ast.Return{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.SEMICOLON, "after return value")
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStmt{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	p.expectPeek(token.SEMICOLON, "after expression")
	return stmt
}

// parseExpression parses an expression with assignment handled at the
// top (right-associative, only on a Variable LHS) and the rest as
// standard Pratt precedence climbing.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken.Pos, fmt.Sprintf("Unexpected token %s", p.curToken.Type))
		return nil
	}
	left := prefix()

	for precedence < p.getPrecedence(p.peekToken.Type) {
		if p.peekTokenIs(token.ASSIGN) {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	if p.peekTokenIs(token.ASSIGN) && precedence <= ASSIGNMENT {
		eqTok := p.peekToken
		variable, ok := left.(*ast.Variable)
		p.nextToken() // consume '='
		p.nextToken()
		value := p.parseExpression(ASSIGNMENT - 1) // right-associative
		if !ok {
			p.addError(eqTok.Pos, "Invalid assignment target")
			return value
		}
		return &ast.Assignment{Token: eqTok, Target: variable.Token, Value: value}
	}

	return left
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	name := p.curToken
	if p.peekTokenIs(token.LPAREN) {
		call := &ast.Call{Callee: name}
		p.nextToken() // now at '('
		call.Token = p.curToken
		if !p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			call.Args = append(call.Args, p.parseExpression(LOWEST))
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				call.Args = append(call.Args, p.parseExpression(LOWEST))
			}
		}
		p.expectPeek(token.RPAREN, "to close call arguments")
		return call
	}
	return &ast.Variable{Token: name, Name: name.Literal}
}

func (p *Parser) parseLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken}
}

// parseIllegal reports the lexer's own diagnostic for a token it could
// not scan (e.g. an unterminated string), rather than the generic
// "unexpected token" fallback every other tokenless production falls
// back to.
func (p *Parser) parseIllegal() ast.Expression {
	msg := p.curToken.StringValue
	if msg == "" {
		msg = fmt.Sprintf("Unexpected character %q", p.curToken.Literal)
	}
	p.addError(p.curToken.Pos, msg)
	return nil
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.Unary{Token: tok, Operator: tok.Literal, Operand: operand}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN, "to close grouped expression")
	return expr
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.getPrecedence(tok.Type)
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Binary{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}
