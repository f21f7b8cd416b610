// Package lexer scans Devanagari-keyword source into a token stream.
package lexer

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/sourcehindi/hindic/pkg/token"
)

// Lexer is a byte-level scanner over a UTF-8 source buffer.
//
// # Unicode and column positions
//
// Unlike a rune-counting lexer, columns here count bytes within the
// current line, starting at 1. The grammar's Devanagari identifiers are recognized by
// their leading byte (>= 0xE0) without ever decoding a full rune: any
// byte >= 0x80 occurring after an identifier has started is treated as
// a continuation byte and folded into the identifier, which is both
// correct for well-formed UTF-8 and the faster of the two designs the
// language allows.
type Lexer struct {
	input        string
	position     int // current byte index
	readPosition int // next byte index to read
	ch           byte
	line         int
	column       int
}

// LexerState captures a Lexer's position for backtracking.
type LexerState struct {
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readByte()
	return l
}

func (l *Lexer) readByte() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekByte() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// SaveState snapshots the lexer's position for later restoration.
func (l *Lexer) SaveState() LexerState {
	return LexerState{
		position:     l.position,
		readPosition: l.readPosition,
		ch:           l.ch,
		line:         l.line,
		column:       l.column,
	}
}

// RestoreState rewinds the lexer to a previously saved state.
func (l *Lexer) RestoreState(s LexerState) {
	l.position = s.position
	l.readPosition = s.readPosition
	l.ch = s.ch
	l.line = s.line
	l.column = s.column
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

// advance consumes the current byte, tracking line/column. Newlines
// reset the column to zero so readByte's increment lands on 1.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readByte()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentifierStart(b byte) bool {
	return isASCIILetter(b) || b == '_' || b >= 0xE0
}

func isIdentifierPart(b byte) bool {
	return isASCIILetter(b) || isDigit(b) || b == '_' || b >= 0x80
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// NextToken returns the next token, or an EOF token once the buffer is
// exhausted. Never returns the same token twice.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	if l.ch == 0 {
		return token.New(token.EOF, "", pos)
	}

	switch {
	case isIdentifierStart(l.ch):
		return l.readIdentifier(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '"':
		return l.readString(pos)
	default:
		return l.readOperator(pos)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isWhitespace(l.ch) {
			l.advance()
		}
		if l.ch == '/' && l.peekByte() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
			continue
		}
		break
	}
}

// readIdentifier scans an identifier and normalizes it to NFC before
// keyword lookup, so a precomposed Devanagari vowel sign and the same
// sign spelled as base letter plus combining mark resolve to the same
// keyword or symbol-table entry.
func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.position
	for isIdentifierPart(l.ch) {
		l.advance()
	}
	raw := l.input[start:l.position]
	normalized := norm.NFC.String(raw)

	typ := token.LookupIdent(normalized)
	tok := token.New(typ, raw, pos)
	tok.Normalized = normalized
	return tok
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.advance()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekByte()) {
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.ch) {
			l.advance()
		}
	}
	literal := l.input[start:l.position]
	tok := token.New(token.NUMBER, literal, pos)
	tok.IsFloat = isFloat
	if isFloat {
		tok.FloatValue, _ = strconv.ParseFloat(literal, 64)
	} else {
		tok.IntValue, _ = strconv.ParseInt(literal, 10, 64)
	}
	return tok
}

// readString scans a string literal with no escape processing: the
// contents are the raw bytes between the quotes. An embedded newline
// is permitted and advances the line counter. EOF before the closing
// quote yields an ILLEGAL token describing the unterminated string.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.position
	l.advance() // consume opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			literal := l.input[start:l.position]
			tok := token.New(token.ILLEGAL, literal, pos)
			tok.StringValue = "Unterminated string"
			return tok
		}
		l.advance()
	}
	l.advance() // consume closing quote
	literal := l.input[start:l.position]
	tok := token.New(token.STRING, literal, pos)
	tok.StringValue = literal[1 : len(literal)-1]
	return tok
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	ch := l.ch

	simple := func(typ token.Type) token.Token {
		lit := string(ch)
		l.advance()
		return token.New(typ, lit, pos)
	}

	twoCharOr := func(twoTyp token.Type, twoLit string, oneTyp token.Type) token.Token {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(twoTyp, twoLit, pos)
		}
		return token.New(oneTyp, string(ch), pos)
	}

	switch ch {
	case '(':
		return simple(token.LPAREN)
	case ')':
		return simple(token.RPAREN)
	case '{':
		return simple(token.LBRACE)
	case '}':
		return simple(token.RBRACE)
	case ';':
		return simple(token.SEMICOLON)
	case ',':
		return simple(token.COMMA)
	case '+':
		return simple(token.PLUS)
	case '-':
		return simple(token.MINUS)
	case '*':
		return simple(token.ASTERISK)
	case '/':
		return simple(token.SLASH)
	case '%':
		return simple(token.PERCENT)
	case '=':
		return twoCharOr(token.EQ, "==", token.ASSIGN)
	case '!':
		return twoCharOr(token.NOT_EQ, "!=", token.BANG)
	case '<':
		return twoCharOr(token.LESS_EQ, "<=", token.LESS)
	case '>':
		return twoCharOr(token.GREATER_EQ, ">=", token.GREATER)
	case '&':
		if l.peekByte() == '&' {
			l.advance()
			l.advance()
			return token.New(token.AND_AND, "&&", pos)
		}
		l.advance()
		return token.New(token.ILLEGAL, "&", pos)
	case '|':
		if l.peekByte() == '|' {
			l.advance()
			l.advance()
			return token.New(token.OR_OR, "||", pos)
		}
		l.advance()
		return token.New(token.ILLEGAL, "|", pos)
	default:
		lit := string(ch)
		l.advance()
		return token.New(token.ILLEGAL, lit, pos)
	}
}
