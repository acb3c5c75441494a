package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits gecko source into tokens. Positions are tracked as byte
// offsets; converting them to lines and columns is left to source.Index.
type Lexer struct {
	input string
	pos   int  // offset of the current rune
	next  int  // offset of the rune after ch
	ch    rune // current rune (0 = EOF)

	Errors []*SyntaxError
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.read()
	return l
}

// read advances the lexer to the next rune.
func (l *Lexer) read() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += width
}

// peek returns the next rune without advancing.
func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) makeToken(tokType TokenType, start int) Token {
	return Token{
		Type:    tokType,
		Literal: l.input[start:l.pos],
		Start:   start,
		End:     l.pos,
	}
}

func (l *Lexer) addError(msg string, start int) {
	l.Errors = append(l.Errors, &SyntaxError{
		Message: msg,
		Offset:  start,
		End:     l.pos,
	})
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.read()
	}
}

func (l *Lexer) skipBlockComment(start int) {
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			l.addError("unterminated block comment", start)
			return
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read()
			l.read()
			depth++
		} else if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			depth--
		} else {
			l.read()
		}
	}
}

// twoChar emits the two-rune token if the next rune matches second, otherwise
// the single-rune fallback.
func (l *Lexer) twoChar(second rune, double, single TokenType) Token {
	start := l.pos
	if l.peek() == second {
		l.read()
		l.read()
		return l.makeToken(double, start)
	}
	l.read()
	return l.makeToken(single, start)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		start := l.pos
		switch l.ch {
		case 0:
			return l.makeToken(EOF, start)
		case '/':
			switch l.peek() {
			case '/':
				l.skipLineComment()
				continue
			case '*':
				l.read()
				l.read()
				l.skipBlockComment(start)
				continue
			}
			l.read()
			return l.makeToken(SLASH, start)
		case '=':
			return l.twoChar('=', EQ, ASSIGN)
		case '!':
			if l.peek() == '=' {
				return l.twoChar('=', NOT_EQ, ILLEGAL)
			}
			l.read()
			l.addError("unexpected character '!'", start)
			return l.makeToken(ILLEGAL, start)
		case '+':
			l.read()
			return l.makeToken(PLUS, start)
		case '-':
			return l.twoChar('>', ARROW, MINUS)
		case '*':
			return l.twoChar('*', POWER, ASTERISK)
		case '&':
			return l.twoChar('&', AND, BIT_AND)
		case '|':
			return l.twoChar('|', OR, BIT_OR)
		case '^':
			l.read()
			return l.makeToken(BIT_XOR, start)
		case '<':
			switch l.peek() {
			case '=':
				return l.twoChar('=', LE, LT)
			case '<':
				return l.twoChar('<', SHL, LT)
			}
			l.read()
			return l.makeToken(LT, start)
		case '>':
			switch l.peek() {
			case '=':
				return l.twoChar('=', GE, GT)
			case '>':
				return l.twoChar('>', SHR, GT)
			}
			l.read()
			return l.makeToken(GT, start)
		case ':':
			return l.twoChar(':', DOUBLE_COLON, COLON)
		case ';':
			l.read()
			return l.makeToken(SEMICOLON, start)
		case ',':
			l.read()
			return l.makeToken(COMMA, start)
		case '(':
			l.read()
			return l.makeToken(LPAREN, start)
		case ')':
			l.read()
			return l.makeToken(RPAREN, start)
		case '{':
			l.read()
			return l.makeToken(LBRACE, start)
		case '}':
			l.read()
			return l.makeToken(RBRACE, start)
		case '"':
			return l.readString()
		case '\'':
			return l.readChar()
		}

		if isLetter(l.ch) {
			for isLetter(l.ch) || isDigit(l.ch) {
				l.read()
			}
			tok := l.makeToken(IDENT, start)
			tok.Type = LookupIdent(tok.Literal)
			return tok
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}

		l.read()
		l.addError("unexpected character '"+l.input[start:l.pos]+"'", start)
		return l.makeToken(ILLEGAL, start)
	}
}

// readNumber reads a decimal integer or a float with an optional exponent.
func (l *Lexer) readNumber() Token {
	start := l.pos
	tokType := INT

	for isDigit(l.ch) {
		l.read()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		tokType = FLOAT
		l.read()
		for isDigit(l.ch) {
			l.read()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		tokType = FLOAT
		l.read()
		if l.ch == '+' || l.ch == '-' {
			l.read()
		}
		if !isDigit(l.ch) {
			l.addError("malformed float exponent", start)
		}
		for isDigit(l.ch) {
			l.read()
		}
	}

	return l.makeToken(tokType, start)
}

// readString reads a double-quoted string. The literal keeps its quotes and
// escapes; decoding happens in the AST builder.
func (l *Lexer) readString() Token {
	start := l.pos
	l.read() // opening quote
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			l.addError("unterminated string literal", start)
			return l.makeToken(ILLEGAL, start)
		}
		if l.ch == '\\' {
			l.read()
		}
		l.read()
	}
	l.read() // closing quote
	return l.makeToken(STRING, start)
}

// readChar reads a single-quoted character literal.
func (l *Lexer) readChar() Token {
	start := l.pos
	l.read() // opening quote
	if l.ch == '\'' || l.ch == 0 || l.ch == '\n' {
		l.read()
		l.addError("empty character literal", start)
		return l.makeToken(ILLEGAL, start)
	}
	if l.ch == '\\' {
		l.read()
	}
	l.read()
	if l.ch != '\'' {
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			l.read()
		}
		if l.ch == '\'' {
			l.read()
		}
		l.addError("character literal must contain exactly one character", start)
		return l.makeToken(ILLEGAL, start)
	}
	l.read() // closing quote
	return l.makeToken(CHAR, start)
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
