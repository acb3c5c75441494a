package grammar

// TokenType represents the type of a token
type TokenType string

// Token represents a lexical token. Start and End are byte offsets into the
// source; End is exclusive.
type Token struct {
	Type    TokenType
	Literal string
	Start   int
	End     int
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // add, foobar, x, y, ...
	INT    TokenType = "INT"    // 1343456
	FLOAT  TokenType = "FLOAT"  // 3.14, 1e9
	STRING TokenType = "STRING" // "hello"
	CHAR   TokenType = "CHAR"   // 'a'

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	POWER    TokenType = "**"
	SLASH    TokenType = "/"
	AND      TokenType = "&&"
	OR       TokenType = "||"
	BIT_AND  TokenType = "&"
	BIT_OR   TokenType = "|"
	BIT_XOR  TokenType = "^"
	SHL      TokenType = "<<"
	SHR      TokenType = ">>"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA        TokenType = ","
	SEMICOLON    TokenType = ";"
	COLON        TokenType = ":"
	DOUBLE_COLON TokenType = "::"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	ARROW TokenType = "->"

	// Keywords
	FUNC   TokenType = "FUNC"
	LET    TokenType = "LET"
	RETURN TokenType = "RETURN"
	IMPORT TokenType = "IMPORT"
	USE    TokenType = "USE"
	AS     TokenType = "AS"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"func":   FUNC,
	"let":    LET,
	"return": RETURN,
	"import": IMPORT,
	"use":    USE,
	"as":     AS,
	"true":   TRUE,
	"false":  FALSE,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// describe renders a token type the way it appears in "expected X" messages.
func (tt TokenType) describe() string {
	switch tt {
	case IDENT:
		return "identifier"
	case INT:
		return "integer"
	case FLOAT:
		return "float"
	case STRING:
		return "string"
	case CHAR:
		return "character"
	case EOF:
		return "end of input"
	case ILLEGAL:
		return "illegal character"
	}
	for word, kw := range keywords {
		if kw == tt {
			return "'" + word + "'"
		}
	}
	return "'" + string(tt) + "'"
}
