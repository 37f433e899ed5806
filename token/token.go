// Package token defines the lexical token vocabulary shared by the lexer
// and the compiler.
package token

import "fmt"

// Type classifies a lexeme produced by the lexer.
type Type byte

const (
	// single-character tokens
	LeftParen Type = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// one or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Error
	EOF
)

var names = map[Type]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE",
	For: "FOR", Fun: "FUN", If: "IF", Nil: "NIL", Or: "OR",
	Print: "PRINT", Return: "RETURN", Super: "SUPER", This: "THIS",
	True: "TRUE", Var: "VAR", While: "WHILE",
	Error: "ERROR", EOF: "EOF",
}

func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved words to their token type. The lexer consults this
// only after scanning a full identifier lexeme.
var Keywords = map[string]Type{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While,
}

// Token is a lexeme tagged with its type, source line, and (for error
// tokens) a diagnostic message carried in place of a source slice.
type Token struct {
	Type    Type
	Lexeme  string
	Line    int
	Message string
}

// Make builds a token whose lexeme is a slice of the source text.
func Make(typ Type, lexeme string, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Line: line}
}

// MakeError builds an error token; its "lexeme" is the diagnostic message
// so the compiler can report it without consulting the source buffer.
func MakeError(msg string, line int) Token {
	return Token{Type: Error, Lexeme: msg, Line: line, Message: msg}
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s %q line=%d}", t.Type, t.Lexeme, t.Line)
}
