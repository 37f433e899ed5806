package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxvm/token"
)

func scanAll(source string) []token.Token {
	l := New(source)
	var toks []token.Token
	for {
		tok := l.ScanToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestScanTokenSkipsWhitespaceAndComments(t *testing.T) {
	toks := scanAll("  // a comment\n  1 + 2 ")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Number, toks[0].Type)
	assert.Equal(t, token.Plus, toks[1].Type)
	assert.Equal(t, token.Number, toks[2].Type)
	assert.Equal(t, token.EOF, toks[3].Type)
}

func TestScanTokenTracksLinesAcrossNewlines(t *testing.T) {
	toks := scanAll("1\n2\n3")
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestScanTokenTwoCharacterOperators(t *testing.T) {
	toks := scanAll("!= == <= >= < > ! =")
	types := make([]token.Type, 0, len(toks)-1)
	for _, tk := range toks[:len(toks)-1] {
		types = append(types, tk.Type)
	}
	assert.Equal(t, []token.Type{
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Bang, token.Equal,
	}, types)
}

func TestScanTokenString(t *testing.T) {
	toks := scanAll(`"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Type)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanTokenUnterminatedString(t *testing.T) {
	toks := scanAll(`"oops`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Error, toks[0].Type)
	assert.Equal(t, "Unterminated string.", toks[0].Message)
}

func TestScanTokenNumberRequiresDigitOnBothSidesOfDot(t *testing.T) {
	toks := scanAll("1.5 2.")
	require.Len(t, toks, 4)
	assert.Equal(t, "1.5", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
	assert.Equal(t, token.Dot, toks[2].Type)
}

func TestScanTokenIdentifierVsKeyword(t *testing.T) {
	toks := scanAll("print printer")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Print, toks[0].Type)
	assert.Equal(t, token.Identifier, toks[1].Type)
}

func TestScanTokenUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Error, toks[0].Type)
}

func TestScanTokenRepeatsEOF(t *testing.T) {
	l := New("")
	first := l.ScanToken()
	second := l.ScanToken()
	assert.Equal(t, token.EOF, first.Type)
	assert.Equal(t, token.EOF, second.Type)
}
