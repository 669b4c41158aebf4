package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []Token {
	s := NewScanner(src)
	var toks []Token
	for {
		tok := s.ScanToken()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.+-*/!= == <= >=")
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace,
		TokenSemicolon, TokenComma, TokenDot, TokenPlus, TokenMinus,
		TokenStar, TokenSlash, TokenBangEqual, TokenEqualEqual,
		TokenLessEqual, TokenGreaterEqual, TokenEOF,
	}, kinds)
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll("and class var varietal classy")
	assert.Equal(t, TokenAnd, toks[0].Kind)
	assert.Equal(t, TokenClass, toks[1].Kind)
	assert.Equal(t, TokenVar, toks[2].Kind)
	assert.Equal(t, TokenIdentifier, toks[3].Kind)
	assert.Equal(t, "varietal", toks[3].Lexeme())
	assert.Equal(t, TokenIdentifier, toks[4].Kind)
	assert.Equal(t, "classy", toks[4].Lexeme())
}

func TestScanNumber(t *testing.T) {
	toks := scanAll("123 4.56 7.")
	assert.Equal(t, "123", toks[0].Lexeme())
	assert.Equal(t, "4.56", toks[1].Lexeme())
	// No digit after the dot: the dot is not part of the number.
	assert.Equal(t, "7", toks[2].Lexeme())
	assert.Equal(t, TokenDot, toks[3].Kind)
}

func TestScanString(t *testing.T) {
	toks := scanAll(`"hello, world"`)
	assert.Equal(t, TokenString, toks[0].Kind)
	assert.Equal(t, `"hello, world"`, toks[0].Lexeme())
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"oops`)
	assert.Equal(t, TokenError, toks[0].Kind)
	assert.Equal(t, "Unterminated string.", toks[0].Lexeme())
}

func TestScanLineComments(t *testing.T) {
	toks := scanAll("1 // ignored\n2")
	assert.Equal(t, "1", toks[0].Lexeme())
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, "2", toks[1].Lexeme())
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	assert.Equal(t, TokenError, toks[0].Kind)
	assert.Equal(t, "Unexpected character.", toks[0].Lexeme())
}
