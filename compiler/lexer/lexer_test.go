package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) ([]Token, []LexError) {
	t.Helper()
	l := New(src, "test.jsonnet")
	tokens, errs := l.ScanTokens()
	return tokens, errs
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"null", TOKEN_NULL},
		{"true", TOKEN_TRUE},
		{"false", TOKEN_FALSE},
		{"local", TOKEN_LOCAL},
		{"function", TOKEN_FUNCTION},
		{"if", TOKEN_IF},
		{"then", TOKEN_THEN},
		{"else", TOKEN_ELSE},
		{"for", TOKEN_FOR},
		{"in", TOKEN_IN},
		{"assert", TOKEN_ASSERT},
		{"error", TOKEN_ERROR},
		{"self", TOKEN_SELF},
		{"super", TOKEN_SUPER},
		{"import", TOKEN_IMPORT},
		{"importstr", TOKEN_IMPORTSTR},
		{"importbin", TOKEN_IMPORTBIN},
		{"tailstrict", TOKEN_TAILSTRICT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := scan(t, tt.input)
			require.Empty(t, errs)
			require.Len(t, tokens, 2) // keyword + EOF
			assert.Equal(t, tt.expected, tokens[0].Type)
		})
	}
}

func TestIdentifierNotKeyword(t *testing.T) {
	tokens, errs := scan(t, "selfish")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[0].Type)
	assert.Equal(t, "selfish", tokens[0].Lexeme)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"=", TOKEN_ASSIGN},
		{"==", TOKEN_EQ},
		{"!=", TOKEN_NE},
		{"!", TOKEN_NOT},
		{"<", TOKEN_LT},
		{"<=", TOKEN_LE},
		{"<<", TOKEN_LSHIFT},
		{">", TOKEN_GT},
		{">=", TOKEN_GE},
		{">>", TOKEN_RSHIFT},
		{"&&", TOKEN_AND},
		{"&", TOKEN_BAND},
		{"||", TOKEN_OR},
		{"|", TOKEN_BOR},
		{"^", TOKEN_BXOR},
		{"~", TOKEN_BNOT},
		{"+", TOKEN_PLUS},
		{"-", TOKEN_MINUS},
		{"*", TOKEN_STAR},
		{"/", TOKEN_SLASH},
		{"%", TOKEN_PERCENT},
		{":", TOKEN_COLON},
		{"::", TOKEN_DCOLON},
		{":::", TOKEN_TCOLON},
		{"$", TOKEN_DOLLAR},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := scan(t, tt.input)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.expected, tokens[0].Type)
		})
	}
}

func TestTripleColonNotTwoDoubleColons(t *testing.T) {
	tokens, errs := scan(t, ":::")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{TOKEN_TCOLON, TOKEN_EOF}, types(tokens))
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"1e10", 1e10},
		{"1.5e-3", 1.5e-3},
		{"2E+5", 2e5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := scan(t, tt.input)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			require.Equal(t, TOKEN_NUMBER, tokens[0].Type)
			assert.Equal(t, tt.expected, tokens[0].Literal)
		})
	}
}

func TestNumberHasNoLeadingSign(t *testing.T) {
	tokens, errs := scan(t, "-5")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{TOKEN_MINUS, TOKEN_NUMBER, TOKEN_EOF}, types(tokens))
}

func TestNumberRejectsLeadingDot(t *testing.T) {
	tokens, errs := scan(t, ".5")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{TOKEN_DOT, TOKEN_NUMBER, TOKEN_EOF}, types(tokens))
}

func TestDoubleQuotedString(t *testing.T) {
	tokens, errs := scan(t, `"hello\nworld"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "hello\nworld", tokens[0].Literal)
}

func TestSingleQuotedString(t *testing.T) {
	tokens, errs := scan(t, `'hello'`)
	require.Empty(t, errs)
	assert.Equal(t, "hello", tokens[0].Literal)
}

func TestUnicodeEscape(t *testing.T) {
	tokens, errs := scan(t, `"\u00e9"`)
	require.Empty(t, errs)
	assert.Equal(t, "é", tokens[0].Literal)
}

func TestUnterminatedString(t *testing.T) {
	_, errs := scan(t, `"unterminated`)
	require.Len(t, errs, 1)
}

func TestVerbatimString(t *testing.T) {
	tokens, errs := scan(t, `@"C:\no\escapes"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, `C:\no\escapes`, tokens[0].Literal)
}

func TestVerbatimStringDoubledQuote(t *testing.T) {
	tokens, errs := scan(t, `@"it""s"`)
	require.Empty(t, errs)
	assert.Equal(t, `it"s`, tokens[0].Literal)
}

func TestTextBlock(t *testing.T) {
	src := "|||\n  line one\n  line two\n|||"
	tokens, errs := scan(t, src)
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "line one\nline two\n", tokens[0].Literal)
}

func TestTextBlockStripsCommonIndent(t *testing.T) {
	src := "|||\n    foo\n      bar\n    baz\n|||"
	tokens, errs := scan(t, src)
	require.Empty(t, errs)
	assert.Equal(t, "foo\n  bar\nbaz\n", tokens[0].Literal)
}

func TestTextBlockUnterminated(t *testing.T) {
	_, errs := scan(t, "|||\n  oops\n")
	require.Len(t, errs, 1)
}

func TestOrNotConfusedWithTextBlock(t *testing.T) {
	tokens, errs := scan(t, "a || b")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{TOKEN_IDENTIFIER, TOKEN_OR, TOKEN_IDENTIFIER, TOKEN_EOF}, types(tokens))
}

func TestLineComments(t *testing.T) {
	tests := []string{
		"// a comment\n1",
		"# a comment\n1",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tokens, errs := scan(t, src)
			require.Empty(t, errs)
			assert.Equal(t, []TokenType{TOKEN_NUMBER, TOKEN_EOF}, types(tokens))
		})
	}
}

func TestBlockComment(t *testing.T) {
	tokens, errs := scan(t, "/* multi\nline */1")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{TOKEN_NUMBER, TOKEN_EOF}, types(tokens))
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, errs := scan(t, "/* never closes")
	require.Len(t, errs, 1)
}

func TestObjectFieldPunctuation(t *testing.T) {
	tokens, errs := scan(t, `{ x: 1, y+: 2, z:: 3 }`)
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{
		TOKEN_LBRACE,
		TOKEN_IDENTIFIER, TOKEN_COLON, TOKEN_NUMBER, TOKEN_COMMA,
		TOKEN_IDENTIFIER, TOKEN_PLUS, TOKEN_COLON, TOKEN_NUMBER, TOKEN_COMMA,
		TOKEN_IDENTIFIER, TOKEN_DCOLON, TOKEN_NUMBER,
		TOKEN_RBRACE, TOKEN_EOF,
	}, types(tokens))
}

func TestIllegalCharacter(t *testing.T) {
	_, errs := scan(t, "`")
	require.Len(t, errs, 1)
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens, errs := scan(t, "local\nx = 1")
	require.Empty(t, errs)
	require.True(t, len(tokens) >= 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
}
