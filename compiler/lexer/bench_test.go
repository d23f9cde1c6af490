package lexer

import (
	"fmt"
	"strings"
	"testing"
)

func generateJsonnetSource(lines int) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "  field%d: %d + %d * 2,\n", i, i, i)
	}
	b.WriteString("}\n")
	return b.String()
}

func BenchmarkLexer1000LOC(b *testing.B) {
	source := generateJsonnetSource(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		lexer := New(source, "bench.jsonnet")
		_, _ = lexer.ScanTokens()
	}
}

func BenchmarkLexer10000LOC(b *testing.B) {
	source := generateJsonnetSource(10000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		lexer := New(source, "bench.jsonnet")
		_, _ = lexer.ScanTokens()
	}
}

func BenchmarkKeywordLookup(b *testing.B) {
	idents := []string{
		"local", "function", "if", "then", "else", "for", "in",
		"assert", "error", "self", "super", "import", "notakeyword",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = LookupIdent(idents[i%len(idents)])
	}
}
