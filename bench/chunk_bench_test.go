package bench

import (
	"context"
	"strings"
	"testing"

	"github.com/Alfex4936/kanacheck/internal/chunk"
	"github.com/Alfex4936/kanacheck/kanacheck"
)

// build a 5 000-line sample once – reuse in all benches.
var (
	short = strings.Repeat("二クロム線とライ千と", 30)
	long  = strings.Repeat("タぺストリーの八センチと三ント\n", 5000) // 5 000 lines
)

func BenchmarkLinesShort(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = chunk.Lines(short) // single line
	}
}

func BenchmarkLinesLong(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = chunk.Lines(long)
	}
}

func BenchmarkCheckShort(b *testing.B) {
	e := kanacheck.NewEngine(kanacheck.Options{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Check(short)
	}
}

func BenchmarkCheckDocumentLong(b *testing.B) {
	e := kanacheck.NewEngine(kanacheck.Options{StrictMode: true})
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.CheckDocument(ctx, long); err != nil {
			b.Fatal(err)
		}
	}
}
