package parser_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"lattice/internal/parser"
	"lattice/internal/source"
)

func benchParse(b *testing.B, program []byte) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.lt", program))

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := parser.ParseFile(context.Background(), file, parser.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, []byte(`fn main() { let x = 1; }`))
}

func BenchmarkParseLarge(b *testing.B) {
	var buf bytes.Buffer
	for i := range 500 {
		fmt.Fprintf(&buf, "struct S%d { a: i32, b: bool }\n", i)
		fmt.Fprintf(&buf, "fn f%d(x: i32) -> i32 {\n  let y = x * %d + 1;\n  if y > 10 { return y; }\n  g(y, x)\n}\n", i, i)
	}
	benchParse(b, buf.Bytes())
}

func BenchmarkParseGarbage(b *testing.B) {
	benchParse(b, bytes.Repeat([]byte("}{ fn ( let = ; "), 500))
}
