package highlight_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/foldedit/pkg/highlight"
)

func BenchmarkTokenizeGo(b *testing.B) {
	src := strings.Repeat("func main() {\n\t// comment\n\tfmt.Println(\"hello\", 42)\n}\n", 500)
	lang, ok := highlight.Default().Find("go")
	if !ok {
		b.Fatal("go not registered")
	}

	b.ResetTimer()
	for range b.N {
		if len(lang.Tokenize(src)) == 0 {
			b.Fail()
		}
	}
}

func BenchmarkHighlightWithSearch(b *testing.B) {
	src := strings.Repeat("def main():\n    print('hello')\n    return None\n", 500)
	lang, ok := highlight.Default().Find("python")
	if !ok {
		b.Fatal("python not registered")
	}
	opts := highlight.Options{Term: "print", ActiveLine: 10}

	b.ResetTimer()
	for range b.N {
		if len(highlight.Highlight(src, lang, opts)) == 0 {
			b.Fail()
		}
	}
}
