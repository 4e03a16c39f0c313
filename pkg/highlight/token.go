// Package highlight implements the pattern based tokenizer and the span highlighter
// with search-match overlay.
package highlight

import "strings"

// Token type names. An empty type marks untyped filler.
const (
	TypeKeyword      = "keyword"
	TypeString       = "string"
	TypeComment      = "comment"
	TypeNumber       = "number"
	TypeOperator     = "operator"
	TypePunctuation  = "punctuation"
	TypeIdentifier   = "identifier"
	TypeBuiltin      = "builtin"
	TypeType         = "type"
	TypeFunction     = "function"
	TypeConstant     = "constant"
	TypeProperty     = "property"
	TypeVariable     = "variable"
	TypeTag          = "tag"
	TypeAttribute    = "attribute"
	TypeDecorator    = "decorator"
	TypePreprocessor = "preprocessor"
	TypeHeading      = "heading"
	TypeEmphasis     = "emphasis"
	TypeStrong       = "strong"
	TypeLink         = "link"
	TypeCode         = "code"
)

// Token is one lexeme of the source. Values never span lines: line breaks are
// emitted as their own untyped "\n" tokens carrying the number of the line they end.
type Token struct {
	Value string
	Type  string
	Line  int
}

// IsNewline reports whether the token is a line break.
func (t Token) IsNewline() bool {
	return t.Value == "\n"
}

// Typed reports whether the token has a semantic class.
func (t Token) Typed() bool {
	return t.Type != ""
}

// Text concatenates token values, reconstructing the tokenized source.
func Text(tokens []Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(tok.Value)
	}
	return builder.String()
}

// Lines groups tokens by line, dropping line breaks. The result has lineCount entries;
// tokens beyond it are ignored.
func Lines(tokens []Token, lineCount int) [][]Token {
	grouped := make([][]Token, lineCount)
	for _, tok := range tokens {
		if tok.IsNewline() || tok.Line < 1 || tok.Line > lineCount {
			continue
		}
		grouped[tok.Line-1] = append(grouped[tok.Line-1], tok)
	}
	return grouped
}

type emitter struct {
	tokens []Token
	line   int
}

func newEmitter() *emitter {
	return &emitter{line: 1}
}

// emit appends text as tokens of the given type, split at line breaks.
func (e *emitter) emit(text, typ string) {
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			e.tokens = append(e.tokens, Token{Value: text, Type: typ, Line: e.line})
			return
		}
		if idx > 0 {
			e.tokens = append(e.tokens, Token{Value: text[:idx], Type: typ, Line: e.line})
		}
		e.newline()
		text = text[idx+1:]
	}
}

func (e *emitter) newline() {
	e.tokens = append(e.tokens, Token{Value: "\n", Line: e.line})
	e.line++
}
