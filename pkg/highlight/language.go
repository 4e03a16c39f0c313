package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// PlainTextTag is the tag of the fallback language.
const PlainTextTag = "text"

// MatchTimeout bounds a single regex evaluation so pathological input cannot stall a render.
const MatchTimeout = 2 * time.Second

// ErrInvalidRule is returned when a rule has no name or no patterns.
var ErrInvalidRule = errors.New("invalid language rule")

// Language turns source text into tokens.
type Language interface {
	// Name returns the canonical tag.
	Name() string

	// Tokenize splits src into tokens whose values concatenate back to src.
	Tokenize(src string) []Token

	// Typed reports whether the language produces typed tokens.
	Typed() bool
}

// Pattern is one alternative of a rule: matches of Expr become tokens of Type.
type Pattern struct {
	Type string
	Expr string
}

// Rule describes a language as an ordered list of patterns. Earlier patterns win
// when several match at the same position.
type Rule struct {
	Name     string
	Aliases  []string
	Patterns []Pattern
}

// PlainText is the language of unknown tags: one untyped token per line.
//
//nolint:gochecknoglobals // Stateless fallback variant.
var PlainText Language = plainText{}

type plainText struct{}

func (plainText) Name() string { return PlainTextTag }

func (plainText) Typed() bool { return false }

func (plainText) Tokenize(src string) []Token {
	lines := textlines.Split(src)
	tokens := make([]Token, 0, 2*len(lines))
	for idx, line := range lines {
		if idx > 0 {
			tokens = append(tokens, Token{Value: "\n", Line: idx})
		}
		tokens = append(tokens, Token{Value: line, Line: idx + 1})
	}
	return tokens
}

type ruleLanguage struct {
	name   string
	re     *regexp2.Regexp
	groups []string
	types  []string
}

// Compile builds the single case-insensitive alternation for rule.
func Compile(rule Rule) (Language, error) {
	if rule.Name == "" || len(rule.Patterns) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRule, rule.Name)
	}

	lang := &ruleLanguage{
		name:   strings.ToLower(rule.Name),
		groups: make([]string, len(rule.Patterns)),
		types:  make([]string, len(rule.Patterns)),
	}

	alternatives := make([]string, len(rule.Patterns))
	for idx, pattern := range rule.Patterns {
		group := "t" + strconv.Itoa(idx)
		lang.groups[idx] = group
		lang.types[idx] = pattern.Type
		alternatives[idx] = "(?<" + group + ">" + pattern.Expr + ")"
	}

	re, err := regexp2.Compile(strings.Join(alternatives, "|"),
		regexp2.IgnoreCase|regexp2.Multiline|regexp2.ExplicitCapture)
	if err != nil {
		return nil, fmt.Errorf("compiling rule %s: %w", rule.Name, err)
	}
	re.MatchTimeout = MatchTimeout
	lang.re = re

	return lang, nil
}

func (l *ruleLanguage) Name() string { return l.name }

func (l *ruleLanguage) Typed() bool { return true }

func (l *ruleLanguage) Tokenize(src string) []Token {
	runes, offsets := decodeRunes(src)
	out := newEmitter()

	pos := 0
	match, err := l.re.FindRunesMatch(runes)
	for err == nil && match != nil {
		if match.Length > 0 {
			start, end := offsets[match.Index], offsets[match.Index+match.Length]
			out.emit(src[pos:start], "")
			out.emit(src[start:end], l.typeOf(match))
			pos = end
		}
		match, err = l.re.FindNextMatch(match)
	}
	out.emit(src[pos:], "")

	return out.tokens
}

// decodeRunes splits src into runes along with the byte offset of each one,
// plus a final entry for len(src). An invalid byte decodes to one U+FFFD rune
// whose offset still points at the original byte, so slicing src by offsets
// gives back the input unchanged.
func decodeRunes(src string) ([]rune, []int) {
	runes := make([]rune, 0, len(src))
	offsets := make([]int, 0, len(src)+1)
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
	}
	return runes, append(offsets, len(src))
}

func (l *ruleLanguage) typeOf(match *regexp2.Match) string {
	for idx, group := range l.groups {
		if g := match.GroupByName(group); g != nil && len(g.Captures) > 0 {
			return l.types[idx]
		}
	}
	return ""
}

// Registry maps language tags and aliases to compiled languages.
// Lookups are case-insensitive. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]Language
	aliases   map[string]string
}

// NewRegistry compiles and registers rules.
func NewRegistry(rules ...Rule) (*Registry, error) {
	reg := &Registry{
		languages: make(map[string]Language),
		aliases:   make(map[string]string),
	}
	for _, rule := range rules {
		if err := reg.Register(rule); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register compiles rule and adds it, replacing any language of the same name.
func (r *Registry) Register(rule Rule) error {
	lang, err := Compile(rule)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages[lang.Name()] = lang
	for _, alias := range rule.Aliases {
		r.aliases[strings.ToLower(alias)] = lang.Name()
	}
	return nil
}

// Lookup returns the language for tag, or PlainText when the tag is unknown.
func (r *Registry) Lookup(tag string) Language {
	lang, ok := r.Find(tag)
	if !ok {
		return PlainText
	}
	return lang
}

// Find returns the language for tag and whether it is known.
func (r *Registry) Find(tag string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(tag))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.aliases[key]; ok {
		key = name
	}
	lang, ok := r.languages[key]
	return lang, ok
}

// Tags returns the canonical tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.languages))
	for name := range r.languages {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags
}

// Names returns every tag and alias, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.languages)+len(r.aliases))
	for name := range r.languages {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

//nolint:gochecknoglobals // Lazily built registry of built-in rules.
var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in languages.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(BuiltinRules()...)
		if err != nil {
			panic(fmt.Sprintf("highlight: built-in rules: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Tokenize tokenizes src with the built-in language for tag.
func Tokenize(src, tag string) []Token {
	return Default().Lookup(tag).Tokenize(src)
}
