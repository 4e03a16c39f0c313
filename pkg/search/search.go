// Package search implements line-granular search and literal replace over document text.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Match is a line containing the search term. Line is 1-based.
type Match struct {
	Line int
}

// Find returns one match per non-blank line of text that contains term, top to bottom.
// An empty term matches nothing.
func Find(text, term string, caseSensitive bool) []Match {
	if term == "" {
		return nil
	}
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(term)
	}

	var matches []Match
	for idx, line := range textlines.Split(text) {
		if textlines.IsBlank(line) {
			continue
		}
		if !caseSensitive {
			line = strings.ToLower(line)
		}
		if strings.Contains(line, needle) {
			matches = append(matches, Match{Line: idx + 1})
		}
	}
	return matches
}

// Count returns the number of occurrences of term in text. An empty term counts zero.
func Count(text, term string, caseSensitive bool) int {
	if term == "" {
		return 0
	}
	if !caseSensitive {
		text, term = strings.ToLower(text), strings.ToLower(term)
	}
	return strings.Count(text, term)
}

// Replacer substitutes every occurrence of a literal term with a literal replacement.
type Replacer struct {
	re          *regexp2.Regexp
	replacement string
}

// NewReplacer compiles term for replacement. The term and the replacement are literal.
func NewReplacer(term, replacement string, caseSensitive bool) (*Replacer, error) {
	if term == "" {
		return nil, ErrEmptyTerm
	}
	flags := regexp2.None
	if !caseSensitive {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(regexp2.Escape(term), flags)
	if err != nil {
		return nil, fmt.Errorf("compiling term %q: %w", term, err)
	}
	return &Replacer{re: re, replacement: replacement}, nil
}

// Replace substitutes every occurrence in text and returns the result and the count.
func (r *Replacer) Replace(text string) (string, int, error) {
	count := 0
	out, err := r.re.ReplaceFunc(text, func(regexp2.Match) string {
		count++
		return r.replacement
	}, -1, -1)
	if err != nil {
		return text, 0, fmt.Errorf("replacing: %w", err)
	}
	return out, count, nil
}

// ReplaceLine replaces every occurrence of term within one line.
func ReplaceLine(line, term, replacement string, caseSensitive bool) (string, int, error) {
	replacer, err := NewReplacer(term, replacement, caseSensitive)
	if err != nil {
		return line, 0, err
	}
	return replacer.Replace(line)
}

// ReplaceAll replaces every occurrence of term across text in one pass.
func ReplaceAll(text, term, replacement string, caseSensitive bool) (string, int, error) {
	replacer, err := NewReplacer(term, replacement, caseSensitive)
	if err != nil {
		return text, 0, err
	}
	return replacer.Replace(text)
}

// Session tracks the matches of one term and the current position among them.
// Index is -1 when there are no matches.
type Session struct {
	Term          string
	CaseSensitive bool
	Matches       []Match
	Index         int
}

// NewSession searches text and positions the session on the first match.
func NewSession(text, term string, caseSensitive bool) *Session {
	session := &Session{Term: term, CaseSensitive: caseSensitive, Index: -1}
	session.Refresh(text)
	if len(session.Matches) > 0 {
		session.Index = 0
	}
	return session
}

// Refresh re-runs the search against text and clamps the index into range.
func (s *Session) Refresh(text string) {
	s.Matches = Find(text, s.Term, s.CaseSensitive)
	s.clamp()
}

// Len returns the number of matches.
func (s *Session) Len() int {
	return len(s.Matches)
}

// Current returns the match at the index.
func (s *Session) Current() (Match, bool) {
	if s.Index < 0 || s.Index >= len(s.Matches) {
		return Match{}, false
	}
	return s.Matches[s.Index], true
}

// Next advances to the following match, wrapping around.
func (s *Session) Next() (Match, bool) {
	return s.step(1)
}

// Previous moves to the preceding match, wrapping around.
func (s *Session) Previous() (Match, bool) {
	return s.step(-1)
}

func (s *Session) step(delta int) (Match, bool) {
	n := len(s.Matches)
	if n == 0 {
		s.Index = -1
		return Match{}, false
	}
	s.Index = ((s.Index+delta)%n + n) % n
	return s.Matches[s.Index], true
}

// Remove drops the match at i and clamps the index.
func (s *Session) Remove(i int) {
	if i < 0 || i >= len(s.Matches) {
		return
	}
	s.Matches = append(s.Matches[:i], s.Matches[i+1:]...)
	s.clamp()
}

// Clear drops every match.
func (s *Session) Clear() {
	s.Matches = nil
	s.Index = -1
}

func (s *Session) clamp() {
	switch {
	case len(s.Matches) == 0:
		s.Index = -1
	case s.Index < 0:
		s.Index = 0
	case s.Index >= len(s.Matches):
		s.Index = len(s.Matches) - 1
	}
}

// Status renders the position as "current/total", 1-based, or "0/0".
func (s *Session) Status() string {
	if s.Index < 0 {
		return "0/" + strconv.Itoa(len(s.Matches))
	}
	return strconv.Itoa(s.Index+1) + "/" + strconv.Itoa(len(s.Matches))
}
