package textedit

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// LineKind classifies a diff line.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line only in the modified text.
	LineAdd

	// LineRemove is a line only in the original text.
	LineRemove
)

// DiffLine is one line of a hunk, without its prefix.
type DiffLine struct {
	Kind    LineKind
	Content string
}

// Hunk is a group of nearby changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a unified diff between two versions of a text.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff compares original and modified line by line. It returns nil when the
// texts have the same lines.
func GenerateDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}
	origLines := splitLines(original)
	modLines := splitLines(modified)

	matcher := difflib.NewMatcherWithJunk(origLines, modLines, false, nil)
	groups := matcher.GetGroupedOpCodes(ContextLines)
	if len(groups) == 0 {
		return nil
	}

	diff := &Diff{Path: path}
	for _, group := range groups {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				diff.Additions++
			case LineRemove:
				diff.Deletions++
			case LineContext:
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}
	return diff
}

func buildHunk(group []difflib.OpCode, orig, mod []string) Hunk {
	first, last := group[0], group[len(group)-1]
	hunk := Hunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: LineContext, Content: line})
			}
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: LineRemove, Content: line})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: LineAdd, Content: line})
			}
		}
	}
	return hunk
}

// splitLines splits text into lines, ignoring one trailing newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "diff --git" line.
func (d *Diff) Header() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%s +%s @@\n",
			hunkRange(hunk.OriginalStart, hunk.OriginalCount),
			hunkRange(hunk.ModifiedStart, hunk.ModifiedCount))
		for _, line := range hunk.Lines {
			builder.WriteByte(linePrefix(line.Kind))
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// FullString renders the git header followed by the unified diff.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.Header() + "\n" + d.String()
}

// hunkRange formats a hunk range the way diff(1) does: an empty range starts one
// line before the insertion point.
func hunkRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start-1)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

func linePrefix(kind LineKind) byte {
	switch kind {
	case LineAdd:
		return '+'
	case LineRemove:
		return '-'
	case LineContext:
	}
	return ' '
}
