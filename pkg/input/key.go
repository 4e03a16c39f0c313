// Package input is the editing surface: it turns key events into document operations,
// one undo step per mutating key, and keeps collapsed placeholders read-only.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Named keys.
const (
	KeyTab       = "tab"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
	KeyEscape    = "escape"
	KeySpace     = "space"
)

// ErrInvalidChord is returned for chords that cannot be parsed.
var ErrInvalidChord = errors.New("invalid key chord")

//nolint:gochecknoglobals // Read-only lookup table.
var navigationKeys = map[string]bool{
	KeyLeft: true, KeyRight: true, KeyUp: true, KeyDown: true,
	KeyHome: true, KeyEnd: true, KeyPageUp: true, KeyPageDown: true,
	KeyEscape: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var keyAliases = map[string]string{
	"esc":       KeyEscape,
	"return":    KeyEnter,
	"del":       KeyDelete,
	"bs":        KeyBackspace,
	"pgup":      KeyPageUp,
	"pgdn":      KeyPageDown,
	"page_up":   KeyPageUp,
	"page_down": KeyPageDown,
	"arrowleft": KeyLeft, "arrowright": KeyRight, "arrowup": KeyUp, "arrowdown": KeyDown,
}

// Key is one key event or chord. Name is a named key ("tab", "left") or a single
// lowercase character for chords like ctrl+s. Rune is the character typed, if any.
type Key struct {
	Name  string
	Rune  rune
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Char returns the key event for typing r.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Name: KeySpace, Rune: r}
	}
	return Key{Name: strings.ToLower(string(r)), Rune: r}
}

// Named returns the key event for a named key without modifiers.
func Named(name string) Key {
	return Key{Name: name}
}

// ParseChord parses chords like "ctrl+s", "Shift+Tab" or "cmd+shift+z".
// "cmd", "super" and "win" mean Meta; "control" means Ctrl; "option" means Alt.
func ParseChord(chord string) (Key, error) {
	chord = strings.ToLower(strings.TrimSpace(chord))
	if chord == "" {
		return Key{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}
	var parts []string
	switch {
	case chord == "+":
		parts = []string{"+"}
	case strings.HasSuffix(chord, "++"):
		// The plus key itself, as in "ctrl++".
		parts = append(strings.Split(strings.TrimSuffix(chord, "++"), "+"), "+")
	default:
		parts = strings.Split(chord, "+")
	}

	var key Key
	for i, part := range parts {
		last := i == len(parts)-1
		switch {
		case !last && (part == "ctrl" || part == "control"):
			key.Ctrl = true
		case !last && part == "shift":
			key.Shift = true
		case !last && (part == "alt" || part == "option"):
			key.Alt = true
		case !last && (part == "meta" || part == "cmd" || part == "super" || part == "win"):
			key.Meta = true
		case last && part != "":
			if alias, ok := keyAliases[part]; ok {
				part = alias
			}
			if part == KeySpace {
				key.Rune = ' '
			}
			key.Name = part
		default:
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidChord, chord)
		}
	}
	return key, nil
}

// MustParseChord is ParseChord for literals known to be valid.
func MustParseChord(chord string) Key {
	key, err := ParseChord(chord)
	if err != nil {
		panic(err)
	}
	return key
}

// String renders the chord in canonical form: modifiers in the order ctrl, alt, shift,
// meta, then the key.
func (k Key) String() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Alt {
		parts = append(parts, "alt")
	}
	if k.Shift {
		parts = append(parts, "shift")
	}
	if k.Meta {
		parts = append(parts, "meta")
	}
	return strings.Join(append(parts, k.Name), "+")
}

// Matches reports whether the event k triggers chord. Names compare case-insensitively.
func (k Key) Matches(chord Key) bool {
	return strings.EqualFold(k.Name, chord.Name) &&
		k.Ctrl == chord.Ctrl && k.Alt == chord.Alt &&
		k.Shift == chord.Shift && k.Meta == chord.Meta
}

// IsNavigation reports whether the key only moves the caret.
func (k Key) IsNavigation() bool {
	return navigationKeys[k.Name]
}

// IsCommand reports whether a ctrl, alt or meta modifier is held.
func (k Key) IsCommand() bool {
	return k.Ctrl || k.Alt || k.Meta
}

// Text returns the text a plain key inserts, or "" for command and named keys.
func (k Key) Text() string {
	if k.IsCommand() || k.Rune == 0 || !utf8.ValidRune(k.Rune) {
		return ""
	}
	return string(k.Rune)
}
