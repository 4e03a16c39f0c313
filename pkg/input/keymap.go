package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Action names a logical command bound to a chord.
type Action string

// Bindable actions.
const (
	ActionSave      Action = "save"
	ActionUndo      Action = "undo"
	ActionRedo      Action = "redo"
	ActionCut       Action = "cut"
	ActionCopy      Action = "copy"
	ActionPaste     Action = "paste"
	ActionSelectAll Action = "selectAll"
	ActionSearch    Action = "search"
)

// Operations run by named keys and typing. They are reported in Result but cannot be
// rebound.
const (
	ActionIndent    Action = "indent"
	ActionOutdent   Action = "outdent"
	ActionNewline   Action = "newline"
	ActionBackspace Action = "backspace"
	ActionDelete    Action = "delete"
	ActionInsert    Action = "insert"
	ActionNavigate  Action = "navigate"
	ActionNone      Action = ""
)

// ErrUnboundAction is returned when asking for the chord of an action with none.
var ErrUnboundAction = errors.New("action is not bound")

// DefaultBindings returns the default chord of every bindable action.
func DefaultBindings() map[Action]string {
	return map[Action]string{
		ActionSave:      "ctrl+s",
		ActionUndo:      "ctrl+z",
		ActionRedo:      "ctrl+y",
		ActionCut:       "ctrl+x",
		ActionCopy:      "ctrl+c",
		ActionPaste:     "ctrl+v",
		ActionSelectAll: "ctrl+a",
		ActionSearch:    "ctrl+f",
	}
}

// Actions returns the bindable action names, sorted.
func Actions() []string {
	names := make([]string, 0, len(DefaultBindings()))
	for action := range DefaultBindings() {
		names = append(names, string(action))
	}
	sort.Strings(names)
	return names
}

// IsAction reports whether name is a bindable action. Case matters.
func IsAction(name string) bool {
	_, ok := DefaultBindings()[Action(name)]
	return ok
}

// Keymap binds actions to chords. Unknown actions are ignored and unbound actions
// never trigger.
type Keymap struct {
	bindings map[Action]Key
}

// DefaultKeymap returns the default bindings.
func DefaultKeymap() *Keymap {
	keymap, err := NewKeymap(nil)
	if err != nil {
		panic(fmt.Sprintf("input: default bindings: %v", err))
	}
	return keymap
}

// NewKeymap starts from the defaults and applies overrides, action name to chord.
// An empty chord unbinds the action. Unknown action names are skipped.
func NewKeymap(overrides map[string]string) (*Keymap, error) {
	keymap := &Keymap{bindings: make(map[Action]Key)}
	for action, chord := range DefaultBindings() {
		keymap.bindings[action] = MustParseChord(chord)
	}

	var errs []error
	for name, chord := range overrides {
		action := Action(name)
		if !IsAction(name) {
			continue
		}
		if strings.TrimSpace(chord) == "" {
			keymap.Unbind(action)
			continue
		}
		key, err := ParseChord(chord)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", name, err))
			continue
		}
		keymap.Bind(action, key)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return keymap, nil
}

// Bind sets the chord of action.
func (m *Keymap) Bind(action Action, chord Key) {
	m.bindings[action] = chord
}

// Unbind removes the chord of action.
func (m *Keymap) Unbind(action Action) {
	delete(m.bindings, action)
}

// Chord returns the chord bound to action.
func (m *Keymap) Chord(action Action) (Key, error) {
	key, ok := m.bindings[action]
	if !ok {
		return Key{}, fmt.Errorf("%w: %s", ErrUnboundAction, action)
	}
	return key, nil
}

// Lookup returns the action bound to the event. Ties, which only arise from duplicate
// overrides, resolve to the alphabetically first action.
func (m *Keymap) Lookup(event Key) (Action, bool) {
	var found []string
	for action, chord := range m.bindings {
		if event.Matches(chord) {
			found = append(found, string(action))
		}
	}
	if len(found) == 0 {
		return ActionNone, false
	}
	sort.Strings(found)
	return Action(found[0]), true
}

// Bindings returns a copy of the bindings as chord strings.
func (m *Keymap) Bindings() map[Action]string {
	out := make(map[Action]string, len(m.bindings))
	for action, chord := range m.bindings {
		out[action] = chord.String()
	}
	return out
}
