package keys

import (
	"fmt"
	"sort"
)

// Intent is what a bound chord asks the editor to do.
type Intent int

const (
	IntentNone Intent = iota
	DeleteBackward
	DeleteLineBackward
	DeleteWordBackward
	MoveLinesUp
	MoveLinesDown
	ToggleCheckbox
	ClearTag
	Copy
	Save
	Quit
)

var intentNames = map[Intent]string{
	DeleteBackward:     "delete_backward",
	DeleteLineBackward: "delete_line_backward",
	DeleteWordBackward: "delete_word_backward",
	MoveLinesUp:        "move_lines_up",
	MoveLinesDown:      "move_lines_down",
	ToggleCheckbox:     "toggle_checkbox",
	ClearTag:           "clear_tag",
	Copy:               "copy",
	Save:               "save",
	Quit:               "quit",
}

var intentHelp = map[Intent]string{
	DeleteBackward:     "delete backward / remove prefix",
	DeleteLineBackward: "delete to line start / reset indent",
	DeleteWordBackward: "delete word backward",
	MoveLinesUp:        "move lines up",
	MoveLinesDown:      "move lines down",
	ToggleCheckbox:     "toggle checkbox",
	ClearTag:           "clear tag",
	Copy:               "copy lines as markdown",
	Save:               "save now",
	Quit:               "save and quit",
}

func (i Intent) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}
	if i == IntentNone {
		return "none"
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// Help is a short human description of the intent.
func (i Intent) Help() string {
	return intentHelp[i]
}

// Intents returns every bindable intent in declaration order.
func Intents() []Intent {
	out := make([]Intent, 0, len(intentNames))
	for i := range intentNames {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// ParseIntent maps a configuration name onto an Intent.
func ParseIntent(name string) (Intent, error) {
	for i, n := range intentNames {
		if n == name {
			return i, nil
		}
	}
	return IntentNone, fmt.Errorf("keys: unknown intent %q", name)
}

// DefaultBindings are the chords bound to each intent unless configured.
var DefaultBindings = map[Intent][]string{
	DeleteBackward:     {"backspace"},
	DeleteLineBackward: {"ctrl+u"},
	DeleteWordBackward: {"alt+backspace", "ctrl+w"},
	MoveLinesUp:        {"ctrl+alt+up", "alt+up"},
	MoveLinesDown:      {"ctrl+alt+down", "alt+down"},
	ToggleCheckbox:     {"ctrl+t"},
	ClearTag:           {"ctrl+g"},
	Copy:               {"ctrl+y"},
	Save:               {"ctrl+s"},
	Quit:               {"ctrl+c", "esc"},
}

// Keymap maps chords onto intents.
type Keymap struct {
	bindings map[Intent][]Event
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[Intent][]Event)}
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	for i, specs := range DefaultBindings {
		if err := km.Bind(i, specs...); err != nil {
			panic(err)
		}
	}
	return km
}

// Bind replaces the chords bound to intent.
func (k *Keymap) Bind(intent Intent, specs ...string) error {
	events := make([]Event, 0, len(specs))
	for _, s := range specs {
		e, err := Parse(s)
		if err != nil {
			return fmt.Errorf("keys: bind %s: %w", intent, err)
		}
		events = append(events, e)
	}
	k.bindings[intent] = events
	return nil
}

// Bindings returns the chords bound to intent.
func (k *Keymap) Bindings(intent Intent) []Event {
	return append([]Event(nil), k.bindings[intent]...)
}

// Lookup returns the intent bound to e. When several intents share a chord
// the lowest intent wins.
func (k *Keymap) Lookup(e Event) (Intent, bool) {
	for _, i := range Intents() {
		for _, b := range k.bindings[i] {
			if b.Matches(e) {
				return i, true
			}
		}
	}
	return IntentNone, false
}

// Is reports whether e is bound to intent.
func (k *Keymap) Is(e Event, intent Intent) bool {
	for _, b := range k.bindings[intent] {
		if b.Matches(e) {
			return true
		}
	}
	return false
}
