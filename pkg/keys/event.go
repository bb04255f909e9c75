package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptySpec   = errors.New("keys: empty key specification")
	ErrInvalidSpec = errors.New("keys: invalid key specification")
)

// Event is one key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Rune returns the event for typing r.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Special returns the event for a non-character key.
func Special(k Key, mod Modifier) Event {
	return Event{Key: k, Mod: mod}
}

// IsRune reports whether the event types a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Printable reports whether the event should insert its rune as text.
func (e Event) Printable() bool {
	return e.IsRune() && !e.Mod.Any(ModCtrl|ModAlt|ModMeta) && unicode.IsPrint(e.Rune)
}

// canonical folds letter case for chords so "ctrl+W" and "ctrl+w" compare equal.
func (e Event) canonical() Event {
	if e.Key == KeyRune && e.Mod.Any(ModCtrl|ModAlt|ModMeta) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// Matches reports whether two events are the same chord.
func (e Event) Matches(o Event) bool {
	return e.canonical() == o.canonical()
}

func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	if mods := e.Mod.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Parse reads a chord like "ctrl+alt+up", "alt+backspace", "ctrl+w" or "x".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	// A trailing "+" names the plus key itself, e.g. "ctrl++".
	var parts []string
	if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(strings.TrimSuffix(spec, "++"), "+"), "+")
	} else if spec == "+" {
		parts = []string{"+"}
	} else {
		parts = strings.Split(spec, "+")
	}

	var mod Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mod = mod.With(m)
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	if strings.EqualFold(name, "space") {
		return Event{Key: KeyRune, Rune: ' ', Mod: mod}, nil
	}
	if k := KeyFromName(name); k != KeyNone {
		return Event{Key: k, Mod: mod}, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Event{Key: KeyRune, Rune: r, Mod: mod}.canonical(), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, name, spec)
}

// MustParse is Parse for chords known to be valid.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
