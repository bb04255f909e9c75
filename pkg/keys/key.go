// Package keys describes key events, key chord parsing and the keymap that
// classifies chords into editing intents.
package keys

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key.
type Key uint8

const (
	KeyNone Key = iota
	// KeyRune is a printable character; the character is in Event.Rune.
	KeyRune
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
}

var keyAliases = map[string]Key{
	"bs":     KeyBackspace,
	"del":    KeyDelete,
	"return": KeyEnter,
	"escape": KeyEscape,
}

// KeyFromName returns the key for a lowercase name, or KeyNone.
func KeyFromName(name string) Key {
	name = strings.ToLower(name)
	for k, n := range keyNames {
		if n == name {
			return k
		}
	}
	return keyAliases[name]
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

var modifierNames = map[string]Modifier{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
}

// Has reports whether m contains every modifier in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// Any reports whether m shares at least one modifier with mod.
func (m Modifier) Any(mod Modifier) bool {
	return m&mod != 0
}

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}
