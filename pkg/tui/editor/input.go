package editor

import (
	"unicode"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/outline/pkg/keys"
)

var specialKeys = map[rune]keys.Key{
	tea.KeyTab:       keys.KeyTab,
	tea.KeyBackspace: keys.KeyBackspace,
	tea.KeyDelete:    keys.KeyDelete,
	tea.KeyEnter:     keys.KeyEnter,
	tea.KeyEscape:    keys.KeyEscape,
	tea.KeyUp:        keys.KeyUp,
	tea.KeyDown:      keys.KeyDown,
	tea.KeyLeft:      keys.KeyLeft,
	tea.KeyRight:     keys.KeyRight,
	tea.KeyHome:      keys.KeyHome,
	tea.KeyEnd:       keys.KeyEnd,
}

func modifiers(m tea.KeyMod) keys.Modifier {
	var mod keys.Modifier
	if m&tea.ModShift != 0 {
		mod = mod.With(keys.ModShift)
	}
	if m&tea.ModCtrl != 0 {
		mod = mod.With(keys.ModCtrl)
	}
	if m&tea.ModAlt != 0 {
		mod = mod.With(keys.ModAlt)
	}
	if m&tea.ModMeta != 0 {
		mod = mod.With(keys.ModMeta)
	}
	return mod
}

// translate turns a key press into editor events. Typed text yields one
// event per rune; chords and special keys yield one event.
func translate(msg tea.KeyPressMsg) []keys.Event {
	mod := modifiers(msg.Mod)
	if k, ok := specialKeys[msg.Code]; ok {
		return []keys.Event{keys.Special(k, mod)}
	}
	if msg.Text != "" && !mod.Any(keys.ModCtrl|keys.ModAlt|keys.ModMeta) {
		out := make([]keys.Event, 0, len(msg.Text))
		for _, r := range msg.Text {
			out = append(out, keys.Event{Key: keys.KeyRune, Rune: r, Mod: mod.Without(keys.ModShift)})
		}
		return out
	}
	if msg.Code > 0 && unicode.IsPrint(msg.Code) {
		return []keys.Event{{Key: keys.KeyRune, Rune: msg.Code, Mod: mod}}
	}
	return nil
}

// helpBindings describes the active keymap for the footer.
func helpBindings(km *keys.Keymap) []key.Binding {
	out := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent")),
	}
	for _, i := range []keys.Intent{keys.MoveLinesUp, keys.MoveLinesDown, keys.ToggleCheckbox, keys.ClearTag, keys.Copy, keys.Save, keys.Quit} {
		events := km.Bindings(i)
		if len(events) == 0 {
			continue
		}
		names := make([]string, 0, len(events))
		for _, e := range events {
			names = append(names, e.String())
		}
		out = append(out, key.NewBinding(
			key.WithKeys(names...),
			key.WithHelp(names[0], i.Help()),
		))
	}
	return out
}
