// Package glyph names the symbols outlines are drawn with and the typed
// shorthands that produce them.
package glyph

import (
	"tableflip.dev/outline/pkg/prefix"
)

// Glyph is a typed shorthand and the symbol it turns into.
type Glyph struct {
	Kind    prefix.Kind
	Keys    []string
	Symbol  string
	Meaning string
	Order   int
}

// Symbols drawn in the prefix column.
const (
	BulletSymbol    = "•"
	UncheckedSymbol = "☐"
	CheckedSymbol   = "☑"
)

// DefaultGlyphs lists every shorthand the editor understands, in legend order.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Kind:    prefix.Bullet,
		Keys:    []string{"- ", "* "},
		Symbol:  BulletSymbol,
		Meaning: "bullet",
		Order:   0,
	}, {
		Kind:    prefix.Checkbox,
		Keys:    []string{"[] ", "[ ] "},
		Symbol:  UncheckedSymbol,
		Meaning: "checkbox",
		Order:   1,
	}, {
		Kind:    prefix.Checkbox,
		Keys:    []string{"[x] ", "[X] "},
		Symbol:  CheckedSymbol,
		Meaning: "checkbox, checked",
		Order:   2,
	}, {
		Kind:    prefix.Tag,
		Keys:    []string{"[word] "},
		Symbol:  "[word]",
		Meaning: "tag, up to 4 characters",
		Order:   3,
	}}
}

// Enabled filters DefaultGlyphs down to the kinds in set.
func Enabled(set prefix.Set) []Glyph {
	var out []Glyph
	for _, g := range DefaultGlyphs() {
		if set.Has(g.Kind) {
			out = append(out, g)
		}
	}
	return out
}

// ByOrder sorts glyphs for display.
type ByOrder []Glyph

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }

func (g Glyph) String() string {
	return g.Symbol
}

// Checkbox returns the symbol for a checkbox state.
func Checkbox(checked bool) string {
	if checked {
		return CheckedSymbol
	}
	return UncheckedSymbol
}
