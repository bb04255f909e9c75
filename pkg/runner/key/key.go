// Package key provides CLI helpers to display the outline legend.
package key

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/outline/pkg/glyph"
	"tableflip.dev/outline/pkg/keys"
	"tableflip.dev/outline/pkg/prefix"
)

// Key prints the typed shorthands and the active key bindings.
type Key struct {
	Enabled prefix.Set
	Keymap  *keys.Keymap
	Out     io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the shorthand legend and the key bindings.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")

	gl := glyph.Enabled(k.Enabled)
	sort.Sort(glyph.ByOrder(gl))
	k.Glyphs(ctx, gl)
	_, _ = fmt.Fprintln(k.out(), "")

	km := k.Keymap
	if km == nil {
		km = keys.DefaultKeymap()
	}
	k.Bindings(ctx, km)

	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Glyphs renders the shorthand table.
func (k *Key) Glyphs(_ context.Context, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Symbol"), bold.Sprint("Type"), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		typed := make([]string, 0, len(v.Keys))
		for _, s := range v.Keys {
			typed = append(typed, fmt.Sprintf("%q", s))
		}
		tbl.AddRow(v.Symbol, strings.Join(typed, " or "), v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Bindings renders one row per intent with its chords.
func (k *Key) Bindings(_ context.Context, km *keys.Keymap) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	tbl.AddRow("tab", "indent selected lines")
	tbl.AddRow("shift+tab", "unindent selected lines")
	for _, i := range keys.Intents() {
		events := km.Bindings(i)
		if len(events) == 0 {
			continue
		}
		chords := make([]string, 0, len(events))
		for _, e := range events {
			chords = append(chords, e.String())
		}
		tbl.AddRow(strings.Join(chords, ", "), i.Help())
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
