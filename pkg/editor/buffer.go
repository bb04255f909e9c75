// Package editor is the low-level editing engine under the outline behaviours:
// it owns the selection and gives every key event its default meaning (typing,
// deleting, splitting, merging, cursor movement).
package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/keys"
)

// Buffer pairs a document with a selection. Document changes, whoever makes
// them, move the selection along.
type Buffer struct {
	doc    *document.Document
	sel    document.Selection
	keymap *keys.Keymap

	unsubscribe func()
}

// New returns a buffer over doc with the caret at the start of the first line.
func New(doc *document.Document, km *keys.Keymap) *Buffer {
	if km == nil {
		km = keys.DefaultKeymap()
	}
	b := &Buffer{keymap: km}
	b.Reset(doc)
	return b
}

// Document returns the edited document.
func (b *Buffer) Document() *document.Document { return b.doc }

// Selection returns the current selection.
func (b *Buffer) Selection() document.Selection { return b.sel }

// Caret returns the focus point.
func (b *Buffer) Caret() document.Point { return b.sel.Focus }

// SetSelection replaces the selection, clamping both ends into the document.
func (b *Buffer) SetSelection(s document.Selection) {
	b.sel = document.Selection{Anchor: b.clamp(s.Anchor), Focus: b.clamp(s.Focus)}
}

// Reset swaps in doc, keeping the caret where it still fits.
func (b *Buffer) Reset(doc *document.Document) {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	b.doc = doc
	b.unsubscribe = doc.Subscribe(b.remap)
	b.SetSelection(b.sel)
}

// Close stops tracking the document.
func (b *Buffer) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *Buffer) lineLen(i int) int {
	l, err := b.doc.Line(i)
	if err != nil {
		return 0
	}
	return utf8.RuneCountInString(l.Text)
}

func (b *Buffer) clamp(p document.Point) document.Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= b.doc.Len() {
		p.Line = b.doc.Len() - 1
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if n := b.lineLen(p.Line); p.Offset > n {
		p.Offset = n
	}
	return p
}

func (b *Buffer) remap(c document.Change) {
	b.sel.Anchor = b.remapPoint(b.sel.Anchor, c)
	b.sel.Focus = b.remapPoint(b.sel.Focus, c)
}

func (b *Buffer) remapPoint(p document.Point, c document.Change) document.Point {
	switch c.Kind {
	case document.ChangeText:
		if p.Line != c.Line {
			return p
		}
		switch {
		case c.Delta > 0 && p.Offset >= c.Offset:
			p.Offset += c.Delta
		case c.Delta < 0 && p.Offset > c.Offset:
			p.Offset = max(c.Offset, p.Offset+c.Delta)
		}
	case document.ChangeInsert:
		if p.Line >= c.Line {
			p.Line++
		}
	case document.ChangeRemove:
		switch {
		case p.Line > c.Line:
			p.Line--
		case p.Line == c.Line && c.Line > 0:
			p = document.Point{Line: c.Line - 1, Offset: b.lineLen(c.Line - 1)}
		case p.Line == c.Line:
			p = document.Point{}
		}
	case document.ChangeMove:
		switch {
		case p.Line == c.From:
			p.Line = c.Line
		case c.From < c.Line && p.Line > c.From && p.Line <= c.Line:
			p.Line--
		case c.From > c.Line && p.Line >= c.Line && p.Line < c.From:
			p.Line++
		}
	}
	return b.clamp(p)
}

// Apply gives ev its default editing meaning. It reports whether the event
// was consumed.
func (b *Buffer) Apply(ev keys.Event) (bool, error) {
	shift := ev.Mod.Has(keys.ModShift)
	switch {
	case ev.Printable():
		return true, b.Insert(string(ev.Rune))
	case ev.Key == keys.KeyEnter && !ev.Mod.Any(keys.ModCtrl|keys.ModAlt|keys.ModMeta):
		return true, b.Split()
	case b.keymap.Is(ev, keys.DeleteBackward):
		return true, b.deleteBackward(func(text []rune, off int) int { return off - 1 })
	case b.keymap.Is(ev, keys.DeleteWordBackward):
		return true, b.deleteBackward(wordStart)
	case b.keymap.Is(ev, keys.DeleteLineBackward):
		return true, b.deleteBackward(func([]rune, int) int { return 0 })
	case ev.Key == keys.KeyDelete:
		return true, b.deleteForward()
	case ev.Key == keys.KeyLeft:
		b.moveCaret(b.left(b.sel.Focus), shift)
	case ev.Key == keys.KeyRight:
		b.moveCaret(b.right(b.sel.Focus), shift)
	case ev.Key == keys.KeyUp:
		b.moveCaret(document.Point{Line: b.sel.Focus.Line - 1, Offset: b.sel.Focus.Offset}, shift)
	case ev.Key == keys.KeyDown:
		b.moveCaret(document.Point{Line: b.sel.Focus.Line + 1, Offset: b.sel.Focus.Offset}, shift)
	case ev.Key == keys.KeyHome:
		b.moveCaret(document.Point{Line: b.sel.Focus.Line}, shift)
	case ev.Key == keys.KeyEnd:
		b.moveCaret(document.Point{Line: b.sel.Focus.Line, Offset: b.lineLen(b.sel.Focus.Line)}, shift)
	default:
		return false, nil
	}
	return true, nil
}

func (b *Buffer) moveCaret(p document.Point, extend bool) {
	p = b.clamp(p)
	if extend {
		b.sel.Focus = p
		return
	}
	b.sel = document.Caret(p)
}

func (b *Buffer) left(p document.Point) document.Point {
	if !b.sel.Collapsed() {
		return b.sel.Start()
	}
	if p.Offset > 0 {
		p.Offset--
	} else if p.Line > 0 {
		p = document.Point{Line: p.Line - 1, Offset: b.lineLen(p.Line - 1)}
	}
	return p
}

func (b *Buffer) right(p document.Point) document.Point {
	if !b.sel.Collapsed() {
		return b.sel.End()
	}
	if p.Offset < b.lineLen(p.Line) {
		p.Offset++
	} else if p.Line < b.doc.Len()-1 {
		p = document.Point{Line: p.Line + 1}
	}
	return p
}

// deleteSelection removes a non-empty selection and collapses the caret onto
// its start.
func (b *Buffer) deleteSelection() (bool, error) {
	if b.sel.Collapsed() {
		return false, nil
	}
	start, end := b.sel.Start(), b.sel.End()
	b.sel = document.Caret(start)
	if err := b.doc.DeleteRange(start, end); err != nil {
		return true, err
	}
	b.sel = document.Caret(b.clamp(start))
	return true, nil
}

// Insert types s at the caret, replacing the selection. Newlines split lines.
func (b *Buffer) Insert(s string) error {
	if _, err := b.deleteSelection(); err != nil {
		return err
	}
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			if err := b.Split(); err != nil {
				return err
			}
		}
		if part == "" {
			continue
		}
		p := b.sel.Focus
		if err := b.doc.InsertText(p.Line, p.Offset, part); err != nil {
			return err
		}
	}
	return nil
}

// Split breaks the caret line in two and puts the caret at the start of the
// new line.
func (b *Buffer) Split() error {
	if _, err := b.deleteSelection(); err != nil {
		return err
	}
	p := b.sel.Focus
	if err := b.doc.Split(p.Line, p.Offset); err != nil {
		return err
	}
	b.sel = document.Caret(b.clamp(document.Point{Line: p.Line + 1}))
	return nil
}

// deleteBackward removes text from target(text, offset) up to the caret, or
// merges the line into the previous one when the caret is at its start.
func (b *Buffer) deleteBackward(target func(text []rune, off int) int) error {
	if done, err := b.deleteSelection(); done || err != nil {
		return err
	}
	p := b.sel.Focus
	if p.Offset == 0 {
		return b.mergeInto(p.Line)
	}
	l, err := b.doc.Line(p.Line)
	if err != nil {
		return err
	}
	from := max(0, target([]rune(l.Text), p.Offset))
	return b.doc.DeleteText(p.Line, from, p.Offset-from)
}

func (b *Buffer) deleteForward() error {
	if done, err := b.deleteSelection(); done || err != nil {
		return err
	}
	p := b.sel.Focus
	if p.Offset < b.lineLen(p.Line) {
		return b.doc.DeleteText(p.Line, p.Offset, 1)
	}
	if p.Line+1 < b.doc.Len() {
		return b.mergeInto(p.Line + 1)
	}
	return nil
}

// mergeInto joins line i onto line i-1 and leaves the caret at the seam.
func (b *Buffer) mergeInto(i int) error {
	if i == 0 {
		return nil
	}
	l, err := b.doc.Line(i)
	if err != nil {
		return err
	}
	if _, err := b.doc.MergeWithPrevious(i); err != nil {
		return err
	}
	// The joined line may have been normalized, so find the seam from the end.
	merged, err := b.doc.Line(i - 1)
	if err != nil {
		return err
	}
	seam := utf8.RuneCountInString(merged.Text) - utf8.RuneCountInString(l.Text)
	b.sel = document.Caret(b.clamp(document.Point{Line: i - 1, Offset: seam}))
	return nil
}

// wordStart returns the offset where the word before off begins, skipping
// any spaces directly before off first.
func wordStart(text []rune, off int) int {
	i := off
	for i > 0 && unicode.IsSpace(text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(text[i-1]) {
		i--
	}
	return i
}
