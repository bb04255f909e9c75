// Package render lays outline lines out on a grid of terminal cells: how far
// each line is indented, what decoration its prefix column shows, where the
// checkbox hit region sits and which column each text offset lands in.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/prefix"
)

// CellsPerEm approximates one em in terminal cells; cells are about half as
// wide as they are tall.
const CellsPerEm = 2.0

// Decoration is what the prefix column shows.
type Decoration int

const (
	// DecorationNone leaves the prefix column blank.
	DecorationNone Decoration = iota
	// DecorationBullet draws a bullet.
	DecorationBullet
	// DecorationCheckbox draws a checkbox, which also takes clicks.
	DecorationCheckbox
)

func (d Decoration) String() string {
	switch d {
	case DecorationNone:
		return "none"
	case DecorationBullet:
		return "bullet"
	case DecorationCheckbox:
		return "checkbox"
	default:
		return fmt.Sprintf("Decoration(%d)", int(d))
	}
}

// Layout holds the cell metrics every line shares.
type Layout struct {
	IndentWidth int
	PrefixWidth int
}

// NewLayout checks the prefix column can hold a checkbox.
func NewLayout(indentWidth, prefixWidth int) (Layout, error) {
	l := Layout{IndentWidth: indentWidth, PrefixWidth: prefixWidth}
	if indentWidth < 1 {
		return l, fmt.Errorf("render: indent width must be at least 1, got %d", indentWidth)
	}
	if err := l.Geometry().Validate(); err != nil {
		return l, fmt.Errorf("render: %w", err)
	}
	return l, nil
}

// Geometry is the checkbox geometry in cell units: PrefixWidth cells wide,
// CellsPerEm cells per em.
func (l Layout) Geometry() prefix.Geometry {
	return prefix.DefaultGeometry(float64(l.PrefixWidth)/CellsPerEm, CellsPerEm)
}

// Line describes one laid out line. Columns are absolute cells from the left
// edge of the editor.
type Line struct {
	Decoration Decoration
	Checked    bool
	Tag        string
	Text       string

	// PrefixStart is where the prefix column begins, after indentation.
	PrefixStart int
	// CheckboxStart and CheckboxEnd bound the cells, [start,end), whose
	// centers fall inside the checkbox hit region.
	CheckboxStart, CheckboxEnd int
	// TextStart is the first cell after the prefix column. A tag label,
	// when present, is drawn here ahead of the text.
	TextStart int
}

// Describe lays out l.
func (lay Layout) Describe(l document.Line) Line {
	d := Line{
		Checked:     l.Checkbox == document.CheckboxChecked,
		Tag:         l.Tag,
		Text:        l.Text,
		PrefixStart: l.IndentLevel * lay.IndentWidth,
	}
	d.TextStart = d.PrefixStart + lay.PrefixWidth
	switch {
	case l.Checkbox.Present():
		d.Decoration = DecorationCheckbox
	case l.Bullet:
		d.Decoration = DecorationBullet
	}
	d.CheckboxStart, d.CheckboxEnd = lay.checkboxCells()
	d.CheckboxStart += d.PrefixStart
	d.CheckboxEnd += d.PrefixStart
	return d
}

func (lay Layout) checkboxCells() (start, end int) {
	g := lay.Geometry()
	start, end = -1, -1
	for c := 0; c < lay.PrefixWidth; c++ {
		x, y := CellCenter(c)
		if !g.Hit(x, y) {
			continue
		}
		if start < 0 {
			start = c
		}
		end = c + 1
	}
	if start < 0 {
		return 0, 0
	}
	return start, end
}

// CellCenter converts a cell column, relative to the prefix column, into the
// point a click on it stands for.
func CellCenter(col int) (x, y float64) {
	return float64(col) + 0.5, 0.5 * CellsPerEm
}

// TagLabel is the text drawn for the line's tag, empty without one.
func (d Line) TagLabel() string {
	if d.Tag == "" {
		return ""
	}
	return "[" + d.Tag + "] "
}

// Column returns the cell a caret at rune offset sits in.
func (d Line) Column(offset int) int {
	runes := []rune(d.Text)
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset < 0 {
		offset = 0
	}
	return d.TextStart + runewidth.StringWidth(d.TagLabel()) + runewidth.StringWidth(string(runes[:offset]))
}

// Offset maps a cell column back to the nearest rune offset in the text.
// Columns left of the text map to 0.
func (d Line) Offset(col int) int {
	col -= d.TextStart + runewidth.StringWidth(d.TagLabel())
	if col <= 0 {
		return 0
	}
	w := 0
	for i, r := range []rune(d.Text) {
		rw := runewidth.RuneWidth(r)
		if w+rw > col {
			return i
		}
		w += rw
	}
	return len([]rune(d.Text))
}

// OnCheckbox reports whether col is a checkbox cell of a line that has one.
func (d Line) OnCheckbox(col int) bool {
	return d.Decoration == DecorationCheckbox && col >= d.CheckboxStart && col < d.CheckboxEnd
}

// PrefixCell fills the prefix column with symbol drawn on the first
// checkbox cell, so bullets and boxes line up.
func (d Line) PrefixCell(symbol string) string {
	width := d.TextStart - d.PrefixStart
	at := d.CheckboxStart - d.PrefixStart
	if at < 0 || at >= width {
		at = 0
	}
	rest := width - at - runewidth.StringWidth(symbol)
	if rest < 0 {
		rest = 0
	}
	return strings.Repeat(" ", at) + symbol + strings.Repeat(" ", rest)
}
