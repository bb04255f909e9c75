package render

import (
	"errors"
	"testing"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/prefix"
)

func layout(t *testing.T) Layout {
	t.Helper()
	l, err := NewLayout(2, 4)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func TestNewLayoutRejectsNarrowPrefix(t *testing.T) {
	if _, err := NewLayout(2, 2); !errors.Is(err, prefix.ErrPrefixTooNarrow) {
		t.Fatalf("expected ErrPrefixTooNarrow, got %v", err)
	}
	if _, err := NewLayout(0, 4); err == nil {
		t.Fatalf("expected error for zero indent width")
	}
}

func TestDescribeCheckbox(t *testing.T) {
	d := layout(t).Describe(document.Line{
		Text:        "eggs",
		IndentLevel: 2,
		Checkbox:    document.CheckboxChecked,
	})
	if d.Decoration != DecorationCheckbox || !d.Checked {
		t.Fatalf("expected checked checkbox, got %s %t", d.Decoration, d.Checked)
	}
	if d.PrefixStart != 4 || d.TextStart != 8 {
		t.Fatalf("unexpected columns prefix=%d text=%d", d.PrefixStart, d.TextStart)
	}
	// The box is right-aligned in the prefix column.
	if d.CheckboxStart != 6 || d.CheckboxEnd != 8 {
		t.Fatalf("unexpected checkbox cells [%d,%d)", d.CheckboxStart, d.CheckboxEnd)
	}
	if !d.OnCheckbox(6) || !d.OnCheckbox(7) || d.OnCheckbox(5) || d.OnCheckbox(8) {
		t.Fatalf("checkbox hit cells are wrong")
	}
}

func TestCheckboxCellsAgreeWithGeometry(t *testing.T) {
	lay := layout(t)
	g := lay.Geometry()
	d := lay.Describe(document.Line{Checkbox: document.CheckboxUnchecked})
	for c := 0; c < lay.PrefixWidth; c++ {
		x, y := CellCenter(c)
		if g.Hit(x, y) != d.OnCheckbox(c) {
			t.Fatalf("cell %d: geometry hit=%t, layout=%t", c, g.Hit(x, y), d.OnCheckbox(c))
		}
	}
}

func TestDescribeBulletAndPlain(t *testing.T) {
	lay := layout(t)
	if d := lay.Describe(document.Line{Bullet: true}); d.Decoration != DecorationBullet || d.OnCheckbox(2) {
		t.Fatalf("bullet line must not expose a checkbox")
	}
	if d := lay.Describe(document.Line{Text: "x"}); d.Decoration != DecorationNone {
		t.Fatalf("expected no decoration, got %s", d.Decoration)
	}
}

func TestColumnAndOffset(t *testing.T) {
	d := layout(t).Describe(document.Line{Text: "a世b", Tag: "home"})
	// TextStart 4, "[home] " is 7 cells, 世 is 2 cells wide.
	if got := d.Column(0); got != 11 {
		t.Fatalf("column 0: %d", got)
	}
	if got := d.Column(2); got != 14 {
		t.Fatalf("column 2: %d", got)
	}
	if got := d.Column(99); got != 15 {
		t.Fatalf("column past end: %d", got)
	}
	tests := map[int]int{0: 0, 11: 0, 12: 1, 13: 1, 14: 2, 15: 3, 40: 3}
	for col, want := range tests {
		if got := d.Offset(col); got != want {
			t.Fatalf("offset(%d): expected %d, got %d", col, want, got)
		}
	}
}

func TestPrefixCell(t *testing.T) {
	d := layout(t).Describe(document.Line{Bullet: true, IndentLevel: 1})
	if got := d.PrefixCell("•"); got != "  • " {
		t.Fatalf("unexpected prefix cell %q", got)
	}
	if got := d.PrefixCell(""); got != "    " {
		t.Fatalf("unexpected empty prefix cell %q", got)
	}
}
