package document

import (
	"errors"
	"testing"
)

func texts(d *Document) []string {
	out := make([]string, 0, d.Len())
	for _, l := range d.Lines() {
		out = append(out, l.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func threeLines() *Document {
	return FromLines(DefaultOptions(), []Line{{Text: "a"}, {Text: "b"}, {Text: "c"}})
}

func TestNewHasOneEmptyLine(t *testing.T) {
	d := New(DefaultOptions())
	if d.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", d.Len())
	}
	l, err := d.Line(0)
	if err != nil {
		t.Fatalf("line 0: %v", err)
	}
	if l != (Line{}) {
		t.Fatalf("expected default line, got %s", l.String())
	}
	if d.MaxIndentLevel() != DefaultMaxIndentLevel {
		t.Fatalf("expected max indent %d, got %d", DefaultMaxIndentLevel, d.MaxIndentLevel())
	}
}

func TestFromLinesSanitizes(t *testing.T) {
	opts := Options{Features: Features{Indent: true, Checkbox: true}, MaxIndentLevel: 3}
	d := FromLines(opts, []Line{{Text: "x", IndentLevel: 9, Bullet: true, Checkbox: CheckboxChecked, Tag: "todo"}})
	l, _ := d.Line(0)
	if l.IndentLevel != 3 {
		t.Fatalf("expected clamped level 3, got %d", l.IndentLevel)
	}
	if l.Bullet || l.Tag != "" {
		t.Fatalf("expected disabled attributes dropped, got %s", l.String())
	}
	if l.Checkbox != CheckboxChecked {
		t.Fatalf("expected checkbox kept, got %s", l.Checkbox)
	}
}

func TestRemoveLastLineRejected(t *testing.T) {
	d := New(DefaultOptions())
	if _, err := d.Remove(0); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("document must keep its line")
	}
}

func TestMoveLine(t *testing.T) {
	tests := map[string]struct {
		from, to int
		want     []string
	}{
		"down": {from: 0, to: 2, want: []string{"b", "c", "a"}},
		"up":   {from: 2, to: 0, want: []string{"c", "a", "b"}},
		"same": {from: 1, to: 1, want: []string{"a", "b", "c"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := threeLines()
			if err := d.MoveLine(tc.from, tc.to); err != nil {
				t.Fatalf("move: %v", err)
			}
			if got := texts(d); !equalStrings(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMoveLineOutOfRange(t *testing.T) {
	d := threeLines()
	if err := d.MoveLine(0, 3); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestTextEditsCountRunes(t *testing.T) {
	d := FromLines(DefaultOptions(), []Line{{Text: "héllo"}})
	if err := d.InsertText(0, 2, "X"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := d.DeleteText(0, 0, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	l, _ := d.Line(0)
	if l.Text != "Xllo" {
		t.Fatalf("expected %q, got %q", "Xllo", l.Text)
	}
	if err := d.DeleteText(0, 3, 5); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestSetIndentLevelBounds(t *testing.T) {
	d := New(Options{Features: AllFeatures(), MaxIndentLevel: 2})
	if err := d.SetIndentLevel(0, 3); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	if err := d.SetIndentLevel(0, -1); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	if err := d.SetIndentLevel(0, 2); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestSetTagTooLong(t *testing.T) {
	d := New(DefaultOptions())
	if err := d.SetTag(0, "abcde"); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestSplitCopiesLineAttributes(t *testing.T) {
	d := FromLines(DefaultOptions(), []Line{{Text: "buy milk", IndentLevel: 2, Checkbox: CheckboxChecked, Tag: "tod"}})
	if err := d.Split(0, 3); err != nil {
		t.Fatalf("split: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", d.Len())
	}
	first, _ := d.Line(0)
	second, _ := d.Line(1)
	if first.Text != "buy" || second.Text != " milk" {
		t.Fatalf("unexpected texts %q / %q", first.Text, second.Text)
	}
	if second.IndentLevel != 2 {
		t.Fatalf("expected inherited indent 2, got %d", second.IndentLevel)
	}
	if second.Checkbox != CheckboxUnchecked {
		t.Fatalf("expected unchecked checkbox on new line, got %s", second.Checkbox)
	}
	if first.Checkbox != CheckboxChecked {
		t.Fatalf("original line must stay checked, got %s", first.Checkbox)
	}
	if second.Tag != "" || first.Tag != "tod" {
		t.Fatalf("tag must stay on the original line: %s / %s", first.String(), second.String())
	}
}

func TestMergeWithPrevious(t *testing.T) {
	d := threeLines()
	p, err := d.MergeWithPrevious(2)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if p != (Point{Line: 1, Offset: 1}) {
		t.Fatalf("unexpected join point %+v", p)
	}
	if got := texts(d); !equalStrings(got, []string{"a", "bc"}) {
		t.Fatalf("unexpected texts %v", got)
	}
	if _, err := d.MergeWithPrevious(0); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestDeleteRangeAcrossLines(t *testing.T) {
	d := FromLines(DefaultOptions(), []Line{{Text: "hello"}, {Text: "middle"}, {Text: "world"}})
	if err := d.DeleteRange(Point{Line: 2, Offset: 2}, Point{Line: 0, Offset: 2}); err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if got := texts(d); !equalStrings(got, []string{"herld"}) {
		t.Fatalf("unexpected texts %v", got)
	}
}

func TestCapabilityViews(t *testing.T) {
	d := New(Options{Features: Features{Bullet: true}})
	if _, err := d.Indentable(0); !errors.Is(err, ErrNotIndentable) {
		t.Fatalf("expected ErrNotIndentable, got %v", err)
	}
	pc, err := d.PrefixCarrier(0)
	if err != nil {
		t.Fatalf("prefix carrier: %v", err)
	}
	if err := pc.SetBullet(true); err != nil {
		t.Fatalf("set bullet: %v", err)
	}
	if l, _ := d.Line(0); !l.Bullet {
		t.Fatalf("view must write through to the document")
	}

	none := New(Options{Features: Features{Indent: true}})
	if _, err := none.PrefixCarrier(0); !errors.Is(err, ErrNoPrefixes) {
		t.Fatalf("expected ErrNoPrefixes, got %v", err)
	}
}

func TestEqualAndClone(t *testing.T) {
	d := threeLines()
	c := d.Clone()
	if !d.Equal(c) {
		t.Fatalf("clone must be equal")
	}
	_ = c.SetText(0, "z")
	if d.Equal(c) {
		t.Fatalf("clone must be independent")
	}
}
