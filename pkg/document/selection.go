package document

// Point addresses a position in the document: a line index and a rune offset
// into that line's text.
type Point struct {
	Line   int
	Offset int
}

// Before reports whether p comes strictly before o.
func (p Point) Before(o Point) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Offset < o.Offset
}

// Selection is an anchor/focus pair. Focus is where the cursor is drawn.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// Collapsed reports whether the selection is a bare cursor.
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Focus
}

// Start returns the earlier of anchor and focus.
func (s Selection) Start() Point {
	if s.Focus.Before(s.Anchor) {
		return s.Focus
	}
	return s.Anchor
}

// End returns the later of anchor and focus.
func (s Selection) End() Point {
	if s.Focus.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Focus
}

// Lines returns the inclusive range of line indexes the selection spans.
func (s Selection) Lines() (start, end int) {
	return s.Start().Line, s.End().Line
}
