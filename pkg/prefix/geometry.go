package prefix

import (
	"errors"
	"fmt"
)

// Checkbox geometry in em, relative to the line's font size.
const (
	CheckboxSizeEm = 0.9375
	MarginRightEm  = 0.25
	MarginTopEm    = 0.25
)

// ErrPrefixTooNarrow is returned when the prefix column cannot fit the checkbox.
var ErrPrefixTooNarrow = errors.New("prefix: prefix width must be at least checkbox size + margin-right")

// Geometry describes where a checkbox is drawn inside a line's prefix column.
// All lengths share one unit (em for PrefixWidth and the sizes, multiplied by
// FontSize to get device units).
type Geometry struct {
	PrefixWidth  float64
	CheckboxSize float64
	MarginRight  float64
	MarginTop    float64
	FontSize     float64
}

// DefaultGeometry returns the standard checkbox geometry for prefixWidth em
// at fontSize device units per em.
func DefaultGeometry(prefixWidth, fontSize float64) Geometry {
	return Geometry{
		PrefixWidth:  prefixWidth,
		CheckboxSize: CheckboxSizeEm,
		MarginRight:  MarginRightEm,
		MarginTop:    MarginTopEm,
		FontSize:     fontSize,
	}
}

// Validate checks the prefix column is wide enough.
func (g Geometry) Validate() error {
	if g.PrefixWidth < g.CheckboxSize+g.MarginRight {
		return fmt.Errorf("%w: %g < %g + %g", ErrPrefixTooNarrow, g.PrefixWidth, g.CheckboxSize, g.MarginRight)
	}
	return nil
}

// Rect is an inclusive bounding box in device units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// CheckboxBounds returns the checkbox box. The checkbox is right-aligned in
// the prefix column, MarginRight away from the text.
func (g Geometry) CheckboxBounds() Rect {
	left := g.PrefixWidth - g.CheckboxSize - g.MarginRight
	return Rect{
		MinX: left * g.FontSize,
		MinY: g.MarginTop * g.FontSize,
		MaxX: (left + g.CheckboxSize) * g.FontSize,
		MaxY: (g.MarginTop + g.CheckboxSize) * g.FontSize,
	}
}

// Hit reports whether a click at offset (x, y) from the line's top-left
// corner landed on the checkbox.
func (g Geometry) Hit(x, y float64) bool {
	return g.CheckboxBounds().Contains(x, y)
}
