package document

import (
	"encoding/json"
	"fmt"
)

// Checkbox is the tri-state checkbox prefix of a line.
type Checkbox int8

const (
	// CheckboxAbsent means the line carries no checkbox.
	CheckboxAbsent Checkbox = iota
	// CheckboxUnchecked is an open checkbox.
	CheckboxUnchecked
	// CheckboxChecked is a ticked checkbox.
	CheckboxChecked
)

// CheckboxFromBool maps the persisted nullable boolean onto a Checkbox.
func CheckboxFromBool(v *bool) Checkbox {
	switch {
	case v == nil:
		return CheckboxAbsent
	case *v:
		return CheckboxChecked
	default:
		return CheckboxUnchecked
	}
}

// Bool returns the nullable boolean form: nil = absent, false = unchecked, true = checked.
func (c Checkbox) Bool() *bool {
	switch c {
	case CheckboxChecked:
		v := true
		return &v
	case CheckboxUnchecked:
		v := false
		return &v
	default:
		return nil
	}
}

// Present reports whether a checkbox is shown on the line.
func (c Checkbox) Present() bool {
	return c == CheckboxChecked || c == CheckboxUnchecked
}

// Toggled flips checked and unchecked. An absent checkbox stays absent.
func (c Checkbox) Toggled() Checkbox {
	switch c {
	case CheckboxChecked:
		return CheckboxUnchecked
	case CheckboxUnchecked:
		return CheckboxChecked
	default:
		return CheckboxAbsent
	}
}

func (c Checkbox) String() string {
	switch c {
	case CheckboxChecked:
		return "checked"
	case CheckboxUnchecked:
		return "unchecked"
	default:
		return "absent"
	}
}

// MarshalJSON writes null, false or true.
func (c Checkbox) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Bool())
}

// UnmarshalJSON reads null, false or true.
func (c *Checkbox) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("document: checkbox: %w", err)
	}
	*c = CheckboxFromBool(v)
	return nil
}

// Line is one editable unit of a Document. It owns its text and attributes.
type Line struct {
	Text        string
	IndentLevel int
	Bullet      bool
	Checkbox    Checkbox
	Tag         string
}

// NewLine returns a line with default attributes: level 0 and no prefixes.
func NewLine(text string) *Line {
	return &Line{Text: text}
}

// Clone returns an independent copy of l.
func (l *Line) Clone() *Line {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

// HasPrefix reports whether the line carries a bullet or a checkbox.
func (l *Line) HasPrefix() bool {
	return l.Bullet || l.Checkbox.Present()
}

func (l *Line) String() string {
	return fmt.Sprintf("{%d bullet=%t checkbox=%s tag=%q %q}", l.IndentLevel, l.Bullet, l.Checkbox, l.Tag, l.Text)
}
