// Package checklist summarizes the prefix state of an outline.
package checklist

import (
	"fmt"
	"sort"

	"tableflip.dev/outline/pkg/document"
)

// Stats counts lines by prefix.
type Stats struct {
	Lines      int
	Bullets    int
	Checkboxes int
	Checked    int
	Tags       map[string]int
}

// Compute walks every line of doc.
func Compute(doc *document.Document) Stats {
	s := Stats{Tags: make(map[string]int)}
	for _, l := range doc.Lines() {
		s.Lines++
		if l.Bullet {
			s.Bullets++
		}
		if l.Checkbox.Present() {
			s.Checkboxes++
			if l.Checkbox == document.CheckboxChecked {
				s.Checked++
			}
		}
		if l.Tag != "" {
			s.Tags[l.Tag]++
		}
	}
	return s
}

// Open is the number of unchecked boxes.
func (s Stats) Open() int { return s.Checkboxes - s.Checked }

// Done reports whether every checkbox is checked. Outlines without
// checkboxes are never done.
func (s Stats) Done() bool {
	return s.Checkboxes > 0 && s.Checked == s.Checkboxes
}

// Progress is the checked fraction in [0,1]; 0 without checkboxes.
func (s Stats) Progress() float64 {
	if s.Checkboxes == 0 {
		return 0
	}
	return float64(s.Checked) / float64(s.Checkboxes)
}

// TagNames returns the tags in use, sorted.
func (s Stats) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for t := range s.Tags {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

func (s Stats) String() string {
	if s.Checkboxes == 0 {
		return fmt.Sprintf("%d lines", s.Lines)
	}
	return fmt.Sprintf("%d lines, %d/%d done", s.Lines, s.Checked, s.Checkboxes)
}
