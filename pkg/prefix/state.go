package prefix

import (
	"tableflip.dev/outline/pkg/document"
)

// State applies prefix mutations to a line. Bullet and checkbox are mutually
// exclusive; a tag is independent of both. Operations on kinds outside
// Enabled are no-ops.
type State struct {
	Enabled Set
}

// Has reports whether line carries a prefix of kind k.
func (s State) Has(line document.PrefixCarrier, k Kind) bool {
	if !s.Enabled.Has(k) {
		return false
	}
	switch k {
	case Bullet:
		return line.HasBullet()
	case Checkbox:
		return line.CheckboxState().Present()
	case Tag:
		return line.TagPrefix() != ""
	}
	return false
}

// Apply sets the prefix described by m on line, clearing a different
// bullet/checkbox prefix first.
func (s State) Apply(line document.PrefixCarrier, m Match) error {
	if !s.Enabled.Has(m.Kind) {
		return nil
	}
	switch m.Kind {
	case Bullet:
		if err := s.Remove(line, Checkbox); err != nil {
			return err
		}
		return line.SetBullet(true)
	case Checkbox:
		if err := s.Remove(line, Bullet); err != nil {
			return err
		}
		c := document.CheckboxUnchecked
		if m.Checked {
			c = document.CheckboxChecked
		}
		return line.SetCheckbox(c)
	case Tag:
		return line.SetTagPrefix(m.Tag)
	}
	return nil
}

// ToggleCheckbox flips checked and unchecked. It reports whether anything
// changed; an absent checkbox is left alone.
func (s State) ToggleCheckbox(line document.PrefixCarrier) (bool, error) {
	if !s.Has(line, Checkbox) {
		return false, nil
	}
	if err := line.SetCheckbox(line.CheckboxState().Toggled()); err != nil {
		return false, err
	}
	return true, nil
}

// Remove clears the prefix of kind k.
func (s State) Remove(line document.PrefixCarrier, k Kind) error {
	if !s.Has(line, k) {
		return nil
	}
	switch k {
	case Bullet:
		return line.SetBullet(false)
	case Checkbox:
		return line.SetCheckbox(document.CheckboxAbsent)
	case Tag:
		return line.SetTagPrefix("")
	}
	return nil
}

// RemoveAll clears the bullet and checkbox prefixes. The tag is kept.
func (s State) RemoveAll(line document.PrefixCarrier) error {
	if err := s.Remove(line, Bullet); err != nil {
		return err
	}
	return s.Remove(line, Checkbox)
}
