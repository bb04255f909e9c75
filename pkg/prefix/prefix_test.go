package prefix

import (
	"errors"
	"testing"

	"tableflip.dev/outline/pkg/document"
)

func TestDetect(t *testing.T) {
	all := Detector{Enabled: NewSet(Bullet, Checkbox, Tag)}
	tests := map[string]struct {
		det   Detector
		text  string
		want  Match
		found bool
	}{
		"empty":             {det: all, text: ""},
		"plain":             {det: all, text: "hello"},
		"dash bullet":       {det: all, text: "- item", want: Match{Kind: Bullet, Length: 2}, found: true},
		"star bullet":       {det: all, text: "* ", want: Match{Kind: Bullet, Length: 2}, found: true},
		"no space":          {det: all, text: "-item"},
		"empty brackets":    {det: all, text: "[] a", want: Match{Kind: Checkbox, Length: 3}, found: true},
		"spaced brackets":   {det: all, text: "[ ] a", want: Match{Kind: Checkbox, Length: 4}, found: true},
		"checked lower":     {det: all, text: "[x] ", want: Match{Kind: Checkbox, Length: 4, Checked: true}, found: true},
		"checked upper":     {det: all, text: "[X] done", want: Match{Kind: Checkbox, Length: 4, Checked: true}, found: true},
		"tag":               {det: all, text: "[idea] x", want: Match{Kind: Tag, Length: 7, Tag: "idea"}, found: true},
		"tag truncated":     {det: all, text: "[Meeting] x", want: Match{Kind: Tag, Length: 10, Tag: "Meet"}, found: true},
		"bullet disabled":   {det: Detector{Enabled: NewSet(Checkbox)}, text: "- item"},
		"x as tag":          {det: Detector{Enabled: NewSet(Tag)}, text: "[x] a", want: Match{Kind: Tag, Length: 4, Tag: "x"}, found: true},
		"checkbox disabled": {det: Detector{Enabled: NewSet(Bullet)}, text: "[ ] a"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := tc.det.Detect(tc.text)
			if ok != tc.found {
				t.Fatalf("expected found=%t, got %t (%+v)", tc.found, ok, got)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func newCarrier(t *testing.T, f document.Features) (*document.Document, document.PrefixCarrier) {
	t.Helper()
	d := document.New(document.Options{Features: f})
	pc, err := d.PrefixCarrier(0)
	if err != nil {
		t.Fatalf("prefix carrier: %v", err)
	}
	return d, pc
}

func TestApplyBulletAndCheckboxAreExclusive(t *testing.T) {
	_, pc := newCarrier(t, document.AllFeatures())
	s := State{Enabled: NewSet(Bullet, Checkbox, Tag)}

	if err := s.Apply(pc, Match{Kind: Tag, Tag: "a"}); err != nil {
		t.Fatalf("apply tag: %v", err)
	}
	if err := s.Apply(pc, Match{Kind: Bullet}); err != nil {
		t.Fatalf("apply bullet: %v", err)
	}
	if err := s.Apply(pc, Match{Kind: Checkbox, Checked: true}); err != nil {
		t.Fatalf("apply checkbox: %v", err)
	}
	if pc.HasBullet() {
		t.Fatalf("bullet must be cleared by a checkbox")
	}
	if pc.CheckboxState() != document.CheckboxChecked {
		t.Fatalf("expected checked, got %s", pc.CheckboxState())
	}
	if pc.TagPrefix() != "a" {
		t.Fatalf("tag must survive, got %q", pc.TagPrefix())
	}

	if err := s.Apply(pc, Match{Kind: Bullet}); err != nil {
		t.Fatalf("apply bullet: %v", err)
	}
	if pc.CheckboxState().Present() {
		t.Fatalf("checkbox must be cleared by a bullet")
	}
}

func TestToggleCheckbox(t *testing.T) {
	_, pc := newCarrier(t, document.AllFeatures())
	s := State{Enabled: NewSet(Bullet, Checkbox, Tag)}

	if changed, _ := s.ToggleCheckbox(pc); changed {
		t.Fatalf("absent checkbox must not toggle")
	}
	_ = pc.SetCheckbox(document.CheckboxUnchecked)
	if changed, _ := s.ToggleCheckbox(pc); !changed || pc.CheckboxState() != document.CheckboxChecked {
		t.Fatalf("expected checked after toggle, got %s", pc.CheckboxState())
	}
	if _, _ = s.ToggleCheckbox(pc); pc.CheckboxState() != document.CheckboxUnchecked {
		t.Fatalf("expected unchecked after second toggle, got %s", pc.CheckboxState())
	}
}

func TestRemoveAllKeepsTag(t *testing.T) {
	_, pc := newCarrier(t, document.AllFeatures())
	s := State{Enabled: NewSet(Bullet, Checkbox, Tag)}
	_ = pc.SetBullet(true)
	_ = pc.SetTagPrefix("t")
	if err := s.RemoveAll(pc); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if pc.HasBullet() || pc.CheckboxState().Present() {
		t.Fatalf("expected no bullet or checkbox")
	}
	if pc.TagPrefix() != "t" {
		t.Fatalf("tag must be kept")
	}
}

func TestDisabledKindIsNoop(t *testing.T) {
	_, pc := newCarrier(t, document.Features{Bullet: true})
	s := State{Enabled: NewSet(Bullet)}
	if err := s.Apply(pc, Match{Kind: Checkbox}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Has(pc, Checkbox) {
		t.Fatalf("disabled kind must not be applied")
	}
}

func TestHit(t *testing.T) {
	g := DefaultGeometry(2, 16)
	if err := g.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	// margin-left = 2 - 0.9375 - 0.25 = 0.8125em = 13px; box spans 13..28 x 4..19.
	tests := map[string]struct {
		x, y float64
		want bool
	}{
		"inside":       {x: 20, y: 10, want: true},
		"left edge":    {x: 13, y: 4, want: true},
		"right edge":   {x: 28, y: 19, want: true},
		"left of box":  {x: 12, y: 10},
		"right of box": {x: 29, y: 10},
		"above":        {x: 20, y: 3},
		"below":        {x: 20, y: 20},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := g.Hit(tc.x, tc.y); got != tc.want {
				t.Fatalf("Hit(%g,%g) = %t, want %t", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestValidateTooNarrow(t *testing.T) {
	if err := DefaultGeometry(1, 16).Validate(); !errors.Is(err, ErrPrefixTooNarrow) {
		t.Fatalf("expected ErrPrefixTooNarrow, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Checkbox"); err != nil || k != Checkbox {
		t.Fatalf("expected checkbox, got %v %v", k, err)
	}
	if _, err := ParseKind("emoji"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
