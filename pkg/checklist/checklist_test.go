package checklist

import (
	"testing"

	"tableflip.dev/outline/pkg/document"
)

func TestCompute(t *testing.T) {
	doc := document.FromLines(document.DefaultOptions(), []document.Line{
		{Text: "plan"},
		{Text: "a", Bullet: true},
		{Text: "b", Checkbox: document.CheckboxChecked, Tag: "home"},
		{Text: "c", Checkbox: document.CheckboxUnchecked, Tag: "home"},
		{Text: "d", Checkbox: document.CheckboxChecked, Tag: "work"},
	})
	s := Compute(doc)
	if s.Lines != 5 || s.Bullets != 1 || s.Checkboxes != 3 || s.Checked != 2 || s.Open() != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Done() {
		t.Fatalf("one box is still open")
	}
	if got := s.Progress(); got < 0.66 || got > 0.67 {
		t.Fatalf("expected 2/3 progress, got %f", got)
	}
	if names := s.TagNames(); len(names) != 2 || names[0] != "home" || s.Tags["home"] != 2 {
		t.Fatalf("unexpected tags: %v %v", names, s.Tags)
	}
	if s.String() != "5 lines, 2/3 done" {
		t.Fatalf("unexpected summary %q", s.String())
	}
}

func TestComputeWithoutCheckboxes(t *testing.T) {
	s := Compute(document.New(document.DefaultOptions()))
	if s.Done() || s.Progress() != 0 || s.String() != "1 lines" {
		t.Fatalf("unexpected stats: %+v %q", s, s.String())
	}
}
