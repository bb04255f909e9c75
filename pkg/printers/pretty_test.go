package printers

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/checklist"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/render"
)

func printer(t *testing.T, width int, buf *bytes.Buffer) *PrettyPrint {
	t.Helper()
	color.NoColor = true
	lay, err := render.NewLayout(2, 4)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return &PrettyPrint{Layout: lay, Width: width, Out: buf}
}

func TestLineDecorations(t *testing.T) {
	pp := printer(t, 0, nil)
	tests := []struct {
		line document.Line
		want string
	}{
		{document.Line{Text: "plain"}, "    plain"},
		{document.Line{Text: "milk", Bullet: true}, "  • milk"},
		{document.Line{Text: "eggs", IndentLevel: 1, Checkbox: document.CheckboxUnchecked}, "    ☐ eggs"},
		{document.Line{Text: "bread", Checkbox: document.CheckboxChecked, Tag: "shop"}, "  ☑ [shop] bread"},
	}
	for _, tc := range tests {
		if got := pp.Line(tc.line); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestLineWraps(t *testing.T) {
	pp := printer(t, 16, nil)
	got := pp.Line(document.Line{Text: "one two three four", Bullet: true})
	want := "  • one two\n    three four"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestOutline(t *testing.T) {
	var buf bytes.Buffer
	pp := printer(t, 0, &buf)
	doc := document.FromLines(document.DefaultOptions(), []document.Line{
		{Text: "a", Checkbox: document.CheckboxChecked},
		{Text: "b", Checkbox: document.CheckboxUnchecked},
	})
	pp.Title("list", checklist.Compute(doc))
	pp.Outline(doc)
	want := "list - 2 lines, 1/2 done\n  ☑ a\n  ☐ b\n\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	pp.Outline(document.New(document.DefaultOptions()))
	if buf.String() != " empty\n\n" {
		t.Fatalf("unexpected empty rendering %q", buf.String())
	}
}
