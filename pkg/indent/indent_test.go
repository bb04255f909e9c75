package indent

import (
	"errors"
	"testing"

	"tableflip.dev/outline/pkg/document"
)

func TestNext(t *testing.T) {
	e := New(3)
	tests := map[string]struct {
		level  int
		action Action
		want   int
	}{
		"indent":          {level: 0, action: Indent, want: 1},
		"indent at max":   {level: 3, action: Indent, want: 3},
		"unindent":        {level: 2, action: Unindent, want: 1},
		"unindent at 0":   {level: 0, action: Unindent, want: 0},
		"reset":           {level: 3, action: Reset, want: 0},
		"reset at 0":      {level: 0, action: Reset, want: 0},
		"clamps overflow": {level: 7, action: Unindent, want: 3},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := e.Next(tc.level, tc.action); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestLevelStaysInRange(t *testing.T) {
	e := New(4)
	d := document.New(document.Options{Features: document.AllFeatures(), MaxIndentLevel: 4})
	line, err := d.Indentable(0)
	if err != nil {
		t.Fatalf("indentable: %v", err)
	}
	actions := []Action{Indent, Indent, Indent, Indent, Indent, Indent, Unindent, Reset, Unindent, Indent}
	for i, a := range actions {
		if _, err := e.Apply(line, a); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if l := line.IndentLevel(); l < 0 || l > e.MaxLevel {
			t.Fatalf("step %d: level %d out of range", i, l)
		}
	}
	if line.IndentLevel() != 1 {
		t.Fatalf("expected final level 1, got %d", line.IndentLevel())
	}
}

func TestDecide(t *testing.T) {
	e := New(2)
	if ev := e.Decide(Indent, 2, 2, 1); !ev.Actionable {
		t.Fatalf("one indentable line makes the event actionable")
	}
	if ev := e.Decide(Indent, 2, 2); ev.Actionable {
		t.Fatalf("no line below max: not actionable")
	}
	if ev := e.Decide(Unindent, 0); ev.Actionable {
		t.Fatalf("unindent at 0 is not actionable")
	}
}

func TestApplyNilLine(t *testing.T) {
	if _, err := New(2).Apply(nil, Indent); !errors.Is(err, document.ErrNotIndentable) {
		t.Fatalf("expected ErrNotIndentable, got %v", err)
	}
}
