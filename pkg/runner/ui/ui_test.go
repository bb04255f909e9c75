package ui

import (
	"context"
	"errors"
	"testing"
)

func TestNeedsTerminal(t *testing.T) {
	d := UI{isTerminal: func(uintptr) bool { return false }}
	if err := d.Do(context.Background()); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}
