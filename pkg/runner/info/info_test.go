package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/config"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/store"
)

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.PathEnv, "")
	files, err := store.Load(store.Dir(dir), nil)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := app.NewService(files, document.DefaultOptions(), nil)
	if _, err := svc.Create(context.Background(), "todo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	var out bytes.Buffer
	n := Info{Config: &config.Config{Path: dir, File: config.DefaultFile}, Service: svc, Out: &out}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{"env var not set", dir, "Documents:", "  todo"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}
