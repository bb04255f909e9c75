package create

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/store"
)

func service(t *testing.T) *app.Service {
	t.Helper()
	files, err := store.Load(store.Dir(t.TempDir()), nil)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return app.NewService(files, document.DefaultOptions(), nil)
}

func TestCreateNamed(t *testing.T) {
	svc := service(t)
	var out bytes.Buffer
	c := Create{Service: svc, Name: "ideas", Out: &out}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Created != "ideas" {
		t.Fatalf("unexpected name %q", c.Created)
	}
	if ok, err := svc.Exists(context.Background(), "ideas"); err != nil || !ok {
		t.Fatalf("expected ideas to exist, err=%v", err)
	}

	again := Create{Service: svc, Name: "ideas", Out: &out}
	if err := again.Do(context.Background()); !errors.Is(err, app.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestCreateGeneratesName(t *testing.T) {
	var out bytes.Buffer
	c := Create{Service: service(t), Out: &out}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(c.Created); err != nil {
		t.Fatalf("expected a uuid name, got %q", c.Created)
	}
}
