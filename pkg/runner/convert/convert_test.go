package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

const sample = `- groceries
  - [x] milk
  - [ ] eggs
[home] fix sink
`

func TestImportThenExport(t *testing.T) {
	svc := service(t)
	var out bytes.Buffer
	in := Import{Service: svc, Name: "list", Path: "-", In: strings.NewReader(sample), IndentWidth: 2, Out: &out}
	if err := in.Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), "4 lines, 1/2 done") {
		t.Fatalf("unexpected import summary %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "list.md")
	ex := Export{Service: svc, Name: "list", Path: path, IndentWidth: 2}
	if err := ex.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(got) != sample {
		t.Fatalf("expected:\n%s\ngot:\n%s", sample, got)
	}
}

func TestImportFromFile(t *testing.T) {
	svc := service(t)
	path := filepath.Join(t.TempDir(), "in.md")
	if err := os.WriteFile(path, []byte("* one\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	in := Import{Service: svc, Name: "one", Path: path, IndentWidth: 2, Out: &bytes.Buffer{}}
	if err := in.Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}

	var out bytes.Buffer
	ex := Export{Service: svc, Name: "one", IndentWidth: 2, Out: &out}
	if err := ex.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.String() != "- one\n" {
		t.Fatalf("unexpected export %q", out.String())
	}
}

func TestImportMissingFile(t *testing.T) {
	in := Import{Service: service(t), Name: "x", Path: filepath.Join(t.TempDir(), "nope.md")}
	if err := in.Do(context.Background()); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
