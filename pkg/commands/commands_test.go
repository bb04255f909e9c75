package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
)

func writeConfig(t *testing.T) (cfgFile, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfgFile = filepath.Join(dir, "outline.yaml")
	if err := os.WriteFile(cfgFile, []byte("path: "+dataDir+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgFile, dataDir
}

func TestShowJSONReportsErrorAsJSON(t *testing.T) {
	cfgFile, dataDir := writeConfig(t)
	if err := os.WriteFile(filepath.Join(dataDir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	var out bytes.Buffer
	saved := color.Output
	color.Output = &out
	t.Cleanup(func() {
		color.Output = saved
		oo.JSON = false
		co.File = ""
	})

	cmd := New()
	cmd.SetArgs([]string{"show", "broken", "--json", "--config", cfgFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected the error to be reported as JSON, got %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %q: %v", out.String(), err)
	}
	if got["error"] == "" {
		t.Fatalf("expected an error field, got %q", out.String())
	}
}

func TestShowWithoutJSONReturnsError(t *testing.T) {
	cfgFile, dataDir := writeConfig(t)
	if err := os.WriteFile(filepath.Join(dataDir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	t.Cleanup(func() {
		oo.JSON = false
		co.File = ""
	})

	cmd := New()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"show", "broken", "--config", cfgFile})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a malformed document")
	}
}
