package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const (
	fileExt = ".json"
	tempDir = ".tmp"
)

var (
	// ErrNotFound is returned by ReadFile for a document that does not exist.
	ErrNotFound = fmt.Errorf("store: document not found: %w", os.ErrNotExist)
	// ErrInvalidName is returned for names that cannot be stored as a flat file.
	ErrInvalidName = errors.New("store: invalid document name")
)

// FileIO is the persistence contract for outline documents. Documents are
// addressed by name; contents are opaque bytes.
type FileIO interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	Remove(name string) error
	Path(name string) string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a FileIO backed by diskv under cfg.BasePath(). Each document
// is one <name>.json file; writes go through a temp file and a rename.
func Load(cfg Config, log *zap.Logger) (FileIO, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Files change behind our back (other editors, sync tools), so
			// diskv must always read from disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

// ValidateName checks name can be stored.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func (p *persistence) ListFiles(ctx context.Context) ([]string, error) {
	var names []string
	for key := range p.d.Keys(ctx.Done()) {
		if key == "" {
			continue
		}
		names = append(names, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (p *persistence) ReadFile(name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if !p.d.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	rc, err := p.d.ReadStream(name, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return data, nil
}

func (p *persistence) WriteFile(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := p.d.Write(name, data); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	p.log.Debug("wrote document", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

func (p *persistence) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := p.d.Erase(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("store: remove %s: %w", name, err)
	}
	return nil
}

func (p *persistence) Path(name string) string {
	return filepath.Join(p.basePath, name+fileExt)
}

// keyToPathTransform keeps every document flat in the base directory.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + fileExt,
	}
}

// pathToKeyTransform maps a file back to its document name. Files that are
// not top-level .json documents map to "" and are skipped.
func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) > 0 && !(len(pathKey.Path) == 1 && pathKey.Path[0] == "") {
		return ""
	}
	return nameForFile(pathKey.FileName)
}

func nameForFile(file string) string {
	if !strings.HasSuffix(file, fileExt) || strings.HasPrefix(file, ".") {
		return ""
	}
	return strings.TrimSuffix(file, fileExt)
}
