package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/checklist"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/markdown"
	"tableflip.dev/outline/pkg/serializer"
	"tableflip.dev/outline/pkg/store"
)

const (
	cacheSize = 32
	cacheTTL  = 10 * time.Minute
)

var (
	// ErrNoStore is returned when the service has no FileIO.
	ErrNoStore = errors.New("app: no store configured")
	// ErrExists is returned when creating a document whose name is taken.
	ErrExists = errors.New("app: document already exists")
)

// Service provides high-level operations on stored outlines. It wraps the
// store and the serializer so the terminal editor and the CLI share logic.
// Decoded documents are cached until their file changes.
type Service struct {
	Files   store.FileIO
	Options document.Options
	Log     *zap.Logger

	cache *expirable.LRU[string, *document.Document]
}

// NewService returns a service reading and writing through files.
func NewService(files store.FileIO, opts document.Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Files:   files,
		Options: opts,
		Log:     log,
		cache:   expirable.NewLRU[string, *document.Document](cacheSize, nil, cacheTTL),
	}
}

func (s *Service) ready(ctx context.Context) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if s.Files == nil {
		return ErrNoStore
	}
	if s.cache == nil {
		s.cache = expirable.NewLRU[string, *document.Document](cacheSize, nil, cacheTTL)
	}
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	return nil
}

// Load returns the named document. A document that was never saved (or an
// empty file) loads as a single empty line; unreadable content is an error
// wrapping serializer.ErrMalformed or serializer.ErrUnsupportedVersion.
func (s *Service) Load(ctx context.Context, name string) (*document.Document, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if doc, ok := s.cache.Get(name); ok {
		return doc.Clone(), nil
	}

	data, err := s.Files.ReadFile(name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.Log.Debug("document not found, starting empty", zap.String("name", name))
		return document.New(s.Options), nil
	case err != nil:
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return document.New(s.Options), nil
	}

	doc, err := serializer.Unmarshal(data, s.Options)
	if err != nil {
		return nil, fmt.Errorf("app: load %s: %w", name, err)
	}
	s.cache.Add(name, doc.Clone())
	return doc, nil
}

// Save serializes doc and writes it under name.
func (s *Service) Save(ctx context.Context, name string, doc *document.Document) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	data, err := serializer.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.Files.WriteFile(name, data); err != nil {
		s.cache.Remove(name)
		return err
	}
	s.cache.Add(name, doc.Clone())
	return nil
}

// SaveFunc returns a writer for already serialized content of name, as
// used by the autosaver.
func (s *Service) SaveFunc(name string) func([]byte) error {
	return func(data []byte) error {
		if err := s.ready(context.Background()); err != nil {
			return err
		}
		s.cache.Remove(name)
		return s.Files.WriteFile(name, data)
	}
}

// Exists reports whether name has been saved.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	_, err := s.Files.ReadFile(name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Create stores an empty document. An empty name gets a generated one. The
// chosen name is returned.
func (s *Service) Create(ctx context.Context, name string) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	if name == "" {
		name = uuid.NewString()
	}
	if err := store.ValidateName(name); err != nil {
		return "", err
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := s.Save(ctx, name, document.New(s.Options)); err != nil {
		return "", err
	}
	return name, nil
}

// Names returns stored document names, sorted.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.Files.ListFiles(ctx)
}

// FileInfo describes one stored document.
type FileInfo struct {
	Name  string
	Path  string
	Stats checklist.Stats
	// Err is set when the document could not be loaded.
	Err error
}

// Infos loads every stored document and summarizes it. Documents that fail
// to load are reported with Err set rather than failing the listing.
func (s *Service) Infos(ctx context.Context) ([]FileInfo, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FileInfo, 0, len(names))
	for _, name := range names {
		info := FileInfo{Name: name, Path: s.Files.Path(name)}
		doc, err := s.Load(ctx, name)
		if err != nil {
			if ctx != nil && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.Log.Warn("skipping unreadable document", zap.String("name", name), zap.Error(err))
			info.Err = err
		} else {
			info.Stats = checklist.Compute(doc)
		}
		out = append(out, info)
	}
	return out, nil
}

// Import reads a Markdown outline from r and stores it under name,
// replacing any existing document.
func (s *Service) Import(ctx context.Context, name string, r io.Reader, indentWidth int) (*document.Document, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	doc, err := markdown.Import(r, s.Options, indentWidth, s.Log)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Export writes the named document to w as Markdown.
func (s *Service) Export(ctx context.Context, name string, w io.Writer, indentWidth int) error {
	doc, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	return markdown.Export(w, doc, indentWidth)
}

// Invalidate drops any cached copy of name.
func (s *Service) Invalidate(name string) {
	if s.cache != nil {
		s.cache.Remove(name)
	}
}

// Watch subscribes to store change events. Cached documents are dropped
// before an event is forwarded, so a Load that follows sees the new file.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	in, err := s.Files.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan store.Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			switch ev.Type {
			case store.EventFilesInvalidated:
				s.cache.Purge()
			default:
				s.cache.Remove(ev.Name)
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
