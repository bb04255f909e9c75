package store

// Config tells the store where documents live.
type Config interface {
	BasePath() string
}

// Dir is a Config for a fixed directory.
type Dir string

// BasePath returns the directory.
func (d Dir) BasePath() string { return string(d) }
