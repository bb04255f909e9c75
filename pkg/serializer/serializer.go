// Package serializer converts documents to and from their persisted JSON form:
//
//	{"version": {"major": 0, "minor": 0, "patch": 0},
//	 "lines": [{"data": {"indentLevel": 0, "bulletPrefix": false,
//	            "checkboxPrefix": null, "tagPrefix": null}, "text": ""}]}
//
// Only the data keys of enabled features are written.
package serializer

import (
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/outline/pkg/document"
)

var (
	// ErrMalformed is returned for content that is not a serialized document.
	ErrMalformed = errors.New("serializer: malformed document")
	// ErrUnsupportedVersion is returned for documents written by a newer major version.
	ErrUnsupportedVersion = errors.New("serializer: unsupported version")
)

// Version is the format version.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// CurrentVersion is written by Serialize.
var CurrentVersion = Version{}

// Serialization is the persisted document.
type Serialization struct {
	Version Version `json:"version"`
	Lines   []Line  `json:"lines"`
}

// Line is one persisted line.
type Line struct {
	Data LineData `json:"data"`
	Text string   `json:"text"`
}

// LineData holds the attributes of a line. A nil field belongs to a
// disabled feature and is not written.
type LineData struct {
	IndentLevel    *int               `json:"indentLevel,omitempty"`
	BulletPrefix   *bool              `json:"bulletPrefix,omitempty"`
	CheckboxPrefix *document.Checkbox `json:"checkboxPrefix,omitempty"`
	TagPrefix      *Tag               `json:"tagPrefix,omitempty"`
}

// Tag is a tag prefix that is written as null when empty.
type Tag string

// MarshalJSON writes null for the empty tag.
func (t Tag) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// Serialize captures doc in its persisted form.
func Serialize(doc *document.Document) Serialization {
	f := doc.Features()
	s := Serialization{Version: CurrentVersion, Lines: make([]Line, 0, doc.Len())}
	for _, l := range doc.Lines() {
		var data LineData
		if f.Indent {
			level := l.IndentLevel
			data.IndentLevel = &level
		}
		if f.Bullet {
			bullet := l.Bullet
			data.BulletPrefix = &bullet
		}
		if f.Checkbox {
			cb := l.Checkbox
			data.CheckboxPrefix = &cb
		}
		if f.Tag {
			tag := Tag(l.Tag)
			data.TagPrefix = &tag
		}
		s.Lines = append(s.Lines, Line{Data: data, Text: l.Text})
	}
	return s
}

// Deserialize rebuilds a document with opts. Missing keys take their default
// values, attributes of disabled features are dropped, and indent levels
// are clamped into range.
func Deserialize(s Serialization, opts document.Options) (*document.Document, error) {
	if s.Version.Major > CurrentVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, s.Version)
	}
	lines := make([]document.Line, 0, len(s.Lines))
	for _, sl := range s.Lines {
		l := document.Line{Text: sl.Text}
		if sl.Data.IndentLevel != nil {
			l.IndentLevel = *sl.Data.IndentLevel
		}
		if sl.Data.BulletPrefix != nil {
			l.Bullet = *sl.Data.BulletPrefix
		}
		if sl.Data.CheckboxPrefix != nil {
			l.Checkbox = *sl.Data.CheckboxPrefix
		}
		if sl.Data.TagPrefix != nil {
			l.Tag = string(*sl.Data.TagPrefix)
		}
		if l.Bullet && l.Checkbox.Present() {
			// Hand-edited files can carry both; the checkbox wins as it holds more state.
			l.Bullet = false
		}
		lines = append(lines, l)
	}
	return document.FromLines(opts, lines), nil
}

// Marshal serializes doc as JSON indented with two spaces.
func Marshal(doc *document.Document) ([]byte, error) {
	b, err := json.MarshalIndent(Serialize(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializer: marshal: %w", err)
	}
	return b, nil
}

// Unmarshal parses data written by Marshal.
func Unmarshal(data []byte, opts document.Options) (*document.Document, error) {
	var s Serialization
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Deserialize(s, opts)
}
