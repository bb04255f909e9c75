// Package document holds the line-oriented outline model: an ordered, never
// empty sequence of lines, each with text, an indent level and prefix state.
package document

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxIndentLevel is the deepest nesting a line can reach unless configured.
	DefaultMaxIndentLevel = 14
	// MaxTagLength is the longest tag prefix, in runes.
	MaxTagLength = 4
)

// Features names the behaviours enabled for a document.
type Features struct {
	Indent   bool
	Bullet   bool
	Checkbox bool
	Tag      bool
}

// AllFeatures enables every behaviour.
func AllFeatures() Features {
	return Features{Indent: true, Bullet: true, Checkbox: true, Tag: true}
}

// Options configure a new Document.
type Options struct {
	Features       Features
	MaxIndentLevel int
}

// DefaultOptions enables every behaviour with the default indent limit.
func DefaultOptions() Options {
	return Options{Features: AllFeatures(), MaxIndentLevel: DefaultMaxIndentLevel}
}

// Document is an ordered sequence of lines. It always holds at least one line.
// It is not safe for concurrent use; all mutations happen on one goroutine.
type Document struct {
	lines    []*Line
	features Features
	maxLevel int

	revision    uint64
	observers   []subscription
	nextSubID   int
	pending     []Change
	dispatching bool
}

// New returns a document with a single empty line.
func New(opts Options) *Document {
	return FromLines(opts, nil)
}

// FromLines builds a document from copies of lines. Attributes of disabled
// features are dropped and indent levels are clamped into range. An empty
// slice yields a single empty line.
func FromLines(opts Options, lines []Line) *Document {
	if opts.MaxIndentLevel <= 0 {
		opts.MaxIndentLevel = DefaultMaxIndentLevel
	}
	d := &Document{features: opts.Features, maxLevel: opts.MaxIndentLevel}
	for i := range lines {
		l := lines[i]
		d.lines = append(d.lines, d.sanitize(&l))
	}
	if len(d.lines) == 0 {
		d.lines = []*Line{NewLine("")}
	}
	return d
}

func (d *Document) sanitize(l *Line) *Line {
	if !d.features.Indent || l.IndentLevel < 0 {
		l.IndentLevel = 0
	}
	if l.IndentLevel > d.maxLevel {
		l.IndentLevel = d.maxLevel
	}
	if !d.features.Bullet {
		l.Bullet = false
	}
	if !d.features.Checkbox {
		l.Checkbox = CheckboxAbsent
	}
	if !d.features.Tag {
		l.Tag = ""
	}
	if utf8.RuneCountInString(l.Tag) > MaxTagLength {
		l.Tag = string([]rune(l.Tag)[:MaxTagLength])
	}
	return l
}

// Options returns the options the document was built with.
func (d *Document) Options() Options {
	return Options{Features: d.features, MaxIndentLevel: d.maxLevel}
}

// Features returns the enabled behaviours.
func (d *Document) Features() Features { return d.features }

// MaxIndentLevel returns the configured indent limit.
func (d *Document) MaxIndentLevel() int { return d.maxLevel }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Revision increases with every mutation.
func (d *Document) Revision() uint64 { return d.revision }

// Line returns a copy of the line at i.
func (d *Document) Line(i int) (Line, error) {
	if err := d.checkIndex(i); err != nil {
		return Line{}, err
	}
	return *d.lines[i], nil
}

// Lines returns copies of every line in order.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	for i, l := range d.lines {
		out[i] = *l
	}
	return out
}

// Clone returns a deep copy without subscribers.
func (d *Document) Clone() *Document {
	return FromLines(d.Options(), d.Lines())
}

// Equal reports whether both documents hold the same options and lines.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Options() != o.Options() || len(d.lines) != len(o.lines) {
		return false
	}
	for i := range d.lines {
		if *d.lines[i] != *o.lines[i] {
			return false
		}
	}
	return true
}

func (d *Document) checkIndex(i int) error {
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("%w: line %d out of range [0,%d)", ErrContract, i, len(d.lines))
	}
	return nil
}

// Insert places a copy of l at index i, shifting later lines down.
func (d *Document) Insert(i int, l Line) error {
	if i < 0 || i > len(d.lines) {
		return fmt.Errorf("%w: insert index %d out of range [0,%d]", ErrContract, i, len(d.lines))
	}
	d.lines = append(d.lines, nil)
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = d.sanitize(&l)
	d.emit(Change{Kind: ChangeInsert, Line: i})
	return nil
}

// Remove deletes the line at i and returns it. The last line cannot be removed.
func (d *Document) Remove(i int) (Line, error) {
	if err := d.checkIndex(i); err != nil {
		return Line{}, err
	}
	if len(d.lines) == 1 {
		return Line{}, ErrEmpty
	}
	removed := *d.lines[i]
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	d.emit(Change{Kind: ChangeRemove, Line: i})
	return removed, nil
}

// MoveLine moves the line at from so that it ends up at index to.
func (d *Document) MoveLine(from, to int) error {
	if err := d.checkIndex(from); err != nil {
		return err
	}
	if err := d.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	l := d.lines[from]
	d.lines = append(d.lines[:from], d.lines[from+1:]...)
	d.lines = append(d.lines, nil)
	copy(d.lines[to+1:], d.lines[to:])
	d.lines[to] = l
	d.emit(Change{Kind: ChangeMove, Line: to, From: from})
	return nil
}

// SetText replaces the text of line i.
func (d *Document) SetText(i int, text string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if d.lines[i].Text == text {
		return nil
	}
	d.lines[i].Text = text
	d.emit(Change{Kind: ChangeText, Line: i})
	return nil
}

// InsertText inserts text at the rune offset of line i.
func (d *Document) InsertText(i, offset int, text string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	runes := []rune(d.lines[i].Text)
	if offset < 0 || offset > len(runes) {
		return fmt.Errorf("%w: offset %d out of range [0,%d]", ErrContract, offset, len(runes))
	}
	if text == "" {
		return nil
	}
	d.lines[i].Text = string(runes[:offset]) + text + string(runes[offset:])
	d.emit(Change{Kind: ChangeText, Line: i, Offset: offset, Delta: utf8.RuneCountInString(text)})
	return nil
}

// DeleteText removes n runes of line i starting at offset.
func (d *Document) DeleteText(i, offset, n int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	runes := []rune(d.lines[i].Text)
	if offset < 0 || n < 0 || offset+n > len(runes) {
		return fmt.Errorf("%w: delete [%d,%d) out of range [0,%d]", ErrContract, offset, offset+n, len(runes))
	}
	if n == 0 {
		return nil
	}
	d.lines[i].Text = string(runes[:offset]) + string(runes[offset+n:])
	d.emit(Change{Kind: ChangeText, Line: i, Offset: offset, Delta: -n})
	return nil
}

// SetIndentLevel writes the indent level of line i.
func (d *Document) SetIndentLevel(i, level int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if !d.features.Indent {
		return ErrNotIndentable
	}
	if level < 0 || level > d.maxLevel {
		return fmt.Errorf("%w: indent level %d outside [0,%d]", ErrContract, level, d.maxLevel)
	}
	if d.lines[i].IndentLevel == level {
		return nil
	}
	d.lines[i].IndentLevel = level
	d.emit(Change{Kind: ChangeData, Line: i})
	return nil
}

// SetBullet sets the bullet flag of line i. It is a no-op when bullets are disabled.
func (d *Document) SetBullet(i int, on bool) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if !d.features.Bullet || d.lines[i].Bullet == on {
		return nil
	}
	d.lines[i].Bullet = on
	d.emit(Change{Kind: ChangeData, Line: i})
	return nil
}

// SetCheckbox sets the checkbox state of line i. It is a no-op when checkboxes are disabled.
func (d *Document) SetCheckbox(i int, c Checkbox) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if !d.features.Checkbox || d.lines[i].Checkbox == c {
		return nil
	}
	d.lines[i].Checkbox = c
	d.emit(Change{Kind: ChangeData, Line: i})
	return nil
}

// SetTag sets the tag prefix of line i; "" clears it. It is a no-op when tags are disabled.
func (d *Document) SetTag(i int, tag string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return fmt.Errorf("%w: tag %q longer than %d", ErrContract, tag, MaxTagLength)
	}
	if !d.features.Tag || d.lines[i].Tag == tag {
		return nil
	}
	d.lines[i].Tag = tag
	d.emit(Change{Kind: ChangeData, Line: i})
	return nil
}

// Split breaks line i at the rune offset. The text after the offset moves to a
// new line at i+1 which keeps the indent level, the bullet and (unchecked) the
// checkbox of the original.
func (d *Document) Split(i, offset int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	orig := d.lines[i]
	runes := []rune(orig.Text)
	if offset < 0 || offset > len(runes) {
		return fmt.Errorf("%w: split offset %d out of range [0,%d]", ErrContract, offset, len(runes))
	}
	// Only structure carries over. The checked state and the tag stay behind.
	next := Line{
		Text:        string(runes[offset:]),
		IndentLevel: orig.IndentLevel,
		Bullet:      orig.Bullet,
	}
	if orig.Checkbox.Present() {
		next.Checkbox = CheckboxUnchecked
	}
	if err := d.SetText(i, string(runes[:offset])); err != nil {
		return err
	}
	return d.Insert(i+1, next)
}

// MergeWithPrevious appends the text of line i to line i-1 and removes line i.
// It returns the point where the two texts meet.
func (d *Document) MergeWithPrevious(i int) (Point, error) {
	if err := d.checkIndex(i); err != nil {
		return Point{}, err
	}
	if i == 0 {
		return Point{}, fmt.Errorf("%w: first line has no previous line", ErrContract)
	}
	prev := d.lines[i-1]
	join := Point{Line: i - 1, Offset: utf8.RuneCountInString(prev.Text)}
	text := d.lines[i].Text
	if _, err := d.Remove(i); err != nil {
		return Point{}, err
	}
	if err := d.InsertText(i-1, join.Offset, text); err != nil {
		return Point{}, err
	}
	return join, nil
}

// DeleteRange removes the text between start and end. Lines strictly inside
// the range are removed and the end line is merged into the start line.
func (d *Document) DeleteRange(start, end Point) error {
	if end.Before(start) {
		start, end = end, start
	}
	if err := d.checkIndex(start.Line); err != nil {
		return err
	}
	if err := d.checkIndex(end.Line); err != nil {
		return err
	}
	if start.Line == end.Line {
		return d.DeleteText(start.Line, start.Offset, end.Offset-start.Offset)
	}
	endRunes := []rune(d.lines[end.Line].Text)
	if end.Offset < 0 || end.Offset > len(endRunes) {
		return fmt.Errorf("%w: offset %d out of range [0,%d]", ErrContract, end.Offset, len(endRunes))
	}
	startRunes := []rune(d.lines[start.Line].Text)
	if start.Offset < 0 || start.Offset > len(startRunes) {
		return fmt.Errorf("%w: offset %d out of range [0,%d]", ErrContract, start.Offset, len(startRunes))
	}
	tail := string(endRunes[end.Offset:])
	for i := end.Line; i > start.Line; i-- {
		if _, err := d.Remove(i); err != nil {
			return err
		}
	}
	return d.SetText(start.Line, string(startRunes[:start.Offset])+tail)
}
