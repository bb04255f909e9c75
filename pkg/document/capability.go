package document

// Indentable is a line that carries indentation state.
type Indentable interface {
	IndentLevel() int
	SetIndentLevel(level int) error
}

// PrefixCarrier is a line that carries prefix state.
type PrefixCarrier interface {
	HasBullet() bool
	SetBullet(on bool) error
	CheckboxState() Checkbox
	SetCheckbox(c Checkbox) error
	TagPrefix() string
	SetTagPrefix(tag string) error
}

// Indentable returns a view on line i for indentation. It fails with
// ErrNotIndentable when the document has indentation disabled.
func (d *Document) Indentable(i int) (Indentable, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	if !d.features.Indent {
		return nil, ErrNotIndentable
	}
	return lineRef{d: d, i: i}, nil
}

// PrefixCarrier returns a view on line i for prefix state. It fails with
// ErrNoPrefixes when no prefix kind is enabled.
func (d *Document) PrefixCarrier(i int) (PrefixCarrier, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	if !d.features.Bullet && !d.features.Checkbox && !d.features.Tag {
		return nil, ErrNoPrefixes
	}
	return lineRef{d: d, i: i}, nil
}

// lineRef addresses a line by index and writes through the document so every
// mutation is observed.
type lineRef struct {
	d *Document
	i int
}

func (r lineRef) IndentLevel() int               { return r.d.lines[r.i].IndentLevel }
func (r lineRef) SetIndentLevel(level int) error { return r.d.SetIndentLevel(r.i, level) }
func (r lineRef) HasBullet() bool                { return r.d.lines[r.i].Bullet }
func (r lineRef) SetBullet(on bool) error        { return r.d.SetBullet(r.i, on) }
func (r lineRef) CheckboxState() Checkbox        { return r.d.lines[r.i].Checkbox }
func (r lineRef) SetCheckbox(c Checkbox) error   { return r.d.SetCheckbox(r.i, c) }
func (r lineRef) TagPrefix() string              { return r.d.lines[r.i].Tag }
func (r lineRef) SetTagPrefix(tag string) error  { return r.d.SetTag(r.i, tag) }
