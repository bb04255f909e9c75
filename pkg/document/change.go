package document

import "fmt"

// ChangeKind describes what a Change did to the document.
type ChangeKind int

const (
	// ChangeText means a line's text changed.
	ChangeText ChangeKind = iota
	// ChangeData means a line's attributes (indent, prefixes) changed.
	ChangeData
	// ChangeInsert means a line was inserted at Line.
	ChangeInsert
	// ChangeRemove means the line at Line was removed.
	ChangeRemove
	// ChangeMove means the line at From now sits at Line.
	ChangeMove
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeText:
		return "text"
	case ChangeData:
		return "data"
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeMove:
		return "move"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is delivered to subscribers after every document mutation.
type Change struct {
	Kind ChangeKind
	// Line is the affected line index after the mutation.
	Line int
	// From is the original index for ChangeMove.
	From int
	// Offset and Delta describe a ChangeText edit: Delta runes were inserted
	// (positive) or removed (negative) at rune Offset. Both are zero when the
	// whole text was replaced.
	Offset int
	Delta  int
}

// Observer receives document changes.
type Observer func(Change)

type subscription struct {
	id int
	fn Observer
}

// Subscribe registers fn for every subsequent change and returns a func that
// removes it again.
func (d *Document) Subscribe(fn Observer) func() {
	d.nextSubID++
	id := d.nextSubID
	d.observers = append(d.observers, subscription{id: id, fn: fn})
	return func() {
		for i, s := range d.observers {
			if s.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// emit bumps the revision and delivers c. Changes raised by an observer while
// another change is being delivered are queued and delivered afterwards, in order.
func (d *Document) emit(c Change) {
	d.revision++
	d.pending = append(d.pending, c)
	if d.dispatching {
		return
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()
	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		observers := make([]subscription, len(d.observers))
		copy(observers, d.observers)
		for _, s := range observers {
			s.fn(next)
		}
	}
}
