// Package normalize turns freshly typed shorthand prefixes into structured
// prefix state after every text change.
package normalize

import (
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/prefix"
)

// Phase is where the pass is in its cycle.
type Phase int

const (
	// Idle is between lines.
	Idle Phase = iota
	// Scanning is detecting a prefix on a line.
	Scanning
	// Transforming is consuming the literal and applying prefix state.
	Transforming
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Transforming:
		return "transforming"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Pass normalizes lines of one document.
type Pass struct {
	doc      *document.Document
	detector prefix.Detector
	state    prefix.State
	log      *zap.Logger

	phase       Phase
	unsubscribe func()
}

// New returns a pass for doc using the prefix kinds doc enables.
func New(doc *document.Document, log *zap.Logger) *Pass {
	if log == nil {
		log = zap.NewNop()
	}
	enabled := prefix.SetFromFeatures(doc.Features())
	return &Pass{
		doc:      doc,
		detector: prefix.Detector{Enabled: enabled},
		state:    prefix.State{Enabled: enabled},
		log:      log,
	}
}

// Attach subscribes the pass to text changes and line inserts. It returns p
// for chaining.
func (p *Pass) Attach() *Pass {
	if p.unsubscribe != nil {
		return p
	}
	p.unsubscribe = p.doc.Subscribe(func(c document.Change) {
		if c.Kind != document.ChangeText && c.Kind != document.ChangeInsert {
			return
		}
		// Text removed while consuming a prefix must not be scanned again
		// before the prefix state is applied.
		if p.phase != Idle {
			return
		}
		if _, err := p.Line(c.Line); err != nil {
			p.log.Error("normalize line", zap.Int("line", c.Line), zap.Error(err))
		}
	})
	return p
}

// Detach stops observing the document.
func (p *Pass) Detach() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// Line normalizes line i and reports whether it transformed anything. A
// detected prefix whose kind is already active on the line is left as text.
func (p *Pass) Line(i int) (bool, error) {
	if i < 0 || i >= p.doc.Len() {
		return false, nil
	}
	p.phase = Scanning
	defer func() { p.phase = Idle }()

	line, err := p.doc.Line(i)
	if err != nil {
		return false, err
	}
	m, ok := p.detector.Detect(line.Text)
	if !ok {
		return false, nil
	}
	carrier, err := p.doc.PrefixCarrier(i)
	if err != nil {
		return false, err
	}
	if p.state.Has(carrier, m.Kind) {
		return false, nil
	}

	p.phase = Transforming
	if err := p.doc.DeleteText(i, 0, m.Length); err != nil {
		return false, err
	}
	if m.Kind != prefix.Tag {
		if err := p.state.RemoveAll(carrier); err != nil {
			return false, err
		}
	}
	if err := p.state.Apply(carrier, m); err != nil {
		return false, err
	}
	p.log.Debug("normalized prefix", zap.Int("line", i), zap.Stringer("kind", m.Kind))
	return true, nil
}

// All normalizes every line until nothing changes, returning how many
// transformations ran.
func (p *Pass) All() (int, error) {
	count := 0
	for i := 0; i < p.doc.Len(); i++ {
		for {
			changed, err := p.Line(i)
			if err != nil {
				return count, err
			}
			if !changed {
				break
			}
			count++
		}
	}
	return count, nil
}
