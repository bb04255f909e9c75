// Package indent decides and applies indentation changes for outline lines.
package indent

import (
	"fmt"

	"tableflip.dev/outline/pkg/document"
)

// Action is an indentation change requested by a keystroke.
type Action int

const (
	// Indent nests the line one level deeper.
	Indent Action = iota
	// Unindent moves the line one level out.
	Unindent
	// Reset moves the line back to level 0.
	Reset
)

func (a Action) String() string {
	switch a {
	case Indent:
		return "indent"
	case Unindent:
		return "unindent"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Event is the per-keystroke decision: what to do and whether any line can do it.
type Event struct {
	Action     Action
	Actionable bool
}

// Engine applies indentation actions bounded by MaxLevel.
type Engine struct {
	MaxLevel int
}

// New returns an engine for the given maximum level.
func New(maxLevel int) *Engine {
	if maxLevel <= 0 {
		maxLevel = document.DefaultMaxIndentLevel
	}
	return &Engine{MaxLevel: maxLevel}
}

// CanIndent reports whether level is below the maximum.
func (e *Engine) CanIndent(level int) bool {
	return level < e.MaxLevel
}

// CanUnindent reports whether level is above zero.
func (e *Engine) CanUnindent(level int) bool {
	return level > 0
}

// Can reports whether action would change level.
func (e *Engine) Can(level int, action Action) bool {
	switch action {
	case Indent:
		return e.CanIndent(level)
	case Unindent, Reset:
		return e.CanUnindent(level)
	default:
		return false
	}
}

// Next returns the level after applying action. The result always stays in [0, MaxLevel].
func (e *Engine) Next(level int, action Action) int {
	switch action {
	case Indent:
		level++
	case Unindent:
		level--
	case Reset:
		level = 0
	}
	if level > e.MaxLevel {
		level = e.MaxLevel
	}
	if level < 0 {
		level = 0
	}
	return level
}

// Decide builds the Event for action over the given levels: it is actionable
// when at least one level can change.
func (e *Engine) Decide(action Action, levels ...int) Event {
	ev := Event{Action: action}
	for _, l := range levels {
		if e.Can(l, action) {
			ev.Actionable = true
			break
		}
	}
	return ev
}

// Apply writes the new level onto line and returns it. A nil line is a
// contract violation and fails with document.ErrNotIndentable.
func (e *Engine) Apply(line document.Indentable, action Action) (int, error) {
	if line == nil {
		return 0, document.ErrNotIndentable
	}
	next := e.Next(line.IndentLevel(), action)
	if next == line.IndentLevel() {
		return next, nil
	}
	if err := line.SetIndentLevel(next); err != nil {
		return line.IndentLevel(), fmt.Errorf("indent: %s: %w", action, err)
	}
	return next, nil
}
