// Package router is the single per-keystroke decision point of the editor.
// Every key event is classified into exactly one action; events the router
// does not claim fall through to the editing engine.
package router

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/indent"
	"tableflip.dev/outline/pkg/keys"
	"tableflip.dev/outline/pkg/prefix"
	"tableflip.dev/outline/pkg/reorder"
)

// Editor is the editing engine the router consults.
type Editor interface {
	Document() *document.Document
	Selection() document.Selection
}

// Action is what the router did with an event.
type Action int

const (
	// PassThrough leaves the event to the default editing behaviour.
	PassThrough Action = iota
	// Indent raised the indent level of the selected lines.
	Indent
	// Unindent lowered the indent level of the selected lines.
	Unindent
	// ResetIndent set the line back to level 0.
	ResetIndent
	// RemoveBullet dropped the bullet of the caret line.
	RemoveBullet
	// RemoveCheckbox dropped the checkbox of the caret line.
	RemoveCheckbox
	// MoveLines moved the selected lines up or down.
	MoveLines
	// ToggleCheckbox flipped a checkbox between open and ticked.
	ToggleCheckbox
	// ClearTag removed the tag of the selected lines.
	ClearTag
)

func (a Action) String() string {
	switch a {
	case PassThrough:
		return "pass-through"
	case Indent:
		return "indent"
	case Unindent:
		return "unindent"
	case ResetIndent:
		return "reset-indent"
	case RemoveBullet:
		return "remove-bullet"
	case RemoveCheckbox:
		return "remove-checkbox"
	case MoveLines:
		return "move-lines"
	case ToggleCheckbox:
		return "toggle-checkbox"
	case ClearTag:
		return "clear-tag"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Result reports the routing decision.
type Result struct {
	Action Action
	// Handled means the default editing behaviour must be suppressed.
	Handled bool
	// Changed means the document was mutated.
	Changed bool
}

// Options configure a Router.
type Options struct {
	Keymap *keys.Keymap
	// Geometry places the checkbox for click hit testing.
	Geometry prefix.Geometry
	Logger   *zap.Logger
}

// Router routes key and click events.
type Router struct {
	ed       Editor
	keymap   *keys.Keymap
	geometry prefix.Geometry
	log      *zap.Logger
}

// New returns a router over ed.
func New(ed Editor, opts Options) *Router {
	if opts.Keymap == nil {
		opts.Keymap = keys.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Router{ed: ed, keymap: opts.Keymap, geometry: opts.Geometry, log: opts.Logger}
}

// Keymap returns the keymap the router classifies chords with.
func (r *Router) Keymap() *keys.Keymap { return r.keymap }

const commandMods = keys.ModCtrl | keys.ModAlt | keys.ModMeta

// Route decides and applies the action for ev. Branches are tried in order
// and the first that matches wins: tab indentation, backward delete at the
// start of a line, line moves, checkbox and tag hotkeys. Everything else is
// passed through.
func (r *Router) Route(ev keys.Event) (Result, error) {
	doc := r.ed.Document()
	sel := r.ed.Selection()

	if ev.Key == keys.KeyTab && !ev.Mod.Any(commandMods) && doc.Features().Indent {
		action := indent.Indent
		if ev.Mod.Has(keys.ModShift) {
			action = indent.Unindent
		}
		return r.tab(doc, sel, action)
	}

	intent, bound := r.keymap.Lookup(ev)
	if !bound {
		return Result{Action: PassThrough}, nil
	}

	switch intent {
	case keys.DeleteBackward, keys.DeleteLineBackward, keys.DeleteWordBackward:
		if sel.Collapsed() && sel.Focus.Offset == 0 {
			return r.deleteAtLineStart(doc, sel.Focus.Line, intent == keys.DeleteLineBackward)
		}
	case keys.MoveLinesUp, keys.MoveLinesDown:
		offset := 1
		if intent == keys.MoveLinesUp {
			offset = -1
		}
		start, end := sel.Lines()
		moved, err := reorder.MoveLines(doc, start, end, offset)
		if err != nil {
			return Result{}, err
		}
		r.log.Debug("move lines", zap.Int("start", start), zap.Int("end", end), zap.Int("offset", offset), zap.Bool("moved", moved))
		return Result{Action: MoveLines, Handled: true, Changed: moved}, nil
	case keys.ToggleCheckbox:
		return r.eachSelected(doc, sel, ToggleCheckbox, func(st prefix.State, pc document.PrefixCarrier) (bool, error) {
			return st.ToggleCheckbox(pc)
		})
	case keys.ClearTag:
		return r.eachSelected(doc, sel, ClearTag, func(st prefix.State, pc document.PrefixCarrier) (bool, error) {
			if !st.Has(pc, prefix.Tag) {
				return false, nil
			}
			return true, st.Remove(pc, prefix.Tag)
		})
	}
	return Result{Action: PassThrough}, nil
}

// tab applies action to every selected line that can take it, each from its
// own level. The default Tab behaviour is always suppressed.
func (r *Router) tab(doc *document.Document, sel document.Selection, action indent.Action) (Result, error) {
	eng := indent.New(doc.MaxIndentLevel())
	start, end := sel.Lines()

	levels := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		l, err := doc.Line(i)
		if err != nil {
			return Result{}, err
		}
		levels = append(levels, l.IndentLevel)
	}

	res := Result{Action: Indent, Handled: true}
	if action == indent.Unindent {
		res.Action = Unindent
	}
	ev := eng.Decide(action, levels...)
	if !ev.Actionable {
		return res, nil
	}
	for i := start; i <= end; i++ {
		line, err := doc.Indentable(i)
		if err != nil {
			return Result{}, err
		}
		before := line.IndentLevel()
		after, err := eng.Apply(line, action)
		if err != nil {
			return Result{}, err
		}
		res.Changed = res.Changed || after != before
	}
	return res, nil
}

// deleteAtLineStart removes the bullet, else the checkbox, else one indent
// level (all of them when reset is set). A plain line at level 0 passes
// through so the engine merges it with the previous line.
func (r *Router) deleteAtLineStart(doc *document.Document, i int, reset bool) (Result, error) {
	st := prefix.State{Enabled: prefix.SetFromFeatures(doc.Features())}
	pc, err := doc.PrefixCarrier(i)
	switch {
	case errors.Is(err, document.ErrNoPrefixes):
	case err != nil:
		return Result{}, err
	case st.Has(pc, prefix.Bullet):
		return Result{Action: RemoveBullet, Handled: true, Changed: true}, st.Remove(pc, prefix.Bullet)
	case st.Has(pc, prefix.Checkbox):
		return Result{Action: RemoveCheckbox, Handled: true, Changed: true}, st.Remove(pc, prefix.Checkbox)
	}

	line, err := doc.Indentable(i)
	if errors.Is(err, document.ErrNotIndentable) {
		return Result{Action: PassThrough}, nil
	}
	if err != nil {
		return Result{}, err
	}
	eng := indent.New(doc.MaxIndentLevel())
	if !eng.CanUnindent(line.IndentLevel()) {
		return Result{Action: PassThrough}, nil
	}
	action, res := indent.Unindent, Result{Action: Unindent, Handled: true, Changed: true}
	if reset {
		action, res.Action = indent.Reset, ResetIndent
	}
	if _, err := eng.Apply(line, action); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (r *Router) eachSelected(doc *document.Document, sel document.Selection, action Action, fn func(prefix.State, document.PrefixCarrier) (bool, error)) (Result, error) {
	res := Result{Action: action, Handled: true}
	st := prefix.State{Enabled: prefix.SetFromFeatures(doc.Features())}
	start, end := sel.Lines()
	for i := start; i <= end; i++ {
		pc, err := doc.PrefixCarrier(i)
		if errors.Is(err, document.ErrNoPrefixes) {
			return res, nil
		}
		if err != nil {
			return Result{}, err
		}
		changed, err := fn(st, pc)
		if err != nil {
			return Result{}, err
		}
		res.Changed = res.Changed || changed
	}
	return res, nil
}

// Click toggles the checkbox of line i when (x, y), relative to the line's
// top-left corner, lands on it. It reports whether the click was consumed.
func (r *Router) Click(i int, x, y float64) (bool, error) {
	doc := r.ed.Document()
	if !doc.Features().Checkbox || i < 0 || i >= doc.Len() {
		return false, nil
	}
	pc, err := doc.PrefixCarrier(i)
	if err != nil {
		return false, err
	}
	if !pc.CheckboxState().Present() || !r.geometry.Hit(x, y) {
		return false, nil
	}
	st := prefix.State{Enabled: prefix.SetFromFeatures(doc.Features())}
	return st.ToggleCheckbox(pc)
}
