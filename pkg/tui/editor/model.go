// Package editor is the terminal outline editor: a Bubble Tea model that feeds
// key presses and clicks through the outline router, falls back to the
// default editing behaviour, and autosaves after every change.
package editor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/autosave"
	"tableflip.dev/outline/pkg/document"
	buffer "tableflip.dev/outline/pkg/editor"
	"tableflip.dev/outline/pkg/keys"
	"tableflip.dev/outline/pkg/markdown"
	"tableflip.dev/outline/pkg/normalize"
	"tableflip.dev/outline/pkg/render"
	"tableflip.dev/outline/pkg/router"
	"tableflip.dev/outline/pkg/serializer"
	"tableflip.dev/outline/pkg/store"
	"tableflip.dev/outline/pkg/tui/theme"
)

// footerHeight is the status line plus the help line.
const footerHeight = 2

var clipboardWrite = clipboard.WriteAll

// Options configure the editor model.
type Options struct {
	Context  context.Context
	Service  *app.Service
	Name     string
	Keymap   *keys.Keymap
	Layout   render.Layout
	Theme    theme.Theme
	Autosave autosave.Options
	Logger   *zap.Logger
}

// Model is the Bubble Tea model of the outline editor.
type Model struct {
	ctx  context.Context
	svc  *app.Service
	name string
	log  *zap.Logger

	buf    *buffer.Buffer
	router *router.Router
	pass   *normalize.Pass
	saver  *autosave.Saver
	keymap *keys.Keymap

	layout   render.Layout
	theme    theme.Theme
	help     help.Model
	bindings []key.Binding

	width, height int
	top           int

	// rev is the document revision last handed to the saver.
	rev    uint64
	status string
	err    error

	// quitArmed lets a second quit go through after a failed final save.
	quitArmed bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New loads the named document and builds the editor around it.
func New(opts Options) (*Model, error) {
	if opts.Service == nil {
		return nil, app.ErrNoStore
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keymap == nil {
		opts.Keymap = keys.DefaultKeymap()
	}
	if opts.Autosave.Logger == nil {
		opts.Autosave.Logger = opts.Logger
	}

	doc, err := opts.Service.Load(opts.Context, opts.Name)
	if err != nil {
		return nil, err
	}

	m := &Model{
		ctx:      opts.Context,
		svc:      opts.Service,
		name:     opts.Name,
		log:      opts.Logger,
		keymap:   opts.Keymap,
		layout:   opts.Layout,
		theme:    opts.Theme,
		help:     help.New(),
		bindings: helpBindings(opts.Keymap),
		saver:    autosave.New(opts.Service.SaveFunc(opts.Name), opts.Autosave),
	}
	m.buf = buffer.New(doc, opts.Keymap)
	m.pass = normalize.New(doc, opts.Logger).Attach()
	m.router = router.New(m.buf, router.Options{
		Keymap:   opts.Keymap,
		Geometry: opts.Layout.Geometry(),
		Logger:   opts.Logger,
	})
	m.rev = doc.Revision()
	return m, nil
}

// Run launches the Bubble Tea program and saves pending edits on exit.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()
	return errors.Join(runErr, m.Close())
}

// Close stops watching and writes anything still pending.
func (m *Model) Close() error {
	m.stopWatch()
	m.pass.Detach()
	m.buf.Close()
	return m.saver.Stop()
}

// Document returns the edited document.
func (m *Model) Document() *document.Document { return m.buf.Document() }

// Buffer returns the editing buffer.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(startWatchCmd(m.ctx, m.svc), m.waitForSave())
}

type saveEventMsg struct {
	event autosave.Event
}

type flushedMsg struct {
	err error
}

type docLoadedMsg struct {
	doc *document.Document
	rev uint64
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.handleClick(mouse.X, mouse.Y)
		}
	case saveEventMsg:
		m.handleSaveEvent(msg.event)
		cmds = append(cmds, m.waitForSave())
	case flushedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("watch failed", zap.Error(msg.err))
			m.status = "not watching for changes"
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		if cmd := m.handleWatchEvent(msg.event); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case docLoadedMsg:
		m.handleReload(msg)
	}

	m.scheduleSave()
	m.scroll()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	events := translate(msg)
	if len(events) == 0 {
		return nil
	}
	first := events[0]
	switch {
	case m.keymap.Is(first, keys.Quit):
		return m.quit()
	case m.keymap.Is(first, keys.Save):
		m.scheduleSave()
		return m.flush()
	case m.keymap.Is(first, keys.Copy):
		m.copySelection()
		return nil
	}
	m.quitArmed = false
	for _, ev := range events {
		if err := m.route(ev); err != nil {
			m.log.Warn("key not applied", zap.Stringer("key", ev), zap.Error(err))
			m.err = err
		}
	}
	return nil
}

// route runs ev through the router and, unless the router handled it, the
// default editing behaviour.
func (m *Model) route(ev keys.Event) error {
	res, err := m.router.Route(ev)
	if err != nil {
		return err
	}
	m.log.Debug("routed", zap.Stringer("key", ev), zap.Stringer("action", res.Action), zap.Bool("changed", res.Changed))
	if res.Handled {
		return nil
	}
	_, err = m.buf.Apply(ev)
	return err
}

func (m *Model) handleClick(x, y int) {
	if y < 0 || y >= m.bodyHeight() {
		return
	}
	i := m.top + y
	doc := m.Document()
	if i >= doc.Len() {
		return
	}
	l, err := doc.Line(i)
	if err != nil {
		return
	}
	d := m.layout.Describe(l)
	if d.OnCheckbox(x) {
		cx, cy := render.CellCenter(x - d.PrefixStart)
		toggled, err := m.router.Click(i, cx, cy)
		if err != nil {
			m.err = err
		}
		if toggled {
			return
		}
	}
	m.buf.SetSelection(document.Caret(document.Point{Line: i, Offset: d.Offset(x)}))
}

// scheduleSave hands the document to the saver when it changed.
func (m *Model) scheduleSave() {
	doc := m.Document()
	if doc.Revision() == m.rev {
		return
	}
	m.rev = doc.Revision()
	data, err := serializer.Marshal(doc)
	if err != nil {
		m.err = err
		return
	}
	m.saver.Schedule(data)
}

func (m *Model) flush() tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		return flushedMsg{err: saver.Flush()}
	}
}

func (m *Model) quit() tea.Cmd {
	m.scheduleSave()
	if err := m.saver.Flush(); err != nil && !m.quitArmed {
		m.err = err
		m.quitArmed = true
		m.status = "save failed, quit again to discard"
		// Rearm so the next flush retries the same content.
		m.rev = 0
		return nil
	}
	if err := m.Close(); err != nil {
		m.log.Error("close editor", zap.Error(err))
	}
	return tea.Quit
}

func (m *Model) copySelection() {
	sel := m.buf.Selection()
	start, end := sel.Lines()
	var lines []string
	for i := start; i <= end; i++ {
		l, err := m.Document().Line(i)
		if err != nil {
			break
		}
		lines = append(lines, markdown.FormatLine(l, m.layout.IndentWidth))
	}
	if err := clipboardWrite(strings.Join(lines, "\n")); err != nil {
		m.err = err
		return
	}
	if len(lines) == 1 {
		m.status = "copied 1 line"
		return
	}
	m.status = "copied " + strconv.Itoa(len(lines)) + " lines"
}

func (m *Model) waitForSave() tea.Cmd {
	ch := m.saver.Events()
	return func() tea.Msg {
		return saveEventMsg{event: <-ch}
	}
}

func (m *Model) handleSaveEvent(ev autosave.Event) {
	// The notice itself is read from the saver when rendering.
	switch ev.Type {
	case autosave.EventSaved:
		m.err = nil
	case autosave.EventFailed:
		m.err = ev.Err
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads the document when its file changed outside the
// editor, unless there are edits still waiting to be saved.
func (m *Model) handleWatchEvent(ev store.Event) tea.Cmd {
	if ev.Type == store.EventFileChanged && ev.Name != m.name {
		return nil
	}
	if m.saver.Pending() {
		return nil
	}
	svc, ctx, name, rev := m.svc, m.ctx, m.name, m.Document().Revision()
	return func() tea.Msg {
		doc, err := svc.Load(ctx, name)
		return docLoadedMsg{doc: doc, rev: rev, err: err}
	}
}

func (m *Model) handleReload(msg docLoadedMsg) {
	if msg.err != nil {
		m.log.Warn("reload failed", zap.String("name", m.name), zap.Error(msg.err))
		m.err = msg.err
		return
	}
	current := m.Document()
	// Edits made while loading win over the file.
	if current.Revision() != msg.rev || m.saver.Pending() || current.Equal(msg.doc) {
		return
	}
	m.pass.Detach()
	m.buf.Reset(msg.doc)
	m.pass = normalize.New(msg.doc, m.log).Attach()
	m.rev = msg.doc.Revision()
	m.status = "reloaded"
	m.log.Info("reloaded after external change", zap.String("name", m.name))
}

func (m *Model) bodyHeight() int {
	if m.height <= footerHeight {
		return 1
	}
	return m.height - footerHeight
}

// scroll keeps the caret line on screen.
func (m *Model) scroll() {
	line := m.buf.Caret().Line
	h := m.bodyHeight()
	if line < m.top {
		m.top = line
	}
	if line >= m.top+h {
		m.top = line - h + 1
	}
	if last := m.Document().Len() - 1; m.top > last {
		m.top = last
	}
	if m.top < 0 {
		m.top = 0
	}
}
