package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/outline/pkg/checklist"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/glyph"
	"tableflip.dev/outline/pkg/render"
)

const guideSymbol = "│"

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	doc := m.Document()
	sel := m.buf.Selection()
	height := m.bodyHeight()

	rows := make([]string, 0, height+footerHeight)
	for i := m.top; i < doc.Len() && len(rows) < height; i++ {
		l, err := doc.Line(i)
		if err != nil {
			break
		}
		rows = append(rows, m.clip(m.renderLine(i, l, sel)))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	rows = append(rows, m.clip(m.renderStatus()), m.clip(m.theme.Footer.Help.Render(m.help.ShortHelpView(m.bindings))))

	return strings.Join(rows, "\n"), m.cursor()
}

func (m *Model) clip(s string) string {
	if m.width <= 0 || lipgloss.Width(s) <= m.width {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width), "…")
}

func (m *Model) cursor() *tea.Cursor {
	caret := m.buf.Caret()
	row := caret.Line - m.top
	if row < 0 || row >= m.bodyHeight() {
		return nil
	}
	l, err := m.Document().Line(caret.Line)
	if err != nil {
		return nil
	}
	col := m.layout.Describe(l).Column(caret.Offset)
	if m.width > 0 && col >= m.width {
		col = m.width - 1
	}
	return tea.NewCursor(col, row)
}

func (m *Model) renderLine(i int, l document.Line, sel document.Selection) string {
	st := m.theme.Editor
	d := m.layout.Describe(l)

	var b strings.Builder
	for level := 0; level < l.IndentLevel; level++ {
		b.WriteString(st.Guide(level).Render(guideSymbol))
		b.WriteString(strings.Repeat(" ", m.layout.IndentWidth-1))
	}

	switch d.Decoration {
	case render.DecorationCheckbox:
		b.WriteString(st.Checkbox.Render(d.PrefixCell(glyph.Checkbox(d.Checked))))
	case render.DecorationBullet:
		b.WriteString(st.Bullet.Render(d.PrefixCell(glyph.BulletSymbol)))
	default:
		b.WriteString(d.PrefixCell(""))
	}

	if label := d.TagLabel(); label != "" {
		b.WriteString(st.Tag.Render(label))
	}

	text := st.Text
	if d.Checked {
		text = st.Checked
	}
	from, to, ok := selectedRange(i, l, sel)
	if !ok {
		b.WriteString(text.Render(l.Text))
		return b.String()
	}
	runes := []rune(l.Text)
	if from > 0 {
		b.WriteString(text.Render(string(runes[:from])))
	}
	selected := string(runes[from:to])
	if selected == "" && i < sel.End().Line {
		// An empty line inside the selection still shows as selected.
		selected = " "
	}
	b.WriteString(st.Selection.Render(selected))
	if to < len(runes) {
		b.WriteString(text.Render(string(runes[to:])))
	}
	return b.String()
}

// selectedRange returns the rune range of line i covered by a non-empty
// selection.
func selectedRange(i int, l document.Line, sel document.Selection) (from, to int, ok bool) {
	if sel.Collapsed() {
		return 0, 0, false
	}
	start, end := sel.Start(), sel.End()
	if i < start.Line || i > end.Line {
		return 0, 0, false
	}
	n := len([]rune(l.Text))
	from, to = 0, n
	if i == start.Line {
		from = min(start.Offset, n)
	}
	if i == end.Line {
		to = min(end.Offset, n)
	}
	if from > to {
		from = to
	}
	return from, to, true
}

func (m *Model) renderStatus() string {
	f := m.theme.Footer
	parts := []string{f.Name.Render(m.name), f.Status.Render(checklist.Compute(m.Document()).String())}
	switch {
	case m.err != nil:
		parts = append(parts, f.Error.Render(m.err.Error()))
	case m.saver.NoticeVisible() && !m.saver.Pending():
		parts = append(parts, f.Saved.Render("saved"))
	}
	if m.status != "" {
		parts = append(parts, f.Status.Render(m.status))
	}
	return strings.Join(parts, "  ")
}
