package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/outline/pkg/checklist"
	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/glyph"
	"tableflip.dev/outline/pkg/render"
)

// PrettyPrint writes outlines for humans: indented, decorated, and wrapped
// to Width cells with continuation lines aligned under the text.
type PrettyPrint struct {
	Layout render.Layout
	// Width wraps long lines; 0 disables wrapping.
	Width int
	Out   io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Title prints the document name with its checklist summary.
func (pp *PrettyPrint) Title(title string, stats checklist.Stats) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %s\n", stats)
}

// Outline prints every line of doc.
func (pp *PrettyPrint) Outline(doc *document.Document) {
	lines := doc.Lines()
	if len(lines) == 1 && lines[0] == (document.Line{}) {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " empty\n\n")
		return
	}
	for _, l := range lines {
		_, _ = fmt.Fprintln(pp.out(), pp.Line(l))
	}
	pp.NewLine()
}

// Line formats one line, possibly spanning several terminal rows.
func (pp *PrettyPrint) Line(l document.Line) string {
	d := pp.Layout.Describe(l)
	bullet := color.New(color.Faint)
	box := color.New(color.FgHiCyan)
	tag := color.New(color.FgHiYellow)
	text := color.New()
	if d.Checked {
		text = color.New(color.Faint, color.CrossedOut)
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", d.PrefixStart))
	switch d.Decoration {
	case render.DecorationBullet:
		sb.WriteString(bullet.Sprint(d.PrefixCell(glyph.BulletSymbol)))
	case render.DecorationCheckbox:
		sb.WriteString(box.Sprint(d.PrefixCell(glyph.Checkbox(d.Checked))))
	default:
		sb.WriteString(d.PrefixCell(""))
	}

	body := d.Text
	if pp.Width > 0 && pp.Width > d.TextStart {
		body = wordwrap.String(d.Text, pp.Width-d.TextStart)
	}
	rows := strings.Split(body, "\n")
	if label := d.TagLabel(); label != "" {
		sb.WriteString(tag.Sprint(label))
	}
	sb.WriteString(text.Sprint(rows[0]))
	if len(rows) > 1 {
		rest := text.Sprint(strings.Join(rows[1:], "\n"))
		sb.WriteString("\n")
		sb.WriteString(indent.String(rest, uint(d.TextStart)))
	}
	return sb.String()
}
