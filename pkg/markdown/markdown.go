// Package markdown converts outlines to and from Markdown lists.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/normalize"
	"tableflip.dev/outline/pkg/prefix"
)

// DefaultIndentWidth is the number of spaces per indent level.
const DefaultIndentWidth = 2

const punctuation = `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`" + `{|}~`

// shorthand detects every prefix kind regardless of document features.
var shorthand = prefix.Detector{Enabled: prefix.SetFromFeatures(document.AllFeatures())}

// Export writes doc as a Markdown list. Checkboxes render as task items,
// bullets as "- ", tags as "[tag] " after the marker. Text that starts like
// a prefix gets a Markdown backslash escape, which Import removes again.
func Export(w io.Writer, doc *document.Document, indentWidth int) error {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	bw := bufio.NewWriter(w)
	for _, l := range doc.Lines() {
		if _, err := bw.WriteString(FormatLine(l, indentWidth)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String is Export into a string.
func String(doc *document.Document, indentWidth int) string {
	var sb strings.Builder
	_ = Export(&sb, doc, indentWidth)
	return sb.String()
}

// FormatLine renders one line without a trailing newline.
func FormatLine(l document.Line, indentWidth int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", l.IndentLevel*indentWidth))
	switch l.Checkbox {
	case document.CheckboxChecked:
		sb.WriteString("- [x] ")
	case document.CheckboxUnchecked:
		sb.WriteString("- [ ] ")
	default:
		if l.Bullet {
			sb.WriteString("- ")
		}
	}
	if l.Tag != "" {
		fmt.Fprintf(&sb, "[%s] ", l.Tag)
	}
	if needsEscape(l.Text) {
		sb.WriteByte('\\')
	}
	sb.WriteString(l.Text)
	return sb.String()
}

func needsEscape(text string) bool {
	if _, ok := shorthand.Detect(text); ok {
		return true
	}
	return escaped(text)
}

// escaped reports whether text starts with a backslash escaping punctuation.
func escaped(text string) bool {
	return len(text) > 1 && text[0] == '\\' && strings.IndexByte(punctuation, text[1]) >= 0
}

// Import reads a Markdown outline. Leading whitespace sets the indent level
// (a tab counts as one level), and list markers, task boxes and [tag]
// prefixes become line attributes the same way typing them would.
// Trailing blank lines are dropped.
func Import(r io.Reader, opts document.Options, indentWidth int, log *zap.Logger) (*document.Document, error) {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	var lines []document.Line
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, parseLine(strings.TrimRight(sc.Text(), " \t\r"), indentWidth))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("markdown: read: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1].Text == "" {
		lines = lines[:len(lines)-1]
	}

	doc := document.FromLines(opts, lines)
	pass := normalize.New(doc, log)
	if _, err := pass.All(); err != nil {
		return nil, fmt.Errorf("markdown: normalize: %w", err)
	}
	for i, l := range doc.Lines() {
		if !escaped(l.Text) {
			continue
		}
		if err := doc.SetText(i, l.Text[1:]); err != nil {
			return nil, fmt.Errorf("markdown: unescape: %w", err)
		}
	}
	return doc, nil
}

func parseLine(raw string, indentWidth int) document.Line {
	text := strings.TrimLeft(raw, " \t")
	lead := raw[:len(raw)-len(text)]
	tabs := strings.Count(lead, "\t")
	spaces := len(lead) - tabs
	return document.Line{
		Text:        text,
		IndentLevel: tabs + spaces/indentWidth,
	}
}
