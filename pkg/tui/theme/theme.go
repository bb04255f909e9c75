package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Editor EditorTheme
	Footer FooterTheme
}

// EditorTheme styles the outline itself.
type EditorTheme struct {
	Text      lipgloss.Style
	Checked   lipgloss.Style
	Bullet    lipgloss.Style
	Checkbox  lipgloss.Style
	Tag       lipgloss.Style
	Selection lipgloss.Style
	// Guides colour the indent guide of each level, deepest last.
	Guides []lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Name   lipgloss.Style
	Saved  lipgloss.Style
	Error  lipgloss.Style
}

// Guide returns the indent guide style for level.
func (e EditorTheme) Guide(level int) lipgloss.Style {
	if len(e.Guides) == 0 {
		return lipgloss.NewStyle()
	}
	if level >= len(e.Guides) {
		level = len(e.Guides) - 1
	}
	if level < 0 {
		level = 0
	}
	return e.Guides[level]
}

type palette struct {
	text, faint, accent, tag, saved, err string
	guideFrom, guideTo                   string
}

var (
	dark = palette{
		text: "252", faint: "241", accent: "212", tag: "214", saved: "78", err: "203",
		guideFrom: "#5f87af", guideTo: "#af5f87",
	}
	light = palette{
		text: "235", faint: "246", accent: "161", tag: "130", saved: "28", err: "160",
		guideFrom: "#005f87", guideTo: "#870057",
	}
)

// Default returns the built-in theme, picking the palette for the
// terminal's background.
func Default(levels int) Theme {
	if termenv.HasDarkBackground() {
		return build(dark, levels)
	}
	return build(light, levels)
}

// Dark returns the dark-background theme.
func Dark(levels int) Theme { return build(dark, levels) }

// build makes a theme from p with one indent guide colour per level.
func build(p palette, levels int) Theme {
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color(p.faint))
	return Theme{
		Editor: EditorTheme{
			Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
			Checked:   faint.Strikethrough(true),
			Bullet:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
			Checkbox:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
			Tag:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.tag)),
			Selection: lipgloss.NewStyle().Reverse(true),
			Guides:    guides(p.guideFrom, p.guideTo, levels),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: faint,
			Name:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
			Saved:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.saved)).Italic(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.err)),
		},
	}
}

// guides blends from one colour to the other across levels.
func guides(from, to string, levels int) []lipgloss.Style {
	if levels < 1 {
		levels = 1
	}
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	out := make([]lipgloss.Style, levels)
	for i := range out {
		if errA != nil || errB != nil {
			out[i] = lipgloss.NewStyle()
			continue
		}
		t := 0.0
		if levels > 1 {
			t = float64(i) / float64(levels-1)
		}
		out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(a.BlendLab(b, t).Clamped().Hex()))
	}
	return out
}
