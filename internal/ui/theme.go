package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jax-editor/git-mode/internal/status"
)

// Theme holds all colours for the application.
type Theme struct {
	Bg            lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text      lipgloss.Color
	TextMuted lipgloss.Color

	Head      lipgloss.Color
	Upstream  lipgloss.Color
	Heading   lipgloss.Color
	File      lipgloss.Color
	Untracked lipgloss.Color

	Added      lipgloss.Color
	Removed    lipgloss.Color
	Context    lipgloss.Color
	HunkHeader lipgloss.Color

	CommitHash lipgloss.Color
	Stash      lipgloss.Color

	Selection lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:      lipgloss.Color("#cdd6f4"),
		TextMuted: lipgloss.Color("#9399b2"),

		Head:      lipgloss.Color("#89b4fa"),
		Upstream:  lipgloss.Color("#b4befe"),
		Heading:   lipgloss.Color("#f5c2e7"),
		File:      lipgloss.Color("#cdd6f4"),
		Untracked: lipgloss.Color("#9399b2"),

		Added:      lipgloss.Color("#a6e3a1"),
		Removed:    lipgloss.Color("#f38ba8"),
		Context:    lipgloss.Color("#6c7086"),
		HunkHeader: lipgloss.Color("#89dceb"),

		CommitHash: lipgloss.Color("#f9e2af"),
		Stash:      lipgloss.Color("#fab387"),

		Selection: lipgloss.Color("#313152"),
		Error:     lipgloss.Color("#f38ba8"),
		Info:      lipgloss.Color("#89b4fa"),
	}
}

// LightTheme returns a light variant.
func LightTheme() Theme {
	t := DarkTheme()
	t.Bg = lipgloss.Color("#eff1f5")
	t.Text = lipgloss.Color("#4c4f69")
	t.TextMuted = lipgloss.Color("#8c8fa1")
	t.Context = lipgloss.Color("#9ca0b0")
	t.Selection = lipgloss.Color("#dce0e8")
	t.File = t.Text
	return t
}

// Styles holds pre-computed lipgloss styles derived from a Theme, keyed by
// the face names the renderer attaches to buffer lines.
type Styles struct {
	Theme Theme

	Faces map[string]lipgloss.Style

	CursorLine lipgloss.Style
	Selected   lipgloss.Style
	StatusBar  lipgloss.Style
	ErrorBar   lipgloss.Style
	InfoBar    lipgloss.Style
	Transient  lipgloss.Style
	SwitchOn   lipgloss.Style
	SwitchOff  lipgloss.Style
	KeyHint    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	face := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		Theme: t,
		Faces: map[string]lipgloss.Style{
			status.FaceHead:        face(t.Head).Bold(true),
			status.FaceUpstream:    face(t.Upstream),
			status.FaceSectionHead: face(t.Heading).Bold(true),
			status.FaceFile:        face(t.File),
			status.FaceUntracked:   face(t.Untracked),
			status.FaceHunkHeader:  face(t.HunkHeader),
			status.FaceDiffAdded:   face(t.Added),
			status.FaceDiffRemoved: face(t.Removed),
			status.FaceDiffContext: face(t.Context),
			status.FaceCommit:      face(t.CommitHash),
			status.FaceStash:       face(t.Stash),
		},
		CursorLine: lipgloss.NewStyle().Background(t.Selection),
		Selected:   lipgloss.NewStyle().Background(t.Selection).Bold(true),
		StatusBar:  lipgloss.NewStyle().Foreground(t.TextMuted),
		ErrorBar:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		InfoBar:    lipgloss.NewStyle().Foreground(t.Info),
		Transient:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused).Padding(0, 1),
		SwitchOn:   lipgloss.NewStyle().Foreground(t.Added).Bold(true),
		SwitchOff:  lipgloss.NewStyle().Foreground(t.TextMuted),
		KeyHint:    lipgloss.NewStyle().Foreground(t.HunkHeader),
	}
}

// StylesFor resolves a theme name.
func StylesFor(name string) Styles {
	if name == "light" {
		return NewStyles(LightTheme())
	}
	return NewStyles(DarkTheme())
}

// Face returns the style for a face key, or the plain text style.
func (s Styles) Face(name string) lipgloss.Style {
	if st, ok := s.Faces[name]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Text)
}
