package styles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

// Theme holds the semantic colors the riffle UI draws with.
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Background colors
	BgBase      color.Color
	BgSubtle    color.Color
	BgHighlight color.Color

	// Foreground colors
	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

// Styles are the prebuilt lipgloss styles for the current theme.
type Styles struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Component styles
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Badge       lipgloss.Style
	BadgeKeep   lipgloss.Style
	BadgeDrop   lipgloss.Style
}

// S returns the lazily-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	return &Styles{
		Base:     base,
		Title:    base.Bold(true).Foreground(t.Primary),
		Subtitle: base.Bold(true).Foreground(t.Secondary),
		Text:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Info:    lipgloss.NewStyle().Foreground(t.Info),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		CardFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),
		Badge:     badge.Foreground(t.FgBase).Background(t.BgHighlight),
		BadgeKeep: badge.Foreground(t.FgBase).Background(t.Success),
		BadgeDrop: badge.Foreground(t.FgBase).Background(t.Error),
	}
}

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager("riffle")
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	if defaultManager == nil {
		defaultManager = NewManager("riffle")
	}
	return defaultManager.Current()
}

func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewRiffleTheme())
	m.Register(NewPaperTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes["riffle"]
	}

	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	return names
}

// ParseHex converts a hex string to a color. Invalid input falls back
// to white so a bad theme never panics the UI.
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.White
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
