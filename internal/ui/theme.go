package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pkgscout/internal/suggest"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Surface     string
	SelectionBg string
	SelectionFg string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string

	// KindColors colors the source tag of each suggestion.
	KindColors map[suggest.Kind]string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Logo        lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	Selected    lipgloss.Style
	Badge       lipgloss.Style

	kindColors map[suggest.Kind]string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionFg)),
		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		kindColors: t.KindColors,
		muted:      t.Muted,
	}
}

// KindStyle returns the tag style for a suggestion source.
func (s Styles) KindStyle(kind suggest.Kind) lipgloss.Style {
	color := s.kindColors[kind]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "Nightfox",
		Surface:     "#192330", // bg1
		SelectionBg: "#2b3b51", // sel0
		SelectionFg: "#cdcecf", // fg1

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Warning: "#dbc074",

		KindColors: map[suggest.Kind]string{
			suggest.KindPackage: "#719cd6", // blue
			suggest.KindRecent:  "#9d79d6", // magenta
			suggest.KindPopular: "#81b29a", // green
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:        "Slate",
		Surface:     "#0f172a", // slate-900
		SelectionBg: "#0284c7", // sky-600
		SelectionFg: "#f8fafc", // slate-50

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Warning: "#f59e0b",

		KindColors: map[suggest.Kind]string{
			suggest.KindPackage: "#38bdf8", // sky-400
			suggest.KindRecent:  "#a78bfa", // violet-400
			suggest.KindPopular: "#22c55e", // green-500
		},
	}
}
