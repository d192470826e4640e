package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pkgscout/internal/saved"
	"github.com/five82/pkgscout/internal/suggest"
)

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	if m.result.Loading {
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(m.spinner.View()))
	}
	b.WriteString("\n\n")

	if len(m.result.Items) == 0 {
		b.WriteString(styles.FaintText.Render("  no suggestions"))
		b.WriteString("\n")
	}
	for i, item := range m.result.Items {
		b.WriteString(m.renderItem(styles, item, i == m.cursor))
		b.WriteString("\n")
	}

	if m.result.Err != nil {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("registry unavailable, showing local suggestions"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader(styles Styles) string {
	parts := []string{
		styles.Logo.Render("pkgscout"),
		styles.Badge.Render(fmt.Sprintf("fav %d", len(m.state.Favorites))),
		styles.Badge.Render(fmt.Sprintf("watch %d", len(m.state.Watchlist))),
	}
	if m.result.Phase != suggest.PhaseIdle {
		parts = append(parts, styles.FaintText.Render(m.result.Phase.String()))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderItem(styles Styles, item suggest.Item, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("› ")
	}

	marks := []rune("  ")
	if m.state.Contains(saved.Favorites, item.Value) {
		marks[0] = '★'
	}
	if m.state.Contains(saved.Watchlist, item.Value) {
		marks[1] = '◉'
	}

	name := item.Value
	if selected {
		name = styles.Selected.Render(name)
	} else {
		name = styles.Text.Render(name)
	}

	line := cursor +
		styles.WarningText.Render(string(marks)) + " " +
		styles.KindStyle(item.Kind).Render(fmt.Sprintf("%-7s", item.Kind)) + " " +
		name
	if item.Description != "" {
		line += "  " + styles.FaintText.Render(item.Description)
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
