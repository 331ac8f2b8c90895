package tui

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.filters.Describe()))
	b.WriteString("\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "\n %s fetching headlines...\n", m.spinner.View())

	case m.errText != "":
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")

	case len(m.articles) == 0:
		b.WriteString("\nNo news articles found matching your criteria.\n")

	default:
		end := m.offset + m.visibleRows()
		if end > len(m.articles) {
			end = len(m.articles)
		}
		for i := m.offset; i < end; i++ {
			a := m.articles[i]
			line := fmt.Sprintf("%2d. %s", i+1, a.Title)
			meta := fmt.Sprintf("    %s · %s", a.SourceID, a.PubDateFormatted)
			if i == m.cursor {
				b.WriteString(itemSelectedStyle.Render(line))
			} else {
				b.WriteString(itemTitleStyle.Render(line))
			}
			b.WriteString("\n")
			b.WriteString(itemMetaStyle.Render(meta))
			b.WriteString("\n")
		}
	}

	status := "j/k move · enter open · r refetch · q quit"
	if m.flash != "" {
		status = m.flash
	}
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render(status))
	return b.String()
}
