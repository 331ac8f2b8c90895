// Package render prints article sets to the terminal: a styled table when a
// TTY is attached, a plain listing otherwise.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/Andrew77447/newsapp/internal/cache"
)

const noResults = "No news articles found matching your criteria."

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorSource  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorSource).
			Padding(0, 1)

	dateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Underline(true)

	linksHeading = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Articles writes the article set to w, as a styled table when styled is
// true, otherwise as a plain listing.
func Articles(w io.Writer, articles []cache.Article, description string, styled bool) {
	if len(articles) == 0 {
		fmt.Fprintln(w, noResults)
		return
	}
	if styled {
		fmt.Fprintln(w, Table(articles, description))
		return
	}
	fmt.Fprint(w, Plain(articles, description))
}

// Table renders an indexed table (#, title, source, date) followed by a
// numbered link list.
func Table(articles []cache.Article, description string) string {
	rows := make([][]string, 0, len(articles))
	for i, a := range articles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orUnknown(a.Title, "No title"),
			orUnknown(a.SourceID, "Unknown source"),
			orUnknown(a.PubDateFormatted, "Unknown date"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("#", "Title", "Source", "Published").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			case col == 2:
				return sourceStyle
			case col == 3:
				return dateStyle
			default:
				return cellStyle
			}
		})

	var b strings.Builder
	b.WriteString(titleStyle.Render(description))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(linksHeading.Render("URLs:"))
	b.WriteString("\n")
	for i, a := range articles {
		if a.Link == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, linkStyle.Render(a.Link)))
	}
	return b.String()
}

// Plain renders a pipe-free listing for non-interactive output.
func Plain(articles []cache.Article, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", description)
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, orUnknown(a.Title, "No title"))
		fmt.Fprintf(&b, "   source: %s", orUnknown(a.SourceID, "unknown"))
		if a.PubDateFormatted != "" {
			fmt.Fprintf(&b, "  published: %s", a.PubDateFormatted)
		}
		b.WriteString("\n")
		if a.Link != "" {
			fmt.Fprintf(&b, "   %s\n", a.Link)
		}
	}
	return b.String()
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
