// Package tui is the interactive headline browser: a single scrollable list
// with open-in-browser and refetch.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Andrew77447/newsapp/internal/browser"
	"github.com/Andrew77447/newsapp/internal/cache"
	"github.com/Andrew77447/newsapp/internal/headlines"
	"github.com/Andrew77447/newsapp/internal/query"
)

const fetchTimeout = 30 * time.Second

type articlesMsg []cache.Article

type errMsg struct{ err error }

type model struct {
	svc     *headlines.Service
	filters query.Filters

	articles []cache.Article
	cursor   int
	offset   int
	height   int

	spinner spinner.Model
	loading bool
	errText string
	flash   string
}

func newModel(svc *headlines.Service, filters query.Filters) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return model{
		svc:     svc,
		filters: filters,
		spinner: sp,
		loading: true,
		height:  20,
	}
}

// Run fetches headlines for filters and drives the interactive list until
// the user quits.
func Run(svc *headlines.Service, filters query.Filters) error {
	p := tea.NewProgram(newModel(svc, filters), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(false))
}

func (m model) fetchCmd(fresh bool) tea.Cmd {
	svc, filters := m.svc, m.filters
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var (
			articles []cache.Article
			err      error
		)
		if fresh {
			articles, err = svc.FetchFresh(ctx, filters)
		} else {
			articles, err = svc.Fetch(ctx, filters)
		}
		if err != nil {
			return errMsg{err}
		}
		return articlesMsg(articles)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case articlesMsg:
		m.loading = false
		m.errText = ""
		m.articles = msg
		if m.cursor >= len(m.articles) {
			m.cursor = 0
			m.offset = 0
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.errText = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.articles)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.visibleRows() {
				m.offset = m.cursor - m.visibleRows() + 1
			}
		}
		return m, nil

	case "g", "home":
		m.cursor, m.offset = 0, 0
		return m, nil

	case "G", "end":
		if len(m.articles) > 0 {
			m.cursor = len(m.articles) - 1
			if m.cursor >= m.visibleRows() {
				m.offset = m.cursor - m.visibleRows() + 1
			}
		}
		return m, nil

	case "enter", "o":
		if m.cursor < len(m.articles) {
			link := m.articles[m.cursor].Link
			if link == "" {
				m.flash = "no link for this article"
				return m, nil
			}
			if err := browser.Open(link); err != nil {
				m.flash = fmt.Sprintf("open failed: %v", err)
			} else {
				m.flash = "opened in browser"
			}
		}
		return m, nil

	case "r":
		m.loading = true
		m.errText = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd(true))
	}
	return m, nil
}

// visibleRows is the list viewport size: total height minus header, status
// bar and padding.
func (m model) visibleRows() int {
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}
