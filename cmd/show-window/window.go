package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/genryu22/learn-browser/client"
	httperrors "github.com/genryu22/learn-browser/errors"
	"github.com/genryu22/learn-browser/markup"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// title bar and help line
const chromeHeight = 2

type windowModel struct {
	client   *client.HttpClient
	url      string
	viewport viewport.Model
	ready    bool
	loading  bool
	text     string
	err      error
}

type fetchedMsg struct {
	text string
	err  error
}

func newWindowModel(c *client.HttpClient, rawURL string) *windowModel {
	return &windowModel{
		client:  c,
		url:     rawURL,
		loading: true,
	}
}

func (m *windowModel) Init() tea.Cmd {
	return m.fetch
}

func (m *windowModel) fetch() tea.Msg {
	resp, err := m.client.Get(m.url)
	if err != nil {
		return fetchedMsg{err: err}
	}
	return fetchedMsg{text: markup.Strip(resp.Body)}
}

func (m *windowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()

	case fetchedMsg:
		m.loading = false
		m.text = msg.text
		m.err = msg.err
		m.refresh()
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *windowModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m *windowModel) content() string {
	switch {
	case m.loading:
		return fmt.Sprintf("Loading %s...", m.url)
	case m.err != nil:
		return errorStyle.Width(m.viewport.Width).Render(errorText(m.err))
	default:
		return lipgloss.NewStyle().Width(m.viewport.Width).Render(m.text)
	}
}

func errorText(err error) string {
	if httperrors.KindOf(err).Type() == httperrors.ErrorUrl {
		return fmt.Sprintf("URL parsing failed: %v", err)
	}
	return fmt.Sprintf("Request failed: %v", err)
}

func (m *windowModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("learn-browser"))
	b.WriteString(" ")
	b.WriteString(m.url)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ scroll • q quit • %3.f%%", m.viewport.ScrollPercent()*100)))
	return b.String()
}
