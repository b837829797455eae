package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/introspect/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	reg      *registry.Registry
	detail   string
	entries  []registry.Entry
	visible  []registry.Entry
	filter   textinput.Model
	selected int
	loaded   bool
	state    modelState
}

type modelState int

const (
	stateSelect modelState = iota
	stateFilter
	stateDetail
)

func newInteractiveModel(r *registry.Registry, filter string) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "name"
	ti.Width = 40
	ti.SetValue(filter)
	return &interactiveModel{
		reg:    r,
		filter: ti,
		state:  stateSelect,
	}
}

type loadedMsg struct {
	err     error
	entries []registry.Entry
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadEntries
}

func (m *interactiveModel) loadEntries() tea.Msg {
	entries := m.reg.Entries()
	if len(entries) == 0 {
		return loadedMsg{err: fmt.Errorf("no descriptors registered")}
	}
	return loadedMsg{entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateSelect {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateSelect:
				if len(m.visible) > 0 {
					m.detail = describe(m.visible[m.selected])
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateSelect
				m.detail = ""
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateSelect
				m.detail = ""
			}
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateSelect
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	m.visible = matching(m.entries, m.filter.Value())
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.loaded {
		return "Loading descriptors..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Introspect"))
	b.WriteString(fmt.Sprintf(" %d of %d descriptors\n\n", len(m.visible), len(m.entries)))

	switch m.state {
	case stateSelect, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, e := range m.visible {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatEntry(e)))
			} else {
				b.WriteString("  " + kindStyle.Render(fmt.Sprintf("%-8s", e.Kind.Keyword())) + nameStyle.Render(e.Name) + reflectedMark(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("type to filter • enter/esc done"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter describe • / filter • q quit"))
		}

	case stateDetail:
		b.WriteString(detailStyle.Render(strings.TrimRight(m.detail, "\n")))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func formatEntry(e registry.Entry) string {
	return fmt.Sprintf("%-8s%s", e.Kind.Keyword(), e.Name) + reflectedMark(e)
}

func reflectedMark(e registry.Entry) string {
	if e.Reflected {
		return " (reflect)"
	}
	return ""
}

func runInteractive(r *registry.Registry, filter string) error {
	p := tea.NewProgram(newInteractiveModel(r, filter), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
