// Package dashboard is lfctl's interactive terminal view over the set
// of devices the host has attached, built on the same bubbletea/lipgloss
// stack strandctl's dashboard uses.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			PaddingRight(2)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingRight(2)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Bold(true).
				PaddingRight(2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

const refreshInterval = 2 * time.Second

// Row is one attached device's display state.
type Row struct {
	Index      int
	Name       string
	Transport  string
	Addr       string
	Identifier uint16
	Selected   bool
}

// Source supplies the dashboard's data; implemented by cmd/lfctl/cmd so
// this package stays free of lfctl's cobra/lf state.
type Source interface {
	Rows() []Row
}

type tickMsg time.Time

// Model is the top-level bubbletea model for `lfctl dashboard`.
type Model struct {
	source Source
	rows   []Row
}

// New builds a Model reading its rows from source.
func New(source Source) Model {
	return Model{source: source, rows: source.Rows()}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.rows = m.source.Rows()
			return m, nil
		}
	case tickMsg:
		m.rows = m.source.Rows()
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lfctl — attached devices"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("no devices attached"))
		b.WriteString("\n")
	} else {
		b.WriteString(headerCellStyle.Render(fmt.Sprintf("%-4s%-16s%-10s%-18s%-10s", "idx", "name", "transport", "addr", "ident")))
		b.WriteString("\n")
		for _, row := range m.rows {
			style := rowStyle
			if row.Selected {
				style = selectedRowStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%-4d%-16s%-10s%-18s%-10d", row.Index, row.Name, row.Transport, row.Addr, row.Identifier)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("r refresh · q quit"))
	return b.String()
}
