// Package overlay renders the live event list as a terminal debug overlay.
package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"audiod/pkg/types"
)

const (
	defaultRefresh = 100 * time.Millisecond
	distanceStep   = 5.0
)

// Source is the read-only view the overlay polls.
type Source interface {
	Query(search string, maxDistance float64) []types.EventInfo
	Status() types.StatusResponse
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	playingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	virtualStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	loadingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// Model is the bubbletea model of the overlay.
type Model struct {
	src      Source
	refresh  time.Duration
	search   string
	distance float64

	status types.StatusResponse
	events []types.EventInfo
}

// NewModel returns an overlay model with an initial trigger filter and
// distance limit (0 = unlimited).
func NewModel(src Source, search string, distance float64) Model {
	m := Model{src: src, refresh: defaultRefresh, search: search, distance: max(distance, 0)}
	m.poll()
	return m
}

func (m *Model) poll() {
	m.status = m.src.Status()
	m.events = m.src.Query(m.search, m.distance)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.distance += distanceStep
		case "-":
			m.distance = max(m.distance-distanceStep, 0)
		case "c":
			m.search, m.distance = "", 0
		default:
			return m, nil
		}
		m.poll()
		return m, nil
	case tickMsg:
		m.poll()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Audio Events [%d]", m.status.Constructed)))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render(m.filterLine()))
	b.WriteString("\n")
	for _, ev := range m.events {
		b.WriteString(styleFor(ev.State).Render(eventLine(ev)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit  +/- distance  c clear filter"))
	return b.String()
}

func (m Model) filterLine() string {
	search := m.search
	if search == "" || search == "0" {
		search = "*"
	}
	dist := "any"
	if m.distance > 0 {
		dist = fmt.Sprintf("< %.0f", m.distance)
	}
	return fmt.Sprintf("backend=%s filter=%s distance %s", orNone(m.status.Backend), search, dist)
}

func eventLine(ev types.EventInfo) string {
	obj := ev.Object
	if obj == "" {
		obj = "<global>"
	}
	return ev.Trigger + " on " + obj
}

func styleFor(state string) lipgloss.Style {
	switch state {
	case "playing":
		return playingStyle
	case "virtual":
		return virtualStyle
	case "loading":
		return loadingStyle
	default:
		return inactiveStyle
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// Run shows the overlay until the user quits.
func Run(src Source, search string, distance float64) error {
	_, err := tea.NewProgram(NewModel(src, search, distance), tea.WithAltScreen()).Run()
	return err
}
