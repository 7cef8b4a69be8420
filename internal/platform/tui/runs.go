package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/session"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// Runs browser layout constants
const (
	maxRuns      = 100 // Max runs to load
	shortIDWidth = 8
)

// RunStore is the part of storage the runs browser needs.
type RunStore interface {
	Runs(limit int) ([]storage.RunSummary, error)
	Run(id string) (session.Recording, error)
	DeleteRun(id string) error
}

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	store    RunStore
	game     config.Config
	runs     []storage.RunSummary
	checks   map[string]string // Run id -> replay verdict
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	status   string
	quitting bool
}

// NewRunsModel creates a runs browser. game is the configuration replays are
// verified with.
func NewRunsModel(store RunStore, game config.Config, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		game:   game,
		checks: make(map[string]string),
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: shortIDWidth},
		{Title: "Played", Width: 14},
		{Title: "Seed", Width: 20},
		{Title: "Frames", Width: 8},
		{Title: "Inputs", Width: 7},
		{Title: "End", Width: 6},
		{Title: "Replay", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the run list from the store.
func (m *RunsModel) loadRuns() {
	runs, err := m.store.Runs(maxRuns)
	if err != nil {
		m.runs = nil
		m.status = err.Error()
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		end := "quit"
		if r.GameOver {
			end = "crash"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d", r.Inputs),
			end,
			m.checks[r.ID],
		}
	}
	m.table.SetRows(rows)
}

func shortID(id string) string {
	if len(id) > shortIDWidth {
		return id[:shortIDWidth]
	}
	return id
}

// selected returns the highlighted run.
func (m RunsModel) selected() (storage.RunSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.RunSummary{}, false
	}
	return m.runs[i], true
}

// verify replays the highlighted run and records the verdict.
func (m *RunsModel) verify() {
	r, ok := m.selected()
	if !ok {
		return
	}

	rec, err := m.store.Run(r.ID)
	if err != nil {
		m.status = err.Error()
		return
	}

	_, err = session.Replay(m.game, rec)
	switch {
	case err == nil:
		m.checks[r.ID] = "ok"
		m.status = fmt.Sprintf("run %s replays identically", shortID(r.ID))
	case errors.Is(err, session.ErrReplayDiverged):
		m.checks[r.ID] = "diverged"
		m.status = err.Error()
	default:
		m.checks[r.ID] = "error"
		m.status = err.Error()
	}
	m.updateTableRows()
}

// remove deletes the highlighted run.
func (m *RunsModel) remove() {
	r, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.DeleteRun(r.ID); err != nil {
		m.status = err.Error()
		return
	}
	delete(m.checks, r.ID)
	m.status = fmt.Sprintf("deleted run %s", shortID(r.ID))
	m.loadRuns()
}

// Init initializes the runs browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verify()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.remove()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("RECORDED RUNS (%d)", len(m.runs))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No runs recorded yet.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunRunsBrowser runs the runs browser until the user quits.
func RunRunsBrowser(store RunStore, game config.Config, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, game, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
