package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/games/roadrush"
	"github.com/vovakirdan/roadrush/internal/session"
)

// Options configure a play Model.
type Options struct {
	Config   config.Config
	Runtime  core.RuntimeConfig // Initial screen size, tick rate and seed
	Audio    core.Audio
	Player   core.Image
	Road     core.Image
	Saver    session.RunSaver // Optional, can be nil
	Logger   *log.Logger
	ShotsDir string // Screenshot directory; empty disables screenshots
}

// Model is the Bubble Tea model for playing Road Rush.
type Model struct {
	manager  *session.Manager
	screen   *core.Screen
	surface  *CellSurface
	hold     *HoldTracker
	keys     KeyMap
	help     help.Model
	runtime  core.RuntimeConfig
	shotsDir string
	logger   *log.Logger
	paused   bool
	status   string // One-line message shown next to the help
	quitting bool
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// NewModel creates a play model. The first session starts in Init.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// The last terminal row is the help line.
	screen := core.NewScreen(rt.ScreenW, rt.ScreenH-1)
	surface := NewCellSurface(screen, opts.Config.Field.Width, opts.Config.Field.Height,
		screen.Width(), screen.Height())

	m := Model{
		screen:   screen,
		surface:  surface,
		hold:     NewHoldTracker(time.Duration(opts.Config.Input.ReleaseAfterMS) * time.Millisecond),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		runtime:  rt,
		shotsDir: opts.ShotsDir,
		logger:   logger,
	}
	m.help.Width = rt.ScreenW

	m.manager = session.NewManager(session.Options{
		Config: opts.Config,
		Deps: roadrush.Deps{
			Surface:     surface,
			Audio:       opts.Audio,
			PlayerImage: opts.Player,
			RoadImage:   opts.Road,
		},
		Saver:  opts.Saver,
		Logger: logger,
	})
	return m
}

// Init starts the first session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.manager.Start(m.runtime.Seed)
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey maps a key to an action and either handles it here or publishes
// it on the session's input bus.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	bus := m.manager.Bus()

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.manager.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionLeft, core.ActionRight:
		if m.paused {
			return m, nil
		}
		for _, ev := range m.hold.Press(action, now) {
			bus.Publish(ev)
		}

	case core.ActionPause:
		if m.gameOver() {
			return m, nil
		}
		m.paused = !m.paused
		if m.paused {
			for _, ev := range m.hold.Reset() {
				bus.Publish(ev)
			}
			m.status = "paused"
		} else {
			m.status = ""
		}

	case core.ActionRestart:
		if !m.gameOver() {
			return m, nil
		}
		m.hold.Reset()
		m.paused = false
		m.status = ""
		m.manager.Start(now.UnixNano())

	case core.ActionScreenshot:
		m.status = m.saveScreenshot(now)
	}

	return m, nil
}

// handleResize refits the playfield and redraws the current frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.screen.Clear()
	m.surface.Layout(m.screen.Width(), m.screen.Height())
	m.help.Width = msg.Width

	if s := m.manager.Active(); s != nil {
		s.Game.Render()
	}
	return m, nil
}

// handleTick runs one frame unless paused.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.paused {
		for _, ev := range m.hold.Expire(now) {
			m.manager.Bus().Publish(ev)
		}
		m.manager.Queue().Pump()
	}
	return m, tickCmd(m.runtime.TickRate)
}

func (m Model) gameOver() bool {
	s := m.manager.Active()
	return s != nil && s.Game.State().GameOver
}

// saveScreenshot writes the current screen to a text file and returns a
// status line describing the result.
func (m Model) saveScreenshot(now time.Time) string {
	if m.shotsDir == "" {
		return "screenshots disabled"
	}
	if err := os.MkdirAll(m.shotsDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", m.shotsDir, "error", err)
		return "screenshot failed"
	}

	path := filepath.Join(m.shotsDir, fmt.Sprintf("roadrush_%s.txt", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return "screenshot failed"
	}

	m.logger.Info("screenshot saved", "path", path)
	return "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	keys := m.keys
	keys.Restart.SetEnabled(m.gameOver())

	line := helpStyle.Render(m.help.View(keys))
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + line
}

// Manager returns the model's session manager.
func (m Model) Manager() *session.Manager {
	return m.manager
}

// Run starts the Bubble Tea program with a play model.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	model.Manager().Stop()
	return err
}
