package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/game"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Recorder persists finished sessions. *storage.Store satisfies it.
type Recorder interface {
	SaveSession(r storage.SessionRecord) (int64, error)
}

// Model is the Bubble Tea model for running a breakout scene.
type Model struct {
	scene      *game.Scene
	screen     *core.Screen
	recorder   Recorder
	config     core.RuntimeConfig
	inputFrame *core.InputFrame
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger

	showHelp      bool
	resizePending bool
	quitting      bool
}

// NewModel creates a model around the given scene. A nil recorder disables
// persistence; a nil logger discards.
func NewModel(scene *game.Scene, recorder Recorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	frame := core.NewInputFrame()
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = true

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   recorder,
		config:     cfg,
		inputFrame: &frame,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       h,
		logger:     logger,
	}
}

// Init starts the scene and the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize adopts the new terminal size. A session in play keeps its
// field; the resize applies once it is over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if m.inPlay() {
		m.resizePending = true
		return m, nil
	}
	m.scene.Reset(m.config)
	m.resizePending = false
	return m, nil
}

func (m Model) inPlay() bool {
	s := m.scene.Session()
	return s != nil && s.State() == breakout.StatePlaying
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.scene.Step(*m.inputFrame)
	m.inputFrame.Clear()

	if res, ok := m.scene.TakeResult(); ok {
		m.record(res)
	}

	if m.resizePending && !m.inPlay() {
		m.scene.Reset(m.config)
		m.resizePending = false
	}

	return m, tickCmd(m.config.TickRate)
}

// record saves a finished session. Storage is best-effort: a failure is
// logged and play continues.
func (m Model) record(res game.Result) {
	m.logger.Info("session finished",
		"session", res.SessionID.String()[:8],
		"outcome", res.Outcome,
		"score", res.Score,
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	if m.recorder == nil {
		return
	}
	_, err := m.recorder.SaveSession(RecordFromResult(res))
	if err != nil {
		m.logger.Warn("could not save session", "error", err)
	}
}

// RecordFromResult converts a scene result into a storage record.
func RecordFromResult(res game.Result) storage.SessionRecord {
	return storage.SessionRecord{
		SessionID:       res.SessionID,
		Outcome:         res.Outcome.String(),
		Score:           res.Score,
		BlocksDestroyed: res.BlocksDestroyed,
		BlocksTotal:     res.BlocksTotal,
		Duration:        res.Elapsed,
		Seed:            res.Seed,
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.breakout/screenshots.
func (m Model) saveScreenshot() (string, error) {
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return helpBoxStyle.Render(m.help.View(m.keys))
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(1, 2)

// Run starts the Bubble Tea program with the given scene.
func Run(scene *game.Scene, recorder Recorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(scene, recorder, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
