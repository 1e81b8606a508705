package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Board position inside the play view, used to map mouse clicks to cells.
const (
	boardOriginX = 2
	boardOriginY = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	infoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlayOptions configures a play session.
type PlayOptions struct {
	Levels     []levels.Level // Catalog, in play order
	StartLevel string         // Level ID; empty starts with the first level
	Seed       int64          // 0 = new time-based seed for every attempt
	Policy     string         // Overrides every entity's policy when set
	Record     bool           // Save a recording of every attempt
	Player     string         // Shown in logs
}

// Model is the Bubble Tea model for playing maze levels.
type Model struct {
	opts   PlayOptions
	store  *storage.Store
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	level levels.Level
	seed  int64
	gs    *core.GameState
	turns int
	best  int
	saved bool
	err   error

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewModel creates a play model positioned on the start level.
// store and logger may be nil.
func NewModel(store *storage.Store, logger *log.Logger, opts PlayOptions) (Model, error) {
	if len(opts.Levels) == 0 {
		return Model{}, errors.New("tui: no levels to play")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	lvl := opts.Levels[0]
	if opts.StartLevel != "" {
		found, ok := levels.Find(opts.Levels, opts.StartLevel)
		if !ok {
			return Model{}, fmt.Errorf("tui: unknown level %q", opts.StartLevel)
		}
		lvl = found
	}

	m := Model{
		opts:   opts,
		store:  store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if err := m.start(lvl); err != nil {
		return Model{}, err
	}
	return m, nil
}

// start builds a fresh game for lvl.
func (m *Model) start(lvl levels.Level) error {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	playable := lvl.WithPolicy(m.opts.Policy)
	gs, err := playable.Build(seed)
	if err != nil {
		return err
	}

	m.level = lvl
	m.seed = seed
	m.gs = gs
	m.turns = 0
	m.saved = false
	m.err = nil
	m.best = 0
	if m.store != nil {
		if best, err := m.store.BestTurns(lvl.ID); err != nil {
			m.logger.Warn("could not load best turns", "level", lvl.ID, "error", err)
		} else {
			m.best = best
		}
	}

	m.logger.Debug("level started", "level", lvl.ID, "seed", seed, "player", m.opts.Player)
	return nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abandon()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.abandon()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.abandon()
		m.restart(m.level)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.gs.LevelFinished() {
			if next, ok := levels.Next(m.opts.Levels, m.level.ID); ok {
				m.restart(next)
			}
		}
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.move(dir)
	}
	return m, nil
}

// handleMouse moves the avatar onto a clicked neighbouring cell.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row, col, ok := cellAt(msg.X, msg.Y, boardOriginX, boardOriginY)
	if !ok {
		return m, nil
	}
	if dir, ok := m.gs.DirectionTo(row, col); ok {
		m.move(dir)
	}
	return m, nil
}

// restart starts lvl again, keeping the error visible if the build fails.
func (m *Model) restart(lvl levels.Level) {
	if err := m.start(lvl); err != nil {
		m.logger.Error("cannot start level", "level", lvl.ID, "error", err)
		m.err = err
	}
}

// move plays one turn.
func (m *Model) move(dir core.Dir) {
	if m.err != nil || m.gs.Status().Terminal() {
		return
	}

	out, err := m.gs.AttemptMove(dir)
	if err != nil {
		// Precondition and invariant errors are engine bugs; stop the level.
		m.logger.Error("turn failed", "level", m.level.ID, "dir", dir, "error", err)
		m.err = err
		return
	}
	if !out.Moved {
		m.logger.Debug("move refused", "dir", dir)
		return
	}

	m.turns++
	m.logger.Debug("turn",
		"dir", dir,
		"treasure", out.TreasureCollected,
		"key", out.KeyCollected,
		"status", out.Status,
	)

	switch out.Status {
	case core.StatusFinished:
		m.logger.Info("level finished", "level", m.level.ID, "turns", m.turns, "player", m.opts.Player)
		m.finish()
	case core.StatusDead:
		m.logger.Info("avatar died", "level", m.level.ID, "turns", m.turns, "player", m.opts.Player)
		m.finish()
	}
}

// abandon saves an unfinished attempt that made progress.
func (m *Model) abandon() {
	if m.turns > 0 && !m.gs.Status().Terminal() {
		m.finish()
	}
}

// finish saves the result and the recording of the current attempt once.
func (m *Model) finish() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	rec := replay.Capture(m.level.ID, m.seed, m.gs)
	result := storage.Result{
		LevelID:  m.level.ID,
		Outcome:  rec.Outcome(),
		Turns:    m.turns,
		Treasure: rec.Treasure,
	}

	if m.opts.Record {
		if err := m.store.SaveRecording(rec); err != nil {
			m.logger.Warn("could not save recording", "level", m.level.ID, "error", err)
		} else {
			result.RecordingID = rec.ID
		}
	}

	if _, err := m.store.SaveResult(result); err != nil {
		m.logger.Warn("could not save result", "level", m.level.ID, "error", err)
		return
	}
	if rec.Finished && (m.best == 0 || m.turns < m.best) {
		m.best = m.turns
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("%s%s", strings.Repeat(" ", boardOriginX), titleStyle.Render("MAZE · "+m.level.Title()))
	b.WriteString(title)
	b.WriteString("\n\n")

	// Board is drawn at (boardOriginX, boardOriginY)
	indent := strings.Repeat(" ", boardOriginX)
	for _, line := range strings.Split(RenderBoard(m.gs), "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(indent)
	b.WriteString(hudStyle.Render(m.hud()))
	b.WriteString("\n")

	if m.gs.LastOutcome().OnInfoTile && m.level.Info != "" && !m.gs.Status().Terminal() {
		b.WriteString(infoBoxStyle.Render(m.level.Info))
		b.WriteString("\n")
	}

	if msg := m.statusLine(); msg != "" {
		b.WriteString(indent)
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// hud renders the counters line.
func (m Model) hud() string {
	parts := []string{
		fmt.Sprintf("Treasure left: %d/%d", m.gs.TreasureRemaining(), m.gs.TreasureInitial()),
		"Keys: " + RenderKeys(m.gs.Avatar().Keys),
		fmt.Sprintf("Turns: %d", m.turns),
	}
	if m.best > 0 {
		parts = append(parts, fmt.Sprintf("Best: %d", m.best))
	}
	return strings.Join(parts, "   ")
}

// statusLine describes how the attempt ended, if it did.
func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return loseStyle.Render("Error: " + m.err.Error())
	case m.gs.Status() == core.StatusDead:
		return loseStyle.Render("You were caught! Press r to restart.")
	case m.gs.Status() == core.StatusFinished:
		if _, ok := levels.Next(m.opts.Levels, m.level.ID); ok {
			return winStyle.Render(fmt.Sprintf("Level complete in %d turns! Press n for the next level.", m.turns))
		}
		return winStyle.Render(fmt.Sprintf("Level complete in %d turns! That was the last level.", m.turns))
	}
	return ""
}

// Level returns the level being played.
func (m Model) Level() levels.Level {
	return m.level
}

// State returns the running game.
func (m Model) State() *core.GameState {
	return m.gs
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for local play.
func Run(store *storage.Store, logger *log.Logger, opts PlayOptions) error {
	model, err := NewModel(store, logger, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click a neighbouring cell to move
	)

	_, err = p.Run()
	return err
}
