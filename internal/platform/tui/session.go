package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// SessionConfig configures a menu-driven session.
type SessionConfig struct {
	Play           PlayOptions   // Levels, seed, policy override, recording
	ReplayInterval time.Duration // Delay between replayed turns
	Recordings     bool          // Open the recordings browser instead of the menu
	Width          int
	Height         int
}

// sessionScreen is the screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPlay
	screenRecordings
	screenReplay
)

// SessionModel manages the full session flow:
// menu -> play -> menu and menu -> recordings -> replay -> recordings.
// It is the top-level model for SSH sessions and the local menu.
type SessionModel struct {
	cfg    SessionConfig
	store  *storage.Store
	logger *log.Logger
	screen sessionScreen
	err    error

	menu       MenuModel
	play       Model
	recordings RecordingsModel
	replay     ReplayModel
	quitting   bool
}

// NewSessionModel creates a new session model starting at the level menu.
func NewSessionModel(store *storage.Store, logger *log.Logger, cfg SessionConfig) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{
		cfg:    cfg,
		store:  store,
		logger: logger,
		menu:   NewMenuModel(cfg.Play.Levels, store, logger, cfg.Width, cfg.Height),
	}
	m.menu.Focus(cfg.Play.StartLevel)
	if cfg.Recordings {
		m.recordings = NewRecordingsModel(store, logger, m.levelIDs(), cfg.Width, cfg.Height)
		m.screen = screenRecordings
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Width = wsm.Width
		m.cfg.Height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenRecordings:
		return m.updateRecordings(msg)
	case screenReplay:
		return m.updateReplay(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		opts := m.cfg.Play
		opts.StartLevel = selected.ID
		play, err := NewModel(m.store, m.logger, opts)
		if err != nil {
			m.logger.Error("cannot start level", "level", selected.ID, "error", err)
			m.err = err
			m.menu = m.newMenu()
			return m, nil
		}
		m.err = nil
		m.play = play
		m.screen = screenPlay
		return m, m.resize(m.play.Init())
	}

	if m.menu.WantsRecordings() {
		m.recordings = NewRecordingsModel(m.store, m.logger, m.levelIDs(), m.cfg.Width, m.cfg.Height)
		m.screen = screenRecordings
		return m, m.recordings.Init()
	}

	return m, cmd
}

// updatePlay handles updates when playing a level.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(Model); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateRecordings handles updates in the recordings browser.
func (m SessionModel) updateRecordings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.recordings.Update(msg)
	if recModel, ok := newModel.(RecordingsModel); ok {
		m.recordings = recModel
	}

	if m.recordings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.recordings.IsGoingBack() {
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	if rec := m.recordings.Selected(); rec != nil {
		m.recordings.ClearSelection()
		lvl, ok := levels.Find(m.cfg.Play.Levels, rec.LevelID)
		if !ok {
			m.logger.Warn("recording level not found", "id", rec.ID, "level", rec.LevelID)
			m.recordings.err = errUnknownLevel(rec.LevelID)
			return m, nil
		}
		viewer, err := NewReplayModel(*rec, lvl, m.cfg.ReplayInterval)
		if err != nil {
			m.recordings.err = err
			return m, nil
		}
		m.replay = viewer
		m.screen = screenReplay
		return m, m.resize(m.replay.Init())
	}

	return m, cmd
}

// updateReplay handles updates in the replay viewer.
func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if replayModel, ok := newModel.(ReplayModel); ok {
		m.replay = replayModel
	}

	if m.replay.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.replay.BackToMenu() {
		m.recordings.load()
		m.screen = screenRecordings
		return m, nil
	}
	return m, cmd
}

// resize forwards the known window size to a freshly opened screen.
func (m SessionModel) resize(cmd tea.Cmd) tea.Cmd {
	size := tea.WindowSizeMsg{Width: m.cfg.Width, Height: m.cfg.Height}
	return tea.Batch(cmd, func() tea.Msg { return size })
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.cfg.Play.Levels, m.store, m.logger, m.cfg.Width, m.cfg.Height)
}

func (m SessionModel) levelIDs() []string {
	ids := make([]string, len(m.cfg.Play.Levels))
	for i, l := range m.cfg.Play.Levels {
		ids[i] = l.ID
	}
	return ids
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenRecordings:
		return m.recordings.View()
	case screenReplay:
		return m.replay.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + loseStyle.Render("Error: "+m.err.Error())
	}
	return view
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, logger *log.Logger, cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, logger, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
