package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
)

// Playback speed limits.
const (
	minStepInterval = 25 * time.Millisecond
	maxStepInterval = 2 * time.Second
)

// ReplayModel plays a recording back turn by turn.
type ReplayModel struct {
	rec      replay.Recording
	level    levels.Level
	player   *replay.Player
	interval time.Duration
	playing  bool
	gen      int
	turn     int
	err      error

	keys       ReplayKeyMap
	help       help.Model
	width      int
	quitting   bool
	backToMenu bool
}

// NewReplayModel prepares playback of rec on lvl. Playback starts running.
func NewReplayModel(rec replay.Recording, lvl levels.Level, interval time.Duration) (ReplayModel, error) {
	if rec.LevelID != lvl.ID {
		return ReplayModel{}, fmt.Errorf("tui: recording is for level %q, got %q", rec.LevelID, lvl.ID)
	}
	m := ReplayModel{
		rec:      rec,
		level:    lvl,
		interval: interval,
		playing:  true,
		keys:     DefaultReplayKeyMap(),
		help:     help.New(),
	}
	if err := m.rewind(); err != nil {
		return ReplayModel{}, err
	}
	return m, nil
}

// rewind rebuilds the level and restarts playback from the first step.
func (m *ReplayModel) rewind() error {
	gs, err := m.level.Build(m.rec.Seed)
	if err != nil {
		return err
	}
	m.player = replay.NewPlayer(gs, m.rec.Steps)
	m.turn = 0
	m.err = nil
	return nil
}

// Init starts the playback tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.interval, m.gen)
}

// Update handles messages for the replay viewer.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || !m.playing {
			return m, nil
		}
		m.advance()
		if !m.playing {
			return m, nil
		}
		return m, tickCmd(m.interval, m.gen)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.player.Done() || m.err != nil {
			return m, nil
		}
		m.playing = !m.playing
		if m.playing {
			return m, m.restartTicks()
		}
		return m, nil

	case key.Matches(msg, m.keys.Step):
		m.playing = false
		m.advance()
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.interval = max(m.interval/2, minStepInterval)
		if m.playing {
			return m, m.restartTicks()
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		m.interval = min(m.interval*2, maxStepInterval)
		if m.playing {
			return m, m.restartTicks()
		}
		return m, nil

	case key.Matches(msg, m.keys.Rewind):
		if err := m.rewind(); err != nil {
			m.err = err
			m.playing = false
			return m, nil
		}
		m.playing = true
		return m, m.restartTicks()
	}

	return m, nil
}

// restartTicks abandons the running tick chain and starts a new one.
func (m *ReplayModel) restartTicks() tea.Cmd {
	m.gen++
	return tickCmd(m.interval, m.gen)
}

// advance applies the next turn and stops at the end or on divergence.
func (m *ReplayModel) advance() {
	if m.err != nil || m.player.Done() {
		m.playing = false
		return
	}
	if _, err := m.player.StepTurn(); err != nil {
		m.err = err
		m.playing = false
		return
	}
	m.turn++
	if m.player.Done() {
		m.playing = false
		if got := m.player.State().Snapshot(); got != m.rec.FinalHash {
			m.err = fmt.Errorf("%w: final hash %016x, recorded %016x", replay.ErrDiverged, got, m.rec.FinalHash)
		}
	}
}

// View renders the replay.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	indent := strings.Repeat(" ", boardOriginX)

	b.WriteString(indent)
	b.WriteString(titleStyle.Render(fmt.Sprintf("REPLAY · %s · %s", m.level.Title(), m.rec.ID)))
	b.WriteString("\n\n")

	gs := m.player.State()
	for _, line := range strings.Split(RenderBoard(gs), "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	state := "paused"
	if m.playing {
		state = "playing"
	}
	b.WriteString(indent)
	b.WriteString(hudStyle.Render(fmt.Sprintf(
		"Turn %d/%d   Step %d/%d   Treasure left: %d   %s @ %v",
		m.turn, m.rec.Turns, m.player.Pos(), m.player.Len(), gs.TreasureRemaining(), state, m.interval,
	)))
	b.WriteString("\n")

	b.WriteString(indent)
	switch {
	case errors.Is(m.err, replay.ErrDiverged):
		b.WriteString(loseStyle.Render("Recording diverged: " + m.err.Error()))
	case m.err != nil:
		b.WriteString(loseStyle.Render("Error: " + m.err.Error()))
	case m.player.Done():
		b.WriteString(winStyle.Render(fmt.Sprintf("End of recording (%s). Final state verified.", m.rec.Outcome())))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Player returns the underlying step player.
func (m ReplayModel) Player() *replay.Player {
	return m.player
}

// Err returns the playback error, if any.
func (m ReplayModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back.
func (m ReplayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunReplay plays a recording in the terminal.
func RunReplay(rec replay.Recording, lvl levels.Level, interval time.Duration) error {
	model, err := NewReplayModel(rec, lvl, interval)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
