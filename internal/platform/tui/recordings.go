package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/maze/replay"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// maxRecordings is the number of recordings loaded into the browser.
const maxRecordings = 100

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Play      key.Binding
	Delete    key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Delete, k.NextLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play, k.Delete},
		{k.NextLevel, k.PrevLevel, k.Back, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordingsModel lists saved recordings and lets the user pick one to replay.
type RecordingsModel struct {
	store    *storage.Store
	logger   *log.Logger
	filters  []string // Level IDs; "" means every level
	filter   int
	recs     []replay.Recording
	table    table.Model
	help     help.Model
	keys     RecordingsKeyMap
	err      error
	width    int
	height   int
	selected *replay.Recording

	quitting  bool
	goingBack bool
}

// NewRecordingsModel creates a recordings browser. levelIDs populates the
// level filter tabs.
func NewRecordingsModel(store *storage.Store, logger *log.Logger, levelIDs []string, width, height int) RecordingsModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false

	m := RecordingsModel{
		store:   store,
		logger:  logger,
		filters: append([]string{""}, levelIDs...),
		help:    h,
		keys:    DefaultRecordingsKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordingsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 26},
		{Title: "Level", Width: 12},
		{Title: "Outcome", Width: 10},
		{Title: "Turns", Width: 6},
		{Title: "Treasure", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// load reads recordings for the current filter.
func (m *RecordingsModel) load() {
	m.recs = nil
	m.err = nil
	if m.store != nil {
		recs, err := m.store.Recordings(m.filters[m.filter], maxRecordings)
		if err != nil {
			m.logger.Warn("could not load recordings", "error", err)
			m.err = err
		} else {
			m.recs = recs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current recordings.
func (m *RecordingsModel) updateTableRows() {
	rows := make([]table.Row, len(m.recs))
	for i, r := range m.recs {
		rows[i] = table.Row{
			r.ID,
			r.LevelID,
			r.Outcome(),
			fmt.Sprintf("%d", r.Turns),
			fmt.Sprintf("%d", r.Treasure),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the recordings model.
func (m RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the recordings browser.
func (m RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Play):
			if i := m.table.Cursor(); i >= 0 && i < len(m.recs) {
				rec := m.recs[i]
				m.selected = &rec
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if i := m.table.Cursor(); i >= 0 && i < len(m.recs) && m.store != nil {
				if err := m.store.DeleteRecording(m.recs[i].ID); err != nil {
					m.logger.Warn("could not delete recording", "id", m.recs[i].ID, "error", err)
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			m.filter = (m.filter + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.filter--
			if m.filter < 0 {
				m.filter = len(m.filters) - 1
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the recordings browser.
func (m RecordingsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	filter := "all levels"
	if f := m.filters[m.filter]; f != "" {
		filter = f
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(fmt.Sprintf("RECORDINGS - < %s >", filter), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(loseStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordingsModel) renderTableContent() string {
	if len(m.recs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No recordings yet.\nPlay a level with recording enabled!")
	}
	return m.table.View()
}

// Selected returns the recording chosen for replay, or nil.
func (m RecordingsModel) Selected() *replay.Recording {
	return m.selected
}

// ClearSelection forgets the chosen recording.
func (m *RecordingsModel) ClearSelection() {
	m.selected = nil
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordingsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordingsModel) IsQuitting() bool {
	return m.quitting
}

func errUnknownLevel(id string) error {
	return fmt.Errorf("tui: level %q is not in the catalog", id)
}
