package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/cooldown"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/tui/components/entrylist"
)

// Options configures a TUI session.
type Options struct {
	Store    storage.Provider
	Config   *config.Config
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
	// ExportDir receives summaries written with the export key.
	ExportDir string
}

type Model struct {
	store     storage.Provider
	cfg       *config.Config
	loc       *time.Location
	now       func() time.Time
	exportDir string

	state       constants.SessionState
	keys        KeyMap
	help        help.Model
	entries     entrylist.Model
	form        *huh.Form
	logForm     *LogFormModel
	profileForm *ProfileFormModel
	gate        *cooldown.Gate

	logs      []models.LogEntry
	profile   *models.Profile
	factIndex int
	deleteID  string

	status    string
	statusErr bool

	quitting bool
	width    int
	height   int
}

type (
	factTickMsg     struct{}
	cooldownTickMsg struct{}
)

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		store:     opts.Store,
		cfg:       cfg,
		loc:       loc,
		now:       now,
		exportDir: opts.ExportDir,
		state:     constants.StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		entries:   entrylist.New(nil, loc, 0, 0),
		gate:      cooldown.New(cfg.Cooldown()),
	}
	m.reload()
	if len(m.logs) > 0 {
		m.gate.Arm(m.logs[0].Timestamp)
	}
	return m
}

// clock is the current instant in the configured zone.
func (m Model) clock() time.Time {
	return m.now().In(m.loc)
}

// reload re-reads the ledger and profile. Every figure on screen is derived
// from this fresh snapshot.
func (m *Model) reload() {
	logs, err := m.store.GetAllLogs()
	if err != nil {
		m.fail("Failed to load entries", err)
		return
	}
	m.logs = logs
	m.entries.SetEntries(logs)

	p, err := m.store.GetProfile()
	switch {
	case err == nil:
		m.profile = &p
	case errors.Is(err, storage.ErrProfileNotSet):
		m.profile = nil
	default:
		m.fail("Failed to load profile", err)
	}
}

func (m *Model) fail(what string, err error) {
	logger.Error(what, "error", err)
	m.status = fmt.Sprintf("%s: %v", what, err)
	m.statusErr = true
}

func (m *Model) notify(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday, constants.StateLog:
		keys = append(keys, m.keys.Add)
	case constants.StateHistory:
		keys = append(keys, m.keys.Export)
	case constants.StateProfile:
		keys = append(keys, m.keys.Profile)
	case constants.StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state == constants.StateConfirmDelete {
		return [][]key.Binding{{m.keys.Confirm, m.keys.Cancel}}
	}
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	actions := []key.Binding{m.keys.Add, m.keys.Profile, m.keys.Export, m.keys.Refresh}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{factTick(m.cfg.FactInterval())}
	if !m.gate.Ready(m.clock()) {
		cmds = append(cmds, cooldownTick())
	}
	return tea.Batch(cmds...)
}

func factTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return factTickMsg{} })
}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return cooldownTickMsg{} })
}
