package entrylist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

type DeleteEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.LogEntry
	Loc   *time.Location
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s · %s",
		format.DayKey(i.Entry.Timestamp, i.Loc),
		format.Clock(i.Entry.Timestamp, i.Loc),
		format.Plural(i.Entry.Count, "cigarette"))
}

func (i Item) Description() string {
	parts := []string{}
	if i.Entry.Location != "" {
		parts = append(parts, i.Entry.Location)
	}
	if len(i.Entry.Triggers) > 0 {
		parts = append(parts, strings.Join(i.Entry.Triggers, ", "))
	}
	if m, ok := models.MoodByValue(i.Entry.MoodBefore); ok {
		parts = append(parts, m.Emoji+" "+m.Label)
	}
	if i.Entry.Notes != "" {
		parts = append(parts, i.Entry.Notes)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

// FilterValue feeds the list's fuzzy filter with the searchable fields.
func (i Item) FilterValue() string {
	return strings.Join(append([]string{i.Entry.Location, i.Entry.Notes}, i.Entry.Triggers...), " ")
}

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	loc  *time.Location
}

func New(entries []models.LogEntry, loc *time.Location, width, height int) Model {
	l := list.New(items(entries, loc), list.NewDefaultDelegate(), width, height)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}

	return Model{list: l, keys: keys, loc: loc}
}

func items(entries []models.LogEntry, loc *time.Location) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e, Loc: loc}
	}
	return out
}

func (m *Model) SetEntries(entries []models.LogEntry) {
	m.list.SetItems(items(entries, m.loc))
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Delete) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No entries yet.\n  Press 'a' to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
