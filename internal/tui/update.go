package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/report"
	"github.com/julianstephens/smokelog/internal/tui/components/entrylist"
)

const tabCount = int(constants.StateProfile) + 1

// Rows taken by tabs, chart, banner and help around the history list.
const historyChrome = 18

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks and resizes are handled in every state so the loops keep running
	// while a form is open.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.entries.SetSize(max(msg.Width-4, 20), max(msg.Height-historyChrome, 5))
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd
		}
		return m, nil

	case factTickMsg:
		m.factIndex = models.NextFact(m.factIndex)
		return m, factTick(m.cfg.FactInterval())

	case cooldownTickMsg:
		if m.gate.Ready(m.clock()) {
			return m, nil
		}
		return m, cooldownTick()
	}

	switch m.state {
	case constants.StateLogForm, constants.StateProfileForm:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case entrylist.DeleteEntryMsg:
		m.deleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateHistory && m.entries.Filtering() {
			return m.updateEntries(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m.openLogForm()
		case key.Matches(msg, m.keys.Profile):
			return m.openProfileForm()
		case key.Matches(msg, m.keys.Export):
			m.export()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.notify("Reloaded.")
			m.reload()
			return m, nil
		}

		if m.state == constants.StateHistory {
			return m.updateEntries(msg)
		}
	}

	return m, nil
}

func (m Model) updateEntries(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m Model) openLogForm() (tea.Model, tea.Cmd) {
	if now := m.clock(); !m.gate.Ready(now) {
		m.state = constants.StateLog
		m.status = fmt.Sprintf("Wait %ds before logging again.", m.gate.RemainingSeconds(now))
		m.statusErr = true
		return m, nil
	}
	m.logForm = newLogFormModel()
	m.form = newLogForm(m.logForm)
	m.state = constants.StateLogForm
	return m, m.form.Init()
}

func (m Model) openProfileForm() (tea.Model, tea.Cmd) {
	p := models.DraftProfile()
	if m.profile != nil {
		p = *m.profile
	}
	m.profileForm = profileFormFrom(p)
	m.form = newProfileForm(m.profileForm, m.clock())
	m.state = constants.StateProfileForm
	return m, m.form.Init()
}

// formReturnState is the tab a form goes back to when it closes.
func (m Model) formReturnState() constants.SessionState {
	if m.state == constants.StateProfileForm {
		return constants.StateProfile
	}
	return constants.StateLog
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var next tea.Cmd
		if m.state == constants.StateLogForm {
			next = m.saveLog()
		} else {
			m.saveProfile()
		}
		m.closeForm()
		return m, next
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.state = m.formReturnState()
	m.form = nil
}

// saveLog stores the form's entry stamped with the current instant and arms
// the cooldown. The returned command drives the countdown display.
func (m *Model) saveLog() tea.Cmd {
	now := m.clock()
	if !m.gate.Ready(now) {
		m.status = fmt.Sprintf("Wait %ds before logging again.", m.gate.RemainingSeconds(now))
		m.statusErr = true
		return nil
	}
	entry, err := m.logForm.Entry(now)
	if err != nil {
		m.fail("Invalid entry", err)
		return nil
	}
	if err := m.store.AddLog(entry); err != nil {
		m.fail("Failed to save entry", err)
		return nil
	}
	m.gate.Arm(now)
	m.notify(fmt.Sprintf("✓ Logged %s at %s", format.Plural(entry.Count, "cigarette"), format.Clock(now, m.loc)))
	m.reload()
	return cooldownTick()
}

func (m *Model) saveProfile() {
	p, err := m.profileForm.Profile(m.clock())
	if err != nil {
		m.fail("Invalid profile", err)
		return
	}
	if err := m.store.SaveProfile(p); err != nil {
		m.fail("Failed to save profile", err)
		return
	}
	m.notify("✓ Profile saved.")
	m.reload()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Confirm):
		if err := m.store.DeleteLog(m.deleteID); err != nil {
			m.fail("Failed to delete entry", err)
		} else {
			m.notify("✓ Entry deleted.")
			m.reload()
		}
	case key.Matches(km, m.keys.Cancel):
	default:
		return m, nil
	}
	m.deleteID = ""
	m.state = constants.StateHistory
	return m, nil
}

func (m *Model) export() {
	if len(m.logs) == 0 {
		m.notify("Nothing to export yet.")
		return
	}
	path := filepath.Join(m.exportDir, report.DefaultFileName(m.clock()))
	if err := report.WriteFile(path, m.logs, m.loc); err != nil {
		m.fail("Failed to export summary", err)
		return
	}
	m.notify(fmt.Sprintf("✓ Exported %d entries to %s", len(m.logs), path))
}
