package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/smokelog/internal/chart"
	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/stats"
)

const (
	progressWidth = 24
	barWidth      = 30
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateLog:
		content = m.viewLog()
	case constants.StateHistory:
		content = m.viewHistory()
	case constants.StateProfile:
		content = m.viewProfile()
	case constants.StateLogForm, constants.StateProfileForm:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	titles := []string{"Today", "Log", "History", "Profile"}
	current := m.state
	switch current {
	case constants.StateLogForm:
		current = constants.StateLog
	case constants.StateProfileForm:
		current = constants.StateProfile
	case constants.StateConfirmDelete:
		current = constants.StateHistory
	}
	for i, title := range titles {
		if current == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("⚠ " + m.status)
	}
	return successStyle.Render(m.status)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func (m Model) viewToday() string {
	now := m.clock()
	s, err := stats.TodaySnapshotWithBaseline(m.logs, m.profile, now, m.cfg.DefaultBaseline)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Today · %s %s", stats.WeekdayLabel(now), format.DayKey(now, m.loc))),
		row("Smoked", format.Plural(s.Total, "cigarette")),
	}
	if s.HasProfile {
		lines = append(lines,
			row("Nicotine", format.Fixed1(s.NicotineMg)+" mg"),
			row("Tar", format.Fixed1(s.TarMg)+" mg"),
			row("Packs", format.Fixed1(s.PackEquivalent)),
		)
	}
	lines = append(lines,
		row("Baseline", format.Number(s.Baseline)+" / day"),
		labelStyle.Render("Progress")+barStyle.Render(chart.Progress(s.ProgressPercent, progressWidth))+fmt.Sprintf(" %.0f%%", s.ProgressPercent),
		row("Status", s.Status.String()),
		mutedStyle.Render(s.DeltaMessage()),
	)
	if !s.HasProfile {
		lines = append(lines, sectionStyle.Render(warningStyle.Render("No profile yet. Open the Profile tab and press 'p' to set one.")))
	}

	lines = append(lines, sectionStyle.Render(m.viewRecent()))
	if fact := m.fact(); fact != "" {
		lines = append(lines, sectionStyle.Render(mutedStyle.Render("💡 "+fact)))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) fact() string {
	if len(models.HealthFacts) == 0 {
		return ""
	}
	return models.HealthFacts[m.factIndex%len(models.HealthFacts)]
}

func (m Model) viewRecent() string {
	recent := stats.Recent(m.logs, m.cfg.RecentLimit)
	if len(recent) == 0 {
		return mutedStyle.Render("No entries yet.")
	}
	lines := []string{titleStyle.Render("Recent")}
	for _, e := range recent {
		lines = append(lines, fmt.Sprintf("%s %8s  %s",
			format.DayKey(e.Timestamp, m.loc), format.Clock(e.Timestamp, m.loc), format.Plural(e.Count, "cig")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewLog() string {
	now := m.clock()
	var ready string
	if m.gate.Ready(now) {
		ready = successStyle.Render("Ready. Press 'a' to log cigarettes.")
	} else {
		ready = warningStyle.Render(fmt.Sprintf("Wait %ds", m.gate.RemainingSeconds(now)))
	}

	total, err := stats.DailyAggregate(m.logs, now)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Log"),
		ready,
		row("Today so far", format.Plural(total, "cigarette")),
		sectionStyle.Render(m.viewRecent()),
	))
}

func (m Model) viewHistory() string {
	w, err := stats.TrailingWindow(m.logs, m.clock(), m.cfg.WindowDays)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("Last %d days", len(w.Days)))}
	for _, d := range w.Days {
		label := fmt.Sprintf("%s %s", d.Label, d.Date.Format("02/01"))
		bar := fmt.Sprintf("%-*s %d", barWidth, chart.Bar(d.Count, w.Peak, barWidth), d.Count)
		if d.IsToday {
			lines = append(lines, todayStyle.Render(label)+" "+barStyle.Render(bar)+todayStyle.Render("  ← today"))
			continue
		}
		lines = append(lines, label+" "+barStyle.Render(bar))
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("Total %d · avg %s/day · min %d · max %d",
		w.Total, format.Number(w.Average), w.Min, w.Max)))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(lines, "\n"),
		sectionStyle.Render(m.entries.View()),
	))
}

func (m Model) viewProfile() string {
	if m.profile == nil {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Profile"),
			mutedStyle.Render("No profile yet. Press 'p' to set one."),
		))
	}
	p := *m.profile
	brand := p.Brand
	if brand == "" {
		brand = "-"
	}
	now := m.clock()
	d := stats.DurationSinceStart(p, now)

	lines := []string{
		titleStyle.Render("Profile"),
		row("Started", p.StartLabel()),
		row("Smoking for", d.String()),
		row("Average", format.Number(p.AvgPerDay)+" / day"),
		row("Brand", brand),
		row("Per pack", fmt.Sprintf("%d", p.PerPack)),
		row("Nicotine", format.Fixed1(p.NicotineMg)+" mg"),
		row("Tar", format.Fixed1(p.TarMg)+" mg"),
	}

	totals, err := stats.Cumulative(p, now)
	switch {
	case err != nil:
		lines = append(lines, sectionStyle.Render(dangerStyle.Render(err.Error())))
	case !totals.Known:
		lines = append(lines, sectionStyle.Render(mutedStyle.Render("The start date is in the future, so lifetime totals are unknown.")))
	default:
		lines = append(lines,
			sectionStyle.Render(titleStyle.Render("Lifetime estimate")),
			row("Days", format.Indian(totals.TotalDays)),
			row("Cigarettes", format.Indian(float64(totals.TotalCigarettes))),
			row("Packs", format.Indian(float64(totals.PackEquivalents))),
			row("Nicotine", format.Fixed1(totals.NicotineGrams)+" g"),
			row("Tar", format.Fixed1(totals.TarGrams)+" g"),
		)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this entry?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
