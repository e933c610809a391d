package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/libroom/internal/settings"
	"github.com/five82/libroom/internal/source"
)

const (
	fieldAttendance = iota
	fieldDataSource
	fieldCount
)

// settingsForm is the in-memory draft edited by the settings modal.
type settingsForm struct {
	open  bool
	focus int
	draft settings.Settings
}

func (m *Model) openSettings() {
	current := settings.Default()
	if m.store != nil {
		current = m.store.Settings()
	}
	m.settings = settingsForm{open: true, draft: current}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &m.settings
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.settings = settingsForm{}
	case key.Matches(msg, m.keys.Save):
		if m.store != nil {
			m.store.SetSettings(form.draft)
			m.snapshot = m.store.Snapshot()
			m.logger.Info("settings changed",
				zap.Int("attendance", form.draft.Attendance),
				zap.String("data_source", source.Kind(form.draft.DataSource)),
			)
		}
		m.settings = settingsForm{}
	case key.Matches(msg, m.keys.Up):
		form.focus = (form.focus + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keys.Down), msg.String() == "tab":
		form.focus = (form.focus + 1) % fieldCount
	case key.Matches(msg, m.keys.DecreaseMore):
		form.adjust(-5, m.crawler)
	case key.Matches(msg, m.keys.IncreaseMore):
		form.adjust(5, m.crawler)
	case key.Matches(msg, m.keys.Decrease):
		form.adjust(-1, m.crawler)
	case key.Matches(msg, m.keys.Increase):
		form.adjust(1, m.crawler)
	}
	return m, nil
}

// adjust changes the focused field. Attendance moves by delta and is clamped;
// the data source cycles forward for positive deltas and backward otherwise.
func (f *settingsForm) adjust(delta int, crawler source.RemoteCrawler) {
	switch f.focus {
	case fieldAttendance:
		f.draft = f.draft.WithAttendance(f.draft.Attendance + delta)
	case fieldDataSource:
		next := settings.NextDataSource(f.draft.DataSource, crawler)
		if delta < 0 {
			// Two steps forward is one step back in a cycle of three.
			next = settings.NextDataSource(next, crawler)
		}
		f.draft = f.draft.WithDataSource(next)
	}
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	form := m.settings

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Attendance", fmt.Sprintf("%d  (%d–%d)", form.draft.Attendance, settings.MinAttendance, settings.MaxAttendance)},
		{"Data source", sourceLabel(form.draft.DataSource)},
	}
	for i, field := range fields {
		labelStyle := styles.MutedText
		valueStyle := styles.Text
		prefix := "  "
		if i == form.focus {
			labelStyle = styles.AccentText.Bold(true)
			valueStyle = styles.Selected
			prefix = "▸ "
		}
		b.WriteString(labelStyle.Render(padRight(prefix+field.label, 16)))
		b.WriteString(valueStyle.Render("‹ " + field.value + " ›"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("←/→ ±1   [/] ±5   enter save   esc cancel"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Changes apply to days booked from now on."))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(52).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func sourceLabel(ds source.DataSource) string {
	switch v := ds.(type) {
	case source.EmbeddedCommand:
		return "Embedded command"
	case source.RemoteCrawler:
		return "Crawling server " + v.Addr()
	default:
		return "Disabled"
	}
}
