package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// updateLogViewport refreshes the log view and keeps it pinned to the tail.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		return
	}
	m.logViewport.SetContent(m.logContent())
	m.logViewport.GotoBottom()
}

func (m Model) logContent() string {
	styles := m.theme.Styles()
	if m.logPath == "" {
		return styles.MutedText.Render("Logging to a file is disabled. Set [log] file in the config to enable this view.")
	}
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No log entries yet in " + m.logPath)
	}

	lines := make([]string, len(m.logLines))
	for i, line := range m.logLines {
		lines[i] = colorizeLogLine(line, styles)
	}
	return strings.Join(lines, "\n")
}

// colorizeLogLine tints a formatted entry by its level column.
func colorizeLogLine(line string, styles Styles) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return styles.Text.Render(line)
	}
	switch strings.ToUpper(fields[1]) {
	case "ERROR", "FATAL", "PANIC", "DPANIC":
		return styles.DangerText.Render(line)
	case "WARN":
		return styles.WarningText.Render(line)
	case "DEBUG":
		return styles.FaintText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

func (m Model) renderLogs(height int) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Logs")
	if m.logPath != "" {
		title += " " + styles.FaintText.Render(truncateMiddle(m.logPath, max(m.width-12, 10)))
	}
	vp := m.logViewport
	vp.Height = max(height-3, 1)
	body := lipgloss.JoinVertical(lipgloss.Left, title, vp.View())
	return styles.FocusPane.
		Width(max(m.width-2, 10)).
		Height(height - 2).
		Render(body)
}
