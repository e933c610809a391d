package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/libroom/internal/source"
)

// renderHeader renders the status bar: data source, attendance, booked day
// count and host reachability.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{
		bg.render("libroom", styles.Logo),
		m.renderSourceBadge(styles, bg),
		bg.render("Attendance:", styles.MutedText) + bg.spaces(1) +
			bg.render(fmt.Sprintf("%d", m.snapshot.Settings.Attendance), styles.Text),
		bg.render("Booked:", styles.MutedText) + bg.spaces(1) +
			bg.render(fmt.Sprintf("%d", m.snapshot.Ledger.Len()), styles.Text),
	}
	if !compact {
		parts = append(parts, bg.render(m.now().Format("Mon Jan 2 15:04"), styles.MutedText))
	}
	parts = append(parts, m.renderHealth(compact, styles, bg))

	return styles.Header.Width(m.width).Render(bg.join(parts, "  "))
}

func (m Model) renderSourceBadge(styles Styles, bg bgStyle) string {
	switch v := m.snapshot.Settings.DataSource.(type) {
	case source.EmbeddedCommand:
		return bg.render("● embedded", styles.SuccessText)
	case source.RemoteCrawler:
		return bg.render("● crawler "+v.Addr(), styles.WarningText)
	default:
		return bg.render("● disabled", styles.DangerText)
	}
}

// renderHealth reports the last host ping. Only the embedded source talks to
// the host, so the other sources show nothing.
func (m Model) renderHealth(compact bool, styles Styles, bg bgStyle) string {
	if _, ok := m.snapshot.Settings.DataSource.(source.EmbeddedCommand); !ok {
		return ""
	}
	h := m.snapshot.Health
	switch {
	case h.LastChecked.IsZero():
		return bg.render("Connecting...", styles.WarningText)
	case h.IsOffline():
		msg := "HOST " + classifyConnectionError(h.LastError)
		if !compact && h.LastError != nil {
			msg += " " + truncate(h.LastError.Error(), 40)
		}
		return bg.render(msg, styles.DangerText)
	case h.LastError != nil:
		return bg.render("Retrying...", styles.WarningText)
	}
	return bg.render("host ok "+formatSince(m.now().Sub(h.LastChecked)), styles.FaintText)
}

// renderFooter renders the key hints for the current view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Surface)

	type hint struct{ key, desc string }
	var hints []hint
	switch m.currentView {
	case ViewLogs:
		hints = []hint{
			{"j/k", "Scroll"},
			{"l", "Days"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		hints = []hint{
			{"enter", "Book"},
			{"j/k", "Navigate"},
			{"t", "Today"},
			{"s", "Settings"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.render(":", styles.FaintText)
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments,
			bg.render(h.key, styles.AccentText)+colon+bg.render(h.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.render("T", styles.AccentText)+colon+bg.render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(bg.join(segments, "  "))
}

// classifyConnectionError returns a short description of a ping failure.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

func formatSince(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "(now)"
	case d < time.Hour:
		return fmt.Sprintf("(%dm ago)", int(d.Minutes()))
	default:
		return fmt.Sprintf("(%dh ago)", int(d.Hours()))
	}
}
