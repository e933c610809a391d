package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/ledger"
	"github.com/five82/libroom/internal/library"
)

const dayListWidth = 40

// dayStatus classifies the ledger entry for date and returns its status key
// and row label.
func dayStatus(l ledger.Ledger, date time.Time) (status, label string) {
	future, ok := l.Entry(date)
	switch {
	case !ok:
		return statusNone, ""
	case future == nil:
		return statusNoData, "No data"
	case !future.Settled():
		return statusPending, "…"
	}
	rooms, err := future.Result()
	if err != nil {
		return statusError, "Error"
	}
	if len(rooms) == 1 {
		return statusBooked, "Booked (1 room)"
	}
	return statusBooked, fmt.Sprintf("Booked (%d rooms)", len(rooms))
}

func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 3)

	var body string
	if m.currentView == ViewLogs {
		body = m.renderLogs(bodyHeight)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderDayList(bodyHeight),
			m.renderDetailPane(bodyHeight),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// visibleRange returns the slice of day rows that fits in height lines while
// keeping the cursor on screen.
func visibleRange(total, cursor, height int) (start, end int) {
	if height <= 0 || total == 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start = cursor - height/2
	start = min(max(start, 0), total-height)
	return start, start + height
}

func (m Model) renderDayList(height int) string {
	styles := m.theme.Styles()
	inner := height - 2
	start, end := visibleRange(len(m.days), m.cursor, inner)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderDayRow(i, dayListWidth-2, styles))
	}
	content := strings.Join(rows, "\n")
	return styles.FocusPane.
		Width(dayListWidth - 2).
		Height(inner).
		Render(content)
}

func (m Model) renderDayRow(i, width int, styles Styles) string {
	date := m.days[i]
	offset := calendar.DayOffset(date, m.now())
	status, label := dayStatus(m.snapshot.Ledger, date)

	marker := "  "
	if offset == 0 {
		marker = "▸ "
	}
	text := fmt.Sprintf("%s%s %4s", marker, date.Format("Mon Jan 02"), formatOffset(offset))

	if i == m.cursor {
		line := padRight(text+"  "+label, width)
		return styles.Selected.Render(truncate(line, width))
	}

	textStyle := styles.Text
	if offset < 0 {
		textStyle = styles.FaintText
	}
	line := textStyle.Render(text)
	if status != statusNone {
		line += "  " + lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.StatusColor(status))).
			Render(label)
	}
	return line
}

func formatOffset(offset int) string {
	if offset == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", offset)
}

func (m *Model) resizeViewports() {
	detailWidth := max(m.width-dayListWidth-4, 10)
	bodyHeight := max(m.height-4, 3)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(detailWidth, bodyHeight)
	} else {
		m.detailViewport.Width = detailWidth
		m.detailViewport.Height = bodyHeight
	}
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(max(m.width-4, 10), bodyHeight)
	} else {
		m.logViewport.Width = max(m.width-4, 10)
		m.logViewport.Height = bodyHeight
	}
}

func (m *Model) updateDetailViewport() {
	if m.detailViewport.Width == 0 {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
}

func (m Model) renderDetailPane(height int) string {
	styles := m.theme.Styles()
	vp := m.detailViewport
	vp.Height = max(height-2, 1)
	return styles.Pane.
		Width(vp.Width).
		Height(height - 2).
		Render(vp.View())
}

// detailContent describes the selected day: whether it is booked, and the
// rooms and open slots once the lookup settles.
func (m Model) detailContent(width int) string {
	styles := m.theme.Styles()
	date := m.selectedDate()
	offset := calendar.DayOffset(date, m.now())

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(date.Format("Monday, January 2 2006")))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("(%s days from today)", formatOffset(offset))))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(styles.WarningText.Render(m.notice))
		b.WriteString("\n\n")
	}

	future, booked := m.snapshot.Ledger.Entry(date)
	switch {
	case !booked:
		b.WriteString(styles.MutedText.Render("Not booked. Press enter to look up rooms."))
		return b.String()
	case future == nil:
		b.WriteString(styles.MutedText.Render("No data: the selected data source cannot look up rooms."))
		return b.String()
	case !future.Settled():
		b.WriteString(styles.Text.Render("Looking up rooms…"))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("query " + future.ID()))
		return b.String()
	}

	rooms, err := future.Result()
	if err != nil {
		b.WriteString(styles.DangerText.Render("Lookup failed"))
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(err.Error()))
		return b.String()
	}
	if len(rooms) == 0 {
		b.WriteString(styles.MutedText.Render("No rooms returned for this day."))
		return b.String()
	}
	b.WriteString(renderRooms(rooms, width, styles))
	return b.String()
}

func renderRooms(rooms []library.RoomAvailability, width int, styles Styles) string {
	var b strings.Builder
	for i, ra := range rooms {
		if i > 0 {
			b.WriteString("\n")
		}
		title := ra.Room.Title
		if title == "" {
			title = "Untitled room"
		}
		b.WriteString(styles.Text.Bold(true).Render(truncate(title, width)))
		if ra.Room.Capacity > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("  seats %d", ra.Room.Capacity)))
		}
		b.WriteString("\n")
		slots := ra.Availability.String()
		if len(ra.Availability) == 0 {
			b.WriteString(styles.DangerText.Render(slots))
		} else {
			b.WriteString(styles.SuccessText.Width(width).Render(slots))
		}
		b.WriteString("\n")
	}
	return b.String()
}
