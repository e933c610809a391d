// Package ui provides the terminal interface for libroom.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the view state and renders a
// scrollable list of days next to a detail pane for the selected day. All
// booking state lives in state.Store; the model keeps a Snapshot copy that is
// refreshed on every tick and after each mutation.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and commands, and Run
//   - days.go: day list, detail pane and status classification
//   - settings.go: the settings modal (attendance and data source)
//   - header.go: status bar and key hint footer
//   - logs.go: tail of the structured log file
//   - help.go: key binding overlay built from the key map
//   - theme.go, keys.go: colors and bindings
//
// # Booking Flow
//
//  1. enter on a day calls Store.Toggle, which books or un-books it; past
//     days are refused with a notice
//  2. a booking for today or later starts a lookup and returns its Future
//  3. waitResultCmd blocks on Future.Done off the update loop
//  4. the resulting resultMsg is dropped when the day has since been
//     un-booked or re-booked, otherwise the detail pane re-renders
//
// Un-booking never cancels a running lookup. Its result is discarded when it
// arrives.
//
// # Key Bindings
//
//   - j/k, g/G: move through days
//   - t: jump to today
//   - enter or space: book or un-book the selected day
//   - s: settings, l: log view, T: cycle theme
//   - h or ?: help
//   - e or ctrl+c: quit
package ui
