// Package app wires configuration, logging, the embedded command transport,
// the booking store and the UI into the libroom TUI.
//
// # Startup
//
//  1. Load ~/.config/libroom/config.toml (defaults when missing)
//  2. Open the JSON log file through the logging package
//  3. Build the embedded command transport (HTTP or exec) behind a rate
//     limiter
//  4. Create the availability.Querier and the state.Store seeded with the
//     configured attendance and data source
//  5. Start the host health poller
//  6. Run the TUI until the user quits or the context is cancelled
//
// Setup performs steps 1 through 4 on its own so the one-shot query command
// can reuse the same components without a terminal UI.
//
// # Health Polling
//
// The poller pings the host every interval (default 5 seconds). Each
// consecutive failure doubles the wait, capped at 30 seconds; one success
// resets it. Results land in the store and the header shows them. A failed
// ping never touches the booking ledger.
//
// # Errors
//
// Run returns config, logging and transport construction failures. Lookup and
// ping failures are recorded, logged, and shown in the UI instead.
package app
