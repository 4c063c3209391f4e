// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package console implements the helpdesk agent console: a bubbletea
// TUI over the REST gateway in lib/helpdesk.
//
// The interesting part is the synchronization engine that keeps the
// locally cached ticket list and the open chat thread consistent with
// a server that changes out-of-band, while supporting optimistic local
// mutations that reconcile or roll back against server responses:
//
//   - Store: the authoritative local ticket list plus its filtered,
//     paginated view (store.go).
//   - Synchronizer: the currently open ticket — fetch, poll,
//     optimistic status change and message send (syncer.go).
//   - ScrollController: per-ticket tail-or-preserve scroll decisions
//     for the chat pane (scroll.go).
//   - Tracker: new-ticket detection across list refreshes for the
//     audible alert (notify.go).
//
// All four are pure state machines mutated only from the bubbletea
// update loop; network calls run as commands that deliver result
// messages back to the loop. Model (model.go) owns the wiring.
package console
