// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket defines the client-side helpdesk ticket model: list
// summaries, full details with chat threads, and the normalization
// rules that turn raw server records into stable display values.
//
// The console keeps two collections of these values — the full summary
// list and the currently open detail — and reconciles both against a
// polling server. The structural-equality helpers in this package
// (Summary.Equal, SummariesEqual, Detail.Same) are the compare-by-value
// guards that prevent a byte-identical poll result from triggering
// re-renders or scroll resets downstream.
package ticket
