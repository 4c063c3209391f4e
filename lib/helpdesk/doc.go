// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package helpdesk is the typed REST client for the helpdesk backend.
// It is the single gateway every console component fetches through:
// each request carries the session's bearer token, and an authorization
// failure (missing token, 401, 403) fires the configured OnAuthRequired
// callback exactly once so the caller chain can tear down polling and
// cached state.
//
// The client also owns the raw-record-to-domain transformation: status
// normalization, display-code derivation, subject extraction, and chat
// thread ordering all happen here, so the rest of the console only ever
// sees ticket.Summary and ticket.Detail values.
package helpdesk
