// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import "fmt"

// AuthRequiredError means the session is missing or the server
// rejected its bearer token (401/403). Callers must not retry: the
// OnAuthRequired callback has already been invoked and the session is
// being torn down. This error is never shown as a ticket-list banner.
type AuthRequiredError struct {
	// StatusCode is the HTTP status that triggered the failure, or 0
	// when no request was made because no token was available.
	StatusCode int
}

func (err *AuthRequiredError) Error() string {
	if err.StatusCode == 0 {
		return "authentication required: no session token"
	}
	return fmt.Sprintf("authentication required: server returned %d", err.StatusCode)
}

// NotFoundError means the server returned 404 for a specific ticket.
// During background polling this usually means the ticket was removed
// out-of-band; the synchronizer reacts with a corrective list refresh.
type NotFoundError struct {
	TicketID int64
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("ticket %d not found", err.TicketID)
}

// StatusError is any other transport or server failure: a non-2xx
// response, or a 2xx response whose body-level success flag is false.
// Foreground operations surface it as a dismissible banner; background
// polls log it and retry on the next tick.
type StatusError struct {
	StatusCode int
	// Message is the body-level error string when the server provided
	// one, empty otherwise.
	Message string
}

func (err *StatusError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", err.StatusCode, err.Message)
	}
	return fmt.Sprintf("server error (status %d)", err.StatusCode)
}
