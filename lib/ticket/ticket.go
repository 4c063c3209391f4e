// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is the agent-facing display status of a ticket. The server
// speaks lowercase wire values ("open", "pending", "closed"); the
// console displays the capitalized forms. The closed display form is
// "Close" — a quirk inherited from the inbox this console fronts, kept
// so saved filters and muscle memory keep working.
type Status string

const (
	// StatusOpen is an unresolved ticket awaiting agent action.
	StatusOpen Status = "Open"
	// StatusPending is a ticket waiting on the customer or a third
	// party. Legacy deployments of the backend only had open/closed;
	// pending tickets from such servers never appear.
	StatusPending Status = "Pending"
	// StatusClosed is a resolved ticket. Replying is disabled.
	StatusClosed Status = "Close"

	// StatusFilterAll is the sentinel filter value that matches every
	// status. It is not a valid ticket status.
	StatusFilterAll = "all"
)

// Wire status values accepted and emitted by the REST backend.
const (
	WireOpen    = "open"
	WirePending = "pending"
	WireClosed  = "closed"
)

// StatusFromWire maps a server status to its display form. Unknown
// values pass through unchanged so a newer server does not crash an
// older console; they render verbatim and match no status filter.
func StatusFromWire(wire string) Status {
	switch wire {
	case WireOpen:
		return StatusOpen
	case WirePending:
		return StatusPending
	case WireClosed:
		return StatusClosed
	default:
		return Status(wire)
	}
}

// WireValue returns the lowercase wire form of a display status.
func (status Status) WireValue() string {
	switch status {
	case StatusOpen:
		return WireOpen
	case StatusPending:
		return WirePending
	case StatusClosed:
		return WireClosed
	default:
		return string(status)
	}
}

// ComplaintLink references an escalation record in the separate
// complaint tracking system.
type ComplaintLink struct {
	ComplaintID string
	Category    string
}

// Summary identifies one support conversation in the list view.
// InternalID is the server-assigned join key for every client-side
// collection; DisplayCode is what agents see, search, and read aloud.
type Summary struct {
	InternalID      int64
	DisplayCode     string
	Subject         string
	ReporterName    string
	ReporterContact string
	Status          Status
	LocationCode    string
	LocationName    string
	CreatedAt       string
	UpdatedAt       string
	Complaint       *ComplaintLink
}

// MessageOrigin distinguishes customer turns from agent turns, which
// controls bubble alignment in the chat pane.
type MessageOrigin string

const (
	// OriginCustomer is a message sent by the person who opened the
	// ticket (left-aligned bubble).
	OriginCustomer MessageOrigin = "customer"
	// OriginAgent is a message sent by a helpdesk agent, including
	// optimistic local entries awaiting server confirmation
	// (right-aligned bubble).
	OriginAgent MessageOrigin = "agent"
)

// Message is one chat turn. Optimistic local entries carry a
// temporary ID until the server's persisted copy replaces them.
type Message struct {
	ID        string
	Sender    string
	Text      string
	Timestamp string
	Origin    MessageOrigin
}

// Detail is the full record of one ticket: the summary fields plus the
// ordered chat thread, the responsible agent, and the resolution note
// recorded when the ticket was (or is being) closed.
type Detail struct {
	Summary
	Messages       []Message
	AgentName      string
	ResolutionNote string
}

// DeriveDisplayCode builds the human-readable ticket code from the
// creation timestamp and internal id, for servers that do not assign
// one. The format is TICKET-YYYYMMDD-NNN and is stable for the
// ticket's lifetime because both inputs are immutable.
func DeriveDisplayCode(internalID int64, createdAt time.Time) string {
	return fmt.Sprintf("TICKET-%04d%02d%02d-%03d",
		createdAt.Year(), int(createdAt.Month()), createdAt.Day(), internalID)
}

// SubjectFromMessage extracts the list-view subject from the
// originating message: its first line, or a placeholder when the
// message is empty.
func SubjectFromMessage(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "(no subject)"
	}
	return line
}

// SortSummariesByUpdated orders summaries newest-first by UpdatedAt.
// Ties keep their relative order so repeated sorts of an unchanged
// list never reshuffle rows. Timestamps are ISO 8601, so the string
// comparison matches chronological order.
func SortSummariesByUpdated(summaries []Summary) {
	slices.SortStableFunc(summaries, func(a, b Summary) int {
		return strings.Compare(b.UpdatedAt, a.UpdatedAt)
	})
}

// SortMessagesByTimestamp orders a chat thread ascending by timestamp,
// the invariant every detail fetch must restore before the thread is
// rendered or diffed.
func SortMessagesByTimestamp(messages []Message) {
	slices.SortStableFunc(messages, func(a, b Message) int {
		return strings.Compare(a.Timestamp, b.Timestamp)
	})
}

// Equal reports whether two summaries are structurally identical,
// including their complaint links.
func (summary Summary) Equal(other Summary) bool {
	if summary.Complaint == nil != (other.Complaint == nil) {
		return false
	}
	if summary.Complaint != nil && *summary.Complaint != *other.Complaint {
		return false
	}
	left, right := summary, other
	left.Complaint, right.Complaint = nil, nil
	return left == right
}

// SummariesEqual reports whether two summary lists are structurally
// identical element-for-element. The collection store uses this to
// skip replacing its list (and waking subscribers) when a background
// refresh returns unchanged data.
func SummariesEqual(a, b []Summary) bool {
	return slices.EqualFunc(a, b, Summary.Equal)
}

// MessagesEqual reports whether two chat threads are identical.
func MessagesEqual(a, b []Message) bool {
	return slices.Equal(a, b)
}

// Same reports whether an incoming detail fetch carries nothing new:
// message thread, status, update timestamp, resolution note, complaint
// link, and location name all unchanged. The detail synchronizer drops
// fetches that are Same to avoid redundant re-renders and scroll
// resets.
func (detail *Detail) Same(incoming *Detail) bool {
	if detail == nil || incoming == nil {
		return detail == incoming
	}
	if !MessagesEqual(detail.Messages, incoming.Messages) {
		return false
	}
	if detail.Status != incoming.Status {
		return false
	}
	if detail.UpdatedAt != incoming.UpdatedAt {
		return false
	}
	if detail.ResolutionNote != incoming.ResolutionNote {
		return false
	}
	if detail.LocationName != incoming.LocationName {
		return false
	}
	if detail.Complaint == nil != (incoming.Complaint == nil) {
		return false
	}
	if detail.Complaint != nil && *detail.Complaint != *incoming.Complaint {
		return false
	}
	return true
}

// Clone returns a deep copy of the detail, used to snapshot state
// before an optimistic mutation so a failed commit can restore it.
func (detail *Detail) Clone() *Detail {
	if detail == nil {
		return nil
	}
	copied := *detail
	copied.Messages = slices.Clone(detail.Messages)
	if detail.Complaint != nil {
		link := *detail.Complaint
		copied.Complaint = &link
	}
	return &copied
}

// CloneSummaries returns a deep copy of a summary list for the same
// snapshot purpose.
func CloneSummaries(summaries []Summary) []Summary {
	copied := slices.Clone(summaries)
	for index := range copied {
		if copied[index].Complaint != nil {
			link := *copied[index].Complaint
			copied[index].Complaint = &link
		}
	}
	return copied
}
