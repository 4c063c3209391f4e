// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bureau-foundation/helpdesk/lib/clock"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// Validation failures raised before any network call is made.
var (
	// ErrNoSelection means no ticket is open.
	ErrNoSelection = errors.New("no ticket selected")
	// ErrTicketClosed means the open ticket does not accept replies.
	ErrTicketClosed = errors.New("ticket is closed")
	// ErrEmptyMessage means the reply text is empty or whitespace.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrResolutionNoteRequired means a close was attempted without a
	// resolution note.
	ErrResolutionNoteRequired = errors.New("resolution note is required to close a ticket")
	// ErrMutationInFlight means a status change or send is already
	// awaiting its server response.
	ErrMutationInFlight = errors.New("another change is still being saved")
)

// SyncState is the synchronizer's position in its per-selection
// lifecycle.
type SyncState int

const (
	// SyncIdle: no ticket selected.
	SyncIdle SyncState = iota
	// SyncLoading: foreground fetch of a freshly selected ticket in
	// flight.
	SyncLoading
	// SyncReady: detail held; background polling may apply updates.
	SyncReady
	// SyncMutating: an optimistic mutation is awaiting its server
	// response; poll results are suppressed until it settles.
	SyncMutating
)

// StatusTransition captures a proposed status flip for the
// confirmation step: Open/Pending close, Closed reopens. Discarded
// after commit or cancel.
type StatusTransition struct {
	TicketID    int64
	Current     ticket.Status
	NextWire    string
	NextDisplay ticket.Status
}

// RequiresNote reports whether committing this transition needs a
// non-empty resolution note.
func (transition StatusTransition) RequiresNote() bool {
	return transition.NextWire == ticket.WireClosed
}

// mutationSnapshot is the deep pre-mutation copy restored on rollback.
type mutationSnapshot struct {
	detail  *ticket.Detail
	tickets []ticket.Summary
}

// ApplyOutcome reports what applying a detail fetch changed.
type ApplyOutcome struct {
	// Applied is false when the fetch was dropped: stale generation,
	// identical to the held detail, or suppressed by an in-flight
	// mutation.
	Applied bool

	// ListChanged is true when fields propagated into the collection
	// store and the list was re-sorted.
	ListChanged bool
}

// Synchronizer manages the currently open ticket: the foreground fetch
// on selection, apply-if-different reconciliation of background polls,
// and the optimistic mutation protocol (snapshot, apply, commit or
// roll back) shared by status changes and message sends.
//
// Selection bumps a generation counter; fetch results and poll ticks
// carry the generation they were issued under, and stale ones are
// dropped. This is how "stop the previous ticket's poll" is expressed
// in a message-passing loop: the old timer keeps ticking until its
// next delivery, which then fails the generation check and dies.
type Synchronizer struct {
	timeSource clock.Clock
	agentName  string

	state      SyncState
	selectedID int64
	generation int
	detail     *ticket.Detail

	snapshot    *mutationSnapshot
	pendingTemp string // temp id of the optimistic message being sent
}

// NewSynchronizer returns an idle synchronizer. The agent name is the
// sender recorded on optimistic outgoing messages.
func NewSynchronizer(timeSource clock.Clock, agentName string) *Synchronizer {
	return &Synchronizer{timeSource: timeSource, agentName: agentName}
}

// State returns the current lifecycle state.
func (sync *Synchronizer) State() SyncState {
	return sync.state
}

// Selected reports whether a ticket is open.
func (sync *Synchronizer) Selected() bool {
	return sync.state != SyncIdle
}

// SelectedID returns the open ticket's id, or 0 when idle.
func (sync *Synchronizer) SelectedID() int64 {
	return sync.selectedID
}

// Detail returns the held detail, nil while idle or loading.
func (sync *Synchronizer) Detail() *ticket.Detail {
	return sync.detail
}

// Generation returns the current selection generation. Commands carry
// it so late results from a previous selection can be recognized.
func (sync *Synchronizer) Generation() int {
	return sync.generation
}

// Current reports whether a generation is still the live one.
func (sync *Synchronizer) Current(generation int) bool {
	return generation == sync.generation
}

// Select opens a ticket: clears any held detail, invalidates earlier
// fetches and polls, and moves to SyncLoading. The caller issues the
// foreground fetch under the returned generation.
func (sync *Synchronizer) Select(ticketID int64) int {
	sync.generation++
	sync.selectedID = ticketID
	sync.detail = nil
	sync.snapshot = nil
	sync.pendingTemp = ""
	sync.state = SyncLoading
	return sync.generation
}

// Deselect closes the open ticket and invalidates its poll.
func (sync *Synchronizer) Deselect() {
	sync.generation++
	sync.selectedID = 0
	sync.detail = nil
	sync.snapshot = nil
	sync.pendingTemp = ""
	sync.state = SyncIdle
}

// ApplyDetail reconciles a fetched detail. Stale generations are
// dropped. While a mutation is in flight, poll results are suppressed
// so a late poll cannot overwrite the optimistic value before the
// mutation's own commit runs. An incoming detail identical to the held
// one (message thread, status, timestamp, note, complaint, location)
// is dropped so the chat pane neither re-renders nor loses its scroll
// position.
//
// Changes a background poll observes in status, timestamp, location,
// or complaint link are folded into the collection store's entry, with
// a re-sort.
func (sync *Synchronizer) ApplyDetail(incoming *ticket.Detail, generation int, polling bool, store *Store) ApplyOutcome {
	if !sync.Current(generation) || sync.state == SyncIdle {
		return ApplyOutcome{}
	}
	if polling && sync.state == SyncMutating {
		return ApplyOutcome{}
	}
	if sync.detail.Same(incoming) {
		if sync.state == SyncLoading {
			sync.state = SyncReady
		}
		return ApplyOutcome{}
	}

	listChanged := false
	if polling {
		listChanged = store.PropagateDetail(incoming)
	}

	sync.detail = incoming
	if sync.state == SyncLoading {
		sync.state = SyncReady
	}
	return ApplyOutcome{Applied: true, ListChanged: listChanged}
}

// ClearDetail drops the held detail after a failed foreground fetch.
// The selection itself survives; the caller surfaces the error.
func (sync *Synchronizer) ClearDetail() {
	sync.detail = nil
}

// AttachComplaint records a freshly created complaint link on the held
// detail. No-op when the given ticket is not the one held.
func (sync *Synchronizer) AttachComplaint(ticketID int64, link *ticket.ComplaintLink) {
	if sync.detail == nil || sync.detail.InternalID != ticketID {
		return
	}
	updated := sync.detail.Clone()
	updated.Complaint = link
	sync.detail = updated
}

// ProposeStatusChange computes the transition the confirmation modal
// presents: Open and Pending tickets close, Closed tickets reopen.
func (sync *Synchronizer) ProposeStatusChange() (StatusTransition, error) {
	if sync.detail == nil {
		return StatusTransition{}, ErrNoSelection
	}
	if sync.state == SyncMutating {
		return StatusTransition{}, ErrMutationInFlight
	}

	transition := StatusTransition{
		TicketID: sync.selectedID,
		Current:  sync.detail.Status,
	}
	switch sync.detail.Status {
	case ticket.StatusOpen, ticket.StatusPending:
		transition.NextWire = ticket.WireClosed
		transition.NextDisplay = ticket.StatusClosed
	default:
		transition.NextWire = ticket.WireOpen
		transition.NextDisplay = ticket.StatusOpen
	}
	return transition, nil
}

// BeginStatusMutation validates and optimistically applies a confirmed
// status transition to both the detail and the list entry, snapshotting
// both first. Closing without a non-empty resolution note fails before
// any state is touched; the caller must not issue the network call in
// that case.
func (sync *Synchronizer) BeginStatusMutation(transition StatusTransition, note string, store *Store) error {
	if sync.detail == nil {
		return ErrNoSelection
	}
	if sync.state == SyncMutating {
		return ErrMutationInFlight
	}
	if transition.RequiresNote() && strings.TrimSpace(note) == "" {
		return ErrResolutionNoteRequired
	}

	sync.snapshot = &mutationSnapshot{
		detail:  sync.detail.Clone(),
		tickets: store.Snapshot(),
	}

	now := sync.timeSource.Now().UTC().Format(time.RFC3339)
	updated := sync.detail.Clone()
	updated.Status = transition.NextDisplay
	updated.UpdatedAt = now
	if transition.RequiresNote() {
		updated.ResolutionNote = note
	}
	sync.detail = updated
	store.ApplyStatus(transition.TicketID, transition.NextDisplay, now)
	sync.state = SyncMutating
	return nil
}

// BeginSendMutation validates and optimistically appends an outgoing
// message with a temporary id, bumping the list entry's timestamp.
// Returns the message text to put on the wire.
func (sync *Synchronizer) BeginSendMutation(text string, store *Store) (string, error) {
	trimmed := strings.TrimSpace(text)
	if sync.detail == nil {
		return "", ErrNoSelection
	}
	if sync.state == SyncMutating {
		return "", ErrMutationInFlight
	}
	if sync.detail.Status == ticket.StatusClosed {
		return "", ErrTicketClosed
	}
	if trimmed == "" {
		return "", ErrEmptyMessage
	}

	sync.snapshot = &mutationSnapshot{
		detail:  sync.detail.Clone(),
		tickets: store.Snapshot(),
	}

	now := sync.timeSource.Now().UTC()
	timestamp := now.Format(time.RFC3339)
	sync.pendingTemp = fmt.Sprintf("temp-%d", now.UnixNano())

	updated := sync.detail.Clone()
	updated.Messages = append(updated.Messages, ticket.Message{
		ID:        sync.pendingTemp,
		Sender:    sync.agentName,
		Text:      trimmed,
		Timestamp: timestamp,
		Origin:    ticket.OriginAgent,
	})
	updated.UpdatedAt = timestamp
	sync.detail = updated
	store.BumpUpdated(sync.selectedID, timestamp)
	sync.state = SyncMutating
	return trimmed, nil
}

// CommitMutation settles a successful mutation: the snapshot is
// discarded and polling resumes. The optimistic state stands until the
// follow-up foreground re-fetch absorbs the server's canonical copy
// (which also replaces any temporary message id).
func (sync *Synchronizer) CommitMutation() {
	sync.snapshot = nil
	sync.pendingTemp = ""
	if sync.state == SyncMutating {
		sync.state = SyncReady
	}
}

// RollbackMutation restores the pre-mutation snapshot of both the
// detail and the list after a failed server call.
func (sync *Synchronizer) RollbackMutation(store *Store) {
	if sync.snapshot == nil {
		return
	}
	sync.detail = sync.snapshot.detail
	store.Restore(sync.snapshot.tickets)
	sync.snapshot = nil
	sync.pendingTemp = ""
	if sync.state == SyncMutating {
		sync.state = SyncReady
	}
}

// Mutating reports whether a mutation is awaiting its server response.
func (sync *Synchronizer) Mutating() bool {
	return sync.state == SyncMutating
}
