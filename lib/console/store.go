// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"strings"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// PageSize is the number of ticket rows revealed per page of the list
// view. Scrolling near the bottom advances the page.
const PageSize = 15

// RefreshReport describes what a list refresh changed.
type RefreshReport struct {
	// Replaced is true when the incoming list differed structurally
	// from the held one and replaced it. An identical list leaves the
	// store untouched so nothing downstream re-renders.
	Replaced bool

	// FirstLoad is true on the first successful refresh.
	FirstLoad bool
}

// Store holds the authoritative local list of ticket summaries and
// derives the client-visible filtered, paginated subset. It is pure
// state: fetching is the model's job, and every method runs on the
// update loop.
type Store struct {
	tickets      []ticket.Summary
	loaded       bool
	refreshing   bool
	searchText   string
	statusFilter string
	page         int
	advancing    bool
}

// NewStore returns an empty store showing page 1 with no filters.
func NewStore() *Store {
	return &Store{
		statusFilter: ticket.StatusFilterAll,
		page:         1,
	}
}

// ApplyRefresh installs a fetched ticket list. The incoming list must
// already be sorted newest-first. If it is structurally equal to the
// held list the store is left untouched, so a quiet background poll
// causes no re-render, no pagination reset, and no notification.
func (store *Store) ApplyRefresh(incoming []ticket.Summary) RefreshReport {
	report := RefreshReport{FirstLoad: !store.loaded}
	if store.loaded && ticket.SummariesEqual(store.tickets, incoming) {
		return report
	}
	store.tickets = incoming
	store.loaded = true
	report.Replaced = true
	return report
}

// Tickets returns the full held list, newest-first.
func (store *Store) Tickets() []ticket.Summary {
	return store.tickets
}

// IDs returns the internal ids of every held ticket, for the
// notification tracker's snapshot diff.
func (store *Store) IDs() []int64 {
	ids := make([]int64, len(store.tickets))
	for index, summary := range store.tickets {
		ids[index] = summary.InternalID
	}
	return ids
}

// Loaded reports whether at least one refresh has been applied.
func (store *Store) Loaded() bool {
	return store.loaded
}

// SetRefreshing records whether a list fetch is in flight. Page
// advancement is suppressed while the base list is loading.
func (store *Store) SetRefreshing(refreshing bool) {
	store.refreshing = refreshing
}

// Refreshing reports whether a list fetch is in flight.
func (store *Store) Refreshing() bool {
	return store.refreshing
}

// SetSearch updates the display-code search text. Any change resets
// pagination to the first page.
func (store *Store) SetSearch(text string) {
	if store.searchText == text {
		return
	}
	store.searchText = text
	store.page = 1
}

// Search returns the current search text.
func (store *Store) Search() string {
	return store.searchText
}

// SetStatusFilter updates the status filter ("all" or a display
// status). Any change resets pagination to the first page.
func (store *Store) SetStatusFilter(filter string) {
	if store.statusFilter == filter {
		return
	}
	store.statusFilter = filter
	store.page = 1
}

// StatusFilter returns the current status filter.
func (store *Store) StatusFilter() string {
	return store.statusFilter
}

// matches reports whether a summary passes the current filters: its
// display code case-insensitively contains the search text, and its
// status matches the status filter (or the filter is "all").
func (store *Store) matches(summary ticket.Summary) bool {
	if store.statusFilter != ticket.StatusFilterAll &&
		string(summary.Status) != store.statusFilter {
		return false
	}
	if store.searchText == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(summary.DisplayCode),
		strings.ToLower(store.searchText))
}

// Filtered returns the summaries passing the current filters, in held
// (newest-first) order.
func (store *Store) Filtered() []ticket.Summary {
	var result []ticket.Summary
	for _, summary := range store.tickets {
		if store.matches(summary) {
			result = append(result, summary)
		}
	}
	return result
}

// Visible returns the paginated window over the filtered list:
// filtered[0 : page×PageSize].
func (store *Store) Visible() []ticket.Summary {
	filtered := store.Filtered()
	limit := store.page * PageSize
	if limit > len(filtered) {
		limit = len(filtered)
	}
	return filtered[:limit]
}

// HasMore reports whether the filtered list extends past the visible
// window.
func (store *Store) HasMore() bool {
	return store.page*PageSize < len(store.Filtered())
}

// BeginAdvance starts a page advance if one is allowed: no advance
// already pending, more rows exist, and the base list is not loading.
// Returns true when the caller should schedule the debounced
// completion.
func (store *Store) BeginAdvance() bool {
	if store.advancing || store.refreshing || !store.HasMore() {
		return false
	}
	store.advancing = true
	return true
}

// FinishAdvance completes a pending page advance.
func (store *Store) FinishAdvance() {
	if !store.advancing {
		return
	}
	store.advancing = false
	if store.HasMore() {
		store.page++
	}
}

// Advancing reports whether a debounced page advance is pending.
func (store *Store) Advancing() bool {
	return store.advancing
}

// Page returns the current 1-based page number.
func (store *Store) Page() int {
	return store.page
}

// Contains reports whether a ticket id is present in the held list.
// The model clears the selection when the open ticket vanishes from a
// refreshed list.
func (store *Store) Contains(id int64) bool {
	return store.indexOf(id) >= 0
}

// Get returns the held summary for an id.
func (store *Store) Get(id int64) (ticket.Summary, bool) {
	index := store.indexOf(id)
	if index < 0 {
		return ticket.Summary{}, false
	}
	return store.tickets[index], true
}

func (store *Store) indexOf(id int64) int {
	for index, summary := range store.tickets {
		if summary.InternalID == id {
			return index
		}
	}
	return -1
}

// PropagateDetail folds fields observed by a detail fetch into the
// corresponding list entry: status, update timestamp, location, and
// complaint link. Returns true when the entry changed, in which case
// the list has been re-sorted.
func (store *Store) PropagateDetail(detail *ticket.Detail) bool {
	index := store.indexOf(detail.InternalID)
	if index < 0 {
		return false
	}
	entry := store.tickets[index]
	entry.Status = detail.Status
	entry.UpdatedAt = detail.UpdatedAt
	entry.LocationCode = detail.LocationCode
	entry.LocationName = detail.LocationName
	entry.Complaint = detail.Complaint
	if entry.Equal(store.tickets[index]) {
		return false
	}
	store.tickets[index] = entry
	ticket.SortSummariesByUpdated(store.tickets)
	return true
}

// ApplyStatus optimistically rewrites a list entry's status and update
// timestamp and re-sorts. Part of the status-change mutation; the
// pre-mutation snapshot restores it on rollback.
func (store *Store) ApplyStatus(id int64, status ticket.Status, updatedAt string) {
	index := store.indexOf(id)
	if index < 0 {
		return
	}
	store.tickets[index].Status = status
	store.tickets[index].UpdatedAt = updatedAt
	ticket.SortSummariesByUpdated(store.tickets)
}

// BumpUpdated optimistically advances a list entry's update timestamp
// and re-sorts. Part of the send-message mutation.
func (store *Store) BumpUpdated(id int64, updatedAt string) {
	index := store.indexOf(id)
	if index < 0 {
		return
	}
	store.tickets[index].UpdatedAt = updatedAt
	ticket.SortSummariesByUpdated(store.tickets)
}

// SetComplaint records a freshly created complaint link on a list
// entry.
func (store *Store) SetComplaint(id int64, link *ticket.ComplaintLink) {
	index := store.indexOf(id)
	if index < 0 {
		return
	}
	store.tickets[index].Complaint = link
}

// Snapshot returns a deep copy of the held list for mutation rollback.
func (store *Store) Snapshot() []ticket.Summary {
	return ticket.CloneSummaries(store.tickets)
}

// Restore replaces the held list with a snapshot.
func (store *Store) Restore(snapshot []ticket.Summary) {
	store.tickets = snapshot
}
