// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"testing"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// makeSummaries builds n summaries with descending UpdatedAt so the
// newest-first invariant holds without sorting.
func makeSummaries(n int) []ticket.Summary {
	summaries := make([]ticket.Summary, n)
	for index := range summaries {
		summaries[index] = ticket.Summary{
			InternalID:  int64(index + 1),
			DisplayCode: fmt.Sprintf("TICKET-20260501-%03d", index+1),
			Subject:     fmt.Sprintf("subject %d", index+1),
			Status:      ticket.StatusOpen,
			UpdatedAt:   fmt.Sprintf("2026-05-01T12:%02d:00Z", 59-index),
		}
	}
	return summaries
}

func TestApplyRefreshFirstLoad(t *testing.T) {
	store := NewStore()
	report := store.ApplyRefresh(makeSummaries(3))
	if !report.Replaced || !report.FirstLoad {
		t.Errorf("first refresh report = %+v", report)
	}
	if !store.Loaded() {
		t.Error("store should be loaded after first refresh")
	}
}

func TestApplyRefreshIdenticalListIsDropped(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(5))

	// A structurally equal list, freshly built, must not replace.
	report := store.ApplyRefresh(makeSummaries(5))
	if report.Replaced {
		t.Error("identical refresh replaced the list")
	}
	if report.FirstLoad {
		t.Error("second refresh reported as first load")
	}
}

func TestApplyRefreshChangedListReplaces(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(5))

	changed := makeSummaries(5)
	changed[2].Status = ticket.StatusClosed
	if report := store.ApplyRefresh(changed); !report.Replaced {
		t.Error("changed refresh did not replace the list")
	}
}

func TestFilterBySearchAndStatus(t *testing.T) {
	store := NewStore()
	summaries := makeSummaries(6)
	summaries[1].Status = ticket.StatusClosed
	summaries[4].Status = ticket.StatusPending
	store.ApplyRefresh(summaries)

	cases := []struct {
		search  string
		status  string
		wantIDs []int64
	}{
		{"", ticket.StatusFilterAll, []int64{1, 2, 3, 4, 5, 6}},
		{"", string(ticket.StatusOpen), []int64{1, 3, 4, 6}},
		{"", string(ticket.StatusClosed), []int64{2}},
		{"-003", ticket.StatusFilterAll, []int64{3}},
		{"ticket-2026", ticket.StatusFilterAll, []int64{1, 2, 3, 4, 5, 6}}, // case-insensitive
		{"-00", string(ticket.StatusPending), []int64{5}},
		{"zzz", ticket.StatusFilterAll, nil},
	}
	for _, testCase := range cases {
		store.SetSearch(testCase.search)
		store.SetStatusFilter(testCase.status)
		filtered := store.Filtered()
		var gotIDs []int64
		for _, summary := range filtered {
			gotIDs = append(gotIDs, summary.InternalID)
		}
		if fmt.Sprint(gotIDs) != fmt.Sprint(testCase.wantIDs) {
			t.Errorf("search=%q status=%q: got %v, want %v",
				testCase.search, testCase.status, gotIDs, testCase.wantIDs)
		}
	}
}

func TestPaginationWindow(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(20))

	visible := store.Visible()
	if len(visible) != PageSize {
		t.Fatalf("page 1 shows %d rows, want %d", len(visible), PageSize)
	}
	// Newest-first: the first row is the most recently updated.
	if visible[0].InternalID != 1 {
		t.Errorf("first visible = %d, want 1", visible[0].InternalID)
	}
	if !store.HasMore() {
		t.Error("20 tickets on one page of 15 should have more")
	}

	if !store.BeginAdvance() {
		t.Fatal("BeginAdvance refused with more rows available")
	}
	store.FinishAdvance()
	if got := len(store.Visible()); got != 20 {
		t.Errorf("page 2 shows %d rows, want 20", got)
	}
	if store.HasMore() {
		t.Error("all rows visible but HasMore is true")
	}
}

func TestAdvanceGuards(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(20))

	store.SetRefreshing(true)
	if store.BeginAdvance() {
		t.Error("advance allowed while the base list is loading")
	}
	store.SetRefreshing(false)

	if !store.BeginAdvance() {
		t.Fatal("advance refused when allowed")
	}
	if store.BeginAdvance() {
		t.Error("second advance allowed while one is pending")
	}
	store.FinishAdvance()

	// No more rows: advance is a no-op.
	if store.BeginAdvance() {
		t.Error("advance allowed with no more rows")
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(40))
	store.BeginAdvance()
	store.FinishAdvance()
	if store.Page() != 2 {
		t.Fatalf("page = %d after advance, want 2", store.Page())
	}

	store.SetSearch("TICKET")
	if store.Page() != 1 {
		t.Errorf("page = %d after search change, want 1", store.Page())
	}

	store.BeginAdvance()
	store.FinishAdvance()
	store.SetStatusFilter(string(ticket.StatusOpen))
	if store.Page() != 1 {
		t.Errorf("page = %d after status filter change, want 1", store.Page())
	}

	// Setting the same value again does not reset.
	store.BeginAdvance()
	store.FinishAdvance()
	store.SetStatusFilter(string(ticket.StatusOpen))
	if store.Page() != 2 {
		t.Errorf("page = %d after no-op filter set, want 2", store.Page())
	}
}

func TestPropagateDetailUpdatesAndResorts(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(3))

	detail := &ticket.Detail{Summary: ticket.Summary{
		InternalID:   3,
		Status:       ticket.StatusPending,
		UpdatedAt:    "2026-05-01T13:00:00Z", // newer than every entry
		LocationName: "North Branch",
	}}
	if !store.PropagateDetail(detail) {
		t.Fatal("PropagateDetail reported no change")
	}

	top := store.Tickets()[0]
	if top.InternalID != 3 || top.Status != ticket.StatusPending || top.LocationName != "North Branch" {
		t.Errorf("top entry after propagation = %+v", top)
	}

	// Re-applying the same fields is a no-op.
	if store.PropagateDetail(detail) {
		t.Error("identical propagation reported a change")
	}
}

func TestSelectionConsistency(t *testing.T) {
	store := NewStore()
	store.ApplyRefresh(makeSummaries(3))
	if !store.Contains(2) {
		t.Error("ticket 2 should be present")
	}

	shrunk := makeSummaries(3)[:2]
	store.ApplyRefresh(shrunk)
	if store.Contains(3) {
		t.Error("ticket 3 vanished from the refresh but Contains is true")
	}
}
