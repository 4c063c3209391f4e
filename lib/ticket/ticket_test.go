// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"testing"
	"time"
)

func TestStatusFromWire(t *testing.T) {
	cases := []struct {
		wire string
		want Status
	}{
		{"open", StatusOpen},
		{"pending", StatusPending},
		{"closed", StatusClosed},
		{"archived", Status("archived")},
		{"", Status("")},
	}
	for _, testCase := range cases {
		if got := StatusFromWire(testCase.wire); got != testCase.want {
			t.Errorf("StatusFromWire(%q) = %q, want %q", testCase.wire, got, testCase.want)
		}
	}
}

func TestStatusWireRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusOpen, StatusPending, StatusClosed} {
		if got := StatusFromWire(status.WireValue()); got != status {
			t.Errorf("round trip of %q produced %q", status, got)
		}
	}
}

func TestDeriveDisplayCode(t *testing.T) {
	createdAt := time.Date(2026, time.March, 7, 14, 30, 0, 0, time.UTC)
	if got := DeriveDisplayCode(42, createdAt); got != "TICKET-20260307-042" {
		t.Errorf("DeriveDisplayCode = %q", got)
	}

	// IDs wider than three digits must not be truncated.
	if got := DeriveDisplayCode(12345, createdAt); got != "TICKET-20260307-12345" {
		t.Errorf("DeriveDisplayCode wide id = %q", got)
	}
}

func TestSubjectFromMessage(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Printer broken\nIt smokes when printing", "Printer broken"},
		{"single line", "single line"},
		{"", "(no subject)"},
		{"\nleading newline", "(no subject)"},
		{"  padded  \nrest", "padded"},
	}
	for _, testCase := range cases {
		if got := SubjectFromMessage(testCase.message); got != testCase.want {
			t.Errorf("SubjectFromMessage(%q) = %q, want %q", testCase.message, got, testCase.want)
		}
	}
}

func TestSortSummariesByUpdatedIsDescendingAndStable(t *testing.T) {
	summaries := []Summary{
		{InternalID: 1, UpdatedAt: "2026-01-01T10:00:00Z"},
		{InternalID: 2, UpdatedAt: "2026-01-03T10:00:00Z"},
		{InternalID: 3, UpdatedAt: "2026-01-02T10:00:00Z"},
		{InternalID: 4, UpdatedAt: "2026-01-02T10:00:00Z"},
	}
	SortSummariesByUpdated(summaries)

	gotOrder := []int64{summaries[0].InternalID, summaries[1].InternalID, summaries[2].InternalID, summaries[3].InternalID}
	wantOrder := []int64{2, 3, 4, 1}
	for index := range wantOrder {
		if gotOrder[index] != wantOrder[index] {
			t.Fatalf("sort order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestSortMessagesByTimestamp(t *testing.T) {
	messages := []Message{
		{ID: "b", Timestamp: "2026-01-01T10:05:00Z"},
		{ID: "a", Timestamp: "2026-01-01T10:00:00Z"},
		{ID: "c", Timestamp: "2026-01-01T10:10:00Z"},
	}
	SortMessagesByTimestamp(messages)
	if messages[0].ID != "a" || messages[1].ID != "b" || messages[2].ID != "c" {
		t.Errorf("messages not ascending: %v %v %v", messages[0].ID, messages[1].ID, messages[2].ID)
	}
}

func TestSummaryEqualComparesComplaintLinkByValue(t *testing.T) {
	base := Summary{InternalID: 7, DisplayCode: "TICKET-20260101-007", Status: StatusOpen}

	linked := base
	linked.Complaint = &ComplaintLink{ComplaintID: "CMP-1", Category: "hardware"}

	sameLink := base
	sameLink.Complaint = &ComplaintLink{ComplaintID: "CMP-1", Category: "hardware"}

	if base.Equal(linked) {
		t.Error("summary with complaint link should not equal one without")
	}
	if !linked.Equal(sameLink) {
		t.Error("summaries with equal complaint links should be equal despite distinct pointers")
	}
}

func TestSummariesEqual(t *testing.T) {
	a := []Summary{{InternalID: 1, Status: StatusOpen}, {InternalID: 2, Status: StatusClosed}}
	b := []Summary{{InternalID: 1, Status: StatusOpen}, {InternalID: 2, Status: StatusClosed}}
	if !SummariesEqual(a, b) {
		t.Error("structurally equal lists reported unequal")
	}

	b[1].Status = StatusOpen
	if SummariesEqual(a, b) {
		t.Error("lists differing in status reported equal")
	}
	if SummariesEqual(a, a[:1]) {
		t.Error("lists of different length reported equal")
	}
}

func TestDetailSame(t *testing.T) {
	detail := &Detail{
		Summary: Summary{InternalID: 1, Status: StatusOpen, UpdatedAt: "2026-01-01T10:00:00Z", LocationName: "HQ"},
		Messages: []Message{
			{ID: "m1", Sender: "Ana", Text: "hi", Timestamp: "2026-01-01T09:00:00Z", Origin: OriginCustomer},
		},
		ResolutionNote: "",
	}

	identical := detail.Clone()
	if !detail.Same(identical) {
		t.Error("clone should be Same as original")
	}

	newMessage := detail.Clone()
	newMessage.Messages = append(newMessage.Messages, Message{ID: "m2", Timestamp: "2026-01-01T09:01:00Z"})
	if detail.Same(newMessage) {
		t.Error("added message should not be Same")
	}

	statusChanged := detail.Clone()
	statusChanged.Status = StatusClosed
	if detail.Same(statusChanged) {
		t.Error("status change should not be Same")
	}

	noteChanged := detail.Clone()
	noteChanged.ResolutionNote = "rebooted the printer"
	if detail.Same(noteChanged) {
		t.Error("resolution note change should not be Same")
	}

	linkChanged := detail.Clone()
	linkChanged.Complaint = &ComplaintLink{ComplaintID: "CMP-9", Category: "network"}
	if detail.Same(linkChanged) {
		t.Error("complaint link change should not be Same")
	}

	locationChanged := detail.Clone()
	locationChanged.LocationName = "Branch 2"
	if detail.Same(locationChanged) {
		t.Error("location name change should not be Same")
	}

	var nilDetail *Detail
	if nilDetail.Same(detail) || detail.Same(nilDetail) {
		t.Error("nil and non-nil details must not be Same")
	}
	if !nilDetail.Same(nil) {
		t.Error("two nil details are Same")
	}
}

func TestCloneIsDeep(t *testing.T) {
	detail := &Detail{
		Summary: Summary{
			InternalID: 3,
			Complaint:  &ComplaintLink{ComplaintID: "CMP-3", Category: "software"},
		},
		Messages: []Message{{ID: "m1", Text: "original"}},
	}

	copied := detail.Clone()
	copied.Messages[0].Text = "mutated"
	copied.Complaint.Category = "hardware"

	if detail.Messages[0].Text != "original" {
		t.Error("Clone shares message backing array")
	}
	if detail.Complaint.Category != "software" {
		t.Error("Clone shares complaint link pointer")
	}
}

func TestCloneSummariesIsDeep(t *testing.T) {
	summaries := []Summary{
		{InternalID: 1, Complaint: &ComplaintLink{ComplaintID: "CMP-1", Category: "hardware"}},
	}
	copied := CloneSummaries(summaries)
	copied[0].Complaint.Category = "network"
	if summaries[0].Complaint.Category != "hardware" {
		t.Error("CloneSummaries shares complaint link pointer")
	}
}
