// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/helpdesk/lib/clock"
	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// newTestModel builds a console model with a fake clock and a client
// that never actually reaches a server: tests inspect the commands
// Update returns instead of executing them.
func newTestModel(t *testing.T) (*Model, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC))
	client, err := helpdesk.NewClient(helpdesk.Config{
		BaseURL:   "http://helpdesk.test/api",
		Token:     "token",
		AgentName: "Dina",
		Clock:     fake,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	model := New(Options{Client: client, Clock: fake, Bell: true})
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model, fake
}

func deliver(model *Model, message tea.Msg) tea.Cmd {
	updated, command := model.Update(message)
	if updated != model {
		panic("model identity changed")
	}
	return command
}

func TestFirstListLoadIsSilent(t *testing.T) {
	model, _ := newTestModel(t)

	command := deliver(model, listFetchedMsg{summaries: makeSummaries(3)})
	if command != nil {
		t.Errorf("first load returned a command (bell?) for the initial backlog")
	}
	if !model.store.Loaded() || len(model.store.Tickets()) != 3 {
		t.Errorf("store after first load: loaded=%v count=%d",
			model.store.Loaded(), len(model.store.Tickets()))
	}
}

func TestRefreshWithNewTicketRingsBell(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	grown := makeSummaries(4)
	command := deliver(model, listFetchedMsg{summaries: grown, background: true})
	if command == nil {
		t.Fatalf("refresh with a new ticket produced no bell command")
	}
}

func TestIdenticalRefreshProducesNothing(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	command := deliver(model, listFetchedMsg{summaries: makeSummaries(3), background: true})
	if command != nil {
		t.Errorf("identical refresh produced a command")
	}
}

func TestBackgroundListErrorKeepsState(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	deliver(model, listFetchedMsg{background: true, err: errors.New("boom")})
	if len(model.store.Tickets()) != 3 {
		t.Errorf("background failure disturbed the store")
	}
	if model.banner != "" {
		t.Errorf("background failure raised the error banner: %q", model.banner)
	}
}

func TestForegroundListErrorRaisesBanner(t *testing.T) {
	model, _ := newTestModel(t)

	deliver(model, listFetchedMsg{err: errors.New("connection refused")})
	if !strings.Contains(model.banner, "connection refused") {
		t.Errorf("banner = %q", model.banner)
	}

	// Esc dismisses the banner before anything else sees the key.
	deliver(model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.banner != "" {
		t.Errorf("banner survived escape: %q", model.banner)
	}
}

func TestSelectionClearedWhenTicketVanishes(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	generation := model.syncer.Select(2)
	model.syncer.ApplyDetail(testDetail(2, ticket.StatusOpen), generation, false, model.store)

	// Ticket 2 disappears from the next refresh.
	survivors := []ticket.Summary{makeSummaries(3)[0], makeSummaries(3)[2]}
	deliver(model, listFetchedMsg{summaries: survivors, background: true})

	if model.syncer.Selected() {
		t.Errorf("selection survived the ticket vanishing from the list")
	}
}

func TestStaleDetailResultDropped(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	oldGeneration := model.syncer.Select(1)
	model.syncer.Select(2)

	deliver(model, detailFetchedMsg{
		detail:     *testDetail(1, ticket.StatusOpen),
		ticketID:   1,
		generation: oldGeneration,
	})
	if model.syncer.Detail() != nil {
		t.Errorf("stale detail was applied")
	}
}

func TestDetailPollTickReArmsOnlyWhileCurrent(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})
	generation := model.syncer.Select(1)

	command := deliver(model, detailTickMsg{generation: generation})
	if command == nil {
		t.Errorf("live tick produced no fetch/re-arm command")
	}

	model.syncer.Deselect()
	command = deliver(model, detailTickMsg{generation: generation})
	if command != nil {
		t.Errorf("tick for a dead generation produced a command")
	}
}

func TestPollNotFoundTriggersListRefresh(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	generation := model.syncer.Select(1)
	model.syncer.ApplyDetail(testDetail(1, ticket.StatusOpen), generation, false, model.store)

	command := deliver(model, detailFetchedMsg{
		ticketID:   1,
		generation: generation,
		polling:    true,
		err:        &helpdesk.NotFoundError{TicketID: 1},
	})
	if command == nil {
		t.Fatalf("poll 404 did not schedule a list refresh")
	}
	// The selection itself waits for the refreshed list's verdict.
	if !model.syncer.Selected() {
		t.Errorf("poll 404 deselected directly instead of via the list")
	}
}

func TestForegroundNotFoundClearsDetail(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})
	generation := model.syncer.Select(1)

	command := deliver(model, detailFetchedMsg{
		ticketID:   1,
		generation: generation,
		err:        &helpdesk.NotFoundError{TicketID: 1},
	})
	if command == nil {
		t.Errorf("foreground 404 did not schedule a list refresh")
	}
	if model.syncer.Detail() != nil {
		t.Errorf("detail survived a foreground 404")
	}
	if model.banner == "" {
		t.Errorf("foreground 404 raised no banner")
	}
}

func TestPageAdvanceDebounce(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(20)})

	if !model.store.BeginAdvance() {
		t.Fatalf("BeginAdvance refused with more rows available")
	}
	if got := len(model.store.Visible()); got != PageSize {
		t.Fatalf("window grew before the debounce fired: %d rows", got)
	}

	deliver(model, pageAdvanceMsg{})
	if got := len(model.store.Visible()); got != 20 {
		t.Errorf("after debounce: %d visible rows, want 20", got)
	}
}

func TestSendFailureRollsBackAndRestoresInput(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	generation := model.syncer.Select(1)
	model.syncer.ApplyDetail(testDetail(1, ticket.StatusOpen), generation, false, model.store)
	if _, err := model.syncer.BeginSendMutation("hello there", model.store); err != nil {
		t.Fatalf("BeginSendMutation: %v", err)
	}

	deliver(model, messageSentMsg{
		generation:  generation,
		restoreText: "hello there",
		err:         errors.New("boom"),
	})

	if count := len(model.syncer.Detail().Messages); count != 0 {
		t.Errorf("optimistic message survived rollback: %d messages", count)
	}
	if got := model.replyInput.Value(); got != "hello there" {
		t.Errorf("reply input after rollback = %q", got)
	}
	if model.banner == "" {
		t.Errorf("send failure raised no banner")
	}
}

func TestSendSuccessCommitsAndRefetches(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	generation := model.syncer.Select(1)
	model.syncer.ApplyDetail(testDetail(1, ticket.StatusOpen), generation, false, model.store)
	if _, err := model.syncer.BeginSendMutation("hello", model.store); err != nil {
		t.Fatalf("BeginSendMutation: %v", err)
	}

	command := deliver(model, messageSentMsg{generation: generation})
	if command == nil {
		t.Errorf("successful send did not schedule the confirming re-fetch")
	}
	if model.syncer.Mutating() {
		t.Errorf("synchronizer still mutating after commit")
	}
}

func TestAuthFailureQuits(t *testing.T) {
	model, _ := newTestModel(t)

	command := deliver(model, listFetchedMsg{err: &helpdesk.AuthRequiredError{StatusCode: 401}})
	if !model.AuthFailed() {
		t.Errorf("AuthFailed not set")
	}
	if command == nil {
		t.Fatalf("auth failure returned no command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("auth failure command is not Quit")
	}
}

func TestQuitKeyStopsPolling(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	command := deliver(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command == nil {
		t.Fatalf("quit key returned no command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("quit key command is not Quit")
	}

	// Later ticks must not re-arm after teardown.
	if command := deliver(model, listTickMsg{}); command != nil {
		t.Errorf("list tick re-armed after quit")
	}
}

func TestStatusFilterDropdown(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(20)})
	model.cursor = 5

	deliver(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if model.statusDropdown == nil {
		t.Fatalf("status filter dropdown did not open")
	}

	// Down to "Open", confirm.
	deliver(model, tea.KeyMsg{Type: tea.KeyDown})
	deliver(model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.statusDropdown != nil {
		t.Errorf("dropdown still open after selection")
	}
	if got := model.store.StatusFilter(); got != string(ticket.StatusOpen) {
		t.Errorf("status filter = %q, want %q", got, ticket.StatusOpen)
	}
	if model.cursor != 0 {
		t.Errorf("cursor = %d after filter change", model.cursor)
	}

	// Escape dismisses without changing the filter.
	deliver(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	deliver(model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.statusDropdown != nil || model.store.StatusFilter() != string(ticket.StatusOpen) {
		t.Errorf("escape changed the filter: %q", model.store.StatusFilter())
	}
}

func TestComplaintCreatedRecordsLinkAndToasts(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	generation := model.syncer.Select(1)
	model.syncer.ApplyDetail(testDetail(1, ticket.StatusOpen), generation, false, model.store)

	command := deliver(model, complaintCreatedMsg{
		ticketID:    1,
		complaintID: "CMP-0042",
		category:    "Network",
	})
	if command == nil {
		t.Errorf("complaint success scheduled no refresh")
	}

	detail := model.syncer.Detail()
	if detail.Complaint == nil || detail.Complaint.ComplaintID != "CMP-0042" {
		t.Errorf("detail complaint link = %+v", detail.Complaint)
	}
	summary, _ := model.store.Get(1)
	if summary.Complaint == nil {
		t.Errorf("list entry missing complaint link")
	}
	if !strings.Contains(model.toast, "CMP-0042") {
		t.Errorf("toast = %q", model.toast)
	}
}

func TestViewRendersWithoutSelection(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	view := model.View()
	if view == "" {
		t.Fatalf("empty view")
	}
	if !strings.Contains(view, "select a ticket") {
		t.Errorf("placeholder missing from chat pane")
	}
}

func TestFailedFirstLoadClearsLoadingFooter(t *testing.T) {
	model, _ := newTestModel(t)
	model.Init()

	if view := model.View(); !strings.Contains(view, "loading tickets") {
		t.Fatalf("initial view shows no loading notice")
	}

	deliver(model, listFetchedMsg{err: errors.New("connection refused")})
	view := model.View()
	if strings.Contains(view, "loading tickets") {
		t.Error("failed first load still shows the loading footer")
	}
	if !strings.Contains(view, "connection refused") {
		t.Error("error banner missing from the view")
	}
}

func TestReplyKeyOpensHighlightedTicket(t *testing.T) {
	model, _ := newTestModel(t)
	deliver(model, listFetchedMsg{summaries: makeSummaries(3)})

	command := deliver(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	if command == nil {
		t.Fatal("reply key issued no detail fetch")
	}
	if !model.syncer.Selected() || model.syncer.SelectedID() != 1 {
		t.Errorf("selected=%v id=%d after reply key",
			model.syncer.Selected(), model.syncer.SelectedID())
	}
	if model.focus != focusChat || !model.replyInput.Focused() {
		t.Error("reply key did not move focus to the reply input")
	}
}
