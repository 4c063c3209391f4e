// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bureau-foundation/helpdesk/lib/clock"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

func testClient(t *testing.T, server *httptest.Server, token string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:   server.URL,
		Token:     token,
		AgentName: "Dina",
		Clock:     clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestListTicketsTransformsAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/tickets" {
			t.Errorf("unexpected path %q", request.URL.Path)
		}
		if got := request.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		writer.Write([]byte(`{"success":true,"data":[
			{"id":7,"created_at":"2026-04-01T08:00:00Z","updated_at":"2026-04-02T08:00:00Z","message":"VPN down\nsince morning","name":"Budi","sender":"budi@example.com","status":"open"},
			{"id":8,"id_ticket":"TICKET-20260403-008","created_at":"2026-04-03T08:00:00Z","updated_at":"2026-04-03T09:00:00Z","message":"Printer jam","name":"Sari","sender":"sari@example.com","status":"pending","location_code":"JKT-01","location_name":"Jakarta HQ","complaint_ticket_id_ref":"CMP-11","complaint_category_ref":"Network"}
		]}`))
	}))
	defer server.Close()

	summaries, err := testClient(t, server, "tok-1").ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries", len(summaries))
	}

	// Sorted newest-first by updated_at: ticket 8 before ticket 7.
	first, second := summaries[0], summaries[1]
	if first.InternalID != 8 || second.InternalID != 7 {
		t.Fatalf("sort order: got %d, %d", first.InternalID, second.InternalID)
	}
	if first.DisplayCode != "TICKET-20260403-008" {
		t.Errorf("server-assigned code not kept: %q", first.DisplayCode)
	}
	if second.DisplayCode != "TICKET-20260401-007" {
		t.Errorf("derived code = %q", second.DisplayCode)
	}
	if second.Subject != "VPN down" {
		t.Errorf("subject = %q", second.Subject)
	}
	if first.Status != ticket.StatusPending || second.Status != ticket.StatusOpen {
		t.Errorf("statuses = %q, %q", first.Status, second.Status)
	}
	if first.Complaint == nil || first.Complaint.ComplaintID != "CMP-11" || first.Complaint.Category != "Network" {
		t.Errorf("complaint link = %+v", first.Complaint)
	}
	if second.Complaint != nil {
		t.Errorf("unexpected complaint link on ticket 7")
	}
}

func TestListTicketsBodyLevelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"success":false,"error":"index rebuilding"}`))
	}))
	defer server.Close()

	_, err := testClient(t, server, "tok-1").ListTickets(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.Message != "index rebuilding" {
		t.Errorf("message = %q", statusErr.Message)
	}
}

func TestMissingTokenFiresAuthCallbackOnce(t *testing.T) {
	calls := 0
	client, err := NewClient(Config{
		BaseURL:        "http://helpdesk.invalid",
		OnAuthRequired: func() { calls++ },
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	for range 3 {
		_, err := client.ListTickets(context.Background())
		var authErr *AuthRequiredError
		if !errors.As(err, &authErr) {
			t.Fatalf("want AuthRequiredError, got %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("OnAuthRequired fired %d times, want 1", calls)
	}
}

func TestForbiddenResponseFiresAuthCallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	calls := 0
	client, err := NewClient(Config{
		BaseURL:        server.URL,
		Token:          "expired",
		OnAuthRequired: func() { calls++ },
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, listErr := client.ListTickets(context.Background())
	var authErr *AuthRequiredError
	if !errors.As(listErr, &authErr) {
		t.Fatalf("want AuthRequiredError, got %v", listErr)
	}
	if authErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", authErr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("OnAuthRequired fired %d times, want 1", calls)
	}
}

func TestGetTicketSortsThreadAndClassifiesOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/ticket/7" {
			t.Errorf("unexpected path %q", request.URL.Path)
		}
		writer.Write([]byte(`{
			"id":7,"created_at":"2026-04-01T08:00:00Z","updated_at":"2026-04-02T08:00:00Z",
			"message":"VPN down","name":"Budi","sender":"budi@example.com","status":"open",
			"solusi":"","agent_name":"Dina",
			"messages":[
				{"id":"m2","sender":"Dina","text":"On it","timestamp":"2026-04-01T09:00:00Z","type":"agent"},
				{"id":"m1","sender":"Budi","text":"VPN down","timestamp":"2026-04-01T08:00:00Z","type":"user"},
				{"id":"m3","sender":"Dina","text":"Try now","timestamp":"2026-04-01T10:00:00Z","type":""}
			]
		}`))
	}))
	defer server.Close()

	detail, err := testClient(t, server, "tok-1").GetTicket(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}

	if len(detail.Messages) != 3 {
		t.Fatalf("got %d messages", len(detail.Messages))
	}
	if detail.Messages[0].ID != "m1" || detail.Messages[1].ID != "m2" || detail.Messages[2].ID != "m3" {
		t.Errorf("thread not ascending: %v %v %v", detail.Messages[0].ID, detail.Messages[1].ID, detail.Messages[2].ID)
	}
	if detail.Messages[0].Origin != ticket.OriginCustomer {
		t.Errorf("customer message classified as %q", detail.Messages[0].Origin)
	}
	if detail.Messages[1].Origin != ticket.OriginAgent {
		t.Errorf("type-tagged agent message classified as %q", detail.Messages[1].Origin)
	}
	// m3 has no type tag but its sender matches the configured agent.
	if detail.Messages[2].Origin != ticket.OriginAgent {
		t.Errorf("sender-matched agent message classified as %q", detail.Messages[2].Origin)
	}
}

func TestGetTicketFillsMissingUpdatedAtFromClock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"id":7,"created_at":"2026-04-01T08:00:00Z","message":"x","status":"open","messages":[]}`))
	}))
	defer server.Close()

	detail, err := testClient(t, server, "tok-1").GetTicket(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if detail.UpdatedAt != "2026-05-01T12:00:00Z" {
		t.Errorf("UpdatedAt fallback = %q", detail.UpdatedAt)
	}
}

func TestGetTicketNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.NotFound(writer, request)
	}))
	defer server.Close()

	_, err := testClient(t, server, "tok-1").GetTicket(context.Background(), 42)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	if notFound.TicketID != 42 {
		t.Errorf("TicketID = %d", notFound.TicketID)
	}
}

func TestUpdateStatusSendsResolutionNoteOnlyWhenClosing(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPatch {
			t.Errorf("method = %q", request.Method)
		}
		body, _ := io.ReadAll(request.Body)
		bodies = append(bodies, string(body))
		writer.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := testClient(t, server, "tok-1")
	if err := client.UpdateStatus(context.Background(), 7, ticket.WireClosed, "  replaced the cable  "); err != nil {
		t.Fatalf("UpdateStatus closed: %v", err)
	}
	if err := client.UpdateStatus(context.Background(), 7, ticket.WireOpen, ""); err != nil {
		t.Fatalf("UpdateStatus open: %v", err)
	}

	if bodies[0] != `{"solusi":"replaced the cable","status":"closed"}` {
		t.Errorf("close body = %s", bodies[0])
	}
	if bodies[1] != `{"status":"open"}` {
		t.Errorf("open body = %s", bodies[1])
	}
}

func TestUpdateStatusBodyLevelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"success":false,"error":"ticket already closed"}`))
	}))
	defer server.Close()

	err := testClient(t, server, "tok-1").UpdateStatus(context.Background(), 7, ticket.WireClosed, "n/a")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.Message != "ticket already closed" {
		t.Errorf("message = %q", statusErr.Message)
	}
}

func TestSendMessageSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte(`{"message":"channel unavailable"}`))
	}))
	defer server.Close()

	err := testClient(t, server, "tok-1").SendMessage(context.Background(), 7, "hello")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Message != "channel unavailable" {
		t.Errorf("got %d %q", statusErr.StatusCode, statusErr.Message)
	}
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/auth/signin" {
			t.Errorf("path = %q", request.URL.Path)
		}
		if request.Header.Get("Authorization") != "" {
			t.Error("signin must not carry a bearer token")
		}
		writer.Write([]byte(`{"success":true,"token":"tok-9","user":{"name":"Dina Agustina","username":"dina","email":"dina@example.com"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	result, err := client.SignIn(context.Background(), "dina@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if result.Token != "tok-9" || result.Name != "Dina Agustina" {
		t.Errorf("result = %+v", result)
	}
}

func TestCreateComplaintPostsMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := request.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := request.FormValue("id_ticket_chat"); got != "TICKET-20260401-007" {
			t.Errorf("id_ticket_chat = %q", got)
		}
		if got := request.FormValue("category"); got != "Network" {
			t.Errorf("category = %q", got)
		}
		file, header, err := request.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		file.Close()
		if header.Filename != "router.log" {
			t.Errorf("attachment name = %q", header.Filename)
		}
		writer.Write([]byte(`{"complaintTicketId":"CMP-77"}`))
	}))
	defer server.Close()

	complaintID, err := testClient(t, server, "tok-1").CreateComplaint(context.Background(), ComplaintRequest{
		TicketDisplayCode: "TICKET-20260401-007",
		ReporterName:      "Budi",
		ReporterPhone:     "0812",
		Location:          "Jakarta HQ",
		IssueDate:         "2026-05-01",
		Category:          "Network",
		Troubleshoot:      "Internet",
		Priority:          "Medium",
		IssueTitle:        "VPN down",
		IssueDescription:  "VPN down since morning",
		AttachmentName:    "router.log",
		Attachment:        []byte("log data"),
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if complaintID != "CMP-77" {
		t.Errorf("complaintID = %q", complaintID)
	}
}
