// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bureau-foundation/helpdesk/lib/clock"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// Config holds configuration for creating a helpdesk API Client.
type Config struct {
	// BaseURL is the root URL of the backend (e.g.
	// "https://helpdesk.example.com/api"). Required.
	BaseURL string

	// Token is the bearer credential attached to every authenticated
	// request. May be empty only for clients used exclusively for
	// SignIn.
	Token string

	// AgentName is the signed-in agent's display name, used to
	// classify chat messages whose records carry no explicit type
	// tag.
	AgentName string

	// OnAuthRequired is invoked at most once, the first time a
	// request fails authorization (missing token, 401, 403). The
	// callback tears down polling and clears the saved session.
	// Optional.
	OnAuthRequired func()

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is the authenticated gateway to the helpdesk REST backend.
type Client struct {
	baseURL    string
	token      string
	agentName  string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	onAuthRequired func()
	authOnce       sync.Once
}

// NewClient creates a helpdesk API client from the given
// configuration. Returns an error if BaseURL is missing.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("helpdesk: BaseURL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        baseURL,
		token:          config.Token,
		agentName:      config.AgentName,
		httpClient:     httpClient,
		clock:          clk,
		logger:         logger,
		onAuthRequired: config.OnAuthRequired,
	}, nil
}

// AgentName returns the signed-in agent's display name.
func (client *Client) AgentName() string {
	return client.agentName
}

// authRequired fires the OnAuthRequired callback (once per client
// lifetime) and returns the error callers propagate.
func (client *Client) authRequired(statusCode int) error {
	client.authOnce.Do(func() {
		if client.onAuthRequired != nil {
			client.onAuthRequired()
		}
	})
	return &AuthRequiredError{StatusCode: statusCode}
}

// do executes one authenticated request. The path is relative to the
// base URL. A non-nil body is JSON-encoded. The response body is
// returned for the caller to decode; the caller owns closing it.
// Authorization failures (no token, 401, 403) are handled here; every
// other status is the caller's to interpret.
func (client *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if client.token == "" {
		return nil, client.authRequired(0)
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.token)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
		response.Body.Close()
		return nil, client.authRequired(response.StatusCode)
	}
	return response, nil
}

// ListTickets fetches the full ticket list, transformed into domain
// summaries and sorted newest-first by update time.
func (client *Client) ListTickets(ctx context.Context) ([]ticket.Summary, error) {
	response, err := client.do(ctx, http.MethodGet, "/tickets", nil)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: response.StatusCode}
	}

	var envelope listResponse
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, &StatusError{StatusCode: response.StatusCode, Message: fmt.Sprintf("malformed ticket list: %v", err)}
	}
	if !envelope.Success {
		return nil, &StatusError{StatusCode: response.StatusCode, Message: envelope.Error}
	}

	summaries := make([]ticket.Summary, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		summaries = append(summaries, summaryFromRaw(raw))
	}
	ticket.SortSummariesByUpdated(summaries)
	return summaries, nil
}

// GetTicket fetches one ticket's full record, with the chat thread
// sorted ascending by timestamp. A 404 is returned as NotFoundError.
func (client *Client) GetTicket(ctx context.Context, ticketID int64) (ticket.Detail, error) {
	response, err := client.do(ctx, http.MethodGet, fmt.Sprintf("/ticket/%d", ticketID), nil)
	if err != nil {
		return ticket.Detail{}, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return ticket.Detail{}, &NotFoundError{TicketID: ticketID}
	}
	if response.StatusCode != http.StatusOK {
		return ticket.Detail{}, &StatusError{StatusCode: response.StatusCode}
	}

	var raw rawDetail
	if err := json.NewDecoder(response.Body).Decode(&raw); err != nil {
		return ticket.Detail{}, &StatusError{StatusCode: response.StatusCode, Message: fmt.Sprintf("malformed ticket detail: %v", err)}
	}

	fallbackUpdatedAt := client.clock.Now().UTC().Format(time.RFC3339)
	return detailFromRaw(raw, client.agentName, fallbackUpdatedAt), nil
}

// UpdateStatus transitions a ticket to the given wire status ("open"
// or "closed"). A resolution note is sent when closing; validation
// that the note is non-empty happens client-side before this call.
func (client *Client) UpdateStatus(ctx context.Context, ticketID int64, wireStatus, resolutionNote string) error {
	body := map[string]string{"status": wireStatus}
	if wireStatus == ticket.WireClosed {
		body["solusi"] = strings.TrimSpace(resolutionNote)
	}

	response, err := client.do(ctx, http.MethodPatch, fmt.Sprintf("/ticket/status/%d", ticketID), body)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	var result mutationResponse
	decodeErr := json.NewDecoder(response.Body).Decode(&result)
	if response.StatusCode < 200 || response.StatusCode > 299 || decodeErr != nil || !result.Success {
		return &StatusError{StatusCode: response.StatusCode, Message: result.Error}
	}
	return nil
}

// SendMessage posts one agent reply to a ticket's chat thread.
func (client *Client) SendMessage(ctx context.Context, ticketID int64, text string) error {
	body := map[string]any{
		"ticket_id": ticketID,
		"message":   strings.TrimSpace(text),
	}

	response, err := client.do(ctx, http.MethodPost, "/send-message", body)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var result mutationResponse
		// Best effort: surface the body-level message when the error
		// payload decodes, the bare status otherwise.
		_ = json.NewDecoder(response.Body).Decode(&result)
		message := result.Message
		if message == "" {
			message = result.Error
		}
		return &StatusError{StatusCode: response.StatusCode, Message: message}
	}
	return nil
}

// SignInResult carries the bearer token and agent profile returned by
// a successful signin.
type SignInResult struct {
	Token    string
	Name     string
	Username string
	Email    string
}

// SignIn authenticates with email and password. This is the one
// unauthenticated call; it never triggers OnAuthRequired.
func (client *Client) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return SignInResult{}, fmt.Errorf("encoding signin request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/auth/signin", bytes.NewReader(body))
	if err != nil {
		return SignInResult{}, fmt.Errorf("building signin request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return SignInResult{}, fmt.Errorf("signin: %w", err)
	}
	defer response.Body.Close()

	var result signinResponse
	decodeErr := json.NewDecoder(response.Body).Decode(&result)
	if response.StatusCode != http.StatusOK || decodeErr != nil || !result.Success || result.Token == "" {
		message := result.Error
		if message == "" {
			message = "signin rejected"
		}
		return SignInResult{}, &StatusError{StatusCode: response.StatusCode, Message: message}
	}

	return SignInResult{
		Token:    result.Token,
		Name:     result.User.Name,
		Username: result.User.Username,
		Email:    result.User.Email,
	}, nil
}

// ComplaintRequest is the escalation form posted to the complaint
// tracking system. Field names mirror the multipart form the tracker
// expects.
type ComplaintRequest struct {
	TicketDisplayCode string // id_ticket_chat: the originating chat ticket's code
	ReporterName      string
	ReporterEmail     string
	ReporterPhone     string
	Location          string
	IssueDate         string // YYYY-MM-DD
	Category          string
	Troubleshoot      string
	Priority          string
	IssueTitle        string
	IssueDescription  string

	// AttachmentName and Attachment optionally add one supporting
	// file to the form.
	AttachmentName string
	Attachment     []byte
}

// CreateComplaint escalates a ticket into the complaint tracker and
// returns the new complaint's id.
func (client *Client) CreateComplaint(ctx context.Context, complaint ComplaintRequest) (string, error) {
	if client.token == "" {
		return "", client.authRequired(0)
	}

	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)
	fields := map[string]string{
		"id_ticket_chat":    complaint.TicketDisplayCode,
		"reporter_name":     complaint.ReporterName,
		"reporter_email":    complaint.ReporterEmail,
		"reporter_phone":    complaint.ReporterPhone,
		"location":          complaint.Location,
		"issue_date":        complaint.IssueDate,
		"category":          complaint.Category,
		"troubleshoot":      complaint.Troubleshoot,
		"priority":          complaint.Priority,
		"issue_title":       complaint.IssueTitle,
		"issue_description": complaint.IssueDescription,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", fmt.Errorf("building complaint form: %w", err)
		}
	}
	if len(complaint.Attachment) > 0 {
		part, err := form.CreateFormFile("file", complaint.AttachmentName)
		if err != nil {
			return "", fmt.Errorf("building complaint attachment: %w", err)
		}
		if _, err := part.Write(complaint.Attachment); err != nil {
			return "", fmt.Errorf("writing complaint attachment: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finalizing complaint form: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/complaints", &buffer)
	if err != nil {
		return "", fmt.Errorf("building complaint request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.token)
	request.Header.Set("Content-Type", form.FormDataContentType())

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("POST /complaints: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
		return "", client.authRequired(response.StatusCode)
	}

	var result complaintResponse
	decodeErr := json.NewDecoder(response.Body).Decode(&result)
	if response.StatusCode < 200 || response.StatusCode > 299 || decodeErr != nil || result.ComplaintTicketID == "" {
		return "", &StatusError{StatusCode: response.StatusCode, Message: result.Error}
	}
	return result.ComplaintTicketID, nil
}
