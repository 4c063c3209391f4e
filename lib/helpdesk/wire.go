// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"time"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// rawTicket is one entry of GET /tickets. The backend originates
// tickets from an inbound chat channel, so the "message" field is the
// full opening message and the list subject is derived from it.
type rawTicket struct {
	ID                   int64  `json:"id"`
	TicketCode           string `json:"id_ticket"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
	Message              string `json:"message"`
	Name                 string `json:"name"`
	Sender               string `json:"sender"`
	Status               string `json:"status"`
	LocationCode         string `json:"location_code"`
	LocationName         string `json:"location_name"`
	ComplaintTicketIDRef string `json:"complaint_ticket_id_ref"`
	ComplaintCategoryRef string `json:"complaint_category_ref"`
}

// rawMessage is one chat turn of GET /ticket/{id}.
type rawMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// rawDetail is the full record of GET /ticket/{id}.
type rawDetail struct {
	rawTicket
	Messages  []rawMessage `json:"messages"`
	AgentName string       `json:"agent_name"`
	Solusi    string       `json:"solusi"`
}

// listResponse is the envelope of GET /tickets.
type listResponse struct {
	Success bool        `json:"success"`
	Data    []rawTicket `json:"data"`
	Error   string      `json:"error"`
}

// mutationResponse is the envelope of PATCH /ticket/status/{id} and
// POST /send-message.
type mutationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// signinResponse is the envelope of POST /auth/signin.
type signinResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Error string `json:"error"`
}

// complaintResponse is the envelope of POST /complaints.
type complaintResponse struct {
	ComplaintTicketID string `json:"complaintTicketId"`
	Error             string `json:"error"`
}

// summaryFromRaw normalizes one raw list entry into the domain form:
// wire status mapped to display status, display code derived when the
// server did not assign one, and the subject cut from the opening
// message's first line.
func summaryFromRaw(raw rawTicket) ticket.Summary {
	displayCode := raw.TicketCode
	if displayCode == "" {
		displayCode = ticket.DeriveDisplayCode(raw.ID, parseTimestamp(raw.CreatedAt))
	}

	summary := ticket.Summary{
		InternalID:      raw.ID,
		DisplayCode:     displayCode,
		Subject:         ticket.SubjectFromMessage(raw.Message),
		ReporterName:    raw.Name,
		ReporterContact: raw.Sender,
		Status:          ticket.StatusFromWire(raw.Status),
		LocationCode:    raw.LocationCode,
		LocationName:    raw.LocationName,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
	}
	if raw.ComplaintTicketIDRef != "" && raw.ComplaintCategoryRef != "" {
		summary.Complaint = &ticket.ComplaintLink{
			ComplaintID: raw.ComplaintTicketIDRef,
			Category:    raw.ComplaintCategoryRef,
		}
	}
	return summary
}

// detailFromRaw normalizes a full ticket record. The chat thread is
// sorted ascending by timestamp — the invariant every consumer relies
// on — and each message is classified as agent- or customer-originated
// by its explicit type tag, falling back to matching the sender
// against the known agent name.
func detailFromRaw(raw rawDetail, agentName string, fallbackUpdatedAt string) ticket.Detail {
	detail := ticket.Detail{
		Summary:        summaryFromRaw(raw.rawTicket),
		AgentName:      raw.AgentName,
		ResolutionNote: raw.Solusi,
	}
	if detail.UpdatedAt == "" {
		detail.UpdatedAt = fallbackUpdatedAt
	}

	detail.Messages = make([]ticket.Message, 0, len(raw.Messages))
	for _, message := range raw.Messages {
		origin := ticket.OriginCustomer
		if message.Type == "agent" || (agentName != "" && message.Sender == agentName) {
			origin = ticket.OriginAgent
		}
		detail.Messages = append(detail.Messages, ticket.Message{
			ID:        message.ID,
			Sender:    message.Sender,
			Text:      message.Text,
			Timestamp: message.Timestamp,
			Origin:    origin,
		})
	}
	ticket.SortMessagesByTimestamp(detail.Messages)
	return detail
}

// parseTimestamp parses a server timestamp, accepting RFC 3339 with or
// without sub-second precision. Returns the zero time on failure so a
// malformed created_at degrades to a TICKET-00010101 code instead of
// failing the whole list transform.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
