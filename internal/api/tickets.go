package api

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Ticket is a ticket as the collaborator returns it.
type Ticket struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	ProjectID   int64     `json:"project_id,omitempty"`
	AssigneeID  *int64    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// TicketInput is the writable subset of a ticket.
type TicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	ProjectID   int64  `json:"project_id,omitempty"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
}

// TicketFilter narrows and pages a ticket list.
type TicketFilter struct {
	Status   string
	Priority string
	Assignee string
	Page     int
	PerPage  int
}

func (f TicketFilter) query() map[string]string {
	q := map[string]string{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.Assignee != "" {
		q["assignee"] = f.Assignee
	}
	if f.Page > 0 {
		q["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		q["per_page"] = strconv.Itoa(f.PerPage)
	}
	return q
}

// TicketPage is a decoded page of tickets.
type TicketPage struct {
	Items      []Ticket
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// ListTickets fetches a filtered, paginated ticket list.
func (c *Client) ListTickets(ctx context.Context, filter TicketFilter) (TicketPage, error) {
	page, err := c.ListResources(ctx, "tickets", filter.query())
	if err != nil {
		return TicketPage{}, err
	}
	var items []Ticket
	if err := json.Unmarshal(page.Items, &items); err != nil {
		return TicketPage{}, session.ErrUnhandled.Msg("failed to parse ticket list: " + err.Error())
	}
	return TicketPage{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}, nil
}

// GetTicket fetches a single ticket.
func (c *Client) GetTicket(ctx context.Context, id int64) (Ticket, error) {
	raw, err := c.GetResource(ctx, "tickets", id, "ticket")
	if err != nil {
		return Ticket{}, err
	}
	return decodeTicket(raw)
}

// CreateTicket creates a ticket.
func (c *Client) CreateTicket(ctx context.Context, input TicketInput) (Ticket, error) {
	raw, err := c.CreateResource(ctx, "tickets", "ticket", input)
	if err != nil {
		return Ticket{}, err
	}
	return decodeTicket(raw)
}

// UpdateTicket updates a ticket.
func (c *Client) UpdateTicket(ctx context.Context, id int64, input TicketInput) (Ticket, error) {
	raw, err := c.UpdateResource(ctx, "tickets", id, "ticket", input)
	if err != nil {
		return Ticket{}, err
	}
	return decodeTicket(raw)
}

// DeleteTicket deletes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	return c.DeleteResource(ctx, "tickets", id)
}

func decodeTicket(raw json.RawMessage) (Ticket, error) {
	var ticket Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return Ticket{}, session.ErrUnhandled.Msg("failed to parse ticket: " + err.Error())
	}
	return ticket, nil
}
