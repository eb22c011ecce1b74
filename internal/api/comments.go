package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Comment is a ticket comment as the collaborator returns it.
type Comment struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	AuthorID  int64     `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CommentInput is the writable subset of a comment.
type CommentInput struct {
	Body string `json:"body"`
}

// CommentPage is a decoded page of comments.
type CommentPage struct {
	Items      []Comment
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

func commentsPath(ticketID int64) string {
	return "tickets/" + strconv.FormatInt(ticketID, 10) + "/comments"
}

// ListComments fetches the comments on a ticket.
func (c *Client) ListComments(ctx context.Context, ticketID int64, pageNum, perPage int) (CommentPage, error) {
	query := map[string]string{}
	if pageNum > 0 {
		query["page"] = strconv.Itoa(pageNum)
	}
	if perPage > 0 {
		query["per_page"] = strconv.Itoa(perPage)
	}
	page, err := c.ListResources(ctx, commentsPath(ticketID), query)
	if err != nil {
		return CommentPage{}, err
	}
	var items []Comment
	if err := json.Unmarshal(page.Items, &items); err != nil {
		return CommentPage{}, session.ErrUnhandled.Msg("failed to parse comment list: " + err.Error())
	}
	return CommentPage{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}, nil
}

// AddComment posts a comment to a ticket.
func (c *Client) AddComment(ctx context.Context, ticketID int64, input CommentInput) (Comment, error) {
	body, err := wrap("comment", input)
	if err != nil {
		return Comment{}, err
	}
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   commentsPath(ticketID),
		Body:   body,
	})
	if err != nil {
		return Comment{}, err
	}
	unwrapped, err := unwrap(raw, "comment")
	if err != nil {
		return Comment{}, err
	}
	var comment Comment
	if err := json.Unmarshal(unwrapped, &comment); err != nil {
		return Comment{}, session.ErrUnhandled.Msg("failed to parse comment: " + err.Error())
	}
	return comment, nil
}
