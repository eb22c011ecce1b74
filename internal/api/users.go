package api

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// User is an account as the collaborator returns it on the user-management
// endpoints. Distinct from session.Identity, which is the authenticated
// principal's own snapshot.
type User struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      session.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
}

// UserInput is the writable subset of a user.
type UserInput struct {
	Name  string       `json:"name,omitempty"`
	Email string       `json:"email,omitempty"`
	Role  session.Role `json:"role,omitempty"`
}

// UserPage is a decoded page of users.
type UserPage struct {
	Items      []User
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// ListUsers fetches a paginated user list.
func (c *Client) ListUsers(ctx context.Context, pageNum, perPage int) (UserPage, error) {
	query := map[string]string{}
	if pageNum > 0 {
		query["page"] = strconv.Itoa(pageNum)
	}
	if perPage > 0 {
		query["per_page"] = strconv.Itoa(perPage)
	}
	page, err := c.ListResources(ctx, "users", query)
	if err != nil {
		return UserPage{}, err
	}
	var items []User
	if err := json.Unmarshal(page.Items, &items); err != nil {
		return UserPage{}, session.ErrUnhandled.Msg("failed to parse user list: " + err.Error())
	}
	return UserPage{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}, nil
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	raw, err := c.GetResource(ctx, "users", id, "user")
	if err != nil {
		return User{}, err
	}
	return decodeUser(raw)
}

// UpdateUser updates a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (User, error) {
	raw, err := c.UpdateResource(ctx, "users", id, "user", input)
	if err != nil {
		return User{}, err
	}
	return decodeUser(raw)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.DeleteResource(ctx, "users", id)
}

func decodeUser(raw json.RawMessage) (User, error) {
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, session.ErrUnhandled.Msg("failed to parse user: " + err.Error())
	}
	return user, nil
}
