package api

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Project is a project as the collaborator returns it.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ProjectInput is the writable subset of a project.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ProjectPage is a decoded page of projects.
type ProjectPage struct {
	Items      []Project
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// ListProjects fetches a paginated project list.
func (c *Client) ListProjects(ctx context.Context, pageNum, perPage int) (ProjectPage, error) {
	query := map[string]string{}
	if pageNum > 0 {
		query["page"] = strconv.Itoa(pageNum)
	}
	if perPage > 0 {
		query["per_page"] = strconv.Itoa(perPage)
	}
	page, err := c.ListResources(ctx, "projects", query)
	if err != nil {
		return ProjectPage{}, err
	}
	var items []Project
	if err := json.Unmarshal(page.Items, &items); err != nil {
		return ProjectPage{}, session.ErrUnhandled.Msg("failed to parse project list: " + err.Error())
	}
	return ProjectPage{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, id int64) (Project, error) {
	raw, err := c.GetResource(ctx, "projects", id, "project")
	if err != nil {
		return Project{}, err
	}
	return decodeProject(raw)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (Project, error) {
	raw, err := c.CreateResource(ctx, "projects", "project", input)
	if err != nil {
		return Project{}, err
	}
	return decodeProject(raw)
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, id int64, input ProjectInput) (Project, error) {
	raw, err := c.UpdateResource(ctx, "projects", id, "project", input)
	if err != nil {
		return Project{}, err
	}
	return decodeProject(raw)
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.DeleteResource(ctx, "projects", id)
}

func decodeProject(raw json.RawMessage) (Project, error) {
	var project Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return Project{}, session.ErrUnhandled.Msg("failed to parse project: " + err.Error())
	}
	return project, nil
}
