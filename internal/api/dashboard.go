package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// DashboardStats is the summary the dashboard screen renders.
type DashboardStats struct {
	OpenTickets       int            `json:"open_tickets"`
	InProgressTickets int            `json:"in_progress_tickets"`
	ClosedTickets     int            `json:"closed_tickets"`
	TotalProjects     int            `json:"total_projects"`
	TotalUsers        int            `json:"total_users"`
	TicketsByPriority map[string]int `json:"tickets_by_priority,omitempty"`
}

// DashboardStats fetches the dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   "dashboard/stats",
	})
	if err != nil {
		return DashboardStats{}, err
	}
	unwrapped, err := unwrap(raw, "stats")
	if err != nil {
		return DashboardStats{}, err
	}
	var stats DashboardStats
	if err := json.Unmarshal(unwrapped, &stats); err != nil {
		return DashboardStats{}, session.ErrUnhandled.Msg("failed to parse dashboard stats: " + err.Error())
	}
	return stats, nil
}
