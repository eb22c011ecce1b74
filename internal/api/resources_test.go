package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamadatarousan/ticket-manager/internal/credstore"
)

func TestListTickets(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/tickets", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "open", req.URL.Query().Get("status"))
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 1, "title": "Broken login form", "status": "open", "priority": "high"},
				{"id": 2, "title": "Slow dashboard", "status": "open", "priority": "low"},
			},
			"total": 12, "page": 2, "per_page": 2, "total_pages": 6,
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	page, err := client.ListTickets(context.Background(), TicketFilter{Status: "open", Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Broken login form", page.Items[0].Title)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 6, page.TotalPages)
}

func TestCreateTicketWrapsPayload(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/tickets", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)

		// mutation payloads arrive wrapped under the singular key
		var wrapped struct {
			Ticket TicketInput `json:"ticket"`
		}
		require.NoError(t, json.Unmarshal(body, &wrapped))
		assert.Equal(t, "Broken login form", wrapped.Ticket.Title)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"ticket": map[string]any{
				"id": 7, "title": wrapped.Ticket.Title, "status": "open", "priority": "high",
			},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	ticket, err := client.CreateTicket(context.Background(), TicketInput{Title: "Broken login form", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), ticket.ID)
	assert.Equal(t, "open", ticket.Status)
}

func TestGetTicketUnwrapsSingularKey(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/tickets/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "7", chi.URLParam(req, "id"))
		json.NewEncoder(w).Encode(map[string]any{
			"ticket": map[string]any{"id": 7, "title": "Broken login form", "status": "open", "priority": "high"},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	ticket, err := client.GetTicket(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Broken login form", ticket.Title)
}

func TestDeleteTicket(t *testing.T) {
	var deleted string
	r := chi.NewRouter()
	r.Delete("/tickets/{id}", func(w http.ResponseWriter, req *http.Request) {
		deleted = chi.URLParam(req, "id")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	require.NoError(t, client.DeleteTicket(context.Background(), 7))
	assert.Equal(t, "7", deleted)
}

func TestCommentsRoundTrip(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/tickets/{id}/comments", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 1, "ticket_id": 7, "author_id": 1, "author": "Alice", "body": "On it"},
			},
			"total": 1, "page": 1, "per_page": 25, "total_pages": 1,
		})
	})
	r.Post("/tickets/{id}/comments", func(w http.ResponseWriter, req *http.Request) {
		var wrapped struct {
			Comment CommentInput `json:"comment"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&wrapped))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"comment": map[string]any{"id": 2, "ticket_id": 7, "author_id": 1, "body": wrapped.Comment.Body},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())

	page, err := client.ListComments(context.Background(), 7, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "On it", page.Items[0].Body)

	comment, err := client.AddComment(context.Background(), 7, CommentInput{Body: "Fixed in #8"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.ID)
	assert.Equal(t, "Fixed in #8", comment.Body)
}

func TestDashboardAndSettings(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/dashboard/stats", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"stats": map[string]any{
				"open_tickets": 4, "in_progress_tickets": 2, "closed_tickets": 10,
				"total_projects": 3, "total_users": 5,
				"tickets_by_priority": map[string]int{"high": 2, "low": 4},
			},
		})
	})
	r.Get("/settings", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"settings": map[string]any{"site_name": "Helpdesk", "notifications_enabled": true},
		})
	})
	r.Put("/settings", func(w http.ResponseWriter, req *http.Request) {
		var wrapped struct {
			Settings Settings `json:"settings"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&wrapped))
		json.NewEncoder(w).Encode(map[string]any{"settings": wrapped.Settings})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.OpenTickets)
	assert.Equal(t, 2, stats.TicketsByPriority["high"])

	settings, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Helpdesk", settings.SiteName)

	updated, err := client.UpdateSettings(context.Background(), Settings{SiteName: "Support", NotificationsEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, "Support", updated.SiteName)
}
