package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamadatarousan/ticket-manager/internal/credstore"
	"github.com/yamadatarousan/ticket-manager/internal/session"
)

func TestLogin(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Identifier string `json:"identifier"`
			Secret     string `json:"secret"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if body.Secret != "s3cret99" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"identity": map[string]any{
				"id": 1, "name": "Alice", "email": "alice@example.com", "role": "admin",
			},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())

	t.Run("success returns token and identity", func(t *testing.T) {
		res, err := client.Login(context.Background(), session.Credentials{
			Identifier: "alice@example.com",
			Secret:     "s3cret99",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok-1", res.Token)
		assert.Equal(t, session.Identity{ID: 1, Name: "Alice", Email: "alice@example.com", Role: session.RoleAdmin}, res.User)
	})

	t.Run("rejection carries the server's copy", func(t *testing.T) {
		_, err := client.Login(context.Background(), session.Credentials{
			Identifier: "user@example.com",
			Secret:     "wrong",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrAuthenticationRejected)
		assert.Equal(t, "invalid credentials", err.Error())
	})
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	r := chi.NewRouter()
	r.Post("/users", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"token":    "tok-2",
			"identity": map[string]any{"id": 2, "name": "Bob", "email": "bob@example.com", "role": "user"},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())

	bad := []session.Registration{
		{Name: "", Identifier: "bob@example.com", Secret: "s3cret99", SecretConfirm: "s3cret99"},
		{Name: "Bob", Identifier: "not-an-email", Secret: "s3cret99", SecretConfirm: "s3cret99"},
		{Name: "Bob", Identifier: "bob@example.com", Secret: "short", SecretConfirm: "short"},
		{Name: "Bob", Identifier: "bob@example.com", Secret: "s3cret99", SecretConfirm: "different99"},
	}
	for _, reg := range bad {
		_, err := client.Register(context.Background(), reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrValidationRejected)
	}
	// every rejection happened before any network call
	assert.Equal(t, int32(0), hits.Load())

	res, err := client.Register(context.Background(), session.Registration{
		Name:          "Bob",
		Identifier:    "bob@example.com",
		Secret:        "s3cret99",
		SecretConfirm: "s3cret99",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", res.Token)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRegisterServerRejection(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string]string{"identifier": "has already been taken"},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	_, err := client.Register(context.Background(), session.Registration{
		Name:          "Bob",
		Identifier:    "bob@example.com",
		Secret:        "s3cret99",
		SecretConfirm: "s3cret99",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrValidationRejected)
	assert.Equal(t, "identifier: has already been taken", err.Error())
}

func TestMe(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/auth/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"identity": map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com", "role": "admin"},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	store := credstore.NewMemStore()
	client := NewClient(srv.URL, store)

	t.Run("rejected credential maps to session expired", func(t *testing.T) {
		require.NoError(t, store.Save("tok-stale"))
		_, err := client.Me(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("valid credential returns identity", func(t *testing.T) {
		require.NoError(t, store.Save("tok-1"))
		id, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, session.RoleAdmin, id.Role)
		assert.Equal(t, int64(1), id.ID)
	})
}
