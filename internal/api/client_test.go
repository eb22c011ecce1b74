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

func TestDoRequestAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotRequestID = req.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	store := credstore.NewMemStore()
	require.NoError(t, store.Save("tok-1"))
	client := NewClient(srv.URL, store)

	_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodGet, Path: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestDoRequestOmitsBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())
	_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodGet, Path: "ping"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestErrorMapping(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/boom", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	})
	r.Post("/invalid", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string]string{"identifier": "has already been taken"},
		})
	})
	r.Get("/secret", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, credstore.NewMemStore())

	t.Run("5xx maps to unhandled with server copy", func(t *testing.T) {
		_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodGet, Path: "boom"})
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrUnhandled)
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("422 maps to validation rejected with flattened fields", func(t *testing.T) {
		_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodPost, Path: "invalid"})
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrValidationRejected)
		assert.Equal(t, "identifier: has already been taken", err.Error())
	})

	t.Run("401 on a domain call maps to session expired and fires the hook", func(t *testing.T) {
		var fired atomic.Int32
		client.OnUnauthorized(func() { fired.Add(1) })
		defer client.OnUnauthorized(nil)

		_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodGet, Path: "secret"})
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrSessionExpired)
		assert.Equal(t, int32(1), fired.Load())
	})

	t.Run("401 on an auth-flow call maps to authentication rejected without the hook", func(t *testing.T) {
		var fired atomic.Int32
		client.OnUnauthorized(func() { fired.Add(1) })
		defer client.OnUnauthorized(nil)

		_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodGet, Path: "secret", AuthFlow: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrAuthenticationRejected)
		assert.Equal(t, int32(0), fired.Load())
	})
}

func TestNetworkFailureIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, credstore.NewMemStore())
	_, err := client.DoRequest(context.Background(), RequestOptions{Method: http.MethodPost, Path: "auth/login", AuthFlow: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNetworkUnavailable)
	assert.Contains(t, err.Error(), "cannot reach server")
	assert.NotErrorIs(t, err, session.ErrAuthenticationRejected)
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "boom", errorMessage(500, []byte(`{"error":"boom"}`)))
	assert.Equal(t, "nope", errorMessage(500, []byte(`{"message":"nope"}`)))
	assert.Equal(t, "secret: too weak", errorMessage(422, []byte(`{"errors":{"secret":"too weak"}}`)))
	// unparseable bodies fall back to the status text
	assert.Equal(t, http.StatusText(http.StatusBadGateway), errorMessage(http.StatusBadGateway, []byte(`<html>`)))
}
