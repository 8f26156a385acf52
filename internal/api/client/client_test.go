package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Analyze(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/analyze", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "laptop", body["term"])
		assert.Equal(t, true, body["refresh"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"run_id": "run-9", "search_term": "laptop"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Analyze(context.Background(), "laptop", true)
	require.NoError(t, err)
	assert.Equal(t, "run-9", result.RunID)
	assert.Equal(t, "laptop", result.SearchTerm)
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer": "Aim for £480.", "run_id": "run-9"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Chat(context.Background(), "laptop", "what price?")
	require.NoError(t, err)
	assert.Equal(t, "Aim for £480.", resp.Answer)
	assert.Equal(t, "run-9", resp.RunID)
}

func TestClient_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"title": "Bad Gateway"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Analyze(context.Background(), "laptop", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestClient_ServerNotRunning(t *testing.T) {
	t.Parallel()

	// Reserve a port and close it so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.Analyze(context.Background(), "laptop", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}
