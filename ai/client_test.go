package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"therapeutic-assistant/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(baseURL, 2*time.Second, logger.New(logger.Config{Level: "error"}))
}

func TestGetReplyReturnsModelText(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{Response: "Bonjour, comment allez-vous ?", Status: "success"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	reply := client.GetReply(context.Background(), "Bonjour")

	assert.Equal(t, "Bonjour, comment allez-vous ?", reply)
	assert.Equal(t, "Bonjour", got.Message)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.Equal(t, defaultTemperature, got.Temperature)
}

func TestGetReplyFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.Equal(t, FallbackUnavailable, client.GetReply(context.Background(), "Bonjour"))
}

func TestGetReplyFallsBackOnEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Response: "", Status: "success"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.Equal(t, FallbackUnavailable, client.GetReply(context.Background(), "Bonjour"))
}

func TestGetReplyFallsBackWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL)
	assert.Equal(t, FallbackError, client.GetReply(context.Background(), "Bonjour"))
}

func TestGetReplyNeverPanicsAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	// Enough calls to trip the breaker; every one still yields fallback text
	for i := 0; i < 10; i++ {
		assert.Equal(t, FallbackUnavailable, client.GetReply(context.Background(), "Bonjour"))
	}
}

func TestIsAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer healthy.Close()

	client := newTestClient(t, healthy.URL)
	assert.True(t, client.IsAvailable(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	client = newTestClient(t, down.URL)
	assert.False(t, client.IsAvailable(context.Background()))
}
