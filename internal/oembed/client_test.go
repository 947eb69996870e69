package oembed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc123", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":       "  Crossover Drills  ",
			"author_name": "Coach",
		})
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	title, err := c.FetchTitle(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Crossover Drills", title)
}

func TestClient_FetchTitle_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}},
		{"empty title", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"title":""}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.Client(), server.URL)
			title, err := c.FetchTitle(context.Background(), "abc123")
			assert.Error(t, err)
			assert.Empty(t, title)
		})
	}
}

func TestClient_FetchTitle_EmptyTitleIsErrNoTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"   "}`))
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), server.URL).FetchTitle(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestClient_FetchTitle_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.Client(), server.URL).FetchTitle(ctx, "abc123")
	assert.Error(t, err)
}

func TestClient_FetchTitle_RequiresID(t *testing.T) {
	_, err := NewClient(nil, "").FetchTitle(context.Background(), "")
	assert.Error(t, err)
}
