package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshortener/internal/domain"
)

func TestClient_CreateLink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/links", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req domain.CreateLinkRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://example.com", req.TargetURL)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Link{
				Slug:         "ab12",
				TargetURL:    req.TargetURL,
				ShortenedURL: "http://localhost:3001/ab12",
				CreatedAt:    time.Now().UTC(),
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		link, err := client.CreateLink(context.Background(), domain.CreateLinkRequest{TargetURL: "https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, "ab12", link.Slug)
		assert.Equal(t, "http://localhost:3001/ab12", link.ShortenedURL)
	})

	t.Run("server rejects request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Slug already exists", http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		link, err := client.CreateLink(context.Background(), domain.CreateLinkRequest{Slug: "mine", TargetURL: "https://example.com"})
		require.Error(t, err)
		assert.Nil(t, link)
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://localhost:1")
		_, err := client.CreateLink(context.Background(), domain.CreateLinkRequest{TargetURL: "https://example.com"})
		assert.Error(t, err)
	})
}

func TestClient_ListLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/links", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]*domain.Link{
			{Slug: "aaaa", TargetURL: "https://example1.com", Clicks: 2},
			{Slug: "bbbb", TargetURL: "https://example2.com"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	links, err := client.ListLinks(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "aaaa", links[0].Slug)
	assert.Equal(t, int64(2), links[0].Clicks)
}

func TestClient_DeleteLink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/links/abcd", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		assert.NoError(t, client.DeleteLink(context.Background(), "abcd"))
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Link not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.DeleteLink(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'nope' not found")
	})
}

func TestClient_GetLinkClicks(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/links/abcd/clicks", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]*domain.ClickEvent{
				{Slug: "abcd", Datetime: time.Now().UTC(), ClientIPAddress: "10.0.0.1", ClientBrowser: "test-agent"},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		clicks, err := client.GetLinkClicks(context.Background(), "abcd")
		require.NoError(t, err)
		require.Len(t, clicks, 1)
		assert.Equal(t, "10.0.0.1", clicks[0].ClientIPAddress)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Link not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		clicks, err := client.GetLinkClicks(context.Background(), "nope")
		require.Error(t, err)
		assert.Nil(t, clicks)
	})
}
