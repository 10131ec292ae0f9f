package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkshortener/internal/domain"
	"linkshortener/internal/service/mocks"
)

func TestHandler_CreateLink(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.LinkService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful creation",
			requestBody: domain.CreateLinkRequest{
				TargetURL: "https://example.com",
			},
			setupMocks: func(links *mocks.LinkService) {
				links.On("CreateLink", mock.Anything, domain.CreateLinkRequest{TargetURL: "https://example.com"}).
					Return(&domain.Link{
						Slug:      "ab12",
						TargetURL: "https://example.com",
						CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"shortenedUrl":"http://localhost:3001/ab12"`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not json",
			setupMocks:     func(links *mocks.LinkService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Invalid JSON",
		},
		{
			name:           "empty target URL",
			requestBody:    domain.CreateLinkRequest{},
			setupMocks:     func(links *mocks.LinkService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "targetUrl is required",
		},
		{
			name: "slug conflict",
			requestBody: domain.CreateLinkRequest{
				Slug:      "mine",
				TargetURL: "https://example.com",
			},
			setupMocks: func(links *mocks.LinkService) {
				links.On("CreateLink", mock.Anything, domain.CreateLinkRequest{Slug: "mine", TargetURL: "https://example.com"}).
					Return(nil, domain.ErrSlugExists)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Slug already exists",
		},
		{
			name: "invalid target URL",
			requestBody: domain.CreateLinkRequest{
				TargetURL: "ftp://example.com",
			},
			setupMocks: func(links *mocks.LinkService) {
				links.On("CreateLink", mock.Anything, domain.CreateLinkRequest{TargetURL: "ftp://example.com"}).
					Return(nil, domain.ErrInvalidTargetURL)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "storage error",
			requestBody: domain.CreateLinkRequest{
				TargetURL: "https://example.com",
			},
			setupMocks: func(links *mocks.LinkService) {
				links.On("CreateLink", mock.Anything, domain.CreateLinkRequest{TargetURL: "https://example.com"}).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := &mocks.LinkService{}
			tt.setupMocks(links)

			handler := NewHandler(links, "http://localhost:3001")

			var body bytes.Buffer
			if jsonStr, ok := tt.requestBody.(string); ok {
				body.WriteString(jsonStr)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/links", &body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateLink(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}

			links.AssertExpectations(t)
		})
	}
}

func TestHandler_ListLinks(t *testing.T) {
	links := &mocks.LinkService{}
	links.On("GetAllLinks", mock.Anything).Return([]*domain.Link{
		{Slug: "aaaa", TargetURL: "https://example1.com", Clicks: 3},
		{Slug: "bbbb", TargetURL: "https://example2.com", Clicks: 0},
	}, nil)

	handler := NewHandler(links, "http://localhost:3001/")

	req := httptest.NewRequest(http.MethodGet, "/links", nil)
	w := httptest.NewRecorder()

	handler.ListLinks(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []*domain.Link
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response, 2)

	// Zero-click links appear with a count of zero, and every entry
	// carries its fully-qualified shortened URL
	assert.Equal(t, int64(3), response[0].Clicks)
	assert.Equal(t, int64(0), response[1].Clicks)
	assert.Equal(t, "http://localhost:3001/aaaa", response[0].ShortenedURL)
	assert.Equal(t, "http://localhost:3001/bbbb", response[1].ShortenedURL)

	links.AssertExpectations(t)
}

func TestHandler_DeleteLink(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		setupMocks     func(*mocks.LinkService)
		expectedStatus int
	}{
		{
			name: "successful deletion",
			slug: "abcd",
			setupMocks: func(links *mocks.LinkService) {
				links.On("DeleteLink", mock.Anything, "abcd").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "missing link",
			slug: "nope",
			setupMocks: func(links *mocks.LinkService) {
				links.On("DeleteLink", mock.Anything, "nope").Return(domain.ErrLinkNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := &mocks.LinkService{}
			tt.setupMocks(links)

			handler := NewHandler(links, "http://localhost:3001")

			req := httptest.NewRequest(http.MethodDelete, "/links/"+tt.slug, nil)
			w := httptest.NewRecorder()

			handler.LinksDetailHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			links.AssertExpectations(t)
		})
	}
}

func TestHandler_LinkClicks(t *testing.T) {
	t.Run("existing link", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("GetLinkClicks", mock.Anything, "abcd").Return([]*domain.ClickEvent{
			{Slug: "abcd", Datetime: time.Now(), ClientIPAddress: "10.0.0.1", ClientBrowser: "test-agent"},
		}, nil)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/links/abcd/clicks", nil)
		w := httptest.NewRecorder()

		handler.LinksDetailHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var clicks []*domain.ClickEvent
		require.NoError(t, json.NewDecoder(w.Body).Decode(&clicks))
		require.Len(t, clicks, 1)
		assert.Equal(t, "10.0.0.1", clicks[0].ClientIPAddress)

		links.AssertExpectations(t)
	})

	t.Run("missing link", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("GetLinkClicks", mock.Anything, "nope").Return(nil, domain.ErrLinkNotFound)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/links/nope/clicks", nil)
		w := httptest.NewRecorder()

		handler.LinksDetailHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		links.AssertExpectations(t)
	})

	t.Run("no clicks yet encodes an empty array", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("GetLinkClicks", mock.Anything, "abcd").Return([]*domain.ClickEvent{}, nil)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/links/abcd/clicks", nil)
		w := httptest.NewRecorder()

		handler.LinksDetailHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		links.AssertExpectations(t)
	})
}

func TestHandler_Redirect(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("ResolveLink", mock.Anything, "abcd", domain.ClickMeta{
			ClientIP:      "10.0.0.1",
			ClientBrowser: "test-agent",
		}).Return("https://example.com", nil)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/abcd", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		req.Header.Set("User-Agent", "test-agent")
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "https://example.com", w.Header().Get("Location"))
		assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))

		links.AssertExpectations(t)
	})

	t.Run("miss", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("ResolveLink", mock.Anything, "nope", mock.AnythingOfType("domain.ClickMeta")).
			Return("", domain.ErrLinkNotFound)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Link not found")
		links.AssertExpectations(t)
	})

	t.Run("storage error never redirects", func(t *testing.T) {
		links := &mocks.LinkService{}
		links.On("ResolveLink", mock.Anything, "abcd", mock.AnythingOfType("domain.ClickMeta")).
			Return("", assert.AnError)

		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/abcd", nil)
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		links.AssertExpectations(t)
	})

	t.Run("empty slug", func(t *testing.T) {
		links := &mocks.LinkService{}
		handler := NewHandler(links, "http://localhost:3001")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		links.AssertExpectations(t)
	})
}

func TestHandler_Status(t *testing.T) {
	handler := NewHandler(&mocks.LinkService{}, "http://localhost:3001")

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ok", w.Body.String())
}

func TestHandler_LinksHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHandler(&mocks.LinkService{}, "http://localhost:3001")

	req := httptest.NewRequest(http.MethodPut, "/links", nil)
	w := httptest.NewRecorder()

	handler.LinksHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
