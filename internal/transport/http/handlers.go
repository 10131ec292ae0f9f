package http

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"linkshortener/internal/domain"
	"linkshortener/internal/service"
)

// Handler holds the HTTP handlers for the link shortener
type Handler struct {
	links      service.LinkService
	forwardURL string
}

// NewHandler creates a new HTTP handler. forwardURL is the public base of
// the redirect server, used to build fully-qualified shortened URLs.
func NewHandler(links service.LinkService, forwardURL string) *Handler {
	return &Handler{
		links:      links,
		forwardURL: strings.TrimSuffix(forwardURL, "/"),
	}
}

// CreateLink handles POST /links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Invalid JSON in create link request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusUnprocessableEntity)
		return
	}

	if req.TargetURL == "" {
		log.Printf("[ERROR] Empty target URL in create link request")
		http.Error(w, "targetUrl is required", http.StatusUnprocessableEntity)
		return
	}

	link, err := h.links.CreateLink(r.Context(), req)
	if err != nil {
		log.Printf("[ERROR] Failed to create link for '%s': %v", req.TargetURL, err)
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(h.withShortenedURL(link)); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// ListLinks handles GET /links
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.GetAllLinks(r.Context())
	if err != nil {
		log.Printf("Error getting all links: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := lo.Map(links, func(link *domain.Link, _ int) *domain.Link {
		return h.withShortenedURL(link)
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// DeleteLink handles DELETE /links/{slug}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request, slug string) {
	if err := h.links.DeleteLink(r.Context(), slug); err != nil {
		log.Printf("[ERROR] Failed to delete link '%s': %v", slug, err)
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LinkClicks handles GET /links/{slug}/clicks
func (h *Handler) LinkClicks(w http.ResponseWriter, r *http.Request, slug string) {
	clicks, err := h.links.GetLinkClicks(r.Context(), slug)
	if err != nil {
		log.Printf("[ERROR] Failed to get clicks for '%s': %v", slug, err)
		h.writeServiceError(w, err)
		return
	}

	if clicks == nil {
		clicks = []*domain.ClickEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(clicks); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Status handles GET /status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ok"))
}

// Redirect handles GET /{slug} on the redirect server. A hit answers with
// a 307 and a Referrer-Policy that keeps the shortener out of the
// destination's referrer logs; the click is recorded before the redirect
// is returned.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(r.URL.Path, "/")
	if slug == "" {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}

	targetURL, err := h.links.ResolveLink(r.Context(), slug, clickMetaFromRequest(r))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] Failed to resolve '%s': %v", slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Referrer-Policy", "no-referrer")
	http.Redirect(w, r, targetURL, http.StatusTemporaryRedirect)
}

// LinksHandler handles both POST /links and GET /links
func (h *Handler) LinksHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateLink(w, r)
	case http.MethodGet:
		h.ListLinks(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// LinksDetailHandler handles DELETE /links/{slug} and GET /links/{slug}/clicks
func (h *Handler) LinksDetailHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/links/")
	if rest == "" {
		http.Error(w, "Slug is required", http.StatusNotFound)
		return
	}

	if slug, ok := strings.CutSuffix(rest, "/clicks"); ok && r.Method == http.MethodGet {
		h.LinkClicks(w, r, slug)
		return
	}

	if r.Method == http.MethodDelete {
		h.DeleteLink(w, r, rest)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// withShortenedURL returns a copy of the link carrying its fully-qualified
// shortened URL
func (h *Handler) withShortenedURL(link *domain.Link) *domain.Link {
	decorated := *link
	decorated.ShortenedURL = h.forwardURL + "/" + link.Slug
	return &decorated
}

// writeServiceError maps service errors to HTTP status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		http.Error(w, "Link not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrSlugExists):
		http.Error(w, "Slug already exists", http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrInvalidTargetURL):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// clickMetaFromRequest extracts requester metadata for click recording
func clickMetaFromRequest(r *http.Request) domain.ClickMeta {
	clientIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		clientIP = host
	}
	if clientIP == "" {
		clientIP = "unknown"
	}

	return domain.ClickMeta{
		ClientIP:      clientIP,
		ClientBrowser: r.UserAgent(),
	}
}
