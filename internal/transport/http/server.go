package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkshortener/internal/config"
	"linkshortener/internal/service"
)

// Server represents one of the two HTTP servers: the management API or the
// redirect server
type Server struct {
	name    string
	handler *Handler
	server  *http.Server
	port    string
}

// NewAPIServer creates the management API server. It carries link
// management, click listing, the status probe, and metrics.
func NewAPIServer(links service.LinkService, cfg *config.Config) *Server {
	handler := NewHandler(links, cfg.Server.ForwardURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/links", handler.LinksHandler)
	mux.HandleFunc("/links/", handler.LinksDetailHandler)
	mux.HandleFunc("/status", handler.Status)
	mux.Handle("/metrics", promhttp.Handler())

	var finalHandler http.Handler = mux
	finalHandler = CORSMiddleware(cfg.Server.AllowedOrigins, finalHandler)
	finalHandler = MetricsMiddleware("api", finalHandler)
	finalHandler = LoggingMiddleware(cfg.Logging.Verbose, finalHandler)

	return newServer("API", handler, finalHandler, cfg.Server.APIPort)
}

// NewRedirectServer creates the redirect server. Every path is treated as
// a slug.
func NewRedirectServer(links service.LinkService, cfg *config.Config) *Server {
	handler := NewHandler(links, cfg.Server.ForwardURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.Redirect)

	var finalHandler http.Handler = mux
	finalHandler = MetricsMiddleware("redirect", finalHandler)
	finalHandler = LoggingMiddleware(cfg.Logging.Verbose, finalHandler)

	return newServer("redirect", handler, finalHandler, cfg.Server.RedirectPort)
}

func newServer(name string, handler *Handler, h http.Handler, port string) *Server {
	return &Server{
		name:    name,
		handler: handler,
		port:    port,
		server: &http.Server{
			Addr:         ":" + port,
			Handler:      h,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("%s server starting on port %s", s.name, s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("%s server shutting down...", s.name)
	return s.server.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() string {
	return s.port
}

// Handler returns the server handler (useful for testing)
func (s *Server) Handler() *Handler {
	return s.handler
}
