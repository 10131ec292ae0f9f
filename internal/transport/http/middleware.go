package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "linkshortener_http_requests_total",
	Help: "Total number of HTTP requests by server, method, and status code",
}, []string{"server", "method", "code"})

// statusResponseWriter wraps http.ResponseWriter to capture the status code
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs each request with its status and duration when
// verbose logging is enabled
func LoggingMiddleware(verbose bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !verbose {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		log.Printf("[HTTP] %s %s from %s -> %d in %v", r.Method, r.URL.Path, r.RemoteAddr, sw.statusCode, time.Since(start))
	})
}

// MetricsMiddleware counts requests per server, method, and status code
func MetricsMiddleware(server string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		requestsTotal.WithLabelValues(server, r.Method, strconv.Itoa(sw.statusCode)).Inc()
	})
}

// CORSMiddleware answers preflight requests and sets the CORS headers for
// the management API. allowedOrigins is a comma-separated list, or "*" to
// allow everything.
func CORSMiddleware(allowedOrigins string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// originAllowed checks an origin against the configured allow list
func originAllowed(allowedOrigins, origin string) bool {
	if allowedOrigins == "*" {
		return true
	}
	for _, allowed := range strings.Split(allowedOrigins, ",") {
		if allowed != "" && allowed == origin {
			return true
		}
	}
	return false
}
