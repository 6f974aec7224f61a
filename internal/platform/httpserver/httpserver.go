package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server. Batch requests can carry several megabytes of
// records, so the body timeouts are looser than the header timeout.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
