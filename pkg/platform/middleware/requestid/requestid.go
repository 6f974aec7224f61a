// Package requestid tags each request with an identifier, honoring one
// supplied by an upstream proxy.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"roster/pkg/requestcontext"
)

// Header carries the request ID in and out.
const Header = "X-Request-ID"

const maxInboundLen = 128

// Middleware stores the request ID in the context and echoes it back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := FromRequest(r)
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromRequest returns the inbound request ID, or a fresh one when the header
// is absent or oversized.
func FromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(Header)); v != "" && len(v) <= maxInboundLen {
		return v
	}
	return uuid.NewString()
}
