// Bearer API-key middleware for task routes.
// Reads Authorization: Bearer <key> and validates it against the gate.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/devplanhq/plangate/internal/domain/auth"
)

// Auth validates the Bearer credential on every request it wraps.
//
// Flow:
//  1. Read "Authorization: Bearer <key>" header
//  2. Reject if missing or not Bearer scheme → 401
//  3. Check membership via the gate → 401 on unknown key
//  4. Call next handler (no identity is injected; valid keys are equivalent)
func Auth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractBearerKey(r)
			if key == "" {
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}
			if err := gate.Authenticate(key); err != nil {
				writeUnauthorized(w, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerKey extracts the key from "Authorization: Bearer <key>".
// Returns empty string if the header is missing, the scheme is wrong, or
// the key is empty.
func extractBearerKey(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	// Must start with "Bearer " (case-sensitive per RFC 7235)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// writeUnauthorized writes a 401 JSON response, consistent with the
// handlers package error format.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
