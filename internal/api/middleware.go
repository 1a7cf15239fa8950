// Package api implements the portfolio's read-only JSON API and the contact
// endpoint using chi.
package api

import (
	"mime"
	"net/http"
)

// RequireJSON rejects requests whose body is not declared as JSON.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeJSON(w, http.StatusUnsupportedMediaType, errorBody("content type must be application/json"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
