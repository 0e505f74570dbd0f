package handlers

import "net/http"

// ErrNotFound is the body text for unmatched routes.
const ErrNotFound = "Not found"

// NotFound answers any path/method combination the router does not serve.
// Registered as a catch-all so the middleware chain (CORS included) still
// runs for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, ErrNotFound)
}
