package handlers

import (
	"net/http"
	"time"
)

// Version is the service version reported by the version endpoint.
const Version = "1.0.0"

// Health reports liveness. The service holds no connections worth probing in
// its default configuration, so this is a static check.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// VersionInfo reports minimal version info.
func VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
