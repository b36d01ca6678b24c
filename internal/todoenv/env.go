// Package todoenv reads environment overrides for the todo store.
package todoenv

import (
	"os"
	"strings"
)

const (
	// KeyEnvVar selects the key the list is stored under.
	KeyEnvVar = "TASKLIST_KEY"

	// BackendEnvVar selects the storage backend.
	BackendEnvVar = "TASKLIST_BACKEND"
)

// Key returns the store key set in the environment, or "".
func Key() string {
	return strings.TrimSpace(os.Getenv(KeyEnvVar))
}

// Backend returns the backend set in the environment, or "".
func Backend() string {
	return strings.TrimSpace(os.Getenv(BackendEnvVar))
}
