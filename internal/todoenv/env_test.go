package todoenv

import "testing"

func TestKey(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	if got := Key(); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}

	t.Setenv(KeyEnvVar, "  groceries ")
	if got := Key(); got != "groceries" {
		t.Fatalf("expected groceries, got %q", got)
	}
}

func TestBackend(t *testing.T) {
	t.Setenv(BackendEnvVar, "redis")
	if got := Backend(); got != "redis" {
		t.Fatalf("expected redis, got %q", got)
	}
}
