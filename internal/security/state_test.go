package security

import (
	"strings"
	"testing"
)

func TestGenerateState(t *testing.T) {
	state := GenerateState(7, "linkedin")

	if !strings.HasPrefix(state, "7:linkedin:") {
		t.Errorf("GenerateState() = %q, want prefix %q", state, "7:linkedin:")
	}

	parts := strings.Split(state, ":")
	if len(parts) != 4 {
		t.Fatalf("GenerateState() produced %d segments, want 4", len(parts))
	}
	if parts[3] == "" {
		t.Error("GenerateState() random segment is empty")
	}
}

func TestGenerateStateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		state := GenerateState(7, "x")
		if seen[state] {
			t.Fatalf("duplicate state generated: %s", state)
		}
		seen[state] = true
	}
}
