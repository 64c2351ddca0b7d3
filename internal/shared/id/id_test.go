package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	tests := []struct {
		prefix string
	}{
		{"term"},
		{"req"},
	}

	for _, tt := range tests {
		id := gen.GenerateWithPrefix(tt.prefix)

		if !strings.HasPrefix(id, tt.prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", tt.prefix, id)
		}

		// Verify ULID part is valid
		parts := strings.Split(id, "_")
		if len(parts) != 2 {
			t.Errorf("Prefixed ID should have format 'prefix_ulid', got: %s", id)
		}

		if !IsValid(parts[1]) {
			t.Errorf("ULID part should be valid: %s", parts[1])
		}
	}
}

func TestTypedIDGeneration(t *testing.T) {
	sessID := NewSessionID()
	reqID := NewRequestID()

	if !strings.HasPrefix(string(sessID), "term_") {
		t.Errorf("SessionID should start with 'term_', got: %s", sessID)
	}

	if !strings.HasPrefix(string(reqID), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}
}

func TestIsValid(t *testing.T) {
	gen := NewGenerator()

	validID := gen.GenerateString()
	if !IsValid(validID) {
		t.Error("Generated ULID should be valid")
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 16
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := gen.GenerateString()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate ID generated: %s", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d unique IDs, got %d", goroutines*perGoroutine, len(seen))
	}
}
