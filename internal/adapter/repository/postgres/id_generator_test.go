package postgres

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator(t *testing.T) {
	gen := NewULIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	if _, err := ulid.ParseStrict(first); err != nil {
		t.Fatalf("expected valid ULID, got %q: %v", first, err)
	}
	if first == second {
		t.Fatal("expected unique ids")
	}
	if second < first {
		t.Fatalf("expected monotonic ids, got %s after %s", second, first)
	}
}
