package idgen

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUID(t *testing.T) {
	t.Parallel()

	var gen UUID

	id, err := uuid.Parse(gen.Generate())
	if err != nil {
		t.Fatalf("expected a valid uuid: %v", err)
	}
	if id.Version() != 4 {
		t.Fatalf("expected version 4, got %d", id.Version())
	}

	fp, err := uuid.Parse(gen.GenerateFingerprint())
	if err != nil {
		t.Fatalf("expected a valid uuid: %v", err)
	}
	if fp.Version() != 7 {
		t.Fatalf("expected version 7, got %d", fp.Version())
	}

	if gen.Generate() == gen.Generate() {
		t.Fatalf("expected distinct ids")
	}
}
