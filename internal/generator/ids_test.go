package generator

import (
	"errors"
	"regexp"
	"testing"

	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/utils"
)

func TestIDAllocatorUniqueness(t *testing.T) {
	format := IDFormat{Prefix: "cust_", Style: config.IDStyleNumeric, Width: 8}
	alloc, err := NewIDAllocator("cust_id", format, utils.NewRandom(42), 50000)
	if err != nil {
		t.Fatalf("NewIDAllocator: %v", err)
	}

	seen := make(map[string]bool, 50000)
	for i := 0; i < 50000; i++ {
		id := alloc.Next()
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
	if alloc.Issued() != 50000 {
		t.Errorf("Issued() = %d, want 50000", alloc.Issued())
	}
}

func TestIDFormatNumeric(t *testing.T) {
	format := IDFormat{Prefix: "cust_", Style: config.IDStyleNumeric, Width: 8}
	rng := utils.NewRandom(42)

	pattern := regexp.MustCompile(`^cust_\d{8}$`)
	for i := 0; i < 1000; i++ {
		id := format.Render(rng)
		if !pattern.MatchString(id) {
			t.Fatalf("identifier %q does not match cust_ + 8 digits", id)
		}
	}
}

func TestIDFormatToken(t *testing.T) {
	format := IDFormat{Prefix: "CUST_", Style: config.IDStyleToken, Width: 10}
	rng := utils.NewRandom(42)

	pattern := regexp.MustCompile(`^CUST_[A-Za-z0-9]{5}$`)
	for i := 0; i < 1000; i++ {
		id := format.Render(rng)
		if len(id) != 10 {
			t.Fatalf("identifier %q is not 10 characters", id)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("identifier %q does not match CUST_ + 5 alphanumerics", id)
		}
	}
}

func TestIDAllocatorExhaustion(t *testing.T) {
	// 2-digit numeric identifiers address only 90 values.
	format := IDFormat{Prefix: "x_", Style: config.IDStyleNumeric, Width: 2}

	_, err := NewIDAllocator("x", format, utils.NewRandom(42), 1000)
	if err == nil {
		t.Fatal("expected exhaustion error for 1000 ids in a 2-digit space")
	}
	var exhausted *ExhaustionError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error %v is not an ExhaustionError", err)
	}
	if exhausted.Capacity != 90 {
		t.Errorf("Capacity = %d, want 90", exhausted.Capacity)
	}
	if exhausted.Requested != 1000 {
		t.Errorf("Requested = %d, want 1000", exhausted.Requested)
	}
}

func TestIDAllocatorFullSpace(t *testing.T) {
	// Requesting exactly the capacity must terminate: the redraw loop finds
	// every value eventually.
	format := IDFormat{Prefix: "x_", Style: config.IDStyleNumeric, Width: 2}
	alloc, err := NewIDAllocator("x", format, utils.NewRandom(42), 90)
	if err != nil {
		t.Fatalf("NewIDAllocator: %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 90; i++ {
		seen[alloc.Next()] = true
	}
	if len(seen) != 90 {
		t.Errorf("allocated %d distinct ids, want 90", len(seen))
	}
}

func TestIDAllocatorReproducible(t *testing.T) {
	format := IDFormat{Prefix: "acc_", Style: config.IDStyleNumeric, Width: 14}

	a1, _ := NewIDAllocator("a", format, utils.NewRandom(7), 100)
	a2, _ := NewIDAllocator("a", format, utils.NewRandom(7), 100)
	for i := 0; i < 100; i++ {
		if id1, id2 := a1.Next(), a2.Next(); id1 != id2 {
			t.Fatalf("allocation %d diverged: %q vs %q", i, id1, id2)
		}
	}
}
