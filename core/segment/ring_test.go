package segment

import "testing"

func TestRingKeepsAllSamplesBelowCapacity(t *testing.T) {
	r := newRing(8)
	r.write([]float32{1, 2, 3})

	if r.size() != 3 {
		t.Fatalf("expected 3 buffered samples, got %d", r.size())
	}
	out := r.since(0)
	if len(out) != 3 || out[0] != 1 || out[2] != 3 {
		t.Fatalf("unexpected buffer contents: %v", out)
	}
}

func TestRingOverwritesOldest(t *testing.T) {
	r := newRing(4)
	r.write([]float32{1, 2, 3, 4, 5, 6})

	if r.size() != 4 {
		t.Fatalf("expected ring to stay at capacity, got %d", r.size())
	}
	out := r.since(0)
	if len(out) != 4 || out[0] != 3 || out[3] != 6 {
		t.Fatalf("expected the newest four samples, got %v", out)
	}
}

func TestRingSinceClampsOverwrittenPositions(t *testing.T) {
	r := newRing(4)
	r.write([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	// Position 1 was overwritten long ago; the read clamps to the oldest
	// sample still present rather than returning stale data.
	out := r.since(1)
	if len(out) != 4 || out[0] != 7 {
		t.Fatalf("expected clamped read of newest samples, got %v", out)
	}
}

func TestRingSincePastEnd(t *testing.T) {
	r := newRing(4)
	r.write([]float32{1, 2})
	if out := r.since(5); out != nil {
		t.Fatalf("expected nil for a future position, got %v", out)
	}
}
