package scan

import (
	"math"
	"testing"
)

func TestGCProfileUniformSequence(t *testing.T) {
	profile := GCProfile([]byte("GCGCGCGCGC"), 4)
	for i, v := range profile {
		if v != 1 {
			t.Errorf("position %d: expected 1, got %v", i, v)
		}
	}

	profile = GCProfile([]byte("ATATATATAT"), 4)
	for i, v := range profile {
		if v != 0 {
			t.Errorf("position %d: expected 0, got %v", i, v)
		}
	}
}

func TestGCProfileMixedSequence(t *testing.T) {
	// Alternating strong/weak bases: every full window averages to one half.
	profile := GCProfile([]byte("GAGAGAGAGAGAGAGA"), 4)
	for i := 2; i < len(profile)-2; i++ {
		if profile[i] != 0.5 {
			t.Errorf("position %d: expected 0.5, got %v", i, profile[i])
		}
	}
}

func TestGCProfileAmbiguousBases(t *testing.T) {
	profile := GCProfile([]byte("NNNN"), 4)
	for i, v := range profile {
		if v != 0.5 {
			t.Errorf("ambiguous base at %d should weigh 0.5, got %v", i, v)
		}
	}
}

func TestGCProfileWindowShrinksAtEdges(t *testing.T) {
	// At the first position only the right half of the window exists, so the
	// mean covers fewer bases instead of reading outside the sequence.
	profile := GCProfile([]byte("GGAAAAAAAA"), 6)
	if len(profile) != 10 {
		t.Fatalf("expected a value per base, got %d", len(profile))
	}
	// Window at position 0 is [0,3): G,G,A.
	if math.Abs(profile[0]-2.0/3.0) > 1e-12 {
		t.Errorf("expected 2/3 at the left edge, got %v", profile[0])
	}
	// Window at the last position is [6,10): all A.
	if profile[9] != 0 {
		t.Errorf("expected 0 at the right edge, got %v", profile[9])
	}
}

func TestGCProfileEmptyAndLowercase(t *testing.T) {
	if got := GCProfile(nil, 100); got != nil {
		t.Error("empty sequence should yield nil profile")
	}
	profile := GCProfile([]byte("gcgc"), 4)
	for i, v := range profile {
		if v != 1 {
			t.Errorf("lowercase base at %d should count, got %v", i, v)
		}
	}
}
