package scan

import (
	"math"
	"math/rand"

	astats "gobind/adapters/stats"
	dstats "gobind/domain/stats"
)

// BackgroundSample accumulates the genome-wide background: sampled raw
// signal values per condition and the GC fractions at the same kind of
// sampled positions. It is owned by a single worker until merged at the pool
// barrier, then read-only.
type BackgroundSample struct {
	GC     []float64
	Signal map[string][]float64
}

// NewBackgroundSample creates an empty sample for the given conditions.
func NewBackgroundSample(conditions []string) *BackgroundSample {
	s := &BackgroundSample{Signal: make(map[string][]float64, len(conditions))}
	for _, cond := range conditions {
		s.Signal[cond] = nil
	}
	return s
}

// Merge appends another worker's sample. Merge order is irrelevant: the
// sample is a statistical aggregate, not an ordered record.
func (s *BackgroundSample) Merge(other *BackgroundSample) {
	if other == nil {
		return
	}
	s.GC = append(s.GC, other.GC...)
	for cond, values := range other.Signal {
		s.Signal[cond] = append(s.Signal[cond], values...)
	}
}

// Size returns the number of sampled GC positions.
func (s *BackgroundSample) Size() int {
	return len(s.GC)
}

// SamplePositions derives the deterministic background sample offsets for a
// region: one position per window bases, at least one, drawn without
// replacement from a generator seeded by the region length. Identical
// regions therefore sample identically regardless of processing order or
// worker assignment.
func SamplePositions(length, window int) []int {
	if length <= 0 {
		return nil
	}
	n := length / window
	if n < 1 {
		n = 1
	}
	if n > length {
		n = length
	}
	rng := rand.New(rand.NewSource(int64(length)))
	return rng.Perm(length)[:n]
}

// LogFoldChangeFits derives the per-comparison background distributions from
// a finalized sample: a normal fit over the pseudocounted log2 ratios of the
// sampled signal values. A condition pair without common samples yields a
// zero fit.
func LogFoldChangeFits(s *BackgroundSample, comparisons []dstats.Comparison, pseudo float64) map[string]dstats.NormalFit {
	out := make(map[string]dstats.NormalFit, len(comparisons))
	for _, cmp := range comparisons {
		a := s.Signal[cmp.A]
		b := s.Signal[cmp.B]
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		// Same 5-decimal precision as the per-site fold changes, so a
		// comparison of identical tracks is exactly degenerate.
		values := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			values = append(values, astats.Round5(math.Log2((a[i]+pseudo)/(b[i]+pseudo))))
		}
		fit, err := astats.FitNormal(values)
		if err != nil {
			fit = dstats.NormalFit{}
		}
		out[cmp.Key()] = fit
	}
	return out
}
