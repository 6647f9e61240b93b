package genomic

import "sort"

// Occurrence is a single predicted binding site for one motif. Signals holds
// one footprint score per experimental condition, in the pipeline's fixed
// condition order. Peak carries the columns of the region the site was found
// in.
type Occurrence struct {
	MotifID string
	Chrom   string
	Start   int
	End     int
	Strand  byte
	Score   float64
	GC      float64
	Signals []float64
	Peak    []string
}

// Midpoint returns the offset of the site's middle position relative to the
// given region start.
func (o Occurrence) Midpoint(regionStart int) int {
	return o.Start - regionStart + (o.End-o.Start)/2
}

// Overlaps reports half-open interval intersection with another occurrence.
func (o Occurrence) Overlaps(other Occurrence) bool {
	return o.Chrom == other.Chrom && o.Start < other.End && other.Start < o.End
}

// SortOccurrences orders sites by chromosome, start, end. The sort is stable
// so ties keep their input order.
func SortOccurrences(sites []Occurrence) {
	sort.SliceStable(sites, func(i, j int) bool {
		a, b := sites[i], sites[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}
