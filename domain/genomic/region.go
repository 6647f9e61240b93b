package genomic

import (
	"fmt"
	"sort"

	"gobind/domain/core"
)

// BoundaryPolicy controls how regions falling outside chromosome bounds are
// handled by ClipToBoundary.
type BoundaryPolicy int

const (
	// BoundaryCut truncates the region to the chromosome bounds.
	BoundaryCut BoundaryPolicy = iota
	// BoundaryDrop discards regions reaching outside the chromosome.
	BoundaryDrop
)

// Region is a half-open genomic interval [Start, End) with the extra columns
// it carried in the input (peak annotation etc.). Regions are values; derived
// regions are new values.
type Region struct {
	Chrom string
	Start int
	End   int
	Extra []string
}

// Validate checks the Start < End invariant.
func (r Region) Validate() error {
	if r.Chrom == "" {
		return fmt.Errorf("%w: empty chromosome", core.ErrInvalidRegion)
	}
	if r.Start < 0 || r.Start >= r.End {
		return fmt.Errorf("%w: %s:%d-%d", core.ErrInvalidRegion, r.Chrom, r.Start, r.End)
	}
	return nil
}

// Length returns the interval length.
func (r Region) Length() int {
	return r.End - r.Start
}

// Extend grows the region symmetrically by `by` on both sides, clamping the
// start at zero.
func (r Region) Extend(by int) Region {
	out := r
	out.Start -= by
	if out.Start < 0 {
		out.Start = 0
	}
	out.End += by
	return out
}

// ClipToBoundary applies the boundary policy against the chromosome length.
// With BoundaryCut the region is truncated to [0, chromLength); with
// BoundaryDrop regions reaching outside the bounds are discarded and ok is
// false.
func (r Region) ClipToBoundary(chromLength int, policy BoundaryPolicy) (Region, bool) {
	inside := r.Start >= 0 && r.End <= chromLength
	switch policy {
	case BoundaryDrop:
		if !inside {
			return Region{}, false
		}
		return r, true
	default:
		out := r
		if out.Start < 0 {
			out.Start = 0
		}
		if out.End > chromLength {
			out.End = chromLength
		}
		if out.Start >= out.End {
			return Region{}, false
		}
		return out, true
	}
}

// Overlaps reports whether two half-open intervals on the same chromosome
// intersect.
func (r Region) Overlaps(other Region) bool {
	return r.Chrom == other.Chrom && r.Start < other.End && other.Start < r.End
}

// Merge returns the union interval of two regions on the same chromosome.
func (r Region) Merge(other Region) (Region, error) {
	if r.Chrom != other.Chrom {
		return Region{}, fmt.Errorf("%w: %s vs %s", core.ErrChromMismatch, r.Chrom, other.Chrom)
	}
	out := Region{Chrom: r.Chrom, Start: r.Start, End: r.End, Extra: r.Extra}
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out, nil
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// Columns returns the region rendered as tab-separable columns: coordinates
// followed by the extra input columns. This is the per-occurrence peak
// annotation carried through the pipeline.
func (r Region) Columns() []string {
	cols := make([]string, 0, 3+len(r.Extra))
	cols = append(cols, r.Chrom, fmt.Sprintf("%d", r.Start), fmt.Sprintf("%d", r.End))
	cols = append(cols, r.Extra...)
	return cols
}

// SortRegions orders regions by chromosome, start, end.
func SortRegions(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		a, b := regions[i], regions[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}
