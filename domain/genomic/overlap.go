package genomic

import "sort"

// ResolveOverlaps reduces a set of same-motif occurrences to a maximal
// non-overlapping subset. When two sites overlap the higher match score wins;
// on an exact score tie the site appearing first in the input wins. The
// result is coordinate-sorted. Returns the kept sites and the number of
// sites removed.
func ResolveOverlaps(sites []Occurrence) ([]Occurrence, int) {
	if len(sites) == 0 {
		return nil, 0
	}
	if len(sites) == 1 {
		return []Occurrence{sites[0]}, 0
	}

	type indexed struct {
		occ Occurrence
		idx int
	}
	ordered := make([]indexed, len(sites))
	for i, s := range sites {
		ordered[i] = indexed{occ: s, idx: i}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].occ, ordered[j].occ
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	out := make([]Occurrence, 0, len(ordered))
	removed := 0
	kept := ordered[0]
	for _, cur := range ordered[1:] {
		if !kept.occ.Overlaps(cur.occ) {
			out = append(out, kept.occ)
			kept = cur
			continue
		}
		removed++
		if cur.occ.Score > kept.occ.Score ||
			(cur.occ.Score == kept.occ.Score && cur.idx < kept.idx) {
			kept = cur
		}
	}
	out = append(out, kept.occ)
	return out, removed
}

// CountOverlaps reports how many overlapping pairs exist between adjacent
// coordinate-sorted sites without removing any.
func CountOverlaps(sites []Occurrence) int {
	sorted := append([]Occurrence(nil), sites...)
	SortOccurrences(sorted)
	n := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			n++
		}
	}
	return n
}
