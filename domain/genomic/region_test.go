package genomic

import (
	"errors"
	"testing"

	"gobind/domain/core"
)

func TestRegionValidate(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		wantErr bool
	}{
		{"valid", Region{Chrom: "chr1", Start: 100, End: 200}, false},
		{"empty chrom", Region{Start: 100, End: 200}, true},
		{"negative start", Region{Chrom: "chr1", Start: -1, End: 200}, true},
		{"empty interval", Region{Chrom: "chr1", Start: 200, End: 200}, true},
		{"inverted", Region{Chrom: "chr1", Start: 300, End: 200}, true},
	}

	for _, test := range tests {
		err := test.region.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if test.wantErr && err != nil && !errors.Is(err, core.ErrInvalidRegion) {
			t.Errorf("%s: error should wrap ErrInvalidRegion, got %v", test.name, err)
		}
	}
}

func TestRegionExtendClampsAtZero(t *testing.T) {
	r := Region{Chrom: "chr1", Start: 100, End: 300}

	ext := r.Extend(250)
	if ext.Start != 0 {
		t.Errorf("expected start clamped to 0, got %d", ext.Start)
	}
	if ext.End != 550 {
		t.Errorf("expected end 550, got %d", ext.End)
	}
	if r.Start != 100 || r.End != 300 {
		t.Error("Extend must not mutate the receiver")
	}
}

func TestClipToBoundary(t *testing.T) {
	tests := []struct {
		name      string
		region    Region
		chromLen  int
		policy    BoundaryPolicy
		wantOK    bool
		wantStart int
		wantEnd   int
	}{
		{"inside cut", Region{Chrom: "chr1", Start: 100, End: 200}, 1000, BoundaryCut, true, 100, 200},
		{"overhang cut", Region{Chrom: "chr1", Start: 900, End: 1100}, 1000, BoundaryCut, true, 900, 1000},
		{"fully outside cut", Region{Chrom: "chr1", Start: 1200, End: 1300}, 1000, BoundaryCut, false, 0, 0},
		{"inside drop", Region{Chrom: "chr1", Start: 100, End: 200}, 1000, BoundaryDrop, true, 100, 200},
		{"overhang drop", Region{Chrom: "chr1", Start: 900, End: 1100}, 1000, BoundaryDrop, false, 0, 0},
	}

	for _, test := range tests {
		got, ok := test.region.ClipToBoundary(test.chromLen, test.policy)
		if ok != test.wantOK {
			t.Errorf("%s: expected ok=%v, got %v", test.name, test.wantOK, ok)
			continue
		}
		if ok && (got.Start != test.wantStart || got.End != test.wantEnd) {
			t.Errorf("%s: expected [%d,%d), got [%d,%d)", test.name, test.wantStart, test.wantEnd, got.Start, got.End)
		}
	}
}

func TestRegionOverlapsHalfOpen(t *testing.T) {
	a := Region{Chrom: "chr1", Start: 100, End: 200}

	if !a.Overlaps(Region{Chrom: "chr1", Start: 199, End: 250}) {
		t.Error("expected overlap at last base")
	}
	// Adjacent half-open intervals share no base.
	if a.Overlaps(Region{Chrom: "chr1", Start: 200, End: 250}) {
		t.Error("adjacent intervals must not overlap")
	}
	if a.Overlaps(Region{Chrom: "chr2", Start: 100, End: 200}) {
		t.Error("different chromosomes must not overlap")
	}
}

func TestRegionMerge(t *testing.T) {
	a := Region{Chrom: "chr1", Start: 100, End: 200}
	b := Region{Chrom: "chr1", Start: 150, End: 300}

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Start != 100 || merged.End != 300 {
		t.Errorf("expected [100,300), got [%d,%d)", merged.Start, merged.End)
	}

	if _, err := a.Merge(Region{Chrom: "chr2", Start: 0, End: 10}); !errors.Is(err, core.ErrChromMismatch) {
		t.Errorf("expected ErrChromMismatch, got %v", err)
	}
}

func TestRegionColumns(t *testing.T) {
	r := Region{Chrom: "chr1", Start: 100, End: 200, Extra: []string{"peak_7", "88"}}

	cols := r.Columns()
	want := []string{"chr1", "100", "200", "peak_7", "88"}
	if len(cols) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(cols))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], cols[i])
		}
	}
}

func TestSortRegions(t *testing.T) {
	regions := []Region{
		{Chrom: "chr2", Start: 10, End: 20},
		{Chrom: "chr1", Start: 50, End: 60},
		{Chrom: "chr1", Start: 10, End: 30},
		{Chrom: "chr1", Start: 10, End: 20},
	}

	SortRegions(regions)

	want := []Region{
		{Chrom: "chr1", Start: 10, End: 20},
		{Chrom: "chr1", Start: 10, End: 30},
		{Chrom: "chr1", Start: 50, End: 60},
		{Chrom: "chr2", Start: 10, End: 20},
	}
	for i := range want {
		if regions[i].String() != want[i].String() {
			t.Errorf("position %d: expected %s, got %s", i, want[i], regions[i])
		}
	}
}
