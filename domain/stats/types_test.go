package stats

import (
	"errors"
	"testing"

	"gobind/domain/core"
)

func TestAllPairs(t *testing.T) {
	pairs := AllPairs([]string{"WT", "KO"})
	if len(pairs) != 2 {
		t.Fatalf("expected 2 ordered pairs, got %d", len(pairs))
	}
	if pairs[0].Key() != "WT_KO" || pairs[1].Key() != "KO_WT" {
		t.Errorf("unexpected pair keys: %s, %s", pairs[0].Key(), pairs[1].Key())
	}

	if got := AllPairs([]string{"A", "B", "C"}); len(got) != 6 {
		t.Errorf("expected 6 ordered pairs for 3 conditions, got %d", len(got))
	}
	if got := AllPairs([]string{"only"}); len(got) != 0 {
		t.Errorf("expected no pairs for a single condition, got %d", len(got))
	}
}

func TestOverviewTableMergeRejectsDuplicate(t *testing.T) {
	table := NewOverviewTable()

	if err := table.Merge(NewMotifOverview("M1", "CTCF", "CTCF")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := table.Merge(NewMotifOverview("M1", "CTCF", "CTCF"))
	if err == nil {
		t.Fatal("expected duplicate merge to fail")
	}
	if !errors.Is(err, core.ErrDuplicateMotif) {
		t.Errorf("expected ErrDuplicateMotif, got %v", err)
	}
	if !core.IsIntegrityError(err) {
		t.Error("duplicate merge must be an integrity error")
	}
	if table.Len() != 1 {
		t.Errorf("failed merge must not change the table, len=%d", table.Len())
	}
}

func TestOverviewTableRowsSorted(t *testing.T) {
	table := NewOverviewTable()
	for _, id := range []string{"M3", "M1", "M2"} {
		if err := table.Merge(NewMotifOverview(id, id, id)); err != nil {
			t.Fatalf("merge %s: %v", id, err)
		}
	}

	rows := table.Rows()
	want := []string{"M1", "M2", "M3"}
	for i, row := range rows {
		if row.MotifID != want[i] {
			t.Errorf("row %d: expected %s, got %s", i, want[i], row.MotifID)
		}
	}
}

func TestHeaderAndStringsAlign(t *testing.T) {
	conditions := []string{"WT", "KO"}
	comparisons := []Comparison{{A: "WT", B: "KO"}}

	header := Header(conditions, comparisons)
	wantHeader := []string{
		"motif_id", "motif_name", "motif_alt", "total_tfbs",
		"WT_mean_score", "WT_bound", "KO_mean_score", "KO_bound",
		"WT_KO_change", "WT_KO_pvalue",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("expected %d header columns, got %d", len(wantHeader), len(header))
	}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("header %d: expected %q, got %q", i, wantHeader[i], header[i])
		}
	}

	row := NewMotifOverview("M1", "CTCF", "ZBTB")
	row.TotalSites = 42
	row.Conditions["WT"] = ConditionSummary{MeanScore: 0.5, Bound: 10}
	row.Conditions["KO"] = ConditionSummary{MeanScore: 0.25, Bound: 3}
	row.Differential["WT_KO"] = DifferentialResult{Change: 0.12345, PValue: 0.001}

	cols := row.Strings(conditions, comparisons)
	if len(cols) != len(header) {
		t.Fatalf("row has %d columns, header has %d", len(cols), len(header))
	}
	if cols[0] != "M1" || cols[1] != "CTCF" || cols[2] != "ZBTB" || cols[3] != "42" {
		t.Errorf("unexpected identity columns: %v", cols[:4])
	}
	if cols[4] != "0.50000" {
		t.Errorf("mean score must print with 5 decimals, got %q", cols[4])
	}
	if cols[8] != "0.12345" {
		t.Errorf("change must print with 5 decimals, got %q", cols[8])
	}
	if cols[9] != "0.001" {
		t.Errorf("unexpected p-value rendering: %q", cols[9])
	}
}
