package stats

import (
	"fmt"
	"sort"
	"strconv"

	"gobind/domain/core"
)

// Comparison is an ordered condition pair (A, B) defining the direction of
// the log2 fold change A/B. The comparison set is fixed input, not derived.
type Comparison struct {
	A string
	B string
}

// Key returns the canonical column prefix for this comparison.
func (c Comparison) Key() string {
	return c.A + "_" + c.B
}

// AllPairs returns every ordered pair of distinct conditions, in input order.
func AllPairs(conditions []string) []Comparison {
	var out []Comparison
	for _, a := range conditions {
		for _, b := range conditions {
			if a != b {
				out = append(out, Comparison{A: a, B: b})
			}
		}
	}
	return out
}

// NormalFit holds the parameters of a normal distribution fitted to a sample
// together with the sample size.
type NormalFit struct {
	Mean float64
	Std  float64
	N    int
}

// ConditionSummary is the per-condition slice of a motif's overview row.
type ConditionSummary struct {
	MeanScore float64
	Bound     int
}

// DifferentialResult is the outcome of one comparison for one motif.
type DifferentialResult struct {
	Change float64
	PValue float64
}

// MotifOverview is one row of the global overview table: total site count,
// per-condition summaries, and per-comparison differential results.
type MotifOverview struct {
	MotifID      string
	MotifName    string
	MotifAlt     string
	TotalSites   int
	Conditions   map[string]ConditionSummary
	Differential map[string]DifferentialResult
}

// NewMotifOverview creates an empty row for a motif's statistics task.
func NewMotifOverview(motifID, motifName, motifAlt string) *MotifOverview {
	return &MotifOverview{
		MotifID:      motifID,
		MotifName:    motifName,
		MotifAlt:     motifAlt,
		Conditions:   make(map[string]ConditionSummary),
		Differential: make(map[string]DifferentialResult),
	}
}

// OverviewTable aggregates per-motif rows keyed by motif id. Merging the same
// motif twice is an integrity error: it indicates an orchestration bug
// upstream, not bad data.
type OverviewTable struct {
	rows map[string]*MotifOverview
}

// NewOverviewTable creates an empty table.
func NewOverviewTable() *OverviewTable {
	return &OverviewTable{rows: make(map[string]*MotifOverview)}
}

// Merge appends a frozen row to the table.
func (t *OverviewTable) Merge(row *MotifOverview) error {
	if row == nil {
		return fmt.Errorf("nil overview row")
	}
	if _, ok := t.rows[row.MotifID]; ok {
		return core.NewIntegrityError(row.MotifID, core.ErrDuplicateMotif)
	}
	t.rows[row.MotifID] = row
	return nil
}

// Len returns the number of merged rows.
func (t *OverviewTable) Len() int {
	return len(t.rows)
}

// Rows returns the merged rows sorted by motif id for deterministic output.
func (t *OverviewTable) Rows() []*MotifOverview {
	out := make([]*MotifOverview, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MotifID < out[j].MotifID })
	return out
}

// Strings renders the row in Header column order.
func (r *MotifOverview) Strings(conditions []string, comparisons []Comparison) []string {
	cols := []string{r.MotifID, r.MotifName, r.MotifAlt, strconv.Itoa(r.TotalSites)}
	for _, cond := range conditions {
		cs := r.Conditions[cond]
		cols = append(cols,
			strconv.FormatFloat(cs.MeanScore, 'f', 5, 64),
			strconv.Itoa(cs.Bound),
		)
	}
	for _, cmp := range comparisons {
		d := r.Differential[cmp.Key()]
		cols = append(cols,
			strconv.FormatFloat(d.Change, 'f', 5, 64),
			strconv.FormatFloat(d.PValue, 'g', -1, 64),
		)
	}
	return cols
}

// Header returns the overview table column names for the given condition and
// comparison ordering.
func Header(conditions []string, comparisons []Comparison) []string {
	cols := []string{"motif_id", "motif_name", "motif_alt", "total_tfbs"}
	for _, cond := range conditions {
		cols = append(cols, cond+"_mean_score", cond+"_bound")
	}
	for _, cmp := range comparisons {
		cols = append(cols, cmp.Key()+"_change", cmp.Key()+"_pvalue")
	}
	return cols
}
