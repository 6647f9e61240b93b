// Package analysis implements the per-motif statistics pipeline and its
// bounded runner: bound/unbound classification, differential testing against
// the background fits, and aggregation into the overview table.
package analysis

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	astats "gobind/adapters/stats"
	"gobind/domain/genomic"
	"gobind/domain/motif"
	dstats "gobind/domain/stats"
	"gobind/internal/errors"
	"gobind/internal/sites"
	"gobind/ports"
)

// Config holds the inputs shared by every motif's statistics task.
type Config struct {
	Conditions  []string
	Thresholds  map[string]float64
	Comparisons []dstats.Comparison
	Background  map[string]dstats.NormalFit // per comparison key
	Pseudo      float64
	PeakHeader  []string
	OutDir      string            // per-motif output root; empty disables site files
	Workbook    ports.TableWriter // per-motif overview workbook; nil skips it
	KeepTemp    bool
	Workers     int
}

// ProcessMotif runs one motif's statistics task over its finalized site
// stream and returns the motif's overview row. Any error means the motif is
// skipped by the caller; sibling motifs are unaffected.
func ProcessMotif(m motif.Motif, tmpPath string, cfg Config) (*dstats.MotifOverview, error) {
	all, err := sites.ReadAll(tmpPath, len(cfg.Conditions))
	if err != nil {
		return nil, err
	}

	// Deterministic output ordering, then the global overlap-resolution
	// pass: per-region resolution only prevented local duplicates.
	genomic.SortOccurrences(all)
	resolved, _ := genomic.ResolveOverlaps(all)

	alt := m.AltName
	if alt == "" {
		alt = m.Name
	}
	row := dstats.NewMotifOverview(m.ID, m.Name, alt)
	row.TotalSites = len(resolved)

	// Bound/unbound split per condition.
	bound := make(map[string][]bool, len(cfg.Conditions))
	for i, cond := range cfg.Conditions {
		threshold := cfg.Thresholds[cond]
		flags := make([]bool, len(resolved))
		sum := 0.0
		count := 0
		for j, occ := range resolved {
			score := occ.Signals[i]
			sum += score
			if score > threshold {
				flags[j] = true
				count++
			}
		}
		mean := 0.0
		if len(resolved) > 0 {
			mean = sum / float64(len(resolved))
		}
		row.Conditions[cond] = dstats.ConditionSummary{MeanScore: astats.Round5(mean), Bound: count}
		bound[cond] = flags
	}

	// Differential statistics per comparison.
	logfc := make(map[string][]float64, len(cfg.Comparisons))
	for _, cmp := range cfg.Comparisons {
		ai := condIndex(cfg.Conditions, cmp.A)
		bi := condIndex(cfg.Conditions, cmp.B)
		values := make([]float64, len(resolved))
		for j, occ := range resolved {
			values[j] = astats.Round5(math.Log2((occ.Signals[ai] + cfg.Pseudo) / (occ.Signals[bi] + cfg.Pseudo)))
		}
		logfc[cmp.Key()] = values
		observed := collapsePerPeak(resolved, values, ai, bi)
		row.Differential[cmp.Key()] = astats.Differential(observed, cfg.Background[cmp.Key()])
	}

	if cfg.OutDir != "" {
		if err := writeMotifOutputs(m, resolved, bound, logfc, cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.KeepTemp {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("analysis: could not remove temp file %s: %v", tmpPath, err)
		}
	}
	return row, nil
}

// collapsePerPeak restricts the log2 fold changes to sites where at least
// one of the two conditions scored above zero, then collapses sites sharing
// an originating peak to the peak's mean value.
func collapsePerPeak(resolved []genomic.Occurrence, values []float64, ai, bi int) []float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for j, occ := range resolved {
		if occ.Signals[ai] <= 0 && occ.Signals[bi] <= 0 {
			continue
		}
		id := peakID(occ)
		if _, ok := counts[id]; !ok {
			order = append(order, id)
		}
		sums[id] += values[j]
		counts[id]++
	}
	out := make([]float64, 0, len(order))
	for _, id := range order {
		out = append(out, sums[id]/float64(counts[id]))
	}
	return out
}

func peakID(occ genomic.Occurrence) string {
	if len(occ.Peak) >= 3 {
		return strings.Join(occ.Peak[:3], "_")
	}
	return strings.Join(occ.Peak, "_")
}

func condIndex(conditions []string, name string) int {
	for i, cond := range conditions {
		if cond == name {
			return i
		}
	}
	return -1
}

// writeMotifOutputs writes the per-motif site files: the full sorted site
// table, per-condition bound/unbound splits and the overview table as TSV
// and workbook. The GC column stays internal and is dropped from all of
// them.
func writeMotifOutputs(m motif.Motif, resolved []genomic.Occurrence, bound map[string][]bool, logfc map[string][]float64, cfg Config) error {
	motifDir := filepath.Join(cfg.OutDir, sites.SafeName(m.ID))
	bedDir := filepath.Join(motifDir, "beds")
	if err := os.MkdirAll(bedDir, 0o755); err != nil {
		return errors.OutputWrite(bedDir, err)
	}

	peakCols := 0
	if len(resolved) > 0 {
		peakCols = len(resolved[0].Peak)
	}
	header := sites.Header(sites.PeakColumnNames(peakCols, cfg.PeakHeader), cfg.Conditions)
	gcCol := 6 + peakCols

	baseRows := make([][]string, len(resolved))
	for j, occ := range resolved {
		baseRows[j] = siteRow(occ)
	}

	// <motif>_all.bed: every column except GC, no header.
	allRows := make([][]string, len(baseRows))
	for j, row := range baseRows {
		allRows[j] = dropColumn(row, gcCol)
	}
	if err := sites.WriteTSV(filepath.Join(bedDir, sites.SafeName(m.ID)+"_all.bed"), nil, allRows); err != nil {
		return err
	}

	// Bound/unbound splits per condition, sorted by that condition's score
	// descending, with only that condition's score column.
	for i, cond := range cfg.Conditions {
		for _, state := range []string{"bound", "unbound"} {
			want := state == "bound"
			idx := make([]int, 0, len(resolved))
			for j := range resolved {
				if bound[cond][j] == want {
					idx = append(idx, j)
				}
			}
			sort.SliceStable(idx, func(x, y int) bool {
				return resolved[idx[x]].Signals[i] > resolved[idx[y]].Signals[i]
			})
			rows := make([][]string, len(idx))
			for x, j := range idx {
				rows[x] = append(append([]string{}, baseRows[j][:gcCol]...), formatScore(resolved[j].Signals[i]))
			}
			name := sites.SafeName(m.ID) + "_" + cond + "_" + state + ".bed"
			if err := sites.WriteTSV(filepath.Join(bedDir, name), nil, rows); err != nil {
				return err
			}
		}
	}

	// Overview: base columns without GC, plus bound flags and log2fcs.
	overviewHeader := dropColumn(header, gcCol)
	for _, cond := range cfg.Conditions {
		overviewHeader = append(overviewHeader, cond+"_bound")
	}
	for _, cmp := range cfg.Comparisons {
		overviewHeader = append(overviewHeader, cmp.Key()+"_log2fc")
	}
	overviewRows := make([][]string, len(resolved))
	for j := range resolved {
		row := dropColumn(baseRows[j], gcCol)
		for _, cond := range cfg.Conditions {
			if bound[cond][j] {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		for _, cmp := range cfg.Comparisons {
			row = append(row, formatScore(logfc[cmp.Key()][j]))
		}
		overviewRows[j] = row
	}
	txt := filepath.Join(motifDir, sites.SafeName(m.ID)+"_overview.txt")
	if err := sites.WriteTSV(txt, overviewHeader, overviewRows); err != nil {
		return err
	}
	if cfg.Workbook == nil {
		return nil
	}
	xlsx := filepath.Join(motifDir, sites.SafeName(m.ID)+"_overview.xlsx")
	return cfg.Workbook.WriteTable(xlsx, overviewHeader, overviewRows)
}

func siteRow(occ genomic.Occurrence) []string {
	return strings.Split(sites.EncodeLine(occ), "\t")
}

func dropColumn(row []string, col int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:col]...)
	if col+1 < len(row) {
		out = append(out, row[col+1:]...)
	}
	return out
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}
