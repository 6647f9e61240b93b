// Package sites implements the tab-delimited occurrence stream that hands
// sites from the scan stage to the per-motif statistics stage, plus the
// per-motif append sinks writing it.
package sites

import (
	"fmt"
	"strconv"
	"strings"

	"gobind/domain/genomic"
)

// fixedColumns precede the peak annotation in every site line:
// chromosome, start, end, motif id, match score, strand.
const fixedColumns = 6

// EncodeLine renders one occurrence as a tab-delimited line. Score fields
// (match score, GC, signal scores) are written with 5-decimal precision; all
// other fields round-trip verbatim.
func EncodeLine(o genomic.Occurrence) string {
	cols := make([]string, 0, fixedColumns+len(o.Peak)+1+len(o.Signals))
	cols = append(cols,
		o.Chrom,
		strconv.Itoa(o.Start),
		strconv.Itoa(o.End),
		o.MotifID,
		formatScore(o.Score),
		string(o.Strand),
	)
	cols = append(cols, o.Peak...)
	cols = append(cols, formatScore(o.GC))
	for _, s := range o.Signals {
		cols = append(cols, formatScore(s))
	}
	return strings.Join(cols, "\t")
}

// DecodeLine parses one site line. The number of conditions determines where
// the peak annotation ends and the score columns begin.
func DecodeLine(line string, conditions int) (genomic.Occurrence, error) {
	cols := strings.Split(line, "\t")
	min := fixedColumns + 1 + conditions
	if len(cols) < min {
		return genomic.Occurrence{}, fmt.Errorf("site line has %d columns, want at least %d", len(cols), min)
	}
	start, err := strconv.Atoi(cols[1])
	if err != nil {
		return genomic.Occurrence{}, fmt.Errorf("bad start %q: %w", cols[1], err)
	}
	end, err := strconv.Atoi(cols[2])
	if err != nil {
		return genomic.Occurrence{}, fmt.Errorf("bad end %q: %w", cols[2], err)
	}
	score, err := strconv.ParseFloat(cols[4], 64)
	if err != nil {
		return genomic.Occurrence{}, fmt.Errorf("bad score %q: %w", cols[4], err)
	}
	if len(cols[5]) != 1 {
		return genomic.Occurrence{}, fmt.Errorf("bad strand %q", cols[5])
	}

	peakEnd := len(cols) - conditions - 1
	o := genomic.Occurrence{
		Chrom:   cols[0],
		Start:   start,
		End:     end,
		MotifID: cols[3],
		Score:   score,
		Strand:  cols[5][0],
		Peak:    append([]string(nil), cols[fixedColumns:peakEnd]...),
	}
	if o.GC, err = strconv.ParseFloat(cols[peakEnd], 64); err != nil {
		return genomic.Occurrence{}, fmt.Errorf("bad gc %q: %w", cols[peakEnd], err)
	}
	o.Signals = make([]float64, conditions)
	for i := 0; i < conditions; i++ {
		if o.Signals[i], err = strconv.ParseFloat(cols[peakEnd+1+i], 64); err != nil {
			return genomic.Occurrence{}, fmt.Errorf("bad signal %q: %w", cols[peakEnd+1+i], err)
		}
	}
	return o, nil
}

// PeakColumnNames names the peak annotation columns. A supplied header wins;
// otherwise the fallback scheme names the first three columns
// peak_chr/peak_start/peak_end and the remainder additional_1..N.
func PeakColumnNames(n int, header []string) []string {
	out := make([]string, n)
	fallback := []string{"peak_chr", "peak_start", "peak_end"}
	for i := 0; i < n; i++ {
		switch {
		case i < len(header) && header[i] != "":
			out[i] = header[i]
		case i < len(fallback):
			out[i] = fallback[i]
		default:
			out[i] = fmt.Sprintf("additional_%d", i-len(fallback)+1)
		}
	}
	return out
}

// Header returns the full column names of a site table for the given peak
// column names and condition order.
func Header(peakCols, conditions []string) []string {
	cols := []string{"TFBS_chr", "TFBS_start", "TFBS_end", "TFBS_name", "TFBS_score", "TFBS_strand"}
	cols = append(cols, peakCols...)
	cols = append(cols, "GC")
	for _, cond := range conditions {
		cols = append(cols, cond+"_score")
	}
	return cols
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}
