package ports

import (
	"gobind/domain/genomic"
	dstats "gobind/domain/stats"
)

// SiteSink receives per-motif occurrence batches from scan workers. Append
// must be safe for concurrent use and must write each batch atomically to the
// motif's stream. Close flushes and closes every stream; no Append may follow
// Close.
type SiteSink interface {
	Append(motifID string, batch []genomic.Occurrence) error
	Close() error
}

// OverviewWriter serializes the global overview table.
type OverviewWriter interface {
	WriteOverview(path string, conditions []string, comparisons []dstats.Comparison, rows []*dstats.MotifOverview) error
}

// TableWriter serializes a generic tabular output, one workbook or document
// per call. The per-motif overview uses it so the statistics engine stays
// free of serialization concerns.
type TableWriter interface {
	WriteTable(path string, header []string, rows [][]string) error
}
