// Package app wires the detection pipeline: scan stage, stage barrier,
// per-motif statistics and overview aggregation.
package app

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"gobind/domain/core"
	"gobind/domain/genomic"
	"gobind/domain/motif"
	dstats "gobind/domain/stats"
	"gobind/internal/analysis"
	"gobind/internal/config"
	"gobind/internal/errors"
	"gobind/internal/scan"
	"gobind/internal/sites"
	"gobind/ports"
)

// DetectService runs one differential binding detection end to end.
type DetectService struct {
	cfg      *config.Config
	catalog  *motif.Catalog
	seq      ports.SequenceAccessor
	tracks   map[string]ports.SignalTrack
	scanner  ports.MotifScanner
	overview ports.OverviewWriter
}

// RunSummary reports what a detection run produced.
type RunSummary struct {
	RunID           core.RunID
	Regions         int
	RegionsSkipped  int
	Occurrences     int
	MotifsReported  int
	BackgroundSize  int
	OverviewTSVPath string
	OverviewXLSX    string
}

// NewDetectService binds the collaborators for a run. The overview writer
// may be nil to skip workbook output.
func NewDetectService(cfg *config.Config, catalog *motif.Catalog, seq ports.SequenceAccessor, tracks map[string]ports.SignalTrack, scanner ports.MotifScanner, overview ports.OverviewWriter) *DetectService {
	return &DetectService{cfg: cfg, catalog: catalog, seq: seq, tracks: tracks, scanner: scanner, overview: overview}
}

// Run executes the detection over the given peak regions and returns the
// merged overview table. Per-region and per-motif failures degrade to logged
// skips; integrity errors and stage-level failures abort the run.
func (s *DetectService) Run(ctx context.Context, regions []genomic.Region) (*dstats.OverviewTable, *RunSummary, error) {
	summary := &RunSummary{RunID: core.NewRunID()}
	runTag := summary.RunID.Short()
	log.Printf("[%s] detection start: %d regions, %d motifs, %d conditions",
		runTag, len(regions), s.catalog.Len(), len(s.cfg.Conditions))

	regions = s.prepareRegions(runTag, regions)
	summary.Regions = len(regions)

	if err := os.MkdirAll(s.cfg.OutDir, 0o755); err != nil {
		return nil, nil, errors.OutputWrite(s.cfg.OutDir, err)
	}
	tmpDir := filepath.Join(s.cfg.OutDir, "tmp")
	sink, err := sites.NewFileSink(tmpDir, s.catalog.IDs())
	if err != nil {
		return nil, nil, err
	}

	orch := scan.New(scan.Config{
		Conditions:   s.cfg.Conditions,
		GCWindow:     s.cfg.GCWindow,
		SampleWindow: s.cfg.SampleWindow,
		Workers:      s.cfg.ScanWorkers,
	}, s.seq, s.tracks, s.scanner, sink)

	scanRes, scanErr := orch.Run(ctx, regions)

	// Stage barrier: a motif's statistics may only start once its stream is
	// fully and durably written. Per-motif stream failures stay inside the
	// sink; the statistics stage skips those motifs.
	if err := sink.Close(); err != nil {
		return nil, nil, err
	}
	if scanErr != nil {
		return nil, nil, scanErr
	}
	summary.Occurrences = scanRes.Occurrences
	summary.RegionsSkipped = scanRes.RegionsSkipped
	summary.BackgroundSize = scanRes.Background.Size()
	log.Printf("[%s] scan done: %d occurrences, %d local overlaps resolved, %d background positions",
		runTag, scanRes.Occurrences, scanRes.OverlapsRemoved, scanRes.Background.Size())

	table, err := analysis.ProcessAll(ctx, s.catalog, tmpDir, analysis.Config{
		Conditions:  s.cfg.Conditions,
		Thresholds:  s.cfg.Thresholds,
		Comparisons: s.cfg.Comparisons,
		Background:  scan.LogFoldChangeFits(scanRes.Background, s.cfg.Comparisons, s.cfg.Pseudo),
		Pseudo:      s.cfg.Pseudo,
		PeakHeader:  s.cfg.PeakHeader,
		OutDir:      s.cfg.OutDir,
		Workbook:    s.tableWriter(),
		KeepTemp:    s.cfg.KeepTemp,
		Workers:     s.cfg.StatWorkers,
	})
	if err != nil {
		return nil, nil, err
	}
	summary.MotifsReported = table.Len()
	if !s.cfg.KeepTemp {
		// Best effort; per-motif tasks already removed their own files.
		_ = os.Remove(tmpDir)
	}

	if err := s.writeOverview(table, summary); err != nil {
		return nil, nil, err
	}
	log.Printf("[%s] detection done: %d/%d motifs reported", runTag, table.Len(), s.catalog.Len())
	return table, summary, nil
}

// tableWriter exposes the overview writer's generic table capability for the
// per-motif workbooks, when it has one.
func (s *DetectService) tableWriter() ports.TableWriter {
	if s.overview == nil {
		return nil
	}
	if tw, ok := s.overview.(ports.TableWriter); ok {
		return tw
	}
	return nil
}

// prepareRegions clips regions to chromosome bounds and drops regions on
// chromosomes the genome does not know.
func (s *DetectService) prepareRegions(runTag string, regions []genomic.Region) []genomic.Region {
	lengths := s.seq.ChromLengths()
	out := make([]genomic.Region, 0, len(regions))
	for _, r := range regions {
		length, ok := lengths[r.Chrom]
		if !ok {
			log.Printf("[%s] dropping region %s: %v", runTag, r, core.ErrUnknownChrom)
			continue
		}
		clipped, ok := r.ClipToBoundary(length, genomic.BoundaryCut)
		if !ok {
			log.Printf("[%s] dropping region %s: outside chromosome bounds", runTag, r)
			continue
		}
		out = append(out, clipped)
	}
	return out
}

func (s *DetectService) writeOverview(table *dstats.OverviewTable, summary *RunSummary) error {
	rows := table.Rows()
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = row.Strings(s.cfg.Conditions, s.cfg.Comparisons)
	}
	header := dstats.Header(s.cfg.Conditions, s.cfg.Comparisons)

	summary.OverviewTSVPath = filepath.Join(s.cfg.OutDir, "bindetect_results.txt")
	if err := sites.WriteTSV(summary.OverviewTSVPath, header, data); err != nil {
		return err
	}
	if s.overview != nil {
		summary.OverviewXLSX = filepath.Join(s.cfg.OutDir, "bindetect_results.xlsx")
		if err := s.overview.WriteOverview(summary.OverviewXLSX, s.cfg.Conditions, s.cfg.Comparisons, rows); err != nil {
			return err
		}
	}
	return nil
}
