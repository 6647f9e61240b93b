// Package scan implements the parallel scan-and-score stage: regions fan out
// over a bounded worker pool that scans sequence for motif occurrences,
// samples the background and routes per-motif batches to the site sink.
package scan

import (
	"context"
	"log"
	"math"
	"sync"

	"gobind/domain/genomic"
	"gobind/internal/errors"
	"gobind/ports"
)

// Config controls the scan stage.
type Config struct {
	Conditions   []string // canonical condition order
	GCWindow     int      // rolling GC window size
	SampleWindow int      // one background position per this many bases
	Workers      int      // scan worker count (>=1)
}

// Result is the scan stage outcome: the merged background sample plus
// counters for reporting.
type Result struct {
	Background      *BackgroundSample
	Occurrences     int
	OverlapsRemoved int
	RegionsSkipped  int
}

// Orchestrator owns the scan worker pool. The motif catalog's scanning
// capability, the signal tracks and the sequence accessor are bound once at
// setup.
type Orchestrator struct {
	cfg     Config
	seq     ports.SequenceAccessor
	tracks  map[string]ports.SignalTrack
	scanner ports.MotifScanner
	sink    ports.SiteSink
}

// New creates an orchestrator. Zero config values fall back to the stage
// defaults (window 500, one worker).
func New(cfg Config, seq ports.SequenceAccessor, tracks map[string]ports.SignalTrack, scanner ports.MotifScanner, sink ports.SiteSink) *Orchestrator {
	if cfg.GCWindow < 1 {
		cfg.GCWindow = 500
	}
	if cfg.SampleWindow < 1 {
		cfg.SampleWindow = 500
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Orchestrator{cfg: cfg, seq: seq, tracks: tracks, scanner: scanner, sink: sink}
}

// Run scans all regions and returns the finalized background sample. Regions
// are split into contiguous chunks, one chunk per worker; every worker
// accumulates its own background sample and the samples are merged once at
// the pool barrier. Per-region failures are logged and skipped; only context
// cancellation aborts the run.
func (o *Orchestrator) Run(ctx context.Context, regions []genomic.Region) (Result, error) {
	chromLens := o.seq.ChromLengths()
	chunks := chunkRegions(regions, o.cfg.Workers)

	type workerResult struct {
		bg      *BackgroundSample
		sites   int
		removed int
		skipped int
		err     error
	}
	results := make([]workerResult, len(chunks))

	var wg sync.WaitGroup
	for w, chunk := range chunks {
		wg.Add(1)
		go func(w int, chunk []genomic.Region) {
			defer wg.Done()
			res := workerResult{bg: NewBackgroundSample(o.cfg.Conditions)}
			for _, region := range chunk {
				if err := ctx.Err(); err != nil {
					res.err = err
					break
				}
				sites, removed, err := o.scanRegion(region, chromLens, res.bg)
				if err != nil {
					log.Printf("scan: skipping region %s: %v", region, errors.WithCode(errors.CodeScanFailed, err))
					res.skipped++
					continue
				}
				res.sites += sites
				res.removed += removed
			}
			results[w] = res
		}(w, chunk)
	}
	wg.Wait()

	out := Result{Background: NewBackgroundSample(o.cfg.Conditions)}
	var firstErr error
	for _, res := range results {
		out.Background.Merge(res.bg)
		out.Occurrences += res.sites
		out.OverlapsRemoved += res.removed
		out.RegionsSkipped += res.skipped
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	return out, firstErr
}

// scanRegion runs the per-region algorithm: deterministic background
// sampling, signal reads, GC profile over the extended window, motif scan,
// feature attachment, local overlap resolution and one batch emit per motif.
func (o *Orchestrator) scanRegion(region genomic.Region, chromLens map[string]int, bg *BackgroundSample) (int, int, error) {
	positions := SamplePositions(region.Length(), o.cfg.SampleWindow)

	// Footprint signal per condition; a failing track read skips that
	// condition for this region only.
	footprints := make(map[string][]float64, len(o.cfg.Conditions))
	for _, cond := range o.cfg.Conditions {
		values, err := o.tracks[cond].Values(region.Chrom, region.Start, region.End)
		if err != nil {
			log.Printf("scan: region %s: %v", region, errors.TrackRead(cond, err))
			continue
		}
		nanToZero(values)
		footprints[cond] = values
		for _, pos := range positions {
			if pos < len(values) {
				bg.Signal[cond] = append(bg.Signal[cond], values[pos])
			}
		}
	}

	// GC fraction over the region, computed on a symmetrically extended
	// window so the rolling mean has context at the region edges. The
	// extension padding is trimmed back off afterwards.
	extend := (o.cfg.GCWindow + 1) / 2
	extended, ok := region.Extend(extend).ClipToBoundary(chromLens[region.Chrom], genomic.BoundaryCut)
	if !ok {
		extended = region
	}
	seq, err := o.seq.Fetch(region.Chrom, extended.Start, extended.End)
	if err != nil {
		return 0, 0, err
	}
	gcProfile := GCProfile(seq, o.cfg.GCWindow)
	leftPad := region.Start - extended.Start
	rightPad := len(gcProfile) - leftPad - region.Length()
	if leftPad < 0 || rightPad < 0 {
		leftPad, rightPad = 0, 0
	}
	gc := gcProfile[leftPad : len(gcProfile)-rightPad]
	for _, pos := range positions {
		if pos < len(gc) {
			bg.GC = append(bg.GC, gc[pos])
		}
	}

	// Scan the unextended sequence and attach the derived columns at each
	// site's midpoint.
	inner := seq[leftPad : len(seq)-rightPad]
	raw := o.scanner.Scan(inner, region)
	peakCols := region.Columns()
	byMotif := make(map[string][]genomic.Occurrence)
	for _, occ := range raw {
		pos := occ.Midpoint(region.Start)
		if pos < 0 {
			pos = 0
		}
		if pos >= len(gc) {
			pos = len(gc) - 1
		}
		if pos >= 0 {
			occ.GC = gc[pos]
		}
		occ.Signals = make([]float64, len(o.cfg.Conditions))
		for i, cond := range o.cfg.Conditions {
			if fp := footprints[cond]; pos >= 0 && pos < len(fp) {
				occ.Signals[i] = fp[pos]
			}
		}
		occ.Peak = peakCols
		byMotif[occ.MotifID] = append(byMotif[occ.MotifID], occ)
	}

	// Resolve same-motif overlaps within this region, then emit each
	// motif's sites as one atomic batch.
	emitted, removed := 0, 0
	for motifID, group := range byMotif {
		resolved, rm := genomic.ResolveOverlaps(group)
		removed += rm
		if err := o.sink.Append(motifID, resolved); err != nil {
			return emitted, removed, err
		}
		emitted += len(resolved)
	}
	return emitted, removed, nil
}

// chunkRegions splits regions into at most n contiguous chunks of near-equal
// size.
func chunkRegions(regions []genomic.Region, n int) [][]genomic.Region {
	if len(regions) == 0 {
		return nil
	}
	if n > len(regions) {
		n = len(regions)
	}
	out := make([][]genomic.Region, 0, n)
	size := len(regions) / n
	rem := len(regions) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		out = append(out, regions[start:end])
		start = end
	}
	return out
}

func nanToZero(values []float64) {
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = 0
		}
	}
}
