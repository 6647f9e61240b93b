package analysis

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"gobind/domain/motif"
	dstats "gobind/domain/stats"
	"gobind/internal/errors"
	"gobind/internal/sites"
)

// ProcessAll runs one statistics task per catalog motif over the temp
// streams in tmpDir, bounded by cfg.Workers concurrent tasks. A failing
// motif is logged and skipped without affecting its siblings; only context
// cancellation and aggregation integrity errors are fatal.
func ProcessAll(ctx context.Context, catalog *motif.Catalog, tmpDir string, cfg Config) (*dstats.OverviewTable, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		rows []*dstats.MotifOverview
	)
	for _, m := range catalog.Motifs() {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(m motif.Motif) {
			defer wg.Done()
			defer sem.Release(1)

			row, err := ProcessMotif(m, sites.TempPath(tmpDir, m.ID), cfg)
			if err != nil {
				skip := errors.MotifSkipped(m.ID, err)
				log.Printf("analysis: %v", skip)
				return
			}
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
		}(m)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := dstats.NewOverviewTable()
	for _, row := range rows {
		if err := table.Merge(row); err != nil {
			return nil, errors.WithCode(errors.CodeIntegrity, err)
		}
	}
	return table, nil
}
