// Package bigwig adapts gonetics bigWig tracks to the engine's signal track
// port. Tracks are imported at base resolution once per condition; reads are
// in-memory slices afterwards.
package bigwig

import (
	"math"

	gn "github.com/pbenner/gonetics"

	"gobind/internal/errors"
)

// Track serves per-base signal values for one condition.
type Track struct {
	data map[string][]float64
}

// Open imports a bigWig file at base resolution.
func Open(path string) (*Track, error) {
	track := gn.SimpleTrack{}
	if err := track.ImportBigWig(path, "", gn.BinMean, 1, 0, math.NaN()); err != nil {
		return nil, errors.WithCode(errors.CodeTrackRead, errors.Wrapf(err, "failed to import bigWig %s", path))
	}
	data := make(map[string][]float64, len(track.Data))
	for chrom, values := range track.Data {
		data[chrom] = values
	}
	return &Track{data: data}, nil
}

// Values returns one value per base of [start, end) on chrom. Positions
// without data are NaN; the engine coerces them to zero.
func (t *Track) Values(chrom string, start, end int) ([]float64, error) {
	seq, ok := t.data[chrom]
	if !ok {
		return nil, errors.New(errors.CodeTrackRead, "chromosome "+chrom+" not present in track")
	}
	out := make([]float64, end-start)
	for i := range out {
		pos := start + i
		if pos < 0 || pos >= len(seq) {
			out[i] = math.NaN()
			continue
		}
		out[i] = seq[pos]
	}
	return out, nil
}

// ChromLengths maps each covered chromosome to its covered length.
func (t *Track) ChromLengths() map[string]int {
	out := make(map[string]int, len(t.data))
	for chrom, seq := range t.data {
		out[chrom] = len(seq)
	}
	return out
}

// Close releases the imported data.
func (t *Track) Close() error {
	t.data = nil
	return nil
}
