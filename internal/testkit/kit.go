// Package testkit provides in-memory implementations of the collaborator
// ports plus small data generators for tests.
package testkit

import (
	"fmt"
	"math"
	"sync"

	"gobind/domain/core"
	"gobind/domain/genomic"
)

// MemorySequence is an in-memory sequence accessor.
type MemorySequence struct {
	Seqs map[string]string
}

func (m *MemorySequence) Fetch(chrom string, start, end int) ([]byte, error) {
	seq, ok := m.Seqs[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownChrom, chrom)
	}
	if start < 0 || start >= end {
		return nil, fmt.Errorf("%w: %s:%d-%d", core.ErrInvalidRegion, chrom, start, end)
	}
	if start >= len(seq) {
		return nil, nil
	}
	if end > len(seq) {
		end = len(seq)
	}
	return []byte(seq[start:end]), nil
}

func (m *MemorySequence) ChromLengths() map[string]int {
	out := make(map[string]int, len(m.Seqs))
	for chrom, seq := range m.Seqs {
		out[chrom] = len(seq)
	}
	return out
}

// MemoryTrack is an in-memory signal track. Setting Err makes every read
// fail, for exercising per-condition error handling.
type MemoryTrack struct {
	Data map[string][]float64
	Err  error
}

func (m *MemoryTrack) Values(chrom string, start, end int) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seq, ok := m.Data[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownChrom, chrom)
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

func (m *MemoryTrack) Close() error { return nil }

// ConstantTrack builds a track holding the same value at every position.
func ConstantTrack(lengths map[string]int, value float64) *MemoryTrack {
	data := make(map[string][]float64, len(lengths))
	for chrom, n := range lengths {
		seq := make([]float64, n)
		for i := range seq {
			seq[i] = value
		}
		data[chrom] = seq
	}
	return &MemoryTrack{Data: data}
}

// ScriptedScanner returns preset occurrences per region, keyed by the
// region's coordinate string.
type ScriptedScanner struct {
	Sites map[string][]genomic.Occurrence
}

func (s *ScriptedScanner) Scan(_ []byte, region genomic.Region) []genomic.Occurrence {
	return append([]genomic.Occurrence(nil), s.Sites[region.String()]...)
}

// MemorySink collects appended batches per motif.
type MemorySink struct {
	mu      sync.Mutex
	Batches map[string][][]genomic.Occurrence
	closed  bool
}

func NewMemorySink() *MemorySink {
	return &MemorySink{Batches: make(map[string][][]genomic.Occurrence)}
}

func (s *MemorySink) Append(motifID string, batch []genomic.Occurrence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.ErrSinkClosed
	}
	s.Batches[motifID] = append(s.Batches[motifID], batch)
	return nil
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.ErrSinkClosed
	}
	s.closed = true
	return nil
}

// Sites returns all occurrences appended for one motif, across batches.
func (s *MemorySink) Sites(motifID string) []genomic.Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []genomic.Occurrence
	for _, batch := range s.Batches[motifID] {
		out = append(out, batch...)
	}
	return out
}
