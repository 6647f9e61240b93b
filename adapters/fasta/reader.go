// Package fasta provides a whole-genome in-memory sequence accessor backed
// by a FASTA file.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"gobind/domain/core"
	"gobind/internal/errors"
)

// Accessor holds every chromosome sequence in memory and serves random
// access fetches. It is safe for concurrent readers.
type Accessor struct {
	seqs  map[string][]byte
	order []string
}

// Open reads an entire FASTA file. Record ids are the header token up to the
// first whitespace.
func Open(path string) (*Accessor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeSequenceRead, errors.Wrapf(err, "failed to open genome %s", path))
	}
	defer f.Close()

	a := &Accessor{seqs: make(map[string][]byte)}
	var (
		name string
		buf  bytes.Buffer
	)
	flush := func() error {
		if name == "" {
			return nil
		}
		if _, ok := a.seqs[name]; ok {
			return fmt.Errorf("duplicate FASTA record %q in %s", name, path)
		}
		a.seqs[name] = append([]byte(nil), buf.Bytes()...)
		a.order = append(a.order, name)
		buf.Reset()
		return nil
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			fields := bytes.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("empty FASTA header in %s", path)
			}
			name = string(fields[0])
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("sequence before first FASTA header in %s", path)
		}
		buf.Write(line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithCode(errors.CodeSequenceRead, errors.Wrapf(err, "failed to read genome %s", path))
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(a.seqs) == 0 {
		return nil, fmt.Errorf("no FASTA records in %s", path)
	}
	return a, nil
}

// Fetch returns the bases of [start, end) on chrom. The end is clipped to
// the chromosome length.
func (a *Accessor) Fetch(chrom string, start, end int) ([]byte, error) {
	seq, ok := a.seqs[chrom]
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
	return seq[start:end], nil
}

// ChromLengths maps each chromosome to its length.
func (a *Accessor) ChromLengths() map[string]int {
	out := make(map[string]int, len(a.seqs))
	for name, seq := range a.seqs {
		out[name] = len(seq)
	}
	return out
}

// Chroms returns chromosome names in file order.
func (a *Accessor) Chroms() []string {
	return a.order
}
