// Package motif provides a simple consensus-based scanning capability for
// the CLI. It matches IUPAC consensus patterns on both strands; PWM scanning
// is deliberately outside this module and can be bound through the same port.
package motif

import (
	"fmt"

	"gobind/domain/genomic"
	dmotif "gobind/domain/motif"
)

// iupac maps consensus codes to a bitmask over A=1, C=2, G=4, T=8.
var iupac = map[byte]uint8{
	'A': 1, 'C': 2, 'G': 4, 'T': 8,
	'R': 1 | 4, 'Y': 2 | 8, 'S': 2 | 4, 'W': 1 | 8,
	'K': 4 | 8, 'M': 1 | 2,
	'B': 2 | 4 | 8, 'D': 1 | 4 | 8, 'H': 1 | 2 | 8, 'V': 1 | 2 | 4,
	'N': 1 | 2 | 4 | 8,
}

var baseBit = map[byte]uint8{
	'A': 1, 'a': 1, 'C': 2, 'c': 2, 'G': 4, 'g': 4, 'T': 8, 't': 8,
}

var complement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
}

type pattern struct {
	id      string
	forward []uint8
	reverse []uint8
	weight  float64 // informative (non-N) positions
}

// ConsensusScanner scans sequence for IUPAC consensus occurrences. The match
// score is the fraction of informative consensus positions, so degenerate
// patterns score lower than exact ones.
type ConsensusScanner struct {
	patterns []pattern
}

// NewConsensusScanner compiles one consensus per catalog motif. Consensi are
// keyed by motif id.
func NewConsensusScanner(catalog *dmotif.Catalog, consensi map[string]string) (*ConsensusScanner, error) {
	s := &ConsensusScanner{}
	for _, m := range catalog.Motifs() {
		cons, ok := consensi[m.ID]
		if !ok || cons == "" {
			return nil, fmt.Errorf("no consensus for motif %s", m.ID)
		}
		p := pattern{id: m.ID}
		for i := 0; i < len(cons); i++ {
			code := upper(cons[i])
			mask, ok := iupac[code]
			if !ok {
				return nil, fmt.Errorf("motif %s: invalid IUPAC code %q", m.ID, cons[i])
			}
			p.forward = append(p.forward, mask)
			if mask != iupac['N'] {
				p.weight++
			}
		}
		for i := len(cons) - 1; i >= 0; i-- {
			p.reverse = append(p.reverse, iupac[complement[upper(cons[i])]])
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Scan reports every consensus occurrence in seq with absolute genomic
// coordinates derived from region.
func (s *ConsensusScanner) Scan(seq []byte, region genomic.Region) []genomic.Occurrence {
	var out []genomic.Occurrence
	for _, p := range s.patterns {
		n := len(p.forward)
		if n == 0 || n > len(seq) {
			continue
		}
		score := p.weight / float64(n)
		for off := 0; off+n <= len(seq); off++ {
			if matches(seq[off:off+n], p.forward) {
				out = append(out, s.site(p.id, region, off, n, '+', score))
			} else if matches(seq[off:off+n], p.reverse) {
				out = append(out, s.site(p.id, region, off, n, '-', score))
			}
		}
	}
	return out
}

func (s *ConsensusScanner) site(id string, region genomic.Region, off, n int, strand byte, score float64) genomic.Occurrence {
	return genomic.Occurrence{
		MotifID: id,
		Chrom:   region.Chrom,
		Start:   region.Start + off,
		End:     region.Start + off + n,
		Strand:  strand,
		Score:   score,
	}
}

func matches(window []byte, masks []uint8) bool {
	for i, mask := range masks {
		bit, ok := baseBit[window[i]]
		if !ok || bit&mask == 0 {
			return false
		}
	}
	return true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
