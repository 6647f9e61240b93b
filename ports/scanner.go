package ports

import "gobind/domain/genomic"

// MotifScanner is the opaque scanning capability bound at catalog setup.
// Scan reports raw motif occurrences in seq, which covers region exactly;
// returned occurrences carry motif id, absolute genomic coordinates, strand
// and raw match score. Derived columns (GC, signals, peak annotation) are
// attached by the orchestrator afterwards.
type MotifScanner interface {
	Scan(seq []byte, region genomic.Region) []genomic.Occurrence
}
