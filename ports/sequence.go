package ports

// SequenceAccessor provides random access to genome sequence. Fetch returns
// the bases of the half-open interval [start, end) on chrom.
type SequenceAccessor interface {
	Fetch(chrom string, start, end int) ([]byte, error)
	ChromLengths() map[string]int
}
