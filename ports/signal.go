package ports

// SignalTrack provides per-condition signal values over genomic intervals.
// Values returns one value per base of [start, end); positions without data
// may be NaN, which the engine coerces to zero.
type SignalTrack interface {
	Values(chrom string, start, end int) ([]float64, error)
	Close() error
}
