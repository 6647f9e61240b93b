package scan

// gcWeight scores a base for GC content: strong (G/C) as 1, weak (A/T) as 0,
// ambiguous bases as 0.5.
func gcWeight(b byte) float64 {
	switch b {
	case 'G', 'g', 'C', 'c':
		return 1
	case 'A', 'a', 'T', 't':
		return 0
	default:
		return 0.5
	}
}

// GCProfile computes the rolling-mean GC fraction of seq with a centered
// window. Near the sequence ends the window shrinks to the available bases.
func GCProfile(seq []byte, window int) []float64 {
	if len(seq) == 0 {
		return nil
	}
	if window < 1 {
		window = 1
	}
	prefix := make([]float64, len(seq)+1)
	for i, b := range seq {
		prefix[i+1] = prefix[i] + gcWeight(b)
	}
	half := window / 2
	out := make([]float64, len(seq))
	for i := range seq {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + window - half
		if hi > len(seq) {
			hi = len(seq)
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}
