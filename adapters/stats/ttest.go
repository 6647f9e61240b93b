package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	dstats "gobind/domain/stats"
)

// SampleCap bounds the sample sizes fed into the t-test so that very large
// site counts cannot drive p-values to zero.
const SampleCap = 50000

// WelchPValue computes the two-sided p-value of a two-sample Welch t-test
// from fitted summary statistics. Both sample sizes are the observed count
// capped at cap, mirroring the reference behavior of testing the observed
// distribution against an equally sized draw from the background.
func WelchPValue(obs, bg dstats.NormalFit, capN int) float64 {
	n := obs.N
	if capN > 0 && n > capN {
		n = capN
	}
	if n < 2 {
		return 1
	}
	nf := float64(n)
	v1 := obs.Std * obs.Std / nf
	v2 := bg.Std * bg.Std / nf
	se := math.Sqrt(v1 + v2)
	if se == 0 {
		if obs.Mean == bg.Mean {
			return 1
		}
		return 0
	}
	t := (obs.Mean - bg.Mean) / se

	// Welch-Satterthwaite degrees of freedom.
	df := (v1 + v2) * (v1 + v2) / (v1*v1/(nf-1) + v2*v2/(nf-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}

// Differential fits the observed log2 fold changes and compares them to the
// background fit, producing the effect size ("change", rounded to 5 decimals)
// and p-value for one comparison. Equal means are the degenerate case (for
// example two identical signal tracks) and yield exactly change 0, p-value 1.
func Differential(observed []float64, bg dstats.NormalFit) dstats.DifferentialResult {
	obs, err := FitNormal(observed)
	if err != nil {
		return dstats.DifferentialResult{Change: 0, PValue: 1}
	}
	if obs.Mean == bg.Mean {
		return dstats.DifferentialResult{Change: 0, PValue: 1}
	}
	return dstats.DifferentialResult{
		Change: Round5(EffectSize(obs, bg)),
		PValue: WelchPValue(obs, bg, SampleCap),
	}
}
