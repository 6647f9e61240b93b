// Package stats implements the distribution fitting and the differential
// test used by the per-motif statistics pipeline.
package stats

import (
	"math"

	"github.com/montanaflynn/stats"

	"gobind/domain/core"
	dstats "gobind/domain/stats"
)

// FitNormal fits a normal distribution to a sample, returning the mean and
// the population standard deviation (maximum-likelihood fit).
func FitNormal(values []float64) (dstats.NormalFit, error) {
	if len(values) == 0 {
		return dstats.NormalFit{}, core.ErrEmptySample
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return dstats.NormalFit{}, err
	}
	std, err := stats.StandardDeviation(values)
	if err != nil {
		return dstats.NormalFit{}, err
	}
	return dstats.NormalFit{Mean: mean, Std: std, N: len(values)}, nil
}

// EffectSize is the standardized difference between the observed and
// background means: (obsMean - bgMean) / mean(obsStd, bgStd). It is exactly
// zero when the means are equal.
func EffectSize(obs, bg dstats.NormalFit) float64 {
	if obs.Mean == bg.Mean {
		return 0
	}
	denom := (obs.Std + bg.Std) / 2
	if denom == 0 {
		return math.Inf(sign(obs.Mean - bg.Mean))
	}
	return (obs.Mean - bg.Mean) / denom
}

// Round5 rounds to the 5-decimal precision used in all score output.
func Round5(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return math.Round(x*1e5) / 1e5
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
