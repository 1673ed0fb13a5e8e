// Package statistics provides the bootstrap resampling used to attach
// confidence intervals to cross-dataset metric deltas.
package statistics

import (
	"math"
	"math/rand"
	"sort"

	"github.com/catbench/leaderboard/internal/metrics"
)

// Interval is a bootstrap confidence interval over a set of per-dataset
// values, computed with the percentile method.
type Interval struct {
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Mean      float64 `json:"mean"`
	Level     float64 `json:"confidence_level"`
	Resamples int     `json:"resamples"`
}

// DefaultResamples is the number of bootstrap resamples.
const DefaultResamples = 10000

// BootstrapCI computes a confidence interval over values. level should be in
// (0, 1), e.g. 0.95. A non-negative seed makes the interval reproducible; a
// negative seed uses a non-deterministic source. Returns nil when fewer than
// 2 values exist, since a resampled interval over a single observation is
// meaningless.
func BootstrapCI(values []float64, level float64, seed int64) *Interval {
	n := len(values)
	if n < 2 {
		return nil
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	iters := DefaultResamples

	// Resample with replacement, keeping the mean of each resample.
	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = values[rng.Intn(n)]
		}
		bootMeans[i] = metrics.Mean(sample)
	}

	sort.Float64s(bootMeans)

	alpha := 1.0 - level
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return &Interval{
		Lower:     bootMeans[loIdx],
		Upper:     bootMeans[hiIdx],
		Mean:      metrics.Mean(values),
		Level:     level,
		Resamples: iters,
	}
}

// Significant reports whether the interval excludes zero, i.e. the underlying
// change is unlikely to be resampling noise at the interval's level.
func Significant(ci *Interval) bool {
	return ci != nil && (ci.Lower > 0 || ci.Upper < 0)
}
