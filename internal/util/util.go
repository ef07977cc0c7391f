package util

import (
	"math"
	"slices"
	"time"
)

// Mean returns the arithmetic mean of ds, or 0 for an empty slice.
func Mean(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var sum float64
	for _, d := range ds {
		sum += float64(d)
	}
	return time.Duration(math.Round(sum / float64(len(ds))))
}

// StdDev returns the sample standard deviation of ds, or 0 with fewer than two values.
func StdDev(ds []time.Duration) time.Duration {
	if len(ds) < 2 {
		return 0
	}
	mean := float64(Mean(ds))
	var sq float64
	for _, d := range ds {
		diff := float64(d) - mean
		sq += diff * diff
	}
	return time.Duration(math.Round(math.Sqrt(sq / float64(len(ds)-1))))
}

func Min(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	return slices.Min(ds)
}

func Max(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	return slices.Max(ds)
}

// Percentile returns the nearest-rank p-th percentile (0 < p <= 100) of ds.
func Percentile(ds []time.Duration, p float64) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	sorted := slices.Clone(ds)
	slices.Sort(sorted)

	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	rank = min(max(rank, 1), len(sorted))
	return sorted[rank-1]
}

// Round Method to round to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Seconds converts d to seconds with a 10µs precision.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1e5) / 1e5
}
