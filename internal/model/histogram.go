package model

import (
	"fmt"
	"math"
)

const BucketCount = 10

// Histogram counts tasks per equal-width probability bucket over [0,1].
// Max is never below 1 so callers can divide by it.
type Histogram struct {
	Buckets [BucketCount]int
	Max     int
	Total   int
}

func BucketIndex(p float64) int {
	idx := int(math.Floor(ClampProbability(p) * BucketCount))
	if idx > BucketCount-1 {
		return BucketCount - 1
	}
	return idx
}

func BuildHistogram(tasks []Task) Histogram {
	var h Histogram
	for _, t := range tasks {
		h.Buckets[BucketIndex(t.Probability)]++
	}
	h.Total = len(tasks)
	h.Max = 1
	for _, c := range h.Buckets {
		if c > h.Max {
			h.Max = c
		}
	}
	return h
}

func (h Histogram) Ratio(i int) float64 {
	if i < 0 || i >= BucketCount {
		return 0
	}
	max := h.Max
	if max < 1 {
		max = 1
	}
	return float64(h.Buckets[i]) / float64(max)
}

func BucketLabel(i int) string {
	return fmt.Sprintf("%.1f", float64(i)/BucketCount)
}
