package analytics

import "math"

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentChange compares two window means. The epsilon keeps the sign of
// the change when the earlier mean is at or near zero.
func percentChange(earlier, recent float64) float64 {
	return (recent - earlier) / (math.Abs(earlier) + ChangeEpsilon) * 100
}

// splitWindows returns the earlier and recent halves at floor(n/2)
func splitWindows[T any](values []T) (earlier, recent []T) {
	mid := len(values) / 2
	return values[:mid], values[mid:]
}

func ptr[T any](v T) *T {
	return &v
}
