package profile

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// percentiles computed for every numeric column, keyed as "5%" etc.
var percentilePoints = []struct {
	Name string
	P    float64
}{
	{"5%", 0.05},
	{"25%", 0.25},
	{"50%", 0.50},
	{"75%", 0.75},
	{"95%", 0.95},
}

func (r *Run) describeNumeric(s *columnStats, rec *Record) {
	xs := s.floats()

	sample := stats.Sample{Xs: xs}
	sample.Sort()

	mean := sample.Mean()
	std := sample.StdDev()

	min, max := bounds(xs)

	rec.Set("type", Numeric)
	rec.Set("mean", mean)
	rec.Set("std", std)
	rec.Set("variance", sample.Variance())
	rec.Set("min", min)
	rec.Set("max", max)
	rec.Set("range", max-min)

	for _, pp := range percentilePoints {
		rec.Set(pp.Name, quantile(xs, pp.P))
	}

	q25, _ := rec.Get("25%")
	q75, _ := rec.Get("75%")
	rec.Set("iqr", q75.(float64)-q25.(float64))

	rec.Set("kurtosis", kurtosis(xs))
	rec.Set("skewness", skewness(xs))
	rec.Set("sum", sample.Sum())
	rec.Set("mad", meanAbsDev(xs, mean))
	rec.Set("cv", coefVar(std, mean))

	zeros := 0
	for _, x := range xs {
		if x == 0 {
			zeros++
		}
	}

	rec.Set("n_zeros", zeros)
	rec.Set("p_zeros", ratio(zeros, s.length))

	rec.Set("histogram", renderHistogram(xs, r.Bins, false))
	rec.Set("mini_histogram", renderHistogram(xs, r.Bins, true))
}

// quantile is the linearly-interpolated empirical quantile (type 7)
// over a sorted sample: the rank p*(n-1) split between its two
// neighboring order statistics.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}

	h := p * float64(n-1)
	i := int(math.Floor(h))

	if i >= n-1 {
		return sorted[n-1]
	}

	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// floats returns the observed values as float64, converting integer
// columns.
func (s *columnStats) floats() []float64 {
	xs := make([]float64, 0, len(s.values))

	for _, v := range s.values {
		switch x := v.(type) {
		case float64:
			xs = append(xs, x)
		case int64:
			xs = append(xs, float64(x))
		}
	}

	return xs
}

func bounds(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}

	min, max := xs[0], xs[0]

	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	return min, max
}

// coefVar is std/mean with NaN when the mean is zero.
func coefVar(std, mean float64) float64 {
	if mean == 0 {
		return math.NaN()
	}

	return std / mean
}

// meanAbsDev is the mean absolute deviation around the mean.
func meanAbsDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	var sum float64

	for _, x := range xs {
		sum += math.Abs(x - mean)
	}

	return sum / float64(len(xs))
}

// skewness is the bias-adjusted Fisher-Pearson sample skewness (G1).
// NaN for fewer than three observations.
func skewness(xs []float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return math.NaN()
	}

	sample := stats.Sample{Xs: xs}

	mean := sample.Mean()
	std := sample.StdDev()

	if std == 0 {
		return math.NaN()
	}

	var m3 float64

	for _, x := range xs {
		d := x - mean
		m3 += d * d * d
	}

	return n / ((n - 1) * (n - 2)) * m3 / (std * std * std)
}

// kurtosis is the bias-adjusted sample excess kurtosis (G2). NaN for
// fewer than four observations.
func kurtosis(xs []float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return math.NaN()
	}

	sample := stats.Sample{Xs: xs}

	mean := sample.Mean()
	variance := sample.Variance()

	if variance == 0 {
		return math.NaN()
	}

	var m4 float64

	for _, x := range xs {
		d := x - mean
		m4 += d * d * d * d
	}

	g2 := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3)) * m4 / (variance * variance)

	return g2 - 3*(n-1)*(n-1)/((n-2)*(n-3))
}
