package stats

import (
	"math"
	"sort"
)

// DensityCurve evaluates a gaussian kernel density estimate of values on an
// evenly spaced grid of the given size, extended three bandwidths past the
// data range. The bandwidth follows the nrd0 rule: 0.9 times the smaller of
// the standard deviation and IQR/1.34, scaled by n^(-1/5).
func DensityCurve(values []float64, points int) (xs, ys []float64) {
	n := len(values)
	if n == 0 || points <= 0 {
		return nil, nil
	}

	h := bandwidth(values)

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	lo, hi := min-3*h, max+3*h

	xs = make([]float64, points)
	step := (hi - lo) / float64(points-1)
	if points == 1 {
		step = 0
	}
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}

	return xs, DensityOn(values, xs)
}

// DensityOn evaluates the kernel density estimate of values at each grid
// point in xs. Callers overlaying several estimates pass the same grid to
// each.
func DensityOn(values, xs []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	h := bandwidth(values)
	norm := 1.0 / (float64(n) * h * math.Sqrt(2*math.Pi))

	ys := make([]float64, len(xs))
	for i, x := range xs {
		var sum float64
		for _, v := range values {
			u := (x - v) / h
			sum += math.Exp(-u * u / 2)
		}
		ys[i] = sum * norm
	}
	return ys
}

// bandwidth computes the nrd0 kernel bandwidth, falling back to 1 when the
// data has no spread at all.
func bandwidth(values []float64) float64 {
	n := len(values)

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	sd := 0.0
	if n > 1 {
		sd = math.Sqrt(ss / float64(n-1))
	}

	spread := sd
	if iqr := quantile(values, 0.75) - quantile(values, 0.25); iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	if spread <= 0 {
		return 1
	}

	return 0.9 * spread * math.Pow(float64(n), -0.2)
}

// quantile interpolates the p-quantile of values (type 7, the R default).
func quantile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
