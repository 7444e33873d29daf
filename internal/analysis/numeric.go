package analysis

import (
	"errors"
	"math"
	"sort"
)

// ErrNotEnoughData is returned when an analysis has too few observations.
var ErrNotEnoughData = errors.New("not enough data")

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, averaging the two central values for an
// even count. Returns 0 for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Quantile returns the q-quantile (0..1) using linear interpolation between
// order statistics.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// MinMaxScale rescales each column of a row-major matrix into [0, 1].
// Constant columns map to 0.
func MinMaxScale(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	mins := make([]float64, cols)
	maxs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		mins[j] = math.Inf(1)
		maxs[j] = math.Inf(-1)
	}
	for _, row := range rows {
		for j, v := range row {
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}

	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		scaled[i] = make([]float64, cols)
		for j, v := range row {
			span := maxs[j] - mins[j]
			if span == 0 {
				continue
			}
			scaled[i][j] = (v - mins[j]) / span
		}
	}
	return scaled
}

// Ranks assigns competition ranks ("min" method: ties share the lowest rank)
// to values, highest value ranked 1.
func Ranks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	ranks := make([]float64, n)
	for pos := 0; pos < n; {
		end := pos
		for end+1 < n && values[order[end+1]] == values[order[pos]] {
			end++
		}
		for i := pos; i <= end; i++ {
			ranks[order[i]] = float64(pos + 1)
		}
		pos = end + 1
	}
	return ranks
}

// Spearman computes the Spearman rank correlation between two paired samples.
// Ties are handled by ranking and applying the Pearson formula to the ranks.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.New("samples differ in length")
	}
	if len(x) < 2 {
		return 0, ErrNotEnoughData
	}
	return pearson(averageRanks(x), averageRanks(y))
}

// averageRanks assigns fractional ranks (ties share the average rank),
// the convention Spearman correlation expects.
func averageRanks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	for pos := 0; pos < n; {
		end := pos
		for end+1 < n && values[order[end+1]] == values[order[pos]] {
			end++
		}
		avg := float64(pos+end)/2 + 1
		for i := pos; i <= end; i++ {
			ranks[order[i]] = avg
		}
		pos = end + 1
	}
	return ranks
}

func pearson(x, y []float64) (float64, error) {
	meanX, meanY := Mean(x), Mean(y)
	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, errors.New("zero variance sample")
	}
	return cov / math.Sqrt(varX*varY), nil
}

// Euclidean returns the Euclidean distance between two equal-length vectors.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
