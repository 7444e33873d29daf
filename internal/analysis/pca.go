package analysis

import (
	"math"
	"math/rand"
)

// PCA projects row-major observations onto the principal components needed to
// explain at least varianceTarget of the total variance. Components are
// extracted from the covariance matrix by power iteration with deflation,
// largest eigenvalue first.
func PCA(rows [][]float64, varianceTarget float64) ([][]float64, error) {
	if len(rows) < 2 {
		return nil, ErrNotEnoughData
	}
	if varianceTarget <= 0 || varianceTarget > 1 {
		varianceTarget = 0.95
	}

	dims := len(rows[0])
	centered := center(rows)
	cov := covariance(centered)

	total := 0.0
	for j := 0; j < dims; j++ {
		total += cov[j][j]
	}
	if total == 0 {
		return nil, ErrNotEnoughData
	}

	var components [][]float64
	explained := 0.0
	// Deterministic seed: repeated runs must produce the same projection.
	rng := rand.New(rand.NewSource(1))
	for len(components) < dims && explained/total < varianceTarget {
		vector, value := dominantEigen(cov, rng)
		if value <= 1e-12 {
			break
		}
		components = append(components, vector)
		explained += value
		deflate(cov, vector, value)
	}
	if len(components) == 0 {
		return nil, ErrNotEnoughData
	}

	projected := make([][]float64, len(centered))
	for i, row := range centered {
		projected[i] = make([]float64, len(components))
		for c, component := range components {
			var dot float64
			for j, v := range row {
				dot += v * component[j]
			}
			projected[i][c] = dot
		}
	}
	return projected, nil
}

func center(rows [][]float64) [][]float64 {
	dims := len(rows[0])
	means := make([]float64, dims)
	for _, row := range rows {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(len(rows))
	}

	centered := make([][]float64, len(rows))
	for i, row := range rows {
		centered[i] = make([]float64, dims)
		for j, v := range row {
			centered[i][j] = v - means[j]
		}
	}
	return centered
}

func covariance(centered [][]float64) [][]float64 {
	n := len(centered)
	dims := len(centered[0])
	cov := make([][]float64, dims)
	for j := range cov {
		cov[j] = make([]float64, dims)
	}
	for _, row := range centered {
		for a := 0; a < dims; a++ {
			for b := a; b < dims; b++ {
				cov[a][b] += row[a] * row[b]
			}
		}
	}
	for a := 0; a < dims; a++ {
		for b := a; b < dims; b++ {
			cov[a][b] /= float64(n - 1)
			cov[b][a] = cov[a][b]
		}
	}
	return cov
}

// dominantEigen finds the largest eigenpair of a symmetric matrix by power
// iteration.
func dominantEigen(matrix [][]float64, rng *rand.Rand) ([]float64, float64) {
	dims := len(matrix)
	vector := make([]float64, dims)
	for j := range vector {
		vector[j] = rng.Float64() + 0.1
	}
	normalize(vector)

	next := make([]float64, dims)
	for iter := 0; iter < 500; iter++ {
		for a := 0; a < dims; a++ {
			var sum float64
			for b := 0; b < dims; b++ {
				sum += matrix[a][b] * vector[b]
			}
			next[a] = sum
		}
		norm := normalize(next)
		if norm == 0 {
			return vector, 0
		}
		delta := 0.0
		for j := range vector {
			delta += math.Abs(next[j] - vector[j])
		}
		copy(vector, next)
		if delta < 1e-12 {
			break
		}
	}

	// Rayleigh quotient gives the eigenvalue.
	var value float64
	for a := 0; a < dims; a++ {
		var sum float64
		for b := 0; b < dims; b++ {
			sum += matrix[a][b] * vector[b]
		}
		value += vector[a] * sum
	}
	return append([]float64(nil), vector...), value
}

func deflate(matrix [][]float64, vector []float64, value float64) {
	for a := range matrix {
		for b := range matrix[a] {
			matrix[a][b] -= value * vector[a] * vector[b]
		}
	}
}

func normalize(vector []float64) float64 {
	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return 0
	}
	for j := range vector {
		vector[j] /= norm
	}
	return norm
}
