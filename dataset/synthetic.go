package dataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// SyntheticEncodingSample generates the sample used by the encoding
// walkthrough: n rows, each assigned a category drawn uniformly from the
// given set, plus two numeric features scattered around a per-category
// center. The centers sit on a unit circle so every category is equally
// far from its neighbors and the cluster structure mirrors the categories
// exactly.
//
// The same seed always yields the same sample.
func SyntheticEncodingSample(n int, categories []string, std float64, seed int64) ([]string, *mat.Dense, error) {
	if n <= 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "SyntheticEncodingSample")
	}
	if len(categories) == 0 {
		return nil, nil, errors.NewValueError("SyntheticEncodingSample", "no categories given")
	}

	rng := rand.New(rand.NewSource(seed))

	k := len(categories)
	centers := make([][2]float64, k)
	for i := range centers {
		angle := 2 * math.Pi * float64(i) / float64(k)
		centers[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}

	labels := make([]string, n)
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		c := rng.Intn(k)
		labels[i] = categories[c]
		X.Set(i, 0, centers[c][0]+rng.NormFloat64()*std)
		X.Set(i, 1, centers[c][1]+rng.NormFloat64()*std)
	}
	return labels, X, nil
}
