package stats

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/edago/dataset"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

// CorrelationMatrix は行列の列間のピアソン相関行列を計算する。
// 計算はgonum/statに委譲する。
func CorrelationMatrix(X mat.Matrix) (*mat.SymDense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "stats.CorrelationMatrix")
	}

	dst := mat.NewSymDense(c, nil)
	stat.CorrelationMatrix(dst, X, nil)
	return dst, nil
}

// Correlation は1つの列と目的列の相関係数
type Correlation struct {
	Column string
	R      float64
}

// CorrelationsWith は指定した各列と目的列のピアソン相関係数を計算し、
// 相関の強い順（降順）に並べて返す。EDAにおける
// 「どの特徴量が住宅価格と最も相関するか」のステップに対応する。
func CorrelationsWith(t *dataset.Table, target string, cols ...string) ([]Correlation, error) {
	y, err := t.Column(target)
	if err != nil {
		return nil, err
	}

	result := make([]Correlation, 0, len(cols))
	for _, name := range cols {
		if name == target {
			continue
		}
		x, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if len(x) != len(y) {
			return nil, errors.NewDimensionError("stats.CorrelationsWith", len(y), len(x), 0)
		}
		result = append(result, Correlation{Column: name, R: stat.Correlation(x, y, nil)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].R > result[j].R
	})
	return result, nil
}
