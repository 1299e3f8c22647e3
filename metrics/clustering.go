// Package metrics はクラスタリング結果の評価指標を提供します。
// エンコーディング比較デモで、序数エンコーディングとone-hotエンコーディングが
// クラスタリング品質に与える影響を数値で比較するために使います。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/core/parallel"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Inertia は各サンプルと割り当てられたクラスタ中心との距離の二乗和を計算する
func Inertia(X mat.Matrix, centers [][]float64, labels []int) (float64, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "metrics.Inertia")
	}
	if len(labels) != rows {
		return 0, errors.NewDimensionError("metrics.Inertia", rows, len(labels), 0)
	}

	total := 0.0
	sample := make([]float64, cols)
	for i, label := range labels {
		if label < 0 || label >= len(centers) {
			return 0, errors.NewValueError("metrics.Inertia", "label out of range")
		}
		mat.Row(sample, i, X)
		center := centers[label]
		for j := range sample {
			diff := sample[j] - center[j]
			total += diff * diff
		}
	}
	return total, nil
}

// SilhouetteScore は全サンプルのシルエット係数の平均を計算する。
//
// 各サンプルについて、a(i)を同一クラスタ内の他サンプルとの平均距離、
// b(i)を他クラスタごとの平均距離の最小値として
// s(i) = (b - a) / max(a, b) を求める。サンプルが1つしかないクラスタの
// s(i)は0とする（scikit-learnと同じ扱い）。
//
// 値は[-1, 1]の範囲で、1に近いほどクラスタがよく分離している。
func SilhouetteScore(X mat.Matrix, labels []int) (float64, error) {
	rows, _ := X.Dims()
	if rows == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "metrics.SilhouetteScore")
	}
	if len(labels) != rows {
		return 0, errors.NewDimensionError("metrics.SilhouetteScore", rows, len(labels), 0)
	}

	nClusters := 0
	counts := map[int]int{}
	for _, label := range labels {
		if label < 0 {
			return 0, errors.NewValueError("metrics.SilhouetteScore", "label out of range")
		}
		counts[label]++
		if label+1 > nClusters {
			nClusters = label + 1
		}
	}
	if len(counts) < 2 {
		return 0, errors.NewValueError("metrics.SilhouetteScore", "silhouette is undefined for a single cluster")
	}

	scores := make([]float64, rows)

	// サンプルごとに独立した計算なのでCPUコアに分配する
	parallel.Parallelize(rows, func(start, end int) {
		var sample, other []float64
		sums := make([]float64, nClusters)
		for i := start; i < end; i++ {
			sample = mat.Row(sample, i, X)

			for c := range sums {
				sums[c] = 0
			}
			for k := 0; k < rows; k++ {
				if k == i {
					continue
				}
				other = mat.Row(other, k, X)
				sums[labels[k]] += euclidean(sample, other)
			}

			own := labels[i]
			if counts[own] <= 1 {
				scores[i] = 0
				continue
			}

			a := sums[own] / float64(counts[own]-1)
			b := math.Inf(1)
			for c := 0; c < nClusters; c++ {
				if c == own || counts[c] == 0 {
					continue
				}
				if m := sums[c] / float64(counts[c]); m < b {
					b = m
				}
			}

			if a == 0 && b == 0 {
				scores[i] = 0
				continue
			}
			scores[i] = (b - a) / math.Max(a, b)
		}
	})

	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(rows), nil
}

// euclidean はユークリッド距離を計算する
func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
