// Package stats はEDAで使う記述統計と相関計算を提供します。
// 数値計算そのものはgonum/statに委譲し、このパッケージはテーブルの列との
// 橋渡しだけを行います。
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/edago/core/parallel"
	"github.com/YuminosukeSato/edago/dataset"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Summary は1列分の記述統計量
type Summary struct {
	Column string
	Count  int // NaNを除いた値の数
	Mean   float64
	Std    float64 // 不偏標準偏差
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe は指定した数値列ごとの記述統計量を計算する。
// 欠損値（NaN）は集計から除外される。
//
// 列を指定しない場合は数値としてパースできる全列が対象になる。
func Describe(t *dataset.Table, cols ...string) ([]Summary, error) {
	if len(cols) == 0 {
		for _, name := range t.Columns() {
			if _, err := t.Column(name); err == nil {
				cols = append(cols, name)
			}
		}
	}
	if len(cols) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "stats.Describe")
	}

	summaries := make([]Summary, len(cols))
	errs := make([]error, len(cols))

	// 列ごとに独立した計算なのでCPUコアに分配する
	parallel.Parallelize(len(cols), func(start, end int) {
		for i := start; i < end; i++ {
			values, err := t.Column(cols[i])
			if err != nil {
				errs[i] = err
				continue
			}
			summaries[i] = summarize(cols[i], values)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// summarize は1列分の統計量を計算する
func summarize(name string, values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	s := Summary{Column: name, Count: len(clean)}
	if len(clean) == 0 {
		s.Mean = math.NaN()
		s.Std = math.NaN()
		s.Min = math.NaN()
		s.Q25 = math.NaN()
		s.Median = math.NaN()
		s.Q75 = math.NaN()
		s.Max = math.NaN()
		return s
	}

	sort.Float64s(clean)

	s.Mean = stat.Mean(clean, nil)
	s.Std = stat.StdDev(clean, nil)
	s.Min = clean[0]
	s.Q25 = stat.Quantile(0.25, stat.Empirical, clean, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, clean, nil)
	s.Q75 = stat.Quantile(0.75, stat.Empirical, clean, nil)
	s.Max = clean[len(clean)-1]
	return s
}
