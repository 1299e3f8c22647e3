// Package visualize はEDAで使うプロット（ヒストグラム、散布図、相関の
// ヒートマップ）をPNGとして出力します。描画はgonum/plotに委譲します。
package visualize

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/YuminosukeSato/edago/dataset"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Histogram は1つの数値列のヒストグラムを作成する
func Histogram(values []float64, title string, bins int) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.Histogram")
	}
	if bins <= 0 {
		return nil, errors.NewValueError("visualize.Histogram", "bins must be positive")
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "visualize.Histogram")
	}
	p.Add(h)
	return p, nil
}

// Histograms はテーブルの各数値列のヒストグラムをまとめて作成する。
// 返されるマップのキーは出力ファイル名（"hist_<列名>.png"）で、
// RenderAllにそのまま渡せる。
func Histograms(t *dataset.Table, bins int, cols ...string) (map[string]*plot.Plot, error) {
	if len(cols) == 0 {
		return nil, errors.NewValueError("visualize.Histograms", "no columns given")
	}

	plots := make(map[string]*plot.Plot, len(cols))
	for _, name := range cols {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		p, err := Histogram(dropNaN(values), name, bins)
		if err != nil {
			return nil, err
		}
		plots["hist_"+name+".png"] = p
	}
	return plots, nil
}
