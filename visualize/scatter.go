package visualize

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Scatter は2つの数値列の散布図を作成する
func Scatter(x, y []float64, title, xlabel, ylabel string) (*plot.Plot, error) {
	if len(x) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.Scatter")
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("visualize.Scatter", len(x), len(y), 0)
	}

	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "visualize.Scatter")
	}
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)
	return p, nil
}

// ColoredScatter は第3の数値列で点を着色した散布図を作成する。
// EDAの「地理座標に住宅価格を重ねる」ステップに対応する。
func ColoredScatter(x, y, c []float64, title, xlabel, ylabel string) (*plot.Plot, error) {
	if len(x) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.ColoredScatter")
	}
	if len(x) != len(y) || len(x) != len(c) {
		return nil, errors.NewDimensionError("visualize.ColoredScatter", len(x), len(y), 0)
	}

	type xyc struct {
		x, y, c float64
	}
	pts := make([]xyc, 0, len(x))
	cmin, cmax := math.Inf(1), math.Inf(-1)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsNaN(c[i]) {
			continue
		}
		pts = append(pts, xyc{x[i], y[i], c[i]})
		cmin = math.Min(cmin, c[i])
		cmax = math.Max(cmax, c[i])
	}
	if len(pts) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.ColoredScatter")
	}
	if cmin == cmax {
		cmax = cmin + 1
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(cmin)
	colors.SetMax(cmax)

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.x, Y: pt.y}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "visualize.ColoredScatter")
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		clr, err := colors.At(pts[i].c)
		if err != nil {
			clr = s.GlyphStyle.Color
		}
		return draw.GlyphStyle{Color: clr, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(s)
	return p, nil
}
