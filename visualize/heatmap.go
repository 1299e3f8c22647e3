package visualize

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// symGrid は対称行列をplotter.GridXYZとして見せるアダプタ
type symGrid struct {
	m *mat.SymDense
}

func (g symGrid) Dims() (int, int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g symGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g symGrid) X(c int) float64    { return float64(c) }
func (g symGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap は相関行列のヒートマップを作成する。
// カラースケールは[-1, 1]に固定し、軸には列名を振る。
func CorrelationHeatmap(corr *mat.SymDense, names []string) (*plot.Plot, error) {
	if corr == nil || corr.SymmetricDim() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.CorrelationHeatmap")
	}
	if len(names) != corr.SymmetricDim() {
		return nil, errors.NewDimensionError("visualize.CorrelationHeatmap", corr.SymmetricDim(), len(names), 1)
	}

	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(symGrid{m: corr}, pal)
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = "correlation matrix"

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = -1.2
	p.X.Tick.Label.XAlign = -0.1
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	p.Add(hm)
	return p, nil
}
