package visualize

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/edago/pkg/errors"
	edagolog "github.com/YuminosukeSato/edago/pkg/log"
)

// SavePNG はプロットをPNGとして保存する。親ディレクトリは作成される。
func SavePNG(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewFilesystemError("mkdir", filepath.Dir(path), err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.NewFilesystemError("write", path, err)
	}
	return nil
}

// RenderAll はプロット群をdir以下に並行して保存する。
// マップのキーが出力ファイル名になる。最初のエラーで打ち切られる。
func RenderAll(dir string, plots map[string]*plot.Plot) error {
	if len(plots) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFilesystemError("mkdir", dir, err)
	}

	var g errgroup.Group
	for name, p := range plots {
		g.Go(func() error {
			path := filepath.Join(dir, name)
			if err := SavePNG(p, path); err != nil {
				return err
			}
			slog.Debug("plot rendered", slog.String(edagolog.PlotPathKey, path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("plots rendered",
		slog.String(edagolog.PlotPathKey, dir),
		slog.Int(edagolog.PlotCountKey, len(plots)),
	)
	return nil
}

// dropNaN は欠損値（NaN）を取り除いたコピーを返す
func dropNaN(values []float64) []float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return clean
}
