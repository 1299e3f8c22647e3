package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

func TestInertia(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		rows    int
		cols    int
		centers [][]float64
		labels  []int
		want    float64
		wantErr bool
	}{
		{
			name:    "samples on their centers",
			data:    []float64{0, 0, 1, 1},
			rows:    2,
			cols:    2,
			centers: [][]float64{{0, 0}, {1, 1}},
			labels:  []int{0, 1},
			want:    0,
		},
		{
			name:    "unit offsets",
			data:    []float64{1, 0, 0, 1},
			rows:    2,
			cols:    2,
			centers: [][]float64{{0, 0}},
			labels:  []int{0, 0},
			want:    2,
		},
		{
			name:    "label count mismatch",
			data:    []float64{0, 0},
			rows:    1,
			cols:    2,
			centers: [][]float64{{0, 0}},
			labels:  []int{0, 0},
			wantErr: true,
		},
		{
			name:    "label out of range",
			data:    []float64{0, 0},
			rows:    1,
			cols:    2,
			centers: [][]float64{{0, 0}},
			labels:  []int{3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(tt.rows, tt.cols, tt.data)
			got, err := Inertia(X, tt.centers, tt.labels)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Inertia() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Inertia() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSilhouetteScoreSeparatedClusters(t *testing.T) {
	// Two tight, far-apart pairs give a silhouette close to 1.
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 0.1,
		10, 10,
		10, 10.1,
	})
	labels := []int{0, 0, 1, 1}

	got, err := SilhouetteScore(X, labels)
	if err != nil {
		t.Fatalf("SilhouetteScore() error = %v", err)
	}
	if got < 0.9 || got > 1 {
		t.Errorf("SilhouetteScore() = %v, want a value close to 1", got)
	}
}

func TestSilhouetteScoreOverlappingClusters(t *testing.T) {
	// Interleaved points from an arbitrary split score poorly.
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	labels := []int{0, 1, 0, 1}

	got, err := SilhouetteScore(X, labels)
	if err != nil {
		t.Fatalf("SilhouetteScore() error = %v", err)
	}
	if got > 0.1 {
		t.Errorf("SilhouetteScore() = %v, want a low value for interleaved clusters", got)
	}
}

func TestSilhouetteScoreSingletonCluster(t *testing.T) {
	// A cluster with a single sample contributes a score of 0.
	X := mat.NewDense(3, 1, []float64{0, 0.1, 10})
	labels := []int{0, 0, 1}

	got, err := SilhouetteScore(X, labels)
	if err != nil {
		t.Fatalf("SilhouetteScore() error = %v", err)
	}
	if math.IsNaN(got) {
		t.Fatal("SilhouetteScore() = NaN, singleton clusters must score 0")
	}
	// Average of two near-1 scores and one exact 0.
	if got < 0.5 || got > 0.7 {
		t.Errorf("SilhouetteScore() = %v, want roughly 2/3", got)
	}
}

func TestSilhouetteScoreErrors(t *testing.T) {
	t.Run("single cluster", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{0, 1, 2})
		_, err := SilhouetteScore(X, []int{0, 0, 0})

		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("SilhouetteScore() error = %v, want a ValueError", err)
		}
	})

	t.Run("negative label", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{0, 1})
		if _, err := SilhouetteScore(X, []int{-1, 0}); err == nil {
			t.Error("SilhouetteScore() expected an error for a negative label")
		}
	})

	t.Run("label count mismatch", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{0, 1})
		var dimErr *errors.DimensionError
		if _, err := SilhouetteScore(X, []int{0}); !errors.As(err, &dimErr) {
			t.Errorf("SilhouetteScore() error = %v, want a DimensionError", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := SilhouetteScore(&mat.Dense{}, nil); !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("SilhouetteScore() error = %v, want ErrEmptyData", err)
		}
	})
}
