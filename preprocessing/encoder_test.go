package preprocessing

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

func TestOneHotEncoderContract(t *testing.T) {
	// ["red", "blue", "green", "red"] with alphabetically sorted categories
	// ["blue", "green", "red"] encodes as documented.
	values := []string{"red", "blue", "green", "red"}

	enc := NewOneHotEncoder()
	encoded, err := enc.FitTransform(values)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	wantCats := []string{"blue", "green", "red"}
	if got := enc.Categories(); !reflect.DeepEqual(got, wantCats) {
		t.Errorf("Categories() = %v, want %v", got, wantCats)
	}

	want := [][]float64{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	r, c := encoded.Dims()
	if r != len(want) || c != len(wantCats) {
		t.Fatalf("Transform() dims = (%d, %d), want (%d, %d)", r, c, len(want), len(wantCats))
	}
	for i := range want {
		for j := range want[i] {
			if got := encoded.At(i, j); got != want[i][j] {
				t.Errorf("encoded[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}

	// Every row has exactly one hot column.
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += encoded.At(i, j)
		}
		if sum != 1 {
			t.Errorf("row %d sums to %v, want exactly one hot column", i, sum)
		}
	}
}

func TestOneHotEncoderRoundTrip(t *testing.T) {
	values := []string{"NEAR BAY", "INLAND", "<1H OCEAN", "INLAND", "NEAR BAY"}

	enc := NewOneHotEncoder()
	encoded, err := enc.FitTransform(values)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	recovered, err := enc.InverseTransform(encoded)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !reflect.DeepEqual(recovered, values) {
		t.Errorf("InverseTransform() = %v, want %v", recovered, values)
	}
}

func TestOneHotEncoderErrors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		enc := NewOneHotEncoder()
		_, err := enc.Transform([]string{"red"})

		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Transform() error = %v, want a NotFittedError", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		enc := NewOneHotEncoder()
		if err := enc.Fit([]string{"red", "blue"}); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		_, err := enc.Transform([]string{"purple"})

		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("Transform() error = %v, want a ValueError", err)
		}
	})

	t.Run("empty fit", func(t *testing.T) {
		enc := NewOneHotEncoder()
		if err := enc.Fit(nil); !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("Fit(nil) error = %v, want ErrEmptyData", err)
		}
	})

	t.Run("duplicate explicit category", func(t *testing.T) {
		enc := NewOneHotEncoder()
		err := enc.FitCategories([]string{"a", "b", "a"})

		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("FitCategories() error = %v, want a ValueError", err)
		}
	})
}

func TestOneHotEncoderInverseTransformValidation(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.FitCategories([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("FitCategories() error = %v", err)
	}

	tests := []struct {
		name string
		row  []float64
	}{
		{name: "no hot column", row: []float64{0, 0, 0}},
		{name: "two hot columns", row: []float64{1, 1, 0}},
		{name: "non-binary value", row: []float64{0.5, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(1, 3, tt.row)
			if _, err := enc.InverseTransform(X); err == nil {
				t.Errorf("InverseTransform(%v) expected an error", tt.row)
			}
		})
	}

	t.Run("wrong width", func(t *testing.T) {
		X := mat.NewDense(1, 2, []float64{1, 0})
		_, err := enc.InverseTransform(X)

		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("InverseTransform() error = %v, want a DimensionError", err)
		}
	})
}

func TestOrdinalEncoder(t *testing.T) {
	values := []string{"red", "blue", "green", "red"}

	enc := NewOrdinalEncoder()
	encoded, err := enc.FitTransform(values)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Indices follow the sorted category order blue=0, green=1, red=2.
	want := []float64{2, 0, 1, 2}
	r, c := encoded.Dims()
	if r != len(want) || c != 1 {
		t.Fatalf("Transform() dims = (%d, %d), want (%d, 1)", r, c, len(want))
	}
	for i, w := range want {
		if got := encoded.At(i, 0); got != w {
			t.Errorf("encoded[%d] = %v, want %v", i, got, w)
		}
	}

	recovered, err := enc.InverseTransform(encoded)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !reflect.DeepEqual(recovered, values) {
		t.Errorf("InverseTransform() = %v, want %v", recovered, values)
	}
}

func TestOrdinalEncoderErrors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		enc := NewOrdinalEncoder()
		_, err := enc.Transform([]string{"red"})

		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Transform() error = %v, want a NotFittedError", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		enc := NewOrdinalEncoder()
		if err := enc.Fit([]string{"red", "blue"}); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		if _, err := enc.Transform([]string{"purple"}); err == nil {
			t.Error("Transform() expected an error for an unknown category")
		}
	})

	t.Run("invalid index on inverse", func(t *testing.T) {
		enc := NewOrdinalEncoder()
		if err := enc.FitCategories([]string{"a", "b"}); err != nil {
			t.Fatalf("FitCategories() error = %v", err)
		}

		for _, v := range []float64{-1, 2, 0.5} {
			X := mat.NewDense(1, 1, []float64{v})
			if _, err := enc.InverseTransform(X); err == nil {
				t.Errorf("InverseTransform(%v) expected an error", v)
			}
		}
	})
}

func TestEncoderString(t *testing.T) {
	ord := NewOrdinalEncoder()
	if got := ord.String(); got != "OrdinalEncoder()" {
		t.Errorf("String() = %q before fitting", got)
	}
	if err := ord.Fit([]string{"b", "a"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got := ord.String(); got != "OrdinalEncoder(categories=[a, b])" {
		t.Errorf("String() = %q after fitting", got)
	}

	hot := NewOneHotEncoder()
	if got := hot.String(); got != "OneHotEncoder()" {
		t.Errorf("String() = %q before fitting", got)
	}
}
