package stats

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCorrelationMatrix(t *testing.T) {
	// Second column is twice the first, third is its negation.
	X := mat.NewDense(4, 3, []float64{
		1, 2, -1,
		2, 4, -2,
		3, 6, -3,
		4, 8, -4,
	})

	corr, err := CorrelationMatrix(X)
	if err != nil {
		t.Fatalf("CorrelationMatrix() error = %v", err)
	}
	if n := corr.SymmetricDim(); n != 3 {
		t.Fatalf("SymmetricDim() = %d, want 3", n)
	}

	for i := 0; i < 3; i++ {
		if got := corr.At(i, i); math.Abs(got-1) > 1e-10 {
			t.Errorf("corr[%d][%d] = %v, want 1", i, i, got)
		}
	}
	if got := corr.At(0, 1); math.Abs(got-1) > 1e-10 {
		t.Errorf("corr[0][1] = %v, want 1", got)
	}
	if got := corr.At(0, 2); math.Abs(got+1) > 1e-10 {
		t.Errorf("corr[0][2] = %v, want -1", got)
	}
}

func TestCorrelationMatrixEmpty(t *testing.T) {
	if _, err := CorrelationMatrix(&mat.Dense{}); err == nil {
		t.Error("CorrelationMatrix() expected an error for empty input")
	}
}

func TestCorrelationsWith(t *testing.T) {
	table := mustTable(t, "up,down,noise,target\n"+
		"1,4,7,10\n"+
		"2,3,1,20\n"+
		"3,2,9,30\n"+
		"4,1,2,40\n")

	result, err := CorrelationsWith(table, "target", "up", "down", "noise", "target")
	if err != nil {
		t.Fatalf("CorrelationsWith() error = %v", err)
	}

	// The target itself is skipped and the rest is sorted descending.
	if len(result) != 3 {
		t.Fatalf("CorrelationsWith() returned %d entries, want 3", len(result))
	}
	if result[0].Column != "up" || math.Abs(result[0].R-1) > 1e-10 {
		t.Errorf("result[0] = %+v, want up with r=1", result[0])
	}
	if result[2].Column != "down" || math.Abs(result[2].R+1) > 1e-10 {
		t.Errorf("result[2] = %+v, want down with r=-1", result[2])
	}
	for i := 1; i < len(result); i++ {
		if result[i-1].R < result[i].R {
			t.Errorf("result is not sorted descending at %d: %v", i, result)
		}
	}
}

func TestCorrelationsWithUnknownColumn(t *testing.T) {
	table := mustTable(t, "x,y\n1,2\n3,4\n")

	if _, err := CorrelationsWith(table, "no_such", "x"); err == nil {
		t.Error("CorrelationsWith() expected an error for an unknown target")
	}
	if _, err := CorrelationsWith(table, "y", "no_such"); err == nil {
		t.Error("CorrelationsWith() expected an error for an unknown column")
	}
}
