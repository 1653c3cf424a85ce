package track

import (
	"math"
	"testing"
)

func TestDistanceMatrix_Orientation(t *testing.T) {
	// Two predictions and two observations with distinct pairwise
	// distances: entry (i, j) must be dist(pred j, obs i).
	predX := []float64{0, 10}
	predY := []float64{0, 0}
	obsX := []float64{0, 3}
	obsY := []float64{4, 4}

	m := distanceMatrix(predX, predY, obsX, obsY)
	r, c := m.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("expected 2×2 matrix, got %d×%d", r, c)
	}

	// Row i is observation i against predictions (0,0) and (10,0).
	want := [2][2]float64{
		{4, math.Hypot(10, 4)},
		{5, math.Hypot(10-3, 4)},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(m.At(i, j)-want[i][j]) > 1e-12 {
				t.Errorf("m[%d][%d] = %v, want %v", i, j, m.At(i, j), want[i][j])
			}
		}
	}
}

func TestDistanceMatrix_Empty(t *testing.T) {
	if m := distanceMatrix(nil, nil, nil, nil); m != nil {
		t.Errorf("expected nil for empty inputs, got %v", m)
	}
}

func TestDistanceMatrix_MismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched input lengths")
		}
	}()
	distanceMatrix([]float64{1, 2}, []float64{1, 2}, []float64{1}, []float64{1})
}
