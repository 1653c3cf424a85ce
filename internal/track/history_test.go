package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryStore_Seed(t *testing.T) {
	var s historyStore[int]
	s.seed([]int{10, 20}, []int{1, 2})

	if s.count() != 2 {
		t.Fatalf("count = %d, want 2", s.count())
	}
	if diff := cmp.Diff([]int{0, 1}, s.ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1}, s.fresh); diff != "" {
		t.Errorf("freshness mismatch (-want +got):\n%s", diff)
	}
	// All three frames seeded with the same values.
	for f := 0; f < historyDepth; f++ {
		if diff := cmp.Diff([]int{10, 20}, s.x[f]); diff != "" {
			t.Errorf("x frame %d mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestHistoryStore_PredictGating(t *testing.T) {
	var s historyStore[int]
	s.seed([]int{0}, []int{0})
	// Hand-write a history with distinct frames: 2, 5, 10.
	s.x[0][0], s.x[1][0], s.x[2][0] = 2, 5, 10
	s.y[0][0], s.y[1][0], s.y[2][0] = 2, 5, 10

	// Freshness 1: zero-order hold on the newest frame.
	px, _ := s.predict([]int{1})
	if px[0] != 10 {
		t.Errorf("freshness 1: predicted %v, want 10", px[0])
	}

	// Freshness 2: linear from the newest two frames.
	px, _ = s.predict([]int{2})
	if px[0] != 15 {
		t.Errorf("freshness 2: predicted %v, want 15", px[0])
	}

	// Freshness ≥3: quadratic over all three frames.
	// Differences 3, 5 → next difference 7 → 17.
	px, py := s.predict([]int{3})
	if px[0] != 17 || py[0] != 17 {
		t.Errorf("freshness 3: predicted (%v, %v), want (17, 17)", px[0], py[0])
	}
}

func TestHistoryStore_RearrangeAndPush(t *testing.T) {
	var s historyStore[int]
	s.seed([]int{10, 20}, []int{0, 0})

	// Observation 0 goes to slot 1, observation 1 to slot 0.
	s.rearrangeAndPush([]int{1, 0}, []int{21, 11}, []int{0, 0})

	if diff := cmp.Diff([]int{11, 21}, s.x[historyDepth-1]); diff != "" {
		t.Errorf("newest frame mismatch (-want +got):\n%s", diff)
	}
	// Oldest frame dropped, previous frames shifted.
	if diff := cmp.Diff([]int{10, 20}, s.x[0]); diff != "" {
		t.Errorf("oldest frame mismatch (-want +got):\n%s", diff)
	}
	// Freshness incremented across the board.
	if diff := cmp.Diff([]int{2, 2}, s.fresh); diff != "" {
		t.Errorf("freshness mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryStore_DropRowsKeepsArraysInSync(t *testing.T) {
	var s historyStore[int]
	s.seed([]int{10, 20, 30, 40}, []int{1, 2, 3, 4})

	s.dropRows([]int{1, 3})
	s.assertConsistent()

	if diff := cmp.Diff([]int{10, 30}, s.x[historyDepth-1]); diff != "" {
		t.Errorf("x survivors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 3}, s.y[historyDepth-1]); diff != "" {
		t.Errorf("y survivors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, s.ids); diff != "" {
		t.Errorf("id survivors mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryStore_NextIDsFillGaps(t *testing.T) {
	var s historyStore[int]
	s.seed([]int{10, 20, 30}, []int{1, 2, 3})
	// Retire the middle slot so id 1 becomes free.
	s.dropRows([]int{1})

	got := s.nextIDs(3)
	if diff := cmp.Diff([]int{1, 3, 4}, got); diff != "" {
		t.Errorf("minted ids mismatch (-want +got):\n%s", diff)
	}
}

func TestCompactRows(t *testing.T) {
	got := compactRows([]string{"a", "b", "c", "d", "e"}, []int{0, 2, 4})
	if diff := cmp.Diff([]string{"b", "d"}, got); diff != "" {
		t.Errorf("compactRows mismatch (-want +got):\n%s", diff)
	}
	// Empty drop set copies the input.
	got = compactRows([]string{"a"}, nil)
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("compactRows with no drops mismatch (-want +got):\n%s", diff)
	}
}
