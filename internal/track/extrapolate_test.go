package track

import "testing"

func TestExtrapolate_SingleSample(t *testing.T) {
	if got := Extrapolate(5); got != 5 {
		t.Errorf("Extrapolate(5) = %d, want 5", got)
	}
}

func TestExtrapolate_Linear(t *testing.T) {
	if got := Extrapolate(5, 7); got != 9 {
		t.Errorf("Extrapolate(5, 7) = %d, want 9", got)
	}
	if got := Extrapolate(7, 5); got != 3 {
		t.Errorf("Extrapolate(7, 5) = %d, want 3", got)
	}
}

func TestExtrapolate_Quadratic(t *testing.T) {
	// Differences 2, 4 → next difference 6 → 11 + 6 = 17.
	if got := Extrapolate(5, 7, 11); got != 17 {
		t.Errorf("Extrapolate(5, 7, 11) = %d, want 17", got)
	}
	// Constant sequence stays constant.
	if got := Extrapolate(4, 4, 4); got != 4 {
		t.Errorf("Extrapolate(4, 4, 4) = %d, want 4", got)
	}
	// Linear sequence continues linearly.
	if got := Extrapolate(1, 2, 3); got != 4 {
		t.Errorf("Extrapolate(1, 2, 3) = %d, want 4", got)
	}
}

func TestExtrapolate_Float(t *testing.T) {
	if got := Extrapolate(1.5, 2.5); got != 3.5 {
		t.Errorf("Extrapolate(1.5, 2.5) = %v, want 3.5", got)
	}
	if got := Extrapolate(0.0, 1.0, 4.0); got != 9.0 {
		t.Errorf("Extrapolate(0, 1, 4) = %v, want 9", got)
	}
}

func TestExtrapolate_UsesNewestThree(t *testing.T) {
	if got := Extrapolate(100, 5, 7, 11); got != 17 {
		t.Errorf("Extrapolate(100, 5, 7, 11) = %d, want 17", got)
	}
}

func TestExtrapolate_NoSamples(t *testing.T) {
	if got := Extrapolate[int](); got != 0 {
		t.Errorf("Extrapolate() = %d, want zero value", got)
	}
}
