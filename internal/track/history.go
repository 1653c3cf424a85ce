package track

import (
	"fmt"
	"sort"
)

// historyDepth is the sliding-window depth per tracked slot. Quadratic
// extrapolation needs exactly three points; deeper history would smooth
// more but adapt slower, so the store fixes the minimum sufficient depth.
const historyDepth = 3

// historyStore holds the per-slot state behind a PositionTracker: a
// three-frame sliding history of each coordinate axis plus parallel
// identity and freshness arrays. Slot i of every array refers to the same
// tracked point, and all arrays have the same slot count between ticks;
// every mutation path ends in assertConsistent.
//
// Freshness counts consecutive real observations a slot has received and
// gates the extrapolation order during prediction (1 → zero-order,
// 2 → linear, ≥3 → quadratic).
type historyStore[T Coord] struct {
	// x[0]/y[0] hold the oldest frame, x[historyDepth-1]/y[historyDepth-1]
	// the newest.
	x [historyDepth][]T
	y [historyDepth][]T

	ids   []int
	fresh []int
}

func (s *historyStore[T]) count() int {
	return len(s.ids)
}

// seed initialises an empty store from the first-ever batch. All history
// frames are filled with the same values (there is no motion information
// yet), identities are assigned sequentially from zero and every slot
// starts with freshness 1.
func (s *historyStore[T]) seed(xs, ys []T) {
	n := len(xs)
	for f := 0; f < historyDepth; f++ {
		s.x[f] = append([]T(nil), xs...)
		s.y[f] = append([]T(nil), ys...)
	}
	s.ids = make([]int, n)
	s.fresh = make([]int, n)
	for i := 0; i < n; i++ {
		s.ids[i] = i
		s.fresh[i] = 1
	}
	s.assertConsistent()
}

// predict extrapolates every slot one frame ahead, bounding the history
// depth used per slot by the supplied effective freshness. The override
// is an explicit argument rather than the stored array so the grow path
// can predict freshly padded slots as zero-order without mutating and
// restoring shared state.
func (s *historyStore[T]) predict(effectiveFresh []int) (px, py []float64) {
	dim := len(s.x[0])
	px = make([]float64, dim)
	py = make([]float64, dim)
	for i := 0; i < dim; i++ {
		switch effectiveFresh[i] {
		case 1:
			px[i] = float64(s.x[2][i])
			py[i] = float64(s.y[2][i])
		case 2:
			px[i] = float64(Extrapolate(s.x[1][i], s.x[2][i]))
			py[i] = float64(Extrapolate(s.y[1][i], s.y[2][i]))
		default:
			px[i] = float64(Extrapolate(s.x[0][i], s.x[1][i], s.x[2][i]))
			py[i] = float64(Extrapolate(s.y[0][i], s.y[1][i], s.y[2][i]))
		}
	}
	return px, py
}

// rearrangeAndPush reorders the observation batch by the assignment so
// slot assignment[i] receives observation i, appends the arranged batch
// as the newest history frame, drops the oldest frame, and increments
// every slot's freshness. len(assignment) must equal the current frame
// width.
func (s *historyStore[T]) rearrangeAndPush(assignment []int, xs, ys []T) {
	dim := len(assignment)
	arrangedX := make([]T, dim)
	arrangedY := make([]T, dim)
	for i, slot := range assignment {
		arrangedX[slot] = xs[i]
		arrangedY[slot] = ys[i]
	}

	for f := 0; f < historyDepth-1; f++ {
		s.x[f] = s.x[f+1]
		s.y[f] = s.y[f+1]
	}
	s.x[historyDepth-1] = arrangedX
	s.y[historyDepth-1] = arrangedY

	for i := range s.fresh {
		s.fresh[i]++
	}
}

// growFrames widens every history frame by k sentinel-valued slots. The
// identity and freshness arrays are intentionally left narrow; the caller
// completes the new slots with backfill and appendSlot before the tick
// ends.
func (s *historyStore[T]) growFrames(k int, sentinel T) {
	for f := 0; f < historyDepth; f++ {
		for i := 0; i < k; i++ {
			s.x[f] = append(s.x[f], sentinel)
			s.y[f] = append(s.y[f], sentinel)
		}
	}
}

// backfill writes (x, y) into every history frame at the given slot, so a
// newly birthed slot extrapolates as stationary until it accumulates real
// motion history.
func (s *historyStore[T]) backfill(slot int, x, y T) {
	for f := 0; f < historyDepth; f++ {
		s.x[f][slot] = x
		s.y[f][slot] = y
	}
}

// appendSlot extends the identity and freshness arrays for one newly
// birthed slot.
func (s *historyStore[T]) appendSlot(id, fresh int) {
	s.ids = append(s.ids, id)
	s.fresh = append(s.fresh, fresh)
}

// dropRows deletes the given slot indices, which must be sorted ascending,
// from all history frames and both parallel arrays in one pass.
func (s *historyStore[T]) dropRows(sorted []int) {
	if len(sorted) == 0 {
		return
	}
	for f := 0; f < historyDepth; f++ {
		s.x[f] = compactRows(s.x[f], sorted)
		s.y[f] = compactRows(s.y[f], sorted)
	}
	s.ids = compactRows(s.ids, sorted)
	s.fresh = compactRows(s.fresh, sorted)
}

// nextIDs mints n identities: the smallest non-negative integers not
// currently in use, ascending.
func (s *historyStore[T]) nextIDs(n int) []int {
	used := make(map[int]bool, len(s.ids))
	for _, id := range s.ids {
		used[id] = true
	}
	ids := make([]int, 0, n)
	for id := 0; len(ids) < n; id++ {
		if used[id] {
			continue
		}
		ids = append(ids, id)
		used[id] = true
	}
	return ids
}

// assertConsistent panics if the parallel arrays have drifted out of sync.
// Between ticks all four must have identical slot counts; a mismatch is a
// defect in one of the mutation paths.
func (s *historyStore[T]) assertConsistent() {
	n := len(s.ids)
	if len(s.fresh) != n {
		panic(fmt.Sprintf("track: freshness array has %d slots, identities %d", len(s.fresh), n))
	}
	for f := 0; f < historyDepth; f++ {
		if len(s.x[f]) != n || len(s.y[f]) != n {
			panic(fmt.Sprintf("track: history frame %d is %d/%d wide, identities %d",
				f, len(s.x[f]), len(s.y[f]), n))
		}
	}
}

// compactRows returns v with the elements at the sorted index set removed,
// preserving order of the survivors.
func compactRows[E any](v []E, sorted []int) []E {
	out := make([]E, 0, len(v)-len(sorted))
	d := 0
	for i := range v {
		if d < len(sorted) && sorted[d] == i {
			d++
			continue
		}
		out = append(out, v[i])
	}
	return out
}

// sortedCopy returns an ascending copy of the given indices.
func sortedCopy(idx []int) []int {
	out := append([]int(nil), idx...)
	sort.Ints(out)
	return out
}
