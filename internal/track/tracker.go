package track

import (
	"errors"
	"fmt"
)

// Argument errors returned by PushData. Both are detected before any
// mutation, so a failed call leaves the tracker exactly as it was.
var (
	ErrEmptyBatch     = errors.New("track: observation batch is empty")
	ErrLengthMismatch = errors.New("track: x and y batch lengths differ")
)

// DefaultSentinelCoord is the coordinate given to synthetic padding
// entries when batch size and slot count differ. It only has to dwarf any
// plausible real coordinate so sentinel distances dominate the cost
// matrix; all structural decisions are driven by explicit masks, never by
// comparing against this value.
const DefaultSentinelCoord = 1e7

// TrackerConfig holds tuning parameters for a PositionTracker.
type TrackerConfig struct {
	// SentinelCoord is the coordinate used for synthetic padding entries.
	SentinelCoord float64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		SentinelCoord: DefaultSentinelCoord,
	}
}

// TrackedPoint is one live slot's externally visible state: its identity,
// its most recent position and how many consecutive real observations it
// has received.
type TrackedPoint[T Coord] struct {
	ID    int
	X, Y  T
	Fresh int
}

// PositionTracker assigns persistent identities to a variable-size,
// unordered set of 2D points observed each frame. Feed it one batch per
// frame with PushData and look identities up with GetID or Snapshot.
//
// A tracker starts uninitialised; the first PushData seeds every point as
// a new track and all later calls associate, birth and retire tracks as
// the batch evolves. Not safe for concurrent use.
type PositionTracker[T Coord] struct {
	cfg         TrackerConfig
	store       historyStore[T]
	initialized bool
}

// NewPositionTracker creates a tracker with the default configuration.
func NewPositionTracker[T Coord]() *PositionTracker[T] {
	return NewPositionTrackerWithConfig[T](DefaultTrackerConfig())
}

// NewPositionTrackerWithConfig creates a tracker with the given
// configuration. A zero SentinelCoord falls back to the default.
func NewPositionTrackerWithConfig[T Coord](cfg TrackerConfig) *PositionTracker[T] {
	if cfg.SentinelCoord == 0 {
		cfg.SentinelCoord = DefaultSentinelCoord
	}
	return &PositionTracker[T]{cfg: cfg}
}

// PushData feeds one frame's observations into the tracker. xs and ys
// must be the same non-zero length; otherwise PushData fails without
// touching tracker state.
//
// The first call seeds the tracker. Subsequent calls predict each slot's
// next position, solve the optimal assignment between predictions and the
// new batch, and update the history. When the batch is larger than the
// tracked set, the surplus points are birthed as new slots with fresh
// identities; when it is smaller, the slots the assignment leaves matched
// to synthetic padding are retired.
func (t *PositionTracker[T]) PushData(xs, ys []T) error {
	if len(xs) == 0 {
		return ErrEmptyBatch
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
	}

	if !t.initialized {
		t.store.seed(xs, ys)
		t.initialized = true
		return nil
	}

	diff := t.store.count() - len(xs)
	switch {
	case diff == 0:
		t.pushEqual(xs, ys)
	case diff > 0:
		t.pushShrink(diff, xs, ys)
	default:
		t.pushGrow(-diff, xs, ys)
	}
	t.store.assertConsistent()
	return nil
}

// PushInterleaved is a convenience wrapper over PushData for interleaved
// x0,y0,x1,y1,... batches. The slice length must be even and non-zero.
func (t *PositionTracker[T]) PushInterleaved(xys []T) error {
	if len(xys)%2 != 0 {
		return fmt.Errorf("%w: interleaved batch has odd length %d", ErrLengthMismatch, len(xys))
	}
	n := len(xys) / 2
	xs := make([]T, n)
	ys := make([]T, n)
	for i := 0; i < n; i++ {
		xs[i] = xys[2*i]
		ys[i] = xys[2*i+1]
	}
	return t.PushData(xs, ys)
}

// pushEqual handles the tick where batch size equals the slot count.
func (t *PositionTracker[T]) pushEqual(xs, ys []T) {
	px, py := t.store.predict(t.store.fresh)
	cost := distanceMatrix(px, py, toFloat(xs), toFloat(ys))
	assignment := solveAssignment(cost)
	t.store.rearrangeAndPush(assignment, xs, ys)
}

// pushShrink handles a batch k points smaller than the tracked set. The
// batch is padded with k sentinel observations; after solving, the slots
// the permutation matches to those synthetic rows are the vanished points.
// The arranged batch is pushed at full width first and the doomed rows
// are then compacted out of all parallel arrays, which keeps the
// assignment indices valid throughout.
func (t *PositionTracker[T]) pushShrink(k int, xs, ys []T) {
	dim := t.store.count()
	sentinel := T(t.cfg.SentinelCoord)

	obsX := append(append(make([]T, 0, dim), xs...), repeat(sentinel, k)...)
	obsY := append(append(make([]T, 0, dim), ys...), repeat(sentinel, k)...)
	syntheticRow := make([]bool, dim)
	for i := dim - k; i < dim; i++ {
		syntheticRow[i] = true
	}

	px, py := t.store.predict(t.store.fresh)
	cost := distanceMatrix(px, py, toFloat(obsX), toFloat(obsY))
	assignment := solveAssignment(cost)

	doomed := make([]int, 0, k)
	for row, slot := range assignment {
		if syntheticRow[row] {
			doomed = append(doomed, slot)
		}
	}

	t.store.rearrangeAndPush(assignment, obsX, obsY)
	t.store.dropRows(sortedCopy(doomed))
}

// pushGrow handles a batch k points larger than the tracked set. The
// history is padded with k sentinel slots which are predicted zero-order
// via an effective-freshness override. After solving, the observations
// the permutation matches to synthetic slots are newborn points: each
// gets its history backfilled into the very slot it was assigned, a
// freshly minted identity and freshness zero, before the ordinary
// rearrange-and-push runs over the full enlarged set.
func (t *PositionTracker[T]) pushGrow(k int, xs, ys []T) {
	dimOld := t.store.count()
	dim := dimOld + k
	sentinel := T(t.cfg.SentinelCoord)

	t.store.growFrames(k, sentinel)
	syntheticSlot := make([]bool, dim)
	for i := dimOld; i < dim; i++ {
		syntheticSlot[i] = true
	}

	effective := make([]int, dim)
	copy(effective, t.store.fresh)
	for i := dimOld; i < dim; i++ {
		effective[i] = 1
	}

	px, py := t.store.predict(effective)
	cost := distanceMatrix(px, py, toFloat(xs), toFloat(ys))
	assignment := solveAssignment(cost)

	for row, slot := range assignment {
		if syntheticSlot[slot] {
			t.store.backfill(slot, xs[row], ys[row])
		}
	}
	for _, id := range t.store.nextIDs(k) {
		t.store.appendSlot(id, 0)
	}

	t.store.rearrangeAndPush(assignment, xs, ys)
}

// GetID returns the identity of the most recently inserted point exactly
// matching (x, y), or -1 if no live slot holds that position. Matching is
// exact scalar equality: the lookup is meant for points just pushed this
// frame, not for tolerance-based search.
func (t *PositionTracker[T]) GetID(x, y T) int {
	if !t.initialized {
		return -1
	}
	newestX := t.store.x[historyDepth-1]
	newestY := t.store.y[historyDepth-1]
	for i := range newestX {
		if newestX[i] == x && newestY[i] == y {
			return t.store.ids[i]
		}
	}
	return -1
}

// Count returns the number of currently tracked points.
func (t *PositionTracker[T]) Count() int {
	if !t.initialized {
		return 0
	}
	return t.store.count()
}

// Snapshot returns the current slot set: newest positions, identities and
// freshness, in slot order. The returned slice is owned by the caller.
func (t *PositionTracker[T]) Snapshot() []TrackedPoint[T] {
	if !t.initialized {
		return nil
	}
	out := make([]TrackedPoint[T], t.store.count())
	for i := range out {
		out[i] = TrackedPoint[T]{
			ID:    t.store.ids[i],
			X:     t.store.x[historyDepth-1][i],
			Y:     t.store.y[historyDepth-1][i],
			Fresh: t.store.fresh[i],
		}
	}
	return out
}

func toFloat[T Coord](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func repeat[T Coord](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}
