package track

// Coord is the scalar coordinate type a tracker operates on. Distance and
// extrapolation arithmetic is carried out in float64 and cast back, so
// integer instantiations behave the same as floating ones up to rounding
// and cannot overflow when squaring coordinate differences.
type Coord interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Extrapolate predicts the next sample from up to three history samples,
// given oldest first:
//
//	Extrapolate(c)       = c                        (zero-order hold)
//	Extrapolate(b, c)    = c + (c-b)                (linear)
//	Extrapolate(a, b, c) = c + (c-b) + ((c-b)-(b-a))
//
// The three-sample form continues the second difference, i.e. it is the
// quadratic through three equally spaced points evaluated one step ahead.
// With more than three samples only the newest three are used. There are
// no failure modes; a value is always returned.
func Extrapolate[T Coord](samples ...T) T {
	n := len(samples)
	switch {
	case n == 0:
		var zero T
		return zero
	case n == 1:
		return samples[0]
	case n == 2:
		a := float64(samples[0])
		b := float64(samples[1])
		return T(2*b - a)
	default:
		a := float64(samples[n-3])
		b := float64(samples[n-2])
		c := float64(samples[n-1])
		return T(3*c - 3*b + a)
	}
}
