package vmath

// EaseOutQuad decelerating curve: start at t=0, start+change at t=duration
// Callers clamp elapsed; values past duration continue the parabola
func EaseOutQuad(elapsed, start, change, duration float64) float64 {
	if duration <= 0 {
		return start + change
	}
	t := elapsed / duration
	return -change*t*(t-2) + start
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a to b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
