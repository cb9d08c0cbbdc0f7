package timeline

// Conventional easing functions for use with WithEasing. All take raw
// progress in [0, 1] and are exact at both endpoints.

// Linear returns progress unchanged.
func Linear(t float64) float64 { return t }

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 { return t * t }

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

// EaseInOutQuad accelerates until halfway, then decelerates.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic decelerates following a cubic curve.
func EaseOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// SmoothStep is the classic Hermite 3t²-2t³ blend.
func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }
