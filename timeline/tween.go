package timeline

// An ApplyFunc receives the interpolated value of a tween each time the
// engine evaluates it.
type ApplyFunc func(value float64)

// An EasingFunc remaps raw progress in [0, 1]. The output is not clamped;
// callers may overshoot deliberately.
type EasingFunc func(t float64) float64

// A TweenSample describes one tween evaluation to hooks.
type TweenSample struct {
	ID    string
	Time  VTime
	Value float64
}

// A Tween interpolates between two bounds over [start, end] and reports the
// result through its apply callback. Bounds may be fixed values or zero-arg
// resolvers evaluated at application time.
type Tween struct {
	id     string
	start  VTime
	end    VTime
	apply  ApplyFunc
	from   float64
	to     float64
	fromFn func() float64
	toFn   func() float64
	easing EasingFunc

	// elapsed marks the tween for the next one-way purge once its progress
	// has reached 1.
	elapsed bool
}

// A TweenOption adjusts a tween at registration time.
type TweenOption func(*Tween)

// WithRange sets fixed interpolation bounds. The default range is 0 to 1.
func WithRange(from, to float64) TweenOption {
	return func(tw *Tween) {
		tw.from = from
		tw.to = to
		tw.fromFn = nil
		tw.toFn = nil
	}
}

// WithFromFunc makes the lower bound dynamic, resolved on every application.
func WithFromFunc(fn func() float64) TweenOption {
	return func(tw *Tween) { tw.fromFn = fn }
}

// WithToFunc makes the upper bound dynamic, resolved on every application.
func WithToFunc(fn func() float64) TweenOption {
	return func(tw *Tween) { tw.toFn = fn }
}

// WithEasing sets the easing function. The default is linear.
func WithEasing(e EasingFunc) TweenOption {
	return func(tw *Tween) { tw.easing = e }
}

// progressAt returns the raw progress of the tween when the position is at
// to. The destination-inclusive convention matches the event window: a
// position at or past the end reports 1 in both seek directions. A
// zero-duration tween reports 1 as soon as the position reaches its start.
func (tw *Tween) progressAt(to VTime) float64 {
	switch {
	case tw.start == tw.end:
		if to >= tw.start {
			return 1
		}
		return 0
	case to >= tw.end:
		return 1
	case to <= tw.start:
		return 0
	default:
		return float64((to - tw.start) / (tw.end - tw.start))
	}
}

// overlaps reports whether the tween's life intersects the closed span
// between two positions, regardless of the direction of travel. A tween
// whose life lies entirely outside the span must not fire at all.
func (tw *Tween) overlaps(from, to VTime) bool {
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	return tw.start <= hi && tw.end >= lo
}

// valueAt resolves the bounds and interpolates the tween value for the given
// raw progress.
func (tw *Tween) valueAt(progress float64) float64 {
	if tw.easing != nil {
		progress = tw.easing(progress)
	}

	from := tw.from
	if tw.fromFn != nil {
		from = tw.fromFn()
	}

	to := tw.to
	if tw.toFn != nil {
		to = tw.toFn()
	}

	return from + progress*(to-from)
}
