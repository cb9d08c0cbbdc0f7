package timeline

import "errors"

var (
	// ErrSeekInProgress is returned when Seek, Tick, or Jump is invoked
	// while a seek is already running, including from within an event
	// handler fired by that seek.
	ErrSeekInProgress = errors.New("a seek is already in progress")

	// ErrBackwardSeek is returned when a one-way timeline is asked to move
	// to a target behind its current position.
	ErrBackwardSeek = errors.New("cannot move backward on a one-way timeline")

	// ErrInvalidArgument is returned for contract violations such as a nil
	// callback, a negative tween duration, or a NaN timescale.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedLoop is returned for loop configurations the engine
	// refuses to guess about, such as a negative boundary or combining a
	// loop with one-way mode.
	ErrUnsupportedLoop = errors.New("unsupported loop configuration")
)
