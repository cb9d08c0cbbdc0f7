// Package timeline implements a bidirectional virtual-timeline seek engine.
// Callers register discrete events (with independent forward and undo
// behavior) and continuous tweens against positions on a caller-defined time
// axis. Moving the position with Seek deterministically replays every event
// crossed by the move, in order, using the forward or undo handler depending
// on the direction, and re-evaluates every overlapping tween at the
// destination.
//
// A Timeline can be driven manually through Seek and Tick, or in real time
// through a Driver that samples a monotonic clock and feeds wall-time deltas
// into the engine. The package also provides looping, an irreversible
// one-way mode with deferred garbage collection of spent entries, and a
// chaining API for composing schedules relative to earlier registrations.
package timeline
