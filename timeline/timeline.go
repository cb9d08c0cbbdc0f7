package timeline

import (
	"fmt"
	"math"
	"sync"
)

// A Timeline is a stateful seek engine instance. It owns its schedule
// exclusively. Mutating operations (Seek, Tick, Jump, registrations) must run
// on a single logical thread of control; while a Driver is running it is that
// thread. Position, End, Timescale, and ScheduleSize are safe to read
// concurrently.
type Timeline struct {
	HookableBase

	// mu guards position and timescale, and the structure of the event and
	// tween stores, so the read accessors can run while the engine thread
	// registers, sorts, and purges.
	mu        sync.RWMutex
	position  VTime
	timescale float64

	events *eventStore
	tweens *tweenStore

	hasLoop      bool
	loopBoundary VTime
	loopRewind   bool

	oneWay       bool
	seeking      bool
	purgePending bool
}

// New creates an empty Timeline at position 0 with timescale 1.
func New() *Timeline {
	return &Timeline{
		events:    newEventStore(),
		tweens:    &tweenStore{},
		timescale: 1,
	}
}

// Position returns the current position on the virtual time axis.
func (tl *Timeline) Position() VTime {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.position
}

func (tl *Timeline) writePosition(t VTime) {
	tl.mu.Lock()
	tl.position = t
	tl.mu.Unlock()
}

// End reports how far the timeline currently extends: the maximum of all
// registered event times and tween end times, or 0 when nothing is
// registered. It is recomputed from live state because registrations can
// extend it at any moment.
func (tl *Timeline) End() VTime {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	var end VTime
	first := true
	for t := range tl.events.buckets {
		if first || t > end {
			end = t
			first = false
		}
	}
	for _, tw := range tl.tweens.list {
		if first || tw.end > end {
			end = tw.end
			first = false
		}
	}
	return end
}

// ScheduleSize reports how many event entries and tween descriptors the
// timeline currently holds.
func (tl *Timeline) ScheduleSize() (events, tweens int) {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	for _, b := range tl.events.buckets {
		events += len(b.entries)
	}
	return events, len(tl.tweens.list)
}

// Timescale returns the playback rate multiplier applied by the Driver.
func (tl *Timeline) Timescale() float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.timescale
}

// SetTimescale sets the playback rate multiplier. NaN is rejected. Negative
// values make the Driver play backward, which a one-way timeline will then
// refuse tick by tick.
func (tl *Timeline) SetTimescale(s float64) error {
	if math.IsNaN(s) {
		return fmt.Errorf("set timescale: %w", ErrInvalidArgument)
	}

	tl.mu.Lock()
	tl.timescale = s
	tl.mu.Unlock()

	return nil
}

// IsOneWay reports whether the timeline is in irreversible forward-only mode.
func (tl *Timeline) IsOneWay() bool {
	return tl.oneWay
}

// EnableOneWay switches the timeline into forward-only mode. Backward seeks
// are rejected from then on, and spent schedule entries become eligible for
// the deferred purge. One-way mode cannot be combined with a loop.
func (tl *Timeline) EnableOneWay() error {
	if tl.seeking {
		return fmt.Errorf("enable one-way: %w", ErrSeekInProgress)
	}
	if tl.hasLoop {
		return fmt.Errorf("enable one-way: loop is active: %w", ErrUnsupportedLoop)
	}

	tl.oneWay = true
	tl.schedulePurge()

	return nil
}

// SetLoop installs a loop boundary. Every seek that would cross the boundary
// wraps back to the origin, replaying the wrapped segment's undo sequence
// first when rewind is true. A zero boundary clears the loop. Negative
// boundaries, changing the loop mid-seek, and looping a one-way timeline are
// rejected rather than guessed about.
func (tl *Timeline) SetLoop(boundary VTime, rewind bool) error {
	if tl.seeking {
		return fmt.Errorf("set loop: %w", ErrSeekInProgress)
	}
	if boundary < 0 {
		return fmt.Errorf("set loop: negative boundary: %w", ErrUnsupportedLoop)
	}
	if tl.oneWay {
		return fmt.Errorf("set loop: timeline is one-way: %w", ErrUnsupportedLoop)
	}

	tl.hasLoop = boundary > 0
	tl.loopBoundary = boundary
	tl.loopRewind = rewind

	return nil
}

// ClearLoop removes the loop boundary.
func (tl *Timeline) ClearLoop() {
	tl.hasLoop = false
	tl.loopBoundary = 0
	tl.loopRewind = false
}

// RegisterEvent schedules forward and undo actions at the given position. If
// the position equals the current position the forward action fires
// synchronously, as the moment has already arrived. The returned handle is
// anchored at the event's time.
func (tl *Timeline) RegisterEvent(
	at VTime,
	forward Action,
	undo Undo,
) (*ChainHandle, error) {
	if forward == nil {
		return nil, fmt.Errorf("register event: nil forward action: %w",
			ErrInvalidArgument)
	}

	tl.runPendingPurge()

	e := &scheduledEvent{
		id:      GetIDGenerator().Generate(),
		forward: forward,
		undo:    undo,
	}
	tl.mu.Lock()
	tl.events.add(at, e)
	tl.mu.Unlock()

	if at == tl.Position() {
		tl.fire(e, at, false)
	}

	return &ChainHandle{timeline: tl, anchor: at}, nil
}

// RegisterEventAfter schedules an event relative to the current position.
func (tl *Timeline) RegisterEventAfter(
	delta VTime,
	forward Action,
	undo Undo,
) (*ChainHandle, error) {
	return tl.RegisterEvent(tl.Position()+delta, forward, undo)
}

// RegisterTween schedules a tween over [start, start+duration]. The default
// range is 0 to 1 with linear easing; see TweenOption. If the interval
// contains the current position the tween applies once synchronously. The
// returned handle is anchored at the tween's end.
func (tl *Timeline) RegisterTween(
	start, duration VTime,
	apply ApplyFunc,
	opts ...TweenOption,
) (*ChainHandle, error) {
	if apply == nil {
		return nil, fmt.Errorf("register tween: nil apply callback: %w",
			ErrInvalidArgument)
	}
	if duration < 0 {
		return nil, fmt.Errorf("register tween: negative duration %v: %w",
			duration, ErrInvalidArgument)
	}

	tl.runPendingPurge()

	tw := &Tween{
		id:    GetIDGenerator().Generate(),
		start: start,
		end:   start + duration,
		apply: apply,
		from:  0,
		to:    1,
	}
	for _, opt := range opts {
		opt(tw)
	}
	tl.mu.Lock()
	tl.tweens.add(tw)
	tl.mu.Unlock()

	if pos := tl.Position(); pos >= tw.start && pos <= tw.end {
		tl.applyTween(tw, pos)
	}

	return &ChainHandle{timeline: tl, anchor: tw.end}, nil
}

// Seek moves the position to target, firing every event crossed by the move
// and evaluating every overlapping tween at the destination. Events fire in
// time order; entries at the same time fire in registration order going
// forward and in reverse registration order going backward. The crossing
// window is origin-exclusive and far-side-inclusive, so ping-ponging over a
// boundary fires each event exactly once per crossing.
func (tl *Timeline) Seek(target VTime) error {
	if tl.seeking {
		return fmt.Errorf("seek to %v: %w", target, ErrSeekInProgress)
	}
	if tl.oneWay && target < tl.Position() {
		return fmt.Errorf("seek to %v: %w", target, ErrBackwardSeek)
	}

	tl.runPendingPurge()

	tl.seeking = true
	defer func() { tl.seeking = false }()

	// Unroll loop iterations one boundary crossing at a time. Direction is
	// re-evaluated from the wrapped position at the top of each step.
	for tl.hasLoop && target > tl.loopBoundary {
		tl.replayTo(tl.loopBoundary)
		target -= tl.loopBoundary
		tl.wrapToOrigin()
	}
	if tl.hasLoop && target == tl.loopBoundary {
		// The boundary is the same instant as the loop origin.
		tl.replayTo(tl.loopBoundary)
		tl.wrapToOrigin()
		target = 0
	}

	tl.replayTo(target)

	return nil
}

func (tl *Timeline) wrapToOrigin() {
	if tl.loopRewind {
		tl.replayTo(0)
		return
	}
	tl.writePosition(0)
}

// replayTo performs one direction-uniform segment of a seek.
func (tl *Timeline) replayTo(target VTime) {
	from := tl.Position()
	if target == from {
		return
	}
	reversing := target < from

	tl.mu.Lock()
	crossed := tl.events.window(from, target)
	tl.mu.Unlock()

	for _, b := range crossed {
		// Handlers observe the precise instant of the bucket they run in.
		tl.writePosition(b.time)

		// Snapshot so a handler registering at this exact instant (which
		// fires immediately by itself) is not fired a second time here.
		entries := append([]*scheduledEvent(nil), b.entries...)
		if reversing {
			for i := len(entries) - 1; i >= 0; i-- {
				tl.fire(entries[i], b.time, true)
			}
		} else {
			for _, e := range entries {
				tl.fire(e, b.time, false)
			}
		}
	}

	// Tweens are a pure function of position, so only the destination value
	// matters; they are evaluated once against the original span.
	tl.writePosition(from)
	tl.applyTweens(target)
	tl.writePosition(target)

	if tl.oneWay && len(crossed) > 0 {
		tl.schedulePurge()
	}
}

// fire invokes one side of an event, bracketed by hooks. A NoUndo entry is
// skipped silently on backward replay.
func (tl *Timeline) fire(e *scheduledEvent, at VTime, reversed bool) {
	var action Action
	if reversed {
		switch e.undo.kind {
		case undoNone:
			return
		case undoSelfInverse:
			action = e.forward
		case undoAction:
			action = e.undo.action
		}
	} else {
		action = e.forward
	}

	ctx := HookCtx{
		Domain: tl,
		Pos:    HookPosBeforeEvent,
		Item:   EventRecord{ID: e.id, Time: at, Reversed: reversed},
	}
	tl.InvokeHook(ctx)

	action()

	ctx.Pos = HookPosAfterEvent
	tl.InvokeHook(ctx)
}

// applyTweens evaluates every tween whose life overlaps the span between the
// current position and to. Non-overlapping tweens receive no callback at all.
func (tl *Timeline) applyTweens(to VTime) {
	from := tl.Position()

	dir := orderForward
	if to < from {
		dir = orderBackward
	}

	tl.mu.Lock()
	tl.tweens.sort(dir)
	list := append([]*Tween(nil), tl.tweens.list...)
	tl.mu.Unlock()

	for _, tw := range list {
		if !tw.overlaps(from, to) {
			continue
		}
		tl.applyTween(tw, to)
	}
}

func (tl *Timeline) applyTween(tw *Tween, to VTime) {
	progress := tw.progressAt(to)
	if progress >= 1 && tl.oneWay {
		tw.elapsed = true
		tl.schedulePurge()
	}

	value := tw.valueAt(progress)
	tw.apply(value)

	tl.InvokeHook(HookCtx{
		Domain: tl,
		Pos:    HookPosTweenApply,
		Item:   TweenSample{ID: tw.id, Time: to, Value: value},
	})
}

// Tick moves the position by a delta. It is sugar for Seek(position+delta).
func (tl *Timeline) Tick(delta VTime) error {
	return tl.Seek(tl.Position() + delta)
}

// Jump sets the position directly with no event or tween processing. The
// move is invisible to the replay machinery until the next seek.
func (tl *Timeline) Jump(target VTime) error {
	if tl.seeking {
		return fmt.Errorf("jump to %v: %w", target, ErrSeekInProgress)
	}
	if tl.oneWay && target < tl.Position() {
		return fmt.Errorf("jump to %v: %w", target, ErrBackwardSeek)
	}

	tl.runPendingPurge()
	tl.writePosition(target)

	return nil
}

// schedulePurge coalesces purge requests into a single pending sweep. The
// sweep runs at the next engine operation outside a seek, which stands in
// for the next cooperative scheduling opportunity.
func (tl *Timeline) schedulePurge() {
	tl.purgePending = true
}

func (tl *Timeline) runPendingPurge() {
	if !tl.purgePending || tl.seeking {
		return
	}
	tl.purgePending = false

	pos := tl.Position()
	tl.mu.Lock()
	tl.events.purgeBefore(pos)
	tl.tweens.purgeElapsed(pos)
	tl.mu.Unlock()
}
