package timeline

// A ChainHandle anchors further registrations relative to an earlier one.
// Event handles anchor at the event's time, tween handles at the tween's
// end. The handle borrows the Timeline; it holds no schedule state of its
// own and delegates every registration back to the engine.
type ChainHandle struct {
	timeline *Timeline
	anchor   VTime
}

// Anchor returns the position that Then registrations are relative to.
func (h *ChainHandle) Anchor() VTime {
	return h.anchor
}

// ThenEvent registers an event delay units after the anchor.
func (h *ChainHandle) ThenEvent(
	delay VTime,
	forward Action,
	undo Undo,
) (*ChainHandle, error) {
	return h.timeline.RegisterEvent(h.anchor+delay, forward, undo)
}

// ThenTween registers a tween starting delay units after the anchor.
func (h *ChainHandle) ThenTween(
	delay, duration VTime,
	apply ApplyFunc,
	opts ...TweenOption,
) (*ChainHandle, error) {
	return h.timeline.RegisterTween(h.anchor+delay, duration, apply, opts...)
}
