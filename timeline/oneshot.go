package timeline

import "fmt"

// Play runs a single tween over a private timeline in real time and blocks
// until the position reaches duration. The duration is in milliseconds of
// wall time; freq 0 selects DefaultDriverFreq. Options configure the tween
// exactly as in RegisterTween.
func Play(
	duration VTime,
	freq Freq,
	apply ApplyFunc,
	opts ...TweenOption,
) error {
	if duration < 0 {
		return fmt.Errorf("play: negative duration %v: %w",
			duration, ErrInvalidArgument)
	}

	tl := New()

	if _, err := tl.RegisterTween(0, duration, apply, opts...); err != nil {
		return err
	}

	done := make(chan struct{})
	_, err := tl.RegisterEvent(duration, func() { close(done) }, NoUndo)
	if err != nil {
		return err
	}

	if duration == 0 {
		// The completion event fired synchronously at registration.
		return nil
	}

	driver := NewDriver(tl, freq)
	driver.Start()
	<-done
	driver.Stop()

	return nil
}
