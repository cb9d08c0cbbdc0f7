package timeline

import (
	"sync"
	"time"
)

// A Driver advances a Timeline in real time. It samples a monotonic clock at
// a fixed frequency and feeds the elapsed wall time, in milliseconds and
// scaled by the timeline's timescale, into Tick. While it runs, the driver is
// the timeline's thread of control; other goroutines may read Position and
// End but must not mutate the schedule.
type Driver struct {
	tl   *Timeline
	freq Freq

	// pauseLock is held for the duration of every tick. Pause acquires it,
	// so Pause returning means no tick is in flight.
	pauseLock sync.Mutex

	mu      sync.Mutex
	running bool
	paused  bool
	last    time.Time
	stop    chan struct{}
	done    chan struct{}
}

// NewDriver creates a driver ticking at the given frequency, or
// DefaultDriverFreq when freq is 0.
func NewDriver(tl *Timeline, freq Freq) *Driver {
	if freq == 0 {
		freq = DefaultDriverFreq
	}
	return &Driver{tl: tl, freq: freq}
}

// Start begins issuing ticks. Starting a running driver is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}

	d.running = true
	d.paused = false
	d.last = time.Now()
	d.stop = make(chan struct{})
	d.done = make(chan struct{})

	go d.loop(d.stop, d.done)
}

// Pause stops issuing further ticks and blocks until a tick already in
// flight has run to completion, so when Pause returns the caller owns the
// timeline. Pausing does not stop the wall clock sampling goroutine; use
// Stop for that.
func (d *Driver) Pause() {
	d.pauseLock.Lock()
	defer d.pauseLock.Unlock()

	d.mu.Lock()
	d.paused = true
	d.mu.Unlock()
}

// Continue resumes ticking after Pause. The pause interval does not count as
// elapsed time.
func (d *Driver) Continue() {
	d.mu.Lock()
	if d.paused {
		d.paused = false
		d.last = time.Now()
	}
	d.mu.Unlock()
}

// IsPaused reports whether the driver is currently withholding ticks.
func (d *Driver) IsPaused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Stop terminates the driver and waits for its sampling goroutine to exit.
// A stopped driver can be started again.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
}

func (d *Driver) loop(stop <-chan struct{}, done chan<- struct{}) {
	ticker := time.NewTicker(d.freq.Period())
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.step()
		}
	}
}

func (d *Driver) step() {
	d.pauseLock.Lock()
	defer d.pauseLock.Unlock()

	d.mu.Lock()
	if d.paused {
		d.mu.Unlock()
		return
	}
	now := time.Now()
	delta := VTime(now.Sub(d.last).Seconds() * 1e3)
	d.last = now
	d.mu.Unlock()

	scale := d.tl.Timescale()
	if delta == 0 || scale == 0 {
		return
	}

	// A backward tick on a one-way timeline is the only failure mode here,
	// and it repeats every tick, so there is nothing useful to do with it.
	_ = d.tl.Tick(delta * VTime(scale))
}
