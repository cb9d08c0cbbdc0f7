// Package session assembles a timeline together with its supporting services:
// a real-time driver, a recording journal, and a monitoring server.
package session

import (
	"github.com/sarchlab/tempo/journal"
	"github.com/sarchlab/tempo/monitoring"
	"github.com/sarchlab/tempo/recording"
	"github.com/sarchlab/tempo/timeline"
)

// A Session bundles a timeline with the services built around it.
type Session struct {
	id string

	timeline *timeline.Timeline
	driver   *timeline.Driver

	recorder recording.DataRecorder
	journal  *journal.Journal
	monitor  *monitoring.Monitor
}

// ID returns the unique ID of the session.
func (s *Session) ID() string {
	return s.id
}

// Timeline returns the timeline of the session.
func (s *Session) Timeline() *timeline.Timeline {
	return s.timeline
}

// Driver returns the real-time driver of the session. The driver is created
// but not started; call Start to begin real-time playback.
func (s *Session) Driver() *timeline.Driver {
	return s.driver
}

// Recorder returns the data recorder of the session, or nil when recording
// is disabled.
func (s *Session) Recorder() recording.DataRecorder {
	return s.recorder
}

// Journal returns the journal of the session, or nil when recording is
// disabled.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// Monitor returns the monitor of the session, or nil when monitoring is
// disabled.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Terminate stops the driver and flushes and closes the recorder.
func (s *Session) Terminate() {
	s.driver.Stop()

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			panic(err)
		}
	}
}
