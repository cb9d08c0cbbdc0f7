package session

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/xid"
	"github.com/sarchlab/tempo/journal"
	"github.com/sarchlab/tempo/monitoring"
	"github.com/sarchlab/tempo/recording"
	"github.com/sarchlab/tempo/timeline"
)

// Builder can be used to build a session.
type Builder struct {
	monitorOn     bool
	monitorPort   int
	recordingOn   bool
	recordingPath string
	driverFreq    timeline.Freq
}

// MakeBuilder creates a new builder with monitoring and recording enabled.
// Values from a .env file or the environment override the defaults; see
// applyEnvironment for the variable names.
func MakeBuilder() Builder {
	b := Builder{
		monitorOn:   true,
		recordingOn: true,
		driverFreq:  timeline.DefaultDriverFreq,
	}

	return b.applyEnvironment()
}

// applyEnvironment picks up TEMPO_MONITOR_PORT and TEMPO_RECORDING_PATH from
// a .env file or the process environment.
func (b Builder) applyEnvironment() Builder {
	_ = godotenv.Load()

	if port := os.Getenv("TEMPO_MONITOR_PORT"); port != "" {
		portNumber, err := strconv.Atoi(port)
		if err != nil {
			panic("TEMPO_MONITOR_PORT is not a number: " + port)
		}

		b.monitorPort = portNumber
	}

	if path := os.Getenv("TEMPO_RECORDING_PATH"); path != "" {
		b.recordingPath = path
	}

	return b
}

// WithoutMonitoring sets the session to not start a monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording sets the session to not record replay data.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithRecordingPath sets the output path for the recording database, without
// the .sqlite3 suffix.
func (b Builder) WithRecordingPath(path string) Builder {
	b.recordingPath = path
	return b
}

// WithDriverFreq sets the tick frequency of the real-time driver.
func (b Builder) WithDriverFreq(freq timeline.Freq) Builder {
	b.driverFreq = freq
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.recordingPath != "" {
		panic("recording path cannot be set when recording is disabled")
	}
}

// Build builds the session.
func (b Builder) Build() *Session {
	b.parametersMustBeValid()

	s := &Session{
		id: xid.New().String(),
	}

	s.timeline = timeline.New()
	s.driver = timeline.NewDriver(s.timeline, b.driverFreq)

	if b.recordingOn {
		path := b.recordingPath
		if path == "" {
			path = "tempo_session_" + s.id
		}

		s.recorder = recording.NewRecorder(path)
		s.journal = journal.Attach(s.timeline, s.recorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		s.monitor.RegisterTimeline(s.timeline)
		s.monitor.RegisterDriver(s.driver)
		s.monitor.StartServer()
	}

	return s
}
