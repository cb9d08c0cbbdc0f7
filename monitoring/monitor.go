// Package monitoring turns a live timeline into a small HTTP server so its
// position and schedule can be observed and steered from outside the process.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/tempo/timeline"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor serves the state of a timeline and, when one is registered, the
// controls of its real-time driver.
type Monitor struct {
	timeline   *timeline.Timeline
	driver     *timeline.Driver
	portNumber int
	url        string
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterTimeline registers the timeline to be monitored.
func (m *Monitor) RegisterTimeline(tl *timeline.Timeline) {
	m.timeline = tl
}

// RegisterDriver registers the real-time driver controlled through the pause
// and continue endpoints. Seek and jump requests pause a registered driver
// for the duration of the move.
func (m *Monitor) RegisterDriver(d *timeline.Driver) {
	m.driver = d
}

// StartServer starts the monitor as a web server on the configured port, or
// on a random free port when none is set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/position", m.position)
	r.HandleFunc("/api/end", m.end)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/schedule", m.schedule)
	r.HandleFunc("/api/seek/{target}", m.seek)
	r.HandleFunc("/api/jump/{target}", m.jump)
	r.HandleFunc("/api/timescale/{value}", m.setTimescale)
	r.HandleFunc("/api/pause", m.pauseDriver)
	r.HandleFunc("/api/continue", m.continueDriver)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/", m.summary)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring timeline with %s\n", m.url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitor's summary page in the system browser.
// StartServer must have been called first.
func (m *Monitor) OpenDashboard() error {
	if m.url == "" {
		return fmt.Errorf("monitor server is not started")
	}

	return browser.OpenURL(m.url)
}

type summaryRsp struct {
	Position  float64 `json:"position"`
	End       float64 `json:"end"`
	Timescale float64 `json:"timescale"`
	Events    int     `json:"events"`
	Tweens    int     `json:"tweens"`
	Paused    bool    `json:"paused"`
}

func (m *Monitor) summary(w http.ResponseWriter, _ *http.Request) {
	events, tweens := m.timeline.ScheduleSize()

	rsp := summaryRsp{
		Position:  float64(m.timeline.Position()),
		End:       float64(m.timeline.End()),
		Timescale: m.timeline.Timescale(),
		Events:    events,
		Tweens:    tweens,
	}
	if m.driver != nil {
		rsp.Paused = m.driver.IsPaused()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) position(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"position\":%.10f}", float64(m.timeline.Position()))
}

func (m *Monitor) end(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"end\":%.10f}", float64(m.timeline.End()))
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	position := float64(m.timeline.Position())
	end := float64(m.timeline.End())

	fraction := 0.0
	if end > 0 {
		fraction = position / end
	}

	fmt.Fprintf(w, "{\"position\":%.10f,\"end\":%.10f,\"fraction\":%.10f}",
		position, end, fraction)
}

func (m *Monitor) schedule(w http.ResponseWriter, _ *http.Request) {
	events, tweens := m.timeline.ScheduleSize()
	fmt.Fprintf(w, "{\"events\":%d,\"tweens\":%d}", events, tweens)
}

func (m *Monitor) seek(w http.ResponseWriter, r *http.Request) {
	target, ok := m.parseTarget(w, r)
	if !ok {
		return
	}

	m.withDriverPaused(func() {
		if err := m.timeline.Seek(timeline.VTime(target)); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: %s", err)
		}
	})
}

func (m *Monitor) jump(w http.ResponseWriter, r *http.Request) {
	target, ok := m.parseTarget(w, r)
	if !ok {
		return
	}

	m.withDriverPaused(func() {
		if err := m.timeline.Jump(timeline.VTime(target)); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: %s", err)
		}
	})
}

func (m *Monitor) setTimescale(w http.ResponseWriter, r *http.Request) {
	valueStr := mux.Vars(r)["value"]

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	if err := m.timeline.SetTimescale(value); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
	}
}

func (m *Monitor) parseTarget(
	w http.ResponseWriter,
	r *http.Request,
) (float64, bool) {
	targetStr := mux.Vars(r)["target"]

	target, err := strconv.ParseFloat(targetStr, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return 0, false
	}

	return target, true
}

// withDriverPaused runs fn while the driver, if any, withholds ticks, so a
// manual move does not interleave with real-time ticking.
func (m *Monitor) withDriverPaused(fn func()) {
	if m.driver == nil || m.driver.IsPaused() {
		fn()
		return
	}

	m.driver.Pause()
	defer m.driver.Continue()

	fn()
}

func (m *Monitor) pauseDriver(w http.ResponseWriter, _ *http.Request) {
	if m.driver == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	m.driver.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueDriver(w http.ResponseWriter, _ *http.Request) {
	if m.driver == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	m.driver.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.timeline)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
