// Package journal records what a timeline replays. Attached as a hook, it
// writes one row per event firing and per tween evaluation through a
// recording.DataRecorder, so a run can be inspected or reconstructed after
// the fact.
package journal

import (
	"github.com/sarchlab/tempo/recording"
	"github.com/sarchlab/tempo/timeline"
)

// Table names used in the recording database.
const (
	EventTable  = "timeline_events"
	SampleTable = "tween_samples"
)

// An EventEntry is one event firing.
type EventEntry struct {
	ID        string
	At        float64
	Direction string
}

// A SampleEntry is one tween evaluation.
type SampleEntry struct {
	ID    string
	At    float64
	Value float64
}

// A Journal subscribes to a timeline's hooks and persists the replay stream.
type Journal struct {
	backend recording.DataRecorder
}

// NewJournal creates a journal writing through the given backend and creates
// its tables.
func NewJournal(backend recording.DataRecorder) *Journal {
	backend.CreateTable(EventTable, EventEntry{})
	backend.CreateTable(SampleTable, SampleEntry{})

	return &Journal{backend: backend}
}

// Attach creates a journal and hooks it onto the timeline.
func Attach(tl *timeline.Timeline, backend recording.DataRecorder) *Journal {
	j := NewJournal(backend)
	tl.AcceptHook(j)
	return j
}

// Func implements timeline.Hook.
func (j *Journal) Func(ctx timeline.HookCtx) {
	switch ctx.Pos {
	case timeline.HookPosAfterEvent:
		rec := ctx.Item.(timeline.EventRecord)

		direction := "forward"
		if rec.Reversed {
			direction = "undo"
		}

		j.backend.InsertData(EventTable, EventEntry{
			ID:        rec.ID,
			At:        float64(rec.Time),
			Direction: direction,
		})
	case timeline.HookPosTweenApply:
		sample := ctx.Item.(timeline.TweenSample)

		j.backend.InsertData(SampleTable, SampleEntry{
			ID:    sample.ID,
			At:    float64(sample.Time),
			Value: sample.Value,
		})
	}
}
