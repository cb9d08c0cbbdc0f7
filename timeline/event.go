package timeline

// VTime is a coordinate on the virtual time axis. The unit is caller-defined
// (milliseconds, scroll pixels, beats). The Driver interprets VTime as
// milliseconds of wall time.
type VTime float64

// An Action is the forward handler of a scheduled event.
type Action func()

type undoKind int

const (
	undoNone undoKind = iota
	undoSelfInverse
	undoAction
)

// Undo describes the backward behavior of an event. The zero value is NoUndo.
type Undo struct {
	kind   undoKind
	action Action
}

// NoUndo marks an event that has no backward effect. Backward replay skips
// it silently.
var NoUndo = Undo{kind: undoNone}

// SelfInverse marks an event whose forward action is its own inverse.
// Backward replay invokes the forward action again.
var SelfInverse = Undo{kind: undoSelfInverse}

// UndoWith attaches a dedicated backward handler to an event.
func UndoWith(action Action) Undo {
	return Undo{kind: undoAction, action: action}
}

// An EventRecord identifies one event firing to hooks. Reversed is true when
// the undo side of the event is being replayed.
type EventRecord struct {
	ID       string
	Time     VTime
	Reversed bool
}

// scheduledEvent is one entry in a time bucket. Entries are never mutated
// after registration.
type scheduledEvent struct {
	id      string
	forward Action
	undo    Undo
}

// eventBucket holds all events registered at the same exact time, in
// registration order. Forward replay visits the entries front to back,
// backward replay back to front.
type eventBucket struct {
	time    VTime
	entries []*scheduledEvent
}
