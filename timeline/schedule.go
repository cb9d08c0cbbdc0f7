package timeline

import "sort"

// replayOrder tracks which traversal direction a store's slice is currently
// sorted for. Sorting is idempotent per direction so repeated seeks in the
// same direction skip the sort entirely.
type replayOrder int

const (
	orderNone replayOrder = iota
	orderForward
	orderBackward
)

// eventStore maps times to buckets and keeps a lazily ordered view of the
// buckets for replay.
type eventStore struct {
	buckets map[VTime]*eventBucket
	order   []*eventBucket
	sorted  replayOrder
}

func newEventStore() *eventStore {
	return &eventStore{buckets: make(map[VTime]*eventBucket)}
}

// add appends an entry to the bucket at t, creating the bucket on first use.
// Any registration invalidates the order cache.
func (s *eventStore) add(t VTime, e *scheduledEvent) {
	b, ok := s.buckets[t]
	if !ok {
		b = &eventBucket{time: t}
		s.buckets[t] = b
		s.order = append(s.order, b)
	}
	b.entries = append(b.entries, e)
	s.sorted = orderNone
}

func (s *eventStore) sort(dir replayOrder) {
	if s.sorted == dir {
		return
	}

	if dir == orderForward {
		sort.Slice(s.order, func(i, j int) bool {
			return s.order[i].time < s.order[j].time
		})
	} else {
		sort.Slice(s.order, func(i, j int) bool {
			return s.order[i].time > s.order[j].time
		})
	}

	s.sorted = dir
}

// window returns the buckets crossed by a move from one position to another.
// The interval is half-open so that back-and-forth seeks over the same
// boundary fire each event exactly once per crossing: a forward move covers
// (from, to], a backward move covers (to, from].
func (s *eventStore) window(from, to VTime) []*eventBucket {
	if to > from {
		s.sort(orderForward)
	} else {
		s.sort(orderBackward)
	}

	lo, hi := from, to
	if to < from {
		lo, hi = to, from
	}

	var crossed []*eventBucket
	for _, b := range s.order {
		if b.time > lo && b.time <= hi {
			crossed = append(crossed, b)
		}
	}

	return crossed
}

// purgeBefore drops every bucket strictly behind the given position. Only
// called once the engine is one-way, when those buckets can never replay.
func (s *eventStore) purgeBefore(pos VTime) {
	kept := s.order[:0]
	for _, b := range s.order {
		if b.time < pos {
			delete(s.buckets, b.time)
			continue
		}
		kept = append(kept, b)
	}
	s.order = kept
}

// tweenStore keeps tween descriptors with a lazily ordered replay view.
// Tween application is a pure function of position, so the ordering is a
// cache-friendliness measure rather than a correctness requirement.
type tweenStore struct {
	list   []*Tween
	sorted replayOrder
}

func (s *tweenStore) add(tw *Tween) {
	s.list = append(s.list, tw)
	s.sorted = orderNone
}

func (s *tweenStore) sort(dir replayOrder) {
	if s.sorted == dir {
		return
	}

	if dir == orderForward {
		sort.Slice(s.list, func(i, j int) bool {
			return s.list[i].end < s.list[j].end
		})
	} else {
		sort.Slice(s.list, func(i, j int) bool {
			return s.list[i].start > s.list[j].start
		})
	}

	s.sorted = dir
}

// purgeElapsed drops tweens that can never apply again: flagged as elapsed
// during one-way application, or ended strictly behind the position.
func (s *tweenStore) purgeElapsed(pos VTime) {
	kept := s.list[:0]
	for _, tw := range s.list {
		if tw.elapsed || tw.end < pos {
			continue
		}
		kept = append(kept, tw)
	}
	s.list = kept
}
