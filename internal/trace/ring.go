package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	start  int // oldest event
	n      int // events held
	level  Level
}

// NewRingTracer keeps up to capacity events passing level.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, evicting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.stamp()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n < len(t.events) {
		t.events[(t.start+t.n)%len(t.events)] = stored
		t.n++
		return
	}
	t.events[t.start] = stored
	t.start = (t.start + 1) % len(t.events)
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.events[(t.start+i)%len(t.events)]
	}
	return out
}

// Count returns how many held events have scope.
func (t *RingTracer) Count(scope Scope) int {
	n := 0
	for _, ev := range t.Snapshot() {
		if ev.Scope == scope {
			n++
		}
	}
	return n
}

// Dump writes the held events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
