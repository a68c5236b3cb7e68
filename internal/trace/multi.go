package trace

import "errors"

// MultiTracer fans events out to several tracers. Its level is the most
// verbose level among them.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer combines tracers.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{tracers: tracers}
	for _, tr := range tracers {
		m.level = max(m.level, tr.Level())
	}
	return m
}

// Emit hands each tracer its own copy of ev.
func (m *MultiTracer) Emit(ev *Event) {
	for _, tr := range m.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range m.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, tr := range m.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }
