package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer formats events as they arrive. Output is buffered; Flush or
// Close must be called before the process exits.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
}

// NewStreamTracer writes events passing level to w in format.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		w:      w,
		buf:    bufio.NewWriter(w),
		level:  level,
		format: format,
	}
}

// Emit formats ev and buffers it. Write errors are dropped; tracing never
// fails the traced operation.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.stamp()
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	_, _ = t.buf.Write(line) //nolint:errcheck
	t.mu.Unlock()
}

// Flush writes buffered events to the underlying writer.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Flush()
}

// Close flushes and closes the underlying writer when it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
