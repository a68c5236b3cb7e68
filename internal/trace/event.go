package trace

import "time"

// Kind is the shape of an event: span boundary or instant.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers one CLI command.
	ScopeDriver Scope = iota + 1
	// ScopeLink covers manifest load, snapshot restore and probe runs.
	ScopeLink
	// ScopeClass covers registration of a single class.
	ScopeClass
	// ScopeCast covers individual cast evaluations.
	ScopeCast
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeLink:   "link",
	ScopeClass:  "class",
	ScopeCast:   "cast",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Tracers may copy it; callers must not reuse an
// Event after passing it to Emit.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string
	Detail   string
	Extra    map[string]string
}

// stamp fills the fields the tracer owns.
func (ev *Event) stamp() {
	ev.Seq = NextSeq()
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
}
