package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Format is the encoding of streamed or dumped events.
type Format uint8

const (
	FormatAuto   Format = iota // chosen from the output path
	FormatText                 // one human-readable line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat converts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".json", ".jsonl":
		return FormatNDJSON
	default:
		return FormatText
	}
}

// FormatEvent encodes ev as a single newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	data, _ := json.Marshal(jsonEvent{ //nolint:errcheck // strings and integers only
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	dst = append(dst, data...)
	return append(dst, '\n')
}

// appendText renders "[seq] > scope:name (detail) {k=v, ...}". Nested
// events are indented; ">" opens a span, "<" closes it and "*" is a point.
func appendText(dst []byte, ev *Event) []byte {
	dst = fmt.Appendf(dst, "[%6d] ", ev.Seq)
	if ev.ParentID > 0 {
		dst = append(dst, "  "...)
	}
	switch ev.Kind {
	case KindSpanBegin:
		dst = append(dst, "> "...)
	case KindSpanEnd:
		dst = append(dst, "< "...)
	default:
		dst = append(dst, "* "...)
	}
	dst = fmt.Appendf(dst, "%s:%s", ev.Scope, ev.Name)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = fmt.Appendf(dst, "%s=%s", k, ev.Extra[k])
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
