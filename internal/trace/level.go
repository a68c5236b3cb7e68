package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // crash dumps only
	LevelPhase        // driver and link spans
	LevelDetail       // plus per-class registration
	LevelDebug        // plus every failed cast
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// finest scope each level lets through; zero means nothing.
var levelScopes = [...]Scope{
	LevelPhase:  ScopeLink,
	LevelDetail: ScopeClass,
	LevelDebug:  ScopeCast,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil //nolint:gosec // G115: index of a five-entry table.
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return false
	}
	return scope != 0 && scope <= levelScopes[l]
}
