package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	link := tm.Begin("link")
	eval := tm.Begin("eval")
	tm.End(link, "zoo.toml")
	tm.End(eval, "16 cases")
	tm.End(99, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != "link" || rep.Phases[0].Note != "zoo.toml" || rep.Phases[1].Note != "16 cases" {
		t.Fatalf("unexpected phases: %+v", rep.Phases)
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Fatalf("total %v smaller than a phase", rep.TotalMS)
	}
}

func TestTimerConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("eval"), "")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 8 {
		t.Fatalf("expected 8 phases, got %d", n)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("eval zoo_probe.toml"), "16 cases")
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("missing header: %q", s)
	}
	if !strings.Contains(s, "eval zoo_probe.toml") || !strings.Contains(s, "// 16 cases") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary: %q", s)
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("link"), "")
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Fatalf("expected zero report, got %+v", rep)
	}
}
