package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_Report(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("elide")
	time.Sleep(time.Millisecond)
	timer.End(idx, "test.cc")

	idx2 := timer.Begin("scan")
	timer.End(idx2, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "elide" || report.Phases[1].Name != "scan" {
		t.Errorf("phase names = %q, %q", report.Phases[0].Name, report.Phases[1].Name)
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Errorf("elide duration = %f, want > 0", report.Phases[0].DurationMS)
	}
	if report.Phases[0].Note != "test.cc" {
		t.Errorf("note = %q", report.Phases[0].Note)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total %f below first phase %f", report.TotalMS, report.Phases[0].DurationMS)
	}
}

func TestTimer_Empty(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Errorf("empty timer report = %+v", report)
	}
}

func TestTimer_EndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if len(timer.Report().Phases) != 0 {
		t.Error("out-of-range End created phases")
	}
}

func TestTimer_Summary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("scan")
	timer.End(idx, "note text")

	s := timer.Summary()
	if !strings.Contains(s, "scan") {
		t.Errorf("summary missing phase name:\n%s", s)
	}
	if !strings.Contains(s, "total") {
		t.Errorf("summary missing total:\n%s", s)
	}
	if !strings.Contains(s, "note text") {
		t.Errorf("summary missing note:\n%s", s)
	}
}
