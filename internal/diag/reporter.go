package diag

import "lintcheck/internal/source"

// Reporter is the minimal contract checks use to hand over findings.
// Implementations: BagReporter (stores into a Bag), DedupReporter and
// FilterReporter (wrap another Reporter).
type Reporter interface {
	Report(code Code, conf Confidence, primary source.Span, msg string, notes []Note)
}

// BagReporter stores reported diagnostics into *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, conf Confidence, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Code: code, Confidence: conf, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// FilterReporter forwards only findings at or above a confidence floor and,
// when Categories is non-empty, only the listed categories.
type FilterReporter struct {
	Next          Reporter
	MinConfidence Confidence
	Categories    map[Code]bool
}

func (r FilterReporter) Report(code Code, conf Confidence, primary source.Span, msg string, notes []Note) {
	if r.Next == nil {
		return
	}
	if conf < r.MinConfidence {
		return
	}
	if len(r.Categories) > 0 && !r.Categories[code] {
		return
	}
	r.Next.Report(code, conf, primary, msg, notes)
}
