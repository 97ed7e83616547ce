// Package checks holds the per-line style checks. Each check inspects one
// line of an elided file and reports findings through a diag.Reporter;
// unparseable input is skipped silently, never escalated.
package checks

import (
	"strings"

	"fortio.org/safecast"

	"lintcheck/internal/diag"
	"lintcheck/internal/recache"
	"lintcheck/internal/scanner"
	"lintcheck/internal/source"
)

// condOps are the operator substrings that are almost never intentional in a
// loop condition position. Their presence usually means a comparison or
// logical operator was mistyped (`i + 10` for `i < 10`). Two-byte operators
// first so `<<` is not reported as two findings about nothing.
var condOps = []string{"<<", ">>", "+", "-", "*", "/", "%"}

// containsCondOp reports whether fragment contains any suspicious operator.
func containsCondOp(fragment string) bool {
	for _, op := range condOps {
		if strings.Contains(fragment, op) {
			return true
		}
	}
	return false
}

// forLoopSuspicious inspects the second ;-separated clause of a for-loop
// header, the condition in the conventional three-clause form. Fewer than
// two clauses (range-based for, macros) is not suspicious.
func forLoopSuspicious(stmt string) bool {
	clauses := strings.Split(stmt, ";")
	if len(clauses) < 2 {
		return false
	}
	return containsCondOp(clauses[1])
}

// whileLoopSuspicious inspects the whole while-loop condition.
func whileLoopSuspicious(stmt string) bool {
	return containsCondOp(stmt)
}

// loopConditionConfidence is fixed: the heuristic is advisory and false
// positives are expected, but a flagged condition is worth a look.
const loopConditionConfidence = diag.Confidence(5)

// CheckLoopCondition flags arithmetic and shift operators inside the
// condition of a for or while loop on the given zero-based line. The
// condition may span multiple lines; the finding is reported at the line the
// condition closes on. Emits zero or one diagnostic per invocation.
func CheckLoopCondition(lines *source.Lines, lineIndex int, r diag.Reporter) {
	line := lines.Line(lineIndex)

	matched := recache.Match(`\s*(for|while)\s*\(`, line)
	if matched == nil {
		return
	}

	// Resolve the full extent of the conditional expression.
	start := strings.IndexByte(line, '(')
	loc := scanner.CloseExpression(lines, lineIndex, start)

	end := loc.Pos - 1
	if start < 0 || end < 0 {
		// Never closed or unbalanced; best effort over possibly-unparseable
		// input means no finding.
		return
	}

	condition := conditionSpanText(line, loc, start, end, lineIndex)

	var notes []diag.Note
	if loc.LineIndex != lineIndex {
		notes = append(notes, diag.Note{
			Span: lineSpan(lines.Source(), lineIndex),
			Msg:  "loop condition opens here",
		})
	}

	switch matched[1] {
	case "for":
		if forLoopSuspicious(condition) {
			r.Report(diag.RuntimeForLoopCondition, loopConditionConfidence,
				lineSpan(lines.Source(), loc.LineIndex),
				"Possible incorrect condition in range-based for loop", notes)
		}
	case "while":
		if whileLoopSuspicious(condition) {
			r.Report(diag.RuntimeWhileLoopCondition, loopConditionConfidence,
				lineSpan(lines.Source(), loc.LineIndex),
				"Possible incorrect condition in range-based while loop", notes)
		}
	}
}

// conditionSpanText slices the text strictly between the opening and closing
// parenthesis. When the condition closes on the opening line the slice is
// straightforward; across lines the clauses are joined so the ;-splitting
// heuristics still see the whole condition.
func conditionSpanText(openLine string, loc scanner.LocateResult, start, end, lineIndex int) string {
	if loc.LineIndex == lineIndex {
		if start+1 > end || end > len(openLine) {
			return ""
		}
		return openLine[start+1 : end]
	}
	head := openLine[start+1:]
	if end > len(loc.Line) {
		return head
	}
	return head + " " + loc.Line[:end]
}

// lineSpan returns the span of the given zero-based line of f.
func lineSpan(f *source.File, lineIndex int) source.Span {
	num, err := safecast.Conv[uint32](lineIndex + 1)
	if err != nil {
		return source.Span{File: f.ID}
	}
	return f.LineSpan(num)
}
