// Package diag carries the checker's findings from the checks to the
// formatters.
//
// A Diagnostic pairs a Code (the check category, e.g.
// runtime/for_loop_condition) with a Confidence weight between 1 and 5 that
// the enclosing tool uses to filter findings. Checks never return errors for
// things they find; they report through a Reporter and the driver collects
// the results in a Bag.
//
// Reporters compose: BagReporter stores into a Bag, DedupReporter and
// FilterReporter wrap another Reporter.
package diag
