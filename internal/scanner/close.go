package scanner

import (
	"lintcheck/internal/recache"
	"lintcheck/internal/source"
)

// LocateResult is the outcome of resolving an expression span that may cross
// line boundaries.
type LocateResult struct {
	Found bool
	// Line is the elided text of the line scanning stopped on.
	Line string
	// LineIndex is the zero-based line the closer was found on. When not
	// found it is the line count, the end-of-file sentinel.
	LineIndex int
	// Pos is the position just past the closer, or -1 when not found.
	Pos int
}

func notFound(lines *source.Lines, line string) LocateResult {
	return LocateResult{
		Found:     false,
		Line:      line,
		LineIndex: lines.NumLines(),
		Pos:       -1,
	}
}

// CloseExpression finds the position that closes the delimiter at
// (lineIndex, pos).
//
// The character at the given position must be one of ( [ { < and must not
// start a << or <= operator; otherwise there is nothing to close and the
// end-of-file sentinel is returned. Unbalanced input degrades to not-found
// the same way: the caller cannot safely continue past it.
//
// Matching parentheses this way is quadratic over a whole file when invoked
// per candidate opening. Indexing all pairs up front would be nicer, but
// preprocessor tricks make that unreliable, so each call rescans.
func CloseExpression(lines *source.Lines, lineIndex, pos int) LocateResult {
	line := lines.Line(lineIndex)
	if pos < 0 || pos >= len(line) {
		return notFound(lines, line)
	}
	if !isOpener(line[pos]) || recache.Match(`<[<=]`, line[pos:]) != nil {
		return notFound(lines, line)
	}

	// Check the first line.
	res := ScanLine(line, pos, nil)
	switch res.Kind {
	case ScanClosed:
		return LocateResult{Found: true, Line: line, LineIndex: lineIndex, Pos: res.End}
	case ScanUnbalanced:
		return notFound(lines, line)
	}

	// Continue scanning forward with the carried stack.
	stack := res.Stack
	for !stack.Empty() && lineIndex < lines.NumLines()-1 {
		lineIndex++
		line = lines.Line(lineIndex)
		res = ScanLine(line, 0, stack)
		switch res.Kind {
		case ScanClosed:
			return LocateResult{Found: true, Line: line, LineIndex: lineIndex, Pos: res.End}
		case ScanUnbalanced:
			return notFound(lines, line)
		}
		stack = res.Stack
	}

	// End of file before the expression closed.
	return notFound(lines, line)
}

func isOpener(b byte) bool {
	return b == '(' || b == '[' || b == '{' || b == '<'
}
