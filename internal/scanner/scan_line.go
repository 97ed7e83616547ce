package scanner

import (
	"lintcheck/internal/recache"
)

// ScanKind tags a ScanResult.
type ScanKind uint8

const (
	// ScanContinue: end of line reached without closing; resume on the next
	// line with the carried stack.
	ScanContinue ScanKind = iota
	// ScanClosed: the outermost delimiter closed on this line.
	ScanClosed
	// ScanUnbalanced: a closer or statement end arrived with no matching
	// opener. Terminal; the expression cannot be located.
	ScanUnbalanced
)

func (k ScanKind) String() string {
	switch k {
	case ScanContinue:
		return "continue"
	case ScanClosed:
		return "closed"
	case ScanUnbalanced:
		return "unbalanced"
	}
	return "unknown"
}

// ScanResult is the outcome of scanning a single line.
type ScanResult struct {
	Kind ScanKind
	// End is the position just past the matching closer; valid for ScanClosed.
	End int
	// Stack is the nesting stack at end of line; valid for ScanContinue.
	Stack Stack
}

func closed(end int) ScanResult {
	return ScanResult{Kind: ScanClosed, End: end}
}

func unbalanced() ScanResult {
	return ScanResult{Kind: ScanUnbalanced}
}

func carry(stack Stack) ScanResult {
	return ScanResult{Kind: ScanContinue, Stack: stack}
}

// precededByOperator reports whether the text before pos ends with the token
// `operator` (allowing trailing whitespace). Deliberately a loose textual
// check: the input is unparsed text and a lint heuristic does not tokenize.
func precededByOperator(line string, pos int) bool {
	if pos <= 0 {
		return false
	}
	return recache.Search(`\boperator\s*$`, line[:pos]) != nil
}

// ScanLine scans one elided line left to right from start, updating a copy
// of the incoming nesting stack according to the delimiter rules. Pure: the
// caller's stack is never mutated.
func ScanLine(line string, start int, stack Stack) ScanResult {
	stack = stack.Clone()

	for i := start; i < len(line); i++ {
		switch char := line[i]; char {
		case '(', '[', '{':
			stack = stack.push(char)

		case '<':
			// Potential start of a template argument list.
			switch {
			case i > 0 && line[i-1] == '<':
				// Second half of a left shift operator. The tentatively
				// pushed '<' was never a template open.
				if stack.Top() == '<' {
					stack = stack.pop()
					if stack.Empty() {
						return unbalanced()
					}
				}
			case precededByOperator(line, i):
				// operator<, not an opener.
			default:
				stack = stack.push('<')
			}

		case ')', ']', '}':
			// A real closer in front of pending '<' entries means those were
			// comparison operators. Collapse them first.
			stack = stack.popAngles()
			if stack.Empty() {
				return unbalanced()
			}
			top := stack.Top()
			if (top == '(' && char == ')') ||
				(top == '[' && char == ']') ||
				(top == '{' && char == '}') {
				stack = stack.pop()
				if stack.Empty() {
					return closed(i + 1)
				}
			} else {
				// Mismatched delimiters.
				return unbalanced()
			}

		case '>':
			// Potential end of a template argument list.

			// Ignore "->" and operator functions.
			if i > 0 && (line[i-1] == '-' || precededByOperator(line, i-1)) {
				continue
			}

			// Pop a matching '<' if there is one. Otherwise this '>' is an
			// operator with no opener to close; ignore it.
			if stack.Top() == '<' {
				stack = stack.pop()
				if stack.Empty() {
					return closed(i + 1)
				}
			}

		case ';':
			// A statement end inside a presumed template argument list rules
			// the list out: template arguments cannot contain statements.
			stack = stack.popAngles()
			if stack.Empty() {
				return unbalanced()
			}
		}
	}

	// No closing or unbalanced event on this line.
	return carry(stack)
}
