package scanner

// Stack is the nesting stack of open delimiters, one of '(', '[', '{', '<'.
// It is transient: scoped to one CloseExpression call, carried across line
// boundaries within that call.
type Stack []byte

func (s Stack) Empty() bool {
	return len(s) == 0
}

// Top returns the most recent open delimiter, or 0 on an empty stack.
func (s Stack) Top() byte {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func (s Stack) push(b byte) Stack {
	return append(s, b)
}

func (s Stack) pop() Stack {
	return s[:len(s)-1]
}

// popAngles drops trailing unmatched '<' entries. A pending '<' in front of a
// real closer or a semicolon was a comparison operator, not a template open.
func (s Stack) popAngles() Stack {
	for len(s) > 0 && s[len(s)-1] == '<' {
		s = s[:len(s)-1]
	}
	return s
}

// Clone returns an independent copy, for callers that must keep the incoming
// stack intact.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
