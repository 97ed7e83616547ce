package diag

type Code uint16

const (
	// UnknownCode is the zero value, reported only by broken callers.
	UnknownCode Code = 0

	// Runtime checks: suspicious constructs in otherwise-parseable code.
	RuntimeForLoopCondition   Code = 1000
	RuntimeWhileLoopCondition Code = 1001

	// I/O failures while loading inputs.
	IOLoadFileError Code = 4000
)

var codeID = map[Code]string{
	UnknownCode:               "unknown",
	RuntimeForLoopCondition:   "runtime/for_loop_condition",
	RuntimeWhileLoopCondition: "runtime/while_loop_condition",
	IOLoadFileError:           "io/load_failure",
}

var codeTitle = map[Code]string{
	UnknownCode:               "unknown diagnostic",
	RuntimeForLoopCondition:   "arithmetic or shift operator in a for-loop condition clause",
	RuntimeWhileLoopCondition: "arithmetic or shift operator in a while-loop condition",
	IOLoadFileError:           "input file could not be read",
}

// ID returns the category string attached to emitted findings, in the
// family/check_name form the enclosing tool filters on.
func (c Code) ID() string {
	if id, ok := codeID[c]; ok {
		return id
	}
	return codeID[UnknownCode]
}

// Title returns a one-line description of the category.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}

// CodeByID resolves a category string back to its Code; false when unknown.
func CodeByID(id string) (Code, bool) {
	for c, s := range codeID {
		if s == id && c != UnknownCode {
			return c, true
		}
	}
	return UnknownCode, false
}
