package diag

import "fmt"

// Confidence weights how likely a finding is a real problem, from 1 (wild
// guess) to 5 (near certain). The enclosing tool filters reported findings
// by this value.
type Confidence uint8

const (
	ConfidenceMin Confidence = 1
	ConfidenceMax Confidence = 5
)

// Valid reports whether c is inside the 1..5 range.
func (c Confidence) Valid() bool {
	return c >= ConfidenceMin && c <= ConfidenceMax
}

func (c Confidence) String() string {
	return fmt.Sprintf("%d", uint8(c))
}
