package diag

import (
	"lintcheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Code       Code
	Confidence Confidence
	Message    string
	Primary    source.Span
	Notes      []Note
}
