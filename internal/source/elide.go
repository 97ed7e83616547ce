package source

import "strings"

// elidedByte replaces the body of literals and comments. A space can never be
// mistaken for a delimiter or an operator by downstream scanners.
const elidedByte = ' '

// Lines exposes the literal/comment-elided lines of one file. String and
// character literal bodies and comments are replaced byte-for-byte with
// placeholders, so delimiter characters inside them are inert and byte
// positions line up with the original content.
type Lines struct {
	file   *File
	elided []string
}

// ElideLines builds the elided view of a file.
//
// The pass keeps the quote characters of literals and blanks their interior,
// and blanks comments entirely (including the // and /* */ markers). Escape
// sequences inside literals are honored. An unterminated literal is closed at
// end of line, an unterminated block comment at end of file; both are
// tolerated since the checker is advisory.
func ElideLines(f *File) *Lines {
	content := f.Content
	out := make([]byte, len(content))
	copy(out, content)

	const (
		stCode = iota
		stString
		stChar
		stBlockComment
	)
	state := stCode

	for i := 0; i < len(content); i++ {
		b := content[i]

		switch state {
		case stCode:
			switch b {
			case '"':
				state = stString
			case '\'':
				state = stChar
			case '/':
				if i+1 < len(content) && content[i+1] == '/' {
					// line comment: blank through end of line
					for i < len(content) && content[i] != '\n' {
						out[i] = elidedByte
						i++
					}
					i-- // the loop increment lands on the newline
				} else if i+1 < len(content) && content[i+1] == '*' {
					out[i] = elidedByte
					out[i+1] = elidedByte
					i++
					state = stBlockComment
				}
			}

		case stString, stChar:
			closer := byte('"')
			if state == stChar {
				closer = '\''
			}
			switch b {
			case '\\':
				out[i] = elidedByte
				if i+1 < len(content) && content[i+1] != '\n' {
					out[i+1] = elidedByte
					i++
				}
			case closer:
				state = stCode
			case '\n':
				// unterminated literal, give up at end of line
				state = stCode
			default:
				out[i] = elidedByte
			}

		case stBlockComment:
			if b == '*' && i+1 < len(content) && content[i+1] == '/' {
				out[i] = elidedByte
				out[i+1] = elidedByte
				i++
				state = stCode
			} else if b != '\n' {
				out[i] = elidedByte
			}
		}
	}

	elided := strings.Split(string(out), "\n")
	// A trailing newline yields a phantom empty final line; drop it so
	// NumLines matches the visible line count.
	if n := len(elided); n > 0 && elided[n-1] == "" && len(content) > 0 && content[len(content)-1] == '\n' {
		elided = elided[:n-1]
	}

	return &Lines{file: f, elided: elided}
}

// NumLines returns the number of lines in the file.
func (l *Lines) NumLines() int {
	return len(l.elided)
}

// Line returns the zero-based elided line, or "" when out of range.
func (l *Lines) Line(i int) string {
	if i < 0 || i >= len(l.elided) {
		return ""
	}
	return l.elided[i]
}

// Source returns the underlying file.
func (l *Lines) Source() *File {
	return l.file
}
