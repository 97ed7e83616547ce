package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lintcheck/internal/diag"
	"lintcheck/internal/source"
)

var (
	prettyPathColor     = color.New(color.Bold)
	prettyWarnColor     = color.New(color.FgYellow, color.Bold)
	prettyCategoryColor = color.New(color.FgCyan)
	prettyCaretColor    = color.New(color.FgGreen, color.Bold)
	prettyNoteColor     = color.New(color.FgBlue)
)

// Pretty renders diagnostics for humans. Expects bag.Sort() to have been
// called. For each finding it prints:
//
//	<path>:<line>:<col>: warning: <Message> [<category>] [<confidence>]
//
// followed by the offending source line with a ^~~~ underline when Context
// is set, then Notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	sprint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}

	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		path := formatPath(f, fs, opts.PathMode)

		fmt.Fprintf(w, "%s %s %s %s %s\n",
			sprint(prettyPathColor, fmt.Sprintf("%s:%d:%d:", path, start.Line, start.Col)),
			sprint(prettyWarnColor, "warning:"),
			d.Message,
			sprint(prettyCategoryColor, "["+d.Code.ID()+"]"),
			fmt.Sprintf("[%d]", d.Confidence),
		)

		if opts.Context && !d.Primary.Empty() {
			writeContext(w, f, start, end, sprint)
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				nstart, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s %s\n",
					sprint(prettyNoteColor, fmt.Sprintf("note: %s:%d:", formatPath(nf, fs, opts.PathMode), nstart.Line)),
					note.Msg,
				)
			}
		}
	}
}

// writeContext echoes the primary line with a caret underline. The underline
// is sized with display widths, so tabs and wide runes keep it aligned.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, sprint func(*color.Color, string) string) {
	lineText := f.GetLine(start.Line)
	if lineText == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(lineText, "\t", " "))

	col := int(start.Col)
	if col < 1 || col > len(lineText)+1 {
		return
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(lineText[:col-1], "\t", " "))

	span := 1
	if end.Line == start.Line && int(end.Col) > col {
		hi := int(end.Col) - 1
		if hi > len(lineText) {
			hi = len(lineText)
		}
		span = runewidth.StringWidth(lineText[col-1 : hi])
	}
	underline := "^"
	if span > 1 {
		underline += strings.Repeat("~", span-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), sprint(prettyCaretColor, underline))
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
