package diag

import (
	"strings"
	"testing"

	"lintcheck/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBag_AddLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: RuntimeForLoopCondition}) {
		t.Fatal("first Add rejected")
	}
	if !b.Add(Diagnostic{Code: RuntimeWhileLoopCondition}) {
		t.Fatal("second Add rejected")
	}
	if b.Add(Diagnostic{Code: RuntimeForLoopCondition}) {
		t.Error("Add above limit accepted")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBag_HasFindings(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Code: RuntimeForLoopCondition, Confidence: 3})

	if !b.HasFindings(1) {
		t.Error("HasFindings(1) = false")
	}
	if !b.HasFindings(3) {
		t.Error("HasFindings(3) = false")
	}
	if b.HasFindings(4) {
		t.Error("HasFindings(4) = true")
	}
}

func TestBag_Sort(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Code: RuntimeWhileLoopCondition, Confidence: 5, Primary: span(0, 20, 25)})
	b.Add(Diagnostic{Code: RuntimeForLoopCondition, Confidence: 5, Primary: span(0, 5, 10)})
	b.Add(Diagnostic{Code: RuntimeForLoopCondition, Confidence: 2, Primary: span(0, 5, 10)})
	b.Add(Diagnostic{Code: RuntimeForLoopCondition, Confidence: 5, Primary: span(1, 0, 3)})

	b.Sort()
	items := b.Items()

	wantOrder := []struct {
		file source.FileID
		s    uint32
		conf Confidence
	}{
		{file: 0, s: 5, conf: 5},
		{file: 0, s: 5, conf: 2},
		{file: 0, s: 20, conf: 5},
		{file: 1, s: 0, conf: 5},
	}
	for i, want := range wantOrder {
		got := items[i]
		if got.Primary.File != want.file || got.Primary.Start != want.s || got.Confidence != want.conf {
			t.Errorf("items[%d] = file %d start %d conf %d, want file %d start %d conf %d",
				i, got.Primary.File, got.Primary.Start, got.Confidence, want.file, want.s, want.conf)
		}
	}
}

func TestBag_Dedup(t *testing.T) {
	b := NewBag(10)
	d := Diagnostic{Code: RuntimeForLoopCondition, Confidence: 5, Primary: span(0, 5, 10)}
	b.Add(d)
	b.Add(d)
	b.Add(Diagnostic{Code: RuntimeWhileLoopCondition, Confidence: 5, Primary: span(0, 5, 10)})

	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after Dedup = %d, want 2", b.Len())
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: RuntimeForLoopCondition})
	b := NewBag(2)
	b.Add(Diagnostic{Code: RuntimeWhileLoopCondition})
	b.Add(Diagnostic{Code: IOLoadFileError})

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Len after Merge = %d, want 3", a.Len())
	}
}

func TestFilterReporter(t *testing.T) {
	bag := NewBag(10)
	r := FilterReporter{
		Next:          BagReporter{Bag: bag},
		MinConfidence: 3,
		Categories:    map[Code]bool{RuntimeForLoopCondition: true},
	}

	r.Report(RuntimeForLoopCondition, 5, span(0, 0, 1), "kept", nil)
	r.Report(RuntimeForLoopCondition, 2, span(0, 0, 1), "below floor", nil)
	r.Report(RuntimeWhileLoopCondition, 5, span(0, 0, 1), "wrong category", nil)

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if bag.Items()[0].Message != "kept" {
		t.Errorf("kept message = %q", bag.Items()[0].Message)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	r.Report(RuntimeForLoopCondition, 5, span(0, 0, 1), "same", nil)
	r.Report(RuntimeForLoopCondition, 5, span(0, 0, 1), "same", nil)
	r.Report(RuntimeForLoopCondition, 5, span(0, 0, 1), "different message", nil)
	r.Report(RuntimeForLoopCondition, 5, span(0, 2, 3), "same", nil)

	if bag.Len() != 3 {
		t.Errorf("Len = %d, want 3", bag.Len())
	}
}

func TestCodeByID(t *testing.T) {
	tests := []struct {
		id   string
		code Code
		ok   bool
	}{
		{id: "runtime/for_loop_condition", code: RuntimeForLoopCondition, ok: true},
		{id: "runtime/while_loop_condition", code: RuntimeWhileLoopCondition, ok: true},
		{id: "io/load_failure", code: IOLoadFileError, ok: true},
		{id: "unknown", code: UnknownCode, ok: false},
		{id: "no/such_check", code: UnknownCode, ok: false},
	}

	for _, tt := range tests {
		code, ok := CodeByID(tt.id)
		if code != tt.code || ok != tt.ok {
			t.Errorf("CodeByID(%q) = (%v, %v), want (%v, %v)", tt.id, code, ok, tt.code, tt.ok)
		}
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cc", []byte("for (int i = 0; i + 1; i++) {\n}\n"))
	f := fs.Get(id)

	diags := []Diagnostic{
		{
			Code:       RuntimeForLoopCondition,
			Confidence: 5,
			Primary:    f.LineSpan(1),
			Message:    "Possible incorrect condition in range-based for loop",
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	want := "a.cc:1:1: Possible incorrect condition in range-based for loop [runtime/for_loop_condition] [5]"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestFormatShortDiagnostics_Notes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cc", []byte("while (a &&\n       b + 1) {\n}\n"))
	f := fs.Get(id)

	diags := []Diagnostic{
		{
			Code:       RuntimeWhileLoopCondition,
			Confidence: 5,
			Primary:    f.LineSpan(2),
			Message:    "Possible incorrect condition in range-based while loop",
			Notes:      []Note{{Span: f.LineSpan(1), Msg: "loop condition opens here"}},
		},
	}

	got := FormatShortDiagnostics(diags, fs, true)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "[note]") {
		t.Errorf("note line missing [note]: %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "a.cc:1:1:") {
		t.Errorf("note not sorted first: %q", lines[0])
	}
}

func TestFormatShortDiagnostics_Empty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs, false); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := FormatShortDiagnostics([]Diagnostic{{Code: RuntimeForLoopCondition}}, nil, false); got != "" {
		t.Errorf("nil FileSet got %q, want empty", got)
	}
}
