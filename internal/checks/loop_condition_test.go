package checks

import (
	"testing"

	"lintcheck/internal/diag"
	"lintcheck/internal/source"
)

type reported struct {
	code  diag.Code
	conf  diag.Confidence
	span  source.Span
	msg   string
	notes []diag.Note
}

type testReporter struct {
	findings []reported
}

func (r *testReporter) Report(code diag.Code, conf diag.Confidence, primary source.Span, msg string, notes []diag.Note) {
	r.findings = append(r.findings, reported{code: code, conf: conf, span: primary, msg: msg, notes: notes})
}

func elide(t *testing.T, text string) *source.Lines {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cc", []byte(text))
	return source.ElideLines(fs.Get(fileID))
}

func TestContainsCondOp(t *testing.T) {
	tests := []struct {
		fragment string
		want     bool
	}{
		{fragment: "i + 10", want: true},
		{fragment: "i - 1", want: true},
		{fragment: "n * 2", want: true},
		{fragment: "n / 2", want: true},
		{fragment: "n % 2", want: true},
		{fragment: "x << 1", want: true},
		{fragment: "x >> 1", want: true},
		{fragment: "i < 10", want: false},
		{fragment: "i <= n && ok", want: false},
		{fragment: "", want: false},
	}

	for _, tt := range tests {
		if got := containsCondOp(tt.fragment); got != tt.want {
			t.Errorf("containsCondOp(%q) = %v, want %v", tt.fragment, got, tt.want)
		}
	}
}

func TestForLoopSuspicious(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want bool
	}{
		{name: "arithmetic in condition", stmt: "int i = 0; i + 10; i++", want: true},
		{name: "comparison condition", stmt: "int i = 0; i < 10; i++", want: false},
		{name: "arithmetic in init only", stmt: "int i = n - 1; i >= 0; i--", want: false},
		{name: "range-based single clause", stmt: "auto& x : items", want: false},
		{name: "empty", stmt: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := forLoopSuspicious(tt.stmt); got != tt.want {
				t.Errorf("forLoopSuspicious(%q) = %v, want %v", tt.stmt, got, tt.want)
			}
		})
	}
}

func TestWhileLoopSuspicious(t *testing.T) {
	if !whileLoopSuspicious("x + y > 0") {
		t.Error("whileLoopSuspicious(x + y > 0) = false, want true")
	}
	if whileLoopSuspicious("x > 0") {
		t.Error("whileLoopSuspicious(x > 0) = true, want false")
	}
}

func TestCheckLoopCondition_ForLoop(t *testing.T) {
	lines := elide(t, "for (int i = 0; i + 10; i++) {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)

	if len(r.findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(r.findings))
	}
	f := r.findings[0]
	if f.code != diag.RuntimeForLoopCondition {
		t.Errorf("code = %v, want RuntimeForLoopCondition", f.code)
	}
	if f.conf != 5 {
		t.Errorf("confidence = %d, want 5", f.conf)
	}
	if f.msg != "Possible incorrect condition in range-based for loop" {
		t.Errorf("message = %q", f.msg)
	}
	if len(f.notes) != 0 {
		t.Errorf("single-line finding carries %d notes, want 0", len(f.notes))
	}
}

func TestCheckLoopCondition_CleanForLoop(t *testing.T) {
	lines := elide(t, "for (int i = 0; i < 10; i++) {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)
	if len(r.findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(r.findings))
	}
}

func TestCheckLoopCondition_WhileLoop(t *testing.T) {
	lines := elide(t, "while (count + offset) {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)

	if len(r.findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(r.findings))
	}
	f := r.findings[0]
	if f.code != diag.RuntimeWhileLoopCondition {
		t.Errorf("code = %v, want RuntimeWhileLoopCondition", f.code)
	}
	if f.msg != "Possible incorrect condition in range-based while loop" {
		t.Errorf("message = %q", f.msg)
	}
}

func TestCheckLoopCondition_CleanWhileLoop(t *testing.T) {
	lines := elide(t, "while (done) {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)
	if len(r.findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(r.findings))
	}
}

func TestCheckLoopCondition_MultiLine(t *testing.T) {
	// The condition closes on line 2; the finding lands there with a note
	// pointing back at the opening line.
	text := "while (a &&\n       b &&\n       c + 1) {\n}\n"
	lines := elide(t, text)
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)

	if len(r.findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(r.findings))
	}
	f := r.findings[0]
	if f.code != diag.RuntimeWhileLoopCondition {
		t.Errorf("code = %v, want RuntimeWhileLoopCondition", f.code)
	}

	src := lines.Source()
	if f.span != src.LineSpan(3) {
		t.Errorf("finding span = %v, want line 3 span %v", f.span, src.LineSpan(3))
	}
	if len(f.notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(f.notes))
	}
	if f.notes[0].Msg != "loop condition opens here" {
		t.Errorf("note message = %q", f.notes[0].Msg)
	}
	if f.notes[0].Span != src.LineSpan(1) {
		t.Errorf("note span = %v, want line 1 span %v", f.notes[0].Span, src.LineSpan(1))
	}
}

func TestCheckLoopCondition_UnclosedCondition(t *testing.T) {
	lines := elide(t, "for (int i = 0; i + 10;\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)
	if len(r.findings) != 0 {
		t.Fatalf("got %d findings on unclosed condition, want 0", len(r.findings))
	}
}

func TestCheckLoopCondition_NotALoop(t *testing.T) {
	lines := elide(t, "if (x + y) {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)
	if len(r.findings) != 0 {
		t.Fatalf("got %d findings on non-loop line, want 0", len(r.findings))
	}
}

func TestCheckLoopCondition_OperatorInsideLiteral(t *testing.T) {
	// The '+' lives in a string literal; elision removes it before the check.
	lines := elide(t, "while (s == \"a+b\") {\n}\n")
	r := &testReporter{}
	CheckLoopCondition(lines, 0, r)
	if len(r.findings) != 0 {
		t.Fatalf("got %d findings for elided literal, want 0", len(r.findings))
	}
}
