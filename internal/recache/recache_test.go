package recache

import "testing"

func TestMatch_AnchoredAtStart(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		match   bool
	}{
		{name: "matches at start", pattern: `\s*(for|while)\s*\(`, text: "  while (x) {", match: true},
		{name: "no match mid-line", pattern: `while`, text: "do { } while (x);", match: false},
		{name: "already anchored", pattern: `^for`, text: "for (;;)", match: true},
		{name: "empty text", pattern: `for`, text: "", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.pattern, tt.text)
			if (got != nil) != tt.match {
				t.Errorf("Match(%q, %q) = %v, want match=%v", tt.pattern, tt.text, got, tt.match)
			}
		})
	}
}

func TestMatch_Groups(t *testing.T) {
	got := Match(`\s*(for|while)\s*\(`, "while (x + 1) {")
	if got == nil {
		t.Fatal("no match")
	}
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	if got[1] != "while" {
		t.Errorf("group 1 = %q, want %q", got[1], "while")
	}
}

func TestSearch_Unanchored(t *testing.T) {
	if Search(`\boperator\s*$`, "bool operator") == nil {
		t.Error("Search did not find trailing operator keyword")
	}
	if Search(`\boperator\s*$`, "cooperator") != nil {
		t.Error("Search matched inside a longer identifier")
	}
}

func TestCache_Reuses(t *testing.T) {
	pattern := `cache-reuse-probe-\d+`
	if Search(pattern, "cache-reuse-probe-1") == nil {
		t.Fatal("first use did not match")
	}
	before := Size()
	for i := 0; i < 10; i++ {
		Search(pattern, "cache-reuse-probe-2")
	}
	if after := Size(); after != before {
		t.Errorf("cache grew from %d to %d on repeated pattern", before, after)
	}
}
