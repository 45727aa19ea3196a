package analyze

import (
	"encoding/json"
	"testing"
)

func TestFinding_UnmarshalString(t *testing.T) {
	var f Finding
	if err := json.Unmarshal([]byte(`"  too much text  "`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Text != "too much text" {
		t.Errorf("expected trimmed text, got %q", f.Text)
	}
	if f.Attributed() {
		t.Error("plain string finding must not be attributed")
	}
}

func TestFinding_UnmarshalSingleSlide(t *testing.T) {
	var f Finding
	if err := json.Unmarshal([]byte(`{"slide": 3, "text": "overloaded"}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(f.Slides) != 1 || f.Slides[0] != 3 {
		t.Errorf("expected slides [3], got %v", f.Slides)
	}
	if f.Text != "overloaded" {
		t.Errorf("expected text %q, got %q", "overloaded", f.Text)
	}
}

func TestFinding_UnmarshalMultiSlide(t *testing.T) {
	var f Finding
	if err := json.Unmarshal([]byte(`{"slides": [2, 4, 5], "text": "inconsistent"}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(f.Slides) != 3 || f.Slides[0] != 2 || f.Slides[2] != 5 {
		t.Errorf("expected slides [2 4 5], got %v", f.Slides)
	}
}

func TestFinding_UnmarshalSloppyValue(t *testing.T) {
	// Numbers and other junk degrade to unattributed text, never an error.
	var f Finding
	if err := json.Unmarshal([]byte(`42`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Text != "42" || f.Attributed() {
		t.Errorf("expected unattributed %q, got %+v", "42", f)
	}
}

func TestFinding_MarshalRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   Finding
		want string
	}{
		{"unattributed", Finding{Text: "vague goal"}, `"vague goal"`},
		{"single", Finding{Slides: []int{7}, Text: "dense"}, `{"slide":7,"text":"dense"}`},
		{"multi", Finding{Slides: []int{1, 3}, Text: "fonts"}, `{"slides":[1,3],"text":"fonts"}`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", tc.name, err)
		}
		if string(b) != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, b)
		}
	}
}

func TestScore_UnmarshalRoundsFractions(t *testing.T) {
	var s Score
	if err := json.Unmarshal([]byte(`7.6`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != 8 {
		t.Errorf("expected 8, got %d", s)
	}
	if err := json.Unmarshal([]byte(`7.4`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != 7 {
		t.Errorf("expected 7, got %d", s)
	}
}

func TestReport_ApplyCapsKeepsEarliest(t *testing.T) {
	r := Report{
		Strengths: []Finding{
			{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}, {Text: "f"}, {Text: "g"},
		},
	}
	capped := r.ApplyCaps(DefaultCaps())
	if len(capped.Strengths) != 5 {
		t.Fatalf("expected 5 strengths, got %d", len(capped.Strengths))
	}
	if capped.Strengths[0].Text != "a" || capped.Strengths[4].Text != "e" {
		t.Errorf("expected earliest items kept, got %v", capped.Strengths)
	}
	// Original report untouched.
	if len(r.Strengths) != 7 {
		t.Errorf("expected input report unchanged, got %d strengths", len(r.Strengths))
	}
}

func TestReport_ApplyCapsNoopUnderCap(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "w"}}}
	capped := r.ApplyCaps(DefaultCaps())
	if len(capped.Weaknesses) != 1 {
		t.Errorf("expected 1 weakness, got %d", len(capped.Weaknesses))
	}
}
