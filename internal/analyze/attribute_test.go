package analyze

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/akireev/deckwise/internal/deck"
)

func testSlides() []deck.Slide {
	return []deck.Slide{
		{Number: 1, Text: "Introduction and agenda overview for the meeting"},
		{Number: 2, Text: "Budget numbers with a detailed cost analysis table"},
		{Number: 3, Text: "Hiring plan for the engineering department"},
		{Number: 7, Text: "The quarterly revenue forecast shows steady growth"},
	}
}

func TestAttribute_ExplicitSingleReference(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "Slide 3: overloaded with text"}}}
	out := Attribute(r, testSlides())
	got := out.Weaknesses[0]
	if !reflect.DeepEqual(got.Slides, []int{3}) {
		t.Errorf("expected slides [3], got %v", got.Slides)
	}
	if got.Text != "overloaded with text" {
		t.Errorf("expected reference stripped from text, got %q", got.Text)
	}
}

func TestAttribute_ExplicitMultiReference(t *testing.T) {
	r := Report{Recommendations: []Finding{{Text: "Slides 2, 4-6: unify the header style"}}}
	out := Attribute(r, testSlides())
	got := out.Recommendations[0]
	if !reflect.DeepEqual(got.Slides, []int{2, 4, 5, 6}) {
		t.Errorf("expected slides [2 4 5 6], got %v", got.Slides)
	}
	if got.Text != "unify the header style" {
		t.Errorf("expected reference stripped from text, got %q", got.Text)
	}
}

func TestAttribute_PageWordVariants(t *testing.T) {
	r := Report{
		Weaknesses:      []Finding{{Text: "Page 3: overloaded text"}},
		Recommendations: []Finding{{Text: "Pages 2, 4-6: inconsistent headers"}},
	}
	out := Attribute(r, testSlides())
	if !reflect.DeepEqual(out.Weaknesses[0].Slides, []int{3}) || out.Weaknesses[0].Text != "overloaded text" {
		t.Errorf("expected {slide 3, overloaded text}, got %+v", out.Weaknesses[0])
	}
	if !reflect.DeepEqual(out.Recommendations[0].Slides, []int{2, 4, 5, 6}) || out.Recommendations[0].Text != "inconsistent headers" {
		t.Errorf("expected {slides 2 4 5 6, inconsistent headers}, got %+v", out.Recommendations[0])
	}
}

func TestAttribute_CaseInsensitiveReference(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "SLIDE 2 - cluttered layout"}}}
	out := Attribute(r, testSlides())
	if !reflect.DeepEqual(out.Weaknesses[0].Slides, []int{2}) {
		t.Errorf("expected slides [2], got %v", out.Weaknesses[0].Slides)
	}
}

func TestAttribute_NgramContentMatch(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "The quarterly revenue forecast shows too little context"}}}
	out := Attribute(r, testSlides())
	if !reflect.DeepEqual(out.Weaknesses[0].Slides, []int{7}) {
		t.Errorf("expected n-gram match to slide 7, got %v", out.Weaknesses[0].Slides)
	}
	// Content matches keep the full text.
	if out.Weaknesses[0].Text != "The quarterly revenue forecast shows too little context" {
		t.Errorf("expected text preserved, got %q", out.Weaknesses[0].Text)
	}
}

func TestAttribute_WordOverlapMatch(t *testing.T) {
	// No 3-gram in common with any slide, but two significant words hit
	// slide 2.
	r := Report{Recommendations: []Finding{{Text: "simplify the budget analysis presentation"}}}
	out := Attribute(r, testSlides())
	got := out.Recommendations[0].Slides
	if len(got) == 0 || got[0] != 2 {
		t.Errorf("expected overlap match led by slide 2, got %v", got)
	}
	if len(got) > maxOverlapSlides {
		t.Errorf("expected at most %d slides, got %v", maxOverlapSlides, got)
	}
}

func TestAttribute_NoMatchStaysUnattributed(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "zzz qqq vvv"}}}
	out := Attribute(r, testSlides())
	if out.Weaknesses[0].Attributed() {
		t.Errorf("expected unattributed finding, got %v", out.Weaknesses[0].Slides)
	}
}

func TestAttribute_StrengthsUntouched(t *testing.T) {
	r := Report{Strengths: []Finding{{Text: "Slide 1: strong opening"}}}
	out := Attribute(r, testSlides())
	if out.Strengths[0].Attributed() {
		t.Error("expected strengths to be left as produced")
	}
	if out.Strengths[0].Text != "Slide 1: strong opening" {
		t.Errorf("expected strength text unchanged, got %q", out.Strengths[0].Text)
	}
}

func TestAttribute_Idempotent(t *testing.T) {
	r := Report{
		Weaknesses: []Finding{
			{Text: "Slide 3: overloaded with text"},
			{Text: "zzz qqq vvv"},
		},
		Recommendations: []Finding{
			{Text: "Slides 2, 4-6: unify the header style"},
			{Slides: []int{9}, Text: "already placed"},
		},
	}
	once := Attribute(r, testSlides())
	twice := Attribute(once, testSlides())

	a, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b, err := json.Marshal(twice)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("expected idempotent attribution:\nonce:  %s\ntwice: %s", a, b)
	}
}

func TestAttribute_DoesNotMutateInput(t *testing.T) {
	r := Report{Weaknesses: []Finding{{Text: "Slide 3: overloaded"}}}
	_ = Attribute(r, testSlides())
	if r.Weaknesses[0].Attributed() {
		t.Error("expected input report unchanged")
	}
}

func TestParseSlideList(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"3", []int{3}},
		{"2, 4-6", []int{2, 4, 5, 6}},
		{"6, 2, 2", []int{2, 6}},
		{"1-3, 2", []int{1, 2, 3}},
		{"x, 5", []int{5}},
		{"", nil},
	}
	for _, tc := range cases {
		got := parseSlideList(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseSlideList(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
