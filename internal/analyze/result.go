package analyze

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Finding is one item in a strengths/weaknesses/recommendations list.
// Unattributed findings carry only text; attributed findings carry the
// slide number(s) they concern. Once attributed, a finding is terminal.
type Finding struct {
	Slides []int
	Text   string
}

// Attributed reports whether the finding has been tied to slide numbers.
func (f Finding) Attributed() bool {
	return len(f.Slides) > 0
}

// MarshalJSON emits the wire shapes consumed by clients: a plain string
// when unattributed, {"slide":N,"text":...} for a single slide, and
// {"slides":[...],"text":...} for several.
func (f Finding) MarshalJSON() ([]byte, error) {
	switch len(f.Slides) {
	case 0:
		return json.Marshal(f.Text)
	case 1:
		return json.Marshal(struct {
			Slide int    `json:"slide"`
			Text  string `json:"text"`
		}{f.Slides[0], f.Text})
	default:
		return json.Marshal(struct {
			Slides []int  `json:"slides"`
			Text   string `json:"text"`
		}{f.Slides, f.Text})
	}
}

// UnmarshalJSON accepts all three wire shapes. Anything else (numbers,
// booleans) is stringified so a sloppy model response still degrades to an
// unattributed finding instead of failing the whole parse.
func (f *Finding) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = Finding{Text: strings.TrimSpace(s)}
		return nil
	}

	var obj struct {
		Slide  *int   `json:"slide"`
		Slides []int  `json:"slides"`
		Text   string `json:"text"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && (obj.Slide != nil || len(obj.Slides) > 0) {
		slides := obj.Slides
		if obj.Slide != nil {
			slides = []int{*obj.Slide}
		}
		*f = Finding{Slides: slides, Text: strings.TrimSpace(obj.Text)}
		return nil
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = Finding{Text: strings.TrimSpace(fmt.Sprint(raw))}
	return nil
}

// Score is an integer quality score that tolerates fractional values in
// backend output by rounding them.
type Score int

func (s *Score) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Score(math.Round(f))
	return nil
}

// Report is the document-level structured critique. Every field is
// required on the wire; ParseResponse rejects responses missing any key
// and FallbackReport always populates all of them.
type Report struct {
	MainTopic        string    `json:"main_topic"`
	Goal             string    `json:"goal"`
	Summary          string    `json:"summary"`
	Strengths        []Finding `json:"strengths"`
	Weaknesses       []Finding `json:"weaknesses"`
	Recommendations  []Finding `json:"recommendations"`
	StructureQuality string    `json:"structure_quality"`
	ClarityScore     Score     `json:"clarity_score"`
	Style            string    `json:"style"`
	AudienceLevel    string    `json:"audience_level"`
	QualityScore     Score     `json:"quality_score"`
	FinalVerdict     string    `json:"final_verdict"`
}

// Caps bound the length of each list field. Truncation keeps the earliest
// items; this is a presentation bound, not a correctness bound.
type Caps struct {
	Strengths       int
	Weaknesses      int
	Recommendations int
}

// DefaultCaps returns the standard presentation bounds.
func DefaultCaps() Caps {
	return Caps{Strengths: 5, Weaknesses: 20, Recommendations: 20}
}

// ApplyCaps returns a copy of the report with each list truncated to its
// cap. Per-block caps do not bound a merged total, so callers re-apply
// this after merging.
func (r Report) ApplyCaps(c Caps) Report {
	r.Strengths = truncateFindings(r.Strengths, c.Strengths)
	r.Weaknesses = truncateFindings(r.Weaknesses, c.Weaknesses)
	r.Recommendations = truncateFindings(r.Recommendations, c.Recommendations)
	return r
}

func truncateFindings(items []Finding, cap int) []Finding {
	if cap <= 0 || len(items) <= cap {
		return items
	}
	return items[:cap:cap]
}
