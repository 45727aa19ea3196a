package analyze

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reportSchema is the validation contract for backend responses: the
// parsed object must carry at least the required key set. Extra keys are
// tolerated; list fields must be arrays and scores numeric.
const reportSchema = `{
	"type": "object",
	"required": [
		"main_topic", "goal", "summary",
		"strengths", "weaknesses", "recommendations",
		"structure_quality", "clarity_score", "style",
		"audience_level", "quality_score", "final_verdict"
	],
	"properties": {
		"strengths": {"type": "array"},
		"weaknesses": {"type": "array"},
		"recommendations": {"type": "array"},
		"clarity_score": {"type": "number"},
		"quality_score": {"type": "number"}
	}
}`

var reportSchemaCompiled = jsonschema.MustCompileString("report.json", reportSchema)

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*")

// stripCodeFences removes markdown fence markers the model may emit
// despite being told not to.
func stripCodeFences(s string) string {
	s = codeBlockRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
}

// ParseResponse extracts a schema-valid Report from raw backend text.
// The bool result is false when the text is empty, not a single JSON
// object, or missing required keys; no parse failure escapes as a panic
// or error. List elements are coerced to trimmed findings and truncated
// to their caps.
func ParseResponse(raw string, caps Caps) (Report, bool) {
	text := stripCodeFences(raw)
	if text == "" {
		return Report{}, false
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return Report{}, false
	}
	if err := reportSchemaCompiled.Validate(decoded); err != nil {
		return Report{}, false
	}

	var rep Report
	if err := json.Unmarshal([]byte(text), &rep); err != nil {
		return Report{}, false
	}

	rep.Strengths = cleanFindings(rep.Strengths)
	rep.Weaknesses = cleanFindings(rep.Weaknesses)
	rep.Recommendations = cleanFindings(rep.Recommendations)
	return rep.ApplyCaps(caps), true
}

// cleanFindings drops empty entries. Texts are already trimmed by
// Finding.UnmarshalJSON.
func cleanFindings(items []Finding) []Finding {
	out := make([]Finding, 0, len(items))
	for _, f := range items {
		if f.Text == "" && !f.Attributed() {
			continue
		}
		out = append(out, f)
	}
	return out
}
