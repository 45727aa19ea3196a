package analyze

// FallbackReport returns the deterministic, schema-complete report used
// whenever the backend is unreachable or a block's response could not be
// validated. Every required key is populated and every list field has at
// least one entry, so the pipeline never returns an incomplete report.
func FallbackReport() Report {
	return Report{
		MainTopic:        "Topic not identified",
		Goal:             "Goal not identified",
		Summary:          "Structural analysis was only partially completed",
		Strengths:        []Finding{{Text: "Standard slide structure"}},
		Weaknesses:       []Finding{{Slides: []int{1}, Text: "Slides overloaded with text"}},
		Recommendations:  []Finding{{Slides: []int{1}, Text: "Reduce the amount of text per slide"}},
		StructureQuality: "average",
		ClarityScore:     5,
		Style:            "general",
		AudienceLevel:    "general",
		QualityScore:     5,
		FinalVerdict:     "Fallback",
	}
}
