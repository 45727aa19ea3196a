package analyze

import "math"

// Merge folds ordered per-block reports into one document-level report.
//
// Scalar fields are seeded from the first block and never overwritten.
// List fields are concatenated in block order with no deduplication.
// Scores are combined pairwise left-to-right: merged = round((merged+next)/2).
// That is a recency-weighted running value, not an arithmetic mean across
// all blocks; it is the defined behavior and callers must not "fix" it.
//
// Callers re-apply caps after merging: per-block caps do not bound the
// concatenated total.
func Merge(results []Report) Report {
	if len(results) == 0 {
		return Report{}
	}

	merged := results[0]
	if len(results) == 1 {
		return merged
	}

	// Clone the seed's lists so merging never aliases a caller's slices.
	merged.Strengths = cloneFindings(merged.Strengths)
	merged.Weaknesses = cloneFindings(merged.Weaknesses)
	merged.Recommendations = cloneFindings(merged.Recommendations)

	for _, r := range results[1:] {
		merged.Strengths = append(merged.Strengths, r.Strengths...)
		merged.Weaknesses = append(merged.Weaknesses, r.Weaknesses...)
		merged.Recommendations = append(merged.Recommendations, r.Recommendations...)
		merged.ClarityScore = pairwise(merged.ClarityScore, r.ClarityScore)
		merged.QualityScore = pairwise(merged.QualityScore, r.QualityScore)
	}
	return merged
}

func pairwise(a, b Score) Score {
	return Score(math.Round(float64(a+b) / 2))
}

func cloneFindings(items []Finding) []Finding {
	if items == nil {
		return nil
	}
	out := make([]Finding, len(items))
	copy(out, items)
	return out
}
