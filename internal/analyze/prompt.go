package analyze

import (
	"fmt"
	"strings"

	"github.com/akireev/deckwise/internal/chunker"
)

// AnalysisInstruction is the fixed instruction prefixed to every block
// prompt. It names the exact JSON key set, forbids markdown fences, and
// tells the model to cite slide numbers when pointing out problems.
const AnalysisInstruction = `You are an expert presentation reviewer. Analyze the structure of the presentation excerpt below (text and headings only). Slides are separated by '--- SLIDE N ---' markers.

Return strictly a single JSON object with exactly these keys:
- "main_topic": the main topic of the presentation (string)
- "goal": the apparent goal of the presentation (string)
- "summary": a short summary of the content (string)
- "strengths": structural strengths (array of strings)
- "weaknesses": structural weaknesses (array of strings)
- "recommendations": suggestions for improving the structure (array of strings)
- "structure_quality": one of "weak", "average", "good" (string)
- "clarity_score": clarity from 1 to 10 (integer)
- "style": presentation style (string)
- "audience_level": intended audience level (string)
- "quality_score": overall quality from 1 to 10 (integer)
- "final_verdict": one-sentence verdict (string)

When a weakness or recommendation concerns specific slides, reference their numbers explicitly, e.g. "Slide 2: too much text" or "Slides 4-6: inconsistent headers".
Do not analyze the subject matter itself, only the structure. Do not add markdown or code fences.`

// BuildBlockPrompt renders a block into the prompt submitted to the
// backend. Deterministic: the same block always yields the same prompt.
func BuildBlockPrompt(b chunker.Block) string {
	var sb strings.Builder
	sb.WriteString(AnalysisInstruction)
	for _, s := range b.Slides {
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "--- SLIDE %d ---\n%s", s.Number, strings.TrimSpace(s.Text))
	}
	return sb.String()
}
