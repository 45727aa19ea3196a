package analyze

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/akireev/deckwise/internal/deck"
)

// Slide attribution: findings the model returned without an explicit
// slide reference are resolved to slide numbers after the merge. Three
// passes run in strict priority order and the first hit wins:
//
//  1. explicit single reference ("Slide 3: ..." / "Page 3 - ...")
//  2. explicit multi reference ("Slides 2, 4-6: ..."), ranges inclusive
//  3. content similarity (n-gram containment, then word overlap)
//
// Findings that are already attributed pass through untouched, so running
// Attribute twice is a no-op. A finding no pass can place stays an
// unattributed string; that is a valid terminal state, not an error.

var (
	singleRefRe = regexp.MustCompile(`(?is)^(?:slide|page)\s*(\d+)\s*[:–-]\s*(.+)$`)
	multiRefRe  = regexp.MustCompile(`(?is)^(?:slides|pages)\s*([\d,\s–-]+)\s*[:–-]\s*(.+)$`)
	wordRe      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	rangeSplit  = regexp.MustCompile(`[–-]`)
	listSplit   = regexp.MustCompile(`[,\s]+`)
)

// maxOverlapSlides bounds how many slides a word-overlap match may name.
// More candidates than this means the evidence is too diffuse to be useful.
const maxOverlapSlides = 3

type slideIndex struct {
	number    int
	lowerText string
	words     map[string]bool
}

func buildIndex(slides []deck.Slide) []slideIndex {
	idx := make([]slideIndex, 0, len(slides))
	for _, s := range slides {
		lower := strings.ToLower(s.Text)
		words := make(map[string]bool)
		for _, w := range wordRe.FindAllString(lower, -1) {
			words[w] = true
		}
		idx = append(idx, slideIndex{number: s.Number, lowerText: lower, words: words})
	}
	return idx
}

// Attribute resolves unattributed weaknesses and recommendations to slide
// numbers. Strengths are left as the model produced them. The input
// report is not mutated; a new report is returned.
func Attribute(r Report, slides []deck.Slide) Report {
	idx := buildIndex(slides)
	r.Weaknesses = attributeList(r.Weaknesses, idx)
	r.Recommendations = attributeList(r.Recommendations, idx)
	return r
}

func attributeList(items []Finding, idx []slideIndex) []Finding {
	out := make([]Finding, 0, len(items))
	for _, f := range items {
		if f.Attributed() {
			out = append(out, f)
			continue
		}
		out = append(out, attributeFinding(f, idx))
	}
	return out
}

func attributeFinding(f Finding, idx []slideIndex) Finding {
	text := strings.TrimSpace(f.Text)

	if m := singleRefRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return Finding{Slides: []int{n}, Text: strings.TrimSpace(m[2])}
		}
	}

	if m := multiRefRe.FindStringSubmatch(text); m != nil {
		nums := parseSlideList(m[1])
		if len(nums) > 0 {
			return Finding{Slides: nums, Text: strings.TrimSpace(m[2])}
		}
	}

	if nums := matchByContent(text, idx); len(nums) > 0 {
		return Finding{Slides: nums, Text: text}
	}

	return Finding{Text: text}
}

// parseSlideList parses "1, 2, 4–6" into the sorted, deduplicated set of
// integers covered. Ranges are inclusive on both ends; unparseable parts
// are skipped.
func parseSlideList(s string) []int {
	seen := make(map[int]bool)
	for _, part := range listSplit.Split(strings.TrimSpace(s), -1) {
		if part == "" {
			continue
		}
		if bounds := rangeSplit.Split(part, -1); len(bounds) == 2 {
			a, errA := strconv.Atoi(bounds[0])
			b, errB := strconv.Atoi(bounds[1])
			if errA != nil || errB != nil {
				continue
			}
			for n := a; n <= b; n++ {
				seen[n] = true
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			seen[n] = true
		}
	}

	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// matchByContent finds the slide(s) a finding most plausibly refers to.
// Longer n-grams are checked first as stronger evidence: window sizes from
// min(6, word count) down to 3, substring containment against each slide.
// If no n-gram matches, significant-word overlap ranks the slides and the
// top candidates with a positive count win. Empty result means no slide
// had any overlap.
func matchByContent(text string, idx []slideIndex) []int {
	lower := strings.ToLower(text)
	var words []string
	for _, w := range wordRe.FindAllString(lower, -1) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	maxN := 6
	if len(words) < maxN {
		maxN = len(words)
	}
	for n := maxN; n >= 3; n-- {
		for i := 0; i+n <= len(words); i++ {
			ngram := strings.Join(words[i:i+n], " ")
			for _, s := range idx {
				if strings.Contains(s.lowerText, ngram) {
					return []int{s.number}
				}
			}
		}
	}

	type slideScore struct {
		number int
		count  int
	}
	scores := make([]slideScore, 0, len(idx))
	for _, s := range idx {
		count := 0
		for _, w := range words {
			if s.words[w] {
				count++
			}
		}
		scores = append(scores, slideScore{number: s.number, count: count})
	}
	// Stable sort keeps document order among equally-plausible slides.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].count > scores[j].count })

	var nums []int
	for _, sc := range scores {
		if sc.count <= 0 || len(nums) >= maxOverlapSlides {
			break
		}
		nums = append(nums, sc.number)
	}
	return nums
}
