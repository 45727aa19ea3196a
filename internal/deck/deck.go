package deck

// Slide is one unit of source text identified by its page number.
// Numbers are unique and increasing but need not be contiguous.
type Slide struct {
	Number int    `json:"slide_number"`
	Text   string `json:"text"`
}

// Deck is an extracted presentation: an ordered sequence of slides.
type Deck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// WordCount returns the total word count across all slides.
func (d *Deck) WordCount() int {
	total := 0
	for _, s := range d.Slides {
		inWord := false
		for _, r := range s.Text {
			switch {
			case r == ' ' || r == '\t' || r == '\n' || r == '\r':
				inWord = false
			case !inWord:
				inWord = true
				total++
			}
		}
	}
	return total
}
