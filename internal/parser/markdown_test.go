package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsStartSlides(t *testing.T) {
	input := `# Deck Title

Intro paragraph.

## Agenda

Point one and point two.

### Detail

Fine print.

## Wrap Up

Closing remarks.
`
	p := &MarkdownParser{}
	d, err := p.Parse(strings.NewReader(input), "deck.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Title != "deck" {
		t.Errorf("expected title %q, got %q", "deck", d.Title)
	}
	// h1 and each h2 start a slide; the h3 stays inside its slide.
	if len(d.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(d.Slides))
	}
	if !strings.Contains(d.Slides[0].Text, "Deck Title") || !strings.Contains(d.Slides[0].Text, "Intro paragraph.") {
		t.Errorf("slide 1: expected title and intro, got %q", d.Slides[0].Text)
	}
	if !strings.Contains(d.Slides[1].Text, "Agenda") || !strings.Contains(d.Slides[1].Text, "Fine print.") {
		t.Errorf("slide 2: expected agenda and h3 content, got %q", d.Slides[1].Text)
	}
	if !strings.Contains(d.Slides[2].Text, "Closing remarks.") {
		t.Errorf("slide 3: expected closing remarks, got %q", d.Slides[2].Text)
	}
	for i, s := range d.Slides {
		if s.Number != i+1 {
			t.Errorf("slide[%d]: expected number %d, got %d", i, i+1, s.Number)
		}
	}
}

func TestMarkdownParser_ThematicBreaks(t *testing.T) {
	input := "First part.\n\n---\n\nSecond part.\n\n---\n\nThird part.\n"
	p := &MarkdownParser{}
	d, err := p.Parse(strings.NewReader(input), "breaks.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(d.Slides))
	}
	if !strings.Contains(d.Slides[1].Text, "Second part.") {
		t.Errorf("expected second slide text, got %q", d.Slides[1].Text)
	}
}

func TestMarkdownParser_NoHeadingsSingleSlide(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here.\n"
	p := &MarkdownParser{}
	d, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slides) != 1 {
		t.Fatalf("expected 1 slide for headingless markdown, got %d", len(d.Slides))
	}
	text := d.Slides[0].Text
	if !strings.Contains(text, "Just some plain text.") || !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("expected both paragraphs on the slide, got %q", text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	d, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slides) != 0 {
		t.Errorf("expected 0 slides for empty input, got %d", len(d.Slides))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		d, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if d.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, d.Title)
		}
	}
}
