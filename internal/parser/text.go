package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/akireev/deckwise/internal/deck"
)

// slideMarkerRe matches the wire format upstream extractors use to tag
// page boundaries in plain text.
var slideMarkerRe = regexp.MustCompile(`--- SLIDE (\d+) ---`)

// TextParser handles plain text. It recognizes three layouts, in order:
// explicit '--- SLIDE N ---' markers (numbers taken from the markers),
// form-feed page separators, and finally blank-line paragraphs, each
// becoming one slide.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")

	d := &deck.Deck{
		Title: strings.TrimSuffix(filename, ".txt"),
	}

	if slides := splitMarked(text); len(slides) > 0 {
		d.Slides = slides
		return d, nil
	}

	if strings.Contains(text, "\f") {
		for _, page := range strings.Split(text, "\f") {
			appendSlide(d, page)
		}
		return d, nil
	}

	for _, para := range splitParagraphs(text) {
		appendSlide(d, para)
	}
	return d, nil
}

// splitMarked parses '--- SLIDE N ---' delimited text into slides keyed
// by the marker numbers. Returns nil when no markers are present.
func splitMarked(text string) []deck.Slide {
	matches := slideMarkerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var slides []deck.Slide
	for i, m := range matches {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[start:end])
		if body == "" {
			continue
		}
		slides = append(slides, deck.Slide{Number: num, Text: body})
	}
	return slides
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return paragraphs
}
