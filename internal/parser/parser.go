package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/akireev/deckwise/internal/deck"
)

// Parser converts raw document bytes into a Deck: one slide per
// page/section of the source document.
type Parser interface {
	Parse(r io.Reader, filename string) (*deck.Deck, error)
}

// Options tune parser behavior.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// appendSlide adds a slide with the next sequential number, skipping
// blank content.
func appendSlide(d *deck.Deck, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.Slides = append(d.Slides, deck.Slide{
		Number: len(d.Slides) + 1,
		Text:   text,
	})
}
