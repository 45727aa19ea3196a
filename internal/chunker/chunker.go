package chunker

import "github.com/akireev/deckwise/internal/deck"

// Block is a bounded, order-preserving group of consecutive slides
// submitted together to the LLM backend.
type Block struct {
	Index  int
	Slides []deck.Slide
}

// Config controls block partitioning.
type Config struct {
	SlidesPerBlock int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{SlidesPerBlock: 5}
}

// Partition groups ordered slides into blocks of at most SlidesPerBlock
// slides. Order and page identity are preserved: concatenating the blocks
// reconstructs the input exactly. The final block may be smaller. Zero
// slides produce zero blocks.
func Partition(slides []deck.Slide, cfg Config) []Block {
	size := cfg.SlidesPerBlock
	if size <= 0 {
		size = 5
	}

	var blocks []Block
	for start := 0; start < len(slides); start += size {
		end := start + size
		if end > len(slides) {
			end = len(slides)
		}
		blocks = append(blocks, Block{
			Index:  len(blocks),
			Slides: slides[start:end:end],
		})
	}
	return blocks
}
