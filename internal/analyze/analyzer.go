package analyze

import (
	"context"
	"log/slog"

	"github.com/akireev/deckwise/internal/chunker"
	"github.com/akireev/deckwise/internal/deck"
)

// Generator produces raw text from a prompt. It is satisfied by
// llm.Gateway; errors and empty output are both treated as "no usable
// output" and replaced with the fallback report for that block.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the per-document critique pipeline. It is an explicit
// service object: backend handle and configuration live in fields, never
// in process-wide state, so concurrent documents do not share mutators.
type Analyzer struct {
	gen      Generator
	log      *slog.Logger
	chunkCfg chunker.Config
	caps     Caps
}

func NewAnalyzer(gen Generator, log *slog.Logger, chunkCfg chunker.Config, caps Caps) *Analyzer {
	return &Analyzer{
		gen:      gen,
		log:      log,
		chunkCfg: chunkCfg,
		caps:     caps,
	}
}

// AnalyzeSlides partitions the slides into blocks, critiques each block,
// merges the per-block reports and resolves slide attributions. progress,
// when non-nil, is called with the number of completed blocks after each
// block finishes.
//
// Blocks are processed strictly sequentially and merged in block order;
// the merge semantics are defined over the block sequence, so any future
// parallelization must still merge in original order, not completion
// order. A failing block degrades to the fallback report at its position
// and never aborts the document.
func (a *Analyzer) AnalyzeSlides(ctx context.Context, slides []deck.Slide, progress func(blocksDone int)) Report {
	blocks := chunker.Partition(slides, a.chunkCfg)
	if len(blocks) == 0 {
		return FallbackReport()
	}

	results := make([]Report, 0, len(blocks))
	for _, b := range blocks {
		results = append(results, a.analyzeBlock(ctx, b))
		if progress != nil {
			progress(len(results))
		}
	}

	merged := Merge(results).ApplyCaps(a.caps)
	return Attribute(merged, slides)
}

func (a *Analyzer) analyzeBlock(ctx context.Context, b chunker.Block) Report {
	raw, err := a.gen.Generate(ctx, BuildBlockPrompt(b))
	if err != nil {
		a.log.Warn("block generation failed, substituting fallback",
			"block", b.Index, "error", err)
		return FallbackReport()
	}

	rep, ok := ParseResponse(raw, a.caps)
	if !ok {
		a.log.Warn("unusable block response, substituting fallback",
			"block", b.Index)
		return FallbackReport()
	}
	return rep
}
