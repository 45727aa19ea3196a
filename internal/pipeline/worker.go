package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/akireev/deckwise/internal/analyze"
	"github.com/akireev/deckwise/internal/cache"
	"github.com/akireev/deckwise/internal/chunker"
	"github.com/akireev/deckwise/internal/deck"
	"github.com/akireev/deckwise/internal/parser"
	"github.com/akireev/deckwise/internal/reportstore"
)

// Worker processes a single analysis job.
type Worker struct {
	analyzer   *analyze.Analyzer
	cache      *cache.ReportCache
	store      *reportstore.Client
	log        *slog.Logger
	chunkCfg   chunker.Config
	parserOpts parser.Options
}

func NewWorker(an *analyze.Analyzer, rc *cache.ReportCache, store *reportstore.Client, log *slog.Logger, chunkCfg chunker.Config, parserOpts parser.Options) *Worker {
	return &Worker{
		analyzer:   an,
		cache:      rc,
		store:      store,
		log:        log,
		chunkCfg:   chunkCfg,
		parserOpts: parserOpts,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	d, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		d.Title = job.Title
	}
	if len(d.Slides) == 0 {
		log.Warn("no slide text extracted")
		job.AddError("no extractable slide content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	job.SetContentHash(ContentHashHex([]byte(flattenDeckText(d))))

	// Cache short-circuit: identical deck text reuses the stored report.
	if rep, ok := w.cache.Get(job.ContentHash); ok {
		log.Info("report cache hit", "content_hash", job.ContentHash)
		job.MarkCacheHit()
		job.SetCounts(len(d.Slides), 0)
		job.SetReport(rep)
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 2: Analyze per block.
	blocks := chunker.Partition(d.Slides, w.chunkCfg)
	job.SetCounts(len(d.Slides), len(blocks))
	log.Info("deck partitioned", "slides", len(d.Slides), "blocks", len(blocks))

	job.SetStatus(StatusAnalyzing, "analyzing")
	rep := w.analyzer.AnalyzeSlides(ctx, d.Slides, job.SetBlocksProcessed)

	// Phase 3: Store.
	job.SetStatus(StatusStoring, "storing")
	w.cache.Put(job.ContentHash, rep)
	if w.store != nil {
		rec := reportstore.Record{
			ContentHash: job.ContentHash,
			Filename:    job.Filename,
			Title:       d.Title,
			SlideCount:  len(d.Slides),
			Report:      rep,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
		}
		if err := w.store.PutReport(ctx, rec); err != nil {
			log.Warn("report store write failed", "error", err)
			job.AddError(fmt.Sprintf("store: %s", err))
		}
	}

	job.SetReport(rep)
	job.SetStatus(StatusCompleted, "done")
	log.Info("analysis complete", "verdict", rep.FinalVerdict, "quality_score", rep.QualityScore)
}

// flattenDeckText joins all slide text into a single string for hashing.
func flattenDeckText(d *deck.Deck) string {
	var sb strings.Builder
	for _, s := range d.Slides {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
