package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docform/internal/doctree"
	"github.com/dgallion1/docform/internal/memo"
	"github.com/dgallion1/docform/internal/parser"
	"github.com/dgallion1/docform/internal/pathstore"
	"github.com/dgallion1/docform/internal/render"
)

// Store is the persistence surface the pipeline writes to.
type Store interface {
	PutContent(ctx context.Context, docID string, content pathstore.Content) error
	PutStructured(ctx context.Context, docID string, doc *doctree.Document) error
	PutMeta(ctx context.Context, docID string, meta pathstore.Meta) error
	FindByHash(ctx context.Context, hash string) (string, error)
}

// Worker processes a single document job.
type Worker struct {
	structurer memo.Structurer
	store      Store
	log        *slog.Logger
	parserOpts parser.Options
	backoff    func(attempt int) time.Duration

	maxConcurrentStore int
}

func NewWorker(structurer memo.Structurer, store Store, log *slog.Logger, parserOpts parser.Options, maxStore int) *Worker {
	if maxStore <= 0 {
		maxStore = 1
	}
	return &Worker{
		structurer:         structurer,
		store:              store,
		log:                log,
		parserOpts:         parserOpts,
		backoff:            Backoff,
		maxConcurrentStore: maxStore,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	raw, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		raw.Title = job.Title
	}

	hash := ContentHashHex([]byte(raw.Text))
	job.SetContentHash(hash)

	// Phase 1.5: Dedup check
	existing, err := w.store.FindByHash(ctx, hash)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != "" {
		log.Info("duplicate document, skipping", "existing_doc_id", existing)
		job.MarkDuplicate(existing)
		return
	}

	// Phase 2: Structure
	job.SetStatus(StatusStructuring, "structuring")
	doc := w.structurer.Structure(raw)
	job.SetStructured(string(doc.Format), len(doc.Blocks))
	log.Info("structured document", "format", doc.Format, "blocks", len(doc.Blocks))

	if len(doc.Blocks) == 0 {
		log.Warn("no blocks produced")
		job.AddError("no structurable content")
		job.SetStatus(StatusFailed, "structuring")
		return
	}

	// Phase 3: Store content and structure, then meta. The hash index is
	// written with the meta so a document only becomes a dedup target once
	// its content is stored.
	job.SetStatus(StatusStoring, "storing")
	content := pathstore.Content{Raw: raw.Text, Title: raw.Title}
	if doc.Format == doctree.FormatMarked {
		// Raw is a readable markdown fallback without a title line. Reads
		// structure Markup, so Raw is not expected to reproduce the blocks.
		plain := render.Markdown(&doctree.Document{Format: doc.Format, Blocks: doc.Blocks})
		content = pathstore.Content{Raw: plain, Markup: raw.Text, Title: raw.Title}
	}

	writes := []struct {
		name string
		op   func() error
	}{
		{"content", func() error { return w.store.PutContent(ctx, job.DocID, content) }},
		{"structured", func() error { return w.store.PutStructured(ctx, job.DocID, doc) }},
	}

	sem := make(chan struct{}, w.maxConcurrentStore)
	type storeResult struct {
		name string
		err  error
	}
	results := make(chan storeResult, len(writes))
	for _, wr := range writes {
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			results <- storeResult{name: wr.name, err: w.retry(ctx, log, wr.name, wr.op)}
		}()
	}

	failed := false
	for range writes {
		r := <-results
		if r.err != nil {
			log.Error("store failed", "part", r.name, "error", r.err)
			job.AddError(fmt.Sprintf("store %s: %s", r.name, r.err))
			failed = true
		}
	}
	if failed {
		job.SetStatus(StatusFailed, "storing")
		return
	}

	meta := pathstore.Meta{
		Filename:    job.Filename,
		Title:       raw.Title,
		ContentHash: hash,
		Format:      string(doc.Format),
		Blocks:      len(doc.Blocks),
		CreatedAt:   job.CreatedAt,
	}
	if err := w.retry(ctx, log, "meta", func() error { return w.store.PutMeta(ctx, job.DocID, meta) }); err != nil {
		log.Error("meta write failed", "error", err)
		job.AddError(fmt.Sprintf("meta: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	log.Info("storage complete")
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) retry(ctx context.Context, log *slog.Logger, part string, op func() error) error {
	attempt := 0
	return withRetry(ctx, w.backoff, func() error {
		err := op()
		if err != nil && IsRetryable(err) {
			log.Warn("retryable store error", "part", part, "attempt", attempt, "error", err)
		}
		attempt++
		return err
	})
}
