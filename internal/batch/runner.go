// Package batch fans a set of ingested documents out to pipeline workers
// and collects the results in a deterministic order.
package batch

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/ingest"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/pipeline"
)

const (
	defaultWorkers        = 4
	defaultProcessTimeout = 30 * time.Second
)

// Runner processes documents concurrently. Results are independent of
// worker count and scheduling: each document is an isolated unit of work
// and the final list is ordered by source name.
type Runner struct {
	logger         *slog.Logger
	pipe           *pipeline.Pipeline
	workers        int
	processTimeout time.Duration
}

type Option func(*Runner)

// WithWorkers caps concurrent pipeline executions.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProcessTimeout bounds how long a single document may take.
func WithProcessTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.processTimeout = d
		}
	}
}

func NewRunner(logger *slog.Logger, pipe *pipeline.Pipeline, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		logger:         logger,
		pipe:           pipe,
		workers:        defaultWorkers,
		processTimeout: defaultProcessTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run processes every document and returns one receipt per input, error
// receipts included. Per-document failures never abort the batch; only
// cancellation of ctx stops the run early.
func (r *Runner) Run(ctx context.Context, docs []ingest.Document) ([]entity.Receipt, error) {
	start := time.Now()
	results := make([]entity.Receipt, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docCtx, cancel := context.WithTimeout(ctx, r.processTimeout)
			defer cancel()
			results[i] = r.pipe.Process(docCtx, pipeline.Document{
				Text:       doc.Text,
				SourceName: doc.Name,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Source-name order keeps the artifacts byte-stable across runs.
	sort.Slice(results, func(a, b int) bool {
		return results[a].Source.SourceFile < results[b].Source.SourceFile
	})

	ok := 0
	for _, res := range results {
		if !res.IsError() {
			ok++
		}
	}
	r.logger.Info("batch.complete",
		"documents", len(docs),
		"succeeded", ok,
		"failed", len(docs)-ok,
		"workers", r.workers,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}
