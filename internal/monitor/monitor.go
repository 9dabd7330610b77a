package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"yhmonitor/internal/config"
	"yhmonitor/internal/program"
	"yhmonitor/internal/scrape"
	"yhmonitor/internal/snapshot"
)

// Fetcher retrieves one page body per source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Runner orchestrates one monitoring run across the configured sources.
type Runner struct {
	Fetcher     Fetcher
	Extractor   *scrape.Extractor
	Store       *snapshot.Store
	Log         *zap.Logger
	Sources     []config.Source
	Concurrency int
	Keep        int
}

// SourceResult is the outcome for one source in a run.
type SourceResult struct {
	Source   string
	Date     string
	PrevDate string
	Total    int
	Diff     program.DiffResult
	FirstRun bool
	Err      error
}

// Changed reports whether the source saw additions or removals.
func (r SourceResult) Changed() bool {
	return !r.Diff.Empty()
}

// Run processes every source for the given date and returns one result
// per source in configuration order. A failing source carries the error
// in its result and never stops the others.
func (r *Runner) Run(ctx context.Context, date time.Time) []SourceResult {
	runID := uuid.NewString()
	log := r.Log.With(zap.String("run_id", runID))

	today := date.Format(snapshot.DateLayout)
	yesterday := date.AddDate(0, 0, -1).Format(snapshot.DateLayout)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	log.Info("run started",
		zap.String("date", today),
		zap.Int("sources", len(r.Sources)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]SourceResult, len(r.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, src := range r.Sources {
		g.Go(func() error {
			// Errors stay in the result so one source cannot cancel
			// the others.
			results[i] = r.runSource(gctx, log, src, today, yesterday)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.Info("run finished", zap.Int("failed", failed))

	return results
}

// runSource executes the pipeline for one source: fetch, extract,
// persist today's snapshot, diff against yesterday's, prune.
func (r *Runner) runSource(ctx context.Context, log *zap.Logger, src config.Source, today, yesterday string) SourceResult {
	result := SourceResult{Source: src.Name, Date: today}
	log = log.With(zap.String("source", src.Name))

	html, err := r.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		result.Err = fmt.Errorf("fetching %s: %w", src.Name, err)
		log.Error("fetch failed", zap.Error(err))
		return result
	}

	records, err := r.Extractor.Extract(html)
	if err != nil {
		result.Err = fmt.Errorf("extracting %s: %w", src.Name, err)
		log.Error("extract failed", zap.Error(err))
		return result
	}
	result.Total = len(records)
	log.Debug("extracted records", zap.Int("count", len(records)))

	if err := r.Store.Write(src.Name, today, records); err != nil {
		result.Err = fmt.Errorf("writing snapshot %s: %w", src.Name, err)
		log.Error("snapshot write failed", zap.Error(err))
		return result
	}

	previous, err := r.Store.Load(src.Name, yesterday)
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			result.FirstRun = true
			log.Info("no snapshot for previous day, skipping comparison")
			r.prune(log, src.Name)
			return result
		}
		result.Err = fmt.Errorf("loading previous snapshot %s: %w", src.Name, err)
		log.Error("snapshot load failed", zap.Error(err))
		return result
	}
	result.PrevDate = yesterday

	result.Diff = program.Diff(records, previous)
	log.Info("source compared",
		zap.Int("total", result.Total),
		zap.Int("added", len(result.Diff.Added)),
		zap.Int("removed", len(result.Diff.Removed)),
	)

	r.prune(log, src.Name)
	return result
}

// prune applies the retention policy after the day's snapshot is
// written and compared. Runs after the diff so that yesterday's file is
// still present for comparison even with the tightest retention.
func (r *Runner) prune(log *zap.Logger, source string) {
	if r.Keep <= 0 {
		return
	}
	removed, err := r.Store.Prune(source, r.Keep)
	if err != nil {
		log.Warn("prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		log.Debug("pruned old snapshots", zap.Int("removed", removed))
	}
}

// Changed reports whether any source in the run saw changes.
func Changed(results []SourceResult) bool {
	for _, res := range results {
		if res.Changed() {
			return true
		}
	}
	return false
}

// AllFailed reports whether every source in the run failed. An empty
// run has not failed.
func AllFailed(results []SourceResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, res := range results {
		if res.Err == nil {
			return false
		}
	}
	return true
}
