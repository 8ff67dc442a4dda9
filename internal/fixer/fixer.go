// Package fixer resolves bibliography entries against Crossref and
// merges the best-matching metadata back onto them.
package fixer

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/jaimergp/fixbibtex/internal/bib"
	"github.com/jaimergp/fixbibtex/internal/crossref"
)

// DefaultWorkers is the default size of the lookup worker pool.
const DefaultWorkers = 5

// Searcher resolves entries against a remote metadata API. Both
// methods return (nil, nil)-style absence distinctly from errors:
// SearchWorks reports an empty result list as (nil, nil), WorkByDOI
// reports an unknown identifier as crossref.ErrNotFound.
type Searcher interface {
	SearchWorks(ctx context.Context, query string, filters crossref.Filters) (*crossref.Work, error)
	WorkByDOI(ctx context.Context, doi string) (*crossref.Work, error)
}

// Status classifies the outcome for one entry.
type Status int

const (
	// StatusSkipped means the entry was not eligible for lookup and
	// passed through unchanged.
	StatusSkipped Status = iota
	// StatusUnmatched means the search returned no candidate.
	StatusUnmatched
	// StatusFailed means the lookup errored; the entry is unchanged.
	StatusFailed
	// StatusPatched means a candidate was merged onto the entry.
	StatusPatched
)

// Result is the outcome for one entry: the (possibly updated) entry
// together with its title-similarity and relevance scores.
type Result struct {
	Key        string
	Entry      bib.Entry
	Status     Status
	Similarity float64
	Relevance  float64
	// LowConfidence marks a primary match below the similarity
	// threshold; FixedByDOI marks a low-confidence match whose DOI
	// fallback cleared the threshold.
	LowConfidence bool
	FixedByDOI    bool
	Err           error
}

// Report summarizes one run, keyed by citation key.
type Report struct {
	Total         int
	Patched       []string
	Unmatched     []string
	Failed        []string
	Skipped       []string
	LowConfidence []string
}

// Fixer runs the fetch-and-merge pipeline over a collection.
type Fixer struct {
	client    Searcher
	log       *log.Logger
	workers   int
	progress  func(done, total int)
	completed atomic.Int64
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithWorkers sets the lookup worker pool size.
func WithWorkers(n int) Option {
	return func(f *Fixer) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithLogger sets the logger used for per-entry warnings.
func WithLogger(l *log.Logger) Option {
	return func(f *Fixer) {
		f.log = l
	}
}

// WithProgress sets a callback invoked after each completed lookup,
// successful or not. It may be called from concurrent workers.
func WithProgress(fn func(done, total int)) Option {
	return func(f *Fixer) {
		f.progress = fn
	}
}

// New creates a Fixer talking to the given metadata backend.
func New(client Searcher, opts ...Option) *Fixer {
	f := &Fixer{
		client:  client,
		log:     log.New(io.Discard),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run processes every entry in coll and returns the patched
// collection alongside a run report. The input collection is never
// mutated; entries whose lookup failed, matched nothing, or were
// excluded are carried over unchanged. Per-entry lookup failures are
// logged and do not abort the run.
func (f *Fixer) Run(ctx context.Context, coll *bib.Collection) (*bib.Collection, *Report, []Result, error) {
	patched := coll.Clone()
	report := &Report{Total: coll.Len()}

	var eligible []bib.Entry
	for _, key := range coll.Keys() {
		entry, _ := coll.Get(key)
		if Eligible(entry) {
			eligible = append(eligible, entry)
		} else {
			report.Skipped = append(report.Skipped, key)
		}
	}

	lookups := f.lookupAll(ctx, eligible)

	// Evaluation, fallback lookups, and merging are sequential; only
	// the primary searches above run concurrently.
	results := make([]Result, 0, len(eligible))
	for i, entry := range eligible {
		res := f.evaluate(ctx, entry, lookups[i])
		results = append(results, res)

		switch res.Status {
		case StatusPatched:
			patched.Replace(res.Key, res.Entry)
			report.Patched = append(report.Patched, res.Key)
			if res.LowConfidence && !res.FixedByDOI {
				report.LowConfidence = append(report.LowConfidence, res.Key)
			}
		case StatusUnmatched:
			report.Unmatched = append(report.Unmatched, res.Key)
		case StatusFailed:
			report.Failed = append(report.Failed, res.Key)
		}
	}

	return patched, report, results, nil
}

// lookup carries one search outcome from a worker to evaluation.
type lookup struct {
	work *crossref.Work
	err  error
}

// lookupAll runs the primary searches on a bounded worker pool. Each
// worker writes only its own slot; the completion counter is the sole
// shared state and is incremented exactly once per lookup.
func (f *Fixer) lookupAll(ctx context.Context, entries []bib.Entry) []lookup {
	f.completed.Store(0)
	results := make([]lookup, len(entries))

	p := pool.New().WithMaxGoroutines(f.workers)
	for i, entry := range entries {
		p.Go(func() {
			query, filters := BuildQuery(entry)
			w, err := f.client.SearchWorks(ctx, query, filters)
			results[i] = lookup{work: w, err: err}

			done := f.completed.Add(1)
			if f.progress != nil {
				f.progress(int(done), len(entries))
			}
		})
	}
	p.Wait()

	return results
}

// evaluate scores the candidate against the entry and merges it.
// Below the similarity threshold it attempts the exact-DOI fallback;
// the best available candidate is merged regardless, a low score only
// warns.
func (f *Fixer) evaluate(ctx context.Context, entry bib.Entry, lk lookup) Result {
	res := Result{Key: entry.Key, Entry: entry}

	if lk.err != nil {
		f.log.Error("could not fetch entry", "key", entry.Key, "err", lk.err)
		res.Status = StatusFailed
		res.Err = lk.err
		return res
	}
	if lk.work == nil {
		res.Status = StatusUnmatched
		return res
	}

	work := lk.work
	res.Similarity = Similarity(entry.Field("title"), work.PrimaryTitle())
	res.Relevance = work.Score

	if res.Similarity < MatchThreshold {
		res.LowConfidence = true
		work = f.fallback(ctx, entry, work, &res)
	}

	res.Entry = Merge(entry, *work)
	res.Status = StatusPatched
	return res
}

// fallback re-queries by the entry's own DOI when the primary match
// scored below the threshold. When the exact lookup yields a record,
// that record replaces the search candidate and is re-scored.
func (f *Fixer) fallback(ctx context.Context, entry bib.Entry, work *crossref.Work, res *Result) *crossref.Work {
	doi := entry.Field("doi")
	if doi == "" {
		f.log.Warn("low-confidence match, no DOI available for fallback",
			"key", entry.Key, "similarity", res.Similarity)
		return work
	}

	exact, err := f.client.WorkByDOI(ctx, doi)
	switch {
	case err == nil && exact != nil:
		work = exact
		res.Similarity = Similarity(entry.Field("title"), work.PrimaryTitle())
		res.Relevance = work.Score
		if res.Similarity >= MatchThreshold {
			res.FixedByDOI = true
			f.log.Info("low-confidence match fixed by DOI lookup",
				"key", entry.Key, "similarity", res.Similarity)
		} else {
			f.log.Warn("low-confidence match not fixed by DOI lookup",
				"key", entry.Key, "similarity", res.Similarity)
		}
	case crossref.IsNotFound(err):
		f.log.Warn("low-confidence match, DOI lookup found nothing",
			"key", entry.Key, "doi", doi)
	case err != nil:
		f.log.Warn("low-confidence match, DOI lookup failed",
			"key", entry.Key, "err", err)
	}
	return work
}
