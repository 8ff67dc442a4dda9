package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/jaimergp/fixbibtex/internal/bib"
	"github.com/jaimergp/fixbibtex/internal/config"
	"github.com/jaimergp/fixbibtex/internal/crossref"
	"github.com/jaimergp/fixbibtex/internal/fixer"
)

// runFix is the whole pipeline: load, lookup, merge, write.
func runFix(path string, strict bool) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	cfg := config.FromEnv()

	// Parse failures are fatal before any network activity.
	coll, warnings, err := bib.Load(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("bibliography warning", "key", w.Key, "msg", w.Message)
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d bibliography warning(s) in strict mode", len(warnings))
	}

	client := crossref.NewClient(crossref.WithMailto(cfg.Mailto))

	opts := []fixer.Option{
		fixer.WithWorkers(cfg.Workers),
		fixer.WithLogger(logger),
	}
	bar := newProgressHook(&opts)

	patched, report, _, err := fixer.New(client, opts...).Run(context.Background(), coll)
	if bar != nil {
		_ = bar.finish()
	}
	if err != nil {
		return err
	}

	oldPath := bib.TaggedPath(path, "old")
	newPath := bib.TaggedPath(path, "new")
	if err := bib.Write(oldPath, coll); err != nil {
		return err
	}
	if err := bib.Write(newPath, patched); err != nil {
		return err
	}

	printSummary(report, oldPath, newPath)
	return nil
}

// progressHook owns the terminal progress bar. The bar is created
// lazily on the first callback, once the number of eligible entries
// is known, and the callback may arrive from concurrent workers.
type progressHook struct {
	once sync.Once
	bar  *progressbar.ProgressBar
}

// newProgressHook appends a progress option when stderr is a
// terminal; piped runs stay clean.
func newProgressHook(opts *[]fixer.Option) *progressHook {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil
	}
	h := &progressHook{}
	*opts = append(*opts, fixer.WithProgress(func(done, total int) {
		h.once.Do(func() {
			h.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("fetching metadata"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = h.bar.Set(done)
	}))
	return h
}

func (h *progressHook) finish() error {
	if h.bar == nil {
		return nil
	}
	return h.bar.Finish()
}
