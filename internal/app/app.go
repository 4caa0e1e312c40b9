package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/wiktextract/internal/adapter/postgres"
	"github.com/heartmarshall/wiktextract/internal/adapter/postgres/wordrecord"
	"github.com/heartmarshall/wiktextract/internal/config"
	"github.com/heartmarshall/wiktextract/internal/dump"
	"github.com/heartmarshall/wiktextract/internal/extract"
	"github.com/heartmarshall/wiktextract/internal/output"
	"github.com/heartmarshall/wiktextract/internal/pagestore"
	"github.com/heartmarshall/wiktextract/internal/storage/leveldb"
)

// Run is the application entry point for one extraction run. cfg must
// already be validated. Live records go to stdout and the statistics
// report to stderr, alongside the logs.
//
// The output file is committed only when the whole dump was processed;
// on any error, including cancellation, it is abandoned and a previous
// file at the same path is left untouched.
func Run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (RunResult, error) {
	if cfg.Extract.Verbose {
		cfg.Log.Level = "debug"
	}
	runID := uuid.New()
	logger := WithRun(NewLogger(cfg.Log), runID)

	logger.Info("starting extraction",
		slog.String("version", BuildVersion()),
		slog.String("dump", cfg.Input.Dump),
		slog.String("page", cfg.Input.Page),
		slog.String("languages", cfg.Extract.Languages),
	)

	ecfg, err := extract.NewConfig(cfg.Extract.Options())
	if err != nil {
		return RunResult{}, fmt.Errorf("extraction config: %w", err)
	}

	opts := PipelineOptions{
		RunID:         runID,
		BatchSize:     cfg.Database.BatchSize,
		ProgressEvery: cfg.Output.ProgressEvery,
	}

	var sink *output.Sink
	if cfg.Output.Path != "" {
		if cfg.Output.Path == output.StdoutTarget {
			sink = output.NewLive(stdout)
		} else {
			sink, err = output.Open(cfg.Output.Path)
			if err != nil {
				return RunResult{}, err
			}
		}
		defer sink.Close()
		opts.Sink = sink
	}

	if cfg.Output.PagesDir != "" {
		opts.Pages = pagestore.New(cfg.Output.PagesDir)
	}

	if cfg.Output.PageIndex != "" {
		if opts.Pages == nil {
			logger.Warn("page index ignored without a pages directory")
		} else {
			index, err := leveldb.New(cfg.Output.PageIndex)
			if err != nil {
				return RunResult{}, err
			}
			defer index.Close()
			opts.Index = index
		}
	}

	if cfg.Database.Enabled() {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return RunResult{}, err
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return RunResult{}, err
		}
		defer pool.Close()
		opts.Mirror = wordrecord.New(pool)
	}

	src, closeSrc, err := openSource(ctx, cfg.Input)
	if err != nil {
		return RunResult{}, err
	}
	defer closeSrc()

	pipeline := NewPipeline(logger, extract.NewSectionEngine(), ecfg, opts)
	res, err := pipeline.Run(ctx, src)
	if err != nil {
		return res, err
	}

	if sink != nil {
		if err := sink.Commit(); err != nil {
			return res, err
		}
		logger.Info("records written",
			slog.String("target", sink.Target()),
			slog.Int("records", sink.Count()),
		)
	}

	if cfg.Output.Statistics {
		if err := pipeline.Stats().Report(stderr); err != nil {
			return res, fmt.Errorf("write statistics: %w", err)
		}
	}

	return res, nil
}

func openSource(ctx context.Context, in config.InputConfig) (PageSource, func(), error) {
	if in.Page != "" {
		page, err := dump.ReadPageFile(in.Page)
		if err != nil {
			return nil, nil, err
		}
		return dump.Pages{page}, func() {}, nil
	}

	rc, err := dump.Open(ctx, in.Dump)
	if err != nil {
		return nil, nil, err
	}
	return dump.NewReader(rc), func() { _ = rc.Close() }, nil
}

// Lookup prints the page index entry for rawTitle.
func Lookup(indexDir, rawTitle string, w io.Writer) error {
	if _, err := os.Stat(indexDir); err != nil {
		return fmt.Errorf("page index: %w", err)
	}

	index, err := leveldb.New(indexDir)
	if err != nil {
		return err
	}
	defer index.Close()

	entry, err := index.Get(rawTitle)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Kind, entry.Path, entry.Title)
	return err
}
