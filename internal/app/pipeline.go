package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wiktextract/internal/dump"
	"github.com/heartmarshall/wiktextract/internal/extract"
	"github.com/heartmarshall/wiktextract/internal/pagestore"
	"github.com/heartmarshall/wiktextract/internal/stats"
	"github.com/heartmarshall/wiktextract/internal/storage/leveldb"
	"github.com/heartmarshall/wiktextract/internal/title"
)

const defaultBatchSize = 500

// PageSource yields dump pages in order. Implemented by *dump.Reader.
type PageSource interface {
	Each(ctx context.Context, fn func(dump.Page) error) error
}

// RecordSink receives every extracted record. Implemented by *output.Sink.
type RecordSink interface {
	Write(v any) error
}

// PageIndex remembers where each mirrored page was written.
// Implemented by *leveldb.Storage.
type PageIndex interface {
	Put(e leveldb.PageEntry) error
}

// RecordMirror is the batch repository contract for the database mirror.
// Implemented by wordrecord.Repo.
type RecordMirror interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, records []extract.WordRecord) (int, error)
}

// PipelineOptions wires the optional collaborators of a run. Nil fields
// disable the corresponding step.
type PipelineOptions struct {
	RunID         uuid.UUID
	Pages         *pagestore.Store
	Index         PageIndex
	Sink          RecordSink
	Mirror        RecordMirror
	BatchSize     int
	ProgressEvery int
}

// RunResult summarizes one run.
type RunResult struct {
	Pages         int
	Entries       int
	Namespaces    int
	Ignored       int
	Records       int
	StoreErrors   int
	ExtractErrors int
	MirrorErrors  int
	Duration      time.Duration
}

// HasErrors reports whether any page-level step failed.
func (r RunResult) HasErrors() bool {
	return r.StoreErrors > 0 || r.ExtractErrors > 0 || r.MirrorErrors > 0
}

// Pipeline routes every page of a dump: classify, mirror the raw text,
// extract dictionary entries and fan the records out to the sink, the
// statistics and the database mirror. It owns the run's accumulators and
// is not safe for concurrent use.
type Pipeline struct {
	log    *slog.Logger
	engine extract.Engine
	cfg    extract.Config
	opts   PipelineOptions

	stats   *stats.Collector
	result  RunResult
	pending []extract.WordRecord
	warned  map[string]struct{}
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, engine extract.Engine, cfg extract.Config, opts PipelineOptions) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &Pipeline{
		log:    log,
		engine: engine,
		cfg:    cfg,
		opts:   opts,
		stats:  stats.New(),
		warned: make(map[string]struct{}),
	}
}

// Stats returns the header statistics gathered so far.
func (p *Pipeline) Stats() *stats.Collector { return p.stats }

// Result returns the counters gathered so far.
func (p *Pipeline) Result() RunResult { return p.result }

// Capture is the per-page callback: it classifies title, mirrors the raw
// text when a pages directory is configured, and reports whether the page
// is a dictionary entry that should be extracted. A failed write is logged
// and counted; the page is still routed.
func (p *Pipeline) Capture(rawTitle, text string) bool {
	p.result.Pages++

	var cls title.Classification
	if p.opts.Pages != nil {
		var err error
		cls, err = p.opts.Pages.Capture(rawTitle, text)
		if err != nil {
			p.result.StoreErrors++
			p.log.Error("store page",
				slog.String("title", rawTitle),
				slog.String("error", err.Error()),
			)
		} else if !cls.Ignored() {
			p.index(rawTitle, cls)
		}
	} else {
		cls = title.Classify(rawTitle)
	}

	switch cls.Kind {
	case title.KindIgnore:
		p.result.Ignored++
		return false
	case title.KindNamespace:
		p.result.Namespaces++
		if cls.UnknownPrefix {
			p.warnUnknownPrefix(cls.Prefix, rawTitle)
		}
	case title.KindEntry:
		p.result.Entries++
	}

	return cls.IsEntry()
}

func (p *Pipeline) index(rawTitle string, cls title.Classification) {
	if p.opts.Index == nil {
		return
	}
	entry := leveldb.PageEntry{
		Title:  rawTitle,
		Path:   title.RelPath(cls.Stored),
		Kind:   cls.Kind.String(),
		Prefix: cls.Prefix,
	}
	if err := p.opts.Index.Put(entry); err != nil {
		p.result.StoreErrors++
		p.log.Error("index page",
			slog.String("title", rawTitle),
			slog.String("error", err.Error()),
		)
	}
}

func (p *Pipeline) warnUnknownPrefix(prefix, rawTitle string) {
	if _, ok := p.warned[prefix]; ok {
		return
	}
	p.warned[prefix] = struct{}{}
	p.log.Warn("unrecognized namespace prefix",
		slog.String("prefix", prefix),
		slog.String("title", rawTitle),
	)
}

// ProcessPage runs Capture and, for dictionary entries, the extraction
// engine. Only a failing record sink is returned as an error.
func (p *Pipeline) ProcessPage(ctx context.Context, page dump.Page) error {
	if !p.Capture(page.Title, page.Text) {
		return nil
	}

	if p.cfg.Verbose() {
		p.log.Debug("extracting page", slog.String("title", page.Title))
	}

	records, err := p.engine.Extract(page.Title, page.Text, p.cfg, p.stats)
	if err != nil {
		p.result.ExtractErrors++
		p.log.Error("extract page",
			slog.String("title", page.Title),
			slog.String("error", err.Error()),
		)
		return nil
	}

	for _, rec := range records {
		if p.opts.Sink != nil {
			if err := p.opts.Sink.Write(rec); err != nil {
				return fmt.Errorf("write record for %q: %w", page.Title, err)
			}
		}
		p.result.Records++
	}

	if p.opts.Mirror != nil && len(records) > 0 {
		p.pending = append(p.pending, records...)
		if len(p.pending) >= p.opts.BatchSize {
			p.flushMirror(ctx)
		}
	}

	return nil
}

// Run drives src to completion. Page-level failures are counted in the
// result; a read error, a sink error or ctx cancellation stops the run.
func (p *Pipeline) Run(ctx context.Context, src PageSource) (RunResult, error) {
	start := time.Now()

	err := src.Each(ctx, func(page dump.Page) error {
		if err := p.ProcessPage(ctx, page); err != nil {
			return err
		}
		if every := p.opts.ProgressEvery; every > 0 && p.result.Pages%every == 0 {
			p.log.Info("progress",
				slog.Int("pages", p.result.Pages),
				slog.Int("entries", p.result.Entries),
				slog.Int("records", p.result.Records),
				slog.Duration("elapsed", time.Since(start)),
			)
		}
		return nil
	})
	if err == nil {
		p.flushMirror(ctx)
	}

	p.result.Duration = time.Since(start)
	if err != nil {
		p.log.Warn("pipeline stopped",
			slog.Int("pages", p.result.Pages),
			slog.String("error", err.Error()),
		)
		return p.result, fmt.Errorf("run pipeline: %w", err)
	}

	p.log.Info("pipeline completed",
		slog.Int("pages", p.result.Pages),
		slog.Int("entries", p.result.Entries),
		slog.Int("namespaces", p.result.Namespaces),
		slog.Int("ignored", p.result.Ignored),
		slog.Int("records", p.result.Records),
		slog.Int("store_errors", p.result.StoreErrors),
		slog.Int("extract_errors", p.result.ExtractErrors),
		slog.Int("mirror_errors", p.result.MirrorErrors),
		slog.Duration("duration", p.result.Duration),
	)
	return p.result, nil
}

func (p *Pipeline) flushMirror(ctx context.Context) {
	if p.opts.Mirror == nil || len(p.pending) == 0 {
		return
	}

	batch := p.pending
	p.pending = nil

	inserted, err := batchProcess(batch, p.opts.BatchSize, func(chunk []extract.WordRecord) (int, error) {
		return p.opts.Mirror.BulkInsert(ctx, p.opts.RunID, chunk)
	})
	if err != nil {
		p.result.MirrorErrors += len(batch) - inserted
		p.log.Error("mirror records",
			slog.Int("records", len(batch)),
			slog.Int("inserted", inserted),
			slog.String("error", err.Error()),
		)
	}
}

// batchProcess splits items into chunks of batchSize and calls fn for each
// chunk. It returns the total count reported by fn and stops on the first error.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
