package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wiktextract/internal/dump"
	"github.com/heartmarshall/wiktextract/internal/extract"
	"github.com/heartmarshall/wiktextract/internal/pagestore"
	"github.com/heartmarshall/wiktextract/internal/storage/leveldb"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEngine returns one record per call and reports a language to the observer.
type fakeEngine struct {
	calls  []string
	failOn string
}

func (e *fakeEngine) Extract(title, text string, cfg extract.Config, obs extract.Observer) ([]extract.WordRecord, error) {
	e.calls = append(e.calls, title)
	if title == e.failOn {
		return nil, errors.New("malformed page")
	}
	obs.RecordLanguage("English")
	obs.RecordPOSHeader("Noun")
	return []extract.WordRecord{{Word: title, Lang: "English", POS: "noun"}}, nil
}

type memorySink struct {
	records []any
	err     error
}

func (s *memorySink) Write(v any) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, v)
	return nil
}

type memoryIndex struct {
	entries []leveldb.PageEntry
}

func (i *memoryIndex) Put(e leveldb.PageEntry) error {
	i.entries = append(i.entries, e)
	return nil
}

type memoryMirror struct {
	batches [][]extract.WordRecord
	runIDs  []uuid.UUID
	err     error
}

func (m *memoryMirror) BulkInsert(_ context.Context, runID uuid.UUID, records []extract.WordRecord) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.batches = append(m.batches, append([]extract.WordRecord(nil), records...))
	m.runIDs = append(m.runIDs, runID)
	return len(records), nil
}

func defaultConfig(t *testing.T) extract.Config {
	t.Helper()
	cfg, err := extract.NewConfig(extract.Options{})
	require.NoError(t, err)
	return cfg
}

var samplePages = dump.Pages{
	{Title: "dog", Text: "==English=="},
	{Title: "Talk:dog", Text: "chatter"},
	{Title: "Template:en-noun", Text: "{{{1}}}"},
	{Title: "cat", Text: "==English=="},
	{Title: "Foo:bar", Text: "odd"},
	{Title: "Foo:baz", Text: "odd"},
}

func TestPipeline_Run_RoutesPages(t *testing.T) {
	engine := &fakeEngine{}
	sink := &memorySink{}
	pages := pagestore.New(t.TempDir())
	index := &memoryIndex{}

	p := NewPipeline(discardLogger(), engine, defaultConfig(t), PipelineOptions{
		Pages: pages,
		Index: index,
		Sink:  sink,
	})

	res, err := p.Run(context.Background(), samplePages)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Pages)
	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, 3, res.Namespaces)
	assert.Equal(t, 1, res.Ignored)
	assert.Equal(t, 2, res.Records)
	assert.False(t, res.HasErrors())

	assert.Equal(t, []string{"dog", "cat"}, engine.calls)
	require.Len(t, sink.records, 2)
	assert.Equal(t, extract.WordRecord{Word: "dog", Lang: "English", POS: "noun"}, sink.records[0])

	// Talk pages are neither stored nor indexed.
	require.Len(t, index.entries, 5)
	assert.Equal(t, leveldb.PageEntry{Title: "dog", Path: "Words/do/dog.txt", Kind: "entry"}, index.entries[0])
	assert.Equal(t, "Template/en-noun.txt", index.entries[1].Path)
	assert.Equal(t, "Template", index.entries[1].Prefix)

	data, err := os.ReadFile(filepath.Join(pages.Dir(), "Words", "do", "dog.txt"))
	require.NoError(t, err)
	assert.Equal(t, "==English==", string(data))
	_, err = os.Stat(filepath.Join(pages.Dir(), "Talk"))
	assert.True(t, os.IsNotExist(err))

	langs := p.Stats().Languages()
	require.Len(t, langs, 1)
	assert.Equal(t, 2, langs[0].Count)
}

func TestPipeline_Capture(t *testing.T) {
	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{})

	assert.True(t, p.Capture("dog", "text"))
	assert.False(t, p.Capture("Talk:dog", "text"))
	assert.False(t, p.Capture("Category:Foo_Bar", "text"))
	assert.False(t, p.Capture("User:someone", "text"))

	res := p.Result()
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, 1, res.Entries)
	assert.Equal(t, 1, res.Namespaces)
	assert.Equal(t, 2, res.Ignored)
}

func TestPipeline_ExtractErrorIsCounted(t *testing.T) {
	engine := &fakeEngine{failOn: "dog"}
	sink := &memorySink{}
	p := NewPipeline(discardLogger(), engine, defaultConfig(t), PipelineOptions{Sink: sink})

	res, err := p.Run(context.Background(), samplePages)
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExtractErrors)
	assert.Equal(t, 1, res.Records)
	assert.True(t, res.HasErrors())
	assert.Equal(t, []string{"dog", "cat"}, engine.calls)
}

func TestPipeline_StoreErrorIsCounted(t *testing.T) {
	base := filepath.Join(t.TempDir(), "pages")
	// A regular file where the base directory should be makes every write fail.
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))

	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{
		Pages: pagestore.New(base),
	})

	res, err := p.Run(context.Background(), samplePages)
	require.NoError(t, err)
	assert.Equal(t, 5, res.StoreErrors)
	assert.Equal(t, 2, res.Records)
}

func TestPipeline_FailedStoreIsNotIndexed(t *testing.T) {
	base := filepath.Join(t.TempDir(), "pages")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))
	index := &memoryIndex{}

	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{
		Pages: pagestore.New(base),
		Index: index,
	})

	assert.True(t, p.Capture("dog", "text"))
	assert.Equal(t, 1, p.Result().StoreErrors)
	assert.Equal(t, 1, p.Result().Entries)
	assert.Empty(t, index.entries)
}

func TestPipeline_SinkErrorStopsRun(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{Sink: sink})

	res, err := p.Run(context.Background(), samplePages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, res.Pages)
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &fakeEngine{}
	p := NewPipeline(discardLogger(), engine, defaultConfig(t), PipelineOptions{})

	_, err := p.Run(ctx, samplePages)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, engine.calls)
}

func TestPipeline_MirrorBatches(t *testing.T) {
	mirror := &memoryMirror{}
	runID := uuid.New()

	pages := dump.Pages{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"}}
	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{
		RunID:     runID,
		Mirror:    mirror,
		BatchSize: 2,
	})

	res, err := p.Run(context.Background(), pages)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Records)
	assert.Zero(t, res.MirrorErrors)

	require.Len(t, mirror.batches, 3)
	assert.Len(t, mirror.batches[0], 2)
	assert.Len(t, mirror.batches[1], 2)
	assert.Len(t, mirror.batches[2], 1)
	for _, id := range mirror.runIDs {
		assert.Equal(t, runID, id)
	}
}

func TestPipeline_MirrorErrorIsCounted(t *testing.T) {
	mirror := &memoryMirror{err: errors.New("connection refused")}

	p := NewPipeline(discardLogger(), &fakeEngine{}, defaultConfig(t), PipelineOptions{
		Mirror:    mirror,
		BatchSize: 10,
	})

	res, err := p.Run(context.Background(), samplePages)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MirrorErrors)
	assert.Equal(t, 2, res.Records)
}

func TestBatchProcess(t *testing.T) {
	var sizes []int
	total, err := batchProcess([]int{1, 2, 3, 4, 5}, 2, func(chunk []int) (int, error) {
		sizes = append(sizes, len(chunk))
		return len(chunk), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []int{2, 2, 1}, sizes)

	boom := errors.New("boom")
	total, err = batchProcess([]int{1, 2, 3}, 1, func(chunk []int) (int, error) {
		if chunk[0] == 2 {
			return 0, boom
		}
		return 1, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, total)

	total, err = batchProcess[int](nil, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}
