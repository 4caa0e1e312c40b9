package wordrecord_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wiktextract/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wiktextract/internal/adapter/postgres/wordrecord"
	"github.com/heartmarshall/wiktextract/internal/extract"
)

func TestRepo_Integration_InsertCountList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := wordrecord.New(pool)
	ctx := context.Background()

	runID := uuid.New()
	records := []extract.WordRecord{
		{
			Word: "dog", Lang: "English", LangCode: "en", POS: "noun",
			Senses: []extract.Sense{{Glosses: []string{"A mammal."}}},
		},
		{Word: "dog", Lang: "English", LangCode: "en", POS: "verb"},
		{Title: "doggy", Redirect: "dog"},
	}

	n, err := repo.BulkInsert(ctx, runID, records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := repo.CountByRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	other, err := repo.CountByRun(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, other)

	rows, err := repo.ListByWord(ctx, runID, "dog")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first, err := rows[0].Record()
	require.NoError(t, err)
	assert.Equal(t, "dog", first.Word)
	assert.Contains(t, []string{"noun", "verb"}, first.POS)

	redirects, err := repo.ListByWord(ctx, runID, "doggy")
	require.NoError(t, err)
	require.Len(t, redirects, 1)
	rec, err := redirects[0].Record()
	require.NoError(t, err)
	assert.True(t, rec.IsRedirect())
}

func TestRepo_Integration_CountSeeded(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	runID := uuid.New()
	testhelper.SeedRecords(t, pool, runID, 5)

	count, err := wordrecord.New(pool).CountByRun(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
