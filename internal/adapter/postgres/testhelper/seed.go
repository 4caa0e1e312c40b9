package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedRecords inserts n minimal rows for runID directly, bypassing the
// repository. Words are "word-0" .. "word-<n-1>".
func SeedRecords(t *testing.T, pool *pgxpool.Pool, runID uuid.UUID, n int) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < n; i++ {
		word := fmt.Sprintf("word-%d", i)
		_, err := pool.Exec(ctx,
			`INSERT INTO word_records (id, run_id, word, lang, pos, data)
			 VALUES ($1, $2, $3, 'English', 'noun', $4)`,
			uuid.New(), runID, word, fmt.Sprintf(`{"word":%q}`, word),
		)
		if err != nil {
			t.Fatalf("testhelper: seed record %d: %v", i, err)
		}
	}
}
