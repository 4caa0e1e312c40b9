package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	runID := uuid.New()
	SeedRecords(t, pool, runID, 3)

	var n int
	err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM word_records WHERE run_id = $1`,
		runID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("expected rows in DB, got error: %v", err)
	}

	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
}
