// Package wordrecord mirrors extracted records into the word_records table.
package wordrecord

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/wiktextract/internal/adapter/postgres"
	"github.com/heartmarshall/wiktextract/internal/extract"
)

const table = "word_records"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Row is one stored record.
type Row struct {
	ID        uuid.UUID `db:"id"`
	RunID     uuid.UUID `db:"run_id"`
	Word      string    `db:"word"`
	Lang      string    `db:"lang"`
	POS       string    `db:"pos"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

// Record decodes the stored JSON document.
func (r Row) Record() (extract.WordRecord, error) {
	var rec extract.WordRecord
	if err := json.Unmarshal(r.Data, &rec); err != nil {
		return extract.WordRecord{}, fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return rec, nil
}

// Repo provides word_records persistence.
type Repo struct {
	q     postgres.Querier
	now   func() time.Time
	newID func() uuid.UUID
}

// New creates a Repo on top of a pool, transaction or mock.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q, now: time.Now, newID: uuid.New}
}

// BulkInsert stores records in one multi-row INSERT and returns the number
// of inserted rows. Redirect records are stored with the redirecting title
// as the word.
func (r *Repo) BulkInsert(ctx context.Context, runID uuid.UUID, records []extract.WordRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := r.now()
	insert := builder.
		Insert(table).
		Columns("id", "run_id", "word", "lang", "pos", "data", "created_at")

	for i := range records {
		rec := &records[i]
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("encode record %q: %w", rec.Word, err)
		}

		word := rec.Word
		if rec.IsRedirect() {
			word = rec.Title
		}
		insert = insert.Values(r.newID(), runID, word, rec.Lang, rec.POS, data, now)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "insert word records", runID)
	}
	return int(tag.RowsAffected()), nil
}

// CountByRun returns how many records a run stored.
func (r *Repo) CountByRun(ctx context.Context, runID uuid.UUID) (int, error) {
	query, args, err := builder.
		Select("count(*)").
		From(table).
		Where(sq.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "count word records", runID)
	}
	return int(n), nil
}

// ListByWord returns the stored records of a run for one word, oldest first.
func (r *Repo) ListByWord(ctx context.Context, runID uuid.UUID, word string) ([]Row, error) {
	query, args, err := builder.
		Select("id", "run_id", "word", "lang", "pos", "data", "created_at").
		From(table).
		Where(sq.Eq{"run_id": runID, "word": word}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var rows []Row
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "list word records", runID)
	}
	return rows, nil
}
