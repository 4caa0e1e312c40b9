package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/wiktextract/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// operation and the run it belongs to.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, op string, runID uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s run %s: %w", op, runID, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s run %s: %w", op, runID, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s run %s: %w", op, runID, domain.ErrAlreadyExists)
		case "23514", "22P02": // check_violation, invalid_text_representation
			return fmt.Errorf("%s run %s: %w", op, runID, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s run %s: %w", op, runID, err)
}
