package postgresrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/eventdocs/internal/repository"
)

// wrapDBErr maps common DB errors to repository-level errors and wraps them
// with the operation name.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		// invalid_text_representation, e.g. a malformed uuid
		case "22P02":
			return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		// serialization_failure, deadlock_detected
		case "40001", "40P01":
			return fmt.Errorf("%s: %w: %w", op, repository.ErrRetryable, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
