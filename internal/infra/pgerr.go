package infra

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/walletbook/walletbook/internal/apperr"
)

// TranslateError maps driver-level failures onto the error kinds the rest of
// the application understands. Serialization failures, deadlocks and lock
// timeouts are retryable conflicts; connection-level failures surface as
// storage unavailability. Anything else passes through unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%s: %w", pgErr.Code, apperr.ErrConflict)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("postgres: %v: %w", netErr, apperr.ErrUnavailable)
	}

	return err
}
