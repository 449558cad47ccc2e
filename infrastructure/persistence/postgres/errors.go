package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"menuapi/application/ports"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapConstraintErr decodes the two constraint violations the services care
// about into the gateway's typed errors. Everything else passes through.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", ports.ErrUniqueViolation, pgErr.ConstraintName)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: %s", ports.ErrForeignKeyViolation, pgErr.ConstraintName)
		}
	}
	return err
}
