package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isTransientTxError conflicto transitorio que amerita reintentar la
// transacción completa: serialization_failure (40001) o deadlock_detected
// (40P01). Cualquier otro error es definitivo.
func isTransientTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
