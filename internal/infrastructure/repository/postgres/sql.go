package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/resilience"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// dbError wraps err with msg and marks connection level failures as transient
// so callers can retry them.
func dbError(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, msg)
	if isTransientDBError(err) {
		return resilience.MarkTransient(wrapped)
	}
	return wrapped
}

func isTransientDBError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "08", // connection exception
		"40", // transaction rollback, serialization and deadlock
		"53", // insufficient resources
		"57": // operator intervention
		return true
	default:
		return false
	}
}

func nullIntToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func intPtrToNullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
