package storage

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// pq error code 42P05: duplicate_prepared_statement. Raised when pooled
// connections race on statement preparation (observed behind pgbouncer in
// transaction pooling mode).
const duplicatePreparedStatementCode = "42P05"

// IsTransientConflict reports whether err belongs to the prepared-statement
// conflict class of persistence errors, which callers may retry.
func IsTransientConflict(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == duplicatePreparedStatementCode {
		return true
	}

	return strings.Contains(err.Error(), "prepared statement")
}
