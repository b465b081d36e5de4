package repositories

import (
	"database/sql"
	"fmt"
)

// querier is the subset of [sql.DB] and [sql.Tx] the sequence helper needs,
// so callers can bump a sequence inside an enclosing transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NextSequence atomically increments and returns the next sequence number for the given table.
func NextSequence(q querier, table string) (int, error) {
	sequenceTable := table + "_sequence"

	if _, err := q.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := q.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
