package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// nextReference allocates the next reference number for a document type within
// the issue year, e.g. PO-2026-0042. The counter row is locked by the upsert,
// so two concurrent inserts cannot draw the same number.
func nextReference(ctx context.Context, tx *sqlx.Tx, prefix string, year int) (string, error) {
	var counter int
	err := tx.GetContext(ctx, &counter,
		`INSERT INTO reference_counters (doc_type, year, counter)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (doc_type, year)
		 DO UPDATE SET counter = reference_counters.counter + 1
		 RETURNING counter`,
		prefix, year)
	if err != nil {
		return "", fmt.Errorf("allocating reference number: %w", err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, counter), nil
}
