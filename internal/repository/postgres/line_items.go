package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"agrodesk/internal/domain"
)

// insertLineItems writes the document's rows, assigning identifiers and
// positions in input order. The table name comes from a fixed set of callers,
// never from user input.
func insertLineItems(ctx context.Context, tx *sqlx.Tx, table string, docID uuid.UUID, items []domain.LineItem) error {
	query := fmt.Sprintf(`INSERT INTO %s (
		id, document_id, position, description, quantity, unit_price,
		tax_rate_percent, gross_weight, tare_weight, clean_weight,
		oil_content_percent
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, table)

	for i := range items {
		items[i].ID = uuid.New()
		items[i].DocumentID = docID
		items[i].Position = i + 1

		li := items[i]
		_, err := tx.ExecContext(ctx, query,
			li.ID, li.DocumentID, li.Position, li.Description, li.Quantity,
			li.UnitPrice, li.TaxRatePercent, li.GrossWeight, li.TareWeight,
			li.CleanWeight, li.OilContentPercent)
		if err != nil {
			return fmt.Errorf("inserting line item %d: %w", i+1, err)
		}
	}
	return nil
}

// replaceLineItems implements the full-replace update semantics: the old rows
// are deleted and the submitted rows inserted in one transaction.
func replaceLineItems(ctx context.Context, tx *sqlx.Tx, table string, docID uuid.UUID, items []domain.LineItem) error {
	_, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", table), docID)
	if err != nil {
		return fmt.Errorf("deleting old line items: %w", err)
	}
	return insertLineItems(ctx, tx, table, docID, items)
}

func selectLineItems(ctx context.Context, db *sqlx.DB, table string, docID uuid.UUID) ([]domain.LineItem, error) {
	items := []domain.LineItem{}
	err := db.SelectContext(ctx, &items,
		fmt.Sprintf("SELECT * FROM %s WHERE document_id = $1 ORDER BY position", table), docID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// selectAllLineItems fetches every row of the table grouped by document, so
// list assembly avoids a query per document.
func selectAllLineItems(ctx context.Context, db *sqlx.DB, table string) (map[uuid.UUID][]domain.LineItem, error) {
	items := []domain.LineItem{}
	err := db.SelectContext(ctx, &items,
		fmt.Sprintf("SELECT * FROM %s ORDER BY document_id, position", table))
	if err != nil {
		return nil, err
	}

	byDoc := make(map[uuid.UUID][]domain.LineItem)
	for _, li := range items {
		byDoc[li.DocumentID] = append(byDoc[li.DocumentID], li)
	}
	return byDoc, nil
}
