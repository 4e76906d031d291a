package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"agrodesk/internal/domain"
	"agrodesk/internal/port"
)

type purchaseOrderRepo struct {
	db *sqlx.DB
}

// NewPurchaseOrderRepo creates a new PostgreSQL-backed PurchaseOrderRepository.
func NewPurchaseOrderRepo(db *sqlx.DB) port.PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	po.ID = uuid.New()
	po.CreatedAt = now
	po.UpdatedAt = now

	ref, err := nextReference(ctx, tx, "PO", po.IssueDate.Year())
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create: %w", err)
	}
	po.ReferenceNumber = ref

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchase_orders (
			id, reference_number, customer_id, issue_date, delivery_date,
			status, notes, terms, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		po.ID, po.ReferenceNumber, po.CustomerID, po.IssueDate, po.DeliveryDate,
		po.Status, po.Notes, po.Terms, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "reference_number") {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("purchaseOrderRepo.Create: %w", err)
	}

	if err := insertLineItems(ctx, tx, "purchase_order_items", po.ID, po.Items); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create commit: %w", err)
	}
	po.RecomputeTotals()
	return nil
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := r.db.GetContext(ctx, &po, "SELECT * FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID: %w", err)
	}

	po.Items, err = selectLineItems(ctx, r.db, "purchase_order_items", id)
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID items: %w", err)
	}
	po.RecomputeTotals()
	return &po, nil
}

func (r *purchaseOrderRepo) ListAll(ctx context.Context) ([]domain.PurchaseOrder, error) {
	pos := []domain.PurchaseOrder{}
	err := r.db.SelectContext(ctx, &pos,
		"SELECT * FROM purchase_orders ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.ListAll: %w", err)
	}

	itemsByDoc, err := selectAllLineItems(ctx, r.db, "purchase_order_items")
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.ListAll items: %w", err)
	}
	for i := range pos {
		pos[i].Items = itemsByDoc[pos[i].ID]
		pos[i].RecomputeTotals()
	}
	return pos, nil
}

func (r *purchaseOrderRepo) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Update begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	po.UpdatedAt = time.Now().UTC()

	// The reference number is immutable after creation and is deliberately
	// absent from the update statement.
	res, err := tx.ExecContext(ctx,
		`UPDATE purchase_orders SET
			customer_id = $2, issue_date = $3, delivery_date = $4,
			status = $5, notes = $6, terms = $7, updated_at = $8
		WHERE id = $1`,
		po.ID, po.CustomerID, po.IssueDate, po.DeliveryDate,
		po.Status, po.Notes, po.Terms, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPurchaseOrderNotFound
	}

	if err := replaceLineItems(ctx, tx, "purchase_order_items", po.ID, po.Items); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Update items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Update commit: %w", err)
	}
	po.RecomputeTotals()
	return nil
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPurchaseOrderNotFound
	}
	return nil
}
