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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	ref, err := nextReference(ctx, tx, "INV", inv.IssueDate.Year())
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	inv.ReferenceNumber = ref

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (
			id, reference_number, customer_id, issue_date, due_date,
			status, notes, terms, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.ReferenceNumber, inv.CustomerID, inv.IssueDate, inv.DueDate,
		inv.Status, inv.Notes, inv.Terms, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "reference_number") {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	if err := insertLineItems(ctx, tx, "invoice_items", inv.ID, inv.Items); err != nil {
		return fmt.Errorf("invoiceRepo.Create items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	inv.RecomputeTotals()
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	inv.Items, err = selectLineItems(ctx, r.db, "invoice_items", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	inv.RecomputeTotals()
	return &inv, nil
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	invs := []domain.Invoice{}
	err := r.db.SelectContext(ctx, &invs,
		"SELECT * FROM invoices ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll: %w", err)
	}

	itemsByDoc, err := selectAllLineItems(ctx, r.db, "invoice_items")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll items: %w", err)
	}
	for i := range invs {
		invs[i].Items = itemsByDoc[invs[i].ID]
		invs[i].RecomputeTotals()
	}
	return invs, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inv.UpdatedAt = time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET
			customer_id = $2, issue_date = $3, due_date = $4,
			status = $5, notes = $6, terms = $7, updated_at = $8
		WHERE id = $1`,
		inv.ID, inv.CustomerID, inv.IssueDate, inv.DueDate,
		inv.Status, inv.Notes, inv.Terms, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}

	if err := replaceLineItems(ctx, tx, "invoice_items", inv.ID, inv.Items); err != nil {
		return fmt.Errorf("invoiceRepo.Update items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Update commit: %w", err)
	}
	inv.RecomputeTotals()
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
