package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"agrodesk/internal/domain"
	"agrodesk/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		PurchaseOrdersBy: make(map[domain.PurchaseOrderStatus]int),
		InvoicesBy:       make(map[domain.InvoiceStatus]int),
	}

	if err := r.db.GetContext(ctx, &stats.Customers,
		"SELECT COUNT(*) FROM customers"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats customers: %w", err)
	}

	type statusCount struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	poCounts := []statusCount{}
	err := r.db.SelectContext(ctx, &poCounts,
		"SELECT status, COUNT(*) AS count FROM purchase_orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats purchase orders: %w", err)
	}
	for _, sc := range poCounts {
		stats.PurchaseOrdersBy[domain.PurchaseOrderStatus(sc.Status)] = sc.Count
		stats.PurchaseOrders += sc.Count
	}

	invCounts := []statusCount{}
	err = r.db.SelectContext(ctx, &invCounts,
		"SELECT status, COUNT(*) AS count FROM invoices GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats invoices: %w", err)
	}
	for _, sc := range invCounts {
		stats.InvoicesBy[domain.InvoiceStatus(sc.Status)] = sc.Count
		stats.Invoices += sc.Count
	}

	var outstanding decimal.Decimal
	err = r.db.GetContext(ctx, &outstanding,
		`SELECT COALESCE(SUM(li.quantity * li.unit_price * (1 + li.tax_rate_percent / 100)), 0)
		 FROM invoice_items li
		 JOIN invoices i ON i.id = li.document_id
		 WHERE i.status NOT IN ('paid', 'cancelled')`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats outstanding: %w", err)
	}
	stats.OutstandingAmount = outstanding

	return stats, nil
}
