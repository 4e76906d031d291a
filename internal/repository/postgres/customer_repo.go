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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	now := time.Now().UTC()
	customer.ID = uuid.New()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := `INSERT INTO customers (
		id, name, mobile, email, address, gst_number, city, state, pincode,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Mobile, customer.Email,
		customer.Address, customer.GSTNumber, customer.City, customer.State,
		customer.Pincode, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "mobile") {
			return domain.ErrDuplicateMobile
		}
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) ListAll(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("customerRepo.ListAll: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now().UTC()

	query := `UPDATE customers SET
		name = $2, mobile = $3, email = $4, address = $5, gst_number = $6,
		city = $7, state = $8, pincode = $9, updated_at = $10
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Mobile, customer.Email,
		customer.Address, customer.GSTNumber, customer.City, customer.State,
		customer.Pincode, customer.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "mobile") {
			return domain.ErrDuplicateMobile
		}
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return domain.ErrCustomerInUse
		}
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
