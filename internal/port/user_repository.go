package port

import (
	"context"

	"github.com/google/uuid"

	"agrodesk/internal/domain"
)

// UserRepository is the persistence contract for back-office users.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
