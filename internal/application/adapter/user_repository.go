package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// UserRepository stores the accounts that own budgets. Missing users are
// reported as domainerror.ErrUserNotFound.
type UserRepository interface {
	// Insert stores a new account. An email already in use yields
	// domainerror.ErrUnableToRegister.
	Insert(ctx context.Context, user *entity.User) error

	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail looks up an account by its normalized email.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
