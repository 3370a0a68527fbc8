package repo

import (
	"context"
	"errors"

	"github.com/geocoder89/dashhub/internal/domain/user"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

// UserStore is the single shared mutable resource in the system. Every
// operation touches one document; nothing here needs cross-document
// atomicity.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, email, passwordHash, role string) (user.User, error)
	// UpdateDashboardData replaces the whole blob, no field merge.
	UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error)
	UpdateRole(ctx context.Context, id, role string) (user.User, error)
	// Delete is idempotent: deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]user.User, error)
	// ListSummaries projects email/role/createdAt only.
	ListSummaries(ctx context.Context) ([]user.Summary, error)
}
