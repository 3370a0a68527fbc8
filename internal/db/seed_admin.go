package db

import (
	"context"
	"errors"

	"github.com/geocoder89/dashhub/internal/config"
	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/geocoder89/dashhub/internal/security"
)

// EnsureAdminUser seeds the configured admin account if it is not there yet.
// Without one, no admin route is ever reachable (signup always creates plain
// users).
func EnsureAdminUser(ctx context.Context, store repo.UserStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := store.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = store.Create(ctx, cfg.AdminEmail, hash, user.RoleAdmin)

	return err
}
