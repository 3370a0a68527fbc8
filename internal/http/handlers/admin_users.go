package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/dashhub/internal/config"
	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type AdminUsersStore interface {
	ListAll(ctx context.Context) ([]user.User, error)
	ListSummaries(ctx context.Context) ([]user.Summary, error)
	UpdateRole(ctx context.Context, id, role string) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type AdminUsersHandler struct {
	store AdminUsersStore
}

func NewAdminUsersHandler(store AdminUsersStore) *AdminUsersHandler {
	return &AdminUsersHandler{store: store}
}

// GET /api/admin/users

func (h *AdminUsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	summaries, err := h.store.ListSummaries(cctx)

	if err != nil {
		RespondInternal(ctx, "Error fetching users", err)
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}

// GET /api/admin/users/data

func (h *AdminUsersHandler) ListData(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	users, err := h.store.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Error fetching data", err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// PUT /api/admin/promote/:userId
//
// Promoting an unknown id is a 404, not the silent null the lenient
// behavior would give.

func (h *AdminUsersHandler) Promote(ctx *gin.Context) {
	id := ctx.Param("userId")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.store.UpdateRole(cctx, id, user.RoleAdmin)

	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Error promoting user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User promoted to admin",
		"user":    u,
	})
}

// DELETE /api/admin/users/:userId
//
// No existence check: deleting an id that is already gone still succeeds.

func (h *AdminUsersHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("userId")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.store.Delete(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Error deleting user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
