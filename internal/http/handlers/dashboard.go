package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/dashhub/internal/config"
	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/http/middlewares"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type DashboardStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error)
}

type DashboardHandler struct {
	store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GetData returns the caller's blob verbatim. 404 covers the case of a user
// deleted after their token was issued.
func (h *DashboardHandler) GetData(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.store.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Error fetching data", err)
		return
	}

	ctx.JSON(http.StatusOK, u.DashboardData)
}

// UpdateData replaces the whole blob. Fields missing from the body come
// through as zero, there is no merge with the stored value.
func (h *DashboardHandler) UpdateData(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context", nil)
		return
	}

	var data user.DashboardData

	if !BindJSON(ctx, &data) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.store.UpdateDashboardData(cctx, userID, data)

	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Error updating data", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Data updated",
		"data":    u.DashboardData,
	})
}
