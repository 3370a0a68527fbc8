package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/dashhub/internal/config"
	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/geocoder89/dashhub/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash, role string) (user.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

// Existence checks only; email format validation is out of scope.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req CredentialsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Sign up failed", err)
		return
	}

	// role is forced to user on signup; admins exist only via promotion or
	// the startup seed
	u, err := h.userWriter.Create(cctx, req.Email, hash, user.RoleUser)

	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			RespondBadRequest(ctx, "duplicate_email", "User already exists", nil)
			return
		}

		RespondInternal(ctx, "Sign up failed", err)
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Role)

	if err != nil {
		RespondInternal(ctx, "Sign up failed", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    u,
		"token":   token,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req CredentialsRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for the lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			respondInvalidCredentials(ctx)
			return
		}
		RespondInternal(ctx, "Login failed", err)
		return
	}

	if !security.VerifyPassword(foundUser.PasswordHash, req.Password) {
		respondInvalidCredentials(ctx)
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Role)

	if err != nil {
		RespondInternal(ctx, "Login failed", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    foundUser,
		"token":   token,
	})
}

// One generic message for both unknown email and wrong password, so the
// response never reveals which factor failed.
func respondInvalidCredentials(ctx *gin.Context) {
	RespondBadRequest(ctx, "invalid_credentials", "Invalid email or password", nil)
}
