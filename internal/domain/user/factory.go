package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// New builds a user with every default applied explicitly: fresh id, empty
// dashboard blob, creation time in UTC. Role falls back to RoleUser when the
// caller passes anything outside the enumeration.
func New(email, passwordHash, role string) User {
	if role != RoleAdmin {
		role = RoleUser
	}

	return User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}
