package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
)

// UsersRepo is a map-backed store used by tests and bare dev runs. The real
// deployments run the mongo or postgres repos.
type UsersRepo struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		users: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repo.ErrUserNotFound
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}
	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, role string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == email {
			return user.User{}, repo.ErrEmailTaken
		}
	}

	u := user.New(email, passwordHash, role)
	r.users[u.ID] = u

	return u, nil
}

func (r *UsersRepo) UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	u.DashboardData = data
	r.users[id] = u

	return u, nil
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	u.Role = role
	r.users[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))

	for _, u := range r.users {
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return users, nil
}

func (r *UsersRepo) ListSummaries(ctx context.Context) ([]user.Summary, error) {
	users, err := r.ListAll(ctx)

	if err != nil {
		return nil, err
	}

	summaries := make([]user.Summary, 0, len(users))

	for _, u := range users {
		summaries = append(summaries, u.Summarize())
	}
	return summaries, nil
}
