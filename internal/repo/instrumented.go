package repo

import (
	"context"
	"errors"

	"github.com/geocoder89/dashhub/internal/domain/user"
)

// DBObserver is satisfied by observability.Prom.
type DBObserver interface {
	ObserveDB(op string, fn func() error) error
}

// InstrumentedStore wraps any UserStore with per-op latency and error
// metrics. Sentinel outcomes (not found, duplicate email) are normal control
// flow and are not counted as store errors.
type InstrumentedStore struct {
	next UserStore
	obs  DBObserver
}

func NewInstrumentedStore(next UserStore, obs DBObserver) *InstrumentedStore {
	return &InstrumentedStore{next: next, obs: obs}
}

func unexpected(err error) error {
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}

func (s *InstrumentedStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var (
		u   user.User
		err error
	)
	_ = s.obs.ObserveDB("users.get_by_email", func() error {
		u, err = s.next.GetByEmail(ctx, email)
		return unexpected(err)
	})
	return u, err
}

func (s *InstrumentedStore) GetByID(ctx context.Context, id string) (user.User, error) {
	var (
		u   user.User
		err error
	)
	_ = s.obs.ObserveDB("users.get_by_id", func() error {
		u, err = s.next.GetByID(ctx, id)
		return unexpected(err)
	})
	return u, err
}

func (s *InstrumentedStore) Create(ctx context.Context, email, passwordHash, role string) (user.User, error) {
	var (
		u   user.User
		err error
	)
	_ = s.obs.ObserveDB("users.create", func() error {
		u, err = s.next.Create(ctx, email, passwordHash, role)
		return unexpected(err)
	})
	return u, err
}

func (s *InstrumentedStore) UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error) {
	var (
		u   user.User
		err error
	)
	_ = s.obs.ObserveDB("users.update_dashboard_data", func() error {
		u, err = s.next.UpdateDashboardData(ctx, id, data)
		return unexpected(err)
	})
	return u, err
}

func (s *InstrumentedStore) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	var (
		u   user.User
		err error
	)
	_ = s.obs.ObserveDB("users.update_role", func() error {
		u, err = s.next.UpdateRole(ctx, id, role)
		return unexpected(err)
	})
	return u, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id string) error {
	return s.obs.ObserveDB("users.delete", func() error {
		return s.next.Delete(ctx, id)
	})
}

func (s *InstrumentedStore) ListAll(ctx context.Context) ([]user.User, error) {
	var (
		users []user.User
		err   error
	)
	_ = s.obs.ObserveDB("users.list_all", func() error {
		users, err = s.next.ListAll(ctx)
		return err
	})
	return users, err
}

func (s *InstrumentedStore) ListSummaries(ctx context.Context) ([]user.Summary, error) {
	var (
		summaries []user.Summary
		err       error
	)
	_ = s.obs.ObserveDB("users.list_summaries", func() error {
		summaries, err = s.next.ListSummaries(ctx)
		return err
	})
	return summaries, err
}
