package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/http/handlers"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/geocoder89/dashhub/internal/security"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementing the narrow handler interfaces

type fakeUserStore struct {
	getByEmailFn    func(ctx context.Context, email string) (user.User, error)
	createFn        func(ctx context.Context, email, passwordHash, role string) (user.User, error)
	getByIDFn       func(ctx context.Context, id string) (user.User, error)
	updateDataFn    func(ctx context.Context, id string, data user.DashboardData) (user.User, error)
	updateRoleFn    func(ctx context.Context, id, role string) (user.User, error)
	deleteFn        func(ctx context.Context, id string) error
	listAllFn       func(ctx context.Context) ([]user.User, error)
	listSummariesFn func(ctx context.Context) ([]user.Summary, error)
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return user.User{}, repo.ErrUserNotFound
}

func (f *fakeUserStore) Create(ctx context.Context, email, passwordHash, role string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, email, passwordHash, role)
	}
	return user.New(email, passwordHash, role), nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return user.User{}, repo.ErrUserNotFound
}

func (f *fakeUserStore) UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error) {
	if f.updateDataFn != nil {
		return f.updateDataFn(ctx, id, data)
	}
	return user.User{}, repo.ErrUserNotFound
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	if f.updateRoleFn != nil {
		return f.updateRoleFn(ctx, id, role)
	}
	return user.User{}, repo.ErrUserNotFound
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeUserStore) ListAll(ctx context.Context) ([]user.User, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return []user.User{}, nil
}

func (f *fakeUserStore) ListSummaries(ctx context.Context) ([]user.Summary, error) {
	if f.listSummariesFn != nil {
		return f.listSummariesFn(ctx)
	}
	return []user.Summary{}, nil
}

type fakeTokenIssuer struct {
	generateFn func(userID, role string) (string, error)
}

func (f *fakeTokenIssuer) GenerateToken(userID, role string) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(userID, role)
	}
	return "test-token", nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

// SignUp tests

func TestSignUpHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, email, passwordHash, role string) (user.User, error) {
					if role != user.RoleUser {
						return user.User{}, errors.New("signup must force the user role")
					}
					if passwordHash == "pw123456" {
						return user.User{}, errors.New("plaintext password reached the store")
					}
					return user.New(email, passwordHash, role), nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "duplicate_email",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, email, passwordHash, role string) (user.User, error) {
					return user.User{}, repo.ErrEmailTaken
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing_password",
			body:           `{"email":"a@b.com"}`,
			storeSetUp:     func(f *fakeUserStore) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, email, passwordHash, role string) (user.User, error) {
					return user.User{}, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, store, &fakeTokenIssuer{})

			r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

			w := doJSON(t, r, http.MethodPost, "/api/auth/signup", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestSignUpResponseShape(t *testing.T) {
	store := &fakeUserStore{}

	h := handlers.NewAuthHandler(store, store, &fakeTokenIssuer{})

	r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"email":"a@b.com","password":"pw123456"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("response missing token or user id: %s", w.Body.String())
	}

	if resp.User.Role != user.RoleUser {
		t.Fatalf("got role %q, want %q", resp.User.Role, user.RoleUser)
	}

	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", w.Body.String())
	}
}

// Login tests

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("pw123456")

	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	known := user.User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: hash,
		Role:         user.RoleUser,
	}

	withKnownUser := func(f *fakeUserStore) {
		f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
			if email == known.Email {
				return known, nil
			}
			return user.User{}, repo.ErrUserNotFound
		}
	}

	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"email":"a@b.com","password":"pw123456"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "wrong_password",
			body:           `{"email":"a@b.com","password":"nope"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown_email",
			body:           `{"email":"nobody@b.com","password":"pw123456"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, store, &fakeTokenIssuer{})

			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

// Both failure factors must produce byte-identical bodies so the response
// never reveals whether the email exists.

func TestLoginFailureBodiesMatch(t *testing.T) {
	hash, err := security.HashPassword("pw123456")

	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	store := &fakeUserStore{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			if email == "a@b.com" {
				return user.User{ID: "user-1", Email: email, PasswordHash: hash, Role: user.RoleUser}, nil
			}
			return user.User{}, repo.ErrUserNotFound
		},
	}

	h := handlers.NewAuthHandler(store, store, &fakeTokenIssuer{})

	r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"nope"}`)
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"nobody@b.com","password":"pw123456"}`)

	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Fatalf("got statuses %d and %d, want 400 for both", wrongPassword.Code, unknownEmail.Code)
	}

	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("failure bodies differ:\n%s\n%s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}
