package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/domain"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

var middlewareSecret = []byte("middleware-test-secret")

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type whoami struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	Role          string `json:"role"`
}

func newTestApp(repo *stubUserRepo) *fiber.App {
	codec := auth.NewCodec(middlewareSecret)
	validator := auth.NewValidator(codec, zap.NewNop())
	middleware := auth.NewMiddleware(validator, repo, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	app.Use(middleware.Handle)

	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return c.JSON(whoami{Authenticated: false})
		}
		return c.JSON(whoami{
			Authenticated: true,
			Username:      principal.User.Username,
			Role:          string(principal.Role),
		})
	})
	app.Get("/protected", auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func activeUser(id int64, username string, role domain.Role) *domain.User {
	return &domain.User{
		ID:       id,
		Username: username,
		Role:     role,
		Status:   domain.UserStatusActive,
	}
}

func issueToken(t *testing.T, username string, id int64, role domain.Role, ttl time.Duration) string {
	t.Helper()
	issuer := auth.NewIssuer(auth.NewCodec(middlewareSecret), ttl)
	issued, err := issuer.Issue(id, username, role)
	require.NoError(t, err)
	return issued.Token
}

func getWhoami(t *testing.T, app *fiber.App, authorization string) whoami {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body whoami
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestMiddlewareValidToken(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": activeUser(7, "alice", domain.RoleUser),
	}}
	app := newTestApp(repo)

	token := issueToken(t, "alice", 7, domain.RoleUser, time.Hour)
	body := getWhoami(t, app, "Bearer "+token)

	assert.True(t, body.Authenticated)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "USER", body.Role)
}

func TestMiddlewareRefetchesRoleFromStore(t *testing.T) {
	// The token still carries USER, but the store has since promoted the
	// account. The request context must reflect the store's current role.
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": activeUser(7, "alice", domain.RoleAdmin),
	}}
	app := newTestApp(repo)

	token := issueToken(t, "alice", 7, domain.RoleUser, time.Hour)
	body := getWhoami(t, app, "Bearer "+token)

	assert.True(t, body.Authenticated)
	assert.Equal(t, "ADMIN", body.Role)
}

func TestMiddlewareAnonymousCases(t *testing.T) {
	valid := issueToken(t, "alice", 7, domain.RoleUser, time.Hour)

	expiredClaims := jwt.MapClaims{
		"sub":  "alice",
		"uid":  7,
		"role": "USER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(middlewareSecret)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		repo          *stubUserRepo
	}{
		{
			name: "no header",
			repo: &stubUserRepo{users: map[string]*domain.User{"alice": activeUser(7, "alice", domain.RoleUser)}},
		},
		{
			name:          "wrong scheme",
			authorization: "Basic xyz",
			repo:          &stubUserRepo{users: map[string]*domain.User{"alice": activeUser(7, "alice", domain.RoleUser)}},
		},
		{
			name:          "lowercase bearer prefix",
			authorization: "bearer " + valid,
			repo:          &stubUserRepo{users: map[string]*domain.User{"alice": activeUser(7, "alice", domain.RoleUser)}},
		},
		{
			name:          "garbage token",
			authorization: "Bearer not-a-token",
			repo:          &stubUserRepo{users: map[string]*domain.User{"alice": activeUser(7, "alice", domain.RoleUser)}},
		},
		{
			name:          "expired token",
			authorization: "Bearer " + expired,
			repo:          &stubUserRepo{users: map[string]*domain.User{"alice": activeUser(7, "alice", domain.RoleUser)}},
		},
		{
			name:          "identity no longer exists",
			authorization: "Bearer " + valid,
			repo:          &stubUserRepo{users: map[string]*domain.User{}},
		},
		{
			name:          "identity store unavailable",
			authorization: "Bearer " + valid,
			repo:          &stubUserRepo{err: errors.New("connection refused")},
		},
		{
			name:          "suspended account",
			authorization: "Bearer " + valid,
			repo: &stubUserRepo{users: map[string]*domain.User{"alice": {
				ID: 7, Username: "alice", Role: domain.RoleUser, Status: domain.UserStatusSuspended,
			}}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := getWhoami(t, newTestApp(tc.repo), tc.authorization)
			assert.False(t, body.Authenticated)
		})
	}
}

func TestGuards(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": activeUser(7, "alice", domain.RoleUser),
		"bob":   activeUser(8, "bob", domain.RoleAdmin),
	}}
	app := newTestApp(repo)

	userToken := issueToken(t, "alice", 7, domain.RoleUser, time.Hour)
	adminToken := issueToken(t, "bob", 8, domain.RoleAdmin, time.Hour)

	statusOf := func(path, authorization string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set(fiber.HeaderAuthorization, authorization)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	// Anonymous, invalid and expired all look identical to the caller.
	assert.Equal(t, http.StatusUnauthorized, statusOf("/protected", ""))
	assert.Equal(t, http.StatusUnauthorized, statusOf("/protected", "Bearer garbage"))
	assert.Equal(t, http.StatusOK, statusOf("/protected", "Bearer "+userToken))

	assert.Equal(t, http.StatusUnauthorized, statusOf("/admin", ""))
	assert.Equal(t, http.StatusForbidden, statusOf("/admin", "Bearer "+userToken))
	assert.Equal(t, http.StatusOK, statusOf("/admin", "Bearer "+adminToken))
}
