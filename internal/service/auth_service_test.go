package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/domain"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

type memoryUserRepo struct {
	byUsername map[string]*domain.User
	nextID     int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byUsername: make(map[string]*domain.User), nextID: 1}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byUsername[user.Username] = user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range r.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if user, ok := r.byUsername[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byUsername))
	for _, user := range r.byUsername {
		users = append(users, user)
	}
	return users, nil
}

func newTestAuthService(repo *memoryUserRepo) *AuthService {
	codec := auth.NewCodec([]byte("service-test-secret"))
	issuer := auth.NewIssuer(codec, time.Hour)
	return NewAuthService(repo, issuer, bcrypt.MinCost)
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	user, issued, err := svc.Register(ctx, "alice", "Alice Kim", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, int64(3600), issued.ExpiresIn)
	assert.Greater(t, issued.ExpiresAt, time.Now().Unix())

	loggedIn, issued, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, issued.Token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "Alice Kim", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "Other Alice", "hunter2")
	assertDomainCode(t, err, "CONFLICT")
}

func TestLoginFailures(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "Alice Kim", "hunter2")
	require.NoError(t, err)

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "mallory", "hunter2")
		assertDomainCode(t, err, "UNAUTHORIZED")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "wrong")
		assertDomainCode(t, err, "UNAUTHORIZED")
	})

	t.Run("suspended account", func(t *testing.T) {
		repo.byUsername["alice"].Status = domain.UserStatusSuspended
		_, _, err := svc.Login(ctx, "alice", "hunter2")
		assertDomainCode(t, err, "FORBIDDEN")
	})
}
