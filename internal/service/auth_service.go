package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/domain"
	"github.com/marryplan/marryplan-server/internal/repository"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

// AuthService coordinates registration and login. Login is the only place a
// token is minted; everything after that rides on the stateless token.
type AuthService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, issuer *auth.Issuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, issuer: issuer, bcryptCost: bcryptCost}
}

// Register creates a new account and signs it in.
func (s *AuthService) Register(ctx context.Context, username, name, password string) (*domain.User, *auth.IssuedToken, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	issued, err := s.issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, issued, nil
}

// Login authenticates credentials and mints a token. The response carries the
// token, the absolute expiry and the seconds remaining at mint time so the
// client can schedule a re-login prompt without decoding the token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *auth.IssuedToken, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, nil, apperrors.NewForbidden("account suspended")
	}

	issued, err := s.issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, issued, nil
}
