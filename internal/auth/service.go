package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service orchestrates registration, login, token refresh and logout. All
// session state lives in the injected Repository; the Service itself holds
// nothing mutable, so concurrent requests need no locking here.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

func (s *Service) Register(ctx context.Context, username, password, fullname string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := User{
		ID:       "user-" + uuid.NewString(),
		Username: username,
		Password: string(hash),
		Fullname: fullname,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same error as a wrong password; must not reveal which.
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}

	// One row per login: a user may hold several valid refresh tokens at
	// once (multi-device).
	if err := s.repo.AddRefreshToken(ctx, user.ID, refresh); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh issues a new access token for a registered refresh token. The
// active-set membership check runs before signature verification: a token
// this server never issued fails identically whether or not it would
// verify. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	ok, err := s.repo.HasRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRefreshTokenNotRegistered
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	return s.tokens.GenerateAccessToken(userID)
}

// Logout revokes a refresh token. Revoking a token that is not in the
// active set fails with ErrRefreshTokenNotRegistered, so a second logout
// with the same token is an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.FindUserByID(ctx, id)
}
