package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("access token expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type TokenClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access and refresh tokens. The two kinds
// are signed under separate keys, so neither can stand in for the other.
// Verification is a pure signature/claims check with no storage lookup; the
// active-set membership check for refresh tokens belongs to Service.
type TokenManager struct {
	accessKey      []byte
	refreshKey     []byte
	accessTokenAge time.Duration
}

func NewTokenManager(accessKey, refreshKey []byte, accessTokenAge time.Duration) *TokenManager {
	return &TokenManager{
		accessKey:      accessKey,
		refreshKey:     refreshKey,
		accessTokenAge: accessTokenAge,
	}
}

func (tm *TokenManager) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTokenAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.accessKey)
}

// GenerateRefreshToken issues a refresh token with no embedded expiry. It
// stays usable until it is removed from the active set or the key rotates.
func (tm *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:    userID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.refreshKey)
}

// VerifyAccessToken returns the user id carried by a valid access token.
// A token past its expiry but otherwise well-signed fails with
// ErrExpiredToken; everything else fails with ErrInvalidToken.
func (tm *TokenManager) VerifyAccessToken(tokenStr string) (string, error) {
	return tm.verify(tokenStr, tm.accessKey, tokenTypeAccess)
}

func (tm *TokenManager) VerifyRefreshToken(tokenStr string) (string, error) {
	return tm.verify(tokenStr, tm.refreshKey, tokenTypeRefresh)
}

func (tm *TokenManager) verify(tokenStr string, key []byte, wantType string) (string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return key, nil
	})
	if err != nil {
		// jwt/v5 verifies the signature before validating claims, so an
		// expiry error here means the signature itself was good.
		if wantType == tokenTypeAccess && errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.TokenType != wantType || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
