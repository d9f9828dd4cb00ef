package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager([]byte("access-secret"), []byte("refresh-secret"), 30*time.Minute)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken returned empty token")
	}

	userID, err := tm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("VerifyAccessToken userID = %s, want user-123", userID)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	userID, err := tm.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("VerifyRefreshToken userID = %s, want user-123", userID)
	}
}

// The two token kinds are signed under different keys: neither verifies as
// the other.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	tm := newTestTokenManager()

	access, _ := tm.GenerateAccessToken("user-123")
	refresh, _ := tm.GenerateRefreshToken("user-123")

	if _, err := tm.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyAccessToken(refresh) error = %v, want ErrInvalidToken", err)
	}
	if _, err := tm.VerifyRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyRefreshToken(access) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	tm := newTestTokenManager()

	// Hand-built token, well-signed under the access key but already past
	// its expiry.
	now := time.Now()
	claims := &TokenClaims{
		UserID:    "user-123",
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := tm.VerifyAccessToken(expired); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("VerifyAccessToken(expired) error = %v, want ErrExpiredToken", err)
	}
}

func TestVerify_Table(t *testing.T) {
	tm := newTestTokenManager()
	forged := NewTokenManager([]byte("wrong-key"), []byte("wrong-key-2"), 30*time.Minute)

	valid, _ := tm.GenerateAccessToken("user-1")
	forgedAccess, _ := forged.GenerateAccessToken("user-1")
	forgedRefresh, _ := forged.GenerateRefreshToken("user-1")

	tests := []struct {
		name    string
		verify  func(string) (string, error)
		token   string
		wantErr error
	}{
		{
			name:    "Valid Access Token",
			verify:  tm.VerifyAccessToken,
			token:   valid,
			wantErr: nil,
		},
		{
			name:    "Malformed Token",
			verify:  tm.VerifyAccessToken,
			token:   "not.a.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Empty Token",
			verify:  tm.VerifyRefreshToken,
			token:   "",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Access Token Signed With Wrong Key",
			verify:  tm.VerifyAccessToken,
			token:   forgedAccess,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Refresh Token Signed With Wrong Key",
			verify:  tm.VerifyRefreshToken,
			token:   forgedRefresh,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tt.verify(tt.token)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("verify error = %v, want nil", err)
				}
				if userID != "user-1" {
					t.Errorf("userID = %s, want user-1", userID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("verify error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
