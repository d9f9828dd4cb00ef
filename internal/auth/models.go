package auth

import (
	"errors"
	"time"
)

// User is a registered account. The password field always holds a bcrypt
// hash, never plaintext.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Fullname  string    `json:"fullname"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenPair is returned from a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUsernameTaken             = errors.New("username already taken")
	ErrInvalidCredentials        = errors.New("invalid username or password")
	ErrRefreshTokenNotRegistered = errors.New("refresh token not registered")
)
