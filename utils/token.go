package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	registrationTokenTTL = time.Hour
	sessionTokenTTL      = 2 * time.Hour
)

// PendingUser is a registration that has not been verified yet. It is
// carried inside the signed registration token and persisted only when the
// verification link is visited.
type PendingUser struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

type registrationClaims struct {
	PendingUser
	jwt.RegisteredClaims
}

// SessionClaims identify a logged-in user for the token's lifetime.
type SessionClaims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the registration and session tokens.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// NewRegistrationToken embeds the full pending-user payload, valid for one
// hour. The payload includes the plaintext password; the token is only ever
// sent to the address being verified.
func (s *TokenService) NewRegistrationToken(user PendingUser) (string, error) {
	claims := registrationClaims{
		PendingUser: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(registrationTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseRegistrationToken verifies the token and returns the pending user.
// Expired or tampered tokens return ErrInvalidToken.
func (s *TokenService) ParseRegistrationToken(tokenString string) (*PendingUser, error) {
	claims := &registrationClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return &claims.PendingUser, nil
}

// NewSessionToken issues a two-hour login token.
func (s *TokenService) NewSessionToken(username, userID string) (string, error) {
	claims := SessionClaims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSessionToken verifies a login token.
func (s *TokenService) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
