package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-grocery/pkg/errors"
)

// Claims is the JWT payload carried by bearer tokens
type Claims struct {
	UserID   string   `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal identifies the authenticated caller of a request
type Principal struct {
	UserID   string
	Username string
	Roles    []string
}

// TokenManager issues and validates signed bearer tokens
type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenManager creates a token manager with an HMAC secret
func NewTokenManager(secret string, expiration time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Generate issues a signed token for a user
func (m *TokenManager) Generate(userID, username string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.NewInternal("failed to sign token", err)
	}
	return signed, nil
}

// Parse validates a token and returns the principal it identifies
func (m *TokenManager) Parse(tokenString string) (*Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorized("invalid or expired token")
	}

	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}
