// Package auth issues and validates the local session tokens handed out
// after an OAuth login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"roster/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is an issued access/refresh pair. RefreshID is the jti of the
// refresh token; callers store a hash of it to detect reuse.
type Pair struct {
	Access    string
	Refresh   string
	RefreshID string
}

func (p Pair) Session() models.OAuthSession {
	return models.OAuthSession{AccessToken: p.Access, RefreshToken: p.Refresh}
}

type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *TokenIssuer) Issue(user models.User) (Pair, error) {
	access, _, err := i.generate(user, AccessToken, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, refreshID, err := i.generate(user, RefreshToken, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh, RefreshID: refreshID}, nil
}

func (i *TokenIssuer) generate(user models.User, tokenType string, ttl time.Duration) (string, string, error) {
	now := i.now()
	id := uuid.NewString()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, id, nil
}

// Validate parses tokenString and checks it is a live token of the wanted type.
func (i *TokenIssuer) Validate(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, tokenType, claims.TokenType)
	}
	return claims, nil
}
