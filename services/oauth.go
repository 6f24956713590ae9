package services

import (
	"context"
	"errors"
	"fmt"

	"roster/auth"
	"roster/models"
	"roster/oauth"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrRefreshRevoked is returned when a refresh token is valid but has been
// superseded by a later login or refresh.
var ErrRefreshRevoked = errors.New("refresh token has been revoked")

type ProviderFactory interface {
	New(tag string) (oauth.Provider, error)
}

type UserStore interface {
	GetOrCreate(ctx context.Context, profile models.OAuthProfile) (models.User, bool, error)
	Get(ctx context.Context, id uint) (models.User, error)
	SetRefreshTokenHash(ctx context.Context, id uint, hash string) error
	SwapRefreshTokenHash(ctx context.Context, id uint, oldHash, newHash string) (bool, error)
}

type OAuthService struct {
	providers ProviderFactory
	users     UserStore
	tokens    *auth.TokenIssuer
	log       *zap.SugaredLogger
}

func NewOAuthService(providers ProviderFactory, users UserStore, tokens *auth.TokenIssuer, log *zap.SugaredLogger) *OAuthService {
	return &OAuthService{
		providers: providers,
		users:     users,
		tokens:    tokens,
		log:       log.Named("service.oauth"),
	}
}

func (s *OAuthService) RedirectURL(providerTag string) (string, error) {
	provider, err := s.providers.New(providerTag)
	if err != nil {
		return "", err
	}
	return provider.RedirectURL(), nil
}

// Login exchanges code with the provider, upserts the local user by email
// and issues a fresh session pair.
func (s *OAuthService) Login(ctx context.Context, code, providerTag string) (models.OAuthSession, error) {
	session, err := s.login(ctx, code, providerTag)
	result := "success"
	if err != nil {
		result = "failure"
	}
	oauthLoginCounter.WithLabelValues(providerLabel(providerTag), result).Inc()
	return session, err
}

// providerLabel bounds the provider label to the known tags; the tag comes
// straight from the request path.
func providerLabel(tag string) string {
	switch tag {
	case oauth.Google, oauth.Facebook:
		return tag
	default:
		return "unsupported"
	}
}

func (s *OAuthService) login(ctx context.Context, code, providerTag string) (models.OAuthSession, error) {
	provider, err := s.providers.New(providerTag)
	if err != nil {
		return models.OAuthSession{}, err
	}
	if _, err := provider.AccessToken(ctx, code); err != nil {
		s.log.Warnw("token exchange failed", "provider", providerTag, "error", err)
		return models.OAuthSession{}, err
	}
	profile, err := provider.UserInfo(ctx)
	if err != nil {
		s.log.Warnw("profile fetch failed", "provider", providerTag, "error", err)
		return models.OAuthSession{}, err
	}

	user, _, err := s.users.GetOrCreate(ctx, profile)
	if err != nil {
		return models.OAuthSession{}, err
	}
	s.log.Infow("oauth login", "provider", providerTag, "user_id", user.ID)

	pair, hash, err := s.newPair(user)
	if err != nil {
		return models.OAuthSession{}, err
	}
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, hash); err != nil {
		return models.OAuthSession{}, err
	}
	return pair.Session(), nil
}

// Refresh rotates the session pair. Only the latest refresh token issued to
// a user is accepted, and it is accepted once: concurrent refreshes with the
// same token race on the stored hash and all but one are revoked.
func (s *OAuthService) Refresh(ctx context.Context, refreshToken string) (models.OAuthSession, error) {
	claims, err := s.tokens.Validate(refreshToken, auth.RefreshToken)
	if err != nil {
		return models.OAuthSession{}, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.OAuthSession{}, ErrRefreshRevoked
		}
		return models.OAuthSession{}, err
	}
	if user.RefreshTokenHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.RefreshTokenHash), []byte(claims.ID)) != nil {
		s.log.Warnw("rejected superseded refresh token", "user_id", user.ID)
		return models.OAuthSession{}, ErrRefreshRevoked
	}

	pair, hash, err := s.newPair(user)
	if err != nil {
		return models.OAuthSession{}, err
	}
	swapped, err := s.users.SwapRefreshTokenHash(ctx, user.ID, user.RefreshTokenHash, hash)
	if err != nil {
		return models.OAuthSession{}, err
	}
	if !swapped {
		s.log.Warnw("refresh token already rotated", "user_id", user.ID)
		return models.OAuthSession{}, ErrRefreshRevoked
	}
	return pair.Session(), nil
}

func (s *OAuthService) CurrentUser(ctx context.Context, userID uint) (models.UserInfo, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return models.UserInfo{}, err
	}
	return user.Info(), nil
}

// newPair issues a session pair and the bcrypt hash of its refresh token id.
func (s *OAuthService) newPair(user models.User) (auth.Pair, string, error) {
	pair, err := s.tokens.Issue(user)
	if err != nil {
		return auth.Pair{}, "", fmt.Errorf("issue session: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pair.RefreshID), bcrypt.DefaultCost)
	if err != nil {
		return auth.Pair{}, "", fmt.Errorf("hash refresh token: %w", err)
	}
	return pair, string(hash), nil
}
