package oauth

import (
	"context"
	"strings"

	"roster/models"

	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type googleProvider struct {
	client
}

func newGoogle(cfg Config) *googleProvider {
	return &googleProvider{
		client: newClient(cfg.Google, cfg.RedirectURI, endpoints.Google, googleUserInfoURL,
			[]string{"openid", "profile", "email"}, cfg.HTTPClient),
	}
}

func (p *googleProvider) UserInfo(ctx context.Context) (models.OAuthProfile, error) {
	var payload struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := p.fetchProfile(ctx, &payload); err != nil {
		return models.OAuthProfile{}, err
	}
	if strings.TrimSpace(payload.Email) == "" {
		return models.OAuthProfile{}, &Error{Message: ErrProfile.Error(), Err: ErrProfile}
	}

	return models.OAuthProfile{
		Email:     payload.Email,
		FirstName: payload.GivenName,
		LastName:  payload.FamilyName,
	}, nil
}
