package oauth

import (
	"context"
	"strings"

	"roster/models"

	"golang.org/x/oauth2/endpoints"
)

const facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,email,first_name,last_name"

type facebookProvider struct {
	client
}

func newFacebook(cfg Config) *facebookProvider {
	return &facebookProvider{
		client: newClient(cfg.Facebook, cfg.RedirectURI, endpoints.Facebook, facebookUserInfoURL,
			[]string{"email", "public_profile"}, cfg.HTTPClient),
	}
}

// UserInfo reports a profile without email as ErrEmailNotGranted: Facebook
// omits the field when the user declines the email permission.
func (p *facebookProvider) UserInfo(ctx context.Context) (models.OAuthProfile, error) {
	var payload struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := p.fetchProfile(ctx, &payload); err != nil {
		return models.OAuthProfile{}, err
	}
	if strings.TrimSpace(payload.Email) == "" {
		return models.OAuthProfile{}, &Error{Message: ErrEmailNotGranted.Error(), Err: ErrEmailNotGranted}
	}

	return models.OAuthProfile{
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}, nil
}
