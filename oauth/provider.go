// Package oauth implements the authorization-code flow against the
// supported identity providers.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"roster/models"

	"golang.org/x/oauth2"
)

const (
	Google   = "google"
	Facebook = "facebook"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrInvalidCode         = errors.New("invalid authorization code")
	ErrMissingToken        = errors.New("access token is missing")
	ErrEmailNotGranted     = errors.New("email permission was not granted")
	ErrProfile             = errors.New("failed to get user info")
)

// Error is returned for every failure of the OAuth flow. Message is safe to
// show to API clients.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Provider runs one authorization-code flow. AccessToken must succeed
// before UserInfo is called; instances are not reused across logins.
type Provider interface {
	RedirectURL() string
	AccessToken(ctx context.Context, code string) (string, error)
	UserInfo(ctx context.Context) (models.OAuthProfile, error)
}

// ProviderConfig holds one provider's client credentials. Empty URLs fall
// back to the provider's public endpoints.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

type Config struct {
	RedirectURI string
	HTTPClient  *http.Client
	Google      ProviderConfig
	Facebook    ProviderConfig
}

type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Factory{cfg: cfg}
}

// New returns a fresh provider for the tag.
func (f *Factory) New(tag string) (Provider, error) {
	switch tag {
	case Google:
		return newGoogle(f.cfg), nil
	case Facebook:
		return newFacebook(f.cfg), nil
	default:
		return nil, &Error{
			Message: fmt.Sprintf("unsupported provider: %s", tag),
			Err:     ErrUnsupportedProvider,
		}
	}
}

// client is the flow shared by both providers; they differ in endpoints,
// scopes and profile decoding.
type client struct {
	conf        oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	token       *oauth2.Token
}

func newClient(pc ProviderConfig, redirectURI string, endpoint oauth2.Endpoint, userInfoURL string, scopes []string, hc *http.Client) client {
	if pc.AuthURL != "" {
		endpoint.AuthURL = pc.AuthURL
	}
	if pc.TokenURL != "" {
		endpoint.TokenURL = pc.TokenURL
	}
	if pc.UserInfoURL != "" {
		userInfoURL = pc.UserInfoURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return client{
		conf: oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
		},
		userInfoURL: userInfoURL,
		httpClient:  hc,
	}
}

func (c *client) RedirectURL() string {
	return c.conf.AuthCodeURL("")
}

func (c *client) AccessToken(ctx context.Context, code string) (string, error) {
	code, err := decodeCode(code)
	if err != nil {
		return "", err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", &Error{Message: "invalid authorization code", Err: fmt.Errorf("%w: %w", ErrInvalidCode, err)}
		}
		return "", &Error{Message: "token request failed", Err: err}
	}

	c.token = token
	return token.AccessToken, nil
}

// fetchProfile GETs the profile endpoint with the bearer token and decodes
// the JSON body into dst.
func (c *client) fetchProfile(ctx context.Context, dst any) error {
	if c.token == nil {
		return &Error{Message: "access token is missing", Err: ErrMissingToken}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return &Error{Message: ErrProfile.Error(), Err: fmt.Errorf("%w: %w", ErrProfile, err)}
	}
	req.Header.Set("Accept", "application/json")
	c.token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: ErrProfile.Error(), Err: fmt.Errorf("%w: %w", ErrProfile, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: ErrProfile.Error(), Err: fmt.Errorf("%w: status %d", ErrProfile, resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &Error{Message: ErrProfile.Error(), Err: fmt.Errorf("%w: decode: %w", ErrProfile, err)}
	}
	return nil
}

// decodeCode unescapes the code as it arrives from the redirect query.
func decodeCode(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &Error{Message: "authorization code is missing", Err: ErrInvalidCode}
	}
	code, err := url.PathUnescape(raw)
	if err != nil {
		return "", &Error{Message: "authorization code is malformed", Err: fmt.Errorf("%w: %w", ErrInvalidCode, err)}
	}
	return code, nil
}
