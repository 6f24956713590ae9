package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	*httptest.Server
	codes   map[string]string
	profile map[string]any
	status  int

	mu      sync.Mutex
	gotCode string
}

func (fs *fakeServer) lastCode() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.gotCode
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{
		codes:  map[string]string{"good/code": "provider-token"},
		status: http.StatusOK,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		code := r.PostForm.Get("code")
		fs.mu.Lock()
		fs.gotCode = code
		fs.mu.Unlock()
		token, ok := fs.codes[code]
		if !ok || r.PostForm.Get("client_secret") != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": token, "token_type": "Bearer"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if fs.status != http.StatusOK {
			w.WriteHeader(fs.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fs.profile)
	})
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) factory() *Factory {
	pc := ProviderConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		AuthURL:      fs.URL + "/auth",
		TokenURL:     fs.URL + "/token",
		UserInfoURL:  fs.URL + "/me",
	}
	return NewFactory(Config{
		RedirectURI: "http://localhost/callback",
		HTTPClient:  fs.Client(),
		Google:      pc,
		Facebook:    pc,
	})
}

func TestFactoryUnsupportedProvider(t *testing.T) {
	_, err := NewFactory(Config{}).New("twitter")
	require.ErrorIs(t, err, ErrUnsupportedProvider)

	var oauthErr *Error
	require.True(t, errors.As(err, &oauthErr))
	require.Equal(t, "unsupported provider: twitter", oauthErr.Message)
}

func TestRedirectURL(t *testing.T) {
	f := NewFactory(Config{
		RedirectURI: "http://localhost/callback",
		Google:      ProviderConfig{ClientID: "gid"},
		Facebook:    ProviderConfig{ClientID: "fid"},
	})

	tests := []struct {
		tag    string
		host   string
		client string
		scope  string
	}{
		{tag: Google, host: "accounts.google.com", client: "gid", scope: "openid profile email"},
		{tag: Facebook, host: "www.facebook.com", client: "fid", scope: "email public_profile"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			p, err := f.New(tt.tag)
			require.NoError(t, err)

			u, err := url.Parse(p.RedirectURL())
			require.NoError(t, err)
			require.Equal(t, tt.host, u.Host)

			q := u.Query()
			require.Equal(t, "code", q.Get("response_type"))
			require.Equal(t, tt.client, q.Get("client_id"))
			require.Equal(t, "http://localhost/callback", q.Get("redirect_uri"))
			require.Equal(t, tt.scope, q.Get("scope"))
		})
	}
}

func TestGoogleLoginFlow(t *testing.T) {
	fs := newFakeServer(t)
	fs.profile = map[string]any{"email": "ada@x.com", "given_name": "Ada", "family_name": "Lovelace"}

	p, err := fs.factory().New(Google)
	require.NoError(t, err)

	token, err := p.AccessToken(context.Background(), "good%2Fcode")
	require.NoError(t, err)
	require.Equal(t, "provider-token", token)
	require.Equal(t, "good/code", fs.lastCode())

	profile, err := p.UserInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ada@x.com", profile.Email)
	require.Equal(t, "Ada", profile.FirstName)
	require.Equal(t, "Lovelace", profile.LastName)
}

func TestFacebookLoginFlow(t *testing.T) {
	fs := newFakeServer(t)
	fs.profile = map[string]any{"id": "42", "email": "bob@x.com", "first_name": "Bob", "last_name": "Smith"}

	p, err := fs.factory().New(Facebook)
	require.NoError(t, err)

	_, err = p.AccessToken(context.Background(), "good/code")
	require.NoError(t, err)

	profile, err := p.UserInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bob@x.com", profile.Email)
	require.Equal(t, "Bob", profile.FirstName)
	require.Equal(t, "Smith", profile.LastName)
}

func TestAccessTokenErrors(t *testing.T) {
	fs := newFakeServer(t)

	tests := []struct {
		name string
		code string
	}{
		{name: "empty", code: "  "},
		{name: "malformed", code: "bad%zz"},
		{name: "rejected", code: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := fs.factory().New(Google)
			require.NoError(t, err)

			_, err = p.AccessToken(context.Background(), tt.code)
			require.ErrorIs(t, err, ErrInvalidCode)

			var oauthErr *Error
			require.True(t, errors.As(err, &oauthErr))
		})
	}
}

func TestUserInfoRequiresToken(t *testing.T) {
	fs := newFakeServer(t)

	for _, tag := range []string{Google, Facebook} {
		p, err := fs.factory().New(tag)
		require.NoError(t, err)

		_, err = p.UserInfo(context.Background())
		require.ErrorIs(t, err, ErrMissingToken)
	}
}

func TestUserInfoMissingEmail(t *testing.T) {
	fs := newFakeServer(t)
	fs.profile = map[string]any{"given_name": "Ada", "first_name": "Ada"}

	google, err := fs.factory().New(Google)
	require.NoError(t, err)
	_, err = google.AccessToken(context.Background(), "good/code")
	require.NoError(t, err)
	_, err = google.UserInfo(context.Background())
	require.ErrorIs(t, err, ErrProfile)

	facebook, err := fs.factory().New(Facebook)
	require.NoError(t, err)
	_, err = facebook.AccessToken(context.Background(), "good/code")
	require.NoError(t, err)
	_, err = facebook.UserInfo(context.Background())
	require.ErrorIs(t, err, ErrEmailNotGranted)
}

func TestUserInfoUpstreamFailure(t *testing.T) {
	fs := newFakeServer(t)
	fs.status = http.StatusBadGateway

	p, err := fs.factory().New(Google)
	require.NoError(t, err)
	_, err = p.AccessToken(context.Background(), "good/code")
	require.NoError(t, err)

	_, err = p.UserInfo(context.Background())
	require.ErrorIs(t, err, ErrProfile)
}
