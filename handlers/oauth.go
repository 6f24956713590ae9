package handlers

import (
	"context"
	"errors"
	"net/http"

	"roster/middleware"
	"roster/models"
	"roster/oauth"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OAuthService interface {
	RedirectURL(providerTag string) (string, error)
	Login(ctx context.Context, code, providerTag string) (models.OAuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (models.OAuthSession, error)
	CurrentUser(ctx context.Context, userID uint) (models.UserInfo, error)
}

type OAuthHandler struct {
	oauth OAuthService
	log   *zap.SugaredLogger
}

func NewOAuthHandler(svc OAuthService, log *zap.SugaredLogger) *OAuthHandler {
	return &OAuthHandler{oauth: svc, log: log.Named("handler.oauth")}
}

// Redirect returns the provider's authorization URL. An unknown provider is a
// client error here, unlike during login.
func (h *OAuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	redirectURL, err := h.oauth.RedirectURL(chi.URLParam(r, "provider"))
	if err != nil {
		var oauthErr *oauth.Error
		if errors.As(err, &oauthErr) {
			writeMessage(w, http.StatusBadRequest, oauthErr.Message)
			return
		}
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect_url": redirectURL})
}

func (h *OAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.OAuthRequest
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	session, err := h.oauth.Login(r.Context(), in.Code, chi.URLParam(r, "provider"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *OAuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshRequest
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	session, err := h.oauth.Refresh(r.Context(), in.Refresh)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *OAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	info, err := h.oauth.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "user no longer exists")
			return
		}
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
