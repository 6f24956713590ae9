// Package handlers wires the HTTP API onto a chi router.
package handlers

import (
	"net/http"

	"roster/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Persons PersonService
	Teams   TeamService
	OAuth   OAuthService
	Tokens  middleware.TokenValidator
	Log     *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	persons := NewPersonHandler(d.Persons, d.Log)
	teams := NewTeamHandler(d.Teams, d.Log)
	oauthHandler := NewOAuthHandler(d.OAuth, d.Log)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestLogger(d.Log))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(chimiddleware.StripSlashes)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/persons", func(r chi.Router) {
		r.Post("/", persons.Create)
		r.Get("/", persons.List)
		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", persons.Get)
			r.Put("/", persons.Update)
			r.Delete("/", persons.Delete)
			r.Patch("/leave-team", persons.LeaveTeam)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teams.Create)
		r.Get("/", teams.List)
		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", teams.Get)
			r.Put("/", teams.Update)
			r.Delete("/", teams.Delete)
			r.Patch("/add-member", teams.AddMember)
			r.Patch("/remove-member", teams.RemoveMember)
		})
	})

	router.Route("/oauth", func(r chi.Router) {
		r.Post("/token/refresh", oauthHandler.Refresh)
		r.With(middleware.Authenticate(d.Tokens, d.Log)).Get("/me", oauthHandler.Me)
		r.Get("/{provider}", oauthHandler.Redirect)
		r.Post("/{provider}", oauthHandler.Login)
	})

	return router
}
