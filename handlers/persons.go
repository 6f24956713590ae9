package handlers

import (
	"context"
	"net/http"
	"strings"

	"roster/models"

	"go.uber.org/zap"
)

type PersonService interface {
	Create(ctx context.Context, in models.NewPerson) (models.PersonDTO, error)
	Get(ctx context.Context, id uint) (models.PersonDTO, error)
	Update(ctx context.Context, id uint, in models.NewPerson) (models.PersonDTO, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, withoutTeam bool) ([]models.PersonDTO, error)
	LeaveTeam(ctx context.Context, id uint) (models.PersonDTO, error)
}

type PersonHandler struct {
	persons PersonService
	log     *zap.SugaredLogger
}

func NewPersonHandler(persons PersonService, log *zap.SugaredLogger) *PersonHandler {
	return &PersonHandler{persons: persons, log: log.Named("handler.person")}
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewPerson
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	person, err := h.persons.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

// List honours ?is_without_team=true (any letter case); every other value
// lists all persons.
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	withoutTeam := strings.EqualFold(r.URL.Query().Get("is_without_team"), "true")

	persons, err := h.persons.List(r.Context(), withoutTeam)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "person")
	if !ok {
		return
	}

	person, err := h.persons.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "person")
	if !ok {
		return
	}
	var in models.NewPerson
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	person, err := h.persons.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "person")
	if !ok {
		return
	}

	if err := h.persons.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "person")
	if !ok {
		return
	}

	person, err := h.persons.LeaveTeam(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}
