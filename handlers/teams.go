package handlers

import (
	"context"
	"fmt"
	"net/http"

	"roster/models"

	"go.uber.org/zap"
)

type TeamService interface {
	Create(ctx context.Context, in models.NewTeam) (models.TeamDTO, error)
	Get(ctx context.Context, id uint) (models.TeamDTO, error)
	Update(ctx context.Context, id uint, in models.NewTeam) (models.TeamDTO, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.TeamDTO, error)
	AddMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error)
	RemoveMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error)
}

type TeamHandler struct {
	teams TeamService
	log   *zap.SugaredLogger
}

func NewTeamHandler(teams TeamService, log *zap.SugaredLogger) *TeamHandler {
	return &TeamHandler{teams: teams, log: log.Named("handler.team")}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewTeam
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	team, err := h.teams.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}

	team, err := h.teams.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}
	var in models.NewTeam
	if err := decodeAndValidate(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	team, err := h.teams.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}

	if err := h.teams.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, h.teams.AddMember)
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, h.teams.RemoveMember)
}

func (h *TeamHandler) changeMembers(w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, teamID, personID uint) (models.TeamDTO, error)) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}
	var member models.MemberID
	if err := decodeAndValidate(r, &member); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if *member.ID < 1 {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("person with id %d not found", *member.ID))
		return
	}

	team, err := change(r.Context(), id, uint(*member.ID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
