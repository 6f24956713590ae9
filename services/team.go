package services

import (
	"context"

	"roster/models"

	"go.uber.org/zap"
)

type TeamStore interface {
	Create(ctx context.Context, in models.NewTeam) (models.TeamDTO, error)
	Get(ctx context.Context, id uint) (models.TeamDTO, error)
	Update(ctx context.Context, id uint, in models.NewTeam) (models.TeamDTO, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.TeamDTO, error)
	AddMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error)
	RemoveMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error)
}

type TeamService struct {
	store TeamStore
	log   *zap.SugaredLogger
}

func NewTeamService(store TeamStore, log *zap.SugaredLogger) *TeamService {
	return &TeamService{store: store, log: log.Named("service.team")}
}

func (s *TeamService) Create(ctx context.Context, in models.NewTeam) (models.TeamDTO, error) {
	return s.store.Create(ctx, in)
}

func (s *TeamService) Get(ctx context.Context, id uint) (models.TeamDTO, error) {
	return s.store.Get(ctx, id)
}

func (s *TeamService) Update(ctx context.Context, id uint, in models.NewTeam) (models.TeamDTO, error) {
	return s.store.Update(ctx, id, in)
}

func (s *TeamService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

func (s *TeamService) List(ctx context.Context) ([]models.TeamDTO, error) {
	return s.store.List(ctx)
}

func (s *TeamService) AddMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error) {
	s.log.Debugw("adding member", "team_id", teamID, "person_id", personID)
	return s.store.AddMember(ctx, teamID, personID)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error) {
	s.log.Debugw("removing member", "team_id", teamID, "person_id", personID)
	return s.store.RemoveMember(ctx, teamID, personID)
}
