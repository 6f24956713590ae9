// Package services orchestrates the repositories and the OAuth flow on
// behalf of the HTTP handlers.
package services

import (
	"context"

	"roster/models"

	"go.uber.org/zap"
)

type PersonStore interface {
	Create(ctx context.Context, in models.NewPerson) (models.PersonDTO, error)
	Get(ctx context.Context, id uint) (models.PersonDTO, error)
	Update(ctx context.Context, id uint, in models.NewPerson) (models.PersonDTO, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, withoutTeam bool) ([]models.PersonDTO, error)
	LeaveTeam(ctx context.Context, id uint) (models.PersonDTO, error)
}

type PersonService struct {
	store PersonStore
	log   *zap.SugaredLogger
}

func NewPersonService(store PersonStore, log *zap.SugaredLogger) *PersonService {
	return &PersonService{store: store, log: log.Named("service.person")}
}

func (s *PersonService) Create(ctx context.Context, in models.NewPerson) (models.PersonDTO, error) {
	return s.store.Create(ctx, in)
}

func (s *PersonService) Get(ctx context.Context, id uint) (models.PersonDTO, error) {
	return s.store.Get(ctx, id)
}

func (s *PersonService) Update(ctx context.Context, id uint, in models.NewPerson) (models.PersonDTO, error) {
	return s.store.Update(ctx, id, in)
}

func (s *PersonService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

func (s *PersonService) List(ctx context.Context, withoutTeam bool) ([]models.PersonDTO, error) {
	s.log.Debugw("listing persons", "without_team", withoutTeam)
	return s.store.List(ctx, withoutTeam)
}

func (s *PersonService) LeaveTeam(ctx context.Context, id uint) (models.PersonDTO, error) {
	return s.store.LeaveTeam(ctx, id)
}
