package repository

import (
	"context"
	"fmt"

	"roster/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PersonRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewPersonRepository(db *gorm.DB, log *zap.SugaredLogger) *PersonRepository {
	return &PersonRepository{
		db:  db,
		log: log.Named("repo.person"),
	}
}

func (r *PersonRepository) Create(ctx context.Context, in models.NewPerson) (models.PersonDTO, error) {
	person := models.Person{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if err := r.db.WithContext(ctx).Create(&person).Error; err != nil {
		return models.PersonDTO{}, fmt.Errorf("create person: %w", err)
	}

	r.log.Infow("person created", "id", person.ID)
	return models.ToPersonDTO(person), nil
}

func (r *PersonRepository) Get(ctx context.Context, id uint) (models.PersonDTO, error) {
	person, err := r.find(r.db.WithContext(ctx), id)
	if err != nil {
		return models.PersonDTO{}, err
	}
	return models.ToPersonDTO(person), nil
}

func (r *PersonRepository) Update(ctx context.Context, id uint, in models.NewPerson) (models.PersonDTO, error) {
	db := r.db.WithContext(ctx)
	person, err := r.find(db, id)
	if err != nil {
		return models.PersonDTO{}, err
	}

	person.FirstName = in.FirstName
	person.LastName = in.LastName
	person.Email = in.Email
	err = db.Model(&person).
		Select("FirstName", "LastName", "Email").
		Updates(models.Person{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}).Error
	if err != nil {
		return models.PersonDTO{}, fmt.Errorf("update person %d: %w", id, err)
	}
	return models.ToPersonDTO(person), nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Person{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete person %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("person", id)
	}

	r.log.Infow("person deleted", "id", id)
	return nil
}

// List returns persons in creation order. An empty result is reported as
// NotFound, which existing API clients rely on.
func (r *PersonRepository) List(ctx context.Context, withoutTeam bool) ([]models.PersonDTO, error) {
	query := r.db.WithContext(ctx).Order("id")
	if withoutTeam {
		query = query.Where("team_id IS NULL")
	}

	var persons []models.Person
	if err := query.Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	if len(persons) == 0 {
		return nil, models.NewListNotFound("persons")
	}

	return lo.Map(persons, func(p models.Person, _ int) models.PersonDTO {
		return models.ToPersonDTO(p)
	}), nil
}

// LeaveTeam clears the person's team link. A person without a team is
// returned unchanged.
func (r *PersonRepository) LeaveTeam(ctx context.Context, id uint) (models.PersonDTO, error) {
	db := r.db.WithContext(ctx)
	person, err := r.find(db, id)
	if err != nil {
		return models.PersonDTO{}, err
	}
	if !person.HasTeam() {
		return models.ToPersonDTO(person), nil
	}

	teamID := *person.TeamID
	if err := db.Model(&person).Update("team_id", nil).Error; err != nil {
		return models.PersonDTO{}, fmt.Errorf("leave team for person %d: %w", id, err)
	}
	r.log.Infow("person left team", "id", id, "team_id", teamID)

	person.TeamID = nil
	return models.ToPersonDTO(person), nil
}

func (r *PersonRepository) find(db *gorm.DB, id uint) (models.Person, error) {
	var person models.Person
	if err := db.First(&person, id).Error; err != nil {
		return models.Person{}, notFound(err, "person", id)
	}
	return person, nil
}
