package repository

import (
	"context"
	"fmt"

	"roster/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewTeamRepository(db *gorm.DB, log *zap.SugaredLogger) *TeamRepository {
	return &TeamRepository{
		db:  db,
		log: log.Named("repo.team"),
	}
}

func (r *TeamRepository) Create(ctx context.Context, in models.NewTeam) (models.TeamDTO, error) {
	team := models.Team{Name: in.Name}
	if err := r.db.WithContext(ctx).Create(&team).Error; err != nil {
		return models.TeamDTO{}, fmt.Errorf("create team: %w", err)
	}

	r.log.Infow("team created", "id", team.ID, "name", team.Name)
	return toTeamDTO(team), nil
}

func (r *TeamRepository) Get(ctx context.Context, id uint) (models.TeamDTO, error) {
	team, err := r.find(r.db.WithContext(ctx), id)
	if err != nil {
		return models.TeamDTO{}, err
	}
	return toTeamDTO(team), nil
}

func (r *TeamRepository) Update(ctx context.Context, id uint, in models.NewTeam) (models.TeamDTO, error) {
	db := r.db.WithContext(ctx)
	team, err := r.find(db, id)
	if err != nil {
		return models.TeamDTO{}, err
	}

	if err := db.Model(&models.Team{ID: team.ID}).Update("name", in.Name).Error; err != nil {
		return models.TeamDTO{}, fmt.Errorf("update team %d: %w", id, err)
	}
	team.Name = in.Name
	return toTeamDTO(team), nil
}

// Delete removes the team and detaches its members in one transaction.
func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Team{}, id).Error; err != nil {
			return notFound(err, "team", id)
		}
		if err := tx.Model(&models.Person{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return fmt.Errorf("detach members of team %d: %w", id, err)
		}
		if err := tx.Delete(&models.Team{}, id).Error; err != nil {
			return fmt.Errorf("delete team %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Infow("team deleted", "id", id)
	return nil
}

// List returns teams in creation order; an empty result is NotFound.
func (r *TeamRepository) List(ctx context.Context) ([]models.TeamDTO, error) {
	var teams []models.Team
	if err := withMembers(r.db.WithContext(ctx)).Order("id").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, models.NewListNotFound("teams")
	}

	return lo.Map(teams, func(t models.Team, _ int) models.TeamDTO {
		return toTeamDTO(t)
	}), nil
}

// AddMember links the person to the team. Adding a current member is a
// no-op; a member of another team is moved.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Team{}, teamID).Error; err != nil {
			return notFound(err, "team", teamID)
		}

		var person models.Person
		if err := tx.First(&person, personID).Error; err != nil {
			return notFound(err, "person", personID)
		}

		if person.TeamID == nil || *person.TeamID != teamID {
			if err := tx.Model(&person).Update("team_id", teamID).Error; err != nil {
				return fmt.Errorf("add person %d to team %d: %w", personID, teamID, err)
			}
			r.log.Infow("member added", "team_id", teamID, "person_id", personID)
		}

		var err error
		team, err = r.find(tx, teamID)
		return err
	})
	if err != nil {
		return models.TeamDTO{}, err
	}
	return toTeamDTO(team), nil
}

// RemoveMember unlinks the person from the team. A person that is not a
// member of this team is reported as NotFound.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, personID uint) (models.TeamDTO, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Team{}, teamID).Error; err != nil {
			return notFound(err, "team", teamID)
		}

		var person models.Person
		if err := tx.First(&person, personID).Error; err != nil {
			return notFound(err, "person", personID)
		}
		if person.TeamID == nil || *person.TeamID != teamID {
			return models.NewNotFound("member", personID)
		}

		if err := tx.Model(&person).Update("team_id", nil).Error; err != nil {
			return fmt.Errorf("remove person %d from team %d: %w", personID, teamID, err)
		}
		r.log.Infow("member removed", "team_id", teamID, "person_id", personID)

		var err error
		team, err = r.find(tx, teamID)
		return err
	})
	if err != nil {
		return models.TeamDTO{}, err
	}
	return toTeamDTO(team), nil
}

func (r *TeamRepository) find(db *gorm.DB, id uint) (models.Team, error) {
	var team models.Team
	if err := withMembers(db).First(&team, id).Error; err != nil {
		return models.Team{}, notFound(err, "team", id)
	}
	return team, nil
}

func withMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("persons.id")
	})
}

func toTeamDTO(t models.Team) models.TeamDTO {
	return models.TeamDTO{
		ID:      t.ID,
		Name:    t.Name,
		Members: lo.Map(t.Members, func(p models.Person, _ int) models.Member { return models.ToMember(p) }),
	}
}
