package repository

import (
	"context"
	"fmt"
	"strings"

	"roster/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewUserRepository(db *gorm.DB, log *zap.SugaredLogger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.Named("repo.user"),
	}
}

// GetOrCreate returns the user keyed by the profile's email, creating it
// when absent. The insert and the read happen in one transaction and the
// insert yields to a concurrent one through the unique email index, so
// simultaneous first logins end up with a single row.
func (r *UserRepository) GetOrCreate(ctx context.Context, profile models.OAuthProfile) (models.User, bool, error) {
	email := normalizeEmail(profile.Email)

	var (
		user    models.User
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := models.User{
			Username:  models.UsernameFromEmail(email),
			Email:     email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&candidate)
		if result.Error != nil {
			return fmt.Errorf("insert user: %w", result.Error)
		}
		created = result.RowsAffected > 0

		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, false, err
	}

	if created {
		r.log.Infow("oauth user created", "id", user.ID, "username", user.Username, "name", user.DisplayName())
	}
	return user, created, nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, notFound(err, "user", id)
	}
	return user, nil
}

// SetRefreshTokenHash records the hash of the only refresh token that may
// still be exchanged for this user.
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id uint, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("refresh_token_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("store refresh token for user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("user", id)
	}
	return nil
}

// SwapRefreshTokenHash replaces oldHash with newHash only if oldHash is still
// the stored value. The conditional update makes concurrent rotations of the
// same refresh token race for a single winner; losers get false.
func (r *UserRepository) SwapRefreshTokenHash(ctx context.Context, id uint, oldHash, newHash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token_hash = ?", id, oldHash).
		Update("refresh_token_hash", newHash)
	if result.Error != nil {
		return false, fmt.Errorf("rotate refresh token for user %d: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
