package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Find returns the singleton row; lazy creation lives in the usecase.
func (r *SettingsRepo) Find(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	if err := r.db.WithContext(ctx).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
