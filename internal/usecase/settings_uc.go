package usecase

import (
	"context"
	"errors"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type SettingsUC struct {
	Settings domain.SettingsRepo
}

// Get returns the sole settings record, creating it with empty defaults if
// none exists yet. Callers must treat this as get-or-create, not a pure read.
func (uc *SettingsUC) Get(ctx context.Context) (*domain.Settings, error) {
	s, err := uc.Settings.Find(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	s = &domain.Settings{}
	if err := uc.Settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *SettingsUC) Save(ctx context.Context, s *domain.Settings) error {
	return uc.Settings.Save(ctx, s)
}
