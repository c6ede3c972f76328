package usecase

import (
	"context"

	"github.com/woodveneer/storefront/internal/domain"
)

type SettingsUC struct {
	Settings domain.SettingsRepo
}

func (uc *SettingsUC) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return uc.Settings.Get(ctx)
}

func (uc *SettingsUC) Update(ctx context.Context, patch domain.SettingsPatch) (*domain.SiteSettings, error) {
	return uc.Settings.Update(ctx, func(s *domain.SiteSettings) error {
		patch.Apply(s)
		return nil
	})
}
