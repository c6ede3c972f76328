package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/woodveneer/storefront/internal/domain"
)

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// EnsureDefaults inserts the default row unless one exists.
func (r *SettingsRepo) EnsureDefaults(ctx context.Context) error {
	def := domain.DefaultSettings()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&def).Error
}

func (r *SettingsRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", domain.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := domain.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Update(ctx context.Context, fn func(*domain.SiteSettings) error) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", domain.SettingsRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = domain.DefaultSettings()
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
				return err
			}
			err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", domain.SettingsRowID).Error
		}
		if err != nil {
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}
		s.ID = domain.SettingsRowID
		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
