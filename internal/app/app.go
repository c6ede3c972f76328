package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/adapters/httpserver"
	"github.com/woodveneer/storefront/internal/adapters/imagekit"
	"github.com/woodveneer/storefront/internal/adapters/notify"
	"github.com/woodveneer/storefront/internal/adapters/repo/postgres"
	"github.com/woodveneer/storefront/internal/adapters/storage/localfs"
	"github.com/woodveneer/storefront/internal/config"
	"github.com/woodveneer/storefront/internal/domain"
	"github.com/woodveneer/storefront/internal/usecase"
)

type App struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Settings *postgres.SettingsRepo

	ProductUC   *usecase.ProductUC
	CategoryUC  *usecase.CategoryUC
	OptionUC    *usecase.OptionUC
	BlogUC      *usecase.BlogUC
	ContactUC   *usecase.ContactUC
	CustomerUC  *usecase.CustomerUC
	AdminUC     *usecase.AdminUC
	AuthUC      *usecase.AuthUC
	SettingsUC  *usecase.SettingsUC
	DashboardUC *usecase.DashboardUC
	UploadUC    *usecase.UploadUC
	ImageKit    *imagekit.Signer
}

func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	storage, err := localfs.New(cfg.StorageDir, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}

	prodRepo := postgres.NewProductRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	adminRepo := postgres.NewAdminRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	app := &App{DB: db, Cfg: cfg, Settings: settingsRepo}
	app.ProductUC = &usecase.ProductUC{Products: prodRepo, Featured: postgres.NewFeaturedProductRepo(db)}
	app.CategoryUC = &usecase.CategoryUC{Categories: postgres.NewCategoryRepo(db)}
	app.OptionUC = &usecase.OptionUC{Options: postgres.NewOptionRepo(db)}
	app.BlogUC = &usecase.BlogUC{Posts: postgres.NewBlogRepo(db)}
	app.ContactUC = &usecase.ContactUC{Contacts: contactRepo}
	app.CustomerUC = &usecase.CustomerUC{Customers: postgres.NewCustomerRepo(db)}
	app.AdminUC = &usecase.AdminUC{Admins: adminRepo}
	app.AuthUC = &usecase.AuthUC{Admins: adminRepo, Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	app.SettingsUC = &usecase.SettingsUC{Settings: settingsRepo}
	app.DashboardUC = &usecase.DashboardUC{Stats: postgres.NewDashboardRepo(db), Contacts: contactRepo}
	app.UploadUC = &usecase.UploadUC{Files: storage, MaxBytes: cfg.UploadMaxBytes}

	if cfg.SMTP.Host != "" {
		app.ContactUC.Notify = notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User,
			cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.NotifyTo, settingsRepo)
	}
	if cfg.ImageKit.PrivateKey != "" {
		app.ImageKit = &imagekit.Signer{
			PublicKey:   cfg.ImageKit.PublicKey,
			PrivateKey:  cfg.ImageKit.PrivateKey,
			URLEndpoint: cfg.ImageKit.URLEndpoint,
			Folder:      cfg.ImageKit.Folder,
		}
	}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Products:    a.ProductUC,
		Categories:  a.CategoryUC,
		Options:     a.OptionUC,
		Blog:        a.BlogUC,
		Contacts:    a.ContactUC,
		Customers:   a.CustomerUC,
		Admins:      a.AdminUC,
		Auth:        a.AuthUC,
		Settings:    a.SettingsUC,
		Dashboard:   a.DashboardUC,
		Uploads:     a.UploadUC,
		ImageKit:    a.ImageKit,
		UploadDir:   a.Cfg.StorageDir,
		CORSOrigins: a.Cfg.CORSOrigins,
		PublicRate:  a.Cfg.PublicRate,
	})
}

func (a *App) MigrateAndSeed(ctx context.Context) error {
	if err := Migrate(a.DB); err != nil {
		return err
	}
	if err := a.Settings.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	b := a.Cfg.Bootstrap
	admin, err := a.AdminUC.EnsureBootstrap(ctx, b.Username, b.Password, b.Email, b.FullName)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if admin != nil {
		log.Info().Str("username", admin.Username).Msg("bootstrap admin ensured")
	}
	return nil
}

// Migrate creates or updates the schema. Safe to run on every boot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Product{}, &domain.FeaturedProduct{}, &domain.Category{}, &domain.ProductOption{},
		&domain.BlogPost{}, &domain.ContactRequest{}, &domain.Customer{}, &domain.Admin{},
		&domain.SiteSettings{},
	); err != nil {
		return err
	}

	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_colors_gin ON products USING gin (colors)",
		"CREATE INDEX IF NOT EXISTS idx_products_thickness_gin ON products USING gin (thickness)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_published_at ON blog_posts (published_at)",
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			log.Warn().Err(err).Str("stmt", s).Msg("migration statement failed")
		}
	}
	return nil
}
