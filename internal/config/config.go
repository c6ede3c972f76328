package config

import (
	"crypto/rand"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Env            string
	Port           string
	DSN            string
	JWTSecret      []byte
	TokenTTL       time.Duration
	StorageDir     string
	UploadMaxBytes int64
	PublicRate     int
	CORSOrigins    []string
	ImageKit       ImageKit
	Bootstrap      BootstrapAdmin
	SMTP           SMTP
}

// SMTP configures new-lead notification mail. An empty Host disables it.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}

type ImageKit struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
	Folder      string
}

type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
	FullName string
}

func (c *Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Load reads the process environment. Missing secrets are generated in
// development and rejected in production.
func Load() (*Config, error) {
	cfg := &Config{
		Env:        strings.ToLower(getEnv("APP_ENV", "development")),
		Port:       getEnv("PORT", "8080"),
		DSN:        databaseDSN(),
		StorageDir: getEnv("STORAGE_DIR", "uploads"),
		ImageKit: ImageKit{
			PublicKey:   os.Getenv("IMAGEKIT_PUBLIC_KEY"),
			PrivateKey:  os.Getenv("IMAGEKIT_PRIVATE_KEY"),
			URLEndpoint: os.Getenv("IMAGEKIT_URL_ENDPOINT"),
			Folder:      getEnv("IMAGEKIT_FOLDER", "product"),
		},
		Bootstrap: BootstrapAdmin{
			Username: getEnv("BOOTSTRAP_ADMIN_USERNAME", "admin"),
			Password: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
			Email:    getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@silklux.com"),
			FullName: getEnv("BOOTSTRAP_ADMIN_FULL_NAME", "System Administrator"),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			NotifyTo: os.Getenv("CONTACT_NOTIFY_EMAIL"),
		},
	}
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.User)

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		log.Error().Str("PORT", cfg.Port).Msg("invalid PORT, falling back to 8080")
		cfg.Port = "8080"
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil || ttl <= 0 {
		log.Warn().Msg("invalid TOKEN_TTL, using 168h")
		ttl = 7 * 24 * time.Hour
	}
	cfg.TokenTTL = ttl

	cfg.UploadMaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20))
	cfg.PublicRate = getEnvInt("PUBLIC_RATE_LIMIT", 10)

	for _, o := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret != "" && len(secret) < 32 && cfg.Production():
		return nil, errors.New("JWT_SECRET must be at least 32 characters in production")
	case secret != "":
		cfg.JWTSecret = []byte(secret)
	case cfg.Production():
		return nil, errors.New("JWT_SECRET is required in production")
	default:
		log.Warn().Msg("JWT_SECRET not set, generating a random key; tokens will not survive a restart")
		cfg.JWTSecret = randomBytes(32)
	}

	if cfg.Bootstrap.Password == "" && cfg.Production() {
		log.Warn().Msg("BOOTSTRAP_ADMIN_PASSWORD not set, break-glass admin will not be seeded")
	}
	if cfg.SMTP.Host != "" && cfg.SMTP.NotifyTo == "" {
		log.Warn().Msg("CONTACT_NOTIFY_EMAIL not set, lead notifications go to the site contact email")
	}
	if cfg.ImageKit.PrivateKey == "" {
		log.Warn().Msg("IMAGEKIT_PRIVATE_KEY not set, /api/imagekit-auth is disabled")
	}
	return cfg, nil
}

func databaseDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		return dsn
	}
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := firstNonEmpty(os.Getenv("DB_USER"), os.Getenv("POSTGRES_USER"), "postgres")
	pass := firstNonEmpty(os.Getenv("DB_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), "postgres")
	name := firstNonEmpty(os.Getenv("DB_NAME"), os.Getenv("POSTGRES_DB"), "woodveneer")
	ssl := getEnv("DB_SSLMODE", "disable")
	return "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str(key, v).Int("default", def).Msg("invalid integer setting")
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("read random bytes")
	}
	return b
}
