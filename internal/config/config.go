package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"` // サーバーポート
	GoEnv    string `env:"GO_ENV" envDefault:"dev"` // dev/prod
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver         string `env:"DB_DRIVER" envDefault:"postgres"` // postgres / sqlite
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"storefront.db"`

	JWTSecret      string        `env:"JWT_SECRET"` // JWT署名シークレット
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	CartStorePath string `env:"CART_STORE_PATH" envDefault:"cart.db"` // カートのbboltファイル
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"/uploads"`

	SendGridAPIKey           string `env:"SENDGRID_API_KEY"`
	SendGridStatusTemplateID string `env:"SENDGRID_STATUS_TEMPLATE_ID"`
	SendGridBaseURL          string `env:"SENDGRID_BASE_URL" envDefault:"https://api.sendgrid.com"`
	MailFrom                 string `env:"MAIL_FROM" envDefault:"noreply@lisaperfume.com"`

	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1m"`
	OTelEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	FEURL string `env:"FE_URL" envDefault:"http://localhost:3000"` // フロントURL（CORS）

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// devでJWT_SECRETが無いときの値
const devJWTSecret = "dev_secret_change_me"

// Loadは .env（あれば）と環境変数から設定を読む
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		// .envは無くてもよい
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.IsDev() && cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validateは必須チェック
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite")
	}
	if c.CartStorePath == "" {
		return fmt.Errorf("CART_STORE_PATH is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev"
}

// Addr は ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// PostgresDSN は DATABASE_URL があればそれを優先する
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// MailEnabled はSendGridが設定済みか
func (c Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridStatusTemplateID != ""
}
