package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	Cron     CronConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

type DatabaseConfig struct {
	// Driver is "postgres" in production; "sqlite" is handy for local runs.
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"dreamhouse"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type SessionConfig struct {
	Secret      string        `env:"SECRET_KEY,required,notEmpty"`
	CookieName  string        `env:"SESSION_COOKIE" envDefault:"dreamhouse_session"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RememberFor time.Duration `env:"SESSION_REMEMBER_FOR" envDefault:"720h"`
	Secure      bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM" envDefault:"DreamHouse <noreply@dreamhouse.by>"`
}

type CronConfig struct {
	MessageDigest string `env:"MESSAGE_DIGEST_SCHEDULE" envDefault:"0 9 * * *"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a connection string built
// from the individual DB_* variables.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "sqlite" {
		return d.DBName + ".db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
