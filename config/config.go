package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string `env:"APP_ENV" envDefault:"local"`
	Port         string `env:"PORT" envDefault:"8080"`
	CookieDomain string `env:"COOKIE_DOMAIN"`

	DBURL string `env:"DB_URL"`

	JWTSecret  string        `env:"JWT_SECRET_KEY"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"flash-avatars"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

// IsDevelopment reports whether the app runs without a deployed domain.
func (c *Config) IsDevelopment() bool {
	return c.CookieDomain == ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
