package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
		User     string `env:"POSTGRES_USER" envDefault:"spothop"`
		Password string `env:"POSTGRES_PASSWORD" envDefault:""`
		Database string `env:"POSTGRES_DB" envDefault:"spothop"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

		MaxConns        int32         `env:"POSTGRES_MAX_CONNS" envDefault:"25"`
		MinConns        int32         `env:"POSTGRES_MIN_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		// Shared secret of the hosted auth provider, used to verify
		// the HS256 access tokens it issues.
		JWTSecret string   `env:"AUTH_JWT_SECRET,required"`
		AdminIDs  []string `env:"ADMIN_IDS" envSeparator:","`
	}

	Cache struct {
		SpotTTL    time.Duration `env:"CACHE_SPOT_TTL" envDefault:"5m"`
		ContestTTL time.Duration `env:"CACHE_CONTEST_TTL" envDefault:"1m"`
		UserTTL    time.Duration `env:"CACHE_USER_TTL" envDefault:"10m"`
	}
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host,
		c.Postgres.Port, c.Postgres.Database, c.Postgres.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsAdmin reports whether the given user id is listed in ADMIN_IDS.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.Auth.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func Load() *Config {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
