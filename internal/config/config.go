package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/niklvrr/teammembers/pkg/logger"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

var (
	dbUserEmptyError    = errors.New("DB User is Empty")
	dbNameEmptyError    = errors.New("DB Name is Empty")
	mongoURIEmptyError  = errors.New("Mongo URI is Empty")
	mongoDBEmptyError   = errors.New("Mongo Database is Empty")
	unknownDriverError  = errors.New("unknown storage driver")
	envLoadError        = errors.New(".env load Error")
	requestTimeoutError = errors.New("invalid request timeout")
)

type AppConfig struct {
	Env            string
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	Password       string
	User           string
	URL            string
	MigrationsPath string
}

type Config struct {
	App      AppConfig
	Driver   string
	Mongo    MongoConfig
	Database DatabaseConfig
}

func LoadConfig() (*Config, error) {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", envLoadError, err)
	}

	timeout, err := time.ParseDuration(getEnv("APP_REQUEST_TIMEOUT", "0s"))
	if err != nil || timeout < 0 {
		return nil, requestTimeoutError
	}

	c := &Config{
		App: AppConfig{
			Env:            getEnv("APP_ENV", logger.EnvDev),
			Port:           getEnv("APP_PORT", "8000"),
			RequestTimeout: timeout,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Driver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "tesla_db"),
			Collection: getEnv("MONGO_COLLECTION", "team_members"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DATABASE_HOST", "localhost"),
			Port:           getEnv("DATABASE_PORT", "5432"),
			Name:           getEnv("DATABASE_NAME", "postgres"),
			Password:       getEnv("DATABASE_PASSWORD", "postgres"),
			User:           getEnv("DATABASE_USER", "postgres"),
			URL:            os.Getenv("DATABASE_URL"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	return c, nil
}

func validate(c *Config) error {
	switch c.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return mongoURIEmptyError
		}
		if c.Mongo.Database == "" {
			return mongoDBEmptyError
		}
		return nil
	case DriverPostgres:
		return makeDbUrl(c)
	default:
		return fmt.Errorf("%w: %q", unknownDriverError, c.Driver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func makeDbUrl(cfg *Config) error {
	if cfg.Database.URL == "" {
		if cfg.Database.User == "" {
			return dbUserEmptyError
		}
		if cfg.Database.Name == "" {
			return dbNameEmptyError
		}
		cfg.Database.URL = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
	}
	return nil
}
