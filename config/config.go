package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	// ModelStatus mounts the one-row-per-day attendance family.
	ModelStatus = "status"
	// ModelLog mounts the append-only enter/exit log family.
	ModelLog = "log"
)

type AppConfig struct {
	Port            string
	DBDriver        string
	DatabaseURL     string
	MongoString     string
	MongoDBName     string
	AttendanceModel string
	Timezone        string
	Location        *time.Location
	AllowedOrigins  []string
	SeedUsers       bool
	LogLevel        string
}

// LoadConfig loads .env (if present) and then reads the process environment.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from lookup.
func FromEnv(lookup func(string) (string, bool)) (*AppConfig, error) {
	getEnv := func(key, defaultValue string) string {
		if value, exists := lookup(key); exists && value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &AppConfig{
		Port:            getEnv("PORT", "3000"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		MongoString:     getEnv("MONGOSTRING", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "attendance-db"),
		AttendanceModel: strings.ToLower(getEnv("ATTENDANCE_MODEL", ModelStatus)),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
		if cfg.DatabaseURL == "" {
			host := getEnv("DB_HOST", "")
			if host == "" {
				return nil, xerrors.New("DATABASE_URL or DB_HOST must be set for the postgres driver")
			}
			cfg.DatabaseURL = postgresDSN(
				getEnv("DB_USER", "postgres"),
				getEnv("DB_PASSWORD", ""),
				host,
				getEnv("DB_PORT", "5432"),
				getEnv("DB_NAME", "postgres"),
				getEnv("DB_SSLMODE", "require"),
			)
		}
	case DriverMongo:
		if cfg.MongoString == "" {
			return nil, xerrors.New("MONGOSTRING must be set for the mongo driver")
		}
	default:
		return nil, xerrors.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, cfg.DBDriver)
	}

	if cfg.AttendanceModel != ModelStatus && cfg.AttendanceModel != ModelLog {
		return nil, xerrors.Errorf("ATTENDANCE_MODEL must be %q or %q, got %q", ModelStatus, ModelLog, cfg.AttendanceModel)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, xerrors.Errorf("load APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.LogLevel != "info" && cfg.LogLevel != "debug" {
		return nil, xerrors.Errorf("LOG_LEVEL must be info or debug, got %q", cfg.LogLevel)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_USERS", "false"))
	if err != nil {
		return nil, xerrors.Errorf("parse SEED_USERS: %w", err)
	}
	cfg.SeedUsers = seed

	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", strings.Join(defaultAllowedOrigins, ",")))
	return cfg, nil
}

func postgresDSN(user, password, host, port, name, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {sslmode}, "application_name": {"attendance-tracker"}}.Encode(),
	}
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
