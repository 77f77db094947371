package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Directory    DirectoryConfig
	JWT          JWTConfig
	OAuth2Google OAuth2GoogleConfig
	Firebase     FirebaseConfig
	Session      SessionConfig
	Migration    MigrationConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
}

// DirectoryConfig selects the document store backend. Driver is either
// "firestore" or "postgres"; "memory" is accepted for local smoke runs.
type DirectoryConfig struct {
	Driver      string
	DatabaseURL string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// FirebaseConfig holds the project and credentials used for both the
// Firestore directory and the identity provider fallback.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	WebAPIKey       string
}

type SessionConfig struct {
	Dir string
	Key string
}

// MigrationConfig drives the employee id renumbering scheme and the
// periodic sweep behind the change watcher.
type MigrationConfig struct {
	CurrentPrefix string
	BaseOffset    int
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine; deployments set real environment variables.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{config.App.FrontendURL}
	}

	// Directory configuration
	config.Directory = DirectoryConfig{
		Driver:      getEnv("DIRECTORY_DRIVER", "firestore"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Firebase configuration
	config.Firebase = FirebaseConfig{
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
	}

	// Session configuration
	config.Session = SessionConfig{
		Dir: getEnv("SESSION_DIR", "./data/sessions"),
		Key: getEnv("SESSION_KEY", "last_session"),
	}

	// Migration configuration
	baseOffset, err := strconv.Atoi(getEnv("EMPLOYEE_ID_BASE_OFFSET", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMPLOYEE_ID_BASE_OFFSET: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("MIGRATION_SWEEP_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATION_SWEEP_INTERVAL: %w", err)
	}
	config.Migration = MigrationConfig{
		CurrentPrefix: getEnv("EMPLOYEE_ID_PREFIX", "91"),
		BaseOffset:    baseOffset,
		SweepInterval: sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	// The identity provider fallback always runs against Firebase, even
	// when the directory itself is backed by Postgres.
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	switch c.Directory.Driver {
	case "firestore":
	case "postgres":
		if c.Directory.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DIRECTORY_DRIVER: %s", c.Directory.Driver)
	}
	if c.OAuth2Google.ClientID == "" {
		return fmt.Errorf("CLIENT_ID is required")
	}
	if c.OAuth2Google.ClientSecret == "" {
		return fmt.Errorf("CLIENT_SECRET is required")
	}
	if c.OAuth2Google.RedirectURL == "" {
		return fmt.Errorf("REDIRECT_URL is required")
	}
	if len(c.OAuth2Google.Scopes) == 0 {
		return fmt.Errorf("SCOPES is required")
	}
	if c.Migration.CurrentPrefix == "" {
		return fmt.Errorf("EMPLOYEE_ID_PREFIX is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
