// Package config provides seed tool configuration with support for command-line flags, environment variables, and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config holds the seed tool configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Seed     SeedConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatabaseConfig selects the target database.
type DatabaseConfig struct {
	Driver string // sqlite, postgres or mysql (default: sqlite)
	DSN    string // for sqlite a file path (default: ./listenup-dev.db)
}

// SeedConfig tunes a seed run.
type SeedConfig struct {
	// CatalogPath is a JSON catalog file. Empty uses the embedded catalog.
	CatalogPath string
	// AssignedBy stamps every book-genre link (default: seed)
	AssignedBy string
	// Concurrency bounds concurrent per-book inserts (default: 4)
	Concurrency int
	// Rate caps per-book inserts per second; 0 is unlimited.
	Rate float64
	// Tropes is the number of generated tropes; 0 leaves tropes untouched.
	Tropes int
	// BestEffort logs seed failures and exits 0.
	BestEffort bool
	// AllowProduction permits seeding when ENV=production.
	AllowProduction bool
}

// Flags carries command-line values. Empty strings mean "not set on the command line".
type Flags struct {
	Env             string
	EnvFile         string
	LogLevel        string
	Driver          string
	DSN             string
	Catalog         string
	AssignedBy      string
	Concurrency     string
	Rate            string
	Tropes          string
	BestEffort      string
	AllowProduction string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	// A missing .env file is fine; a malformed one is not.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Env, "ENV", EnvDevelopment),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getConfigValue(flags.Driver, "DB_DRIVER", "sqlite")),
			DSN:    getConfigValue(flags.DSN, "DATABASE_URL", ""),
		},
		Seed: SeedConfig{
			CatalogPath:     getConfigValue(flags.Catalog, "SEED_CATALOG", ""),
			AssignedBy:      getConfigValue(flags.AssignedBy, "SEED_ASSIGNED_BY", "seed"),
			BestEffort:      getBoolConfigValue(flags.BestEffort, "SEED_BEST_EFFORT", false),
			AllowProduction: getBoolConfigValue(flags.AllowProduction, "SEED_ALLOW_PRODUCTION", false),
		},
	}

	var err error
	if cfg.Seed.Concurrency, err = getIntConfigValue(flags.Concurrency, "SEED_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.Seed.Tropes, err = getIntConfigValue(flags.Tropes, "SEED_TROPES", 0); err != nil {
		return nil, err
	}
	if cfg.Seed.Rate, err = getFloatConfigValue(flags.Rate, "SEED_RATE", 0); err != nil {
		return nil, err
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		EnvDevelopment: true,
		EnvStaging:     true,
		EnvProduction:  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite, postgres, or mysql)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("DATABASE_URL is required")
	}

	if c.Seed.AssignedBy == "" {
		return errors.New("SEED_ASSIGNED_BY cannot be empty")
	}
	if c.Seed.Concurrency < 1 {
		return fmt.Errorf("invalid seed concurrency: %d (must be at least 1)", c.Seed.Concurrency)
	}
	if c.Seed.Rate < 0 {
		return fmt.Errorf("invalid seed rate: %g (must not be negative)", c.Seed.Rate)
	}
	if c.Seed.Tropes < 0 {
		return fmt.Errorf("invalid trope count: %d (must not be negative)", c.Seed.Tropes)
	}

	return nil
}

// expandPaths makes the catalog path and the SQLite database path absolute.
// The SQLite file defaults to listenup-dev.db in the working directory.
func (c *Config) expandPaths() error {
	catalog, err := expandPath(c.Seed.CatalogPath, "")
	if err != nil {
		return fmt.Errorf("invalid catalog path: %w", err)
	}
	c.Seed.CatalogPath = catalog

	if c.Database.Driver != "sqlite" {
		return nil
	}
	dsn, err := expandPath(c.Database.DSN, "listenup-dev.db")
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	c.Database.DSN = dsn
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is expanded instead; an empty default stays empty.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}
	if path == "" || strings.HasPrefix(path, "file:") || path == ":memory:" {
		return path, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) (int, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return result, nil
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) (float64, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return result, nil
}
