package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store backends for the index
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Scrapbook locations
	Home      string // App home, e.g. ~/Downloads/WebScrapBook
	DataDir   string // Content directories, one per saved page
	IndexFile string // XML index used by the file backend
	// Index storage
	StoreBackend string // "file" or "postgres"
	DatabaseURL  string
	TablePrefix  string
	// Auth (disabled when JWKSURL is empty)
	JWKSURL string
	// Mount behaviour
	MountPruneMissing bool
	// Log files (disabled when LogDir is empty)
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool // Enables debug-level logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	home := expandHome(getEnv("SCRAPBOOK_HOME", defaultHome()))

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       env,
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Home:              home,
		DataDir:           expandHome(getEnv("SCRAPBOOK_DATA_DIR", filepath.Join(home, "data"))),
		IndexFile:         expandHome(getEnv("SCRAPBOOK_INDEX_FILE", filepath.Join(home, ".structure.xml"))),
		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", StoreBackendFile)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TablePrefix:       getTablePrefix(env),
		JWKSURL:           getEnv("AUTH_JWKS_URL", ""),
		MountPruneMissing: getEnv("MOUNT_PRUNE_MISSING", "true") == "true",
		LogDir:            getEnv("LOG_DIR", ""),
		LogMaxFiles:       getEnvInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// SetHome moves the scrapbook to home. The data directory and index file
// follow it unless they were configured explicitly.
func (c *Config) SetHome(home string) {
	c.Home = expandHome(home)
	if os.Getenv("SCRAPBOOK_DATA_DIR") == "" {
		c.DataDir = filepath.Join(c.Home, "data")
	}
	if os.Getenv("SCRAPBOOK_INDEX_FILE") == "" {
		c.IndexFile = filepath.Join(c.Home, ".structure.xml")
	}
}

// defaultHome returns ~/Downloads/WebScrapBook
func defaultHome() string {
	return filepath.Join("~", "Downloads", "WebScrapBook")
}

// expandHome replaces a leading "~" with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(userHome, strings.TrimPrefix(path, "~"))
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	case "dev":
		return "dev_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
