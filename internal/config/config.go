package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every runtime setting the server needs. It is populated once
// in main and handed to collaborators; nothing else reads the environment.
type Config struct {
	Addr     string
	Env      string // "development" or "production"
	LogLevel string

	AllowedOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int

	GHL GHLConfig

	// BackupDBPath selects the SQLite backup store. Empty means in-memory only.
	BackupDBPath string
	BackupMaxAge time.Duration

	// AdminKeyHash is a bcrypt hash of the admin key used to mint tokens for
	// the backup reconciliation endpoints. Empty disables admin login.
	AdminKeyHash string
	JWTSecret    string
}

// GHLConfig holds the CRM connection settings. An empty APIKey puts every
// submission into backup-only mode instead of failing.
type GHLConfig struct {
	APIURL          string
	APIKey          string
	LocationID      string
	PipelineID      string
	PipelineStageID string
	// Workflows maps a persona bucket (DREAMER, BUILDER, ...) to a workflow ID.
	Workflows map[string]string
}

// Configured reports whether the CRM can be called at all.
func (g GHLConfig) Configured() bool { return g.APIKey != "" }

// Load reads the configuration from the environment.
func Load() Config {
	addr := envOr("COMPASS_ADDR", "")
	if addr == "" {
		addr = ":" + envOr("PORT", "3000")
	}
	return Config{
		Addr:           addr,
		Env:            envOr("COMPASS_ENV", "development"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(envOr("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),

		RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW", 15)) * time.Minute,
		RateLimitMax:    envInt("RATE_LIMIT_MAX_REQUESTS", 100),

		GHL: GHLConfig{
			APIURL:          envOr("GHL_API_URL", "https://rest.gohighlevel.com/v1"),
			APIKey:          os.Getenv("GHL_API_KEY"),
			LocationID:      os.Getenv("GHL_LOCATION_ID"),
			PipelineID:      os.Getenv("GHL_PIPELINE_ID"),
			PipelineStageID: os.Getenv("GHL_PIPELINE_STAGE_ID"),
			Workflows: map[string]string{
				"DREAMER": os.Getenv("GHL_DREAMER_WORKFLOW_ID"),
				"BUILDER": os.Getenv("GHL_BUILDER_WORKFLOW_ID"),
				"DRIVER":  os.Getenv("GHL_DRIVER_WORKFLOW_ID"),
				"LEADER":  os.Getenv("GHL_LEADER_WORKFLOW_ID"),
			},
		},

		BackupDBPath: os.Getenv("COMPASS_BACKUP_DB"),
		BackupMaxAge: time.Duration(envInt("COMPASS_BACKUP_MAX_AGE_DAYS", 7)) * 24 * time.Hour,

		AdminKeyHash: os.Getenv("COMPASS_ADMIN_KEY_HASH"),
		JWTSecret:    envOr("COMPASS_JWT_SECRET", "compass-dev-secret"),
	}
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool { return c.Env == "production" }

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
