package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds configuration resolved once at process start. The struct is
// treated as immutable after Load; services receive it by value and never read
// ambient state.
type AppConfig struct {
	AppPort string `json:"AppPort"`
	GinMode string `json:"GinMode"`

	DBPath string `json:"DBPath"`

	// Session cookie settings. Flags are inputs to the session store, not core logic.
	SessionSecret    string `json:"SessionSecret"`
	SessionMaxAgeSec int    `json:"SessionMaxAgeSec"`
	CookieSecure     bool   `json:"CookieSecure"`
	CookieSameSite   string `json:"CookieSameSite"`

	// Shared secret for the admin re-authentication endpoint.
	AdminSecretKey string `json:"AdminSecretKey"`

	// Insecure disables content sanitization entirely. Posts are stored raw,
	// which reintroduces stored XSS. Opt-in only; a warning is logged while active.
	Insecure bool `json:"Insecure"`

	// Seed account created when the users table is empty.
	AdminUsername string `json:"AdminUsername"`
	AdminPassword string `json:"AdminPassword"`
	// SeedDemo inserts a handful of demo users and posts on boot.
	SeedDemo bool `json:"SeedDemo"`

	RateLimitPerMinute int      `json:"RateLimitPerMinute"`
	AllowedOrigins     []string `json:"AllowedOrigins"`

	// Logging configuration
	LogLevel      string `json:"LogLevel"`
	LogPath       string `json:"LogPath"`
	LogMaxSizeMB  int    `json:"LogMaxSizeMB"`
	LogMaxBackups int    `json:"LogMaxBackups"`
	LogMaxAgeDays int    `json:"LogMaxAgeDays"`
	LogCompress   bool   `json:"LogCompress"`
}

var cfg AppConfig
var loaded bool

// Load resolves the application configuration. Precedence:
// config/config.json -> defaults -> environment variable overrides.
// It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Optional .env file for local development.
	_ = godotenv.Load()

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a JSON file into out if present. A missing file is not
// an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "3000"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.DBPath == "" {
		c.DBPath = "socialsite.db"
	}
	if c.SessionSecret == "" {
		c.SessionSecret = "dev-session-secret"
	}
	if c.SessionMaxAgeSec == 0 {
		c.SessionMaxAgeSec = 86400 * 7
	}
	if c.CookieSameSite == "" {
		c.CookieSameSite = "lax"
	}
	if c.AdminSecretKey == "" {
		c.AdminSecretKey = "mysecretkey"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func applyEnvOverrides(c *AppConfig) {
	c.AppPort = getEnv("PORT", c.AppPort)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionMaxAgeSec = getEnvInt("SESSION_MAX_AGE_SEC", c.SessionMaxAgeSec)
	c.CookieSecure = getEnvBool("COOKIE_SECURE", c.CookieSecure)
	c.CookieSameSite = getEnv("COOKIE_SAMESITE", c.CookieSameSite)
	c.AdminSecretKey = getEnv("SECRET_ADMIN_KEY", c.AdminSecretKey)
	c.Insecure = getEnvBool("INSECURE", c.Insecure)
	c.AdminUsername = getEnv("ADMIN_USERNAME", c.AdminUsername)
	c.AdminPassword = getEnv("ADMIN_PASSWORD", c.AdminPassword)
	c.SeedDemo = getEnvBool("SEED_DEMO", c.SeedDemo)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			c.AllowedOrigins = origins
		}
	}
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPath = getEnv("LOG_PATH", c.LogPath)
	c.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", c.LogMaxSizeMB)
	c.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", c.LogMaxBackups)
	c.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", c.LogMaxAgeDays)
	c.LogCompress = getEnvBool("LOG_COMPRESS", c.LogCompress)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.EqualFold(val, "true") || val == "1"
	}
	return defaultVal
}
