package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// EditDeniedRedirect sends a non-author editor back to the author's profile.
	EditDeniedRedirect = "redirect"
	// EditDeniedForbidden answers a non-author editor with 403.
	EditDeniedForbidden = "forbidden"

	// PageClamp serves the nearest valid page for out-of-range page numbers.
	PageClamp = "clamp"
	// PageStrict answers out-of-range page numbers with 404.
	PageStrict = "strict"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis backs the index feed cache and token revocation; empty host disables it.
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Gin framework configuration
	GinMode        string
	GinPath        string
	AllowedOrigins []string
	// Content
	PostPerPage       int
	PagePolicy        string
	EditDeniedPolicy  string
	IndexCacheSeconds int
	MediaRoot         string
	MaxUploadMB       int
	// Authentication
	LoginURL           string
	TokenTTLHours      int
	CookieSecure       bool
	RateLimitPerMinute int
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Precedence: config/config.json -> defaults -> environment variable overrides
	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Printf("ignoring invalid config/config.json: %v", err)
	}
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	// Overrides may carry zero or unknown values; normalize them once more.
	ApplyDefaults(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

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

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}
	applyJSON(raw, out)
	return nil
}

// applyJSON copies grouped sections ("app", "content", "database", "redis", "log")
// onto out. Keys missing from a section leave the field untouched.
func applyJSON(raw map[string]any, out *AppConfig) {
	getString := func(m map[string]any, key string, dst *string) {
		if v, ok := m[key].(string); ok && v != "" {
			*dst = v
		}
	}
	getInt := func(m map[string]any, key string, dst *int) {
		if v, ok := m[key].(float64); ok {
			*dst = int(v)
		}
	}
	getBool := func(m map[string]any, key string, dst *bool) {
		if v, ok := m[key].(bool); ok {
			*dst = v
		}
	}

	if app, ok := raw["app"].(map[string]any); ok {
		getString(app, "AppPort", &out.AppPort)
		getString(app, "JWTSecret", &out.JWTSecret)
		getString(app, "GinMode", &out.GinMode)
		getString(app, "GinPath", &out.GinPath)
		getString(app, "LoginURL", &out.LoginURL)
		getInt(app, "TokenTTLHours", &out.TokenTTLHours)
		getBool(app, "CookieSecure", &out.CookieSecure)
		getInt(app, "RateLimitPerMinute", &out.RateLimitPerMinute)
		if arr, ok := app["AllowedOrigins"].([]any); ok {
			out.AllowedOrigins = out.AllowedOrigins[:0]
			for _, it := range arr {
				if s, ok := it.(string); ok {
					out.AllowedOrigins = append(out.AllowedOrigins, s)
				}
			}
		}
	}

	if ct, ok := raw["content"].(map[string]any); ok {
		getInt(ct, "PostPerPage", &out.PostPerPage)
		getString(ct, "PagePolicy", &out.PagePolicy)
		getString(ct, "EditDeniedPolicy", &out.EditDeniedPolicy)
		getInt(ct, "IndexCacheSeconds", &out.IndexCacheSeconds)
		getString(ct, "MediaRoot", &out.MediaRoot)
		getInt(ct, "MaxUploadMB", &out.MaxUploadMB)
	}

	if dbs, ok := raw["database"].(map[string]any); ok {
		getString(dbs, "DBDriver", &out.DBDriver)
		getString(dbs, "DatabaseURI", &out.DatabaseURI)
		getString(dbs, "DBHost", &out.DBHost)
		getString(dbs, "DBPort", &out.DBPort)
		getString(dbs, "DBUser", &out.DBUser)
		getString(dbs, "DBPassword", &out.DBPassword)
		getString(dbs, "DBName", &out.DBName)
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		getString(rds, "RedisHost", &out.RedisHost)
		getInt(rds, "RedisPort", &out.RedisPort)
		getInt(rds, "RedisDB", &out.RedisDB)
		getString(rds, "RedisPassword", &out.RedisPassword)
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		getString(lg, "Level", &out.LogLevel)
		getString(lg, "Path", &out.LogPath)
		getInt(lg, "MaxSizeMB", &out.LogMaxSizeMB)
		getInt(lg, "MaxBackups", &out.LogMaxBackups)
		getInt(lg, "MaxAgeDays", &out.LogMaxAgeDays)
		getBool(lg, "Compress", &out.LogCompress)
	}
}

// ApplyDefaults sets sane defaults for zero-value fields.
func ApplyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.DBDriver == "" {
		c.DBDriver = "mysql"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
		if strings.HasPrefix(strings.ToLower(c.DBDriver), "postgres") {
			c.DBPort = "5432"
		}
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "yatube"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.PostPerPage <= 0 {
		c.PostPerPage = 10
	}
	if c.PagePolicy != PageStrict {
		c.PagePolicy = PageClamp
	}
	if c.EditDeniedPolicy != EditDeniedForbidden {
		c.EditDeniedPolicy = EditDeniedRedirect
	}
	if c.IndexCacheSeconds == 0 {
		c.IndexCacheSeconds = 20
	}
	if c.MediaRoot == "" {
		c.MediaRoot = "media"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 5
	}
	if c.LoginURL == "" {
		c.LoginURL = "/auth/login/"
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = 72
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	str := map[string]*string{
		"APP_PORT":           &c.AppPort,
		"JWT_SECRET":         &c.JWTSecret,
		"GIN_MODE":           &c.GinMode,
		"GIN_PATH":           &c.GinPath,
		"DB_DRIVER":          &c.DBDriver,
		"DATABASE_URI":       &c.DatabaseURI,
		"DB_HOST":            &c.DBHost,
		"DB_PORT":            &c.DBPort,
		"DB_USER":            &c.DBUser,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_NAME":            &c.DBName,
		"REDIS_HOST":         &c.RedisHost,
		"REDIS_PASSWORD":     &c.RedisPassword,
		"PAGE_POLICY":        &c.PagePolicy,
		"EDIT_DENIED_POLICY": &c.EditDeniedPolicy,
		"MEDIA_ROOT":         &c.MediaRoot,
		"LOGIN_URL":          &c.LoginURL,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_PATH":           &c.LogPath,
	}
	for key, dst := range str {
		if v := getEnv(key, ""); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_PORT":            &c.RedisPort,
		"REDIS_DB":              &c.RedisDB,
		"POST_PER_PAGE":         &c.PostPerPage,
		"INDEX_CACHE_SECONDS":   &c.IndexCacheSeconds,
		"MAX_UPLOAD_MB":         &c.MaxUploadMB,
		"TOKEN_TTL_HOURS":       &c.TokenTTLHours,
		"RATE_LIMIT_PER_MINUTE": &c.RateLimitPerMinute,
		"LOG_MAX_SIZE_MB":       &c.LogMaxSizeMB,
		"LOG_MAX_BACKUPS":       &c.LogMaxBackups,
		"LOG_MAX_AGE_DAYS":      &c.LogMaxAgeDays,
	}
	for key, dst := range ints {
		if v := getEnv(key, ""); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	bools := map[string]*bool{
		"COOKIE_SECURE": &c.CookieSecure,
		"LOG_COMPRESS":  &c.LogCompress,
	}
	for key, dst := range bools {
		if v := getEnv(key, ""); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}

	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
