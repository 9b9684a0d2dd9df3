package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For cache TTL durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort                  string        // Application port
	DBUser                   string        // Database user
	DBPassword               string        // Database password
	DBHost                   string        // Database host
	DBPort                   string        // Database port
	DBName                   string        // Database name
	RedisAddr                string        // Redis server address, empty disables the account cache
	RedisPass                string        // Redis password
	RedisDB                  int           // Redis database number
	IsProd                   bool          // Is production environment
	LogLevel                 string        // Logrus level name
	BCryptCost               int           // Cost factor for password and PIN digests
	AccountNumberMaxAttempts int           // Cap on account number generation attempts
	AccountCacheTTL          time.Duration // Lifetime of cached account lists
	AllowedOrigins           []string      // CORS origins, "*" allows any
	TrustedProxies           []string      // Proxies gin trusts for client IPs
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:                  getEnv("APP_PORT", "8080"),                           // Application port
		DBUser:                   os.Getenv("DB_USER"),                                 // Database user
		DBPassword:               os.Getenv("DB_PASSWORD"),                             // Database password
		DBHost:                   getEnv("DB_HOST", "127.0.0.1"),                       // Database host
		DBPort:                   getEnv("DB_PORT", "3306"),                            // Database port
		DBName:                   os.Getenv("DB_NAME"),                                 // Database name
		RedisAddr:                os.Getenv("REDIS_ADDR"),                              // Redis server address
		RedisPass:                os.Getenv("REDIS_PASS"),                              // Redis password
		RedisDB:                  getEnvInt("REDIS_DB", 0),                             // Redis database number
		IsProd:                   os.Getenv("IS_PROD") == "true",                       // Is production environment
		LogLevel:                 getEnv("LOG_LEVEL", "info"),                          // Log level
		BCryptCost:               getEnvInt("BCRYPT_COST", 10),                         // bcrypt cost
		AccountNumberMaxAttempts: getEnvInt("ACCOUNT_NUMBER_MAX_ATTEMPTS", 200),        // Allocation cap
		AccountCacheTTL:          getEnvDuration("ACCOUNT_CACHE_TTL", 60*time.Second),  // Cache lifetime
		AllowedOrigins:           getEnvList("ALLOWED_ORIGINS", []string{"*"}),         // CORS origins
		TrustedProxies:           getEnvList("TRUSTED_PROXIES", []string{"127.0.0.1"}), // Trusted proxies
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or def when it is unset or empty
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an integer variable, falling back to def on absence or garbage
func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration parses a Go duration such as "90s"
func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
