package config

import (
	"os"
	"strconv"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// IsProduction gates error-message redaction in 500 responses.
func IsProduction() bool {
	return GetEnv("APP_ENV", "development") == "production"
}

// TokenKey signs access tokens; RefreshKey signs refresh tokens.
func TokenKey() []byte   { return []byte(GetEnv("TOKEN_KEY", "ambasphere-dev-token-key")) }
func RefreshKey() []byte { return []byte(GetEnv("REFRESH_KEY", "ambasphere-dev-refresh-key")) }
