package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config values from environment variables. Unset
// variables leave the current value untouched. cmd/server loads a .env
// file (godotenv) before this runs.
func parseEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.BaseURL, "BASE_URL")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.AccessTokenValidity, "ACCESS_TOKEN_VALIDITY")
	setDuration(&config.RefreshTokenValidity, "REFRESH_TOKEN_VALIDITY")
	setDuration(&config.EmailTokenValidity, "EMAIL_TOKEN_VALIDITY")
	setString(&config.RedisAddr, "REDIS_ADDR")
	setString(&config.RedisPassword, "REDIS_PASSWORD")
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RedisDB = n
		}
	}
	setString(&config.ResendAPIKey, "RESEND_API_KEY")
	setString(&config.EmailFrom, "EMAIL_FROM")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}
