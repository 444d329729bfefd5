package config

import (
	"main/utils"
	"time"
)

type AppConfig struct {
	Port         string
	Environment  string
	APIKeyPrefix string
	CORSOrigin   string

	RateLimitWindow time.Duration
	RateLimitMax    int

	// Optional shared counter backend for multi-instance deployments
	RedisURL string
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:            utils.GetEnvAsString("PORT", "8080"),
		Environment:     utils.GetEnvAsString("GO_ENV", "development"),
		APIKeyPrefix:    utils.GetEnvAsString("API_KEY_PREFIX", utils.DefaultAPIKeyPrefix),
		CORSOrigin:      utils.GetEnvAsString("CORS_ORIGIN", "*"),
		RateLimitWindow: utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    utils.GetEnvAsInt("RATE_LIMIT_MAX", 100),
		RedisURL:        utils.GetEnvAsString("REDIS_URL", ""),
	}
}

func (c AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
