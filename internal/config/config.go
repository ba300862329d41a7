// Package config provides configuration for the fulfillment webhook backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// LLM service
	LLMServiceURL      string
	LLMMode            string
	LLMStaticToken     string
	LLMTimeout         time.Duration
	LLMSummaryTimeout  time.Duration
	LLMBulkConcurrency int

	// Document store
	DocStoreDriver string
	DatabaseURL    string
	ProjectID      string

	// Error reporting is enabled only when ServiceName is set.
	ServiceName     string
	ServiceRevision string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", getEnvInt("PORT", 8080)),
		LLMServiceURL:      getEnv("LLM_SERVICE_URL", ""),
		LLMMode:            getEnv("LLM_MODE", ""),
		LLMStaticToken:     getEnv("LLM_STATIC_TOKEN", ""),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", 5000)) * time.Millisecond,
		LLMSummaryTimeout:  time.Duration(getEnvInt("LLM_SUMMARY_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMBulkConcurrency: getEnvInt("LLM_BULK_CONCURRENCY", 1),
		DocStoreDriver:     getEnv("DOCSTORE_DRIVER", "firestore"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:fulfillment.db?cache=shared&mode=rwc"),
		ProjectID:          getEnv("GOOGLE_CLOUD_PROJECT", ""),
		ServiceName:        getEnv("K_SERVICE", ""),
		ServiceRevision:    getEnv("K_REVISION", ""),
	}
	if cfg.LLMBulkConcurrency < 1 {
		cfg.LLMBulkConcurrency = 1
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
