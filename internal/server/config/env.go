package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with process environment variables. A .env file
// in the working directory is loaded first when it exists; variables
// already set in the environment take precedence over it.
//
//	PORT, API_KEY, VEO_MODEL, VEO_ENDPOINT,
//	POLL_INTERVAL ("5s"), POLL_MAX_ATTEMPTS,
//	S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY
//
// Malformed numeric or duration values panic.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	strs := map[string]*string{
		"PORT":          &cfg.Port,
		"API_KEY":       &cfg.APIKey,
		"VEO_MODEL":     &cfg.Model,
		"VEO_ENDPOINT":  &cfg.ProviderEndpoint,
		"S3_BUCKET":     &cfg.S3Bucket,
		"S3_REGION":     &cfg.S3Region,
		"S3_ENDPOINT":   &cfg.S3BaseEndpoint,
		"S3_ACCESS_KEY": &cfg.S3AccessKey,
		"S3_SECRET_KEY": &cfg.S3SecretKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("POLL_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("POLL_INTERVAL: %w", err))
		}
		cfg.PollInterval = d
	}

	if v, ok := os.LookupEnv("POLL_MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("POLL_MAX_ATTEMPTS: %w", err))
		}
		cfg.PollMaxAttempts = n
	}
}
