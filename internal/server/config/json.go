package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/personadesk/internal/flagx"
	"github.com/dmitrijs2005/personadesk/internal/timex"
)

// JsonConfig is the on-disk shape of the proxy configuration. Durations
// accept "5s" style strings or integer nanoseconds.
type JsonConfig struct {
	Port             string         `json:"port"`
	Model            string         `json:"model"`
	ProviderEndpoint string         `json:"provider_endpoint"`
	PollInterval     timex.Duration `json:"poll_interval"`
	PollMaxAttempts  int            `json:"poll_max_attempts"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c or -config into config. Fields
// absent from the file keep their current values. A missing flag loads
// nothing; unreadable or invalid files panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err = json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Port != "" {
		config.Port = c.Port
	}
	if c.Model != "" {
		config.Model = c.Model
	}
	if c.ProviderEndpoint != "" {
		config.ProviderEndpoint = c.ProviderEndpoint
	}
	if c.PollInterval.Duration > 0 {
		config.PollInterval = c.PollInterval.Duration
	}
	if c.PollMaxAttempts > 0 {
		config.PollMaxAttempts = c.PollMaxAttempts
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
