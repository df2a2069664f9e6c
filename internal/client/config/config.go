package config

import "time"

// Config holds runtime settings for the planner CLI.
//
// Fields:
//   - DatabaseDSN: SQLite file holding both storage tiers.
//   - KVBudget: byte budget of the key-value tier.
//   - ProxyEndpoint: base URL of the reel proxy.
//   - ReelTimeout: upper bound for one reel request.
type Config struct {
	DatabaseDSN   string
	KVBudget      int64
	ProxyEndpoint string
	ReelTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "personadesk.db"
	c.KVBudget = 5 << 20
	c.ProxyEndpoint = "http://127.0.0.1:8080"
	c.ReelTimeout = 10 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
