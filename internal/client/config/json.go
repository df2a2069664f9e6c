package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/personadesk/internal/flagx"
	"github.com/dmitrijs2005/personadesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabaseDSN   string         `json:"database_dsn"`
	KVBudget      int64          `json:"kv_budget"`
	ProxyEndpoint string         `json:"proxy_endpoint"`
	ReelTimeout   timex.Duration `json:"reel_timeout"`
}

// parseJson overlays Config with the fields set in the file named by -c or
// -config. Without either flag nothing changes. Read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.KVBudget > 0 {
		cfg.KVBudget = jc.KVBudget
	}
	if jc.ProxyEndpoint != "" {
		cfg.ProxyEndpoint = jc.ProxyEndpoint
	}
	if jc.ReelTimeout.Duration > 0 {
		cfg.ReelTimeout = jc.ReelTimeout.Duration
	}
}
