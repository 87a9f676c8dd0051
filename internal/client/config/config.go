package config

import "time"

// Config holds runtime settings for the todosync CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - CacheDSN: path of the local SQLite file holding cached credentials.
//   - RequestTimeout: deadline applied to each remote call.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - Verbose: log at debug level.
type Config struct {
	ServerEndpointAddr  string
	CacheDSN            string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	Verbose             bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CacheDSN = "todosync.db"
	c.RequestTimeout = 5 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.Verbose = false
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
