package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/vigilstack/vigil/core/metrics"
	"github.com/vigilstack/vigil/infra/twilio"
)

type Config struct {
	Server    ServerConfig       `json:"server"`
	Predictor PredictorConfig    `json:"predictor"`
	Alerts    AlertsConfig       `json:"alerts"`
	Location  LocationConfig     `json:"location"`
	Metrics   coremetrics.Config `json:"metrics"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Address     string   `json:"address"`
	CORSOrigins []string `json:"cors_origins"`
}

// PredictorConfig selects the inference backend. An empty URL selects the
// built-in heuristic predictor.
type PredictorConfig struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// AlertsConfig holds SMS delivery settings.
type AlertsConfig struct {
	RateLimitSeconds int           `json:"rate_limit_seconds"`
	Twilio           twilio.Config `json:"twilio"`
}

// LocationConfig holds place-lookup settings. An empty API key selects the
// mock service-center list.
type LocationConfig struct {
	GoogleAPIKey   string `json:"google_api_key"`
	DefaultRadiusM int    `json:"default_radius_m"`
	MaxResults     int    `json:"max_results"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

func (c *PredictorConfig) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

func (c *AlertsConfig) SetDefaults() {
	if c.RateLimitSeconds <= 0 {
		c.RateLimitSeconds = 3600
	}
}

func (c *LocationConfig) SetDefaults() {
	if c.DefaultRadiusM <= 0 {
		c.DefaultRadiusM = 10000
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
}

// Validate checks cross-field constraints.
func (c AlertsConfig) Validate() error {
	tw := c.Twilio
	partial := tw.AccountSID != "" || tw.AuthToken != "" || tw.FromNumber != ""
	if partial && !tw.Configured() {
		return fmt.Errorf("twilio config incomplete: account_sid, auth_token and from_number are all required")
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Predictor.SetDefaults()
	cfg.Alerts.SetDefaults()
	cfg.Location.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Alerts.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
