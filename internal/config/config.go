package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// SitesFile overrides the embedded launch site registry when set.
	SitesFile string `env:"SITES_FILE"`

	// Meteomatics weather API credentials and endpoint.
	MeteomaticsBaseURL  string        `env:"METEOMATICS_BASE_URL" envDefault:"https://api.meteomatics.com"`
	MeteomaticsUsername string        `env:"METEOMATICS_USERNAME"`
	MeteomaticsPassword string        `env:"METEOMATICS_PASSWORD"`
	MeteomaticsTimeout  time.Duration `env:"METEOMATICS_TIMEOUT" envDefault:"10s"`

	// NOAA SWPC space weather feeds (public, no credentials).
	SWPCBaseURL string        `env:"SWPC_BASE_URL" envDefault:"https://services.swpc.noaa.gov"`
	SWPCTimeout time.Duration `env:"SWPC_TIMEOUT" envDefault:"10s"`

	// Space-Track conjunction data credentials and endpoint.
	SpaceTrackBaseURL  string        `env:"SPACETRACK_BASE_URL" envDefault:"https://www.space-track.org"`
	SpaceTrackUsername string        `env:"SPACETRACK_USERNAME"`
	SpaceTrackPassword string        `env:"SPACETRACK_PASSWORD"`
	SpaceTrackTimeout  time.Duration `env:"SPACETRACK_TIMEOUT" envDefault:"15s"`

	// Optional Kafka publisher for completed decisions.
	KafkaEnabled       bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaDecisionTopic string   `env:"KAFKA_DECISION_TOPIC" envDefault:"launch-decisions"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	for name, d := range map[string]time.Duration{
		"METEOMATICS_TIMEOUT": cfg.MeteomaticsTimeout,
		"SWPC_TIMEOUT":        cfg.SWPCTimeout,
		"SPACETRACK_TIMEOUT":  cfg.SpaceTrackTimeout,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive", name)
		}
	}

	if cfg.MeteomaticsUsername == "" || cfg.MeteomaticsPassword == "" {
		return nil, errors.New("METEOMATICS_USERNAME and METEOMATICS_PASSWORD are required")
	}
	if cfg.SpaceTrackUsername == "" || cfg.SpaceTrackPassword == "" {
		return nil, errors.New("SPACETRACK_USERNAME and SPACETRACK_PASSWORD are required")
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaDecisionTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_DECISION_TOPIC is empty")
		}
	}

	return cfg, nil
}
