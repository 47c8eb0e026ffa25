package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the calculator service configuration, read from the environment.
type Config struct {
	Addr            string        `env:"CALCULATOR_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"CALCULATOR_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// MaxSessions caps open chaining sessions.
	MaxSessions int `env:"CALCULATOR_MAX_SESSIONS" envDefault:"1024"`

	// ExtraOperations names optional operations to register at start-up,
	// e.g. "power,modulo".
	ExtraOperations []string `env:"CALCULATOR_EXTRA_OPERATIONS" envSeparator:","`

	LogLevel  string `env:"CALCULATOR_LOG_LEVEL" envDefault:"info"`
	Telemetry bool   `env:"CALCULATOR_TELEMETRY" envDefault:"true"`
	OTLPLogs  bool   `env:"CALCULATOR_OTLP_LOGS" envDefault:"false"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
