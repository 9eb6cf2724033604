package jobsim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/viant/jobsim/service/balancer"
	"github.com/viant/jobsim/service/meta"
)

// Config is a serialisable representation of a simulation run.  It can be
// populated from YAML or JSON; the zero value of nested sections inherits
// package defaults via DefaultConfig.
type Config struct {
	Workers   int             `json:"workers" yaml:"workers"`
	Arrival   ArrivalConfig   `json:"arrival" yaml:"arrival"`
	Simulator SimulatorConfig `json:"simulator" yaml:"simulator"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
}

type ArrivalConfig struct {
	// Validate rejects jobs arriving earlier than the previously assigned one.
	Validate bool `json:"validate" yaml:"validate"`
}

type SimulatorConfig struct {
	Parallel bool `json:"parallel" yaml:"parallel"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with package defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers: 1,
		Arrival: ArrivalConfig{Validate: true},
		Log:     LogConfig{Level: logrus.InfoLevel.String()},
		Tracing: TracingConfig{Service: "jobsim", Version: "0.1.0"},
	}
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", balancer.ErrInvalidWorkerCount, c.Workers)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log.level: %w", err)
		}
	}
	return nil
}

// LoadConfig reads a YAML or JSON config document on top of DefaultConfig.
// ${env.KEY} references are expanded before decoding.
func LoadConfig(ctx context.Context, metaService *meta.Service, location string) (*Config, error) {
	if metaService == nil {
		metaService = meta.New(nil, "")
	}
	ret := DefaultConfig()
	if err := metaService.Load(ctx, location, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", location, err)
	}
	return ret, nil
}
