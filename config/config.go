// Package config builds datecodec Options from DATECODEC_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/unkn0wn-root/datecodec"
)

const Prefix = "DATECODEC_"

// Config mirrors datecodec.Options in environment-friendly types.
type Config struct {
	Layout       string        `json:"layout"        env:"LAYOUT"        envDefault:"2006-01-02T15:04:05.999999999Z07:00"`
	Layouts      []string      `json:"layouts"       env:"LAYOUTS"       envSeparator:"|"`
	Location     string        `json:"location"      env:"LOCATION"      envDefault:"UTC"`
	Precision    time.Duration `json:"precision"     env:"PRECISION"`
	Strict       bool          `json:"strict"        env:"STRICT"`
	DisableEpoch bool          `json:"disable_epoch" env:"DISABLE_EPOCH"`
	EpochUnit    string        `json:"epoch_unit"    env:"EPOCH_UNIT"    envDefault:"s"`
	MaxInput     int           `json:"max_input"     env:"MAX_INPUT"`
}

// Load reads the environment. Unset LAYOUTS keeps datecodec.DefaultLayouts.
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

var epochUnits = map[string]time.Duration{
	"s":  time.Second,
	"ms": time.Millisecond,
	"us": time.Microsecond,
	"ns": time.Nanosecond,
}

// Options converts c. Logger and Hooks are left for the caller to set.
func (c *Config) Options() (datecodec.Options, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return datecodec.Options{}, fmt.Errorf("config: location %q: %w", c.Location, err)
	}
	unit, ok := epochUnits[strings.ToLower(strings.TrimSpace(c.EpochUnit))]
	if !ok {
		return datecodec.Options{}, fmt.Errorf("config: epoch unit %q (want s, ms, us or ns)", c.EpochUnit)
	}
	return datecodec.Options{
		Layout:       c.Layout,
		Layouts:      c.Layouts,
		Location:     loc,
		Precision:    c.Precision,
		Strict:       c.Strict,
		DisableEpoch: c.DisableEpoch,
		EpochUnit:    unit,
		MaxInput:     c.MaxInput,
	}, nil
}

// NewCodec loads the environment and builds a codec from it.
func NewCodec() (*datecodec.DateCodec, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return datecodec.New(opts)
}
