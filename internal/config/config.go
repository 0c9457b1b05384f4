// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

type DiagnosticsConfig struct {
	// Capacity bounds the registry; 0 selects DefaultCapacity.
	Capacity          int              `yaml:"capacity"`
	CollectIntervalMs int              `yaml:"collect_interval_ms"`
	FuelGauge         *FuelGaugeConfig `yaml:"fuel_gauge"`
	Sources           []SourceConfig   `yaml:"sources"`
}

// ---- FUEL GAUGE (optional) ----

type FuelGaugeConfig struct {
	Endpoint  string  `yaml:"endpoint"`
	UnitID    uint8   `yaml:"unit_id"`
	Register  int     `yaml:"register"`
	Scale     float64 `yaml:"scale"` // raw units per percent
	TimeoutMs int     `yaml:"timeout_ms"`
}

// ---- APPLICATION SOURCES ----

type SourceConfig struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Initial int32  `yaml:"initial"` // counter only
}

// Source kinds.
const (
	KindFreeMemory = "free_memory"
	KindGoroutines = "goroutines"
	KindUptime     = "uptime"
	KindCounter    = "counter"
)

// Defaults applied by Normalize.
const (
	DefaultCapacity          = 64
	DefaultCollectIntervalMs = 1000
	DefaultGaugeScale        = 10
	DefaultGaugeTimeoutMs    = 1000
)

// Load reads a YAML config file. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes a YAML document.
func Parse(raw []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
