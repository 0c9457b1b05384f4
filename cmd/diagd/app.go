// cmd/diagd/app.go
package main

import (
	"fmt"
	"time"

	"fortio.org/safecast"

	"github.com/tamzrod/diag-registry/internal/cloud"
	"github.com/tamzrod/diag-registry/internal/config"
	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/power"
	pmodbus "github.com/tamzrod/diag-registry/internal/power/modbus"
	"github.com/tamzrod/diag-registry/internal/usersrc"
)

// app holds the long-lived registry and the consumers that own its sources.
type app struct {
	cfg      *config.Config
	registry *diag.Registry
	cloud    *cloud.Diagnostics
	power    *power.Diagnostics
	closers  []func() error
}

// loadConfig loads, validates and normalizes the config file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// buildApp constructs the registry and registers every source.
// Registration failures are configuration defects and abort startup.
func buildApp(cfg *config.Config, started time.Time) (*app, error) {
	a := &app{
		cfg:      cfg,
		registry: diag.NewRegistry(cfg.Diagnostics.Capacity),
		cloud:    cloud.NewDiagnostics(),
	}

	var gauge power.FuelGauge
	if g := cfg.Diagnostics.FuelGauge; g != nil {
		reg, err := safecast.Conv[uint16](g.Register)
		if err != nil {
			return nil, fmt.Errorf("fuel_gauge: register: %w", err)
		}
		mg, err := pmodbus.NewGauge(pmodbus.Config{
			Endpoint: g.Endpoint,
			UnitID:   g.UnitID,
			Register: reg,
			Scale:    g.Scale,
			Timeout:  time.Duration(g.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, err
		}
		gauge = mg
		a.closers = append(a.closers, mg.Close)
	}
	a.power = power.NewDiagnostics(gauge)

	if err := a.cloud.Register(a.registry); err != nil {
		a.close()
		return nil, err
	}
	if err := a.power.Register(a.registry); err != nil {
		a.close()
		return nil, err
	}

	srcs, err := usersrc.Build(cfg.Diagnostics.Sources, started)
	if err != nil {
		a.close()
		return nil, err
	}
	for _, s := range srcs {
		if err := a.registry.Register(s); err != nil {
			a.close()
			return nil, fmt.Errorf("application source: %w", err)
		}
	}

	return a, nil
}

func (a *app) close() error {
	var last error
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			last = err
		}
	}
	a.closers = nil
	return last
}
