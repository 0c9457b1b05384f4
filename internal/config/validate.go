// internal/config/validate.go
package config

import (
	"fmt"
	"math"

	"github.com/tamzrod/diag-registry/internal/diag"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	d := cfg.Diagnostics

	if d.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", d.Capacity)
	}
	if d.CollectIntervalMs < 0 {
		return fmt.Errorf("collect_interval_ms must be >= 0, got %d", d.CollectIntervalMs)
	}

	// ------------------------------------------------------------
	// FUEL GAUGE (OPT-IN)
	// ------------------------------------------------------------

	if g := d.FuelGauge; g != nil {
		if g.Endpoint == "" {
			return fmt.Errorf("fuel_gauge: endpoint required")
		}
		if g.Register < 0 || g.Register > math.MaxUint16 {
			return fmt.Errorf("fuel_gauge: register %d out of range", g.Register)
		}
		if g.Scale < 0 {
			return fmt.Errorf("fuel_gauge: scale must not be negative, got %v", g.Scale)
		}
		if g.TimeoutMs < 0 {
			return fmt.Errorf("fuel_gauge: timeout_ms must be >= 0, got %d", g.TimeoutMs)
		}
	}

	// ------------------------------------------------------------
	// APPLICATION SOURCES
	// ------------------------------------------------------------

	owner := make(map[int]string)

	for _, s := range d.Sources {
		if s.ID < int(diag.UserIDBase) || s.ID > math.MaxUint16 {
			return fmt.Errorf(
				"source %q: id %d outside application range %d-%d",
				s.Name, s.ID, diag.UserIDBase, math.MaxUint16,
			)
		}
		if s.Name == "" {
			return fmt.Errorf("source %d: name required", s.ID)
		}
		for i := 0; i < len(s.Name); i++ {
			if s.Name[i] < 0x20 || s.Name[i] > 0x7E {
				return fmt.Errorf("source %d: name must contain printable ASCII characters only", s.ID)
			}
		}

		switch s.Kind {
		case KindFreeMemory, KindGoroutines, KindUptime, KindCounter:
		default:
			return fmt.Errorf("source %d (%s): unknown kind %q", s.ID, s.Name, s.Kind)
		}
		if s.Initial != 0 && s.Kind != KindCounter {
			return fmt.Errorf("source %d (%s): initial is only valid for kind %q", s.ID, s.Name, KindCounter)
		}

		if prev, exists := owner[s.ID]; exists {
			return fmt.Errorf("source id collision: id=%d used by %q and %q", s.ID, prev, s.Name)
		}
		owner[s.ID] = s.Name
	}

	if d.Capacity > 0 && len(d.Sources) > d.Capacity {
		return fmt.Errorf("capacity %d smaller than %d configured sources", d.Capacity, len(d.Sources))
	}

	return nil
}
