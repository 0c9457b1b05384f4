// internal/config/normalize.go
package config

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	d := &cfg.Diagnostics

	if d.Capacity == 0 {
		d.Capacity = DefaultCapacity
	}
	if d.CollectIntervalMs == 0 {
		d.CollectIntervalMs = DefaultCollectIntervalMs
	}

	if g := d.FuelGauge; g != nil {
		if g.Scale == 0 {
			g.Scale = DefaultGaugeScale
		}
		if g.TimeoutMs == 0 {
			g.TimeoutMs = DefaultGaugeTimeoutMs
		}
	}
}
