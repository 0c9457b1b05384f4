// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to build a source quickly
func source(id int, name, kind string) SourceConfig {
	return SourceConfig{ID: id, Name: name, Kind: kind}
}

func withSources(srcs ...SourceConfig) *Config {
	return &Config{Diagnostics: DiagnosticsConfig{Sources: srcs}}
}

// ---- tests ----

func TestValidate_DistinctUserSources(t *testing.T) {
	cfg := withSources(
		source(2000, "free_memory", KindFreeMemory),
		source(2001, "goroutines", KindGoroutines),
		source(1024, "uptime", KindUptime),
	)
	assert.NoError(t, Validate(cfg))
}

func TestValidate_DuplicateIDRejected(t *testing.T) {
	cfg := withSources(
		source(2000, "a", KindCounter),
		source(2000, "b", KindCounter),
	)
	assert.ErrorContains(t, Validate(cfg), "collision")
}

func TestValidate_SystemRangeRejected(t *testing.T) {
	for _, id := range []int{0, 1, 1023, 70000} {
		err := Validate(withSources(source(id, "x", KindCounter)))
		assert.Error(t, err, "id=%d", id)
	}
}

func TestValidate_SourceFields(t *testing.T) {
	assert.Error(t, Validate(withSources(source(2000, "", KindCounter))))
	assert.Error(t, Validate(withSources(source(2000, "bad\tname", KindCounter))))
	assert.Error(t, Validate(withSources(source(2000, "x", "disk_free"))))

	withInit := source(2000, "x", KindUptime)
	withInit.Initial = 5
	assert.Error(t, Validate(withSources(withInit)))
}

func TestValidate_CapacityTooSmall(t *testing.T) {
	cfg := withSources(source(2000, "a", KindCounter), source(2001, "b", KindCounter))
	cfg.Diagnostics.Capacity = 1
	assert.Error(t, Validate(cfg))
}

func TestValidate_FuelGauge(t *testing.T) {
	cfg := withSources()
	cfg.Diagnostics.FuelGauge = &FuelGaugeConfig{Endpoint: "bms:502", Register: 30}
	assert.NoError(t, Validate(cfg))

	cfg.Diagnostics.FuelGauge.Register = 70000
	assert.Error(t, Validate(cfg))

	cfg.Diagnostics.FuelGauge = &FuelGaugeConfig{Register: 30}
	assert.Error(t, Validate(cfg))
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := withSources()
	cfg.Diagnostics.FuelGauge = &FuelGaugeConfig{Endpoint: "bms:502"}
	require.NoError(t, Validate(cfg))

	Normalize(cfg)

	assert.Equal(t, DefaultCapacity, cfg.Diagnostics.Capacity)
	assert.Equal(t, DefaultCollectIntervalMs, cfg.Diagnostics.CollectIntervalMs)
	assert.Equal(t, float64(DefaultGaugeScale), cfg.Diagnostics.FuelGauge.Scale)
	assert.Equal(t, DefaultGaugeTimeoutMs, cfg.Diagnostics.FuelGauge.TimeoutMs)
}

func TestLoad(t *testing.T) {
	doc := `
diagnostics:
  capacity: 32
  collect_interval_ms: 500
  fuel_gauge:
    endpoint: "10.0.0.5:502"
    unit_id: 2
    register: 30
  sources:
    - id: 2000
      name: free_memory
      kind: free_memory
    - id: 2001
      name: restarts
      kind: counter
      initial: 1
`
	path := filepath.Join(t.TempDir(), "diag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	d := cfg.Diagnostics
	assert.Equal(t, 32, d.Capacity)
	assert.Equal(t, 500, d.CollectIntervalMs)
	require.NotNil(t, d.FuelGauge)
	assert.Equal(t, uint8(2), d.FuelGauge.UnitID)
	require.Len(t, d.Sources, 2)
	assert.Equal(t, int32(1), d.Sources[1].Initial)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("diagnostics:\n  capacity: 1\n  bogus: true\n"))
	assert.Error(t, err)
}
