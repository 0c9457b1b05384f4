// internal/power/diagnostics_test.go
package power

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

type fakeGauge struct {
	soc float64
	err error
}

func (f *fakeGauge) NormalizedSoC() (float64, error) { return f.soc, f.err }

func TestChargeUQ88(t *testing.T) {
	cases := []struct {
		soc  float64
		want int32
	}{
		{0, 0},
		{50, 50 * 256},
		{87.5, 22400},
		{100, 25600},
		{-3, 0},
		{1000, math.MaxUint16},
		{255.999, math.MaxUint16},
		{-0.4, 0},
		{math.Inf(1), math.MaxUint16},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		got, err := ChargeUQ88(c.soc)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "soc=%v", c.soc)
	}

	_, err := ChargeUQ88(math.NaN())
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	assert.InDelta(t, 87.5, DecodeUQ88(22400), 1e-9)
}

func TestDiagnostics_ChargeThroughRegistry(t *testing.T) {
	g := &fakeGauge{soc: 42.25}
	d := NewDiagnostics(g)
	r := diag.NewRegistry(8)
	require.NoError(t, d.Register(r))
	assert.Equal(t, 3, r.Len())

	get := &diag.Get{Buf: make([]byte, diag.IntSize)}
	require.NoError(t, r.Dispatch(diag.IDBatteryCharge, get))
	n, err := diagdata.DecodeInt(get.Buf)
	require.NoError(t, err)
	assert.InDelta(t, 42.25, DecodeUQ88(n), 1.0/256)

	// reset, enable and disable are accepted and leave the sample alone
	assert.NoError(t, r.Dispatch(diag.IDBatteryCharge, diag.Reset{}))
	assert.NoError(t, r.Dispatch(diag.IDBatteryCharge, diag.Disable{}))

	v, err := d.Charge()
	require.NoError(t, err)
	assert.InDelta(t, 42.25, DecodeUQ88(v), 1.0/256)
}

func TestDiagnostics_GaugeFailureSurfaces(t *testing.T) {
	boom := errors.New("no gauge response")
	d := NewDiagnostics(&fakeGauge{err: boom})

	_, err := d.Charge()
	assert.ErrorIs(t, err, boom)
}

func TestDiagnostics_NoGauge(t *testing.T) {
	d := NewDiagnostics(nil)
	_, err := d.Charge()
	assert.ErrorIs(t, err, diag.ErrUnsupported)
}

func TestDiagnostics_StateAndSource(t *testing.T) {
	d := NewDiagnostics(nil)
	assert.Equal(t, BatteryUnknown, d.BatteryState())
	assert.Equal(t, SourceUnknown, d.PowerSource())

	d.SetBatteryState(BatteryCharging)
	d.SetPowerSource(SourceUSBAdapter)

	r := diag.NewRegistry(0)
	require.NoError(t, d.Register(r))

	get := &diag.Get{Buf: make([]byte, 4)}
	require.NoError(t, r.Dispatch(diag.IDPowerSource, get))
	n, err := diagdata.DecodeInt(get.Buf)
	require.NoError(t, err)
	assert.Equal(t, int32(SourceUSBAdapter), n)

	require.NoError(t, r.Broadcast(diag.Reset{}))
	assert.Equal(t, BatteryUnknown, d.BatteryState())
	assert.Equal(t, SourceUnknown, d.PowerSource())
}
