// internal/power/diagnostics.go
package power

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

// FuelGauge supplies the battery state of charge.
type FuelGauge interface {
	// NormalizedSoC returns the state of charge in percent (0..100).
	NormalizedSoC() (float64, error)
}

// BatteryState is the charger state reported by power management.
type BatteryState uint8

const (
	BatteryUnknown BatteryState = iota
	BatteryNotCharging
	BatteryCharging
	BatteryCharged
	BatteryDischarging
	BatteryFault
	BatteryDisconnected
)

// Source is the active power input.
type Source uint8

const (
	SourceUnknown Source = iota
	SourceVIN
	SourceUSBHost
	SourceUSBAdapter
	SourceUSBOTG
	SourceBattery
)

// Diagnostics exposes the power subsystem to the registry.
// Power management updates state and source; charge is sampled from the
// fuel gauge on every Get.
type Diagnostics struct {
	charge *diagdata.IntegerFunc
	state  *diagdata.Enum[BatteryState]
	source *diagdata.Enum[Source]
}

// NewDiagnostics builds the power sources around gauge.
// A nil gauge makes the charge source report ErrUnsupported.
func NewDiagnostics(gauge FuelGauge) *Diagnostics {
	var get func() (int32, error)
	if gauge != nil {
		get = func() (int32, error) {
			soc, err := gauge.NormalizedSoC()
			if err != nil {
				return 0, fmt.Errorf("fuel gauge: %w", err)
			}
			return ChargeUQ88(soc)
		}
	}

	return &Diagnostics{
		charge: diagdata.NewIntegerFunc(diag.IDBatteryCharge, diag.NameBatteryCharge, get),
		state:  diagdata.NewEnum(diag.IDBatteryState, diag.NameBatteryState, BatteryUnknown),
		source: diagdata.NewEnum(diag.IDPowerSource, diag.NamePowerSource, SourceUnknown),
	}
}

func (d *Diagnostics) Sources() []*diag.Source {
	return []*diag.Source{d.charge.Source(), d.state.Source(), d.source.Source()}
}

// Register adds all power sources to r.
func (d *Diagnostics) Register(r *diag.Registry) error {
	for _, src := range d.Sources() {
		if err := r.Register(src); err != nil {
			return fmt.Errorf("power diagnostics: %w", err)
		}
	}
	return nil
}

func (d *Diagnostics) SetBatteryState(s BatteryState) { d.state.Set(s) }
func (d *Diagnostics) SetPowerSource(s Source) { d.source.Set(s) }
func (d *Diagnostics) BatteryState() BatteryState { return d.state.Get() }
func (d *Diagnostics) PowerSource() Source { return d.source.Get() }

// Charge samples the gauge and returns the encoded value.
func (d *Diagnostics) Charge() (int32, error) { return d.charge.Get() }

// ChargeUQ88 encodes a percentage as unsigned 8.8 fixed point,
// saturating at the representable range.
func ChargeUQ88(soc float64) (int32, error) {
	if math.IsNaN(soc) {
		return 0, fmt.Errorf("%w: state of charge is NaN", diag.ErrInvalidArgument)
	}
	raw := math.Round(soc * 256)
	raw = math.Max(0, math.Min(raw, math.MaxUint16))

	v, err := safecast.Convert[int32](raw)
	if err != nil {
		return 0, fmt.Errorf("%w: state of charge %v: %v", diag.ErrInvalidArgument, soc, err)
	}
	return v, nil
}

// DecodeUQ88 converts an encoded charge back to percent.
func DecodeUQ88(v int32) float64 { return float64(v) / 256 }
