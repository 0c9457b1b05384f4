// internal/cloud/diagnostics.go
package cloud

import (
	"fmt"

	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

// Status is the cloud connection state.
// Odd values encode transitional states.
type Status int32

const (
	Disconnected  Status = 0
	Connecting    Status = 1
	Connected     Status = 2
	Disconnecting Status = 3
)

// IsTransitional reports whether s is an in-progress change.
func (s Status) IsTransitional() bool { return s&1 == 1 }

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// DisconnectReason records why the connection was last closed.
type DisconnectReason int32

const (
	ReasonNone              DisconnectReason = 0
	ReasonError             DisconnectReason = 1
	ReasonUser              DisconnectReason = 2
	ReasonNetworkDisconnect DisconnectReason = 3
	ReasonListening         DisconnectReason = 4
)

// Diagnostics records the cloud connection lifecycle.
//
// It is a passive recorder: transitions are not validated, the connection
// manager owns the state machine. Each field is updated atomically, but
// there is no ordering across fields; a reader may observe a new
// disconnect count next to an old status.
type Diagnostics struct {
	status        *diagdata.Enum[Status]
	disconnReason *diagdata.Enum[DisconnectReason]
	disconnCount  *diagdata.Integer
	connCount     *diagdata.Integer
	lastError     *diagdata.Integer
}

// NewDiagnostics creates a tracker in the Disconnected state.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		status:        diagdata.NewEnum(diag.IDCloudConnectionStatus, diag.NameCloudConnectionStatus, Disconnected),
		disconnReason: diagdata.NewEnum(diag.IDCloudDisconnectionReason, diag.NameCloudDisconnectionReason, ReasonNone),
		disconnCount:  diagdata.NewCounter(diag.IDCloudDisconnects, diag.NameCloudDisconnects),
		connCount:     diagdata.NewCounter(diag.IDCloudConnectionAttempts, diag.NameCloudConnectionAttempts),
		lastError:     diagdata.NewInteger(diag.IDCloudConnectionError, diag.NameCloudConnectionError, 0),
	}
}

// Sources returns the descriptors in registration order.
func (d *Diagnostics) Sources() []*diag.Source {
	return []*diag.Source{
		d.status.Source(),
		d.disconnReason.Source(),
		d.disconnCount.Source(),
		d.connCount.Source(),
		d.lastError.Source(),
	}
}

// Register adds all cloud sources to r.
// A failure means a duplicate or over-capacity table and should be treated
// as a fatal configuration error.
func (d *Diagnostics) Register(r *diag.Registry) error {
	for _, src := range d.Sources() {
		if err := r.Register(src); err != nil {
			return fmt.Errorf("cloud diagnostics: %w", err)
		}
	}
	return nil
}

func (d *Diagnostics) SetStatus(s Status) *Diagnostics {
	d.status.Set(s)
	return d
}

// ConnectionAttempt counts one attempt. It does not change the status.
func (d *Diagnostics) ConnectionAttempt() *Diagnostics {
	d.connCount.Inc()
	return d
}

// ResetConnectionAttempts zeroes the attempt counter, typically after a
// successful connection. It applies even while the source is disabled.
func (d *Diagnostics) ResetConnectionAttempts() *Diagnostics {
	d.connCount.Reset()
	return d
}

func (d *Diagnostics) DisconnectionReason(r DisconnectReason) *Diagnostics {
	d.disconnReason.Set(r)
	return d
}

// DisconnectedUnexpectedly counts one unexpected disconnect.
func (d *Diagnostics) DisconnectedUnexpectedly() *Diagnostics {
	d.disconnCount.Inc()
	return d
}

func (d *Diagnostics) LastError(code int32) *Diagnostics {
	d.lastError.Set(code)
	return d
}

func (d *Diagnostics) Status() Status { return d.status.Get() }
func (d *Diagnostics) Reason() DisconnectReason { return d.disconnReason.Get() }
func (d *Diagnostics) ConnectionAttempts() int32 { return d.connCount.Get() }
func (d *Diagnostics) UnexpectedDisconnects() int32 { return d.disconnCount.Get() }
func (d *Diagnostics) LastErrorCode() int32 { return d.lastError.Get() }
