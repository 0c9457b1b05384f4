// internal/power/modbus/gauge.go
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// registerReader is the part of modbus.Client the gauge uses.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// Config is minimal transport config for a battery-management unit.
type Config struct {
	Endpoint string
	UnitID   uint8
	Register uint16  // holding register carrying state of charge
	Scale    float64 // raw register units per percent
	Timeout  time.Duration
}

// Gauge implements power.FuelGauge over Modbus TCP.
// Requests are serialized; the connection is opened lazily and dropped
// after a transport failure so that a later sample reconnects.
type Gauge struct {
	cfg Config

	mu     sync.Mutex
	client registerReader
	close  func() error

	// dial opens a new client; replaced in tests.
	dial func() (registerReader, func() error, error)
}

// NewGauge validates cfg. No connection is made until the first sample.
func NewGauge(cfg Config) (*Gauge, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("fuel gauge modbus: endpoint required")
	}
	if cfg.Scale <= 0 {
		return nil, errors.New("fuel gauge modbus: scale must be > 0")
	}

	g := &Gauge{cfg: cfg}
	g.dial = g.dialTCP
	return g, nil
}

func (g *Gauge) dialTCP() (registerReader, func() error, error) {
	h := modbus.NewTCPClientHandler(g.cfg.Endpoint)
	h.Timeout = g.cfg.Timeout
	h.SlaveId = g.cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, nil, err
	}
	return modbus.NewClient(h), h.Close, nil
}

// NormalizedSoC reads the state-of-charge register and returns percent,
// clamped to 0..100.
func (g *Gauge) NormalizedSoC() (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		c, closeFn, err := g.dial()
		if err != nil {
			return 0, fmt.Errorf("fuel gauge modbus: connect %s: %w", g.cfg.Endpoint, err)
		}
		g.client, g.close = c, closeFn
	}

	raw, err := g.client.ReadHoldingRegisters(g.cfg.Register, 1)
	if err != nil {
		_ = g.dropLocked()
		return 0, fmt.Errorf("fuel gauge modbus: read register %d: %w", g.cfg.Register, err)
	}
	if len(raw) < 2 {
		return 0, fmt.Errorf("fuel gauge modbus: short payload (%d bytes)", len(raw))
	}

	v := binary.BigEndian.Uint16(raw)

	soc := float64(v) / g.cfg.Scale
	if soc > 100 {
		soc = 100
	}
	return soc, nil
}

// Close releases the connection, if any.
func (g *Gauge) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dropLocked()
}

func (g *Gauge) dropLocked() error {
	closeFn := g.close
	g.client, g.close = nil, nil
	if closeFn == nil {
		return nil
	}
	return closeFn()
}
