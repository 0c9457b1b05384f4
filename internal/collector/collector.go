// internal/collector/collector.go
package collector

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

// Config is the minimal runtime config the collector needs.
type Config struct {
	Interval time.Duration
}

// Collector periodically reads every registered source.
// A failing source is logged and skipped; it never aborts the cycle.
type Collector struct {
	cfg Config
	reg *diag.Registry
	log *slog.Logger

	buf [diag.IntSize]byte
}

// New creates a collector over reg.
func New(cfg Config, reg *diag.Registry, log *slog.Logger) (*Collector, error) {
	if reg == nil {
		return nil, errors.New("collector: registry required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("collector: interval must be > 0")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Collector{cfg: cfg, reg: reg, log: log}, nil
}

// CollectOnce performs exactly one collection cycle.
// It must not run concurrently with itself on the same Collector.
func (c *Collector) CollectOnce() Snapshot {
	snap := Snapshot{
		At:      time.Now(),
		Samples: make([]Sample, 0, c.reg.Len()),
	}

	c.reg.Enumerate(func(src *diag.Source) {
		v, err := c.read(src)
		if err != nil {
			c.log.Debug("diagnostic source skipped",
				"id", src.ID, "name", src.Name, "error", err)
			snap.Failures = append(snap.Failures, Failure{ID: src.ID, Name: src.Name, Err: err})
			return
		}
		snap.Samples = append(snap.Samples, Sample{ID: src.ID, Name: src.Name, Value: v})
	})

	return snap
}

func (c *Collector) read(src *diag.Source) (int32, error) {
	if src.Type != diag.TypeInt {
		return 0, fmt.Errorf("%w: type %d", diag.ErrUnsupported, src.Type)
	}

	get := &diag.Get{Buf: c.buf[:]}
	if err := src.Handler.Command(src, get); err != nil {
		return 0, err
	}
	return diagdata.DecodeInt(get.Buf[:get.N])
}
