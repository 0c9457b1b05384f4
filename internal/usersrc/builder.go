// internal/usersrc/builder.go
package usersrc

import (
	"fmt"
	"runtime"
	"time"

	"fortio.org/safecast"

	cfg "github.com/tamzrod/diag-registry/internal/config"
	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

// Build constructs the application sources declared in config.
// Assumes config has already passed validation.
func Build(srcs []cfg.SourceConfig, started time.Time) ([]*diag.Source, error) {
	out := make([]*diag.Source, 0, len(srcs))

	for _, s := range srcs {
		id, err := safecast.Conv[uint16](s.ID)
		if err != nil {
			return nil, fmt.Errorf("source %q: id %d: %w", s.Name, s.ID, err)
		}

		src, err := build(diag.ID(id), s, started)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}

	return out, nil
}

func build(id diag.ID, s cfg.SourceConfig, started time.Time) (*diag.Source, error) {
	switch s.Kind {
	case cfg.KindCounter:
		return diagdata.NewInteger(id, s.Name, s.Initial).Source(), nil
	case cfg.KindFreeMemory:
		return diagdata.NewIntegerFunc(id, s.Name, freeMemory).Source(), nil
	case cfg.KindGoroutines:
		return diagdata.NewIntegerFunc(id, s.Name, goroutines).Source(), nil
	case cfg.KindUptime:
		return diagdata.NewIntegerFunc(id, s.Name, func() (int32, error) {
			return toInt(int64(time.Since(started) / time.Second))
		}).Source(), nil
	default:
		return nil, fmt.Errorf("source %d (%s): %w: kind %q", id, s.Name, diag.ErrUnsupported, s.Kind)
	}
}

// freeMemory reports heap bytes obtained from the OS but not in use.
func freeMemory() (int32, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return toInt(ms.HeapIdle - ms.HeapReleased)
}

func goroutines() (int32, error) {
	return toInt(runtime.NumGoroutine())
}

func toInt[T int | int64 | uint64](v T) (int32, error) {
	n, err := safecast.Conv[int32](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", diag.ErrInvalidArgument, err)
	}
	return n, nil
}
