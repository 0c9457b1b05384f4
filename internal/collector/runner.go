// internal/collector/runner.go
package collector

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one Snapshot per tick on out.
// One goroutine per collector. No overlap.
func (c *Collector) Run(ctx context.Context, out chan<- Snapshot) {
	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := c.CollectOnce()
			if len(snap.Failures) > 0 {
				c.log.Warn("diagnostic collection incomplete",
					"collected", len(snap.Samples), "failed", len(snap.Failures))
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}
}
