// cmd/diagd/run.go
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/diag-registry/internal/collector"
)

var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Register all sources and collect them periodically",
	Args:  cobra.ExactArgs(1),
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	a, err := buildApp(cfg, time.Now())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Warn("close failed", "error", err)
		}
	}()

	log.Info("diagnostic registry ready",
		"sources", a.registry.Len(), "capacity", a.registry.Capacity())

	col, err := collector.New(collector.Config{
		Interval: time.Duration(cfg.Diagnostics.CollectIntervalMs) * time.Millisecond,
	}, a.registry, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := make(chan collector.Snapshot)
	g, gctx := errgroup.WithContext(ctx)

	// producer
	g.Go(func() error {
		col.Run(gctx, out)
		return nil
	})

	// consumer
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap := <-out:
				logSnapshot(log, snap)
			}
		}
	})

	err = g.Wait()
	log.Info("diagnostic registry stopped")
	return err
}

func logSnapshot(log *slog.Logger, snap collector.Snapshot) {
	attrs := make([]any, 0, 2*len(snap.Samples))
	for _, s := range snap.Samples {
		attrs = append(attrs, s.Name, s.Value)
	}
	log.Info("diagnostics", attrs...)

	for _, f := range snap.Failures {
		log.Debug("diagnostic source failed", "id", f.ID, "name", f.Name, "error", f.Err)
	}
}
