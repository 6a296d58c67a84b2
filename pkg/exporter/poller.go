// Copyright (c) 2025, restic-exporter authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/resticlabs/restic-exporter/pkg/restic"
	"github.com/resticlabs/restic-exporter/pkg/snapshot"
)

// Poller drives the polling cycle: list snapshots, parse, publish.
// It is the sole writer to the metrics; the HTTP server reads concurrently
// through the registry's own synchronization.
type Poller struct {
	// Lister produces the raw snapshot table text.
	Lister restic.Lister

	// Metrics receives the parsed records each cycle.
	Metrics *Metrics

	// Interval is the fixed sleep between cycles. Ignored when Schedule
	// is set.
	Interval time.Duration

	// Schedule is an optional cron expression driving the cycle cadence.
	Schedule string

	// ContinueOnError skips a failed cycle instead of returning the error.
	// The default (false) preserves the blunt fatal-on-failure policy: a
	// restic failure terminates the exporter.
	ContinueOnError bool
}

// Run executes polling cycles until the context is canceled. One cycle runs
// immediately on start so the endpoint is populated before the first tick.
// A cycle failure is returned (and ends the loop) unless ContinueOnError is
// set. Context cancellation is a graceful stop, not an error.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.runCycle(ctx); err != nil {
		return err
	}

	if p.Schedule != "" {
		return p.runCron(ctx)
	}
	return p.runTicker(ctx)
}

// runTicker re-runs the cycle on the fixed interval.
func (p *Poller) runTicker(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.runCycle(ctx); err != nil {
				return err
			}
		}
	}
}

// runCron re-runs the cycle on the configured cron schedule. Ticks that
// arrive while a cycle is still running are skipped: the poller must remain
// the registry's only writer, and a restic call carries no timeout, so an
// overlapping tick would otherwise stack concurrent cycles without bound.
func (p *Poller) runCron(ctx context.Context) error {
	errCh := make(chan error, 1)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(p.Schedule, func() {
		if err := p.runCycle(ctx); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", p.Schedule, err)
	}

	c.Start()
	defer c.Stop()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// runCycle executes one list -> parse -> publish pass and applies the
// error policy.
func (p *Poller) runCycle(ctx context.Context) error {
	if err := p.cycle(ctx); err != nil {
		if p.ContinueOnError && ctx.Err() == nil {
			slog.Error("snapshot cycle failed, retrying at next tick", "error", err)
			return nil
		}
		return err
	}
	return nil
}

// cycle performs a single polling cycle. No state carries over between
// cycles except the registry itself.
func (p *Poller) cycle(ctx context.Context) error {
	start := time.Now()

	out, err := p.Lister.Snapshots(ctx)
	if err != nil {
		return err
	}

	records := snapshot.Parse(out)
	p.Metrics.Publish(records)

	slog.Debug("snapshot cycle complete",
		"snapshots", len(records),
		"duration", time.Since(start).String())
	return nil
}
