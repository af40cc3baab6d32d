/*
 * Copyright 2026 Camrig Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/session"
)

const stopGraceTimeout = 30 * time.Second

// RunOptions shapes one capture run.
type RunOptions struct {
	// Hold is the recording duration. Zero means record until Trigger
	// fires or ctx is canceled.
	Hold time.Duration

	// Trigger ends the take when it delivers or closes. Usually wired to
	// an operator keypress. May be nil.
	Trigger <-chan struct{}
}

// RunReport is the outcome of one start/stop capture run.
type RunReport struct {
	RunID        string
	StartResults []models.CommandResult
	StopResults  []models.CommandResult
	StartedAt    time.Time
	StoppedAt    time.Time
}

// Run performs one capture: start fan-out, wait for the hold duration or
// the stop trigger, stop fan-out. The stop dispatch is unconditional — a
// canceled context skips the wait, never the stop. The caller tears the
// sessions down afterwards; Run only borrows them.
func (d *Dispatcher) Run(ctx context.Context, sessions []*session.Session, opts RunOptions) *RunReport {
	report := &RunReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	d.logger.Info().Str("run_id", report.RunID).Int("sessions", len(sessions)).Msg("Starting capture")

	report.StartResults = d.Dispatch(ctx, sessions, models.Command{Kind: models.CommandStartCapture})

	d.wait(ctx, opts)

	// The stop must go out even when ctx was canceled mid-hold: a camera
	// is never left recording because this process was interrupted.
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopGraceTimeout)
	defer cancel()

	report.StopResults = d.Dispatch(stopCtx, sessions, models.Command{Kind: models.CommandStopCapture})
	report.StoppedAt = time.Now()

	d.logger.Info().Str("run_id", report.RunID).Msg("Capture stopped")

	return report
}

// wait blocks until the hold elapses, the trigger fires, or ctx is done.
func (d *Dispatcher) wait(ctx context.Context, opts RunOptions) {
	if opts.Hold > 0 {
		select {
		case <-time.After(opts.Hold):
		case <-opts.Trigger:
			d.logger.Info().Msg("Stop trigger fired")
		case <-ctx.Done():
			d.logger.Warn().Msg("Capture wait canceled, stopping now")
		}

		return
	}

	select {
	case <-opts.Trigger:
		d.logger.Info().Msg("Stop trigger fired")
	case <-ctx.Done():
		d.logger.Warn().Msg("Capture wait canceled, stopping now")
	}
}
