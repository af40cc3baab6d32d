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

package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/camrig/camrig/pkg/config"
	"github.com/camrig/camrig/pkg/discovery"
	"github.com/camrig/camrig/pkg/dispatch"
	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/session"
	"github.com/camrig/camrig/pkg/transport"
)

// captureEnv bundles everything the live-capture commands build before
// touching any camera.
type captureEnv struct {
	cfg       *models.CaptureConfig
	logger    logger.Logger
	transport transport.Transport
	manager   *session.Manager
}

// loadCaptureEnv parses the shared -config flag (plus whatever the
// command registered on fs), loads and validates the capture
// configuration, and wires the transport and session manager.
func loadCaptureEnv(ctx context.Context, fs *flag.FlagSet, args []string) (*captureEnv, error) {
	configPath := fs.String("config", "camrig.json", "Path to capture config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var cfg models.CaptureConfig

	bootstrap, err := logger.New(logger.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := config.NewConfig(bootstrap).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", *configPath, err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tr, err := newTransport(&cfg, log)
	if err != nil {
		return nil, err
	}

	disc := discovery.NewService(tr, cfg.ScanTimeout.Std(), log)

	return &captureEnv{
		cfg:       &cfg,
		logger:    log,
		transport: tr,
		manager:   session.NewManager(tr, disc, consoleArbiter{}, log),
	}, nil
}

// runCapture is the main orchestration flow: discover the required
// cameras, open sessions, start a synchronized take, and stop it on the
// hold timer, an operator keypress, or an interrupt.
func runCapture(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)

	env, err := loadCaptureEnv(ctx, fs, args)
	if err != nil {
		return err
	}

	sessions, failures, err := env.manager.EstablishRequired(ctx, env.cfg.Devices, env.cfg.MaxAttempts)
	if err != nil {
		return exitSummary(err)
	}

	defer env.manager.Close(context.WithoutCancel(ctx), sessions)

	trigger := make(chan struct{})

	go func() {
		// Any line on stdin ends the take early.
		scanner := bufio.NewScanner(os.Stdin)

		if env.cfg.HoldDuration == 0 {
			fmt.Fprintln(os.Stderr, "Recording. Press Enter to stop.")
		}

		if scanner.Scan() {
			close(trigger)
		}
	}()

	report := dispatch.New(env.logger).Run(ctx, sessions, dispatch.RunOptions{
		Hold:    env.cfg.HoldDuration.Std(),
		Trigger: trigger,
	})

	printRunSummary(append(report.StartResults, report.StopResults...), failures)

	env.logger.Info().
		Str("run_id", report.RunID).
		Dur("duration", report.StoppedAt.Sub(report.StartedAt)).
		Msg("Capture run complete")

	return runError(report.StartResults, report.StopResults, failures)
}

// runError folds per-device outcomes into the process exit status. The
// run itself completes even when individual cameras fail; the error only
// reports that some did.
func runError(start, stop []models.CommandResult, failures []session.ConnectFailure) error {
	failed := len(failures)

	for _, r := range append(start, stop...) {
		if !r.Acknowledged {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d camera operation(s) failed", failed)
	}

	return nil
}
