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

// Package cli implements the camrig subcommands: the live capture
// orchestration (discover, settings, capture, poweroff) and the offline
// alignment pipeline (sync).
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/session"
	"github.com/camrig/camrig/pkg/transport"
	"github.com/camrig/camrig/pkg/transport/cohn"
	"github.com/camrig/camrig/pkg/transport/sim"
)

var errUnknownCommand = errors.New("unknown command")

const usage = `Usage: camrig <command> [flags]

Commands:
  capture   discover cameras, start a synchronized take, stop on trigger
  sync      align recorded footage by embedded timecode
  discover  scan for controllable cameras and list them
  settings  apply an fps/resolution preset to all cameras
  poweroff  best-effort power-off of every discovered camera

Run 'camrig <command> -h' for command flags.
`

// Run dispatches a subcommand. The context is canceled on SIGINT or
// SIGTERM; every command's cleanup path survives that cancellation.
func Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUnknownCommand
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "capture":
		return runCapture(ctx, args[1:])
	case "sync":
		return runSync(ctx, args[1:])
	case "discover":
		return runDiscover(ctx, args[1:])
	case "settings":
		return runSettings(ctx, args[1:])
	case "poweroff":
		return runPowerOff(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
}

// newLogger builds the process logger, letting a config file override
// the environment defaults.
func newLogger(cfg *models.LoggerConfig) (logger.Logger, error) {
	lc := logger.DefaultConfig()

	if cfg != nil {
		if cfg.Level != "" {
			lc.Level = cfg.Level
		}

		if cfg.Debug {
			lc.Debug = true
		}

		if cfg.Output != "" {
			lc.Output = cfg.Output
		}

		if cfg.TimeFormat != "" {
			lc.TimeFormat = cfg.TimeFormat
		}
	}

	return logger.New(lc)
}

// newTransport picks the control path from config.
func newTransport(cfg *models.CaptureConfig, log logger.Logger) (transport.Transport, error) {
	switch cfg.Transport {
	case "", "cohn":
		return cohn.New(cfg.CredentialsFile, cfg.CertsDir, log), nil
	case "sim":
		return sim.New(sim.Config{DeviceNames: cfg.Devices}), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (want cohn or sim)", cfg.Transport)
	}
}

// exitSummary distinguishes the operator choosing to abort from hardware
// failures in the final error message.
func exitSummary(err error) error {
	switch {
	case errors.Is(err, session.ErrOperatorAbort):
		return fmt.Errorf("run aborted by operator: %w", err)
	case errors.Is(err, transport.ErrTransportUnavailable):
		return fmt.Errorf("wireless transport unavailable: %w", err)
	default:
		return err
	}
}
