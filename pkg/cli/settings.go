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
	"context"
	"errors"
	"flag"

	"github.com/camrig/camrig/pkg/dispatch"
	"github.com/camrig/camrig/pkg/models"
)

var errNoSettingFlags = errors.New("at least one of -fps or -resolution is required")

// runSettings applies an fps/resolution preset to every required camera.
func runSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fps := fs.Int("fps", 0, "Frame rate preset (240, 120 or 60)")
	resolution := fs.Int("resolution", 0, "Resolution preset (4000, 2700 or 1080)")

	env, err := loadCaptureEnv(ctx, fs, args)
	if err != nil {
		return err
	}

	if *fps == 0 && *resolution == 0 {
		return errNoSettingFlags
	}

	sessions, failures, err := env.manager.EstablishRequired(ctx, env.cfg.Devices, env.cfg.MaxAttempts)
	if err != nil {
		return exitSummary(err)
	}

	defer env.manager.Close(context.WithoutCancel(ctx), sessions)

	results := dispatch.New(env.logger).Dispatch(ctx, sessions, models.Command{
		Kind:    models.CommandApplySetting,
		Setting: &models.Setting{FPS: *fps, Resolution: *resolution},
	})

	printRunSummary(results, failures)

	return runError(results, nil, failures)
}

// runPowerOff sends power-off to every discovered camera. Best effort:
// failures are reported, not retried.
func runPowerOff(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("poweroff", flag.ContinueOnError)

	env, err := loadCaptureEnv(ctx, fs, args)
	if err != nil {
		return err
	}

	sessions, failures, err := env.manager.EstablishRequired(ctx, env.cfg.Devices, env.cfg.MaxAttempts)
	if err != nil {
		return exitSummary(err)
	}

	defer env.manager.Close(context.WithoutCancel(ctx), sessions)

	results := dispatch.New(env.logger).Dispatch(ctx, sessions, models.Command{
		Kind: models.CommandPowerOff,
	})

	// Best effort: a camera that cannot be powered off remotely is an
	// operator note, not a failed run.
	printRunSummary(results, failures)

	return nil
}
