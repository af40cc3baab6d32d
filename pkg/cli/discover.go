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
	"flag"
	"fmt"
	"os"

	"github.com/camrig/camrig/pkg/discovery"
)

// runDiscover scans for cameras and prints what it found without
// opening any sessions.
func runDiscover(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)

	env, err := loadCaptureEnv(ctx, fs, args)
	if err != nil {
		return err
	}

	disc := discovery.NewService(env.transport, env.cfg.ScanTimeout.Std(), env.logger)

	result, err := disc.Discover(ctx, env.cfg.Devices, env.cfg.MaxAttempts)
	if err != nil {
		return exitSummary(err)
	}

	printDeviceTable(result.Devices)

	if len(result.Missing) > 0 {
		fmt.Fprintf(os.Stderr, "Missing after %d attempt(s): %v\n", result.Attempts, result.Missing)
		return fmt.Errorf("%d required camera(s) not found", len(result.Missing))
	}

	return nil
}
