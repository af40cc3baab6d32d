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

// Package discovery finds controllable cameras on the wireless medium.
// With no required names it is a single filtered scan pass; with a
// required set it retries until the set is fully matched or the attempt
// budget runs out, and reports who is still missing instead of deciding
// unilaterally.
package discovery

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

// DefaultNamePrefix filters scan results down to the product we control.
const DefaultNamePrefix = "GoPro"

const defaultRetryDelay = time.Second

// Result is one discovery outcome. Missing is non-empty when a required
// set could not be fully matched within the attempt budget; the caller
// arbitrates, discovery never fails silently over it.
type Result struct {
	Devices  []models.Device
	Missing  []string
	Attempts int
}

// Service wraps a transport with quorum-discovery semantics.
type Service struct {
	transport   transport.Transport
	logger      logger.Logger
	namePrefix  string
	scanTimeout time.Duration
	retryDelay  time.Duration
}

func NewService(tr transport.Transport, scanTimeout time.Duration, log logger.Logger) *Service {
	return &Service{
		transport:   tr,
		logger:      log.WithComponent("discovery"),
		namePrefix:  DefaultNamePrefix,
		scanTimeout: scanTimeout,
		retryDelay:  defaultRetryDelay,
	}
}

// Discover scans for devices. An empty required list means one pass
// returning every prefix-matched device. A non-empty list repeats the
// scan up to maxAttempts times, accumulating matches across passes and
// stopping early once nothing is missing.
//
// Only a transport failure is an error; an exhausted attempt budget
// comes back as a Result with Missing set.
func (s *Service) Discover(ctx context.Context, required []string, maxAttempts int) (*Result, error) {
	if len(required) == 0 {
		devices, err := s.scanPass(ctx)
		if err != nil {
			return nil, err
		}

		s.logger.Info().Int("devices", len(devices)).Msg("Discovery pass complete")

		return &Result{Devices: devices, Attempts: 1}, nil
	}

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	found := make(map[string]models.Device, len(required))
	attempts := 0

	for attempts < maxAttempts {
		attempts++
		s.logger.Info().Int("attempt", attempts).Msg("Discovery attempt")

		devices, err := s.scanPass(ctx)
		if err != nil {
			return nil, err
		}

		for _, d := range devices {
			if containsName(required, d.Name) {
				found[d.Name] = d
			}
		}

		missing := missingNames(required, found)
		if len(missing) == 0 {
			s.logger.Info().Msg("All required cameras found")

			return &Result{Devices: deviceList(found), Attempts: attempts}, nil
		}

		s.logger.Warn().
			Int("attempt", attempts).
			Strs("missing", missing).
			Msg("Missing devices after attempt")

		if attempts < maxAttempts {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return &Result{
		Devices:  deviceList(found),
		Missing:  missingNames(required, found),
		Attempts: attempts,
	}, nil
}

// scanPass runs one bounded scan and keeps only prefix-matched devices.
// An empty pass is not an error, it is an empty increment.
func (s *Service) scanPass(ctx context.Context) ([]models.Device, error) {
	scanned, err := s.transport.Scan(ctx, s.scanTimeout)
	if err != nil {
		return nil, err
	}

	matched := scanned[:0:0]

	for _, d := range scanned {
		if strings.Contains(d.Name, s.namePrefix) {
			matched = append(matched, d)
		}
	}

	return matched, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

func missingNames(required []string, found map[string]models.Device) []string {
	var missing []string

	for _, name := range required {
		if _, ok := found[name]; !ok {
			missing = append(missing, name)
		}
	}

	sort.Strings(missing)

	return missing
}

func deviceList(found map[string]models.Device) []models.Device {
	devices := make([]models.Device, 0, len(found))

	for _, d := range found {
		devices = append(devices, d)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })

	return devices
}
