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

// Package session turns discovered devices into live control sessions
// and owns their lifetime until teardown.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/camrig/camrig/pkg/discovery"
	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

// ConnectFailure records one device that could not be connected. The
// failure is isolated: sibling connects proceed regardless.
type ConnectFailure struct {
	Device models.Device
	Err    error
}

// Manager establishes and tears down sessions. It is the sole owner of
// every Session it creates.
type Manager struct {
	transport transport.Transport
	discovery *discovery.Service
	arbiter   Arbiter
	logger    logger.Logger
}

func NewManager(tr transport.Transport, disc *discovery.Service, arb Arbiter, log logger.Logger) *Manager {
	return &Manager{
		transport: tr,
		discovery: disc,
		arbiter:   arb,
		logger:    log.WithComponent("session"),
	}
}

// EstablishRequired discovers the required devices and connects to what
// it finds. When devices stay missing after the discovery budget, the
// operator arbitrates: proceed with what is available, retry discovery
// from scratch, or abort. Retries are a bounded loop — the operator gets
// at most maxAttempts fresh discovery rounds, never unbounded recursion.
func (m *Manager) EstablishRequired(ctx context.Context, required []string, maxAttempts int) ([]*Session, []ConnectFailure, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	retriesLeft := maxAttempts

	for {
		result, err := m.discovery.Discover(ctx, required, maxAttempts)
		if err != nil {
			return nil, nil, fmt.Errorf("discovery failed: %w", err)
		}

		if len(result.Missing) == 0 {
			return m.Establish(ctx, result.Devices)
		}

		retriesLeft--
		canRetry := retriesLeft > 0

		decision, err := m.arbiter.Arbitrate(ctx, result.Missing, canRetry)
		if err != nil {
			return nil, nil, fmt.Errorf("arbitration failed: %w", err)
		}

		switch decision {
		case DecisionProceed:
			m.logger.Warn().Strs("missing", result.Missing).Msg("Proceeding with partial camera list")

			return m.Establish(ctx, result.Devices)
		case DecisionRetry:
			if !canRetry {
				m.logger.Error().Msg("Retry budget exhausted, treating retry as abort")

				return nil, nil, fmt.Errorf("%w: retry budget exhausted", ErrOperatorAbort)
			}

			m.logger.Info().Int("retries_left", retriesLeft).Msg("Operator requested retry, restarting discovery")
		case DecisionAbort:
			return nil, nil, ErrOperatorAbort
		}
	}
}

// Establish connects to every device independently and concurrently. A
// connect failure for one device never aborts the others; pairing quirks
// are downgraded to warnings.
func (m *Manager) Establish(ctx context.Context, devices []models.Device) ([]*Session, []ConnectFailure, error) {
	if len(devices) == 0 {
		return nil, nil, ErrNoDevices
	}

	type outcome struct {
		session *Session
		failure *ConnectFailure
	}

	results := make(chan outcome, len(devices))

	var wg sync.WaitGroup

	for _, device := range devices {
		wg.Add(1)

		go func(device models.Device) {
			defer wg.Done()

			m.logger.Info().Str("device", device.Name).Msg("Connecting")

			conn, err := m.transport.Connect(ctx, device)
			if err != nil {
				// Transports report pairing quirks alongside a usable
				// channel; expected on some platforms.
				if errors.Is(err, transport.ErrPairingQuirk) && conn != nil {
					m.logger.Warn().Str("device", device.Name).Err(err).Msg("Pairing quirk ignored")
				} else {
					m.logger.Error().Str("device", device.Name).Err(err).Msg("Connect failed")
					results <- outcome{failure: &ConnectFailure{Device: device, Err: err}}

					return
				}
			}

			m.logger.Info().Str("device", device.Name).Msg("Connected")
			results <- outcome{session: newSession(device, conn)}
		}(device)
	}

	wg.Wait()
	close(results)

	var (
		sessions []*Session
		failures []ConnectFailure
	)

	for r := range results {
		if r.session != nil {
			sessions = append(sessions, r.session)
		} else {
			failures = append(failures, *r.failure)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Device().Name < sessions[j].Device().Name
	})
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Device.Name < failures[j].Device.Name
	})

	return sessions, failures, nil
}

// Close disconnects every session. Individual disconnect errors are
// logged, never propagated: teardown must finish on every exit path.
func (m *Manager) Close(ctx context.Context, sessions []*Session) {
	for _, s := range sessions {
		if err := s.close(ctx); err != nil {
			m.logger.Warn().Str("device", s.Device().Name).Err(err).Msg("Disconnect failed")
			continue
		}

		m.logger.Info().Str("device", s.Device().Name).Msg("Disconnected")
	}
}
