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

// Package dispatch fans commands out to open sessions. No ordering is
// guaranteed across sessions; the one timing invariant is that each
// result's IssuedAt is captured the moment that session's own
// acknowledgment (or failure) lands. Failed acknowledgments are reported,
// never retried: re-sending start/stop to a physical recorder risks
// duplicate or missed transitions.
package dispatch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/session"
)

// Dispatcher sends commands to borrowed sessions. It never owns them and
// never outlives the manager's teardown.
type Dispatcher struct {
	logger logger.Logger
}

func New(log logger.Logger) *Dispatcher {
	return &Dispatcher{logger: log.WithComponent("dispatch")}
}

// Dispatch sends cmd to every session concurrently and returns one
// CommandResult per session, sorted by device name for stable reporting.
// A per-session failure lands in that result's Err; it never blocks or
// cancels the siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, sessions []*session.Session, cmd models.Command) []models.CommandResult {
	results := make(chan models.CommandResult, len(sessions))

	var wg sync.WaitGroup

	for _, s := range sessions {
		wg.Add(1)

		go func(s *session.Session) {
			defer wg.Done()

			err := s.Write(ctx, cmd)
			issuedAt := time.Now() // immediately after this session's ack

			result := models.CommandResult{
				DeviceID:     s.Device().Identifier(),
				DeviceName:   s.Device().Name,
				Command:      cmd.Kind,
				IssuedAt:     issuedAt,
				Acknowledged: err == nil,
				Err:          err,
			}

			if err != nil {
				d.logger.Error().Str("device", s.Device().Name).Str("command", string(cmd.Kind)).Err(err).Msg("Dispatch failed")
			} else {
				d.logger.Info().
					Str("device", s.Device().Name).
					Str("command", string(cmd.Kind)).
					Time("issued_at", issuedAt).
					Msg("Command acknowledged")
			}

			results <- result
		}(s)
	}

	wg.Wait()
	close(results)

	out := make([]models.CommandResult, 0, len(sessions))
	for r := range results {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DeviceName < out[j].DeviceName })

	return out
}
