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

package session

import (
	"context"
	"sync/atomic"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

// Session is one open control channel. The Manager that created it owns
// its lifetime; everyone else (the dispatcher in particular) only
// borrows it for the duration of a command.
type Session struct {
	device       models.Device
	conn         transport.Conn
	capabilities transport.Capabilities
	state        atomic.Int32
}

func newSession(device models.Device, conn transport.Conn) *Session {
	s := &Session{
		device:       device,
		conn:         conn,
		capabilities: conn.Capabilities(),
	}
	s.state.Store(int32(models.SessionReady))

	return s
}

func (s *Session) Device() models.Device { return s.device }

func (s *Session) State() models.SessionState {
	return models.SessionState(s.state.Load())
}

func (s *Session) Capabilities() transport.Capabilities { return s.capabilities }

// Write sends one command and blocks until this session's acknowledgment
// or failure. A failed write faults the session; it stays addressable so
// the guaranteed stop dispatch can still be attempted against it.
func (s *Session) Write(ctx context.Context, cmd models.Command) error {
	switch s.State() {
	case models.SessionReady, models.SessionFaulted:
	default:
		return errSessionNotReady
	}

	if err := s.conn.Write(ctx, cmd); err != nil {
		s.state.Store(int32(models.SessionFaulted))
		return err
	}

	return nil
}

func (s *Session) close(ctx context.Context) error {
	if s.State() == models.SessionClosed {
		return nil
	}

	s.state.Store(int32(models.SessionClosed))

	return s.conn.Close(ctx)
}
