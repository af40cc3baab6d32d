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

package models

import (
	"strings"
	"time"
)

// Device is a discoverable camera endpoint. Devices are ephemeral: every
// scan pass produces fresh values, and only Address is stable for the
// lifetime of a connection.
type Device struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Identifier returns the short ID token cameras advertise as the last
// word of their name ("GoPro 8462" -> "8462"). Falls back to the
// transport address for names without one.
func (d Device) Identifier() string {
	fields := strings.Fields(d.Name)
	if len(fields) > 1 {
		return fields[len(fields)-1]
	}

	return d.Address
}

// SessionState tracks the lifecycle of one control channel.
type SessionState int32

const (
	SessionConnecting SessionState = iota
	SessionReady
	SessionFaulted
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionConnecting:
		return "connecting"
	case SessionReady:
		return "ready"
	case SessionFaulted:
		return "faulted"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}
