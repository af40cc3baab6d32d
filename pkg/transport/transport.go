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

// Package transport defines the control-plane contract the orchestrator
// needs from a camera transport: scan the medium, open a channel, write
// commands, tear down. Link-layer details stay behind implementations.
package transport

//go:generate mockgen -destination=mock_transport.go -package=transport github.com/camrig/camrig/pkg/transport Transport,Conn

import (
	"context"
	"time"

	"github.com/camrig/camrig/pkg/models"
)

// Capabilities is the opaque, collaborator-defined result of capability
// negotiation during connect.
type Capabilities map[string]string

// Conn is an open control channel to one device. Write blocks until the
// device acknowledges (transports that receive acks as notifications
// wait for them internally) or ctx is done.
type Conn interface {
	Device() models.Device
	Capabilities() Capabilities
	Write(ctx context.Context, cmd models.Command) error
	Close(ctx context.Context) error
}

// Transport discovers devices and opens control channels to them.
type Transport interface {
	// Scan performs one bounded pass over the medium and returns every
	// device it saw. A pass that finds nothing is not an error; an
	// unusable medium (missing hardware, permissions) is
	// ErrTransportUnavailable.
	Scan(ctx context.Context, timeout time.Duration) ([]models.Device, error)

	// Connect opens a control channel. Pairing quirks that some
	// platforms report are returned as ErrPairingQuirk alongside a
	// usable Conn; callers treat them as soft warnings.
	Connect(ctx context.Context, device models.Device) (Conn, error)
}
