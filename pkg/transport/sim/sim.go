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

// Package sim is an in-memory transport for rehearsing capture runs
// without cameras and for exercising the orchestration layers in tests.
// Failure injection covers the per-device error taxonomy: connect
// failures, write failures, and devices that never appear in a scan.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

// Config shapes the simulated fleet.
type Config struct {
	// DeviceNames advertises these names on every scan pass. Empty means
	// a three-camera default fleet.
	DeviceNames []string

	// Latency is applied to connects and writes.
	Latency time.Duration

	// FailConnect and FailWrite name devices whose connect or command
	// writes fail.
	FailConnect map[string]bool
	FailWrite   map[string]bool

	// Unavailable simulates missing hardware: every scan fails with
	// transport.ErrTransportUnavailable.
	Unavailable bool
}

// Transport is a simulated camera fleet.
type Transport struct {
	cfg Config

	mu     sync.Mutex
	writes []WriteRecord
}

// WriteRecord is one command write observed by the fleet, in arrival
// order. Tests assert against these.
type WriteRecord struct {
	Device  string
	Command models.CommandKind
	At      time.Time
}

var _ transport.Transport = (*Transport)(nil)

func New(cfg Config) *Transport {
	if len(cfg.DeviceNames) == 0 {
		cfg.DeviceNames = []string{"GoPro 0001", "GoPro 0002", "GoPro 0003"}
	}

	return &Transport{cfg: cfg}
}

func (t *Transport) Scan(ctx context.Context, _ time.Duration) ([]models.Device, error) {
	if t.cfg.Unavailable {
		return nil, fmt.Errorf("%w: simulated hardware absent", transport.ErrTransportUnavailable)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	devices := make([]models.Device, 0, len(t.cfg.DeviceNames))

	for i, name := range t.cfg.DeviceNames {
		devices = append(devices, models.Device{
			Name:         name,
			Address:      fmt.Sprintf("sim-%02d", i+1),
			DiscoveredAt: now,
		})
	}

	return devices, nil
}

func (t *Transport) Connect(ctx context.Context, device models.Device) (transport.Conn, error) {
	if err := t.sleep(ctx); err != nil {
		return nil, err
	}

	if t.cfg.FailConnect[device.Name] {
		return nil, fmt.Errorf("simulated connect failure for %s", device.Name)
	}

	return &conn{transport: t, device: device}, nil
}

// Writes returns a copy of every write observed so far.
func (t *Transport) Writes() []WriteRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]WriteRecord, len(t.writes))
	copy(out, t.writes)

	return out
}

func (t *Transport) sleep(ctx context.Context) error {
	if t.cfg.Latency == 0 {
		return ctx.Err()
	}

	select {
	case <-time.After(t.cfg.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type conn struct {
	transport *Transport
	device    models.Device

	mu     sync.Mutex
	closed bool
}

func (c *conn) Device() models.Device { return c.device }

func (c *conn) Capabilities() transport.Capabilities {
	return transport.Capabilities{"control": "sim"}
}

func (c *conn) Write(ctx context.Context, cmd models.Command) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return transport.ErrConnClosed
	}

	if err := c.transport.sleep(ctx); err != nil {
		return err
	}

	if c.transport.cfg.FailWrite[c.device.Name] {
		return fmt.Errorf("simulated write failure for %s", c.device.Name)
	}

	c.transport.mu.Lock()
	c.transport.writes = append(c.transport.writes, WriteRecord{
		Device:  c.device.Name,
		Command: cmd.Kind,
		At:      time.Now(),
	})
	c.transport.mu.Unlock()

	return nil
}

func (c *conn) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true

	return nil
}
