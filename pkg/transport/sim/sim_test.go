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

package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

func TestScanDefaultFleet(t *testing.T) {
	devices, err := New(Config{}).Scan(context.Background(), time.Second)
	require.NoError(t, err)
	require.Len(t, devices, 3)

	assert.Equal(t, "GoPro 0001", devices[0].Name)
	assert.Equal(t, "sim-01", devices[0].Address)
}

func TestScanUnavailable(t *testing.T) {
	_, err := New(Config{Unavailable: true}).Scan(context.Background(), time.Second)
	require.ErrorIs(t, err, transport.ErrTransportUnavailable)
}

func TestConnectAndWrite(t *testing.T) {
	tr := New(Config{DeviceNames: []string{"GoPro 7631"}})

	devices, err := tr.Scan(context.Background(), time.Second)
	require.NoError(t, err)

	conn, err := tr.Connect(context.Background(), devices[0])
	require.NoError(t, err)

	require.NoError(t, conn.Write(context.Background(), models.Command{Kind: models.CommandStartCapture}))
	require.NoError(t, conn.Close(context.Background()))

	// Writes after close are rejected.
	err = conn.Write(context.Background(), models.Command{Kind: models.CommandStopCapture})
	require.ErrorIs(t, err, transport.ErrConnClosed)

	writes := tr.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "GoPro 7631", writes[0].Device)
	assert.Equal(t, models.CommandStartCapture, writes[0].Command)
}

func TestFailureInjection(t *testing.T) {
	tr := New(Config{
		FailConnect: map[string]bool{"GoPro 0001": true},
		FailWrite:   map[string]bool{"GoPro 0002": true},
	})

	devices, err := tr.Scan(context.Background(), time.Second)
	require.NoError(t, err)

	_, err = tr.Connect(context.Background(), devices[0])
	require.Error(t, err)

	conn, err := tr.Connect(context.Background(), devices[1])
	require.NoError(t, err)

	err = conn.Write(context.Background(), models.Command{Kind: models.CommandStartCapture})
	require.Error(t, err)
	assert.Empty(t, tr.Writes())
}
