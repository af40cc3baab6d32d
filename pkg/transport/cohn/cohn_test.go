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

package cohn

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/transport"
)

func TestScanListsProvisionedCameras(t *testing.T) {
	path := writeCredentials(t, `{"identifier": "7631", "ip_address": "10.0.0.11", "username": "gopro", "password": "p1"}

{"identifier": "0590", "ip_address": "10.0.0.12", "username": "gopro", "password": "p2"}
`)

	tr := New(path, t.TempDir(), logger.NewNop())

	devices, err := tr.Scan(context.Background(), time.Second)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "GoPro 7631", devices[0].Name)
	assert.Equal(t, "10.0.0.11", devices[0].Address)
	assert.Equal(t, "GoPro 0590", devices[1].Name)
}

func TestScanWithoutCredentialsFile(t *testing.T) {
	tr := New(filepath.Join(t.TempDir(), "nope.txt"), t.TempDir(), logger.NewNop())

	_, err := tr.Scan(context.Background(), time.Second)
	require.ErrorIs(t, err, transport.ErrTransportUnavailable)
}

func TestConnectRequiresScanFirst(t *testing.T) {
	path := writeCredentials(t, `{"identifier": "7631", "ip_address": "10.0.0.11", "username": "gopro", "password": "p1"}`)

	tr := New(path, t.TempDir(), logger.NewNop())

	devices, err := tr.Scan(context.Background(), time.Second)
	require.NoError(t, err)

	t.Run("unknown address", func(t *testing.T) {
		unknown := devices[0]
		unknown.Address = "10.9.9.9"

		_, err := tr.Connect(context.Background(), unknown)
		require.Error(t, err)
	})

	t.Run("missing pinned certificate", func(t *testing.T) {
		_, err := tr.Connect(context.Background(), devices[0])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pinned certificate")
	})
}

func TestSettingOptionTables(t *testing.T) {
	// REST option IDs as the camera firmware defines them.
	assert.Equal(t, map[int]int{4000: 1, 2700: 4, 1080: 9}, restResolutionOptions)
	assert.Equal(t, map[int]int{240: 0, 120: 1, 60: 5}, restFPSOptions)
}
