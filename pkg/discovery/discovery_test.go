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

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

func device(name string) models.Device {
	return models.Device{Name: name, Address: "addr-" + name, DiscoveredAt: time.Now()}
}

func newTestService(tr transport.Transport) *Service {
	s := NewService(tr, 100*time.Millisecond, logger.NewNop())
	s.retryDelay = time.Millisecond

	return s
}

func TestDiscoverEmptyRequiredIsSinglePass(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)

	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]models.Device{
		device("GoPro 7631"),
		device("SomeOtherDevice"),
		device("GoPro 0590"),
	}, nil).Times(1)

	result, err := newTestService(tr).Discover(context.Background(), nil, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.Missing)
	require.Len(t, result.Devices, 2)
	assert.Equal(t, "GoPro 0590", result.Devices[0].Name)
	assert.Equal(t, "GoPro 7631", result.Devices[1].Name)
}

func TestDiscoverStopsEarlyOnceRequiredFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)

	required := []string{"GoPro 7631", "GoPro 0590"}

	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]models.Device{device("GoPro 7631")}, nil)
	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]models.Device{device("GoPro 0590")}, nil)

	result, err := newTestService(tr).Discover(context.Background(), required, 5)
	require.NoError(t, err)

	// Matches accumulate across passes; the loop ends before the budget.
	assert.Equal(t, 2, result.Attempts)
	assert.Empty(t, result.Missing)
	assert.Len(t, result.Devices, 2)
}

func TestDiscoverReportsMissingAfterBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)

	required := []string{"GoPro 7631", "GoPro 0590"}

	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]models.Device{device("GoPro 7631")}, nil).Times(2)

	result, err := newTestService(tr).Discover(context.Background(), required, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, []string{"GoPro 0590"}, result.Missing)
	require.Len(t, result.Devices, 1)
	assert.Equal(t, "GoPro 7631", result.Devices[0].Name)
}

func TestDiscoverTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)

	scanErr := errors.New("adapter gone")

	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, scanErr)

	_, err := newTestService(tr).Discover(context.Background(), []string{"GoPro 7631"}, 3)
	require.ErrorIs(t, err, scanErr)
}

func TestDiscoverRespectsCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	tr.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Duration) ([]models.Device, error) {
			cancel()
			return nil, nil
		})

	s := NewService(tr, 100*time.Millisecond, logger.NewNop())
	s.retryDelay = time.Hour // the ctx must break the wait, not the timer

	_, err := s.Discover(ctx, []string{"GoPro 7631"}, 2)
	require.ErrorIs(t, err, context.Canceled)
}
