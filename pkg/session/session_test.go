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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

func testConn(ctrl *gomock.Controller) *transport.MockConn {
	conn := transport.NewMockConn(ctrl)
	conn.EXPECT().Capabilities().Return(transport.Capabilities{"control": "test"})

	return conn
}

func TestSessionWriteFaultsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := testConn(ctrl)

	writeErr := errors.New("wire dropped")

	conn.EXPECT().Write(gomock.Any(), gomock.Any()).Return(writeErr)

	s := newSession(models.Device{Name: "GoPro 0001"}, conn)
	require.Equal(t, models.SessionReady, s.State())

	err := s.Write(context.Background(), models.Command{Kind: models.CommandStartCapture})
	require.ErrorIs(t, err, writeErr)
	assert.Equal(t, models.SessionFaulted, s.State())

	// A faulted session stays addressable for the guaranteed stop.
	conn.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	err = s.Write(context.Background(), models.Command{Kind: models.CommandStopCapture})
	require.NoError(t, err)
}

func TestSessionWriteAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := testConn(ctrl)

	conn.EXPECT().Close(gomock.Any()).Return(nil)

	s := newSession(models.Device{Name: "GoPro 0001"}, conn)
	require.NoError(t, s.close(context.Background()))
	assert.Equal(t, models.SessionClosed, s.State())

	err := s.Write(context.Background(), models.Command{Kind: models.CommandStartCapture})
	assert.ErrorIs(t, err, errSessionNotReady)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := testConn(ctrl)

	conn.EXPECT().Close(gomock.Any()).Return(nil).Times(1)

	s := newSession(models.Device{Name: "GoPro 0001"}, conn)
	require.NoError(t, s.close(context.Background()))
	require.NoError(t, s.close(context.Background()))
}
