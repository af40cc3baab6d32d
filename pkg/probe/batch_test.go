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

package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/camrig/camrig/pkg/models"
)

func TestFilesKeepsInputOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := NewMockProber(ctrl)

	paths := []string{"c.mp4", "a.mp4", "b.mp4"}

	for _, p := range paths {
		prober.EXPECT().File(gomock.Any(), p).Return(&models.MediaRecord{FilePath: p}, nil)
	}

	records, failures := Files(context.Background(), prober, paths)

	require.Empty(t, failures)
	require.Len(t, records, 3)

	for i, p := range paths {
		assert.Equal(t, p, records[i].FilePath)
	}
}

func TestFilesFailureDoesNotStopBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := NewMockProber(ctrl)

	probeErr := errors.New("corrupt container")

	prober.EXPECT().File(gomock.Any(), "good.mp4").Return(&models.MediaRecord{FilePath: "good.mp4"}, nil)
	prober.EXPECT().File(gomock.Any(), "bad.mp4").Return(nil, probeErr)

	records, failures := Files(context.Background(), prober, []string{"good.mp4", "bad.mp4"})

	require.Len(t, records, 1)
	assert.Equal(t, "good.mp4", records[0].FilePath)

	require.Len(t, failures, 1)
	assert.Equal(t, "bad.mp4", failures[0].Path)
	assert.ErrorIs(t, failures[0].Err, probeErr)
}

func TestFilesEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := NewMockProber(ctrl)

	records, failures := Files(context.Background(), prober, nil)

	assert.Empty(t, records)
	assert.Empty(t, failures)
}
