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

package timesync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
)

func record(path, tc string, created time.Time, rate models.Rational, frames int64) *models.MediaRecord {
	return &models.MediaRecord{
		FilePath:     path,
		CreationTime: created,
		Timecode:     tc,
		FrameRate:    rate,
		FrameCount:   frames,
	}
}

func TestSynchronizeTwoCameras(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r30 := models.Rational{Num: 30, Den: 1}

	// B starts 2.5s after A: 2s on the SS field plus 15 frames at 30fps.
	a := record("a.mp4", "13:00:00:00", created, r30, 5400)
	b := record("b.mp4", "13:00:02:15", created.Add(2500*time.Millisecond), r30, 5400)

	manifest, err := Synchronize([]*models.MediaRecord{b, a}, Options{TrialID: "trial"}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "a.mp4", manifest.ReferenceFile)
	assert.Equal(t, map[string]int64{"a.mp4": 0, "b.mp4": 75}, manifest.Offsets)
	assert.Equal(t, int64(0), manifest.StartFrame)
	assert.Equal(t, int64(5400), manifest.EndFrame)
	assert.Empty(t, manifest.ExcludedFiles)
}

func TestSynchronizeReferenceOffsetIsZero(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r240 := models.Rational{Num: 240, Den: 1}

	records := []*models.MediaRecord{
		record("c.mp4", "13:00:05:120", created.Add(5*time.Second), r240, 0),
		record("a.mp4", "13:00:00:000", created, r240, 0),
		record("b.mp4", "13:00:02:000", created.Add(2*time.Second), r240, 0),
	}

	manifest, err := Synchronize(records, Options{TrialID: "trial"}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "a.mp4", manifest.ReferenceFile)
	assert.Equal(t, int64(0), manifest.Offsets[manifest.ReferenceFile])
	assert.Equal(t, int64(480), manifest.Offsets["b.mp4"])
	assert.Equal(t, int64(1320), manifest.Offsets["c.mp4"])
}

func TestSynchronizeIdenticalTimecodesGetIdenticalOffsets(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r30 := models.Rational{Num: 30, Den: 1}

	records := []*models.MediaRecord{
		record("ref.mp4", "13:00:00:00", created, r30, 100),
		record("x.mp4", "13:00:01:10", created.Add(time.Second), r30, 100),
		record("y.mp4", "13:00:01:10", created.Add(time.Second), r30, 100),
	}

	manifest, err := Synchronize(records, Options{TrialID: "trial"}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, manifest.Offsets["x.mp4"], manifest.Offsets["y.mp4"])
}

func TestSynchronizeMixedFrameRates(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

	// b and c share a timecode but run at different rates; both sit 2s
	// after the reference in absolute seconds, so each offset is that
	// delta expressed in its own frames.
	records := []*models.MediaRecord{
		record("a.mp4", "13:00:00:00", created, models.Rational{Num: 30, Den: 1}, 100),
		record("b.mp4", "13:00:02:00", created.Add(2*time.Second), models.Rational{Num: 60, Den: 1}, 100),
		record("c.mp4", "13:00:02:00", created.Add(2*time.Second), models.Rational{Num: 30, Den: 1}, 100),
	}

	manifest, err := Synchronize(records, Options{TrialID: "trial"}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "a.mp4", manifest.ReferenceFile)
	assert.Equal(t, int64(120), manifest.Offsets["b.mp4"])
	assert.Equal(t, int64(60), manifest.Offsets["c.mp4"])
}

func TestSynchronizeOffsetScalesWithFrameRate(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

	// The same 2.5s delta at each rate: offset stays within half a
	// frame of delta*rate.
	tests := []struct {
		name string
		tc   string
		rate models.Rational
		want int64
	}{
		{name: "30fps", tc: "13:00:02:15", rate: models.Rational{Num: 30, Den: 1}, want: 75},
		{name: "240fps", tc: "13:00:02:120", rate: models.Rational{Num: 240, Den: 1}, want: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*models.MediaRecord{
				record("ref.mp4", "13:00:00:00", created, tt.rate, 100),
				record("other.mp4", tt.tc, created.Add(2500*time.Millisecond), tt.rate, 100),
			}

			manifest, err := Synchronize(records, Options{TrialID: "trial"}, logger.NewNop())
			require.NoError(t, err)

			assert.Equal(t, tt.want, manifest.Offsets["other.mp4"])
			assert.InDelta(t, 2.5*tt.rate.Float(), float64(manifest.Offsets["other.mp4"]), 0.5)
		})
	}
}

func TestSynchronizeSingleFile(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

	manifest, err := Synchronize(
		[]*models.MediaRecord{record("only.mp4", "13:00:00:00", created, models.Rational{Num: 30, Den: 1}, 900)},
		Options{TrialID: "trial"},
		logger.NewNop(),
	)
	require.NoError(t, err)

	assert.Equal(t, "only.mp4", manifest.ReferenceFile)
	assert.Equal(t, map[string]int64{"only.mp4": 0}, manifest.Offsets)
}

func TestSynchronizeTieBreaksReferenceByPath(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r30 := models.Rational{Num: 30, Den: 1}

	records := []*models.MediaRecord{
		record("z.mp4", "13:00:00:00", created, r30, 100),
		record("a.mp4", "13:00:00:00", created, r30, 100),
	}

	manifest, err := Synchronize(records, Options{TrialID: "trial"}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "a.mp4", manifest.ReferenceFile)
}

func TestSynchronizeExcludesUnusableRecords(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r30 := models.Rational{Num: 30, Den: 1}

	noTimecode := record("no-tc.mp4", "", created, r30, 100)
	badTimecode := record("bad-tc.mp4", "not a timecode", created, r30, 100)
	noRate := record("no-rate.mp4", "13:00:00:00", created, models.Rational{}, 100)
	good := record("good.mp4", "13:00:00:00", created, r30, 100)

	manifest, err := Synchronize(
		[]*models.MediaRecord{noTimecode, badTimecode, noRate, good},
		Options{TrialID: "trial"},
		logger.NewNop(),
	)
	require.NoError(t, err)

	assert.Equal(t, "good.mp4", manifest.ReferenceFile)
	assert.Len(t, manifest.Offsets, 1)
	assert.ElementsMatch(t, []string{"no-tc.mp4", "bad-tc.mp4", "no-rate.mp4"}, manifest.ExcludedFiles)
	assert.Contains(t, badTimecode.Diagnostics, `unparsable timecode "not a timecode"`)
}

func TestSynchronizeWindow(t *testing.T) {
	created := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	r30 := models.Rational{Num: 30, Den: 1}

	t.Run("explicit window wins", func(t *testing.T) {
		manifest, err := Synchronize(
			[]*models.MediaRecord{record("a.mp4", "13:00:00:00", created, r30, 5400)},
			Options{TrialID: "trial", Window: &models.ReferenceWindow{StartFrame: 100, EndFrame: 900}},
			logger.NewNop(),
		)
		require.NoError(t, err)

		assert.Equal(t, int64(100), manifest.StartFrame)
		assert.Equal(t, int64(900), manifest.EndFrame)
	})

	t.Run("unknown frame count falls back", func(t *testing.T) {
		manifest, err := Synchronize(
			[]*models.MediaRecord{record("a.mp4", "13:00:00:00", created, r30, 0)},
			Options{TrialID: "trial"},
			logger.NewNop(),
		)
		require.NoError(t, err)

		assert.Equal(t, int64(fallbackEndFrame), manifest.EndFrame)
	})
}

func TestSynchronizeErrors(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		_, err := Synchronize(nil, Options{}, logger.NewNop())
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("nothing usable", func(t *testing.T) {
		records := []*models.MediaRecord{
			record("a.mp4", "", time.Time{}, models.Rational{}, 0),
		}

		_, err := Synchronize(records, Options{}, logger.NewNop())
		assert.ErrorIs(t, err, ErrNoUsableRecords)
	})
}
