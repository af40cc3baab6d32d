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

package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrig/camrig/pkg/models"
)

func rate(num, den int64) models.Rational {
	return models.Rational{Num: num, Den: den}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tc      string
		rate    models.Rational
		want    float64
		wantErr error
	}{
		{
			name: "midnight is zero",
			tc:   "00:00:00:00",
			rate: rate(30, 1),
			want: 0,
		},
		{
			name: "whole fields at 30fps",
			tc:   "01:02:03:15",
			rate: rate(30, 1),
			want: 3600 + 2*60 + 3 + 15.0/30.0,
		},
		{
			name: "drop frame semicolon treated as separator",
			tc:   "01:02:03;15",
			rate: rate(30, 1),
			want: 3600 + 2*60 + 3 + 15.0/30.0,
		},
		{
			name: "fractional ntsc rate",
			tc:   "00:00:01:00",
			rate: rate(30000, 1001),
			want: 1,
		},
		{
			name:    "too few fields",
			tc:      "01:02:03",
			rate:    rate(30, 1),
			wantErr: ErrMalformedTimecode,
		},
		{
			name:    "non numeric field",
			tc:      "01:02:03:xx",
			rate:    rate(30, 1),
			wantErr: ErrMalformedTimecode,
		},
		{
			name:    "zero rate",
			tc:      "01:02:03:04",
			rate:    rate(0, 0),
			wantErr: ErrZeroFrameRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tc, tt.rate)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	r := rate(240, 1)

	first, err := Parse("13:57:04:211", r)
	require.NoError(t, err)

	second, err := Parse("13:57:04:211", r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIsFrameFieldInRange(t *testing.T) {
	r := rate(30, 1)

	assert.True(t, IsFrameFieldInRange("00:00:00:00", r))
	assert.True(t, IsFrameFieldInRange("00:00:00:29", r))
	assert.False(t, IsFrameFieldInRange("00:00:00:30", r))
	assert.False(t, IsFrameFieldInRange("bogus", r))
}
