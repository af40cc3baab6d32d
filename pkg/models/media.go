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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFrameRate = errors.New("invalid frame rate")

// Rational is an exact frame rate as probed from the container, e.g.
// 30000/1001 for NTSC 29.97.
type Rational struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// ParseRational accepts "30000/1001", "30/1" or a bare "30".
func ParseRational(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("%w: empty string", ErrInvalidFrameRate)
	}

	num, den := s, "1"
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		num, den = s[:idx], s[idx+1:]
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}

	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}

	return Rational{Num: n, Den: d}, nil
}

// Float converts to frames per second. Callers must reject IsZero
// rationals first; Float never divides by zero and reports 0 instead.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}

	return float64(r.Num) / float64(r.Den)
}

func (r Rational) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// MediaRecord is the probed metadata of one video file. Timecode == ""
// means the container carried none; such records stay in the dataset but
// are excluded from offset computation, with the reason recorded in
// Diagnostics.
type MediaRecord struct {
	FilePath     string    `json:"file_path"`
	CreationTime time.Time `json:"creation_time"`
	Timecode     string    `json:"timecode,omitempty"`
	FrameRate    Rational  `json:"frame_rate"`
	FrameCount   int64     `json:"frame_count,omitempty"`
	DeviceLabel  string    `json:"device_label,omitempty"`
	Diagnostics  []string  `json:"diagnostics,omitempty"`
}

// HasTimecode reports whether the record can participate in offset math.
func (m *MediaRecord) HasTimecode() bool {
	return m.Timecode != ""
}

// AddDiagnostic appends a data-quality note without dropping the record.
func (m *MediaRecord) AddDiagnostic(format string, args ...interface{}) {
	m.Diagnostics = append(m.Diagnostics, fmt.Sprintf(format, args...))
}
