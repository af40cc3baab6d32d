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

// Package timecode converts embedded device timecode strings into
// absolute seconds. Pure computation, no I/O.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/camrig/camrig/pkg/models"
)

var (
	// ErrMalformedTimecode reports a bad field count or non-integer
	// field. Absence of a timecode is not a parse concern: callers hold
	// that as a sentinel on the record and never reach the parser.
	ErrMalformedTimecode = errors.New("malformed timecode")

	// ErrZeroFrameRate guards the FF/rate division.
	ErrZeroFrameRate = errors.New("frame rate is zero")
)

const fieldCount = 4 // HH MM SS FF

// Parse converts "HH:MM:SS:FF" (or "HH:MM:SS;FF" — the drop-frame
// semicolon is a marker only, drop-frame rate compensation is not
// modeled) plus a frame rate into seconds.
//
// FF values at or past round(rate) are tolerated; IsFrameFieldInRange
// lets callers flag them as a data-quality issue.
func Parse(tc string, rate models.Rational) (float64, error) {
	if rate.IsZero() {
		return 0, ErrZeroFrameRate
	}

	hh, mm, ss, ff, err := fields(tc)
	if err != nil {
		return 0, err
	}

	return float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(ff)/rate.Float(), nil
}

// IsFrameFieldInRange reports whether the FF field satisfies
// 0 <= FF < round(rate).
func IsFrameFieldInRange(tc string, rate models.Rational) bool {
	_, _, _, ff, err := fields(tc)
	if err != nil {
		return false
	}

	return ff >= 0 && float64(ff) < math.Round(rate.Float())
}

func fields(tc string) (hh, mm, ss, ff int, err error) {
	parts := strings.Split(strings.ReplaceAll(tc, ";", ":"), ":")
	if len(parts) != fieldCount {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformedTimecode, tc, len(parts), fieldCount)
	}

	values := make([]int, fieldCount)

	for i, p := range parts {
		values[i], err = strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: %q field %d is not an integer", ErrMalformedTimecode, tc, i)
		}
	}

	return values[0], values[1], values[2], values[3], nil
}
