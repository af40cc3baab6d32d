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
	"regexp"
	"sort"
	"time"
)

const trialTimeLayout = "20060102_150405"

// Collector filenames carry the capture start as 20240531_100000.
var timestampPattern = regexp.MustCompile(`(\d{8}_\d{6})`)

// Trial is a group of files recorded together: their filename timestamps
// sit within the grouping tolerance of each other.
type Trial struct {
	ID    string
	Paths []string
}

// TimestampFromFilename extracts the capture timestamp token. Files
// named outside the collector convention report ok == false and cannot
// be grouped.
func TimestampFromFilename(name string) (ts time.Time, ok bool) {
	m := timestampPattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}

	ts, err := time.Parse(trialTimeLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}

	return ts, true
}

// GroupTrials clusters paths into trials. Paths are ordered by their
// filename timestamp and split wherever the gap to the previous file
// exceeds tolerance; each trial is named after its earliest timestamp.
// Paths without a timestamp token are returned separately so callers can
// report them.
func GroupTrials(paths []string, tolerance time.Duration) (trials []Trial, ungrouped []string) {
	type stamped struct {
		path string
		ts   time.Time
	}

	stampedPaths := make([]stamped, 0, len(paths))

	for _, p := range paths {
		ts, ok := TimestampFromFilename(p)
		if !ok {
			ungrouped = append(ungrouped, p)
			continue
		}

		stampedPaths = append(stampedPaths, stamped{path: p, ts: ts})
	}

	sort.Slice(stampedPaths, func(i, j int) bool {
		if stampedPaths[i].ts.Equal(stampedPaths[j].ts) {
			return stampedPaths[i].path < stampedPaths[j].path
		}

		return stampedPaths[i].ts.Before(stampedPaths[j].ts)
	})

	var current *Trial

	var lastTS time.Time

	for _, s := range stampedPaths {
		if current == nil || s.ts.Sub(lastTS) > tolerance {
			trials = append(trials, Trial{ID: s.ts.Format(trialTimeLayout)})
			current = &trials[len(trials)-1]
		}

		current.Paths = append(current.Paths, s.path)
		lastTS = s.ts
	}

	return trials, ungrouped
}
