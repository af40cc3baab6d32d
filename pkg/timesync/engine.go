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

// Package timesync aligns independently recorded video files by their
// embedded device timecodes. Pure computation over probed metadata: the
// earliest-created file anchors the trial and every other file gets a
// signed integer frame offset relative to it.
package timesync

import (
	"errors"
	"math"
	"sort"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/timecode"
)

var (
	ErrNoRecords       = errors.New("no records to synchronize")
	ErrNoUsableRecords = errors.New("no records with usable timecode")
)

// fallbackEndFrame stands in when the prober could not count the
// reference file's frames.
const fallbackEndFrame = 99999

// Options tune one synchronization run.
type Options struct {
	TrialID string

	// Window trims the reference; nil means the full reference length.
	Window *models.ReferenceWindow
}

type scored struct {
	record  *models.MediaRecord
	seconds float64
}

// Synchronize computes the alignment manifest for one trial.
//
// Records without a parsable timecode, a usable frame rate, or a
// creation time are excluded from offset math — with a diagnostic, never
// an error — but stay listed in the manifest's ExcludedFiles. The
// earliest creation time picks the reference (ties broken by path so the
// result never depends on input order), and
//
//	offset = round((seconds(record) - seconds(reference)) * rate(record))
//
// rounded to the nearest frame rather than truncated, to keep cumulative
// drift under half a frame on long takes.
func Synchronize(records []*models.MediaRecord, opts Options, log logger.Logger) (*models.AlignmentManifest, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	engineLog := log.WithComponent("timesync")

	usable := make([]scored, 0, len(records))
	excluded := make([]string, 0)

	for _, r := range records {
		seconds, ok := usableSeconds(r)
		if !ok {
			engineLog.Warn().Str("file", r.FilePath).Strs("diagnostics", r.Diagnostics).Msg("Excluding file from offset computation")
			excluded = append(excluded, r.FilePath)

			continue
		}

		usable = append(usable, scored{record: r, seconds: seconds})
	}

	if len(usable) == 0 {
		return nil, ErrNoUsableRecords
	}

	sort.Slice(usable, func(i, j int) bool {
		ti, tj := usable[i].record.CreationTime, usable[j].record.CreationTime
		if ti.Equal(tj) {
			return usable[i].record.FilePath < usable[j].record.FilePath
		}

		return ti.Before(tj)
	})

	ref := usable[0]

	offsets := make(map[string]int64, len(usable))

	for _, u := range usable {
		delta := u.seconds - ref.seconds
		offsets[u.record.FilePath] = int64(math.Round(delta * u.record.FrameRate.Float()))
	}

	manifest := &models.AlignmentManifest{
		TrialID:       opts.TrialID,
		ReferenceFile: ref.record.FilePath,
		Offsets:       offsets,
		ExcludedFiles: excluded,
	}

	if opts.Window != nil {
		manifest.StartFrame = opts.Window.StartFrame
		manifest.EndFrame = opts.Window.EndFrame
	} else {
		manifest.EndFrame = ref.record.FrameCount
		if manifest.EndFrame == 0 {
			engineLog.Warn().Str("file", ref.record.FilePath).Msg("Reference frame count unknown, using fallback window")
			manifest.EndFrame = fallbackEndFrame
		}
	}

	engineLog.Info().
		Str("trial", opts.TrialID).
		Str("reference", ref.record.FilePath).
		Int("files", len(usable)).
		Int("excluded", len(excluded)).
		Msg("Trial synchronized")

	return manifest, nil
}

// usableSeconds parses the record's timecode into seconds, recording
// every data-quality problem as a diagnostic on the record.
func usableSeconds(r *models.MediaRecord) (float64, bool) {
	if !r.HasTimecode() {
		// Diagnostic already set by the prober.
		return 0, false
	}

	if r.FrameRate.IsZero() {
		return 0, false
	}

	if r.CreationTime.IsZero() {
		return 0, false
	}

	seconds, err := timecode.Parse(r.Timecode, r.FrameRate)
	if err != nil {
		r.AddDiagnostic("unparsable timecode %q", r.Timecode)
		return 0, false
	}

	if !timecode.IsFrameFieldInRange(r.Timecode, r.FrameRate) {
		// Tolerated, but worth surfacing: frames-per-second mismatch
		// between the timecode track and the stream rate.
		r.AddDiagnostic("timecode frame field out of range for rate %s", r.FrameRate)
	}

	return seconds, true
}
