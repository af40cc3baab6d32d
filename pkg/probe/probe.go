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

// Package probe extracts per-file video metadata through ffprobe: one
// JSON call per file, reduced to the three fields the synchronization
// engine needs (creation time, embedded timecode, frame rate) plus the
// frame count used for the reference window. Missing tags become
// sentinels and diagnostics, never errors.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"time"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
)

//go:generate mockgen -destination=mock_prober.go -package=probe github.com/camrig/camrig/pkg/probe Prober

var (
	ErrProberFailed  = errors.New("ffprobe invocation failed")
	ErrNoVideoStream = errors.New("no video stream in file")
)

const defaultBinary = "ffprobe"

// Collector filenames look like 20240531_100000-GoPro8462-GX010042.MP4.
var (
	deviceLabelPattern = regexp.MustCompile(`-(GoPro\w+)-`)
)

// Prober produces a MediaRecord per video file.
type Prober interface {
	File(ctx context.Context, path string) (*models.MediaRecord, error)
}

// FFProbe shells out to the ffprobe binary.
type FFProbe struct {
	binary string
	logger logger.Logger
}

var _ Prober = (*FFProbe)(nil)

func NewFFProbe(binary string, log logger.Logger) *FFProbe {
	if binary == "" {
		binary = defaultBinary
	}

	return &FFProbe{binary: binary, logger: log.WithComponent("probe")}
}

// ffprobe -show_streams JSON, narrowed to what we read.
type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Tags         struct {
			CreationTime string `json:"creation_time"`
			Timecode     string `json:"timecode"`
		} `json:"tags"`
	} `json:"streams"`
}

// File probes one video file. Tag-level problems (no timecode, no
// creation time, unparsable frame rate) are recorded as diagnostics on
// the returned record; only a failed invocation or a file with no video
// stream is an error.
func (p *FFProbe) File(ctx context.Context, path string) (*models.MediaRecord, error) {
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "error",
		"-select_streams", "v",
		"-show_streams",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProberFailed, path, err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProberFailed, path, err)
	}

	record := &models.MediaRecord{
		FilePath:    path,
		DeviceLabel: DeviceLabel(path),
	}

	for i := range parsed.Streams {
		s := &parsed.Streams[i]
		if s.CodecType != "video" {
			continue
		}

		p.fill(record, s.AvgFrameRate, s.NbFrames, s.Tags.CreationTime, s.Tags.Timecode)

		return record, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
}

func (p *FFProbe) fill(record *models.MediaRecord, avgFrameRate, nbFrames, creationTime, tc string) {
	if creationTime == "" {
		record.AddDiagnostic("no creation_time tag")
	} else {
		t, err := time.Parse(time.RFC3339Nano, creationTime)
		if err != nil {
			record.AddDiagnostic("unparsable creation_time %q", creationTime)
		} else {
			record.CreationTime = t
		}
	}

	if tc == "" {
		record.AddDiagnostic("no timecode tag")
	} else {
		record.Timecode = tc
	}

	rate, err := models.ParseRational(avgFrameRate)
	if err != nil || rate.IsZero() {
		record.AddDiagnostic("unusable frame rate %q", avgFrameRate)
	} else {
		record.FrameRate = rate
	}

	if nbFrames != "" {
		var n int64
		if _, err := fmt.Sscan(nbFrames, &n); err == nil && n > 0 {
			record.FrameCount = n
		} else {
			record.AddDiagnostic("unusable nb_frames %q", nbFrames)
		}
	}

	p.logger.Debug().
		Str("file", record.FilePath).
		Str("timecode", record.Timecode).
		Str("frame_rate", record.FrameRate.String()).
		Msg("Probed file")
}

// DeviceLabel extracts the camera token from a collector-named file.
// Files outside the convention get an empty label; that is cosmetic, the
// sync engine keys on paths.
func DeviceLabel(path string) string {
	if m := deviceLabelPattern.FindStringSubmatch(path); m != nil {
		return m[1]
	}

	return ""
}
