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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/camrig/camrig/pkg/models"
)

const (
	// SyncDirName is the output subdirectory downstream trimming reads.
	SyncDirName = "Synchronisation"

	manifestFileName = "output.json"
	offsetsFileName  = "video_offsets.csv"

	csvTimeLayout = "2006-01-02 15:04:05.000000"

	outputDirPerms  = 0o755
	outputFilePerms = 0o600
)

// WriteManifests persists every trial manifest as one JSON document
// keyed by trial ID. Identical inputs produce identical bytes:
// encoding/json writes map keys in sorted order and struct fields in
// declaration order, and nothing else in the document varies.
func WriteManifests(outputDir string, manifests []*models.AlignmentManifest) (string, error) {
	syncDir := filepath.Join(outputDir, SyncDirName)
	if err := os.MkdirAll(syncDir, outputDirPerms); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	byTrial := make(map[string]*models.AlignmentManifest, len(manifests))
	for _, m := range manifests {
		byTrial[m.TrialID] = m
	}

	data, err := json.MarshalIndent(byTrial, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifests: %w", err)
	}

	path := filepath.Join(syncDir, manifestFileName)
	if err := os.WriteFile(path, append(data, '\n'), outputFilePerms); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// OffsetRow is one line of the human-readable offsets CSV.
type OffsetRow struct {
	Trial    string
	Record   *models.MediaRecord
	Offset   int64
	Excluded bool
}

// WriteOffsetsCSV writes the per-file diagnostic table next to the JSON
// manifest. It is an operator artifact, not a downstream input.
func WriteOffsetsCSV(outputDir string, rows []OffsetRow) (string, error) {
	syncDir := filepath.Join(outputDir, SyncDirName)
	if err := os.MkdirAll(syncDir, outputDirPerms); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(syncDir, offsetsFileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"Trial", "Filename", "Creation Time", "Timecode", "FPS", "Offset (frames)", "Status"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range rows {
		status := "ok"
		offset := strconv.FormatInt(row.Offset, 10)

		if row.Excluded {
			status = "excluded"
			offset = ""
		}

		record := []string{
			row.Trial,
			filepath.Base(row.Record.FilePath),
			formatCreationTime(row.Record.CreationTime),
			row.Record.Timecode,
			formatFPS(row.Record.FrameRate),
			offset,
			status,
		}

		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return path, nil
}

// BuildOffsetRows flattens one trial's records and manifest into CSV
// rows, ordered by offset then path so the table reads in timeline order.
func BuildOffsetRows(trialID string, records []*models.MediaRecord, manifest *models.AlignmentManifest) []OffsetRow {
	rows := make([]OffsetRow, 0, len(records))

	for _, r := range records {
		offset, ok := manifest.Offsets[r.FilePath]
		rows = append(rows, OffsetRow{
			Trial:    trialID,
			Record:   r,
			Offset:   offset,
			Excluded: !ok,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Offset != rows[j].Offset {
			return rows[i].Offset < rows[j].Offset
		}

		return rows[i].Record.FilePath < rows[j].Record.FilePath
	})

	return rows
}

func formatCreationTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	return t.Format(csvTimeLayout)
}

func formatFPS(r models.Rational) string {
	if r.IsZero() {
		return "unknown"
	}

	return strconv.FormatFloat(r.Float(), 'f', 3, 64)
}
