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

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/session"
)

const summaryTimeLayout = "15:04:05.000000"

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// printRunSummary enumerates every device's outcome at the end of a
// capture run. No failure is allowed to stay invisible.
func printRunSummary(results []models.CommandResult, connectFailures []session.ConnectFailure) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DEVICE", "COMMAND", "STATUS", "ACKED AT")

	for _, r := range results {
		status := okStyle.Render("ok")
		ackedAt := r.IssuedAt.Format(summaryTimeLayout)

		if !r.Acknowledged {
			status = failStyle.Render(fmt.Sprintf("failed: %v", r.Err))
			ackedAt = "-"
		}

		t.Row(r.DeviceName, string(r.Command), status, ackedAt)
	}

	for _, f := range connectFailures {
		t.Row(f.Device.Name, "-", failStyle.Render(fmt.Sprintf("connect failed: %v", f.Err)), "-")
	}

	fmt.Fprintln(os.Stdout, t)
}

// printSyncSummary lists each trial with its reference and per-file
// offsets, flagging excluded files with their first diagnostic.
func printSyncSummary(manifests []*models.AlignmentManifest, records map[string][]*models.MediaRecord) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TRIAL", "FILE", "OFFSET", "NOTE")

	for _, m := range manifests {
		for _, r := range records[m.TrialID] {
			offset, ok := m.Offsets[r.FilePath]
			if !ok {
				note := "excluded"
				if len(r.Diagnostics) > 0 {
					note = "excluded: " + r.Diagnostics[0]
				}

				t.Row(m.TrialID, r.FilePath, "-", failStyle.Render(note))

				continue
			}

			note := ""
			if r.FilePath == m.ReferenceFile {
				note = "reference"
			}

			t.Row(m.TrialID, r.FilePath, fmt.Sprintf("%d", offset), note)
		}
	}

	fmt.Fprintln(os.Stdout, t)
}

// printDeviceTable lists discovery results.
func printDeviceTable(devices []models.Device) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "ADDRESS", "DISCOVERED")

	for _, d := range devices {
		t.Row(d.Name, d.Address, d.DiscoveredAt.Format(time.TimeOnly))
	}

	fmt.Fprintln(os.Stdout, t)
}
