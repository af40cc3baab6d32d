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
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/camrig/camrig/pkg/config"
	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/probe"
	"github.com/camrig/camrig/pkg/timesync"
)

var errNoFootage = errors.New("no video files found")

// runSync is the offline alignment pipeline: enumerate the footage
// directory, group files into trials, probe their streams, compute
// per-trial offsets, and write the manifest and CSV artifacts.
func runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to sync config file")
	footageDir := fs.String("footage", "", "Footage directory (overrides config)")
	outputDir := fs.String("output", "", "Output directory (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	bootstrap, err := logger.New(logger.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	var cfg models.SyncConfig

	if *configPath != "" {
		if err := config.NewConfig(bootstrap).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
			return fmt.Errorf("failed to load config %s: %w", *configPath, err)
		}
	}

	if *footageDir != "" {
		cfg.FootageDir = *footageDir
	}

	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	paths, err := listFootage(cfg.FootageDir)
	if err != nil {
		return err
	}

	log.Info().Int("files", len(paths)).Str("dir", cfg.FootageDir).Msg("Found footage")

	trials, ungrouped := timesync.GroupTrials(paths, cfg.TrialTolerance.Std())
	for _, path := range ungrouped {
		log.Warn().Str("file", path).Msg("No trial timestamp in filename, skipping")
	}

	prober := probe.NewFFProbe(cfg.ProberPath, log)

	manifests := make([]*models.AlignmentManifest, 0, len(trials))
	trialRecords := make(map[string][]*models.MediaRecord, len(trials))
	rows := make([]timesync.OffsetRow, 0, len(paths))

	for _, trial := range trials {
		records, probeErrs := probe.Files(ctx, prober, trial.Paths)
		for _, pe := range probeErrs {
			log.Warn().Err(pe.Err).Str("file", pe.Path).Msg("Probe failed, file excluded")
		}

		manifest, err := timesync.Synchronize(records, timesync.Options{TrialID: trial.ID}, log)
		if err != nil {
			log.Warn().Err(err).Str("trial", trial.ID).Msg("Trial not alignable, skipping")
			continue
		}

		manifests = append(manifests, manifest)
		trialRecords[trial.ID] = records
		rows = append(rows, timesync.BuildOffsetRows(trial.ID, records, manifest)...)
	}

	if len(manifests) == 0 {
		return fmt.Errorf("%w: no trial could be aligned", errNoFootage)
	}

	manifestPath, err := timesync.WriteManifests(cfg.OutputDir, manifests)
	if err != nil {
		return err
	}

	csvPath, err := timesync.WriteOffsetsCSV(cfg.OutputDir, rows)
	if err != nil {
		return err
	}

	printSyncSummary(manifests, trialRecords)

	log.Info().
		Str("manifest", manifestPath).
		Str("offsets_csv", csvPath).
		Int("trials", len(manifests)).
		Msg("Synchronization complete")

	return nil
}

// listFootage returns the mp4 files of dir, sorted, both lower and upper
// case extensions.
func listFootage(dir string) ([]string, error) {
	lower, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("bad footage dir %s: %w", dir, err)
	}

	upper, err := filepath.Glob(filepath.Join(dir, "*.MP4"))
	if err != nil {
		return nil, fmt.Errorf("bad footage dir %s: %w", dir, err)
	}

	paths := append(lower, upper...)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoFootage, dir)
	}

	sort.Strings(paths)

	return paths, nil
}
