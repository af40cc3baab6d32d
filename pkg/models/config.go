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
	"time"
)

var (
	ErrNoFootageDir      = errors.New("footage_dir must be set")
	ErrBadScanTimeout    = errors.New("scan_timeout must be positive")
	ErrBadMaxAttempts    = errors.New("max_attempts must be at least 1")
	ErrBadTrialTolerance = errors.New("trial_tolerance must be positive")
)

const (
	defaultScanTimeout    = 5 * time.Second
	defaultMaxAttempts    = 2
	defaultHoldDuration   = 0 // wait for the stop trigger instead
	defaultTrialTolerance = 5 * time.Second
)

// CaptureConfig drives one live capture run.
type CaptureConfig struct {
	// Devices is the required device name list; empty means "whatever a
	// single scan pass finds".
	Devices []string `json:"devices,omitempty"`

	ScanTimeout Duration `json:"scan_timeout,omitempty"`
	MaxAttempts int      `json:"max_attempts,omitempty"`

	// HoldDuration between the start and stop dispatches. Zero means the
	// stop trigger (operator keypress or interrupt) ends the take.
	HoldDuration Duration `json:"hold_duration,omitempty"`

	// Transport selects the control path: "cohn" (default) or "sim".
	Transport string `json:"transport,omitempty"`

	// CredentialsFile and CertsDir configure the cohn transport.
	CredentialsFile string `json:"credentials_file,omitempty"`
	CertsDir        string `json:"certs_dir,omitempty"`

	Logging *LoggerConfig `json:"logging,omitempty"`
}

func (c *CaptureConfig) Validate() error {
	if c.ScanTimeout == 0 {
		c.ScanTimeout = Duration(defaultScanTimeout)
	}

	if c.ScanTimeout < 0 {
		return ErrBadScanTimeout
	}

	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}

	if c.MaxAttempts < 1 {
		return ErrBadMaxAttempts
	}

	return nil
}

// SyncConfig drives one offline alignment run.
type SyncConfig struct {
	FootageDir string `json:"footage_dir"`
	OutputDir  string `json:"output_dir,omitempty"`

	// TrialTolerance is the max gap between filename timestamps for two
	// files to belong to the same trial.
	TrialTolerance Duration `json:"trial_tolerance,omitempty"`

	// ProberPath overrides the ffprobe binary looked up on PATH.
	ProberPath string `json:"prober_path,omitempty"`

	Logging *LoggerConfig `json:"logging,omitempty"`
}

func (c *SyncConfig) Validate() error {
	if c.FootageDir == "" {
		return ErrNoFootageDir
	}

	if c.OutputDir == "" {
		c.OutputDir = c.FootageDir
	}

	if c.TrialTolerance == 0 {
		c.TrialTolerance = Duration(defaultTrialTolerance)
	}

	if c.TrialTolerance < 0 {
		return ErrBadTrialTolerance
	}

	return nil
}

// LoggerConfig mirrors logger.Config so config files can carry it without
// an import cycle.
type LoggerConfig struct {
	Level      string `json:"level,omitempty"`
	Debug      bool   `json:"debug,omitempty"`
	Output     string `json:"output,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}
