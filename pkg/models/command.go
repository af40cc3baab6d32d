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

import "time"

// CommandKind identifies a control operation understood by every
// transport. Transports translate a kind to their own wire form.
type CommandKind string

const (
	CommandStartCapture CommandKind = "start_capture"
	CommandStopCapture  CommandKind = "stop_capture"
	CommandApplySetting CommandKind = "apply_setting"
	CommandPowerOff     CommandKind = "power_off"
)

// Setting is a capture preset. Each transport encodes it in its own wire
// form (opcode bytes over the wireless link, setting/option query pairs
// on the local-network control surface).
type Setting struct {
	FPS        int `json:"fps,omitempty"`
	Resolution int `json:"resolution,omitempty"`
}

// Command is one control operation. Setting is only consulted for
// CommandApplySetting.
type Command struct {
	Kind    CommandKind
	Setting *Setting
}

// CommandResult is the outcome of dispatching one command to one
// session. Immutable once produced; the dispatcher emits exactly one per
// session per command. IssuedAt carries Go's monotonic clock reading
// taken the moment this session's acknowledgment (or failure) landed.
type CommandResult struct {
	DeviceID     string
	DeviceName   string
	Command      CommandKind
	IssuedAt     time.Time
	Acknowledged bool
	Err          error
}
