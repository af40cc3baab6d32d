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

package session

import "errors"

var (
	// ErrOperatorAbort is the terminal outcome of the three-way
	// arbitration. Distinct from a transport failure so callers can
	// report "aborted by operator" rather than a hardware fault.
	ErrOperatorAbort = errors.New("operator aborted the session")

	// ErrNoDevices means discovery (after any arbitration) left nothing
	// to connect to.
	ErrNoDevices = errors.New("no devices to establish sessions with")

	errSessionNotReady = errors.New("session not ready")
)
