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

package transport

import "errors"

var (
	// ErrTransportUnavailable means the medium itself is unusable
	// (hardware missing, permission denied). Fatal to a whole run.
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrPairingQuirk wraps pairing/capability-negotiation failures that
	// are expected on some platforms. Soft warning, not a connect failure.
	ErrPairingQuirk = errors.New("pairing not supported on this platform")

	// ErrUnsupportedCommand reports a command the transport has no wire
	// encoding for.
	ErrUnsupportedCommand = errors.New("command not supported by transport")

	ErrConnClosed = errors.New("connection closed")
)
