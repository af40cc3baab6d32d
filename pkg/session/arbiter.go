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

//go:generate mockgen -destination=mock_arbiter.go -package=session github.com/camrig/camrig/pkg/session Arbiter

import "context"

// Decision is the operator's answer when required devices are missing.
type Decision int

const (
	// DecisionProceed continues the run with only the available devices.
	DecisionProceed Decision = iota
	// DecisionRetry restarts discovery from scratch, within the same
	// attempt budget.
	DecisionRetry
	// DecisionAbort terminates the whole session establishment.
	DecisionAbort
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionRetry:
		return "retry"
	case DecisionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Arbiter presents the three-way choice to the operator and blocks until
// exactly one outcome is picked. canRetry is false once the retry budget
// is spent; implementations should then offer only proceed and abort.
type Arbiter interface {
	Arbitrate(ctx context.Context, missing []string, canRetry bool) (Decision, error)
}
