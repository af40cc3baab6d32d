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
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/camrig/camrig/pkg/session"
)

// consoleArbiter asks the operator what to do about missing cameras.
// Exactly three outcomes exist; retry disappears from the menu once its
// budget is spent.
type consoleArbiter struct{}

var _ session.Arbiter = (*consoleArbiter)(nil)

func (consoleArbiter) Arbitrate(ctx context.Context, missing []string, canRetry bool) (session.Decision, error) {
	options := []huh.Option[session.Decision]{
		huh.NewOption("Continue with available cameras", session.DecisionProceed),
	}

	if canRetry {
		options = append(options, huh.NewOption("Search again", session.DecisionRetry))
	}

	options = append(options, huh.NewOption("Cancel the session", session.DecisionAbort))

	choice := session.DecisionAbort

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[session.Decision]().
			Title("Cameras not found").
			Description(fmt.Sprintf("The following cameras could not be found:\n%s", strings.Join(missing, ", "))).
			Options(options...).
			Value(&choice),
	))

	if err := form.RunWithContext(ctx); err != nil {
		// A dismissed or interrupted prompt must not silently proceed.
		return session.DecisionAbort, fmt.Errorf("arbitration prompt: %w", err)
	}

	return choice, nil
}
