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

package probe

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/camrig/camrig/pkg/models"
)

const probeConcurrency = 4

// FileError pairs a path with the probe failure it produced.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Files probes paths with bounded parallelism. A failed probe drops that
// file into the error list and never stops the batch; records come back
// in input order.
func Files(ctx context.Context, p Prober, paths []string) ([]*models.MediaRecord, []FileError) {
	records := make([]*models.MediaRecord, len(paths))

	var (
		mu       sync.Mutex
		failures []FileError
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			record, err := p.File(ctx, path)
			if err != nil {
				mu.Lock()
				failures = append(failures, FileError{Path: path, Err: err})
				mu.Unlock()

				return nil
			}

			records[i] = record

			return nil
		})
	}

	_ = g.Wait() // closures never return errors

	out := make([]*models.MediaRecord, 0, len(paths))

	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}

	return out, failures
}
