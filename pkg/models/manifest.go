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

// AlignmentManifest is the synchronization engine's output for one
// trial: the frame offset of every file relative to the reference file.
// Downstream trimming depends on it being byte-for-byte reproducible, so
// it is serialized with encoding/json only (map keys sort, struct fields
// keep declaration order).
//
// Invariant: Offsets[ReferenceFile] == 0.
type AlignmentManifest struct {
	TrialID       string           `json:"trial_id"`
	ReferenceFile string           `json:"reference_video"`
	StartFrame    int64            `json:"start_frame_on_reference_video"`
	EndFrame      int64            `json:"end_frame_on_reference_video"`
	Offsets       map[string]int64 `json:"offsets"`
	ExcludedFiles []string         `json:"excluded_files,omitempty"`
}

// ReferenceWindow is an optional caller-supplied trim range on the
// reference file. Zero value means "full reference length".
type ReferenceWindow struct {
	StartFrame int64
	EndFrame   int64
}
