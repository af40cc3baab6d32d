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

package cohn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Credentials is one provisioned camera as written by the provisioning
// tool: blank-line separated JSON objects in a single credentials file.
// The file format is owned by the provisioning collaborator; we only
// read it.
type Credentials struct {
	Identifier string `json:"identifier"`
	IPAddress  string `json:"ip_address"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// CertPath returns the pinned per-camera certificate path under certsDir.
func (c Credentials) CertPath(certsDir string) string {
	return filepath.Join(certsDir, fmt.Sprintf("GoPro_%s_cohn.crt", c.Identifier))
}

// LoadCredentials parses every credential block in the file. Malformed
// blocks are skipped and reported so one bad entry does not strand the
// remaining cameras.
func LoadCredentials(path string) ([]Credentials, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var (
		creds []Credentials
		bad   []error
	)

	for _, chunk := range strings.Split(strings.TrimSpace(string(data)), "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		var c Credentials
		if err := json.Unmarshal([]byte(chunk), &c); err != nil {
			bad = append(bad, fmt.Errorf("invalid credential block: %w", err))
			continue
		}

		if c.Identifier == "" || c.IPAddress == "" {
			bad = append(bad, fmt.Errorf("%w: identifier=%q ip=%q", errIncompleteCredentials, c.Identifier, c.IPAddress))
			continue
		}

		creds = append(creds, c)
	}

	return creds, bad, nil
}
