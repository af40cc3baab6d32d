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

// Package cohn implements the transport contract over a camera's
// local-network control surface: authenticated HTTPS against a fixed
// REST API with a pinned per-camera certificate. "Scanning" this
// transport enumerates the provisioned credentials file, since cameras
// on the home network do not advertise.
package cohn

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/camrig/camrig/pkg/logger"
	"github.com/camrig/camrig/pkg/models"
	"github.com/camrig/camrig/pkg/transport"
)

var (
	errIncompleteCredentials = errors.New("credential block missing identifier or ip_address")
	errBadStatus             = errors.New("camera returned non-OK status")
	errNoSetting             = errors.New("apply_setting command carries no setting")
	errUnknownResolution     = errors.New("unsupported resolution preset")
	errUnknownFPS            = errors.New("unsupported fps preset")
	errBadPinnedCert         = errors.New("pinned certificate is not valid PEM")
)

const (
	shutterStartPath = "/gopro/camera/shutter/start"
	shutterStopPath  = "/gopro/camera/shutter/stop"
	settingPath      = "/gopro/camera/setting"
	statePath        = "/gopro/camera/state"

	settingIDResolution = 2
	settingIDFPS        = 234

	requestTimeout = 10 * time.Second
)

// Option values on the REST setting surface.
var (
	restResolutionOptions = map[int]int{4000: 1, 2700: 4, 1080: 9}
	restFPSOptions        = map[int]int{240: 0, 120: 1, 60: 5}
)

// Transport opens control channels to provisioned cameras.
type Transport struct {
	credentialsFile string
	certsDir        string
	logger          logger.Logger

	creds map[string]Credentials // keyed by IP address
}

var _ transport.Transport = (*Transport)(nil)

func New(credentialsFile, certsDir string, log logger.Logger) *Transport {
	return &Transport{
		credentialsFile: credentialsFile,
		certsDir:        certsDir,
		logger:          log.WithComponent("cohn"),
		creds:           make(map[string]Credentials),
	}
}

// Scan lists every camera in the credentials file as a device. A missing
// or unreadable file means this control path is not provisioned at all,
// which is the transport-unavailable case.
func (t *Transport) Scan(_ context.Context, _ time.Duration) ([]models.Device, error) {
	creds, bad, err := LoadCredentials(t.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrTransportUnavailable, err)
	}

	for _, e := range bad {
		t.logger.Warn().Err(e).Msg("Skipping credential block")
	}

	now := time.Now()
	devices := make([]models.Device, 0, len(creds))

	for _, c := range creds {
		t.creds[c.IPAddress] = c
		devices = append(devices, models.Device{
			Name:         "GoPro " + c.Identifier,
			Address:      c.IPAddress,
			DiscoveredAt: now,
		})
	}

	return devices, nil
}

// Connect builds the pinned-certificate HTTPS client for one camera and
// probes its state endpoint so an unreachable camera fails here rather
// than mid-capture.
func (t *Transport) Connect(ctx context.Context, device models.Device) (transport.Conn, error) {
	creds, ok := t.creds[device.Address]
	if !ok {
		return nil, fmt.Errorf("no credentials for %s; scan first", device.Address)
	}

	pem, err := os.ReadFile(creds.CertPath(t.certsDir))
	if err != nil {
		return nil, fmt.Errorf("reading pinned certificate: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: %s", errBadPinnedCert, creds.CertPath(t.certsDir))
	}

	client := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    pool,
				MinVersion: tls.VersionTLS12,
			},
		},
	}

	conn := &conn{
		device: device,
		creds:  creds,
		client: client,
		logger: t.logger.WithComponent(device.Name),
	}

	if err := conn.get(ctx, statePath, nil); err != nil {
		return nil, fmt.Errorf("camera unreachable: %w", err)
	}

	return conn, nil
}

type conn struct {
	device models.Device
	creds  Credentials
	client *http.Client
	logger logger.Logger
	closed bool
}

func (c *conn) Device() models.Device { return c.device }

func (c *conn) Capabilities() transport.Capabilities {
	return transport.Capabilities{"control": "cohn", "identifier": c.creds.Identifier}
}

func (c *conn) Write(ctx context.Context, cmd models.Command) error {
	if c.closed {
		return transport.ErrConnClosed
	}

	switch cmd.Kind {
	case models.CommandStartCapture:
		return c.get(ctx, shutterStartPath, nil)
	case models.CommandStopCapture:
		return c.get(ctx, shutterStopPath, nil)
	case models.CommandApplySetting:
		return c.applySetting(ctx, cmd.Setting)
	default:
		return fmt.Errorf("%w: %s", transport.ErrUnsupportedCommand, cmd.Kind)
	}
}

func (c *conn) applySetting(ctx context.Context, setting *models.Setting) error {
	if setting == nil {
		return errNoSetting
	}

	if setting.Resolution != 0 {
		option, ok := restResolutionOptions[setting.Resolution]
		if !ok {
			return fmt.Errorf("%w: %d", errUnknownResolution, setting.Resolution)
		}

		if err := c.get(ctx, settingPath, url.Values{
			"setting": {strconv.Itoa(settingIDResolution)},
			"option":  {strconv.Itoa(option)},
		}); err != nil {
			return fmt.Errorf("setting resolution: %w", err)
		}
	}

	if setting.FPS != 0 {
		option, ok := restFPSOptions[setting.FPS]
		if !ok {
			return fmt.Errorf("%w: %d", errUnknownFPS, setting.FPS)
		}

		if err := c.get(ctx, settingPath, url.Values{
			"setting": {strconv.Itoa(settingIDFPS)},
			"option":  {strconv.Itoa(option)},
		}); err != nil {
			return fmt.Errorf("setting fps: %w", err)
		}
	}

	return nil
}

// Close is stateless on the HTTP path; it just stops further writes.
func (c *conn) Close(_ context.Context) error {
	c.closed = true
	c.client.CloseIdleConnections()

	return nil
}

func (c *conn) get(ctx context.Context, path string, query url.Values) error {
	u := url.URL{
		Scheme:   "https",
		Host:     c.creds.IPAddress,
		Path:     path,
		RawQuery: query.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return err
	}

	req.SetBasicAuth(c.creds.Username, c.creds.Password)

	c.logger.Debug().Str("path", path).Msg("Sending control request")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s", errBadStatus, resp.Status, path)
	}

	return nil
}
