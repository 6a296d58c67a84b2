// Copyright (c) 2025, restic-exporter authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exporterrors "github.com/resticlabs/restic-exporter/pkg/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
restic:
  repository: s3:bucket/repo
  password: secret
aws:
  access_key_id: AKIAEXAMPLE
  secret_access_key: shhh
exporter:
  port: 9999
  update_interval: 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3:bucket/repo", cfg.Repository)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "AKIAEXAMPLE", cfg.AWSAccessKeyID)
	assert.Equal(t, "shhh", cfg.AWSSecretAccessKey)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.Interval)
	assert.False(t, cfg.ContinueOnError)
}

func TestLoad_FileDefaults(t *testing.T) {
	path := writeConfigFile(t, `
restic:
  repository: /srv/backups
  password: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9150, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Empty(t, cfg.Schedule)
}

func TestLoad_FileMissingRequired(t *testing.T) {
	path := writeConfigFile(t, `
exporter:
  port: 9150
`)

	_, err := Load(path)
	require.Error(t, err)

	var se *exporterrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, exporterrors.ErrCodeInvalidConfig, se.Code)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_FileMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "restic: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvRepository, "sftp:backup@host:/repo")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvAWSAccessKey, "")
	t.Setenv(EnvAWSSecretKey, "")
	t.Setenv(EnvPort, "9151")
	t.Setenv(EnvUpdateInterval, "15")
	t.Setenv(EnvSchedule, "*/5 * * * *")
	t.Setenv(EnvContinueOnError, "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sftp:backup@host:/repo", cfg.Repository)
	assert.Equal(t, 9151, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.Equal(t, "*/5 * * * *", cfg.Schedule)
	assert.True(t, cfg.ContinueOnError)
}

func TestLoad_EnvMissingRequired(t *testing.T) {
	t.Setenv(EnvRepository, "")
	t.Setenv(EnvPassword, "")

	_, err := Load("")
	require.Error(t, err)

	var se *exporterrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, exporterrors.ErrCodeInvalidConfig, se.Code)
}

func TestLoad_EnvInvalidPort(t *testing.T) {
	t.Setenv(EnvRepository, "/srv/backups")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvPort, "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}
