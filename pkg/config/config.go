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
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/resticlabs/restic-exporter/pkg/defaults"
	"github.com/resticlabs/restic-exporter/pkg/errors"
)

// Environment variable names recognized when no config file is given.
const (
	EnvRepository      = "RESTIC_REPOSITORY"
	EnvPassword        = "RESTIC_PASSWORD"
	EnvAWSAccessKey    = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey    = "AWS_SECRET_ACCESS_KEY"
	EnvPort            = "EXPORTER_PORT"
	EnvUpdateInterval  = "UPDATE_INTERVAL"
	EnvSchedule        = "EXPORTER_SCHEDULE"
	EnvContinueOnError = "EXPORTER_CONTINUE_ON_ERROR"
)

// Config is the finished configuration record consumed by the exporter.
// It is read-only after Load returns.
type Config struct {
	// Repository is the restic repository target (e.g. "s3:bucket/path").
	Repository string

	// Password is the restic repository decryption key.
	Password string

	// AWSAccessKeyID and AWSSecretAccessKey are passed to restic via
	// its environment for S3-backed repositories.
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Port is the metrics endpoint port.
	Port int

	// Interval is the polling interval between snapshot listing cycles.
	Interval time.Duration

	// Schedule is an optional cron expression. When set it drives the
	// polling cycle instead of the fixed Interval.
	Schedule string

	// ContinueOnError skips a failed cycle and retries at the next tick
	// instead of terminating the process. Off by default: a restic failure
	// (bad credentials, unreachable repository) is treated as fatal.
	ContinueOnError bool
}

// fileConfig mirrors the YAML config file schema:
//
//	restic:
//	  repository: s3:bucket/repo
//	  password: secret
//	aws:
//	  access_key_id: AKIA...
//	  secret_access_key: ...
//	exporter:
//	  port: 9150
//	  update_interval: 30
//	  schedule: "*/5 * * * *"
//	  continue_on_error: false
type fileConfig struct {
	Restic struct {
		Repository string `yaml:"repository"`
		Password   string `yaml:"password"`
	} `yaml:"restic"`
	AWS struct {
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
	} `yaml:"aws"`
	Exporter struct {
		Port            int    `yaml:"port"`
		UpdateInterval  int    `yaml:"update_interval"`
		Schedule        string `yaml:"schedule"`
		ContinueOnError bool   `yaml:"continue_on_error"`
	} `yaml:"exporter"`
}

// Load builds the configuration from the given YAML file, or from
// environment variables when path is empty. The returned config is
// validated; a missing repository or password is an error.
func Load(path string) (*Config, error) {
	var cfg *Config
	var err error

	if path != "" {
		cfg, err = fromFile(path)
	} else {
		cfg, err = fromEnv()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fromFile loads configuration from a YAML file.
func fromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	cfg := &Config{
		Repository:         fc.Restic.Repository,
		Password:           fc.Restic.Password,
		AWSAccessKeyID:     fc.AWS.AccessKeyID,
		AWSSecretAccessKey: fc.AWS.SecretAccessKey,
		Port:               fc.Exporter.Port,
		Interval:           time.Duration(fc.Exporter.UpdateInterval) * time.Second,
		Schedule:           fc.Exporter.Schedule,
		ContinueOnError:    fc.Exporter.ContinueOnError,
	}
	cfg.applyDefaults()
	return cfg, nil
}

// fromEnv loads configuration from environment variables.
func fromEnv() (*Config, error) {
	cfg := &Config{
		Repository:         os.Getenv(EnvRepository),
		Password:           os.Getenv(EnvPassword),
		AWSAccessKeyID:     os.Getenv(EnvAWSAccessKey),
		AWSSecretAccessKey: os.Getenv(EnvAWSSecretKey),
		Schedule:           os.Getenv(EnvSchedule),
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid %s value %q", EnvPort, v), err)
		}
		cfg.Port = port
	}

	if v := os.Getenv(EnvUpdateInterval); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid %s value %q", EnvUpdateInterval, v), err)
		}
		cfg.Interval = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv(EnvContinueOnError); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid %s value %q", EnvContinueOnError, v), err)
		}
		cfg.ContinueOnError = b
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values with exporter defaults.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaults.ExporterPort
	}
	if c.Interval <= 0 {
		c.Interval = defaults.ExporterInterval
	}
}

// Validate checks required fields. The repository target and the repository
// password must both be present; their absence is a fatal startup condition.
func (c *Config) Validate() error {
	if c.Repository == "" || c.Password == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"missing required configuration for RESTIC_REPOSITORY or RESTIC_PASSWORD")
	}
	return nil
}
