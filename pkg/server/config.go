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

package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/resticlabs/restic-exporter/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// OnReady, if set, is invoked once the listener is bound and the
	// server is about to accept connections. Used for systemd readiness
	// notification.
	OnReady func()
}

// NewConfig returns a new Config with sensible defaults for a metrics
// endpoint. Scrapers poll infrequently, so the rate limit is generous
// headroom against misconfigured clients rather than a serving budget.
func NewConfig() *Config {
	return &Config{
		Name:            "restic-exporter",
		Version:         "undefined",
		Address:         "",
		Port:            defaults.ExporterPort,
		RateLimit:       10, // 10 req/s
		RateLimitBurst:  20, // burst of 20
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}
}
