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

package restic

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/resticlabs/restic-exporter/pkg/config"
	"github.com/resticlabs/restic-exporter/pkg/errors"
)

// Lister produces the raw stdout of a snapshot-listing invocation.
// Implementations do not interpret the output; parsing is the caller's
// concern.
type Lister interface {
	Snapshots(ctx context.Context) (string, error)
}

// CommandLister invokes the restic binary as a subprocess.
type CommandLister struct {
	// Binary is the restic executable name or path. Empty means "restic"
	// resolved from PATH.
	Binary string

	cfg *config.Config
}

// NewCommandLister creates a lister for the configured repository.
func NewCommandLister(cfg *config.Config) *CommandLister {
	return &CommandLister{cfg: cfg}
}

// Snapshots runs `restic -r <repository> snapshots` and returns its stdout.
// The repository password and AWS credentials are appended to the inherited
// environment. There is no timeout: a hung restic process blocks the cycle
// until the context is canceled.
func (l *CommandLister) Snapshots(ctx context.Context) (string, error) {
	binary := l.Binary
	if binary == "" {
		binary = "restic"
	}

	cmd := exec.CommandContext(ctx, binary, "-r", l.cfg.Repository, "snapshots")
	cmd.Env = append(os.Environ(),
		config.EnvPassword+"="+l.cfg.Password,
		config.EnvAWSAccessKey+"="+l.cfg.AWSAccessKeyID,
		config.EnvAWSSecretKey+"="+l.cfg.AWSSecretAccessKey,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeExecFailed,
			fmt.Sprintf("restic snapshots: %s", strings.TrimSpace(stderr.String())),
			err,
			map[string]any{"repository": l.cfg.Repository})
	}

	return stdout.String(), nil
}
