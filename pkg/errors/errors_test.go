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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidConfig, "missing repository"),
			want: "[INVALID_CONFIG] missing repository",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeExecFailed, "restic snapshots", fmt.Errorf("exit status 1")),
			want: "[EXEC_FAILED] restic snapshots: exit status 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(ErrCodeExecFailed, "restic snapshots", cause)

	assert.True(t, stderrors.Is(err, cause))

	var se *StructuredError
	assert.True(t, stderrors.As(err, &se))
	assert.Equal(t, ErrCodeExecFailed, se.Code)
}

func TestWrapWithContext(t *testing.T) {
	err := WrapWithContext(ErrCodeExecFailed, "restic snapshots", fmt.Errorf("boom"),
		map[string]any{"repository": "s3:bucket/repo"})

	assert.Equal(t, "s3:bucket/repo", err.Context["repository"])
	assert.NotNil(t, err.Unwrap())
}
