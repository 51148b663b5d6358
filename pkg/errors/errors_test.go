// Copyright (c) 2025, the opsync authors. All rights reserved.
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
	"errors"
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
			err:  New(ErrCodeNotFound, "item missing"),
			want: "[NOT_FOUND] item missing",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeVaultQuery, "list failed", errors.New("exit status 1")),
			want: "[VAULT_QUERY] list failed: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCodeApplyFailed, "apply failed", cause)

	assert.True(t, errors.Is(err, cause))

	var se *StructuredError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &se))
	assert.Equal(t, ErrCodeApplyFailed, se.Code)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, CodeOf(New(ErrCodeNotFound, "gone")))
	assert.Equal(t, ErrCodeTimestampParse,
		CodeOf(fmt.Errorf("wrapped: %w", New(ErrCodeTimestampParse, "bad time"))))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeNotFound, "gone")))
	assert.False(t, IsNotFound(New(ErrCodeVaultQuery, "failed")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeInvalidRequest, "bad arg", map[string]any{"flag": "namespace"})
	assert.Equal(t, "namespace", err.Context["flag"])

	wrapped := WrapWithContext(ErrCodeTimeout, "slow call", errors.New("deadline"), map[string]any{"op": "get"})
	assert.Equal(t, "get", wrapped.Context["op"])
	assert.NotNil(t, wrapped.Cause)
}
