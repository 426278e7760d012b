package version

import (
	"testing"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersionCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		toolVersion   string
		configVersion string
		expectError   bool
		errorContains string
	}{
		{
			name:          "exact match",
			toolVersion:   "0.3.0",
			configVersion: "0.3.0",
		},
		{
			name:          "config patch higher",
			toolVersion:   "0.3.0",
			configVersion: "0.3.4",
		},
		{
			name:          "v prefix",
			toolVersion:   "v1.2.1",
			configVersion: "v1.2.0",
		},
		{
			name:          "minor differs",
			toolVersion:   "0.4.0",
			configVersion: "0.3.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major differs",
			toolVersion:   "1.3.0",
			configVersion: "0.3.0",
			expectError:   true,
			errorContains: "major version mismatch",
		},
		{
			name:          "tool is main",
			toolVersion:   "main",
			configVersion: "9.9.9",
		},
		{
			name:          "config is main",
			toolVersion:   "0.3.0",
			configVersion: "main",
		},
		{
			name:          "invalid tool version",
			toolVersion:   "banana",
			configVersion: "0.3.0",
			expectError:   true,
			errorContains: "invalid tool version",
		},
		{
			name:          "invalid config version",
			toolVersion:   "0.3.0",
			configVersion: "x.y",
			expectError:   true,
			errorContains: "invalid config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersionCompatibility(tt.toolVersion, tt.configVersion)
			if !tt.expectError {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
