// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvhmm/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateNonEmpty covers nil, typed-nil, empty and populated inputs.
func TestValidateNonEmpty(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense
	empty, err := matrix.NewEmpty(3)
	require.NoError(t, err)
	full, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	tests := []struct {
		name    string
		m       matrix.Matrix
		wantErr error
	}{
		{"nil interface", nil, matrix.ErrNilMatrix},
		{"typed nil", typedNil, matrix.ErrNilMatrix},
		{"zero rows", empty, matrix.ErrInvalidDimensions},
		{"2x3", full, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateNonEmpty(tc.m)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestValidateVecLen checks nil and length mismatches.
func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
