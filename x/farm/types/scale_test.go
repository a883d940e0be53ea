package types

import (
	"testing"

	"cosmossdk.io/math"
)

// TestDeriveScaleFactor tests the fixed-point scale derivation
func TestDeriveScaleFactor(t *testing.T) {
	testCases := []struct {
		name           string
		stakeDecimals  uint32
		rewardDecimals uint32
		expected       math.Int
	}{
		{
			name:           "six and six",
			stakeDecimals:  6,
			rewardDecimals: 6,
			expected:       math.NewIntWithDecimal(1, 12),
		},
		{
			name:           "zero and zero",
			stakeDecimals:  0,
			rewardDecimals: 0,
			expected:       math.NewIntWithDecimal(1, 12),
		},
		{
			name:           "high stake precision",
			stakeDecimals:  18,
			rewardDecimals: 6,
			expected:       math.NewIntWithDecimal(1, 24),
		},
		{
			name:           "max reward precision",
			stakeDecimals:  0,
			rewardDecimals: 10,
			expected:       math.NewIntWithDecimal(1, 2),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scale, err := DeriveScaleFactor(tc.stakeDecimals, tc.rewardDecimals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !scale.Equal(tc.expected) {
				t.Errorf("expected scale %s, got %s", tc.expected, scale)
			}
		})
	}
}

// TestDeriveScaleFactorRejectsHighPrecision tests both decimals bounds
func TestDeriveScaleFactorRejectsHighPrecision(t *testing.T) {
	if _, err := DeriveScaleFactor(6, 11); err != ErrInvalidDecimals {
		t.Errorf("expected ErrInvalidDecimals, got %v", err)
	}
	if _, err := DeriveScaleFactor(MaxStakeDecimals+1, 6); err != ErrInvalidDecimals {
		t.Errorf("expected ErrInvalidDecimals, got %v", err)
	}
	// Far beyond the bound must error, never panic
	if _, err := DeriveScaleFactor(100, 6); err != ErrInvalidDecimals {
		t.Errorf("expected ErrInvalidDecimals for 100, got %v", err)
	}

	if _, err := DeriveScaleFactor(6, MaxRewardDecimals); err != nil {
		t.Errorf("expected reward decimals at the bound to be accepted, got %v", err)
	}
	// Worst case at both bounds still fits: 10^26 * 10^12 = 10^38
	scale, err := DeriveScaleFactor(MaxStakeDecimals, 0)
	if err != nil {
		t.Fatalf("expected stake decimals at the bound to be accepted, got %v", err)
	}
	if !scale.Equal(math.NewIntWithDecimal(1, 38)) {
		t.Errorf("expected scale 1e38, got %s", scale)
	}
}
