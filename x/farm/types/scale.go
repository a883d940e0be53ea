package types

import (
	"cosmossdk.io/math"
)

// MaxRewardDecimals bounds the reward asset precision; above it the
// reward scale would divide to zero.
const MaxRewardDecimals = uint32(10)

// MaxStakeDecimals bounds the stake asset precision so the scale factor
// stays within 128 bits: 10^(26+12) < 2^128.
const MaxStakeDecimals = uint32(26)

// rewardScaleBase is 10^12, the numerator of the reward-side scale.
var rewardScaleBase = math.NewIntWithDecimal(1, 12)

// DeriveScaleFactor derives the pool fixed-point scale from the two
// assets' decimal precisions:
//
//	rewardScale = 10^12 / 10^rewardDecimals   (>= 100 given the bound)
//	scaleFactor = 10^stakeDecimals * rewardScale
//
// Pure function; every accumulator computation multiplies by this factor
// before dividing by weighted stake so floor division loses at most one
// scaled unit.
func DeriveScaleFactor(stakeDecimals, rewardDecimals uint32) (math.Int, error) {
	if stakeDecimals > MaxStakeDecimals || rewardDecimals > MaxRewardDecimals {
		return math.Int{}, ErrInvalidDecimals
	}
	rewardScale := rewardScaleBase.Quo(math.NewIntWithDecimal(1, int(rewardDecimals)))
	return math.NewIntWithDecimal(1, int(stakeDecimals)).Mul(rewardScale), nil
}
