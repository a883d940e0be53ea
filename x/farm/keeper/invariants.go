package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// RegisterInvariants registers the farm module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "stake-sums", StakeSumsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "accumulator-monotone", NonNegativeAccumulatorInvariant(k))
}

// StakeSumsInvariant checks that every pool's aggregates equal the sums
// over its stake records.
func StakeSumsInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, pool := range k.GetAllPools(ctx) {
			sumStaked := math.ZeroInt()
			sumBoosted := math.ZeroInt()
			for _, stake := range k.GetPoolStakes(ctx, pool.PoolID) {
				sumStaked = sumStaked.Add(stake.Amount)
				sumBoosted = sumBoosted.Add(stake.BoostedWeight)
			}
			if !pool.TotalStaked.Equal(sumStaked) {
				return sdk.FormatInvariant(types.ModuleName, "stake-sums",
					fmt.Sprintf("pool %s: total staked %s != sum of stakes %s",
						pool.PoolID, pool.TotalStaked, sumStaked)), true
			}
			if !pool.TotalBoostedWeight.Equal(sumBoosted) {
				return sdk.FormatInvariant(types.ModuleName, "stake-sums",
					fmt.Sprintf("pool %s: total boosted weight %s != sum of boosted weights %s",
						pool.PoolID, pool.TotalBoostedWeight, sumBoosted)), true
			}
		}
		return "", false
	}
}

// NonNegativeAccumulatorInvariant checks accumulator and liability signs.
func NonNegativeAccumulatorInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, pool := range k.GetAllPools(ctx) {
			if pool.AccRewardPerWeight.IsNegative() {
				return sdk.FormatInvariant(types.ModuleName, "accumulator-monotone",
					fmt.Sprintf("pool %s: negative accumulator %s", pool.PoolID, pool.AccRewardPerWeight)), true
			}
			if pool.RewardLiability.IsNegative() {
				return sdk.FormatInvariant(types.ModuleName, "accumulator-monotone",
					fmt.Sprintf("pool %s: negative reward liability %s", pool.PoolID, pool.RewardLiability)), true
			}
		}
		return "", false
	}
}
