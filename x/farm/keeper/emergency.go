package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/metrics"
	"github.com/openalpha/yield-farm/x/farm/types"
)

// EnableEmergency flips the pool-local emergency flag. One-way: there is
// no disable path.
func (k *Keeper) EnableEmergency(ctx context.Context, authority, poolID string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	params := k.GetParams(sdkCtx)
	if params.EmergencyAdmin == "" || authority != params.EmergencyAdmin {
		return types.ErrUnauthorized
	}

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.EmergencyLocked {
		return types.ErrEmergencyActive
	}

	// Settle pool-level accrual up to the lock so the accumulator is
	// frozen at a consistent point.
	pool.Advance(blockTime(sdkCtx))
	pool.EmergencyLocked = true
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEnableEmergency,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, authority),
		),
	)

	metrics.GetCollector().RecordEmergencyPool()

	k.logger.Warn("Emergency enabled", "pool_id", poolID, "authority", authority)

	return nil
}

// EmergencyUnstake deletes the position wholesale: principal and any
// boost collateral go back to the staker, settled-but-unharvested reward
// is forfeited and stays in the pool's reward liability.
func (k *Keeper) EmergencyUnstake(ctx context.Context, staker, poolID string) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if !k.emergencyActive(sdkCtx, pool) {
		return nil, types.ErrNotInEmergency
	}
	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil {
		return nil, types.ErrNoStake
	}

	// A pool-locked stream froze at EnableEmergency. Under the global
	// guard alone the stream is still live, so price the elapsed
	// interval before this position's weight leaves the denominator.
	if !pool.EmergencyLocked {
		pool.Advance(blockTime(sdkCtx))
	}

	pool.TotalStaked = pool.TotalStaked.Sub(stake.Amount)
	pool.TotalBoostedWeight = pool.TotalBoostedWeight.Sub(stake.BoostedWeight)

	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.StakeDenom, stake.Amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, stakerAddr, coins); err != nil {
		return nil, err
	}
	if stake.IsBoosted() {
		c := stake.BoostCollateral
		if err := k.nftKeeper.Transfer(ctx, c.ClassID, c.TokenID, stakerAddr); err != nil {
			return nil, err
		}
	}

	k.DeleteStake(sdkCtx, poolID, staker)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEmergencyUnstake,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyAmount, stake.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyForfeited, stake.EarnedUnclaimed.String()),
		),
	)

	metrics.GetCollector().RecordEmergencyUnstake(poolID, intToFloat(stake.EarnedUnclaimed))

	k.logger.Warn("Emergency unstake",
		"pool_id", poolID,
		"staker", staker,
		"returned", stake.Amount.String(),
		"forfeited", stake.EarnedUnclaimed.String(),
	)

	return stake, nil
}
