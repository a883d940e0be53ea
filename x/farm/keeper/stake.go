package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/openalpha/yield-farm/metrics"
	"github.com/openalpha/yield-farm/x/farm/types"
)

// Stake adds principal to the staker's position. Every top-up resets the
// unstake lock to now + 7 days.
func (k *Keeper) Stake(ctx context.Context, staker, poolID string, amount math.Int) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if !amount.IsPositive() {
		return nil, types.ErrZeroAmount
	}
	if k.emergencyActive(sdkCtx, pool) {
		return nil, types.ErrEmergencyActive
	}
	if pool.IsFinished(now) {
		return nil, types.ErrPoolFinished
	}

	pool.Advance(now)

	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil {
		stake = types.NewUserStake(staker, poolID, amount, pool, now)
	} else {
		stake.Settle(pool)
		stake.Amount = stake.Amount.Add(amount)
		if stake.IsBoosted() {
			newWeight := types.BoostWeightFor(stake.Amount, pool.BoostConfig.BoostPercent)
			pool.TotalBoostedWeight = pool.TotalBoostedWeight.Sub(stake.BoostedWeight).Add(newWeight)
			stake.BoostedWeight = newWeight
		}
		stake.SyncRewardDebt(pool)
		stake.UnlockTime = now + types.UnstakeLockSeconds
	}
	pool.TotalStaked = pool.TotalStaked.Add(amount)

	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.StakeDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, stakerAddr, types.ModuleName, coins); err != nil {
		return nil, err
	}

	k.SetStake(sdkCtx, stake)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStake,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	metrics.GetCollector().RecordStake(poolID, intToFloat(amount))

	k.logger.Info("Stake processed",
		"pool_id", poolID,
		"staker", staker,
		"amount", amount.String(),
		"staked_total", stake.Amount.String(),
	)

	return stake, nil
}

// Unstake removes principal. While the pool is active the position must
// be past its unlock time; once the pool has ended the lock is ignored.
func (k *Keeper) Unstake(ctx context.Context, staker, poolID string, amount math.Int) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if !amount.IsPositive() {
		return nil, types.ErrZeroAmount
	}
	if k.emergencyActive(sdkCtx, pool) {
		return nil, types.ErrEmergencyActive
	}
	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil {
		return nil, types.ErrNoStake
	}
	if amount.GT(stake.Amount) {
		return nil, types.ErrInsufficientStakedBalance
	}
	if !pool.IsFinished(now) && now < stake.UnlockTime {
		return nil, types.ErrTooEarlyUnstake
	}

	advanceAndSettle(pool, stake, now)

	stake.Amount = stake.Amount.Sub(amount)
	if stake.IsBoosted() {
		newWeight := types.BoostWeightFor(stake.Amount, pool.BoostConfig.BoostPercent)
		pool.TotalBoostedWeight = pool.TotalBoostedWeight.Sub(stake.BoostedWeight).Add(newWeight)
		stake.BoostedWeight = newWeight
	}
	stake.SyncRewardDebt(pool)
	pool.TotalStaked = pool.TotalStaked.Sub(amount)

	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.StakeDenom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, stakerAddr, coins); err != nil {
		return nil, err
	}

	k.SetStake(sdkCtx, stake)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnstake,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	metrics.GetCollector().RecordUnstake(poolID, intToFloat(amount))

	k.logger.Info("Unstake processed",
		"pool_id", poolID,
		"staker", staker,
		"amount", amount.String(),
		"staked_total", stake.Amount.String(),
	)

	return stake, nil
}

// Harvest pays out the staker's settled reward and reduces the pool's
// reward liability by the same amount.
func (k *Keeper) Harvest(ctx context.Context, staker, poolID string) (math.Int, string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.Int{}, "", types.ErrPoolNotFound
	}
	if k.emergencyActive(sdkCtx, pool) {
		return math.Int{}, "", types.ErrEmergencyActive
	}
	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil {
		return math.Int{}, "", types.ErrNoStake
	}

	advanceAndSettle(pool, stake, now)

	reward := stake.EarnedUnclaimed
	if !reward.IsPositive() {
		return math.Int{}, "", types.ErrNothingToHarvest
	}
	stake.EarnedUnclaimed = math.ZeroInt()
	pool.RewardLiability = pool.RewardLiability.Sub(reward)

	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return math.Int{}, "", err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.RewardDenom, reward))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, stakerAddr, coins); err != nil {
		return math.Int{}, "", err
	}

	receiptID := "hrv-" + uuid.NewString()

	k.SetStake(sdkCtx, stake)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeHarvest,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyAmount, reward.String()),
			sdk.NewAttribute(types.AttributeKeyReceiptID, receiptID),
		),
	)

	metrics.GetCollector().RecordHarvest(poolID, intToFloat(reward))

	k.logger.Info("Harvest processed",
		"pool_id", poolID,
		"staker", staker,
		"reward", reward.String(),
		"receipt_id", receiptID,
	)

	return reward, receiptID, nil
}
