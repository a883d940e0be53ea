package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/metrics"
	"github.com/openalpha/yield-farm/x/farm/types"
)

// CreatePool registers a pool for a staked-asset/reward-asset pair and
// pulls the initial reward deposit into module escrow. The reward rate is
// fixed at creation as rewardAmount / duration.
func (k *Keeper) CreatePool(
	ctx context.Context,
	creator, stakeDenom, rewardDenom string,
	stakeDecimals, rewardDecimals uint32,
	rewardAmount math.Int,
	durationSecs uint64,
	boostCfg *types.BoostConfig,
) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	if err := sdk.ValidateDenom(stakeDenom); err != nil {
		return nil, err
	}
	if err := sdk.ValidateDenom(rewardDenom); err != nil {
		return nil, err
	}

	poolID := types.PoolID(stakeDenom, rewardDenom)
	if k.HasPool(sdkCtx, poolID) {
		return nil, types.ErrPoolAlreadyExists
	}

	pool, err := types.NewPool(
		creator, stakeDenom, rewardDenom,
		stakeDecimals, rewardDecimals,
		rewardAmount, durationSecs, now, boostCfg,
	)
	if err != nil {
		return nil, err
	}

	creatorAddr, err := sdk.AccAddressFromBech32(creator)
	if err != nil {
		return nil, err
	}
	deposit := sdk.NewCoins(sdk.NewCoin(rewardDenom, rewardAmount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, creatorAddr, types.ModuleName, deposit); err != nil {
		return nil, err
	}

	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPoolID, pool.PoolID),
			sdk.NewAttribute(types.AttributeKeyUser, creator),
			sdk.NewAttribute(types.AttributeKeyAmount, rewardAmount.String()),
			sdk.NewAttribute(types.AttributeKeyNewEndTime, strconv.FormatUint(pool.EndTime, 10)),
		),
	)

	k.logger.Info("Pool created",
		"pool_id", pool.PoolID,
		"creator", creator,
		"rate_per_sec", pool.RewardRatePerSec.String(),
		"end_time", pool.EndTime,
	)

	return pool, nil
}

// DepositRewards tops up the reward stream. The added coins extend the
// pool end by amount/rate seconds; deposits too small to extend the pool
// at all are rejected.
func (k *Keeper) DepositRewards(ctx context.Context, depositor, poolID string, amount math.Int) (*types.Pool, error) {
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
	if err := pool.ExtendWithDeposit(amount); err != nil {
		return nil, err
	}

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.RewardDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositorAddr, types.ModuleName, coins); err != nil {
		return nil, err
	}

	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDepositRewards,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, depositor),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyNewEndTime, strconv.FormatUint(pool.EndTime, 10)),
		),
	)

	metrics.GetCollector().RecordRewardDeposit(poolID, intToFloat(amount))

	k.logger.Info("Rewards deposited",
		"pool_id", poolID,
		"depositor", depositor,
		"amount", amount.String(),
		"new_end_time", pool.EndTime,
	)

	return pool, nil
}
