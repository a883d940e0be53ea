package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/metrics"
	"github.com/openalpha/yield-farm/x/farm/types"
)

// ApplyBoost attaches an eligible NFT to the staker's position and adds
// floor(amount * boostPercent / 100) of virtual weight. The NFT is held
// in module custody until RemoveBoost or EmergencyUnstake.
func (k *Keeper) ApplyBoost(
	ctx context.Context,
	staker, poolID, kind, classID, tokenID string,
	quantity uint64,
) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if pool.BoostConfig == nil {
		return nil, types.ErrPoolNotBoostEnabled
	}
	if k.emergencyActive(sdkCtx, pool) {
		return nil, types.ErrEmergencyActive
	}
	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil || !stake.Amount.IsPositive() {
		return nil, types.ErrNoStake
	}
	if stake.IsBoosted() {
		return nil, types.ErrAlreadyBoosted
	}
	if classID != pool.BoostConfig.CollectionID {
		return nil, types.ErrWrongCollection
	}
	// Inline collateral is held by quantity; the standard is single-unit.
	if kind == types.CollateralKindInline && quantity != 1 {
		return nil, types.ErrNftQuantityInvalid
	}
	owner := k.nftKeeper.GetOwner(ctx, classID, tokenID)
	if owner.String() != staker {
		return nil, types.ErrUnauthorized
	}

	advanceAndSettle(pool, stake, now)

	weight := types.BoostWeightFor(stake.Amount, pool.BoostConfig.BoostPercent)
	stake.BoostedWeight = weight
	stake.BoostCollateral = &types.BoostCollateral{
		Kind:    kind,
		ClassID: classID,
		TokenID: tokenID,
	}
	pool.TotalBoostedWeight = pool.TotalBoostedWeight.Add(weight)
	stake.SyncRewardDebt(pool)

	if err := k.nftKeeper.Transfer(ctx, classID, tokenID, k.moduleAddr); err != nil {
		return nil, err
	}

	k.SetStake(sdkCtx, stake)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBoost,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyClassID, classID),
			sdk.NewAttribute(types.AttributeKeyTokenID, tokenID),
		),
	)

	metrics.GetCollector().RecordBoost(poolID, 1)

	k.logger.Info("Boost applied",
		"pool_id", poolID,
		"staker", staker,
		"boosted_weight", weight.String(),
	)

	return stake, nil
}

// RemoveBoost detaches the collateral, zeroes the virtual weight and
// returns the NFT to the staker.
func (k *Keeper) RemoveBoost(ctx context.Context, staker, poolID string) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if k.emergencyActive(sdkCtx, pool) {
		return nil, types.ErrEmergencyActive
	}
	stake := k.GetStake(sdkCtx, poolID, staker)
	if stake == nil {
		return nil, types.ErrNoStake
	}
	if !stake.IsBoosted() {
		return nil, types.ErrNoBoostToRemove
	}

	advanceAndSettle(pool, stake, now)

	collateral := stake.BoostCollateral
	pool.TotalBoostedWeight = pool.TotalBoostedWeight.Sub(stake.BoostedWeight)
	stake.BoostedWeight = math.ZeroInt()
	stake.BoostCollateral = nil
	stake.SyncRewardDebt(pool)

	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return nil, err
	}
	if err := k.nftKeeper.Transfer(ctx, collateral.ClassID, collateral.TokenID, stakerAddr); err != nil {
		return nil, err
	}

	k.SetStake(sdkCtx, stake)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveBoost,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, staker),
			sdk.NewAttribute(types.AttributeKeyClassID, collateral.ClassID),
			sdk.NewAttribute(types.AttributeKeyTokenID, collateral.TokenID),
		),
	)

	metrics.GetCollector().RecordBoost(poolID, -1)

	k.logger.Info("Boost removed",
		"pool_id", poolID,
		"staker", staker,
	)

	return stake, nil
}
