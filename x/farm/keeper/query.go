package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// PendingReward previews what a harvest at the current block time would
// pay, without mutating state. The pool and stake are advanced and
// settled on copies.
func (k *Keeper) PendingReward(ctx sdk.Context, poolID, staker string) (math.Int, error) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return math.Int{}, types.ErrPoolNotFound
	}
	stake := k.GetStake(ctx, poolID, staker)
	if stake == nil {
		return math.Int{}, types.ErrNoStake
	}

	poolCopy := *pool
	stakeCopy := *stake
	advanceAndSettle(&poolCopy, &stakeCopy, blockTime(ctx))
	return stakeCopy.EarnedUnclaimed, nil
}

// PoolSummary is the query view of a pool with the accumulator advanced
// to the current block time.
type PoolSummary struct {
	Pool          *types.Pool `json:"pool"`
	WeightedTotal math.Int    `json:"weighted_total"`
	Finished      bool        `json:"finished"`
	Emergency     bool        `json:"emergency"`
}

// GetPoolSummary returns a read-only pool view.
func (k *Keeper) GetPoolSummary(ctx sdk.Context, poolID string) (*PoolSummary, error) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	now := blockTime(ctx)
	poolCopy := *pool
	poolCopy.Advance(now)
	return &PoolSummary{
		Pool:          &poolCopy,
		WeightedTotal: poolCopy.WeightedTotal(),
		Finished:      poolCopy.IsFinished(now),
		Emergency:     k.emergencyActive(ctx, &poolCopy),
	}, nil
}

// StakeSummary is the query view of one staker's position.
type StakeSummary struct {
	Stake   *types.UserStake `json:"stake"`
	Pending math.Int         `json:"pending_reward"`
	Locked  bool             `json:"locked"`
}

// GetStakeSummary returns a read-only stake view including the pending
// reward preview.
func (k *Keeper) GetStakeSummary(ctx sdk.Context, poolID, staker string) (*StakeSummary, error) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	stake := k.GetStake(ctx, poolID, staker)
	if stake == nil {
		return nil, types.ErrNoStake
	}
	pending, err := k.PendingReward(ctx, poolID, staker)
	if err != nil {
		return nil, err
	}
	now := blockTime(ctx)
	return &StakeSummary{
		Stake:   stake,
		Pending: pending,
		Locked:  !pool.IsFinished(now) && now < stake.UnlockTime,
	}, nil
}
