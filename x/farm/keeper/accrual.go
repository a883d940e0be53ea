package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// blockTime returns the engine clock: block time in unix seconds.
func blockTime(ctx sdk.Context) uint64 {
	return uint64(ctx.BlockTime().Unix())
}

// emergencyActive combines the pool-local lock with the process-wide
// switch supplied by the emergency guard.
func (k *Keeper) emergencyActive(ctx sdk.Context, pool *types.Pool) bool {
	if pool.EmergencyLocked {
		return true
	}
	return k.guard != nil && k.guard.GlobalEmergencyActive(ctx)
}

// advanceAndSettle is the prologue of every user-level mutation: move the
// pool accumulator to now, then bring the user's earned bookkeeping up to
// date. The caller mutates weights afterwards and must re-sync reward
// debt before persisting.
func advanceAndSettle(pool *types.Pool, stake *types.UserStake, now uint64) {
	pool.Advance(now)
	stake.Settle(pool)
}
