package keeper

import (
	"math/big"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/metrics"
)

// EndBlocker eagerly applies the lazy accumulator advance to every live
// pool and refreshes the Prometheus gauges. Correctness never depends on
// this running: each mutating operation advances on its own.
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	start := time.Now()
	now := blockTime(ctx)
	collector := metrics.GetCollector()

	advanced := 0
	live := 0
	for _, pool := range k.GetAllPools(ctx) {
		if !pool.IsFinished(now) {
			live++
		}
		if pool.LastUpdateTime < pool.EndTime && !k.emergencyActive(ctx, pool) {
			pool.Advance(now)
			k.SetPool(ctx, pool)
			advanced++
		}

		collector.UpdatePoolMetrics(
			pool.PoolID,
			intToFloat(pool.TotalStaked),
			intToFloat(pool.TotalBoostedWeight),
			intToFloat(pool.RewardLiability),
			k.emergencyActive(ctx, pool),
		)
	}

	collector.PoolsActive.Set(float64(live))
	collector.UpdateSystemMetrics(ctx.BlockHeight())

	k.logger.Debug("Farm EndBlocker completed",
		"block", ctx.BlockHeight(),
		"pools_advanced", advanced,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// intToFloat converts an integer amount for gauge export; precision loss
// is acceptable for metrics only.
func intToFloat(x sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(x.BigInt()).Float64()
	return f
}
