package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/openalpha/yield-farm/metrics"
	"github.com/openalpha/yield-farm/x/farm/types"
)

// WithdrawToTreasury reclaims undistributed reward. Outside emergency the
// pool must be past its 84-day withdraw grace; under emergency the grace
// is bypassed entirely.
func (k *Keeper) WithdrawToTreasury(ctx context.Context, authority, poolID string, amount math.Int) (string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := blockTime(sdkCtx)

	params := k.GetParams(sdkCtx)
	if params.TreasuryAdmin == "" || authority != params.TreasuryAdmin {
		return "", types.ErrUnauthorized
	}

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return "", types.ErrPoolNotFound
	}
	if !amount.IsPositive() {
		return "", types.ErrZeroAmount
	}
	if !k.emergencyActive(sdkCtx, pool) && !pool.InWithdrawWindow(now) {
		return "", types.ErrWithdrawWindowNotReached
	}
	if amount.GT(pool.RewardLiability) {
		return "", types.ErrInsufficientRewardBalance
	}

	pool.Advance(now)
	pool.RewardLiability = pool.RewardLiability.Sub(amount)

	treasuryAddr, err := sdk.AccAddressFromBech32(authority)
	if err != nil {
		return "", err
	}
	coins := sdk.NewCoins(sdk.NewCoin(pool.RewardDenom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, treasuryAddr, coins); err != nil {
		return "", err
	}

	receiptID := "trw-" + uuid.NewString()

	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTreasuryWithdraw,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
			sdk.NewAttribute(types.AttributeKeyUser, authority),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyReceiptID, receiptID),
		),
	)

	metrics.GetCollector().RecordTreasuryWithdraw(poolID, intToFloat(amount))

	k.logger.Info("Treasury withdrawal",
		"pool_id", poolID,
		"authority", authority,
		"amount", amount.String(),
		"receipt_id", receiptID,
	)

	return receiptID, nil
}
