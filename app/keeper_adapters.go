package app

import (
	"context"
	"sync/atomic"

	nftkeeper "cosmossdk.io/x/nft/keeper"
	sdk "github.com/cosmos/cosmos-sdk/types"

	farmkeeper "github.com/openalpha/yield-farm/x/farm/keeper"
)

// boostCollateralAdapter narrows the full NFT keeper to the custody
// surface the farm keeper needs for boost collateral.
type boostCollateralAdapter struct {
	keeper nftkeeper.Keeper
}

func newBoostCollateralAdapter(keeper nftkeeper.Keeper) farmkeeper.NFTKeeper {
	return boostCollateralAdapter{keeper: keeper}
}

func (a boostCollateralAdapter) GetOwner(ctx context.Context, classID, nftID string) sdk.AccAddress {
	return a.keeper.GetOwner(ctx, classID, nftID)
}

func (a boostCollateralAdapter) Transfer(ctx context.Context, classID, nftID string, receiver sdk.AccAddress) error {
	return a.keeper.Transfer(ctx, classID, nftID, receiver)
}

// globalEmergencyGuard is the process-wide emergency switch. It is
// one-way: once activated it stays on for the process lifetime.
type globalEmergencyGuard struct {
	active atomic.Bool
}

func newGlobalEmergencyGuard() *globalEmergencyGuard {
	return &globalEmergencyGuard{}
}

func (g *globalEmergencyGuard) activate() {
	g.active.Store(true)
}

func (g *globalEmergencyGuard) GlobalEmergencyActive(ctx sdk.Context) bool {
	return g.active.Load()
}
