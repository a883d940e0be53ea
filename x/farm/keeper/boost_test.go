package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/yield-farm/x/farm/types"
)

var genesisBoost = &types.BoostConfig{BoostPercent: 50, CollectionID: "genesis"}

// TestApplyBoost tests boost attachment and NFT custody
func TestApplyBoost(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, genesisBoost)
	f.nft.mint("genesis", "7", aliceAddr)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}

	stake, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1)
	if err != nil {
		t.Fatalf("apply boost failed: %v", err)
	}

	// 50% of 1000 principal
	if !stake.BoostedWeight.Equal(math.NewInt(500)) {
		t.Errorf("expected boosted weight 500, got %s", stake.BoostedWeight)
	}
	if stake.BoostCollateral == nil || stake.BoostCollateral.TokenID != "7" {
		t.Error("expected collateral handle recorded")
	}

	// NFT moved into module custody
	owner := f.nft.GetOwner(ctx, "genesis", "7")
	if owner.String() == aliceAddr {
		t.Error("expected NFT out of staker custody")
	}

	stored := f.keeper.GetPool(ctx, pool.PoolID)
	if !stored.TotalBoostedWeight.Equal(math.NewInt(500)) {
		t.Errorf("expected pool boosted weight 500, got %s", stored.TotalBoostedWeight)
	}
}

// TestApplyBoostValidation tests boost gate checks
func TestApplyBoostValidation(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, genesisBoost)
	f.nft.mint("genesis", "7", aliceAddr)
	f.nft.mint("other", "1", aliceAddr)
	f.nft.mint("genesis", "9", bobAddr)

	// No position yet
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != types.ErrNoStake {
		t.Errorf("expected ErrNoStake, got %v", err)
	}

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}

	// Wrong collection
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "other", "1", 1); err != types.ErrWrongCollection {
		t.Errorf("expected ErrWrongCollection, got %v", err)
	}
	// Not the NFT owner
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "9", 1); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	// Inline collateral must be exactly one unit
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 2); err != types.ErrNftQuantityInvalid {
		t.Errorf("expected ErrNftQuantityInvalid, got %v", err)
	}

	// Second boost on the same position
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != nil {
		t.Fatalf("apply boost failed: %v", err)
	}
	f.nft.mint("genesis", "8", aliceAddr)
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "8", 1); err != types.ErrAlreadyBoosted {
		t.Errorf("expected ErrAlreadyBoosted, got %v", err)
	}
}

// TestApplyBoostOnPlainPool tests that non-boost pools reject boosts
func TestApplyBoostOnPlainPool(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != types.ErrPoolNotBoostEnabled {
		t.Errorf("expected ErrPoolNotBoostEnabled, got %v", err)
	}
}

// TestRemoveBoost tests detachment and NFT return
func TestRemoveBoost(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, genesisBoost)
	f.nft.mint("genesis", "7", aliceAddr)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != nil {
		t.Fatalf("apply boost failed: %v", err)
	}

	stake, err := f.keeper.RemoveBoost(ctx, aliceAddr, pool.PoolID)
	if err != nil {
		t.Fatalf("remove boost failed: %v", err)
	}
	if !stake.BoostedWeight.IsZero() {
		t.Errorf("expected zero boosted weight, got %s", stake.BoostedWeight)
	}
	if stake.BoostCollateral != nil {
		t.Error("expected collateral cleared")
	}
	if owner := f.nft.GetOwner(ctx, "genesis", "7"); owner.String() != aliceAddr {
		t.Errorf("expected NFT back with staker, owner is %s", owner)
	}

	stored := f.keeper.GetPool(ctx, pool.PoolID)
	if !stored.TotalBoostedWeight.IsZero() {
		t.Errorf("expected pool boosted weight 0, got %s", stored.TotalBoostedWeight)
	}

	// Nothing left to remove
	if _, err := f.keeper.RemoveBoost(ctx, aliceAddr, pool.PoolID); err != types.ErrNoBoostToRemove {
		t.Errorf("expected ErrNoBoostToRemove, got %v", err)
	}
}

// TestBoostChangesAccrual tests that the boost shifts reward distribution
func TestBoostChangesAccrual(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, &types.BoostConfig{BoostPercent: 100, CollectionID: "genesis"})
	f.nft.mint("genesis", "7", bobAddr)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("alice stake failed: %v", err)
	}
	if _, err := f.keeper.Stake(ctx, bobAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("bob stake failed: %v", err)
	}
	if _, err := f.keeper.ApplyBoost(ctx, bobAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != nil {
		t.Fatalf("apply boost failed: %v", err)
	}

	// 30 seconds at 100/sec = 3000, weighted 1000 vs 2000
	ctx = at(ctx, 1030)
	alicePending, err := f.keeper.PendingReward(ctx, pool.PoolID, aliceAddr)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	bobPending, err := f.keeper.PendingReward(ctx, pool.PoolID, bobAddr)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}

	if !alicePending.Equal(math.NewInt(1000)) {
		t.Errorf("expected alice pending 1000, got %s", alicePending)
	}
	if !bobPending.Equal(math.NewInt(2000)) {
		t.Errorf("expected bob pending 2000, got %s", bobPending)
	}
}

// TestStakeTopUpRecomputesBoost tests boost weight tracking principal
func TestStakeTopUpRecomputesBoost(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, genesisBoost)
	f.nft.mint("genesis", "7", aliceAddr)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if _, err := f.keeper.ApplyBoost(ctx, aliceAddr, pool.PoolID, types.CollateralKindInline, "genesis", "7", 1); err != nil {
		t.Fatalf("apply boost failed: %v", err)
	}

	stake, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000))
	if err != nil {
		t.Fatalf("top-up failed: %v", err)
	}

	// 50% of the new 2000 principal
	if !stake.BoostedWeight.Equal(math.NewInt(1000)) {
		t.Errorf("expected boosted weight 1000, got %s", stake.BoostedWeight)
	}
	stored := f.keeper.GetPool(ctx, pool.PoolID)
	if !stored.TotalBoostedWeight.Equal(math.NewInt(1000)) {
		t.Errorf("expected pool boosted weight 1000, got %s", stored.TotalBoostedWeight)
	}
}
