package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// TestCreatePool tests pool creation and escrow pull
func TestCreatePool(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if pool.PoolID != "ualpha|uyield" {
		t.Errorf("expected pool ID ualpha|uyield, got %s", pool.PoolID)
	}
	if !f.bank.pulled("uyield").Equal(math.NewInt(1_000_000)) {
		t.Errorf("expected 1000000 uyield escrowed, got %s", f.bank.pulled("uyield"))
	}

	stored := f.keeper.GetPool(ctx, pool.PoolID)
	if stored == nil {
		t.Fatal("expected pool persisted")
	}
	if !stored.RewardRatePerSec.Equal(math.NewInt(100)) {
		t.Errorf("expected rate 100/sec, got %s", stored.RewardRatePerSec)
	}

	// Same pair again is rejected regardless of creator
	_, err := f.keeper.CreatePool(ctx, aliceAddr, "ualpha", "uyield", 6, 6, math.NewInt(500_000), 5_000, nil)
	if err != types.ErrPoolAlreadyExists {
		t.Errorf("expected ErrPoolAlreadyExists, got %v", err)
	}

	// Out-of-range precision is a reject, not a panic
	_, err = f.keeper.CreatePool(ctx, creatorAddr, "ubeta", "uyield", 100, 6, math.NewInt(1_000_000), 10_000, nil)
	if err != types.ErrInvalidDecimals {
		t.Errorf("expected ErrInvalidDecimals, got %v", err)
	}

	// Malformed denoms are rejected before any coin is built
	if _, err = f.keeper.CreatePool(ctx, creatorAddr, "|x", "uyield", 6, 6, math.NewInt(1_000_000), 10_000, nil); err == nil {
		t.Error("expected invalid stake denom to be rejected")
	}
}

// TestStakeAndHarvest tests the full accrue-then-claim round trip
func TestStakeAndHarvest(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if !f.bank.pulled("ualpha").Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 ualpha escrowed, got %s", f.bank.pulled("ualpha"))
	}

	// Sole staker for 10 seconds at 100/sec
	ctx = at(ctx, 1010)
	reward, receiptID, err := f.keeper.Harvest(ctx, aliceAddr, pool.PoolID)
	if err != nil {
		t.Fatalf("harvest failed: %v", err)
	}
	if !reward.Equal(math.NewInt(1000)) {
		t.Errorf("expected reward 1000, got %s", reward)
	}
	if receiptID == "" {
		t.Error("expected a harvest receipt id")
	}
	if !f.bank.paid("uyield").Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 uyield paid out, got %s", f.bank.paid("uyield"))
	}

	stored := f.keeper.GetPool(ctx, pool.PoolID)
	if !stored.RewardLiability.Equal(math.NewInt(999_000)) {
		t.Errorf("expected liability 999000, got %s", stored.RewardLiability)
	}

	// Immediately harvesting again yields nothing
	if _, _, err := f.keeper.Harvest(ctx, aliceAddr, pool.PoolID); err != types.ErrNothingToHarvest {
		t.Errorf("expected ErrNothingToHarvest, got %v", err)
	}
}

// TestStakeValidation tests stake gate checks
func TestStakeValidation(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, "missing/pool", math.NewInt(100)); err != types.ErrPoolNotFound {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.ZeroInt()); err != types.ErrZeroAmount {
		t.Errorf("expected ErrZeroAmount, got %v", err)
	}

	// Staking into a finished pool is rejected
	ctx = at(ctx, pool.EndTime)
	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(100)); err != types.ErrPoolFinished {
		t.Errorf("expected ErrPoolFinished, got %v", err)
	}
}

// TestUnstakeLock tests the 7-day unstake lock and its top-up reset
func TestUnstakeLock(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	stake, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000))
	if err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if stake.UnlockTime != 1000+types.UnstakeLockSeconds {
		t.Errorf("expected unlock at %d, got %d", 1000+types.UnstakeLockSeconds, stake.UnlockTime)
	}

	// Locked: too early
	ctx = at(ctx, 1010)
	if _, err := f.keeper.Unstake(ctx, aliceAddr, pool.PoolID, math.NewInt(500)); err != types.ErrTooEarlyUnstake {
		t.Errorf("expected ErrTooEarlyUnstake, got %v", err)
	}

	// A top-up one hour in pushes the lock forward
	ctx = at(ctx, 4600)
	stake, err = f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(500))
	if err != nil {
		t.Fatalf("top-up failed: %v", err)
	}
	if stake.UnlockTime != 4600+types.UnstakeLockSeconds {
		t.Errorf("expected unlock reset to %d, got %d", 4600+types.UnstakeLockSeconds, stake.UnlockTime)
	}
}

// TestUnstakeAfterPoolEnd tests that the lock is ignored once the stream ends
func TestUnstakeAfterPoolEnd(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}

	// Pool ends at 11000, well inside the 7-day lock
	ctx = at(ctx, pool.EndTime)
	stake, err := f.keeper.Unstake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000))
	if err != nil {
		t.Fatalf("unstake after end failed: %v", err)
	}
	if !stake.Amount.IsZero() {
		t.Errorf("expected zero remaining stake, got %s", stake.Amount)
	}
	if !f.bank.paid("ualpha").Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 ualpha returned, got %s", f.bank.paid("ualpha"))
	}

	// The full stream accrued to the sole staker and remains claimable
	reward, _, err := f.keeper.Harvest(ctx, aliceAddr, pool.PoolID)
	if err != nil {
		t.Fatalf("harvest failed: %v", err)
	}
	if !reward.Equal(math.NewInt(1_000_000)) {
		t.Errorf("expected full stream 1000000, got %s", reward)
	}
}

// TestUnstakeInsufficient tests over-withdrawal rejection
func TestUnstakeInsufficient(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}

	ctx = at(ctx, pool.EndTime)
	if _, err := f.keeper.Unstake(ctx, aliceAddr, pool.PoolID, math.NewInt(1001)); err != types.ErrInsufficientStakedBalance {
		t.Errorf("expected ErrInsufficientStakedBalance, got %v", err)
	}
	if _, err := f.keeper.Unstake(ctx, bobAddr, pool.PoolID, math.NewInt(1)); err != types.ErrNoStake {
		t.Errorf("expected ErrNoStake, got %v", err)
	}
}

// TestTwoStakersSplit tests proportional accrual through keeper operations
func TestTwoStakersSplit(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("alice stake failed: %v", err)
	}

	ctx = at(ctx, 1010)
	if _, err := f.keeper.Stake(ctx, bobAddr, pool.PoolID, math.NewInt(3000)); err != nil {
		t.Fatalf("bob stake failed: %v", err)
	}

	ctx = at(ctx, 1020)
	alicePending, err := f.keeper.PendingReward(ctx, pool.PoolID, aliceAddr)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	bobPending, err := f.keeper.PendingReward(ctx, pool.PoolID, bobAddr)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}

	// Alice: 10s alone (1000) + 10s at 1/4 (250); Bob: 10s at 3/4 (750)
	if !alicePending.Equal(math.NewInt(1250)) {
		t.Errorf("expected alice pending 1250, got %s", alicePending)
	}
	if !bobPending.Equal(math.NewInt(750)) {
		t.Errorf("expected bob pending 750, got %s", bobPending)
	}

	// PendingReward must not mutate state
	stored := f.keeper.GetStake(ctx, pool.PoolID, aliceAddr)
	if !stored.EarnedUnclaimed.IsZero() {
		t.Errorf("expected stored earned untouched, got %s", stored.EarnedUnclaimed)
	}
}

// TestDepositRewardsExtends tests stream top-up
func TestDepositRewardsExtends(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	updated, err := f.keeper.DepositRewards(ctx, bobAddr, pool.PoolID, math.NewInt(50_000))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if updated.EndTime != pool.EndTime+500 {
		t.Errorf("expected end time %d, got %d", pool.EndTime+500, updated.EndTime)
	}
	if !f.bank.pulled("uyield").Equal(math.NewInt(1_050_000)) {
		t.Errorf("expected 1050000 uyield escrowed, got %s", f.bank.pulled("uyield"))
	}

	// Top-ups after the stream ends are rejected
	ctx = at(ctx, updated.EndTime)
	if _, err := f.keeper.DepositRewards(ctx, bobAddr, pool.PoolID, math.NewInt(10_000)); err != types.ErrPoolFinished {
		t.Errorf("expected ErrPoolFinished, got %v", err)
	}
}

// TestInvariantsHold tests that aggregates track stake records
func TestInvariantsHold(t *testing.T) {
	f, ctx := setupKeeper(t)
	pool := createTestPool(t, f, ctx, nil)

	if _, err := f.keeper.Stake(ctx, aliceAddr, pool.PoolID, math.NewInt(1000)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	ctx = at(ctx, 1005)
	if _, err := f.keeper.Stake(ctx, bobAddr, pool.PoolID, math.NewInt(2500)); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	ctx = at(ctx, pool.EndTime)
	if _, err := f.keeper.Unstake(ctx, aliceAddr, pool.PoolID, math.NewInt(400)); err != nil {
		t.Fatalf("unstake failed: %v", err)
	}

	if msg, broken := StakeSumsInvariant(f.keeper)(ctx); broken {
		t.Errorf("stake sums invariant broken: %s", msg)
	}
	if msg, broken := NonNegativeAccumulatorInvariant(f.keeper)(ctx); broken {
		t.Errorf("accumulator invariant broken: %s", msg)
	}
}
