package types

import (
	"cosmossdk.io/math"
)

// Boost collateral variants. An inline collateral is a single unit of a
// semi-fungible token standard held by quantity; a by-reference collateral
// is a transferred object identified by its token id alone. Both share the
// same take/release lifecycle.
const (
	CollateralKindInline      = "inline"
	CollateralKindByReference = "by_reference"
)

// BoostCollateral is a handle to the custody-held NFT backing a boost.
type BoostCollateral struct {
	Kind    string `json:"kind"`
	ClassID string `json:"class_id"`
	TokenID string `json:"token_id"`
}

// UserStake is one staker's position in one pool.
type UserStake struct {
	Owner  string `json:"owner"`
	PoolID string `json:"pool_id"`

	Amount          math.Int `json:"amount"`
	RewardDebt      math.Int `json:"reward_debt"`      // accumulator value already priced in
	EarnedUnclaimed math.Int `json:"earned_unclaimed"` // settled but unharvested
	UnlockTime      uint64   `json:"unlock_time"`

	BoostedWeight   math.Int         `json:"boosted_weight"`
	BoostCollateral *BoostCollateral `json:"boost_collateral,omitempty"`
}

// NewUserStake opens a position with an initial principal. RewardDebt is
// primed to the current accumulator so no past reward is credited.
func NewUserStake(owner, poolID string, amount math.Int, pool *Pool, now uint64) *UserStake {
	s := &UserStake{
		Owner:           owner,
		PoolID:          poolID,
		Amount:          amount,
		EarnedUnclaimed: math.ZeroInt(),
		UnlockTime:      now + UnstakeLockSeconds,
		BoostedWeight:   math.ZeroInt(),
	}
	s.SyncRewardDebt(pool)
	return s
}

// WeightedStake is the raw principal plus any boost-derived virtual amount.
func (s *UserStake) WeightedStake() math.Int {
	return s.Amount.Add(s.BoostedWeight)
}

// IsBoosted reports whether boost collateral is attached.
func (s *UserStake) IsBoosted() bool {
	return s.BoostCollateral != nil
}

// Settle brings earned-reward bookkeeping up to date with the pool
// accumulator. Must run after Pool.Advance and before any weight change.
func (s *UserStake) Settle(pool *Pool) {
	owed := pool.AccRewardPerWeight.Mul(s.WeightedStake()).Quo(pool.ScaleFactor)
	delta := owed.Sub(s.RewardDebt)
	if delta.IsPositive() {
		s.EarnedUnclaimed = s.EarnedUnclaimed.Add(delta)
	}
	s.RewardDebt = owed
}

// SyncRewardDebt re-prices RewardDebt from the current weighted stake.
// Must run after every weight mutation.
func (s *UserStake) SyncRewardDebt(pool *Pool) {
	s.RewardDebt = pool.AccRewardPerWeight.Mul(s.WeightedStake()).Quo(pool.ScaleFactor)
}

// BoostWeightFor computes floor(amount * boostPercent / 100).
func BoostWeightFor(amount math.Int, boostPercent uint64) math.Int {
	return amount.Mul(math.NewIntFromUint64(boostPercent)).Quo(math.NewInt(100))
}
