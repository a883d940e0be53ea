package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "farm"
	StoreKey   = ModuleName
)

// Time constants (seconds)
const (
	// UnstakeLockSeconds is the lock applied to a stake on every top-up.
	UnstakeLockSeconds = uint64(7 * 24 * 60 * 60)

	// WithdrawalGraceSeconds is how long after pool end the treasury must
	// wait before reclaiming undistributed reward.
	WithdrawalGraceSeconds = uint64(84 * 24 * 60 * 60)
)

// BoostConfig enables NFT-boosted weight for a pool. BoostPercent is the
// virtual weight uplift in percent (1..100); CollectionID identifies the
// eligible NFT collection.
type BoostConfig struct {
	BoostPercent uint64 `json:"boost_percent"`
	CollectionID string `json:"collection_id"`
}

// Pool is a staked-asset/reward-asset pair with a fixed-rate reward stream.
// The accumulator advances lazily: every mutating operation calls Advance
// before touching balances.
type Pool struct {
	PoolID      string `json:"pool_id"`
	Creator     string `json:"creator"`
	StakeDenom  string `json:"stake_denom"`
	RewardDenom string `json:"reward_denom"`

	// Reward stream
	RewardRatePerSec   math.Int `json:"reward_rate_per_sec"`
	AccRewardPerWeight math.Int `json:"acc_reward_per_weight"` // monotone, scaled by ScaleFactor
	RewardLiability    math.Int `json:"reward_liability"`

	// Timing (unix seconds)
	LastUpdateTime uint64 `json:"last_update_time"`
	StartTime      uint64 `json:"start_time"`
	EndTime        uint64 `json:"end_time"`

	// Aggregates over all stakers
	TotalStaked        math.Int `json:"total_staked"`
	TotalBoostedWeight math.Int `json:"total_boosted_weight"`

	// Fixed-point scale derived from the two assets' decimal precisions
	ScaleFactor math.Int `json:"scale_factor"`

	BoostConfig     *BoostConfig `json:"boost_config,omitempty"`
	EmergencyLocked bool         `json:"emergency_locked"`
}

// PoolID derives the pool key for an asset pair. Identity is global per
// pair: a second creator for the same pair gets ErrPoolAlreadyExists.
// The separator is outside the denom alphabet (denoms may legally contain
// "/", as ibc/... vouchers do), so distinct pairs never share a key.
func PoolID(stakeDenom, rewardDenom string) string {
	return stakeDenom + "|" + rewardDenom
}

// NewPool creates a pool for a fixed reward deposit spread over duration
// seconds starting at now.
func NewPool(
	creator, stakeDenom, rewardDenom string,
	stakeDecimals, rewardDecimals uint32,
	rewardAmount math.Int,
	durationSecs, now uint64,
	boostCfg *BoostConfig,
) (*Pool, error) {
	if durationSecs == 0 {
		return nil, ErrZeroDuration
	}
	scale, err := DeriveScaleFactor(stakeDecimals, rewardDecimals)
	if err != nil {
		return nil, err
	}
	rate := rewardAmount.Quo(math.NewIntFromUint64(durationSecs))
	if !rate.IsPositive() {
		return nil, ErrZeroRewardRate
	}
	if boostCfg != nil {
		if boostCfg.BoostPercent == 0 || boostCfg.BoostPercent > 100 {
			return nil, ErrInvalidBoostPercent
		}
	}
	return &Pool{
		PoolID:             PoolID(stakeDenom, rewardDenom),
		Creator:            creator,
		StakeDenom:         stakeDenom,
		RewardDenom:        rewardDenom,
		RewardRatePerSec:   rate,
		AccRewardPerWeight: math.ZeroInt(),
		RewardLiability:    rewardAmount,
		LastUpdateTime:     now,
		StartTime:          now,
		EndTime:            now + durationSecs,
		TotalStaked:        math.ZeroInt(),
		TotalBoostedWeight: math.ZeroInt(),
		ScaleFactor:        scale,
		BoostConfig:        boostCfg,
		EmergencyLocked:    false,
	}, nil
}

// WeightedTotal returns the pool-wide weighted stake.
func (p *Pool) WeightedTotal() math.Int {
	return p.TotalStaked.Add(p.TotalBoostedWeight)
}

// Advance moves the reward accumulator up to now, capped at EndTime.
// Idle intervals with zero weighted stake only fast-forward the clock;
// the reward for those seconds is never distributed.
func (p *Pool) Advance(now uint64) {
	effective := now
	if effective > p.EndTime {
		effective = p.EndTime
	}
	if effective <= p.LastUpdateTime {
		return
	}
	dt := effective - p.LastUpdateTime

	weighted := p.WeightedTotal()
	if weighted.IsZero() {
		p.LastUpdateTime = effective
		return
	}

	delta := p.RewardRatePerSec.
		Mul(math.NewIntFromUint64(dt)).
		Mul(p.ScaleFactor).
		Quo(weighted)
	p.AccRewardPerWeight = p.AccRewardPerWeight.Add(delta)
	p.LastUpdateTime = effective
}

// IsFinished reports whether the reward stream has ended.
func (p *Pool) IsFinished(now uint64) bool {
	return now >= p.EndTime
}

// InWithdrawWindow reports whether the treasury grace period has passed.
func (p *Pool) InWithdrawWindow(now uint64) bool {
	return now >= p.EndTime+WithdrawalGraceSeconds
}

// ExtendWithDeposit adds reward coins to the stream, pushing EndTime out
// by amount/rate seconds. Deposits too small to buy a single second are
// rejected.
func (p *Pool) ExtendWithDeposit(amount math.Int) error {
	additional := amount.Quo(p.RewardRatePerSec)
	if !additional.IsPositive() {
		return ErrZeroDuration
	}
	p.EndTime += additional.Uint64()
	p.RewardLiability = p.RewardLiability.Add(amount)
	return nil
}
