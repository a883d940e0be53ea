package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// MsgServer defines the farm MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

var _ types.MsgServer = (*MsgServer)(nil)

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, types.ErrZeroAmount
	}
	return amount, nil
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	rewardAmount, err := parseAmount(msg.RewardAmount)
	if err != nil {
		return nil, err
	}

	var boostCfg *types.BoostConfig
	if msg.BoostPercent > 0 || msg.BoostCollection != "" {
		boostCfg = &types.BoostConfig{
			BoostPercent: msg.BoostPercent,
			CollectionID: msg.BoostCollection,
		}
	}

	pool, err := m.keeper.CreatePool(
		ctx,
		msg.Creator, msg.StakeDenom, msg.RewardDenom,
		msg.StakeDecimals, msg.RewardDecimals,
		rewardAmount, msg.DurationSecs, boostCfg,
	)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{
		PoolID:           pool.PoolID,
		RewardRatePerSec: pool.RewardRatePerSec.String(),
		EndTime:          pool.EndTime,
	}, nil
}

// Stake handles MsgStake
func (m *MsgServer) Stake(ctx context.Context, msg *types.MsgStake) (*types.MsgStakeResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	stake, err := m.keeper.Stake(ctx, msg.Staker, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgStakeResponse{
		StakedTotal: stake.Amount.String(),
		UnlockTime:  stake.UnlockTime,
	}, nil
}

// Unstake handles MsgUnstake
func (m *MsgServer) Unstake(ctx context.Context, msg *types.MsgUnstake) (*types.MsgUnstakeResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	stake, err := m.keeper.Unstake(ctx, msg.Staker, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgUnstakeResponse{
		Returned:    amount.String(),
		StakedTotal: stake.Amount.String(),
	}, nil
}

// Harvest handles MsgHarvest
func (m *MsgServer) Harvest(ctx context.Context, msg *types.MsgHarvest) (*types.MsgHarvestResponse, error) {
	reward, receiptID, err := m.keeper.Harvest(ctx, msg.Staker, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgHarvestResponse{
		Reward:    reward.String(),
		ReceiptID: receiptID,
	}, nil
}

// DepositRewards handles MsgDepositRewards
func (m *MsgServer) DepositRewards(ctx context.Context, msg *types.MsgDepositRewards) (*types.MsgDepositRewardsResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	pool, err := m.keeper.DepositRewards(ctx, msg.Depositor, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgDepositRewardsResponse{
		NewEndTime: pool.EndTime,
	}, nil
}

// ApplyBoost handles MsgApplyBoost
func (m *MsgServer) ApplyBoost(ctx context.Context, msg *types.MsgApplyBoost) (*types.MsgApplyBoostResponse, error) {
	stake, err := m.keeper.ApplyBoost(ctx, msg.Staker, msg.PoolID, msg.Kind, msg.ClassID, msg.TokenID, msg.Quantity)
	if err != nil {
		return nil, err
	}

	return &types.MsgApplyBoostResponse{
		BoostedWeight: stake.BoostedWeight.String(),
	}, nil
}

// RemoveBoost handles MsgRemoveBoost
func (m *MsgServer) RemoveBoost(ctx context.Context, msg *types.MsgRemoveBoost) (*types.MsgRemoveBoostResponse, error) {
	if _, err := m.keeper.RemoveBoost(ctx, msg.Staker, msg.PoolID); err != nil {
		return nil, err
	}
	return &types.MsgRemoveBoostResponse{}, nil
}

// EnableEmergency handles MsgEnableEmergency
func (m *MsgServer) EnableEmergency(ctx context.Context, msg *types.MsgEnableEmergency) (*types.MsgEnableEmergencyResponse, error) {
	if err := m.keeper.EnableEmergency(ctx, msg.Authority, msg.PoolID); err != nil {
		return nil, err
	}
	return &types.MsgEnableEmergencyResponse{}, nil
}

// EmergencyUnstake handles MsgEmergencyUnstake
func (m *MsgServer) EmergencyUnstake(ctx context.Context, msg *types.MsgEmergencyUnstake) (*types.MsgEmergencyUnstakeResponse, error) {
	stake, err := m.keeper.EmergencyUnstake(ctx, msg.Staker, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgEmergencyUnstakeResponse{
		Returned:  stake.Amount.String(),
		Forfeited: stake.EarnedUnclaimed.String(),
	}, nil
}

// TreasuryWithdraw handles MsgTreasuryWithdraw
func (m *MsgServer) TreasuryWithdraw(ctx context.Context, msg *types.MsgTreasuryWithdraw) (*types.MsgTreasuryWithdrawResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	receiptID, err := m.keeper.WithdrawToTreasury(ctx, msg.Authority, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgTreasuryWithdrawResponse{
		Withdrawn: amount.String(),
		ReceiptID: receiptID,
	}, nil
}
