package types

import (
	"context"
	"fmt"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types for the farm module
const (
	TypeMsgCreatePool       = "create_pool"
	TypeMsgStake            = "stake"
	TypeMsgUnstake          = "unstake"
	TypeMsgHarvest          = "harvest"
	TypeMsgDepositRewards   = "deposit_rewards"
	TypeMsgApplyBoost       = "apply_boost"
	TypeMsgRemoveBoost      = "remove_boost"
	TypeMsgEnableEmergency  = "enable_emergency"
	TypeMsgEmergencyUnstake = "emergency_unstake"
	TypeMsgTreasuryWithdraw = "treasury_withdraw"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgStake{},
		&MsgUnstake{},
		&MsgHarvest{},
		&MsgDepositRewards{},
		&MsgApplyBoost{},
		&MsgRemoveBoost{},
		&MsgEnableEmergency{},
		&MsgEmergencyUnstake{},
		&MsgTreasuryWithdraw{},
	)
}

// MsgServer defines the farm module's message service
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	Stake(context.Context, *MsgStake) (*MsgStakeResponse, error)
	Unstake(context.Context, *MsgUnstake) (*MsgUnstakeResponse, error)
	Harvest(context.Context, *MsgHarvest) (*MsgHarvestResponse, error)
	DepositRewards(context.Context, *MsgDepositRewards) (*MsgDepositRewardsResponse, error)
	ApplyBoost(context.Context, *MsgApplyBoost) (*MsgApplyBoostResponse, error)
	RemoveBoost(context.Context, *MsgRemoveBoost) (*MsgRemoveBoostResponse, error)
	EnableEmergency(context.Context, *MsgEnableEmergency) (*MsgEnableEmergencyResponse, error)
	EmergencyUnstake(context.Context, *MsgEmergencyUnstake) (*MsgEmergencyUnstakeResponse, error)
	TreasuryWithdraw(context.Context, *MsgTreasuryWithdraw) (*MsgTreasuryWithdrawResponse, error)
}

// RegisterMsgServer registers the MsgServer with the message service router
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// Messages are routed through the module handler; gRPC service
	// descriptors are generated in a later milestone.
}

// ============ MsgCreatePool ============

// MsgCreatePool registers a pool for a staked-asset/reward-asset pair and
// funds its reward stream.
type MsgCreatePool struct {
	Creator         string `json:"creator"`
	StakeDenom      string `json:"stake_denom"`
	RewardDenom     string `json:"reward_denom"`
	StakeDecimals   uint32 `json:"stake_decimals"`
	RewardDecimals  uint32 `json:"reward_decimals"`
	RewardAmount    string `json:"reward_amount"`
	DurationSecs    uint64 `json:"duration_secs"`
	BoostPercent    uint64 `json:"boost_percent,omitempty"`
	BoostCollection string `json:"boost_collection,omitempty"`
}

func (msg MsgCreatePool) Route() string { return ModuleName }
func (msg MsgCreatePool) Type() string  { return TypeMsgCreatePool }

func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.StakeDenom); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.RewardDenom); err != nil {
		return err
	}
	if msg.StakeDecimals > MaxStakeDecimals || msg.RewardDecimals > MaxRewardDecimals {
		return ErrInvalidDecimals
	}
	if msg.DurationSecs == 0 {
		return ErrZeroDuration
	}
	return nil
}

func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

func (*MsgCreatePool) ProtoMessage()    {}
func (msg *MsgCreatePool) Reset()       { *msg = MsgCreatePool{} }
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s, Pair: %s/%s}", msg.Creator, msg.StakeDenom, msg.RewardDenom)
}
func (msg *MsgCreatePool) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgCreatePool" }

// MsgCreatePoolResponse is the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID           string `json:"pool_id"`
	RewardRatePerSec string `json:"reward_rate_per_sec"`
	EndTime          uint64 `json:"end_time"`
}

// ============ MsgStake ============

// MsgStake adds principal to the sender's position.
type MsgStake struct {
	Staker string `json:"staker"`
	PoolID string `json:"pool_id"`
	Amount string `json:"amount"`
}

func (msg MsgStake) Route() string { return ModuleName }
func (msg MsgStake) Type() string  { return TypeMsgStake }

func (msg MsgStake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgStake) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgStake) ProtoMessage()    {}
func (msg *MsgStake) Reset()       { *msg = MsgStake{} }
func (msg MsgStake) String() string {
	return fmt.Sprintf("MsgStake{Staker: %s, PoolID: %s, Amount: %s}", msg.Staker, msg.PoolID, msg.Amount)
}
func (msg *MsgStake) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgStake" }

// MsgStakeResponse is the Stake response
type MsgStakeResponse struct {
	StakedTotal string `json:"staked_total"`
	UnlockTime  uint64 `json:"unlock_time"`
}

// ============ MsgUnstake ============

// MsgUnstake removes principal from the sender's position.
type MsgUnstake struct {
	Staker string `json:"staker"`
	PoolID string `json:"pool_id"`
	Amount string `json:"amount"`
}

func (msg MsgUnstake) Route() string { return ModuleName }
func (msg MsgUnstake) Type() string  { return TypeMsgUnstake }

func (msg MsgUnstake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgUnstake) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgUnstake) ProtoMessage()    {}
func (msg *MsgUnstake) Reset()       { *msg = MsgUnstake{} }
func (msg MsgUnstake) String() string {
	return fmt.Sprintf("MsgUnstake{Staker: %s, PoolID: %s, Amount: %s}", msg.Staker, msg.PoolID, msg.Amount)
}
func (msg *MsgUnstake) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgUnstake" }

// MsgUnstakeResponse is the Unstake response
type MsgUnstakeResponse struct {
	Returned    string `json:"returned"`
	StakedTotal string `json:"staked_total"`
}

// ============ MsgHarvest ============

// MsgHarvest pays out the sender's settled reward.
type MsgHarvest struct {
	Staker string `json:"staker"`
	PoolID string `json:"pool_id"`
}

func (msg MsgHarvest) Route() string { return ModuleName }
func (msg MsgHarvest) Type() string  { return TypeMsgHarvest }

func (msg MsgHarvest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgHarvest) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgHarvest) ProtoMessage()    {}
func (msg *MsgHarvest) Reset()       { *msg = MsgHarvest{} }
func (msg MsgHarvest) String() string {
	return fmt.Sprintf("MsgHarvest{Staker: %s, PoolID: %s}", msg.Staker, msg.PoolID)
}
func (msg *MsgHarvest) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgHarvest" }

// MsgHarvestResponse is the Harvest response
type MsgHarvestResponse struct {
	Reward    string `json:"reward"`
	ReceiptID string `json:"receipt_id"`
}

// ============ MsgDepositRewards ============

// MsgDepositRewards tops up the reward stream, extending the pool end.
type MsgDepositRewards struct {
	Depositor string `json:"depositor"`
	PoolID    string `json:"pool_id"`
	Amount    string `json:"amount"`
}

func (msg MsgDepositRewards) Route() string { return ModuleName }
func (msg MsgDepositRewards) Type() string  { return TypeMsgDepositRewards }

func (msg MsgDepositRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgDepositRewards) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

func (*MsgDepositRewards) ProtoMessage()    {}
func (msg *MsgDepositRewards) Reset()       { *msg = MsgDepositRewards{} }
func (msg MsgDepositRewards) String() string {
	return fmt.Sprintf("MsgDepositRewards{Depositor: %s, PoolID: %s, Amount: %s}", msg.Depositor, msg.PoolID, msg.Amount)
}
func (msg *MsgDepositRewards) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgDepositRewards" }

// MsgDepositRewardsResponse is the DepositRewards response
type MsgDepositRewardsResponse struct {
	NewEndTime uint64 `json:"new_end_time"`
}

// ============ MsgApplyBoost ============

// MsgApplyBoost attaches an eligible NFT as boost collateral.
type MsgApplyBoost struct {
	Staker   string `json:"staker"`
	PoolID   string `json:"pool_id"`
	Kind     string `json:"kind"` // inline | by_reference
	ClassID  string `json:"class_id"`
	TokenID  string `json:"token_id"`
	Quantity uint64 `json:"quantity"`
}

func (msg MsgApplyBoost) Route() string { return ModuleName }
func (msg MsgApplyBoost) Type() string  { return TypeMsgApplyBoost }

func (msg MsgApplyBoost) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Kind != CollateralKindInline && msg.Kind != CollateralKindByReference {
		return ErrWrongCollection
	}
	return nil
}

func (msg MsgApplyBoost) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgApplyBoost) ProtoMessage()    {}
func (msg *MsgApplyBoost) Reset()       { *msg = MsgApplyBoost{} }
func (msg MsgApplyBoost) String() string {
	return fmt.Sprintf("MsgApplyBoost{Staker: %s, PoolID: %s, NFT: %s/%s}", msg.Staker, msg.PoolID, msg.ClassID, msg.TokenID)
}
func (msg *MsgApplyBoost) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgApplyBoost" }

// MsgApplyBoostResponse is the ApplyBoost response
type MsgApplyBoostResponse struct {
	BoostedWeight string `json:"boosted_weight"`
}

// ============ MsgRemoveBoost ============

// MsgRemoveBoost detaches boost collateral and returns the NFT.
type MsgRemoveBoost struct {
	Staker string `json:"staker"`
	PoolID string `json:"pool_id"`
}

func (msg MsgRemoveBoost) Route() string { return ModuleName }
func (msg MsgRemoveBoost) Type() string  { return TypeMsgRemoveBoost }

func (msg MsgRemoveBoost) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgRemoveBoost) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgRemoveBoost) ProtoMessage()    {}
func (msg *MsgRemoveBoost) Reset()       { *msg = MsgRemoveBoost{} }
func (msg MsgRemoveBoost) String() string {
	return fmt.Sprintf("MsgRemoveBoost{Staker: %s, PoolID: %s}", msg.Staker, msg.PoolID)
}
func (msg *MsgRemoveBoost) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgRemoveBoost" }

// MsgRemoveBoostResponse is the RemoveBoost response
type MsgRemoveBoostResponse struct{}

// ============ MsgEnableEmergency ============

// MsgEnableEmergency flips a pool into emergency mode. One-way.
type MsgEnableEmergency struct {
	Authority string `json:"authority"`
	PoolID    string `json:"pool_id"`
}

func (msg MsgEnableEmergency) Route() string { return ModuleName }
func (msg MsgEnableEmergency) Type() string  { return TypeMsgEnableEmergency }

func (msg MsgEnableEmergency) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgEnableEmergency) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

func (*MsgEnableEmergency) ProtoMessage()    {}
func (msg *MsgEnableEmergency) Reset()       { *msg = MsgEnableEmergency{} }
func (msg MsgEnableEmergency) String() string {
	return fmt.Sprintf("MsgEnableEmergency{Authority: %s, PoolID: %s}", msg.Authority, msg.PoolID)
}
func (msg *MsgEnableEmergency) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgEnableEmergency" }

// MsgEnableEmergencyResponse is the EnableEmergency response
type MsgEnableEmergencyResponse struct{}

// ============ MsgEmergencyUnstake ============

// MsgEmergencyUnstake exits a position during emergency, forfeiting
// unclaimed reward.
type MsgEmergencyUnstake struct {
	Staker string `json:"staker"`
	PoolID string `json:"pool_id"`
}

func (msg MsgEmergencyUnstake) Route() string { return ModuleName }
func (msg MsgEmergencyUnstake) Type() string  { return TypeMsgEmergencyUnstake }

func (msg MsgEmergencyUnstake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgEmergencyUnstake) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

func (*MsgEmergencyUnstake) ProtoMessage()    {}
func (msg *MsgEmergencyUnstake) Reset()       { *msg = MsgEmergencyUnstake{} }
func (msg MsgEmergencyUnstake) String() string {
	return fmt.Sprintf("MsgEmergencyUnstake{Staker: %s, PoolID: %s}", msg.Staker, msg.PoolID)
}
func (msg *MsgEmergencyUnstake) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgEmergencyUnstake" }

// MsgEmergencyUnstakeResponse is the EmergencyUnstake response
type MsgEmergencyUnstakeResponse struct {
	Returned  string `json:"returned"`
	Forfeited string `json:"forfeited"`
}

// ============ MsgTreasuryWithdraw ============

// MsgTreasuryWithdraw reclaims undistributed reward after the grace
// period (or immediately under emergency).
type MsgTreasuryWithdraw struct {
	Authority string `json:"authority"`
	PoolID    string `json:"pool_id"`
	Amount    string `json:"amount"`
}

func (msg MsgTreasuryWithdraw) Route() string { return ModuleName }
func (msg MsgTreasuryWithdraw) Type() string  { return TypeMsgTreasuryWithdraw }

func (msg MsgTreasuryWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

func (msg MsgTreasuryWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

func (*MsgTreasuryWithdraw) ProtoMessage()    {}
func (msg *MsgTreasuryWithdraw) Reset()       { *msg = MsgTreasuryWithdraw{} }
func (msg MsgTreasuryWithdraw) String() string {
	return fmt.Sprintf("MsgTreasuryWithdraw{Authority: %s, PoolID: %s, Amount: %s}", msg.Authority, msg.PoolID, msg.Amount)
}
func (msg *MsgTreasuryWithdraw) XXX_MessageName() string { return "yieldfarm.farm.v1.MsgTreasuryWithdraw" }

// MsgTreasuryWithdrawResponse is the TreasuryWithdraw response
type MsgTreasuryWithdrawResponse struct {
	Withdrawn string `json:"withdrawn"`
	ReceiptID string `json:"receipt_id"`
}
