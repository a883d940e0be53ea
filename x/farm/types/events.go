package types

// Event types emitted after a successful mutation.
const (
	EventTypeCreatePool       = "farm_create_pool"
	EventTypeStake            = "farm_stake"
	EventTypeUnstake          = "farm_unstake"
	EventTypeHarvest          = "farm_harvest"
	EventTypeDepositRewards   = "farm_deposit_rewards"
	EventTypeBoost            = "farm_boost"
	EventTypeRemoveBoost      = "farm_remove_boost"
	EventTypeEnableEmergency  = "farm_enable_emergency"
	EventTypeEmergencyUnstake = "farm_emergency_unstake"
	EventTypeTreasuryWithdraw = "farm_treasury_withdraw"
)

// Event attribute keys
const (
	AttributeKeyPoolID     = "pool_id"
	AttributeKeyUser       = "user"
	AttributeKeyAmount     = "amount"
	AttributeKeyNewEndTime = "new_end_time"
	AttributeKeyReceiptID  = "receipt_id"
	AttributeKeyForfeited  = "forfeited_reward"
	AttributeKeyClassID    = "class_id"
	AttributeKeyTokenID    = "token_id"
)
