package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrPoolNotFound      = errors.Register(ModuleName, 1, "pool not found")
	ErrPoolAlreadyExists = errors.Register(ModuleName, 2, "pool already exists for asset pair")
	ErrZeroDuration      = errors.Register(ModuleName, 3, "duration cannot be zero")
	ErrZeroRewardRate    = errors.Register(ModuleName, 4, "reward rate cannot be zero")
	ErrInvalidDecimals   = errors.Register(ModuleName, 5, "asset decimals exceed supported precision")

	ErrNoStake                    = errors.Register(ModuleName, 10, "no active stake")
	ErrZeroAmount                 = errors.Register(ModuleName, 11, "amount cannot be zero")
	ErrInsufficientStakedBalance  = errors.Register(ModuleName, 12, "insufficient staked balance")
	ErrNothingToHarvest           = errors.Register(ModuleName, 13, "nothing to harvest")
	ErrTooEarlyUnstake            = errors.Register(ModuleName, 14, "stake is still locked")
	ErrPoolFinished               = errors.Register(ModuleName, 15, "pool has finished")
	ErrInsufficientRewardBalance  = errors.Register(ModuleName, 16, "insufficient undistributed reward balance")
	ErrWithdrawWindowNotReached   = errors.Register(ModuleName, 17, "treasury withdraw window not reached")

	ErrEmergencyActive = errors.Register(ModuleName, 20, "pool is in emergency mode")
	ErrNotInEmergency  = errors.Register(ModuleName, 21, "pool is not in emergency mode")
	ErrUnauthorized    = errors.Register(ModuleName, 22, "unauthorized")

	ErrInvalidBoostPercent = errors.Register(ModuleName, 30, "boost percent must be in 1..100")
	ErrPoolNotBoostEnabled = errors.Register(ModuleName, 31, "pool is not boost enabled")
	ErrAlreadyBoosted      = errors.Register(ModuleName, 32, "stake is already boosted")
	ErrWrongCollection     = errors.Register(ModuleName, 33, "nft does not belong to the configured collection")
	ErrNoBoostToRemove     = errors.Register(ModuleName, 34, "no boost to remove")
	ErrNftQuantityInvalid  = errors.Register(ModuleName, 35, "nft quantity must be exactly one")
)
