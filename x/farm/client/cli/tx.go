package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/yield-farm/x/farm/types"
)

const (
	flagBoostPercent    = "boost-percent"
	flagBoostCollection = "boost-collection"
	flagCollateralKind  = "kind"
)

// GetTxCmd returns the transaction commands for the farm module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "farm",
		Short:                      "Farm module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdStake(),
		CmdUnstake(),
		CmdHarvest(),
		CmdDepositRewards(),
		CmdApplyBoost(),
		CmdRemoveBoost(),
		CmdEnableEmergency(),
		CmdEmergencyUnstake(),
		CmdTreasuryWithdraw(),
	)

	return cmd
}

// CmdCreatePool returns the command to create a reward pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [stake-denom] [reward-denom] [stake-decimals] [reward-decimals] [reward-amount] [duration-secs]",
		Short: "Create a staking pool funded with an initial reward deposit",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			stakeDecimals, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid stake decimals: %v", err)
			}
			rewardDecimals, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid reward decimals: %v", err)
			}
			duration, err := strconv.ParseUint(args[5], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid duration: %v", err)
			}

			boostPercent, _ := cmd.Flags().GetUint64(flagBoostPercent)
			boostCollection, _ := cmd.Flags().GetString(flagBoostCollection)

			msg := &types.MsgCreatePool{
				Creator:         clientCtx.GetFromAddress().String(),
				StakeDenom:      args[0],
				RewardDenom:     args[1],
				StakeDecimals:   uint32(stakeDecimals),
				RewardDecimals:  uint32(rewardDecimals),
				RewardAmount:    args[4],
				DurationSecs:    duration,
				BoostPercent:    boostPercent,
				BoostCollection: boostCollection,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint64(flagBoostPercent, 0, "NFT boost uplift in percent (1-100)")
	cmd.Flags().String(flagBoostCollection, "", "NFT collection eligible for boost")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdStake returns the command to stake principal
func CmdStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake [pool-id] [amount]",
		Short: "Stake principal into a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgStake{
				Staker: clientCtx.GetFromAddress().String(),
				PoolID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUnstake returns the command to withdraw principal
func CmdUnstake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstake [pool-id] [amount]",
		Short: "Withdraw staked principal from a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgUnstake{
				Staker: clientCtx.GetFromAddress().String(),
				PoolID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdHarvest returns the command to claim accrued reward
func CmdHarvest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest [pool-id]",
		Short: "Claim accrued reward from a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgHarvest{
				Staker: clientCtx.GetFromAddress().String(),
				PoolID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDepositRewards returns the command to top up a pool's reward stream
func CmdDepositRewards() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit-rewards [pool-id] [amount]",
		Short: "Top up a pool's reward stream, extending its end time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDepositRewards{
				Depositor: clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApplyBoost returns the command to attach NFT boost collateral
func CmdApplyBoost() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-boost [pool-id] [class-id] [token-id]",
		Short: "Attach an NFT from the pool's eligible collection as boost collateral",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			kind, _ := cmd.Flags().GetString(flagCollateralKind)

			msg := &types.MsgApplyBoost{
				Staker:   clientCtx.GetFromAddress().String(),
				PoolID:   args[0],
				Kind:     kind,
				ClassID:  args[1],
				TokenID:  args[2],
				Quantity: 1,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagCollateralKind, types.CollateralKindInline, "collateral kind (inline | by_reference)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRemoveBoost returns the command to detach boost collateral
func CmdRemoveBoost() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-boost [pool-id]",
		Short: "Detach boost collateral and recover the NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRemoveBoost{
				Staker: clientCtx.GetFromAddress().String(),
				PoolID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdEnableEmergency returns the command to lock a pool into emergency mode
func CmdEnableEmergency() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable-emergency [pool-id]",
		Short: "Lock a pool into emergency mode (admin only, one-way)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgEnableEmergency{
				Authority: clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdEmergencyUnstake returns the command to exit a position under emergency
func CmdEmergencyUnstake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency-unstake [pool-id]",
		Short: "Exit a position during emergency, forfeiting unclaimed reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgEmergencyUnstake{
				Staker: clientCtx.GetFromAddress().String(),
				PoolID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTreasuryWithdraw returns the command to reclaim undistributed reward
func CmdTreasuryWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treasury-withdraw [pool-id] [amount]",
		Short: "Reclaim undistributed reward to the treasury (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTreasuryWithdraw{
				Authority: clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
