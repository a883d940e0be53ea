package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the farm module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "farm",
		Short:                      "Querying commands for the farm module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQueryStake(),
		CmdQueryPending(),
	)

	return cmd
}

// CmdQueryPool returns the command to query one pool
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a pool's state and accumulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pool query requires running node connection")
			fmt.Printf("Use REST API: GET /yieldfarm/farm/v1/pool/%s\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPools returns the command to query all pools
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query all pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pools query requires running node connection")
			fmt.Println("Use REST API: GET /yieldfarm/farm/v1/pools")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryStake returns the command to query a staker's position
func CmdQueryStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake [pool-id] [address]",
		Short: "Query a staker's position in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Stake query requires running node connection")
			fmt.Printf("Use REST API: GET /yieldfarm/farm/v1/stake/%s/%s\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPending returns the command to preview a harvest
func CmdQueryPending() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending [pool-id] [address]",
		Short: "Preview the reward a harvest would pay right now",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pending reward query requires running node connection")
			fmt.Printf("Use REST API: GET /yieldfarm/farm/v1/pending/%s/%s\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
