// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 系统命令: 账户, 交易回执, 节点状态
package commands

import (
	"github.com/33cn/raffle/rpc/jsonclient"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GetBalanceCmd(),
		FaucetCmd(),
	)
	return cmd
}

// GetBalanceCmd get balance of an address
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of a account address",
		Run:   balance,
	}
	addBalanceFlags(cmd)
	return cmd
}

func addBalanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "account addr")
	cmd.MarkFlagRequired("addr")
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	var res rpctypes.Account
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "account/"+addr, nil, &res)
	ctx.Run()
}

// FaucetCmd 测试网水龙头
func FaucetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Get coins from the faucet of a dev node",
		Run:   faucet,
	}
	cmd.Flags().StringP("addr", "a", "", "account addr")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func faucet(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	var res rpctypes.Account
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "account/faucet", &rpctypes.ReqFaucet{Addr: addr}, &res)
	ctx.Run()
}

// TxCmd 交易回执
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Query transaction receipt by hash",
		Run:   queryTx,
	}
	cmd.Flags().StringP("hash", "s", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func queryTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	hash, _ := cmd.Flags().GetString("hash")
	var res rpctypes.ReplyTx
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "tx/"+hash, nil, &res)
	ctx.Run()
}

// StatusCmd 节点状态
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show node status",
		Run:   status,
	}
	return cmd
}

func status(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res map[string]interface{}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "status", nil, &res)
	ctx.Run()
}
