// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands raffle 命令行
package commands

import (
	"fmt"
	"os"
	"strconv"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/rpc/jsonclient"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/spf13/cobra"
)

// RaffleCmd raffle 命令
func RaffleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raffle",
		Short: "Raffle management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.PersistentFlags().StringP("addr", "a", "", "caller address")
	cmd.AddCommand(
		ActivateCmd(),
		BuyCmd(),
		FinalizeCmd(),
		ClaimCmd(),
		RoundCmd(),
		PositionsCmd(),
		WinnerCmd(),
		VaultCmd(),
		ProfileCmd(),
		ConfigCmd(),
	)
	return cmd
}

func callerCtx(cmd *cobra.Command, path string, params, res interface{}) *jsonclient.RPCCtx {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	return jsonclient.NewRPCCtx(rpcLaddr, rty.RaffleX+"/"+path, params, res).SetCaller(addr)
}

func requireAddr(cmd *cobra.Command) bool {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		fmt.Fprintln(os.Stderr, "caller address is required, use --addr")
		return false
	}
	return true
}

// ActivateCmd 激活账户
func ActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Activate caller account, pay the one-time activation fee",
		Run:   activate,
	}
	cmd.Flags().StringP("fee_target", "t", "", "fee collector, empty means the configured one")
	return cmd
}

func activate(cmd *cobra.Command, args []string) {
	if !requireAddr(cmd) {
		return
	}
	target, _ := cmd.Flags().GetString("fee_target")
	var res rpctypes.ReplyTx
	callerCtx(cmd, "activate", &rty.RaffleActivate{FeeTarget: target}, &res).Run()
}

// BuyCmd 购买号码
func BuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy one entry of a round",
		Run:   buy,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	cmd.Flags().Uint32P("count", "c", 1, "entry count, only 1 is accepted")
	cmd.Flags().StringP("fee_target", "t", "", "fee collector, empty means the configured one")
	return cmd
}

func buy(cmd *cobra.Command, args []string) {
	if !requireAddr(cmd) {
		return
	}
	round, _ := cmd.Flags().GetUint64("round")
	count, _ := cmd.Flags().GetUint32("count")
	target, _ := cmd.Flags().GetString("fee_target")
	params := &rty.RaffleBuy{RoundNumber: round, EntryCount: count, FeeTarget: target}
	var res rpctypes.ReplyTx
	callerCtx(cmd, "buy", params, &res).Run()
}

// FinalizeCmd 开奖
func FinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize an expired round",
		Run:   finalize,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	return cmd
}

func finalize(cmd *cobra.Command, args []string) {
	if !requireAddr(cmd) {
		return
	}
	round, _ := cmd.Flags().GetUint64("round")
	var res rpctypes.ReplyTx
	callerCtx(cmd, "finalize", &rty.RaffleFinalize{RoundNumber: round}, &res).Run()
}

// ClaimCmd 领奖
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the prize of an ended round",
		Run:   claim,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	cmd.Flags().Int64P("start", "s", -1, "start index of the caller's position, default the winning one")
	return cmd
}

func claim(cmd *cobra.Command, args []string) {
	if !requireAddr(cmd) {
		return
	}
	round, _ := cmd.Flags().GetUint64("round")
	start, _ := cmd.Flags().GetInt64("start")
	addr, _ := cmd.Flags().GetString("addr")
	params := &rty.RaffleClaim{RoundNumber: round}
	if start >= 0 {
		params.Position = &rty.PositionRef{RoundNumber: round, Buyer: addr, StartIndex: uint64(start)}
	}
	var res rpctypes.ReplyTx
	callerCtx(cmd, "claim", params, &res).Run()
}

// RoundCmd 查询轮次
func RoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Show a round, the latest one if no round given",
		Run:   showRound,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	return cmd
}

// RoundResult 轮次的显示结构
type RoundResult struct {
	RoundNumber  uint64  `json:"roundNumber"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	TotalEntries uint64  `json:"totalEntries"`
	WinningIndex *uint64 `json:"winningIndex,omitempty"`
	Status       string  `json:"status"`
}

func parseRoundRes(arg interface{}) (interface{}, error) {
	r := arg.(*rty.Round)
	return &RoundResult{
		RoundNumber:  r.RoundNumber,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		TotalEntries: r.TotalEntries,
		WinningIndex: r.WinningIndex,
		Status:       rty.StatusName(r.Status),
	}, nil
}

func showRound(cmd *cobra.Command, args []string) {
	round, _ := cmd.Flags().GetUint64("round")
	path := "latest"
	if round > 0 {
		path = "round/" + strconv.FormatUint(round, 10)
	}
	var res rty.Round
	ctx := callerCtx(cmd, path, nil, &res)
	ctx.SetResultCb(parseRoundRes)
	ctx.Run()
}

// PositionsCmd 地址的区间
func PositionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List entry positions of an address in a round",
		Run:   positions,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	cmd.Flags().StringP("owner", "o", "", "owner address, default the caller")
	cmd.Flags().Int64P("after", "", -1, "list positions after this start index")
	cmd.Flags().Int32P("count", "c", 20, "max positions")
	return cmd
}

func positions(cmd *cobra.Command, args []string) {
	round, _ := cmd.Flags().GetUint64("round")
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner, _ = cmd.Flags().GetString("addr")
	}
	if owner == "" {
		fmt.Fprintln(os.Stderr, "owner address is required")
		return
	}
	after, _ := cmd.Flags().GetInt64("after")
	count, _ := cmd.Flags().GetInt32("count")
	path := fmt.Sprintf("round/%d/positions/%s?count=%d", round, owner, count)
	if after >= 0 {
		path += fmt.Sprintf("&after=%d", after)
	}
	var res rty.ReplyPositions
	callerCtx(cmd, path, nil, &res).Run()
}

// WinnerCmd 中奖区间
func WinnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winner",
		Short: "Show the winning position of an ended round",
		Run:   winner,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	return cmd
}

func winner(cmd *cobra.Command, args []string) {
	round, _ := cmd.Flags().GetUint64("round")
	var res rty.ReplyWinner
	callerCtx(cmd, fmt.Sprintf("round/%d/winner", round), nil, &res).Run()
}

// VaultCmd 奖池
func VaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show the prize vault of a round",
		Run:   vault,
	}
	cmd.Flags().Uint64P("round", "r", 0, "round number")
	cmd.MarkFlagRequired("round")
	return cmd
}

func vault(cmd *cobra.Command, args []string) {
	round, _ := cmd.Flags().GetUint64("round")
	var res map[string]interface{}
	callerCtx(cmd, fmt.Sprintf("round/%d/vault", round), nil, &res).Run()
}

// ProfileCmd 激活状态
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show activation profile of the caller",
		Run:   profile,
	}
	return cmd
}

func profile(cmd *cobra.Command, args []string) {
	if !requireAddr(cmd) {
		return
	}
	addr, _ := cmd.Flags().GetString("addr")
	var res rty.UserProfile
	callerCtx(cmd, "profile/"+addr, nil, &res).Run()
}

// ConfigCmd 配置
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show raffle config",
		Run:   config,
	}
	return cmd
}

func config(cmd *cobra.Command, args []string) {
	var res rty.RaffleConfig
	callerCtx(cmd, "config", nil, &res).Run()
}
