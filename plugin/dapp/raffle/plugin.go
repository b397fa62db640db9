// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raffle 周期性抽奖: 购买号码, 过期开奖, 中奖者领取奖池并开启下一轮
package raffle

import (
	"github.com/33cn/raffle/plugin/dapp/raffle/commands"
	"github.com/33cn/raffle/plugin/dapp/raffle/executor"
	"github.com/33cn/raffle/plugin/dapp/raffle/rpc"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     rty.RaffleX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.RaffleCmd,
		RPC:      rpc.Init,
	})
}
