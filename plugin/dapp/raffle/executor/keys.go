// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/address"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

//状态数据
func calcRoundKey(round uint64) []byte {
	return types.CalcStateKey(rty.RaffleX, fmt.Sprintf("round-%020d", round))
}

func calcPositionKey(round uint64, buyer string, start uint64) []byte {
	return types.CalcStateKey(rty.RaffleX, fmt.Sprintf("position-%020d-%s-%020d", round, buyer, start))
}

func calcProfileKey(addr string) []byte {
	return types.CalcStateKey(rty.RaffleX, "profile-"+addr)
}

//本地索引
func calcOwnerPrefix(round uint64, buyer string) []byte {
	return types.CalcLocalKey(rty.RaffleX, fmt.Sprintf("owner-%020d-%s-", round, buyer))
}

func calcOwnerKey(round uint64, buyer string, start uint64) []byte {
	return append(calcOwnerPrefix(round, buyer), []byte(fmt.Sprintf("%020d", start))...)
}

func calcRangePrefix(round uint64) []byte {
	return types.CalcLocalKey(rty.RaffleX, fmt.Sprintf("range-%020d-", round))
}

func calcRangeKey(round uint64, start uint64) []byte {
	return append(calcRangePrefix(round), []byte(fmt.Sprintf("%020d", start))...)
}

func calcLatestRoundKey() []byte {
	return types.CalcLocalKey(rty.RaffleX, "latest")
}

// vaultAddress 每一轮的奖池地址
func vaultAddress(round uint64) string {
	return address.DeriveAddress(rty.VaultNamespace, common.Uint64LE(round))
}
