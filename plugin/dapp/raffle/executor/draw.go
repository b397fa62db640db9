// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"encoding/binary"

	"github.com/33cn/raffle/common"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// WinningIndex 中奖号码 = le64(keccak256(le64(round) || le64(slot))[:8]) % total.
// 输入都是链上可见的值, 任何人都可以重新计算; 轮次结束前这些值是可以预测的
func WinningIndex(round uint64, slot int64, total uint64) uint64 {
	if total == 0 {
		panic("WinningIndex: no entries")
	}
	buf := make([]byte, 0, 16)
	buf = append(buf, common.Uint64LE(round)...)
	buf = append(buf, common.Uint64LE(uint64(slot))...)
	hash := common.ShaKeccak256(buf)
	return binary.LittleEndian.Uint64(hash[:8]) % total
}

// expire 过期处理: 没有人购买时延长一个周期, 否则开奖并结束本轮
func (a *Action) expire(r *RoundDB) *types.Receipt {
	prev := r.Status
	var ty int32
	if r.TotalEntries == 0 {
		r.EndTime = a.blocktime + a.cfg.RoundDuration
		ty = rty.TyLogRaffleExtend
		rlog.Info("round extended", "round", r.RoundNumber, "end", r.EndTime)
	} else {
		index := WinningIndex(r.RoundNumber, a.slot, r.TotalEntries)
		r.WinningIndex = &index
		r.Status = rty.RoundEnded
		ty = rty.TyLogRaffleDraw
		rlog.Info("round drawn", "round", r.RoundNumber, "slot", a.slot, "total", r.TotalEntries, "winningIndex", index)
	}
	kv := r.Save(a.db)
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: []*types.ReceiptLog{roundLog(ty, r, prev)}}
}
