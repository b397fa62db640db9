// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/raffle/common/db"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// RoundDB 轮次记录
type RoundDB struct {
	rty.Round
}

// NewRoundDB 新的一轮, 时间窗口为 [now, now+duration)
func NewRoundDB(round uint64, now, duration int64) *RoundDB {
	r := &RoundDB{}
	r.RoundNumber = round
	r.StartTime = now
	r.EndTime = now + duration
	r.Status = rty.RoundActive
	return r
}

// GetKVSet 轮次对应的 kv
func (r *RoundDB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&r.Round)
	kvset = append(kvset, &types.KeyValue{Key: calcRoundKey(r.RoundNumber), Value: value})
	return kvset
}

// Save 写入交易缓存
func (r *RoundDB) Save(db dbm.KV) []*types.KeyValue {
	set := r.GetKVSet()
	for i := 0; i < len(set); i++ {
		if err := db.Set(set[i].Key, set[i].Value); err != nil {
			panic(errors.Wrap(err, "save round"))
		}
	}
	return set
}

// Expired 当前时间是否已经超过结束时间
func (r *RoundDB) Expired(now int64) bool {
	return now >= r.EndTime
}

func findRound(db dbm.KV, round uint64) (*RoundDB, error) {
	data, err := db.Get(calcRoundKey(round))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, rty.ErrRoundNotFound
		}
		rlog.Debug("findRound", "round", round, "err", err)
		return nil, err
	}
	var r RoundDB
	if err := types.Decode(data, &r.Round); err != nil {
		return nil, err
	}
	return &r, nil
}

func roundLog(ty int32, r *RoundDB, prev int32) *types.ReceiptLog {
	round := r.Round
	return &types.ReceiptLog{Ty: ty, Log: types.Encode(&rty.ReceiptRaffle{
		RoundNumber: r.RoundNumber,
		PrevStatus:  prev,
		Round:       &round,
		Vault:       vaultAddress(r.RoundNumber),
	})}
}

// createRound 新建一轮以及余额为 0 的奖池; 上一轮如果已经过期, 在同一笔交易里完成它的过期处理
func (a *Action) createRound(round uint64) (*RoundDB, *types.Receipt, error) {
	if round == 0 {
		return nil, nil, rty.ErrInvalidRoundNumber
	}
	receipt := &types.Receipt{Ty: types.ExecOk}
	if round > 1 {
		prev, err := findRound(a.db, round-1)
		if err != nil && err != rty.ErrRoundNotFound {
			return nil, nil, err
		}
		if prev != nil && prev.Status == rty.RoundActive && prev.Expired(a.blocktime) {
			rlog.Debug("createRound expire previous", "round", prev.RoundNumber)
			receipt = types.AppendReceipt(receipt, a.expire(prev))
		}
	}
	vault := vaultAddress(round)
	vacc := a.coinsAccount.LoadAccount(vault)
	if vacc.Balance != 0 {
		// 派生地址任何人都能转入, 提前转入的余额并入本轮奖池
		rlog.Warn("createRound vault not empty", "round", round, "vault", vault, "balance", vacc.Balance)
	}
	a.coinsAccount.SaveAccount(vacc)
	receipt.KV = append(receipt.KV, a.coinsAccount.GetKVSet(vacc)...)

	r := NewRoundDB(round, a.blocktime, a.cfg.RoundDuration)
	receipt.KV = append(receipt.KV, r.Save(a.db)...)
	receipt.Logs = append(receipt.Logs, roundLog(rty.TyLogRaffleRoundCreate, r, 0))
	rlog.Info("round created", "round", round, "start", r.StartTime, "end", r.EndTime, "vault", vault)
	return r, receipt, nil
}

// getOrCreateRound 不存在时新建; 已存在且在有效期内时沿用.
// 已存在但已过期: 返回过期处理的 receipt (ExecPack) 以及 ErrRoundExpired
func (a *Action) getOrCreateRound(round uint64) (*RoundDB, *types.Receipt, error) {
	r, err := findRound(a.db, round)
	if err == rty.ErrRoundNotFound {
		return a.createRound(round)
	}
	if err != nil {
		return nil, nil, err
	}
	if r.Status != rty.RoundActive {
		return nil, nil, rty.ErrRoundExpired
	}
	if r.Expired(a.blocktime) {
		receipt := a.expire(r)
		receipt.Ty = types.ExecPack
		return nil, receipt, rty.ErrRoundExpired
	}
	return r, &types.Receipt{Ty: types.ExecOk}, nil
}

// adoptOrCreateRound 领奖后开启下一轮, 下一轮已经存在时不做修改
func (a *Action) adoptOrCreateRound(round uint64) (*RoundDB, *types.Receipt, error) {
	r, err := findRound(a.db, round)
	if err == rty.ErrRoundNotFound {
		return a.createRound(round)
	}
	if err != nil {
		return nil, nil, err
	}
	return r, &types.Receipt{Ty: types.ExecOk}, nil
}

func (a *Action) vaultBalance(round uint64) int64 {
	return a.coinsAccount.LoadAccount(vaultAddress(round)).Balance
}
