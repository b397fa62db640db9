// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// execLocal 根据回执日志建立本地索引: 地址的区间列表, 起始号码到区间的映射, 最新的轮次
func (r *Raffle) execLocal(receipt *types.ReceiptData) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.Ty != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		switch item.Ty {
		case rty.TyLogRaffleBuy:
			var rr rty.ReceiptRaffle
			if err := types.Decode(item.Log, &rr); err != nil {
				return nil, err
			}
			pos := rr.Position
			if pos == nil {
				continue
			}
			ref := types.Encode(pos.Ref())
			set.KV = append(set.KV, &types.KeyValue{Key: calcOwnerKey(pos.RoundNumber, pos.Buyer, pos.StartIndex), Value: ref})
			set.KV = append(set.KV, &types.KeyValue{Key: calcRangeKey(pos.RoundNumber, pos.StartIndex), Value: ref})
		case rty.TyLogRaffleRoundCreate:
			var rr rty.ReceiptRaffle
			if err := types.Decode(item.Log, &rr); err != nil {
				return nil, err
			}
			kv, err := r.updateLatest(rr.RoundNumber)
			if err != nil {
				return nil, err
			}
			if kv != nil {
				set.KV = append(set.KV, kv)
			}
		}
	}
	return set, nil
}

func (r *Raffle) updateLatest(round uint64) (*types.KeyValue, error) {
	latest, err := r.getLatest()
	if err != nil {
		return nil, err
	}
	if latest >= round {
		return nil, nil
	}
	kv := &types.KeyValue{Key: calcLatestRoundKey(), Value: []byte(strconv.FormatUint(round, 10))}
	// 同一笔交易中可能创建两轮, 后面的日志需要读到前面的结果
	if err := r.GetLocalDB().Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	return kv, nil
}

func (r *Raffle) getLatest() (uint64, error) {
	value, err := r.GetLocalDB().Get(calcLatestRoundKey())
	if err == types.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(string(value), 10, 64)
}

// ExecLocal_Buy local
func (r *Raffle) ExecLocal_Buy(payload *rty.RaffleBuy, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(receipt)
}

// ExecLocal_Claim local
func (r *Raffle) ExecLocal_Claim(payload *rty.RaffleClaim, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(receipt)
}
