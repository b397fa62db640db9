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

// PositionDB 一次购买的号码区间, 创建后只会修改 Claimed
type PositionDB struct {
	rty.EntryPosition
}

// GetKVSet kv
func (p *PositionDB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&p.EntryPosition)
	kvset = append(kvset, &types.KeyValue{Key: calcPositionKey(p.RoundNumber, p.Buyer, p.StartIndex), Value: value})
	return kvset
}

// Save 写入交易缓存
func (p *PositionDB) Save(db dbm.KV) []*types.KeyValue {
	set := p.GetKVSet()
	for i := 0; i < len(set); i++ {
		if err := db.Set(set[i].Key, set[i].Value); err != nil {
			panic(errors.Wrap(err, "save position"))
		}
	}
	return set
}

func findPosition(db dbm.KV, ref *rty.PositionRef) (*PositionDB, error) {
	data, err := db.Get(calcPositionKey(ref.RoundNumber, ref.Buyer, ref.StartIndex))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, rty.ErrPositionNotFound
		}
		return nil, err
	}
	var p PositionDB
	if err := types.Decode(data, &p.EntryPosition); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileDB 账户激活记录
type ProfileDB struct {
	rty.UserProfile
}

// Save 写入交易缓存
func (p *ProfileDB) Save(db dbm.KV) []*types.KeyValue {
	kv := &types.KeyValue{Key: calcProfileKey(p.Addr), Value: types.Encode(&p.UserProfile)}
	if err := db.Set(kv.Key, kv.Value); err != nil {
		panic(errors.Wrap(err, "save profile"))
	}
	return []*types.KeyValue{kv}
}

// findProfile 不存在时返回未激活的记录
func findProfile(db dbm.KV, addr string) (*ProfileDB, error) {
	p := &ProfileDB{}
	p.Addr = addr
	data, err := db.Get(calcProfileKey(addr))
	if err == types.ErrNotFound {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := types.Decode(data, &p.UserProfile); err != nil {
		return nil, err
	}
	return p, nil
}
