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

const (
	defaultListCount = 20
	maxListCount     = 100
)

// Query_GetRound 查询一轮
func (r *Raffle) Query_GetRound(param *rty.ReqRound) (interface{}, error) {
	round, err := findRound(r.GetStateDB(), param.RoundNumber)
	if err != nil {
		return nil, err
	}
	return &round.Round, nil
}

// Query_GetLatestRound 最新创建的一轮
func (r *Raffle) Query_GetLatestRound(param *rty.ReqNil) (interface{}, error) {
	latest, err := r.getLatest()
	if err != nil {
		return nil, err
	}
	if latest == 0 {
		return nil, rty.ErrRoundNotFound
	}
	return r.Query_GetRound(&rty.ReqRound{RoundNumber: latest})
}

// Query_GetPosition 查询区间
func (r *Raffle) Query_GetPosition(param *rty.PositionRef) (interface{}, error) {
	pos, err := findPosition(r.GetStateDB(), param)
	if err != nil {
		return nil, err
	}
	return &pos.EntryPosition, nil
}

// Query_GetProfile 激活状态
func (r *Raffle) Query_GetProfile(param *rty.ReqAddr) (interface{}, error) {
	if param.Addr == "" {
		return nil, types.ErrInvalidParam
	}
	profile, err := findProfile(r.GetStateDB(), param.Addr)
	if err != nil {
		return nil, err
	}
	return &profile.UserProfile, nil
}

// Query_GetVault 奖池地址以及余额
func (r *Raffle) Query_GetVault(param *rty.ReqRound) (interface{}, error) {
	vault := vaultAddress(param.RoundNumber)
	acc := r.GetCoinsAccount().LoadAccount(vault)
	return &rty.ReplyVault{RoundNumber: param.RoundNumber, Addr: vault, Balance: acc.Balance}, nil
}

// Query_ListPositions 地址在一轮中的区间, 按起始号码升序
func (r *Raffle) Query_ListPositions(param *rty.ReqRoundPositions) (interface{}, error) {
	if param.Addr == "" {
		return nil, types.ErrInvalidParam
	}
	count := param.Count
	if count <= 0 {
		count = defaultListCount
	}
	if count > maxListCount {
		count = maxListCount
	}
	prefix := calcOwnerPrefix(param.RoundNumber, param.Addr)
	var key []byte
	if param.After != nil {
		key = calcOwnerKey(param.RoundNumber, param.Addr, *param.After)
	}
	values, err := r.GetLocalDB().List(prefix, key, count, dbm.ListASC)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &rty.ReplyPositions{}
	for _, value := range values {
		pos, err := r.loadRef(value)
		if err != nil {
			return nil, err
		}
		reply.Positions = append(reply.Positions, &pos.EntryPosition)
	}
	return reply, nil
}

// Query_GetWinningPosition 中奖区间: 起始号码不大于中奖号码的最后一个区间
func (r *Raffle) Query_GetWinningPosition(param *rty.ReqRound) (interface{}, error) {
	round, err := findRound(r.GetStateDB(), param.RoundNumber)
	if err != nil {
		return nil, err
	}
	if !round.HasWinningIndex() {
		return nil, rty.ErrNoWinningIndex
	}
	index := *round.WinningIndex
	values, err := r.GetLocalDB().List(calcRangePrefix(round.RoundNumber), calcRangeKey(round.RoundNumber, index+1), 1, dbm.ListDESC)
	if err == types.ErrNotFound || (err == nil && len(values) == 0) {
		return nil, rty.ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	pos, err := r.loadRef(values[0])
	if err != nil {
		return nil, err
	}
	if !pos.Contains(index) {
		rlog.Error("GetWinningPosition index not covered", "round", round.RoundNumber, "index", index, "start", pos.StartIndex)
		return nil, errors.Wrapf(rty.ErrPositionNotFound, "index %d", index)
	}
	r1 := round.Round
	return &rty.ReplyWinner{Round: &r1, Position: &pos.EntryPosition}, nil
}

// Query_GetConfig 当前配置, 手续费地址为实际生效的地址
func (r *Raffle) Query_GetConfig(param *rty.ReqNil) (interface{}, error) {
	cfg := *r.cfg
	cfg.FeeCollector = cfg.Collector()
	return &cfg, nil
}

func (r *Raffle) loadRef(value []byte) (*PositionDB, error) {
	var ref rty.PositionRef
	if err := types.Decode(value, &ref); err != nil {
		return nil, err
	}
	return findPosition(r.GetStateDB(), &ref)
}
