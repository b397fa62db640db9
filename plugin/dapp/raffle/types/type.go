// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"

	"github.com/33cn/raffle/types"
)

var (
	actionName = map[string]int32{
		"Activate": RaffleActionActivate,
		"Buy":      RaffleActionBuy,
		"Finalize": RaffleActionFinalize,
		"Claim":    RaffleActionClaim,
	}
	logmap = map[int32]*types.LogInfo{
		TyLogRaffleActivate:    {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleActivate"},
		TyLogRaffleRoundCreate: {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleRoundCreate"},
		TyLogRaffleBuy:         {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleBuy"},
		TyLogRaffleExtend:      {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleExtend"},
		TyLogRaffleDraw:        {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleDraw"},
		TyLogRaffleClaim:       {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleClaim"},
	}
)

// RaffleType def
type RaffleType struct {
	types.ExecTypeBase
}

// NewType method
func NewType() *RaffleType {
	c := &RaffleType{}
	c.SetChild(c)
	return c
}

// GetName 获取执行器名称
func (r *RaffleType) GetName() string {
	return RaffleX
}

// GetPayload method
func (r *RaffleType) GetPayload() types.ExecutorAction {
	return &RaffleAction{}
}

// GetTypeMap method
func (r *RaffleType) GetTypeMap() map[string]int32 {
	return actionName
}

// GetLogMap method
func (r *RaffleType) GetLogMap() map[int32]*types.LogInfo {
	return logmap
}

// CreateTx 构造交易, from 为宿主认证后的调用者
func CreateTx(from string, action *RaffleAction, nonce int64) *types.Transaction {
	return &types.Transaction{
		Execer:  []byte(RaffleX),
		Payload: types.Encode(action),
		From:    from,
		Nonce:   nonce,
	}
}

// NewActivate action
func NewActivate(feeTarget string) *RaffleAction {
	return &RaffleAction{Ty: RaffleActionActivate, Activate: &RaffleActivate{FeeTarget: feeTarget}}
}

// NewBuy action
func NewBuy(round uint64, count uint32, feeTarget string) *RaffleAction {
	return &RaffleAction{Ty: RaffleActionBuy, Buy: &RaffleBuy{RoundNumber: round, EntryCount: count, FeeTarget: feeTarget}}
}

// NewFinalize action
func NewFinalize(round uint64) *RaffleAction {
	return &RaffleAction{Ty: RaffleActionFinalize, Finalize: &RaffleFinalize{RoundNumber: round}}
}

// NewClaim action
func NewClaim(round uint64, pos *PositionRef) *RaffleAction {
	return &RaffleAction{Ty: RaffleActionClaim, Claim: &RaffleClaim{RoundNumber: round, Position: pos}}
}
