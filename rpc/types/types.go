// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// ReceiptLogResult 解码后的日志
type ReceiptLogResult struct {
	Ty     int32           `json:"ty"`
	TyName string          `json:"tyName"`
	Log    json.RawMessage `json:"log"`
	RawLog string          `json:"rawLog"`
}

// ReceiptDataResult 解码后的回执
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

// ReplyTx 交易执行结果
type ReplyTx struct {
	Hash      string             `json:"hash"`
	Slot      int64              `json:"slot"`
	BlockTime int64              `json:"blockTime"`
	Receipt   *ReceiptDataResult `json:"receipt,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Account 账户, 金额同时给出整数和按 Coin 换算后的字符串
type Account struct {
	Addr    string `json:"addr"`
	Balance int64  `json:"balance"`
	Frozen  int64  `json:"frozen"`
	Amount  string `json:"amount"`
}

// ReqFaucet 水龙头
type ReqFaucet struct {
	Addr string `json:"addr" binding:"required"`
}

// ReplyError 错误
type ReplyError struct {
	Error string `json:"error"`
}

// TyName ExecOk/ExecPack/ExecErr
func TyName(ty int32) string {
	switch ty {
	case types.ExecErr:
		return "ExecErr"
	case types.ExecPack:
		return "ExecPack"
	case types.ExecOk:
		return "ExecOk"
	}
	return "Unknown"
}

// DecodeLog 解码回执, 执行器自己的日志使用 ety 的日志表
func DecodeLog(ety types.ExecutorType, rlog *types.ReceiptData) (*ReceiptDataResult, error) {
	rd := &ReceiptDataResult{Ty: rlog.Ty, TyName: TyName(rlog.Ty)}
	for _, l := range rlog.Logs {
		var v interface{}
		var name string
		switch l.Ty {
		case types.TyLogErr:
			v, name = &types.ReceiptExecErr{}, "LogErr"
		case types.TyLogTransfer:
			v, name = &types.ReceiptAccountTransfer{}, "LogTransfer"
		case types.TyLogDeposit:
			v, name = &types.ReceiptAccountTransfer{}, "LogDeposit"
		}
		if v != nil {
			if err := types.Decode(l.Log, v); err != nil {
				return nil, err
			}
		} else if ety != nil {
			if info, ok := ety.GetLogMap()[l.Ty]; ok {
				name = info.Name
				decoded, err := ety.DecodeReceiptLog(l.Ty, l.Log)
				if err != nil {
					return nil, err
				}
				v = decoded
			}
		}
		if name == "" {
			name = "unkownType"
		}
		var logIns json.RawMessage
		if v != nil {
			data, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			logIns = data
		}
		rd.Logs = append(rd.Logs, &ReceiptLogResult{Ty: l.Ty, TyName: name, Log: logIns, RawLog: common.ToHex(l.Log)})
	}
	return rd, nil
}

// NewReplyTx 执行结果转为 json 结构, err 为执行错误 (ExecPack 时结果和错误同时存在)
func NewReplyTx(ety types.ExecutorType, result *executor.ExecResult, err error) (*ReplyTx, error) {
	reply := &ReplyTx{}
	if err != nil {
		reply.Error = errors.Cause(err).Error()
	}
	if result == nil {
		return reply, nil
	}
	reply.Hash = common.ToHex(result.Hash)
	reply.Slot = result.Slot
	reply.BlockTime = result.BlockTime
	if result.Receipt != nil {
		rd, derr := DecodeLog(ety, result.Receipt)
		if derr != nil {
			return nil, derr
		}
		reply.Receipt = rd
	}
	return reply, nil
}
