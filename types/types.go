// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 账本宿主的公共数据结构, 编码以及配置
package types

import (
	"encoding/json"

	"github.com/33cn/raffle/common"
	"github.com/pkg/errors"
	"go.dedis.ch/protobuf"
)

//KeyValue kv
type KeyValue struct {
	Key   []byte
	Value []byte
}

//ReceiptLog 回执日志
type ReceiptLog struct {
	Ty  int32
	Log []byte
}

//Receipt 执行结果: KV 写入状态数据库, Logs 用于生成本地索引
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

//ReceiptData 交易执行后保存的回执
type ReceiptData struct {
	Ty   int32
	Logs []*ReceiptLog
}

//LocalDBSet 本地数据库的修改集合
type LocalDBSet struct {
	KV []*KeyValue
}

//Account 账户
type Account struct {
	Balance int64
	Frozen  int64
	Addr    string
}

//ReceiptAccountTransfer 账户变更前后的快照
type ReceiptAccountTransfer struct {
	Prev    *Account
	Current *Account
}

//ReceiptExecErr 执行失败的原因
type ReceiptExecErr struct {
	Err string
}

//Transaction 由宿主传入执行器的一次调用; From 是宿主认证过的调用者
type Transaction struct {
	Execer  []byte
	Payload []byte
	From    string
	Nonce   int64
}

//Hash 交易哈希
func (tx *Transaction) Hash() []byte {
	return common.Sha256(Encode(tx))
}

//Header 执行环境: 槽位号以及区块时间
type Header struct {
	Slot      int64
	BlockTime int64
}

//Encode 编码, 只在结构体定义错误时 panic
func Encode(data interface{}) []byte {
	b, err := protobuf.Encode(data)
	if err != nil {
		panic(err)
	}
	return b
}

//Decode 解码
func Decode(data []byte, msg interface{}) error {
	if err := protobuf.Decode(data, msg); err != nil {
		return errors.Wrap(ErrDecode, err.Error())
	}
	return nil
}

//MustDecode json 解码, 用于子模块配置
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	err := json.Unmarshal(data, v)
	if err != nil {
		panic(err)
	}
}

//AppendReceipt 合并两个 receipt 的 KV 和 Logs, Ty 取 r2
func AppendReceipt(r1, r2 *Receipt) *Receipt {
	if r1 == nil {
		return r2
	}
	if r2 == nil {
		return r1
	}
	return &Receipt{
		Ty:   r2.Ty,
		KV:   append(append([]*KeyValue{}, r1.KV...), r2.KV...),
		Logs: append(append([]*ReceiptLog{}, r1.Logs...), r2.Logs...),
	}
}
