// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 账本宿主: 串行执行交易, 每笔交易的修改要么全部提交要么全部丢弃
package executor

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

var (
	metaKey     = types.CalcLocalKey("executor", "meta")
	coinsPrefix = []byte(account.SymbolPrefix("coins", "bty"))
)

// ErrReceiptKey 执行器修改了不属于它的 key
var ErrReceiptKey = errors.New("ErrReceiptKey")

// Clock 宿主时钟, 单位秒
type Clock interface {
	Now() int64
}

// SystemClock 系统时间
type SystemClock struct{}

// Now now
func (SystemClock) Now() int64 {
	return types.Now().Unix()
}

// execMeta 持久化的槽位和时间, 重启后继续单调递增
type execMeta struct {
	Slot      int64
	BlockTime int64
}

// ExecResult 一次执行的结果
type ExecResult struct {
	Hash      []byte
	Slot      int64
	BlockTime int64
	Receipt   *types.ReceiptData
}

// Executor 串行执行交易的宿主
type Executor struct {
	mu        sync.RWMutex
	db        dbm.DB
	state     *StateDB
	clock     Clock
	slot      int64
	blocktime int64
}

// New 加载持久化的槽位, clock 为空时使用系统时间
func New(db dbm.DB, clock Clock) (*Executor, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	e := &Executor{
		db:    db,
		state: NewStateDB(db),
		clock: clock,
	}
	value, err := db.Get(metaKey)
	if err != nil && err != dbm.ErrNotFoundInDb {
		return nil, errors.Wrap(err, "load executor meta")
	}
	if err == nil {
		var meta execMeta
		if err := types.Decode(value, &meta); err != nil {
			return nil, err
		}
		e.slot = meta.Slot
		e.blocktime = meta.BlockTime
	}
	elog.Info("executor init", "slot", e.slot, "blocktime", e.blocktime)
	return e, nil
}

// Slot 最新的槽位
func (e *Executor) Slot() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.slot
}

// BlockTime 最新提交的时间
func (e *Executor) BlockTime() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blocktime
}

// Close 关闭数据库
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.db.Close()
}

// nextEnv 下一个槽位和时间, 时间不会倒退
func (e *Executor) nextEnv() (int64, int64) {
	now := e.clock.Now()
	if now < e.blocktime {
		elog.Warn("clock goes back", "now", now, "last", e.blocktime)
		now = e.blocktime
	}
	return e.slot + 1, now
}

// ExecTx 执行一笔交易
// 执行成功(ExecOk) 所有修改提交; 返回 ExecPack 的错误只提交 receipt 中的 KV (过期轮次的修复);
// 其他错误全部回滚
func (e *Executor) ExecTx(tx *types.Transaction) (*ExecResult, error) {
	if tx == nil || len(tx.Execer) == 0 {
		return nil, types.ErrEmptyTx
	}
	if address.IsDerivedAddress(tx.From) {
		return nil, errors.Wrap(types.ErrInvalidAddress, "from derived address")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	execer := string(tx.Execer)
	driver, err := dapp.LoadDriver(execer)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer metrics.ExecTimer(execer).UpdateSince(start)

	slot, blocktime := e.nextEnv()
	action := driver.GetActionName(tx)
	e.state.Begin()
	driver.SetStateDB(e.state)
	driver.SetLocalDB(e.state)
	driver.SetEnv(slot, blocktime)

	receipt, execErr := e.execSafe(driver, tx)
	if execErr == nil && receipt != nil {
		if err := checkReceiptKeys(tx.Execer, receipt.KV); err != nil {
			execErr = err
			receipt = nil
		}
	}
	if execErr != nil {
		e.state.Rollback()
		if receipt == nil || receipt.Ty != types.ExecPack {
			elog.Debug("exec tx", "execer", execer, "action", action, "from", tx.From, "err", execErr)
			metrics.TxCounter(execer, action, "err").Inc(1)
			return nil, execErr
		}
		// 只提交修复数据
		e.state.Begin()
		for _, kv := range receipt.KV {
			if err := e.state.Set(kv.Key, kv.Value); err != nil {
				e.state.Rollback()
				return nil, err
			}
		}
		receipt.Logs = append(receipt.Logs, &types.ReceiptLog{Ty: types.TyLogErr, Log: types.Encode(&types.ReceiptExecErr{Err: execErr.Error()})})
		result, err := e.commit(tx, slot, blocktime, receipt)
		if err != nil {
			return nil, err
		}
		elog.Info("exec tx pack", "execer", execer, "action", action, "from", tx.From, "slot", slot, "err", execErr)
		metrics.TxCounter(execer, action, "pack").Inc(1)
		return result, execErr
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	rdata := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	set, err := driver.ExecLocal(tx, rdata, 0)
	if err != nil {
		e.state.Rollback()
		metrics.TxCounter(execer, action, "err").Inc(1)
		return nil, err
	}
	for _, kv := range set.KV {
		if err := e.state.Set(kv.Key, kv.Value); err != nil {
			e.state.Rollback()
			return nil, err
		}
	}
	result, err := e.commit(tx, slot, blocktime, receipt)
	if err != nil {
		return nil, err
	}
	elog.Debug("exec tx ok", "execer", execer, "action", action, "from", tx.From, "slot", slot)
	metrics.TxCounter(execer, action, "ok").Inc(1)
	return result, nil
}

func (e *Executor) execSafe(driver dapp.Driver, tx *types.Transaction) (receipt *types.Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			elog.Error("exec tx panic", "execer", string(tx.Execer), "info", r)
			receipt = nil
			err = errors.Wrap(types.ErrExecPanic, fmt.Sprint(r))
		}
	}()
	return driver.Exec(tx, 0)
}

// commit 记录回执和槽位, 和交易的修改一起写入
func (e *Executor) commit(tx *types.Transaction, slot, blocktime int64, receipt *types.Receipt) (*ExecResult, error) {
	hash := tx.Hash()
	rdata := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	meta := &execMeta{Slot: slot, BlockTime: blocktime}
	var err error
	if err = e.state.Set(calcTxReceiptKey(hash), types.Encode(rdata)); err == nil {
		err = e.state.Set(metaKey, types.Encode(meta))
	}
	if err != nil {
		e.state.Rollback()
		return nil, err
	}
	if err := e.state.Commit(); err != nil {
		elog.Error("commit", "slot", slot, "err", err)
		return nil, err
	}
	e.slot = slot
	e.blocktime = blocktime
	metrics.Gauge("slot").Update(slot)
	return &ExecResult{Hash: hash, Slot: slot, BlockTime: blocktime, Receipt: rdata}, nil
}

// checkReceiptKeys 执行器只能修改自己的状态以及原生币账户
func checkReceiptKeys(execer []byte, kvs []*types.KeyValue) error {
	own := []byte(types.StatePrefix + string(execer) + "-")
	for _, kv := range kvs {
		if bytes.HasPrefix(kv.Key, own) || bytes.HasPrefix(kv.Key, coinsPrefix) {
			continue
		}
		elog.Error("err receipt key", "key", string(kv.Key), "tx.exec", string(execer))
		return errors.Wrap(ErrReceiptKey, string(kv.Key))
	}
	return nil
}

func calcTxReceiptKey(hash []byte) []byte {
	return types.CalcLocalKey("executor", "tx-"+common.Bytes2Hex(hash))
}

// GetTxReceipt 查询交易回执
func (e *Executor) GetTxReceipt(hash []byte) (*types.ReceiptData, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, err := e.state.Get(calcTxReceiptKey(hash))
	if err != nil {
		return nil, err
	}
	var rdata types.ReceiptData
	if err := types.Decode(value, &rdata); err != nil {
		return nil, err
	}
	return &rdata, nil
}

// Query 只读查询, 使用已经提交的数据
func (e *Executor) Query(execer, funcName string, params []byte) (interface{}, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	driver, err := dapp.LoadDriver(execer)
	if err != nil {
		return nil, err
	}
	db := NewStateDB(e.db)
	driver.SetStateDB(db)
	driver.SetLocalDB(db)
	driver.SetEnv(e.slot, e.blocktime)
	return driver.Query(funcName, params)
}

// Deposit 给地址增加原生币, 用于创世以及测试网的水龙头
func (e *Executor) Deposit(addr string, amount int64) (*types.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Begin()
	acc := account.NewCoinsAccount(e.state)
	if _, err := acc.Deposit(addr, amount); err != nil {
		e.state.Rollback()
		return nil, err
	}
	if err := e.state.Commit(); err != nil {
		return nil, err
	}
	elog.Info("deposit", "addr", addr, "amount", amount)
	return account.NewCoinsAccount(NewStateDB(e.db)).LoadAccount(addr), nil
}

// Balance 原生币余额
func (e *Executor) Balance(addr string) *types.Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return account.NewCoinsAccount(NewStateDB(e.db)).LoadAccount(addr)
}
