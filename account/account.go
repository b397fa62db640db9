// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 原生币的资产操作
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. Transfer
//5. Deposit
//6. Account balance query

import (
	"fmt"
	"strings"

	dbm "github.com/33cn/raffle/common/db"
	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	symbol           string
}

//NewCoinsAccount 原生币账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc := newAccountDB(SymbolPrefix("coins", "bty"))
	acc.execer = "coins"
	acc.symbol = "bty"
	return acc.SetDB(db)
}

//NewAccountDB 指定执行器和符号的账户
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	//如果execer 和  symbol 中存在 "-", 那么创建失败
	if strings.ContainsRune(execer, '-') || strings.ContainsRune(symbol, '-') {
		return nil, types.ErrInvalidParam
	}
	accDB := newAccountDB(SymbolPrefix(execer, symbol))
	accDB.execer = execer
	accDB.symbol = symbol
	return accDB.SetDB(db), nil
}

func newAccountDB(prefix string) *DB {
	acc := &DB{}
	acc.accountKeyPerfix = []byte(prefix)
	return acc
}

//SetDB 设置数据库, 执行时为交易缓存
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

//LoadAccount 不存在的账户余额为 0
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

//LoadAccounts 批量查询
func (acc *DB) LoadAccounts(addrs []string) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

//CheckTransfer 检查转账是否可以执行, 不修改状态
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Balance-amount < 0 {
		return types.ErrNoBalance
	}
	accTo := acc.LoadAccount(to)
	if _, err := safeAdd(accTo.Balance, amount); err != nil {
		return err
	}
	return nil
}

//Transfer 转账, 返回的 receipt 包含两个账户的 KV 和变更日志
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance -= amount
	accTo.Balance += amount

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	alog.Debug("Transfer", "from", from, "to", to, "amount", amount)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

//Deposit 凭空增加余额, 用于创世和水龙头
func (acc *DB) Deposit(addr string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadAccount(addr)
	copyacc := *acc1
	balance, err := safeAdd(acc1.Balance, amount)
	if err != nil {
		return nil, err
	}
	acc1.Balance = balance
	receiptBalance := &types.ReceiptAccountTransfer{
		Prev:    &copyacc,
		Current: acc1,
	}
	acc.SaveAccount(acc1)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogDeposit,
		Log: types.Encode(receiptBalance),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

//SaveAccount 写入数据库
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		if err := acc.db.Set(set[i].Key, set[i].Value); err != nil {
			panic(errors.Wrap(err, "save account"))
		}
	}
}

//GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

//SymbolPrefix mavl-<execer>-<symbol>-
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-", execer, symbol)
}

func safeAdd(balance, amount int64) (int64, error) {
	if balance+amount < amount || balance+amount > types.MaxCoin {
		return balance, types.ErrAmount
	}
	return balance + amount, nil
}
