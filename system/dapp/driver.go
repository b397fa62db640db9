// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的接口以及公共实现
package dapp

import (
	"reflect"

	"github.com/33cn/raffle/account"
	dbm "github.com/33cn/raffle/common/db"
	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var blog = log.New("module", "execs.base")

//Driver 执行器驱动
//Exec 返回的 receipt.KV 写入状态数据库, ExecLocal 根据回执生成本地索引
type Driver interface {
	SetStateDB(dbm.KV)
	GetCoinsAccount() *account.DB
	SetLocalDB(dbm.KVDB)
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	SetName(string)
	SetEnv(slot, blocktime int64)
	GetActionName(tx *types.Transaction) string
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
	GetFuncMap() map[string]reflect.Method
	GetExecutorType() types.ExecutorType
}

//DriverBase 驱动的公共部分, 通过反射把 action 分发到 Exec_<Action>/ExecLocal_<Action>/Query_<Func>
type DriverBase struct {
	statedb      dbm.KV
	localdb      dbm.KVDB
	coinsaccount *account.DB
	slot         int64
	blocktime    int64
	name         string
	child        Driver
	childValue   reflect.Value
	funcmap      map[string]reflect.Method
	ety          types.ExecutorType
}

//SetEnv 设置当前的槽位和时间
func (d *DriverBase) SetEnv(slot, blocktime int64) {
	d.slot = slot
	d.blocktime = blocktime
}

//SetExecutorType set
func (d *DriverBase) SetExecutorType(e types.ExecutorType) {
	d.ety = e
}

//GetExecutorType get
func (d *DriverBase) GetExecutorType() types.ExecutorType {
	return d.ety
}

//SetChild 设置具体的驱动, 并缓存它的方法表
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
	d.funcmap = types.ListMethod(e)
}

//GetFuncMap 方法表
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	return d.funcmap
}

//Exec 执行交易, 调用 Exec_<Action>(payload, tx, index)
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcname := "Exec_" + name
	method, ok := d.child.GetFuncMap()[funcname]
	if !ok {
		return nil, errors.Wrap(types.ErrActionNotSupport, funcname)
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrActionNotSupport
	}
	if r1 := valueret[0].Interface(); r1 != nil {
		receipt, _ = r1.(*types.Receipt)
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		err, _ = r2.(error)
	}
	return receipt, err
}

//ExecLocal 调用 ExecLocal_<Action>, 没有实现的 action 不生成本地数据
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	var set types.LocalDBSet
	if d.ety == nil {
		return &set, nil
	}
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	method, ok := d.child.GetFuncMap()["ExecLocal_"+name]
	if !ok {
		return &set, nil
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(receipt), reflect.ValueOf(index)})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrActionNotSupport
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		if e, ok := r2.(error); ok {
			blog.Error("call ExecLocal", "action", name, "err", e)
			return nil, e
		}
	}
	if r1 := valueret[0].Interface(); r1 != nil {
		if lset, ok := r1.(*types.LocalDBSet); ok && lset != nil {
			set.KV = append(set.KV, lset.KV...)
		}
	}
	return &set, nil
}

//Query 调用 Query_<funcName>(param), param 的类型由方法签名决定
func (d *DriverBase) Query(funcName string, params []byte) (msg interface{}, err error) {
	method, ok := d.child.GetFuncMap()["Query_"+funcName]
	if !ok {
		return nil, errors.Wrap(types.ErrQueryNotSupport, funcName)
	}
	ptype := method.Type.In(1)
	if ptype.Kind() != reflect.Ptr {
		return nil, types.ErrQueryNotSupport
	}
	param := reflect.New(ptype.Elem())
	if len(params) > 0 {
		if err := types.Decode(params, param.Interface()); err != nil {
			return nil, err
		}
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, param})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrQueryNotSupport
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		err, _ = r2.(error)
		return nil, err
	}
	return valueret[0].Interface(), nil
}

//SetStateDB 设置状态数据库, 同时重置原生币账户
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(db)
		return
	}
	d.coinsaccount.SetDB(db)
}

//GetStateDB get
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

//SetLocalDB set
func (d *DriverBase) SetLocalDB(db dbm.KVDB) {
	d.localdb = db
}

//GetLocalDB get
func (d *DriverBase) GetLocalDB() dbm.KVDB {
	return d.localdb
}

//GetSlot 当前槽位
func (d *DriverBase) GetSlot() int64 {
	return d.slot
}

//GetBlockTime 当前时间(秒)
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

//GetName 执行器名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

//SetName set
func (d *DriverBase) SetName(name string) {
	d.name = name
}

//GetActionName action 名称
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	if d.ety == nil {
		return "unknown"
	}
	return d.ety.GetActionName(tx)
}

//GetCoinsAccount 原生币账户
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(d.statedb)
	}
	return d.coinsaccount
}
