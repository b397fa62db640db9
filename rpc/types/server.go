// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types rpc 服务和插件之间的接口, 以及 json 返回结构
package types

import (
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
)

// API 节点提供给 rpc 的功能, 由 executor.Executor 实现
type API interface {
	ExecTx(tx *types.Transaction) (*executor.ExecResult, error)
	Query(execer, funcName string, params []byte) (interface{}, error)
	GetTxReceipt(hash []byte) (*types.ReceiptData, error)
	Balance(addr string) *types.Account
	Deposit(addr string, amount int64) (*types.Account, error)
	Slot() int64
	BlockTime() int64
}

// RPCServer 插件通过它注册路由
type RPCServer interface {
	API() API
	// Group 返回 /v1/<name> 路由组
	Group(name string) *gin.RouterGroup
}

// ChannelClient 插件 rpc 的公共部分
type ChannelClient struct {
	API
	execer string
}

// Init 绑定执行器名称和节点接口
func (c *ChannelClient) Init(name string, s RPCServer) {
	c.API = s.API()
	c.execer = name
}

// QueryExec 查询执行器, param 为空表示无参数
func (c *ChannelClient) QueryExec(funcName string, param interface{}) (interface{}, error) {
	var params []byte
	if param != nil {
		params = types.Encode(param)
	}
	return c.API.Query(c.execer, funcName, params)
}

// SendExec 以 from 的身份执行
func (c *ChannelClient) SendExec(from string, payload interface{}, nonce int64) (*executor.ExecResult, error) {
	tx := &types.Transaction{
		Execer:  []byte(c.execer),
		Payload: types.Encode(payload),
		From:    from,
		Nonce:   nonce,
	}
	return c.API.ExecTx(tx)
}

// Execer 执行器名称
func (c *ChannelClient) Execer() string {
	return c.execer
}
