// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// RPCCtx rpc ctx interface
type RPCCtx struct {
	Addr   string
	Caller string
	Method string
	Path   string
	Params interface{}
	Res    interface{}
	cb     Callback
}

// Callback a callback function
type Callback func(res interface{}) (interface{}, error)

// NewRPCCtx produce a object of rpcctx, params 为空时使用 GET
func NewRPCCtx(laddr, path string, params, res interface{}) *RPCCtx {
	method := http.MethodPost
	if params == nil {
		method = http.MethodGet
	}
	return &RPCCtx{
		Addr:   laddr,
		Method: method,
		Path:   path,
		Params: params,
		Res:    res,
	}
}

// SetCaller 调用者地址
func (c *RPCCtx) SetCaller(addr string) *RPCCtx {
	c.Caller = addr
	return c
}

// SetResultCb rpcctx callback
func (c *RPCCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// RunResult  format rpc result
func (c *RPCCtx) RunResult() (interface{}, error) {
	rpc := NewJSONClient(c.Addr)
	rpc.SetAddr(c.Caller)
	var err error
	if c.Method == http.MethodGet {
		err = rpc.Get(c.Path, c.Res)
	} else {
		err = rpc.Post(c.Path, c.Params, c.Res)
	}
	if err != nil {
		return c.Res, err
	}
	// maybe format rpc result
	if c.cb != nil {
		return c.cb(c.Res)
	}
	return c.Res, nil
}

// Run rpcctx to runresult
func (c *RPCCtx) Run() {
	result, err := c.RunResult()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if c.Method == http.MethodGet {
			return
		}
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
