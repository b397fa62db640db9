// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/pluginmgr"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func (s *Server) status(c *gin.Context) {
	var plugins []string
	for _, name := range dapp.Drivers() {
		if pluginmgr.HasExec(name) {
			plugins = append(plugins, name)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"slot":      s.api.Slot(),
		"blockTime": s.api.BlockTime(),
		"execs":     plugins,
		"faucet":    s.cfg.EnableFaucet,
	})
}

func (s *Server) getAccount(c *gin.Context) {
	addr := c.Param("addr")
	if err := address.CheckAddress(addr); err != nil {
		rpctypes.WriteError(c, errors.Wrap(types.ErrInvalidAddress, err.Error()))
		return
	}
	c.JSON(http.StatusOK, rpctypes.NewAccount(s.api.Balance(addr)))
}

func (s *Server) faucet(c *gin.Context) {
	if !s.cfg.EnableFaucet {
		rpctypes.WriteError(c, types.ErrFaucetNotEnabled)
		return
	}
	var req rpctypes.ReqFaucet
	if err := c.ShouldBindJSON(&req); err != nil {
		rpctypes.WriteError(c, errors.Wrap(types.ErrInvalidParam, err.Error()))
		return
	}
	if err := address.CheckAddress(req.Addr); err != nil {
		rpctypes.WriteError(c, errors.Wrap(types.ErrInvalidAddress, err.Error()))
		return
	}
	acc, err := s.api.Deposit(req.Addr, s.cfg.FaucetAmount)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, rpctypes.NewAccount(acc))
}

func (s *Server) getTx(c *gin.Context) {
	hash, err := common.FromHex(c.Param("hash"))
	if err != nil || len(hash) == 0 {
		rpctypes.WriteError(c, types.ErrInvalidParam)
		return
	}
	rdata, err := s.api.GetTxReceipt(hash)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	// 日志名称需要执行器的类型信息, 先尝试已注册的执行器
	var ety types.ExecutorType
	for _, name := range dapp.Drivers() {
		if d, err := dapp.LoadDriver(name); err == nil {
			if t := d.GetExecutorType(); t != nil && logsKnown(t, rdata) {
				ety = t
				break
			}
		}
	}
	rd, err := rpctypes.DecodeLog(ety, rdata)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, &rpctypes.ReplyTx{Hash: common.ToHex(hash), Receipt: rd})
}

func logsKnown(ety types.ExecutorType, rdata *types.ReceiptData) bool {
	for _, l := range rdata.Logs {
		if _, ok := ety.GetLogMap()[l.Ty]; ok {
			return true
		}
	}
	return false
}

func (s *Server) getMetrics(c *gin.Context) {
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	metrics.WriteJSON(c.Writer)
}
