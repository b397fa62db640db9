// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// send 以请求头中的地址执行 action. ExecPack 时结果和错误一起返回给调用者
func (cli *channelClient) send(c *gin.Context, action *rty.RaffleAction) {
	from, err := rpctypes.Caller(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	result, execErr := cli.SendExec(from, action, nextNonce())
	reply, err := rpctypes.NewReplyTx(cli.ety, result, execErr)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	if execErr != nil {
		rlog.Debug("send", "from", from, "action", action.Ty, "err", execErr)
		c.JSON(rpctypes.ErrorStatus(execErr), reply)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func bind(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		rpctypes.WriteError(c, errors.Wrap(types.ErrInvalidParam, err.Error()))
		return false
	}
	return true
}

func (cli *channelClient) activate(c *gin.Context) {
	var req rty.RaffleActivate
	if !bind(c, &req) {
		return
	}
	cli.send(c, &rty.RaffleAction{Ty: rty.RaffleActionActivate, Activate: &req})
}

func (cli *channelClient) buy(c *gin.Context) {
	req := rty.RaffleBuy{EntryCount: 1}
	if !bind(c, &req) {
		return
	}
	cli.send(c, &rty.RaffleAction{Ty: rty.RaffleActionBuy, Buy: &req})
}

func (cli *channelClient) finalize(c *gin.Context) {
	var req rty.RaffleFinalize
	if !bind(c, &req) {
		return
	}
	cli.send(c, &rty.RaffleAction{Ty: rty.RaffleActionFinalize, Finalize: &req})
}

// claim 没有指定区间时使用这一轮的中奖区间
func (cli *channelClient) claim(c *gin.Context) {
	var req rty.RaffleClaim
	if !bind(c, &req) {
		return
	}
	if req.Position == nil {
		v, err := cli.QueryExec(rty.FuncNameGetWinningPosition, &rty.ReqRound{RoundNumber: req.RoundNumber})
		if err != nil {
			rpctypes.WriteError(c, err)
			return
		}
		req.Position = v.(*rty.ReplyWinner).Position.Ref()
	}
	cli.send(c, &rty.RaffleAction{Ty: rty.RaffleActionClaim, Claim: &req})
}

func (cli *channelClient) query(c *gin.Context, funcName string, param interface{}) {
	v, err := cli.QueryExec(funcName, param)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (cli *channelClient) getConfig(c *gin.Context) {
	cli.query(c, rty.FuncNameGetConfig, nil)
}

func (cli *channelClient) getLatestRound(c *gin.Context) {
	cli.query(c, rty.FuncNameGetLatestRound, nil)
}

func (cli *channelClient) getRound(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	cli.query(c, rty.FuncNameGetRound, &rty.ReqRound{RoundNumber: round})
}

func (cli *channelClient) getVault(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	v, err := cli.QueryExec(rty.FuncNameGetVault, &rty.ReqRound{RoundNumber: round})
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	vault := v.(*rty.ReplyVault)
	c.JSON(http.StatusOK, gin.H{
		"roundNumber": vault.RoundNumber,
		"addr":        vault.Addr,
		"balance":     vault.Balance,
		"amount":      rpctypes.FormatAmount(vault.Balance),
	})
}

func (cli *channelClient) getWinner(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	cli.query(c, rty.FuncNameGetWinningPosition, &rty.ReqRound{RoundNumber: round})
}

func (cli *channelClient) listPositions(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	req := &rty.ReqRoundPositions{RoundNumber: round, Addr: c.Param("addr")}
	if s := c.Query("after"); s != "" {
		after, err := parseUint(s)
		if err != nil {
			rpctypes.WriteError(c, err)
			return
		}
		req.After = &after
	}
	if s := c.Query("count"); s != "" {
		count, err := parseUintBits(s, 31)
		if err != nil {
			rpctypes.WriteError(c, err)
			return
		}
		req.Count = int32(count)
	}
	cli.query(c, rty.FuncNameListPositions, req)
}

func (cli *channelClient) getPosition(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	start, err := parseUint(c.Param("start"))
	if err != nil {
		rpctypes.WriteError(c, err)
		return
	}
	cli.query(c, rty.FuncNameGetPosition, &rty.PositionRef{RoundNumber: round, Buyer: c.Param("addr"), StartIndex: start})
}

func (cli *channelClient) getProfile(c *gin.Context) {
	cli.query(c, rty.FuncNameGetProfile, &rty.ReqAddr{Addr: c.Param("addr")})
}
