// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"strconv"
	"sync/atomic"
	"time"

	log "github.com/33cn/raffle/common/log"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
)

var rlog = log.New("module", "rpc.raffle")

var nonce = time.Now().UnixNano()

type channelClient struct {
	rpctypes.ChannelClient
	ety types.ExecutorType
}

// Init 注册 /v1/raffle 下的路由
func Init(name string, s rpctypes.RPCServer) {
	cli := &channelClient{ety: rty.NewType()}
	cli.ChannelClient.Init(name, s)
	g := s.Group(name)
	g.POST("/activate", cli.activate)
	g.POST("/buy", cli.buy)
	g.POST("/finalize", cli.finalize)
	g.POST("/claim", cli.claim)
	g.GET("/config", cli.getConfig)
	g.GET("/latest", cli.getLatestRound)
	g.GET("/round/:round", cli.getRound)
	g.GET("/round/:round/vault", cli.getVault)
	g.GET("/round/:round/winner", cli.getWinner)
	g.GET("/round/:round/positions/:addr", cli.listPositions)
	g.GET("/position/:round/:addr/:start", cli.getPosition)
	g.GET("/profile/:addr", cli.getProfile)
}

func nextNonce() int64 {
	return atomic.AddInt64(&nonce, 1)
}

func roundParam(c *gin.Context) (uint64, error) {
	return parseUint(c.Param("round"))
}

func parseUint(s string) (uint64, error) {
	return parseUintBits(s, 64)
}

func parseUintBits(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, types.ErrInvalidParam
	}
	return v, nil
}
